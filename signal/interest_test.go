package signal

import (
	"context"
	"testing"
	"time"

	"github.com/rushteam/cinerec/core"
)

func TestInterest_SingleWatch(t *testing.T) {
	snap := testSnapshot(t)
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

	s := &Interest{Now: func() time.Time { return now }}
	hist := &core.History{
		Watched: []core.WatchEvent{{MovieID: 1, Timestamp: now.Add(-48 * time.Hour)}},
		Ratings: map[int64]float64{1: 8},
	}

	scores, err := s.Compute(context.Background(), snap, hist)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	// single item: the centroid is the item's own vector regardless of weight
	want := []float64{1, 0, 0, 0.8, 0.6}
	for i := range want {
		if !almost(scores[i], want[i]) {
			t.Errorf("scores[%d] = %v, want %v", i, scores[i], want[i])
		}
	}
}

func TestInterest_WeightedCentroid(t *testing.T) {
	snap := testSnapshot(t)
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

	s := &Interest{Now: func() time.Time { return now }}
	hist := &core.History{
		Watched: []core.WatchEvent{
			{MovieID: 1, Timestamp: now},                           // weight = 1.0 * (10/10) = 1.0
			{MovieID: 2, Timestamp: now.Add(-28 * 24 * time.Hour)}, // weight = 0.25 * (5/10) = 0.125
		},
		Ratings: map[int64]float64{1: 10},
	}

	scores, err := s.Compute(context.Background(), snap, hist)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	// normalized weights 8/9 and 1/9, centroid [8/9, 1/9, 0]
	if !almost(scores[0], 8.0/9.0) {
		t.Errorf("scores[0] = %v, want %v", scores[0], 8.0/9.0)
	}
	if !almost(scores[1], 1.0/9.0) {
		t.Errorf("scores[1] = %v, want %v", scores[1], 1.0/9.0)
	}
	if scores[0] <= scores[1] {
		t.Errorf("recent high-rated watch should dominate: %v vs %v", scores[0], scores[1])
	}
}

func TestInterest_IntegerDays(t *testing.T) {
	snap := testSnapshot(t)
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	s := &Interest{Now: func() time.Time { return now }}

	// 13.9 days floors to 13: both watches land in the same decay bucket,
	// so with equal ratings the centroid stays balanced
	hist := &core.History{
		Watched: []core.WatchEvent{
			{MovieID: 1, Timestamp: now.Add(-time.Duration(13*24) * time.Hour)},
			{MovieID: 2, Timestamp: now.Add(-time.Duration(13*24)*time.Hour - 21*time.Hour)},
		},
		Ratings: map[int64]float64{},
	}

	scores, err := s.Compute(context.Background(), snap, hist)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if !almost(scores[0], scores[1]) {
		t.Errorf("same-day watches should weigh equally: %v vs %v", scores[0], scores[1])
	}
}

func TestInterest_Empty(t *testing.T) {
	snap := testSnapshot(t)
	s := &Interest{}

	tests := []struct {
		name string
		hist *core.History
	}{
		{name: "no watches", hist: &core.History{Ratings: map[int64]float64{3: 2}}},
		{
			name: "watches without embeddings",
			hist: &core.History{
				Watched: []core.WatchEvent{{MovieID: 99, Timestamp: time.Now()}},
				Ratings: map[int64]float64{},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Compute(context.Background(), snap, tt.hist)
			if err != nil {
				t.Fatalf("Compute() error = %v", err)
			}
			if len(got) != snap.Matrix.Rows() || !allZero(got) {
				t.Errorf("Compute() = %v, want zero vector of len %d", got, snap.Matrix.Rows())
			}
		})
	}
}

func TestInterest_FutureTimestampClamped(t *testing.T) {
	snap := testSnapshot(t)
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	s := &Interest{Now: func() time.Time { return now }}

	hist := &core.History{
		Watched: []core.WatchEvent{{MovieID: 1, Timestamp: now.Add(72 * time.Hour)}},
		Ratings: map[int64]float64{},
	}
	scores, err := s.Compute(context.Background(), snap, hist)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if !almost(scores[0], 1.0) {
		t.Errorf("future watch should decay as age 0, scores[0] = %v", scores[0])
	}
}
