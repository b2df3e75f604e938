package signal

import (
	"context"
	"testing"

	"github.com/rushteam/cinerec/core"
)

func TestCollaborative_MeanSimilarity(t *testing.T) {
	snap := testSnapshot(t)
	s := &Collaborative{}

	hist := &core.History{
		Watched: []core.WatchEvent{{MovieID: 1}, {MovieID: 2}},
		Ratings: map[int64]float64{},
	}
	scores, err := s.Compute(context.Background(), snap, hist)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	// mean dot against rows 0 and 1
	want := []float64{0.5, 0.5, 0, 0.7, 0.7}
	for i := range want {
		if !almost(scores[i], want[i]) {
			t.Errorf("scores[%d] = %v, want %v", i, scores[i], want[i])
		}
	}
}

func TestCollaborative_Empty(t *testing.T) {
	snap := testSnapshot(t)
	s := &Collaborative{}

	tests := []struct {
		name string
		hist *core.History
	}{
		{name: "no watches", hist: &core.History{Ratings: map[int64]float64{}, Skipped: []int64{3}}},
		{
			name: "watches without embeddings",
			hist: &core.History{Watched: []core.WatchEvent{{MovieID: 77}}, Ratings: map[int64]float64{}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scores, err := s.Compute(context.Background(), snap, tt.hist)
			if err != nil {
				t.Fatalf("Compute() error = %v", err)
			}
			if !allZero(scores) {
				t.Errorf("Compute() = %v, want zero vector", scores)
			}
		})
	}
}
