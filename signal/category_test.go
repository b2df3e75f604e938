package signal

import (
	"context"
	"testing"

	"github.com/rushteam/cinerec/core"
)

// fakeMetadata serves genres from a map; Popularity is unused by the signal.
type fakeMetadata struct {
	genres map[int64][]string
}

func (f *fakeMetadata) Genres(ctx context.Context, movieID int64) ([]string, error) {
	return f.genres[movieID], nil
}

func (f *fakeMetadata) Popularity(ctx context.Context, movieID int64) (float64, error) {
	return 0, core.ErrCatalogNotFound
}

func TestCategory_GenrePreferences(t *testing.T) {
	snap := testSnapshot(t)
	meta := &fakeMetadata{genres: map[int64][]string{
		1: {"action", "drama"},
		2: {"action"},
		3: {"comedy"},
		4: {"action"},
		5: {"drama"},
	}}
	s := &Category{Metadata: meta}

	hist := &core.History{
		Watched: []core.WatchEvent{{MovieID: 1}, {MovieID: 2}},
		Ratings: map[int64]float64{},
	}
	scores, err := s.Compute(context.Background(), snap, hist)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	// prefs: action = 2/2 = 1.0, drama = 1/2 = 0.5
	// raw:   [1.5, 1.0, 0, 1.0, 0.5], scaled by max 1.5
	want := []float64{1, 2.0 / 3.0, 0, 2.0 / 3.0, 1.0 / 3.0}
	for i := range want {
		if !almost(scores[i], want[i]) {
			t.Errorf("scores[%d] = %v, want %v", i, scores[i], want[i])
		}
	}
}

func TestCategory_Zero(t *testing.T) {
	snap := testSnapshot(t)

	tests := []struct {
		name string
		s    *Category
		hist *core.History
	}{
		{
			name: "no watches",
			s:    &Category{Metadata: &fakeMetadata{genres: map[int64][]string{1: {"action"}}}},
			hist: &core.History{Ratings: map[int64]float64{}},
		},
		{
			name: "nil metadata",
			s:    &Category{},
			hist: &core.History{Watched: []core.WatchEvent{{MovieID: 1}}, Ratings: map[int64]float64{}},
		},
		{
			name: "watched movies carry no genres",
			s:    &Category{Metadata: &fakeMetadata{genres: map[int64][]string{}}},
			hist: &core.History{Watched: []core.WatchEvent{{MovieID: 1}}, Ratings: map[int64]float64{}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scores, err := tt.s.Compute(context.Background(), snap, tt.hist)
			if err != nil {
				t.Fatalf("Compute() error = %v", err)
			}
			if !allZero(scores) {
				t.Errorf("Compute() = %v, want zero vector", scores)
			}
		})
	}
}
