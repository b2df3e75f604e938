package signal

import (
	"context"
	"math"
	"testing"

	"github.com/rushteam/cinerec/embedding"
)

// Shared fixture: 5 movies over a 3-dim embedding space.
//
//	movie 1 -> row 0 [1.0, 0.0, 0.0]
//	movie 2 -> row 1 [0.0, 1.0, 0.0]
//	movie 3 -> row 2 [0.0, 0.0, 1.0]
//	movie 4 -> row 3 [0.8, 0.6, 0.0]
//	movie 5 -> row 4 [0.6, 0.8, 0.0]
func testSnapshot(t *testing.T) *embedding.Snapshot {
	t.Helper()
	src := &embedding.MemorySource{
		Rows: [][]float64{
			{1, 0, 0},
			{0, 1, 0},
			{0, 0, 1},
			{0.8, 0.6, 0},
			{0.6, 0.8, 0},
		},
		Index: map[int64]int{1: 0, 2: 1, 3: 2, 4: 3, 5: 4},
	}
	snap, err := embedding.NewStore(src, src).Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	return snap
}

func almost(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func allZero(v []float64) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}
