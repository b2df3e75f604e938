package signal

import (
	"testing"

	"github.com/rushteam/cinerec/core"
)

func TestAdaptiveWeights_Tiers(t *testing.T) {
	tests := []struct {
		n    int
		want Weights
	}{
		{n: 0, want: sparseWeights},
		{n: 4, want: sparseWeights},
		{n: 5, want: mediumWeights},
		{n: 19, want: mediumWeights},
		{n: 20, want: richWeights},
		{n: 500, want: richWeights},
	}
	for _, tt := range tests {
		got := AdaptiveWeights(tt.n)
		if got != tt.want {
			t.Errorf("AdaptiveWeights(%d) = %+v, want %+v", tt.n, got, tt.want)
		}
		if !almost(got.Sum(), 1.0) {
			t.Errorf("AdaptiveWeights(%d).Sum() = %v, want 1.0", tt.n, got.Sum())
		}
	}
}

func TestNewWeights(t *testing.T) {
	w, err := NewWeights(0.25, 0.25, 0.25, 0.25)
	if err != nil {
		t.Fatalf("NewWeights() error = %v", err)
	}
	if !almost(w.Sum(), 1.0) {
		t.Errorf("Sum() = %v, want 1.0", w.Sum())
	}

	_, err = NewWeights(0.5, 0.5, 0.5, 0.5)
	if domainErr := core.GetDomainError(err); domainErr == nil || domainErr.Code != core.ErrorCodeInvalidInput {
		t.Errorf("NewWeights() with bad sum: error = %v, want INVALID_INPUT", err)
	}
}

func TestFuse(t *testing.T) {
	w := Weights{Interest: 0.2, Discovery: 0.1, Collaborative: 0.3, Category: 0.4}
	combined := Fuse(w,
		[]float64{1, 0},
		[]float64{0, 1},
		[]float64{1, 1},
		[]float64{0.5, 0},
	)

	want := []float64{0.2 + 0.3 + 0.2, 0.1 + 0.3}
	for i := range want {
		if !almost(combined[i], want[i]) {
			t.Errorf("combined[%d] = %v, want %v", i, combined[i], want[i])
		}
	}
}
