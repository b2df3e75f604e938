package signal

import (
	"context"

	"github.com/rushteam/cinerec/core"
	"github.com/rushteam/cinerec/embedding"
)

// Collaborative 是协同信号的 item-item 近似：
// 每个目录行的分数 = 该行与所有观看过电影 Embedding 的点积均值。
// 没有任何带 Embedding 的观看记录时返回零向量。
//
// 与经典 Item-CF 的差别：相似度来自内容 Embedding 而非共现用户，
// 因此无需倒排表与共同用户数门槛，复杂度 O(N * |watched| * D)。
type Collaborative struct{}

func (s *Collaborative) Name() string { return "signal.collaborative" }

func (s *Collaborative) Compute(ctx context.Context, snap *embedding.Snapshot, hist *core.History) ([]float64, error) {
	n := snap.Matrix.Rows()
	if len(hist.Watched) == 0 {
		return zeros(n), nil
	}

	rows := make([]int, 0, len(hist.Watched))
	for _, w := range hist.Watched {
		if row, ok := snap.RowOf(w.MovieID); ok {
			rows = append(rows, row)
		}
	}
	if len(rows) == 0 {
		return zeros(n), nil
	}

	scores := make([]float64, n)
	inv := 1.0 / float64(len(rows))
	for i := 0; i < n; i++ {
		var sum float64
		for _, row := range rows {
			sum += snap.Matrix.Dot(i, row)
		}
		scores[i] = sum * inv
	}
	return scores, nil
}

var _ Computer = (*Collaborative)(nil)
