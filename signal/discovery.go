package signal

import (
	"context"

	"github.com/rushteam/cinerec/core"
	"github.com/rushteam/cinerec/embedding"
)

// Discovery 是探索信号（反偏好）："不喜欢"集合 = 跳过的电影 ∪ 评分低于 5.0 的电影。
// 对该集合求均值质心，按 -(matrix · 质心) 打分：与不喜欢内容越不相似，分数越高。
// 结果 min-max 归一化到 [0,1]，与不喜欢质心最相似的行恰好归到 0.0。
// 没有任何带 Embedding 的不喜欢记录时返回零向量。
type Discovery struct {
	// Epsilon 归一化分母的保护项，<= 0 时取默认 1e-8（全员同分时避免除零）
	Epsilon float64
}

func (s *Discovery) Name() string { return "signal.discovery" }

func (s *Discovery) Compute(ctx context.Context, snap *embedding.Snapshot, hist *core.History) ([]float64, error) {
	n := snap.Matrix.Rows()

	disliked := hist.Disliked()
	if len(disliked) == 0 {
		return zeros(n), nil
	}

	rows := make([]int, 0, len(disliked))
	for _, id := range disliked {
		if row, ok := snap.RowOf(id); ok {
			rows = append(rows, row)
		}
	}
	if len(rows) == 0 {
		return zeros(n), nil
	}

	// 不喜欢集合的均值质心
	centroid := make([]float64, snap.Matrix.Dim())
	for _, row := range rows {
		vec := snap.Matrix.Row(row)
		for k := range centroid {
			centroid[k] += vec[k]
		}
	}
	for k := range centroid {
		centroid[k] /= float64(len(rows))
	}

	scores := snap.Matrix.Scores(centroid)
	lo, hi := scores[0], scores[0]
	for i := range scores {
		scores[i] = -scores[i]
		if i == 0 {
			lo, hi = scores[0], scores[0]
			continue
		}
		if scores[i] < lo {
			lo = scores[i]
		}
		if scores[i] > hi {
			hi = scores[i]
		}
	}

	eps := s.Epsilon
	if eps <= 0 {
		eps = 1e-8
	}
	for i := range scores {
		scores[i] = (scores[i] - lo) / (hi - lo + eps)
	}
	return scores, nil
}

var _ Computer = (*Discovery)(nil)
