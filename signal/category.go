package signal

import (
	"context"

	"github.com/rushteam/cinerec/core"
	"github.com/rushteam/cinerec/embedding"
)

// Category 是类型偏好信号：统计用户观看历史中各 genre 的归一化频率
// （count / 观看总数），目录中每行的分数 = 该行携带的 genre 偏好权重之和，
// 最后整体除以最大值使向量最大分为 1.0。
//
// 观看为空、或所有观看电影都没有 genre 元数据时返回零向量（不做缩放）。
// 这是唯一消费 CatalogMetadata 的信号，不触碰 Embedding 数值。
type Category struct {
	Metadata core.CatalogMetadata
}

func (s *Category) Name() string { return "signal.category" }

func (s *Category) Compute(ctx context.Context, snap *embedding.Snapshot, hist *core.History) ([]float64, error) {
	n := snap.Matrix.Rows()
	if len(hist.Watched) == 0 || s.Metadata == nil {
		return zeros(n), nil
	}

	// 1. 统计观看历史的 genre 频率
	counts := make(map[string]int)
	for _, w := range hist.Watched {
		genres, err := s.Metadata.Genres(ctx, w.MovieID)
		if err != nil {
			continue // 单部电影元数据缺失不中断信号
		}
		for _, g := range genres {
			counts[g]++
		}
	}
	if len(counts) == 0 {
		return zeros(n), nil
	}

	total := float64(len(hist.Watched))
	prefs := make(map[string]float64, len(counts))
	for g, c := range counts {
		prefs[g] = float64(c) / total
	}

	// 2. 按行携带的 genre 偏好求和
	scores := make([]float64, n)
	var max float64
	for row := 0; row < n; row++ {
		movieID, ok := snap.MovieAt(row)
		if !ok {
			continue
		}
		genres, err := s.Metadata.Genres(ctx, movieID)
		if err != nil {
			continue
		}
		var score float64
		for _, g := range genres {
			score += prefs[g]
		}
		scores[row] = score
		if score > max {
			max = score
		}
	}

	// 3. 缩放到最大分 1.0
	if max > 0 {
		for i := range scores {
			scores[i] /= max
		}
	}
	return scores, nil
}

var _ Computer = (*Category)(nil)
