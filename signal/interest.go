package signal

import (
	"context"
	"math"
	"time"

	"github.com/rushteam/cinerec/core"
	"github.com/rushteam/cinerec/embedding"
)

// 未评分的观看按中性评分 5.0 处理。
const neutralRating = 5.0

// Interest 是兴趣信号：对用户观看过的电影求时间衰减、评分加权的质心，
// 再用质心对全目录逐行点积打分。
//
// 单条观看的权重 = time_weight * rating_weight：
//   - time_weight = 0.5 ^ (距观看天数 / 半衰期)，默认半衰期 14 天
//   - rating_weight = (显式评分或 5.0) / 10.0
//
// 权重先归一化到和为 1，再做加权平均。
// 没有任何带 Embedding 的观看记录时返回零向量。
type Interest struct {
	// HalfLifeDays 时间衰减半衰期（天），<= 0 时取默认 14
	HalfLifeDays float64

	// Now 当前时间来源，为空时取 time.Now（测试注入固定时钟）
	Now func() time.Time
}

func (s *Interest) Name() string { return "signal.interest" }

func (s *Interest) Compute(ctx context.Context, snap *embedding.Snapshot, hist *core.History) ([]float64, error) {
	n := snap.Matrix.Rows()
	if len(hist.Watched) == 0 {
		return zeros(n), nil
	}

	halfLife := s.HalfLifeDays
	if halfLife <= 0 {
		halfLife = 14
	}
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}

	rows := make([]int, 0, len(hist.Watched))
	weights := make([]float64, 0, len(hist.Watched))
	var weightSum float64

	for _, w := range hist.Watched {
		row, ok := snap.RowOf(w.MovieID)
		if !ok {
			continue // 未嵌入的电影不参与向量计算
		}

		days := math.Floor(now.Sub(w.Timestamp).Hours() / 24)
		if days < 0 {
			days = 0
		}
		timeWeight := math.Pow(0.5, days/halfLife)

		rating := neutralRating
		if r, ok := hist.Ratings[w.MovieID]; ok {
			rating = r
		}
		ratingWeight := rating / 10.0

		rows = append(rows, row)
		weights = append(weights, timeWeight*ratingWeight)
		weightSum += timeWeight * ratingWeight
	}

	if len(rows) == 0 || weightSum == 0 {
		return zeros(n), nil
	}

	// 归一化权重后求加权平均质心
	centroid := make([]float64, snap.Matrix.Dim())
	for i, row := range rows {
		w := weights[i] / weightSum
		vec := snap.Matrix.Row(row)
		for k := range centroid {
			centroid[k] += w * vec[k]
		}
	}

	return snap.Matrix.Scores(centroid), nil
}

var _ Computer = (*Interest)(nil)
