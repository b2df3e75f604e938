package signal

import (
	"fmt"
	"math"

	"github.com/rushteam/cinerec/core"
)

// Weights 是四路信号的融合权重，以强类型结构而非松散 map 表达，
// 构造时强制"和为 1.0"不变量。
type Weights struct {
	Interest      float64
	Discovery     float64
	Collaborative float64
	Category      float64
}

// 权重和校验的浮点容差。
const weightTolerance = 1e-9

// NewWeights 构造自定义权重，四者之和必须为 1.0（浮点容差内）。
func NewWeights(interest, discovery, collaborative, category float64) (Weights, error) {
	w := Weights{
		Interest:      interest,
		Discovery:     discovery,
		Collaborative: collaborative,
		Category:      category,
	}
	if math.Abs(w.Sum()-1.0) > weightTolerance {
		return Weights{}, core.NewDomainError(core.ModuleEngine, core.ErrorCodeInvalidInput,
			fmt.Sprintf("signal: weights sum to %v, want 1.0", w.Sum()))
	}
	return w, nil
}

// Sum 返回四路权重之和。
func (w Weights) Sum() float64 {
	return w.Interest + w.Discovery + w.Collaborative + w.Category
}

// 三档自适应权重：观看历史越少越依赖协同/类型先验（抗噪），
// 越多越向内容兴趣与探索倾斜（个性化收敛）。
var (
	sparseWeights = Weights{Interest: 0.20, Discovery: 0.10, Collaborative: 0.30, Category: 0.40} // n < 5
	mediumWeights = Weights{Interest: 0.35, Discovery: 0.25, Collaborative: 0.25, Category: 0.15} // 5 <= n < 20
	richWeights   = Weights{Interest: 0.40, Discovery: 0.30, Collaborative: 0.20, Category: 0.10} // n >= 20
)

// AdaptiveWeights 按观看交互数 n 选择权重档位。
func AdaptiveWeights(n int) Weights {
	switch {
	case n < 5:
		return sparseWeights
	case n < 20:
		return mediumWeights
	default:
		return richWeights
	}
}
