// Package signal 实现推荐引擎的四路信号计算器：
// interest（兴趣）、discovery（探索）、collaborative（协同）、category（类型偏好）。
//
// 每个计算器把用户历史映射为长度 N 的分数向量（N 为矩阵行数），
// 第 i 位对同一 Snapshot 下的所有信号指向同一部电影。
// 计算器本身无状态、纯函数式，可在任意 goroutine 上并发执行。
package signal

import (
	"context"

	"github.com/rushteam/cinerec/core"
	"github.com/rushteam/cinerec/embedding"
)

// Computer 表示一个可复用的信号计算器。
// 可以把它理解为"可并发 fan-out 的打分策略单元"：
// 融合与编排逻辑按统一接口迭代信号，新增/删除策略不触碰上层。
type Computer interface {
	Name() string
	Compute(ctx context.Context, snap *embedding.Snapshot, hist *core.History) ([]float64, error)
}

// zeros 返回长度为 n 的零向量：信号的中性兜底，对融合不贡献分数。
// 退化数值场景（空历史、全零质心、max==min）一律走零向量，从不抛出除零错误。
func zeros(n int) []float64 {
	return make([]float64, n)
}
