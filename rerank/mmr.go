// Package rerank 实现排序结果上的多样性重排。
package rerank

import "github.com/rushteam/cinerec/embedding"

// MMR 是 Maximal Marginal Relevance 贪心重排：在相关性与"同已选集合的冗余度"
// 之间做权衡，从候选行号中逐个挑出 k 个。
//
// 算法流程：
//  1. 首选 = 候选中相关性最高的行
//  2. 之后每轮对剩余候选 i 计算 mmr(i) = λ*relevance[i] - (1-λ)*maxSim(i)，
//     maxSim(i) 为 i 与所有已选行的最大点积；取 mmr 最大者入选
//  3. 平分时保留先遍历到的候选（稳定、确定性，依赖固定的候选顺序）
//
// λ 趋近 1 退化为纯相关性排序，趋近 0 退化为纯新颖性排序。
// 复杂度 O(k * |C|) 次对已选集合的点积，万级目录可接受；
// 更大规模需要近似最近邻索引，不在此组件范围内。
type MMR struct {
	// Lambda 多样性参数 ∈ [0,1]，越界时取默认 0.7
	Lambda float64
}

// Rerank 从候选行号 candidates 中选出至多 min(k, len(candidates)) 个，
// relevance 按矩阵行号索引。不修改入参，返回新的行号切片。
func (m *MMR) Rerank(matrix *embedding.Matrix, candidates []int, relevance []float64, k int) []int {
	if len(candidates) == 0 || k <= 0 {
		return nil
	}

	lambda := m.Lambda
	if lambda < 0 || lambda > 1 {
		lambda = 0.7
	}

	remaining := make([]int, len(candidates))
	copy(remaining, candidates)

	// 首选：相关性 argmax（严格大于，先到者赢）
	best := 0
	for i := 1; i < len(remaining); i++ {
		if relevance[remaining[i]] > relevance[remaining[best]] {
			best = i
		}
	}

	selected := make([]int, 0, k)
	selected = append(selected, remaining[best])
	remaining = append(remaining[:best], remaining[best+1:]...)

	for len(selected) < k && len(remaining) > 0 {
		bestPos := -1
		bestScore := 0.0
		for pos, row := range remaining {
			maxSim := matrix.Dot(row, selected[0])
			for _, sel := range selected[1:] {
				if sim := matrix.Dot(row, sel); sim > maxSim {
					maxSim = sim
				}
			}
			score := lambda*relevance[row] - (1-lambda)*maxSim
			if bestPos < 0 || score > bestScore {
				bestPos = pos
				bestScore = score
			}
		}
		selected = append(selected, remaining[bestPos])
		remaining = append(remaining[:bestPos], remaining[bestPos+1:]...)
	}

	return selected
}
