package signal

// Fuse 线性融合四路信号：combined[i] = Σ weight_s * vector_s[i]。
// 确定性计算，无任何随机因素；四个向量长度必须一致（同一 Snapshot 产出）。
func Fuse(w Weights, interest, discovery, collaborative, category []float64) []float64 {
	out := make([]float64, len(interest))
	for i := range out {
		out[i] = w.Interest*interest[i] +
			w.Discovery*discovery[i] +
			w.Collaborative*collaborative[i] +
			w.Category*category[i]
	}
	return out
}
