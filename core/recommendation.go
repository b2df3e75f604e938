package core

// Explanation 是单条推荐的分数分解：四路信号各自的加权贡献与总分。
// 冷启动路径下四路贡献均为 0，Total 为热度分。
type Explanation struct {
	Interest      float64 `json:"interest"`
	Discovery     float64 `json:"discovery"`
	Collaborative float64 `json:"collaborative"`
	Category      float64 `json:"category"`
	Total         float64 `json:"total"`
}

// Recommendation 是一条推荐结果：按请求临时构建，不持久化。
type Recommendation struct {
	MovieID     int64       `json:"movie_id"`
	Score       float64     `json:"score"`
	Explanation Explanation `json:"explanation"`
}

// SimilarMovie 是相似电影查询的一条结果，Similarity 为原始点积分数。
type SimilarMovie struct {
	MovieID    int64   `json:"movie_id"`
	Similarity float64 `json:"similarity"`
}
