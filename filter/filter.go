// Package filter 实现推荐候选的业务规则过滤。
package filter

import "context"

// Candidate 是过滤阶段看到的候选电影视图：目录元数据 + 融合分数。
type Candidate struct {
	MovieID    int64
	Genres     []string
	Popularity float64
	Score      float64
}

// Filter 是过滤器的抽象接口，用于判断一个候选是否应该被过滤掉。
// 返回 true 表示应该过滤（移除），false 表示保留。
type Filter interface {
	// Name 返回过滤器名称
	Name() string

	// ShouldFilter 判断候选是否应该被过滤
	ShouldFilter(ctx context.Context, c *Candidate) (bool, error)
}

// MetadataAware 是可选接口：声明过滤器是否读取候选的目录元数据
// （Genres / Popularity）。未实现此接口的过滤器按需要元数据处理。
type MetadataAware interface {
	NeedsMetadata() bool
}

// NeedsMetadata 判断过滤器链中是否有任何一个需要目录元数据。
// 远端元数据后端按此结果决定是否逐候选发起查询。
func NeedsMetadata(filters []Filter) bool {
	for _, f := range filters {
		aware, ok := f.(MetadataAware)
		if !ok || aware.NeedsMetadata() {
			return true
		}
	}
	return false
}
