package filter

import "context"

// Blacklist 是黑名单过滤器：固定电影 ID 集合，命中即过滤。
// 用于运营下架、版权屏蔽等不随用户变化的剔除场景。
type Blacklist struct {
	ids map[int64]struct{}
}

// NewBlacklist 创建黑名单过滤器。
func NewBlacklist(ids []int64) *Blacklist {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return &Blacklist{ids: set}
}

func (f *Blacklist) Name() string { return "filter.blacklist" }

// NeedsMetadata 黑名单只看 ID，不读取元数据。
func (f *Blacklist) NeedsMetadata() bool { return false }

func (f *Blacklist) ShouldFilter(ctx context.Context, c *Candidate) (bool, error) {
	_, ok := f.ids[c.MovieID]
	return ok, nil
}

var (
	_ Filter        = (*Blacklist)(nil)
	_ MetadataAware = (*Blacklist)(nil)
)
