// Package store 提供目录/交互存储的基础设施实现（内存与 Redis），
// 实现 core 层定义的 InteractionReader / CatalogMetadata / PopularityIndex 接口。
package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/rushteam/cinerec/core"
)

// MemoryCatalog 是内存实现的目录与交互存储，用于测试/开发/原型。
// 线程安全；进程重启后数据丢失。
type MemoryCatalog struct {
	mu           sync.RWMutex
	interactions map[int64][]core.InteractionRecord
	genres       map[int64][]string
	popularity   map[int64]float64
}

func NewMemoryCatalog() *MemoryCatalog {
	return &MemoryCatalog{
		interactions: make(map[int64][]core.InteractionRecord),
		genres:       make(map[int64][]string),
		popularity:   make(map[int64]float64),
	}
}

func (m *MemoryCatalog) Name() string { return "memory" }

// AddInteraction 追加一条交互记录。
func (m *MemoryCatalog) AddInteraction(rec core.InteractionRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.interactions[rec.UserID] = append(m.interactions[rec.UserID], rec)
}

// SetMovie 写入电影的目录元数据。
func (m *MemoryCatalog) SetMovie(movieID int64, genres []string, popularity float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.genres[movieID] = append([]string(nil), genres...)
	m.popularity[movieID] = popularity
}

func (m *MemoryCatalog) Interactions(ctx context.Context, userID int64) ([]core.InteractionRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := m.interactions[userID]
	out := make([]core.InteractionRecord, len(records))
	copy(out, records)
	return out, nil
}

func (m *MemoryCatalog) Genres(ctx context.Context, movieID int64) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	genres, ok := m.genres[movieID]
	if !ok {
		return nil, nil // 元数据缺失不是错误
	}
	return append([]string(nil), genres...), nil
}

func (m *MemoryCatalog) Popularity(ctx context.Context, movieID int64) (float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	pop, ok := m.popularity[movieID]
	if !ok {
		return 0, core.NewDomainError(core.ModuleCatalog, core.ErrorCodeNotFound,
			fmt.Sprintf("store: movie %d not found", movieID))
	}
	return pop, nil
}

func (m *MemoryCatalog) MostPopular(ctx context.Context, n int) ([]int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	type pair struct {
		id  int64
		pop float64
	}
	pairs := make([]pair, 0, len(m.popularity))
	for id, pop := range m.popularity {
		pairs = append(pairs, pair{id: id, pop: pop})
	}
	// 热度降序，同分按 ID 升序保证确定性
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].pop != pairs[j].pop {
			return pairs[i].pop > pairs[j].pop
		}
		return pairs[i].id < pairs[j].id
	})

	if n > len(pairs) {
		n = len(pairs)
	}
	out := make([]int64, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, pairs[i].id)
	}
	return out, nil
}

// 确保实现了接口
var (
	_ core.InteractionReader = (*MemoryCatalog)(nil)
	_ core.CatalogMetadata   = (*MemoryCatalog)(nil)
	_ core.PopularityIndex   = (*MemoryCatalog)(nil)
)
