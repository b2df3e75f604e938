package embedding

import (
	"context"

	"github.com/rushteam/cinerec/core"
)

// MatrixSource 是 Embedding 矩阵的来源抽象。
// 数值格式由实现方自定（如 float32 平铺二进制），但行序必须与索引一致。
type MatrixSource interface {
	// LoadMatrix 读取完整矩阵；资源缺失或不可读返回 UNAVAILABLE
	LoadMatrix(ctx context.Context) (*Matrix, error)
}

// IndexSource 是 MovieID → 行号映射的来源抽象。
// 映射必须单射；范围与重复校验由 Store 在加载期统一执行。
type IndexSource interface {
	// LoadIndex 读取 movie_id -> row_index 映射
	LoadIndex(ctx context.Context) (map[int64]int, error)
}

// MemorySource 是内存实现的 MatrixSource + IndexSource，用于测试/开发/原型。
type MemorySource struct {
	Rows  [][]float64
	Index map[int64]int
}

func (s *MemorySource) LoadMatrix(ctx context.Context) (*Matrix, error) {
	if len(s.Rows) == 0 {
		return nil, core.NewDomainError(core.ModuleEmbedding, core.ErrorCodeUnavailable, "embedding: memory source has no rows")
	}
	return NewMatrix(s.Rows)
}

func (s *MemorySource) LoadIndex(ctx context.Context) (map[int64]int, error) {
	if len(s.Index) == 0 {
		return nil, core.NewDomainError(core.ModuleEmbedding, core.ErrorCodeUnavailable, "embedding: memory source has no index")
	}
	out := make(map[int64]int, len(s.Index))
	for id, row := range s.Index {
		out[id] = row
	}
	return out, nil
}

// 确保实现了接口
var (
	_ MatrixSource = (*MemorySource)(nil)
	_ IndexSource  = (*MemorySource)(nil)
)
