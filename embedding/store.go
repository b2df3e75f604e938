package embedding

import (
	"context"
	"fmt"
	"sync"

	"github.com/rushteam/cinerec/core"
)

// Snapshot 是一次成功加载后的只读视图：矩阵 + MovieID↔行号双向映射。
// 所有向量计算都基于同一份 Snapshot，保证各信号的行号指向同一电影。
type Snapshot struct {
	Matrix *Matrix

	rowOf   map[int64]int // movie id -> row
	movieAt []int64       // row -> movie id
	mapped  []bool        // row 是否有反向映射
}

// RowOf 返回电影对应的矩阵行号；没有 Embedding 的电影返回 false。
func (s *Snapshot) RowOf(movieID int64) (int, bool) {
	row, ok := s.rowOf[movieID]
	return row, ok
}

// MovieAt 返回矩阵行号对应的电影 ID；无反向映射的行返回 false。
func (s *Snapshot) MovieAt(row int) (int64, bool) {
	if row < 0 || row >= len(s.movieAt) || !s.mapped[row] {
		return 0, false
	}
	return s.movieAt[row], true
}

// Len 返回有映射的电影数量。
func (s *Snapshot) Len() int { return len(s.rowOf) }

// Store 是 Embedding 仓库：一次加载、进程生命周期内只读共享。
//
// 生命周期契约：
//   - 首次 Snapshot 成功后缓存结果，后续调用不再触碰底层资源
//   - 加载失败不留下任何可见的部分状态，下一次调用可重试
//   - 加载本身互斥，并发首访问不会产生重复/撕裂的加载
//
// 校验规则（加载期执行，失败即 INCONSISTENT_DATA，从不静默修复）：
//   - 每个映射的行号都在 [0, N) 内
//   - 不存在两个电影映射到同一行
type Store struct {
	mu     sync.Mutex
	matrix MatrixSource
	index  IndexSource
	snap   *Snapshot
}

// NewStore 构建 Embedding 仓库。Store 是显式注入的资源句柄，
// 不做进程级单例，重复构建即可在隔离环境下验证加载契约。
func NewStore(matrix MatrixSource, index IndexSource) *Store {
	return &Store{matrix: matrix, index: index}
}

// Snapshot 返回只读视图，首次调用触发加载。
func (s *Store) Snapshot(ctx context.Context) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snap != nil {
		return s.snap, nil
	}
	if s.matrix == nil || s.index == nil {
		return nil, core.NewDomainError(core.ModuleEmbedding, core.ErrorCodeUnavailable, "embedding: no source configured")
	}

	matrix, err := s.matrix.LoadMatrix(ctx)
	if err != nil {
		return nil, err
	}
	index, err := s.index.LoadIndex(ctx)
	if err != nil {
		return nil, err
	}

	snap, err := newSnapshot(matrix, index)
	if err != nil {
		return nil, err
	}
	s.snap = snap
	return snap, nil
}

func newSnapshot(matrix *Matrix, index map[int64]int) (*Snapshot, error) {
	n := matrix.Rows()
	snap := &Snapshot{
		Matrix:  matrix,
		rowOf:   make(map[int64]int, len(index)),
		movieAt: make([]int64, n),
		mapped:  make([]bool, n),
	}
	for movieID, row := range index {
		if row < 0 || row >= n {
			return nil, core.NewDomainError(core.ModuleEmbedding, core.ErrorCodeInconsistent,
				fmt.Sprintf("embedding: movie %d maps to row %d, out of range [0,%d)", movieID, row, n))
		}
		if snap.mapped[row] {
			return nil, core.NewDomainError(core.ModuleEmbedding, core.ErrorCodeInconsistent,
				fmt.Sprintf("embedding: movies %d and %d both map to row %d", snap.movieAt[row], movieID, row))
		}
		snap.rowOf[movieID] = row
		snap.movieAt[row] = movieID
		snap.mapped[row] = true
	}
	return snap, nil
}
