package embedding

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/rushteam/cinerec/core"
)

// FileMatrixSource 从平铺二进制文件读取矩阵。
//
// 文件格式（小端）：
//   - uint32 N 行数
//   - uint32 D 维度
//   - N*D 个 float32，行主序
//
// 该文件由离线 Embedding 生成任务产出，运行时只读。
type FileMatrixSource struct {
	Path string
}

func (f *FileMatrixSource) LoadMatrix(ctx context.Context) (*Matrix, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, core.NewDomainError(core.ModuleEmbedding, core.ErrorCodeUnavailable,
			fmt.Sprintf("embedding: read matrix %s: %v", f.Path, err))
	}
	if len(data) < 8 {
		return nil, core.NewDomainError(core.ModuleEmbedding, core.ErrorCodeUnavailable,
			fmt.Sprintf("embedding: matrix %s: missing header", f.Path))
	}

	n := int(binary.LittleEndian.Uint32(data[0:4]))
	d := int(binary.LittleEndian.Uint32(data[4:8]))
	if n <= 0 || d <= 0 {
		return nil, core.NewDomainError(core.ModuleEmbedding, core.ErrorCodeUnavailable,
			fmt.Sprintf("embedding: matrix %s: invalid shape %dx%d", f.Path, n, d))
	}
	if want := 8 + n*d*4; len(data) != want {
		return nil, core.NewDomainError(core.ModuleEmbedding, core.ErrorCodeUnavailable,
			fmt.Sprintf("embedding: matrix %s: size %d, want %d for shape %dx%d", f.Path, len(data), want, n, d))
	}

	m := &Matrix{
		data: make([]float64, n*d),
		rows: n,
		dim:  d,
	}
	for i := 0; i < n*d; i++ {
		bits := binary.LittleEndian.Uint32(data[8+i*4 : 12+i*4])
		m.data[i] = float64(math.Float32frombits(bits))
	}
	return m, nil
}

// FileIndexSource 从 JSON 文件读取 MovieID → 行号映射。
// 文件形如 {"603": 0, "604": 1, ...}（JSON 对象键总是字符串）。
type FileIndexSource struct {
	Path string
}

func (f *FileIndexSource) LoadIndex(ctx context.Context) (map[int64]int, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, core.NewDomainError(core.ModuleEmbedding, core.ErrorCodeUnavailable,
			fmt.Sprintf("embedding: read index %s: %v", f.Path, err))
	}

	var raw map[string]int
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, core.NewDomainError(core.ModuleEmbedding, core.ErrorCodeUnavailable,
			fmt.Sprintf("embedding: parse index %s: %v", f.Path, err))
	}
	if len(raw) == 0 {
		return nil, core.NewDomainError(core.ModuleEmbedding, core.ErrorCodeUnavailable,
			fmt.Sprintf("embedding: index %s is empty", f.Path))
	}

	index := make(map[int64]int, len(raw))
	for key, row := range raw {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return nil, core.NewDomainError(core.ModuleEmbedding, core.ErrorCodeUnavailable,
				fmt.Sprintf("embedding: index %s: bad movie id %q", f.Path, key))
		}
		index[id] = row
	}
	return index, nil
}

// 确保实现了接口
var (
	_ MatrixSource = (*FileMatrixSource)(nil)
	_ IndexSource  = (*FileIndexSource)(nil)
)
