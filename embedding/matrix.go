package embedding

import (
	"fmt"

	"github.com/rushteam/cinerec/core"
)

// Matrix 是 N×D 的稠密 Embedding 矩阵，行主序平铺存储。
// 加载完成后不可变；是否单位归一化由上游生成任务决定，
// 相似度一律按原始点积计算，归一化是前置条件而非此处职责。
type Matrix struct {
	data []float64
	rows int
	dim  int
}

// NewMatrix 从行切片构建矩阵，要求各行维度一致。
func NewMatrix(rows [][]float64) (*Matrix, error) {
	if len(rows) == 0 {
		return nil, core.NewDomainError(core.ModuleEmbedding, core.ErrorCodeInvalidInput, "embedding: matrix has no rows")
	}
	dim := len(rows[0])
	if dim == 0 {
		return nil, core.NewDomainError(core.ModuleEmbedding, core.ErrorCodeInvalidInput, "embedding: matrix has zero dimension")
	}
	m := &Matrix{
		data: make([]float64, 0, len(rows)*dim),
		rows: len(rows),
		dim:  dim,
	}
	for i, row := range rows {
		if len(row) != dim {
			return nil, core.NewDomainError(core.ModuleEmbedding, core.ErrorCodeInvalidInput,
				fmt.Sprintf("embedding: row %d has dimension %d, want %d", i, len(row), dim))
		}
		m.data = append(m.data, row...)
	}
	return m, nil
}

// Rows 返回矩阵行数（目录规模 N）。
func (m *Matrix) Rows() int { return m.rows }

// Dim 返回 Embedding 维度 D。
func (m *Matrix) Dim() int { return m.dim }

// Row 返回第 i 行的只读视图（不拷贝；调用方不得修改）。
func (m *Matrix) Row(i int) []float64 {
	return m.data[i*m.dim : (i+1)*m.dim]
}

// Dot 计算第 i 行与第 j 行的点积。
func (m *Matrix) Dot(i, j int) float64 {
	a, b := m.Row(i), m.Row(j)
	var sum float64
	for k := range a {
		sum += a[k] * b[k]
	}
	return sum
}

// DotVec 计算第 i 行与向量 v 的点积。
func (m *Matrix) DotVec(i int, v []float64) float64 {
	row := m.Row(i)
	var sum float64
	for k := range row {
		sum += row[k] * v[k]
	}
	return sum
}

// Scores 计算矩阵与向量的乘积（每行一个点积分数），返回长度为 N 的分数向量。
func (m *Matrix) Scores(v []float64) []float64 {
	out := make([]float64, m.rows)
	for i := 0; i < m.rows; i++ {
		out[i] = m.DotVec(i, v)
	}
	return out
}
