package filter

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
	celEnvErr  error
)

// getCELEnv 获取或创建 CEL 环境，定义表达式可见的变量
func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = cel.NewEnv(
			cel.Variable("movie", cel.DynType),
			cel.Variable("score", cel.DoubleType),
		)
	})
	return celEnv, celEnvErr
}

// Rule 是 CEL (Common Expression Language) 表达式驱动的候选过滤器。
// 表达式描述"保留条件"：求值为 true 的候选保留，false 的被过滤。
//
// 表达式语法（CEL 标准语法）：
//   - 数值：movie.popularity > 1.0 / score >= 0.5
//   - 包含："恐怖" in movie.genres / movie.genres.exists(g, g == "动作")
//   - 逻辑：movie.popularity > 1.0 && !("恐怖" in movie.genres)
//
// 表达式在构造时编译一次并缓存，Eval 可被并发调用。
type Rule struct {
	expr string
	prg  cel.Program
}

// NewRule 编译表达式并创建过滤器；表达式必须返回布尔值。
func NewRule(expr string) (*Rule, error) {
	if expr == "" {
		return nil, fmt.Errorf("filter: empty rule expression")
	}
	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("filter: cel env: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("filter: compile %q: %w", expr, issues.Err())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("filter: program %q: %w", expr, err)
	}
	return &Rule{expr: expr, prg: prg}, nil
}

func (r *Rule) Name() string { return "filter.rule" }

// Expr 返回原始表达式（用于日志/观测）。
func (r *Rule) Expr() string { return r.expr }

// NeedsMetadata 表达式可引用 movie.genres / movie.popularity，需要元数据。
func (r *Rule) NeedsMetadata() bool { return true }

func (r *Rule) ShouldFilter(ctx context.Context, c *Candidate) (bool, error) {
	genres := c.Genres
	if genres == nil {
		genres = []string{}
	}
	input := map[string]any{
		"movie": map[string]any{
			"id":         c.MovieID,
			"genres":     genres,
			"popularity": c.Popularity,
		},
		"score": c.Score,
	}

	out, _, err := r.prg.Eval(input)
	if err != nil {
		return false, fmt.Errorf("filter: eval %q: %w", r.expr, err)
	}
	keep, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("filter: rule %q must return boolean, got %T", r.expr, out.Value())
	}
	return !keep, nil
}

var (
	_ Filter        = (*Rule)(nil)
	_ MetadataAware = (*Rule)(nil)
)
