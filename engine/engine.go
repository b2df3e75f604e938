// Package engine 是推荐引擎的编排层：把 Embedding 仓库、交互读取、
// 四路信号、自适应权重、融合与 MMR 重排串成两条公开操作：
// Recommend（个性化推荐）与 SimilarMovies（相似电影查询）。
package engine

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/cinerec/core"
	"github.com/rushteam/cinerec/embedding"
	"github.com/rushteam/cinerec/filter"
	"github.com/rushteam/cinerec/rerank"
	"github.com/rushteam/cinerec/signal"
)

// 默认请求参数，与上游调用约定一致。
const (
	defaultK       = 10
	defaultLambda  = 0.7
	defaultSimilar = 6
)

// 冷启动分数 = 全局热度 / popularityScale，压到与融合分可比的尺度。
const popularityScale = 1000.0

// Engine 是推荐编排器。所有依赖显式注入：
// Embedding 仓库是被传入的资源句柄而非进程级单例，
// 重复构建即可在隔离环境中验证加载契约。
//
// Engine 构建后只读，单实例可服务任意并发请求。
type Engine struct {
	store        *embedding.Store
	interactions core.InteractionReader
	metadata     core.CatalogMetadata
	popularity   core.PopularityIndex

	interest      *signal.Interest
	discovery     *signal.Discovery
	collaborative *signal.Collaborative
	category      *signal.Category

	filters    []filter.Filter
	filterMeta bool // 过滤器链是否需要逐候选取元数据
}

// Option 配置 Engine 的可选行为。
type Option func(*Engine)

// WithClock 注入时间来源（兴趣信号的时间衰减基准，测试用固定时钟）。
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.interest.Now = now }
}

// WithHalfLife 覆盖兴趣信号的时间衰减半衰期（天）。
func WithHalfLife(days float64) Option {
	return func(e *Engine) { e.interest.HalfLifeDays = days }
}

// WithFilters 追加候选过滤器（黑名单、CEL 业务规则等），在 MMR 之前生效。
func WithFilters(filters ...filter.Filter) Option {
	return func(e *Engine) { e.filters = append(e.filters, filters...) }
}

// New 构建推荐引擎。
//   - store: Embedding 仓库（必需）
//   - interactions: 交互历史读取（必需）
//   - metadata: 目录元数据，Category 信号与过滤器消费（可为 nil，信号退化为零向量）
//   - popularity: 热度排序，冷启动兜底（可为 nil，冷启动时报 NOT_SUPPORTED）
func New(
	store *embedding.Store,
	interactions core.InteractionReader,
	metadata core.CatalogMetadata,
	popularity core.PopularityIndex,
	opts ...Option,
) *Engine {
	e := &Engine{
		store:         store,
		interactions:  interactions,
		metadata:      metadata,
		popularity:    popularity,
		interest:      &signal.Interest{},
		discovery:     &signal.Discovery{},
		collaborative: &signal.Collaborative{},
		category:      &signal.Category{Metadata: metadata},
	}
	for _, opt := range opts {
		opt(e)
	}
	e.filterMeta = filter.NeedsMetadata(e.filters)
	return e
}

// Recommend 生成用户的个性化推荐。
//   - k <= 0 时取默认 10
//   - lambda 越界 [0,1] 时取默认 0.7
//
// 冷启动（无观看且无跳过）直接返回热度榜前 k，四路解释分量为 0；
// 否则并发计算四路信号、按历史规模选权重、融合、剔除已观看行、MMR 重排。
// 相同输入两次调用产出逐字节一致的结果：全链路无随机因素。
func (e *Engine) Recommend(ctx context.Context, userID int64, k int, lambda float64) ([]*core.Recommendation, error) {
	if k <= 0 {
		k = defaultK
	}
	if lambda < 0 || lambda > 1 {
		lambda = defaultLambda
	}

	snap, err := e.store.Snapshot(ctx)
	if err != nil {
		return nil, err // UNAVAILABLE 原样透传，引擎内不重试
	}

	records, err := e.interactions.Interactions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("engine: read interactions for user %d: %w", userID, err)
	}
	hist := core.BuildHistory(records)

	if hist.Empty() {
		return e.coldStart(ctx, k)
	}

	// 四路信号并发计算；槽位固定：interest / discovery / collaborative / category
	computers := [4]signal.Computer{e.interest, e.discovery, e.collaborative, e.category}
	var vectors [4][]float64

	eg, gctx := errgroup.WithContext(ctx)
	for i, c := range computers {
		i, c := i, c
		eg.Go(func() error {
			vec, err := c.Compute(gctx, snap, hist)
			if err != nil {
				return fmt.Errorf("engine: %s: %w", c.Name(), err)
			}
			vectors[i] = vec
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	weights := signal.AdaptiveWeights(len(hist.Watched))
	combined := signal.Fuse(weights, vectors[0], vectors[1], vectors[2], vectors[3])

	// 候选集 = 目录行 - 已观看行 - 过滤器剔除行，按行号升序保证 MMR 平分时的确定性
	watched := hist.WatchedSet()
	candidates := make([]int, 0, snap.Matrix.Rows())
	for row := 0; row < snap.Matrix.Rows(); row++ {
		movieID, ok := snap.MovieAt(row)
		if !ok {
			continue // 防御：无反向映射的行静默跳过
		}
		if _, seen := watched[movieID]; seen {
			continue
		}
		if !e.allow(ctx, movieID, combined[row]) {
			continue
		}
		candidates = append(candidates, row)
	}

	mmr := &rerank.MMR{Lambda: lambda}
	selected := mmr.Rerank(snap.Matrix, candidates, combined, k)

	out := make([]*core.Recommendation, 0, len(selected))
	for _, row := range selected {
		movieID, ok := snap.MovieAt(row)
		if !ok {
			continue
		}
		out = append(out, &core.Recommendation{
			MovieID: movieID,
			Score:   combined[row],
			Explanation: core.Explanation{
				Interest:      weights.Interest * vectors[0][row],
				Discovery:     weights.Discovery * vectors[1][row],
				Collaborative: weights.Collaborative * vectors[2][row],
				Category:      weights.Category * vectors[3][row],
				Total:         combined[row],
			},
		})
	}
	return out, nil
}

// coldStart 是零历史用户的确定性路径：热度榜前 k，不触碰任何向量计算。
func (e *Engine) coldStart(ctx context.Context, k int) ([]*core.Recommendation, error) {
	if e.popularity == nil {
		return nil, core.ErrCatalogNotSupported
	}
	ids, err := e.popularity.MostPopular(ctx, k)
	if err != nil {
		return nil, fmt.Errorf("engine: most popular: %w", err)
	}

	out := make([]*core.Recommendation, 0, len(ids))
	for _, id := range ids {
		var pop float64
		if e.metadata != nil {
			if p, err := e.metadata.Popularity(ctx, id); err == nil {
				pop = p
			}
		}
		score := pop / popularityScale
		out = append(out, &core.Recommendation{
			MovieID:     id,
			Score:       score,
			Explanation: core.Explanation{Total: score},
		})
	}
	return out, nil
}

// allow 对单个候选跑过滤器链；任何一个过滤器命中即剔除。
// 过滤器自身出错时跳过该过滤器，不中断整个请求。
// 元数据按需获取：纯 ID 过滤（如黑名单）不触发逐候选的远端查询。
func (e *Engine) allow(ctx context.Context, movieID int64, score float64) bool {
	if len(e.filters) == 0 {
		return true
	}

	cand := &filter.Candidate{MovieID: movieID, Score: score}
	if e.filterMeta && e.metadata != nil {
		if genres, err := e.metadata.Genres(ctx, movieID); err == nil {
			cand.Genres = genres
		}
		if pop, err := e.metadata.Popularity(ctx, movieID); err == nil {
			cand.Popularity = pop
		}
	}

	for _, f := range e.filters {
		drop, err := f.ShouldFilter(ctx, cand)
		if err != nil {
			continue
		}
		if drop {
			return false
		}
	}
	return true
}

// SimilarMovies 按余弦/点积相似度查询与指定电影最相似的 n 部电影。
//   - 查询电影没有 Embedding 行时返回 NOT_EMBEDDED（调用方视为"该片不支持此功能"）
//   - 结果跳过查询电影本身与 exclude 集合中的 ID
//   - n <= 0 时取默认 6
func (e *Engine) SimilarMovies(ctx context.Context, movieID int64, n int, exclude map[int64]struct{}) ([]core.SimilarMovie, error) {
	if n <= 0 {
		n = defaultSimilar
	}

	snap, err := e.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	row, ok := snap.RowOf(movieID)
	if !ok {
		return nil, core.NewDomainError(core.ModuleEmbedding, core.ErrorCodeNotEmbedded,
			fmt.Sprintf("engine: movie %d has no embedding", movieID))
	}

	scores := snap.Matrix.Scores(snap.Matrix.Row(row))

	// 按分数降序、行号升序的稳定排序
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		si, sj := scores[order[i]], scores[order[j]]
		if si != sj {
			return si > sj
		}
		return order[i] < order[j]
	})

	out := make([]core.SimilarMovie, 0, n)
	for _, idx := range order {
		cand, mapped := snap.MovieAt(idx)
		if !mapped || cand == movieID {
			continue
		}
		if _, skip := exclude[cand]; skip {
			continue
		}
		out = append(out, core.SimilarMovie{MovieID: cand, Similarity: scores[idx]})
		if len(out) >= n {
			break
		}
	}
	return out, nil
}
