package core

import "context"

// InteractionReader 是交互历史的领域接口。
//
// 设计原则：
//   - 定义在领域层（core），由基础设施层（store）实现
//   - 遵循依赖倒置原则：领域层定义接口，基础设施层实现接口
//   - 引擎只读取交互记录，从不写入
//
// 实现：
//   - store.MemoryCatalog 实现此接口
//   - store.RedisCatalog 实现此接口
type InteractionReader interface {
	// Interactions 返回指定用户的全部交互记录（调用时刻的快照）
	Interactions(ctx context.Context, userID int64) ([]InteractionRecord, error)
}

// CatalogMetadata 是电影目录元数据的领域接口，按电影粒度提供：
//   - Genres: 类型标签集合（Category 信号的唯一数据来源）
//   - Popularity: 全局热度（冷启动兜底的排序键）
//
// 元数据缺失不是错误：Genres 对无记录的电影返回空集合。
type CatalogMetadata interface {
	// Genres 返回电影的类型标签；无元数据时返回空切片，不报错
	Genres(ctx context.Context, movieID int64) ([]string, error)

	// Popularity 返回电影的全局热度分
	Popularity(ctx context.Context, movieID int64) (float64, error)
}

// PopularityIndex 是热度排序的领域接口，驱动冷启动路径。
// 与 CatalogMetadata 分离：部分后端（如 Feast）能按 ID 取热度，
// 却不支持全目录排序，此时只实现 CatalogMetadata 即可。
type PopularityIndex interface {
	// MostPopular 返回按热度降序的前 n 个电影 ID
	MostPopular(ctx context.Context, n int) ([]int64, error)
}

// Catalog 错误定义（使用统一的 DomainError）
var (
	// ErrCatalogNotFound 表示记录不存在
	ErrCatalogNotFound = NewDomainError(ModuleCatalog, ErrorCodeNotFound, "catalog: not found")

	// ErrCatalogNotSupported 表示后端不支持该操作
	ErrCatalogNotSupported = NewDomainError(ModuleCatalog, ErrorCodeNotSupported, "catalog: operation not supported")
)
