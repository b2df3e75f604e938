// Package feast 提供 Feast Feature Store 形式的电影元数据适配：
// genres 与 popularity 作为在线特征按 movie_id 实时获取。
//
// Feast 是一个开源的 Feature Store；这里使用官方 Go SDK 的 gRPC 客户端。
// 参考：https://github.com/feast-dev/feast
package feast

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	feastsdk "github.com/feast-dev/feast/sdk/go"
	feasttypes "github.com/feast-dev/feast/sdk/go/protos/feast/types"

	"github.com/rushteam/cinerec/core"
)

// 默认的特征视图与实体键命名。
const (
	defaultFeatureView = "movie_stats"
	defaultEntityKey   = "movie_id"
	defaultTimeout     = 5 * time.Second
)

// MetadataStore 是 Feast 在线特征实现的 core.CatalogMetadata。
//
// 特征约定（默认视图 movie_stats）：
//   - movie_stats:genres      string list（或逗号分隔 string）
//   - movie_stats:popularity  double / float / int
//
// 设计说明：
//   - 只实现 CatalogMetadata；Feast 按实体取特征，不支持全目录热度排序，
//     冷启动的 PopularityIndex 应由 Redis/内存目录提供
//   - 实时性好，适合元数据频繁更新、推荐进程无本地目录副本的部署形态
type MetadataStore struct {
	client *feastsdk.GrpcClient

	// Project Feast 项目名称
	Project string

	// FeatureView 特征视图名称，为空时取 "movie_stats"
	FeatureView string

	// EntityKey 实体键名称，为空时取 "movie_id"
	EntityKey string

	// Timeout 单次特征请求的超时，<= 0 时取 5s
	Timeout time.Duration
}

// NewMetadataStore 连接 Feast Feature Server 并创建元数据存储。
func NewMetadataStore(host string, port int, project string) (*MetadataStore, error) {
	if port == 0 {
		port = 6565 // Feast gRPC 默认端口
	}
	client, err := feastsdk.NewGrpcClient(host, port)
	if err != nil {
		return nil, fmt.Errorf("feast: connect %s:%d: %w", host, port, err)
	}
	return &MetadataStore{
		client:  client,
		Project: project,
	}, nil
}

func (m *MetadataStore) Name() string { return "feast" }

func (m *MetadataStore) Genres(ctx context.Context, movieID int64) ([]string, error) {
	val, err := m.feature(ctx, movieID, "genres")
	if err != nil {
		if core.IsNotFound(err) {
			return nil, nil // 元数据缺失不是错误
		}
		return nil, err
	}

	switch v := val.GetVal().(type) {
	case *feasttypes.Value_StringListVal:
		return v.StringListVal.GetVal(), nil
	case *feasttypes.Value_StringVal:
		if v.StringVal == "" {
			return nil, nil
		}
		parts := strings.Split(v.StringVal, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if g := strings.TrimSpace(p); g != "" {
				out = append(out, g)
			}
		}
		return out, nil
	default:
		return nil, nil
	}
}

func (m *MetadataStore) Popularity(ctx context.Context, movieID int64) (float64, error) {
	val, err := m.feature(ctx, movieID, "popularity")
	if err != nil {
		return 0, err
	}

	switch v := val.GetVal().(type) {
	case *feasttypes.Value_DoubleVal:
		return v.DoubleVal, nil
	case *feasttypes.Value_FloatVal:
		return float64(v.FloatVal), nil
	case *feasttypes.Value_Int64Val:
		return float64(v.Int64Val), nil
	case *feasttypes.Value_Int32Val:
		return float64(v.Int32Val), nil
	case *feasttypes.Value_StringVal:
		if f, err := strconv.ParseFloat(v.StringVal, 64); err == nil {
			return f, nil
		}
		return 0, core.ErrCatalogNotFound
	default:
		return 0, core.ErrCatalogNotFound
	}
}

// feature 取单部电影的单个在线特征。
func (m *MetadataStore) feature(ctx context.Context, movieID int64, name string) (*feasttypes.Value, error) {
	view := m.FeatureView
	if view == "" {
		view = defaultFeatureView
	}
	entityKey := m.EntityKey
	if entityKey == "" {
		entityKey = defaultEntityKey
	}
	timeout := m.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ref := view + ":" + name
	resp, err := m.client.GetOnlineFeatures(ctx, &feastsdk.OnlineFeaturesRequest{
		Features: []string{ref},
		Entities: []feastsdk.Row{{entityKey: feastsdk.Int64Val(movieID)}},
		Project:  m.Project,
	})
	if err != nil {
		return nil, fmt.Errorf("feast: get online features: %w", err)
	}

	rows := resp.Rows()
	if len(rows) == 0 {
		return nil, core.ErrCatalogNotFound
	}
	val, ok := rows[0][ref]
	if !ok || val == nil {
		return nil, core.ErrCatalogNotFound
	}
	return val, nil
}

var _ core.CatalogMetadata = (*MetadataStore)(nil)
