// Package config 提供配置驱动的引擎组装：YAML/JSON 配置文件一键构建 engine.Engine。
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rushteam/cinerec/core"
	"github.com/rushteam/cinerec/embedding"
	"github.com/rushteam/cinerec/engine"
	"github.com/rushteam/cinerec/feast"
	"github.com/rushteam/cinerec/filter"
	"github.com/rushteam/cinerec/store"
)

// Config 是引擎的配置结构（支持 YAML/JSON）。
type Config struct {
	Engine EngineConfig `yaml:"engine" json:"engine"`
}

// EngineConfig 描述一套完整的引擎装配：
// Embedding 文件、目录后端、可选的 Feast 元数据与候选过滤规则。
type EngineConfig struct {
	// Embeddings 矩阵二进制文件路径（uint32 N, uint32 D, N*D float32 小端）
	Embeddings string `yaml:"embeddings" json:"embeddings"`

	// Index MovieID→行号 JSON 索引文件路径
	Index string `yaml:"index" json:"index"`

	// Catalog 目录/交互存储后端
	Catalog CatalogConfig `yaml:"catalog" json:"catalog"`

	// Feast 可选：元数据改由 Feast 在线特征提供（交互与热度仍走 Catalog）
	Feast *FeastConfig `yaml:"feast,omitempty" json:"feast,omitempty"`

	// HalfLifeDays 兴趣信号时间衰减半衰期（天），0 取默认 14
	HalfLifeDays float64 `yaml:"half_life_days" json:"half_life_days"`

	// Filters 候选过滤配置
	Filters FilterConfig `yaml:"filters" json:"filters"`
}

// CatalogConfig 选择目录后端：memory / redis。
type CatalogConfig struct {
	Backend string      `yaml:"backend" json:"backend"`
	Redis   RedisConfig `yaml:"redis" json:"redis"`
}

// RedisConfig 是 Redis 目录后端的连接配置。
type RedisConfig struct {
	Addr string `yaml:"addr" json:"addr"`
	DB   int    `yaml:"db" json:"db"`
}

// FeastConfig 是 Feast 元数据的连接配置。
type FeastConfig struct {
	Host        string `yaml:"host" json:"host"`
	Port        int    `yaml:"port" json:"port"`
	Project     string `yaml:"project" json:"project"`
	FeatureView string `yaml:"feature_view" json:"feature_view"`
}

// FilterConfig 是候选过滤配置：黑名单 ID 与 CEL 保留规则。
type FilterConfig struct {
	Blacklist []int64 `yaml:"blacklist" json:"blacklist"`
	Rule      string  `yaml:"rule" json:"rule"`
}

// LoadFromYAML 从 YAML 文件加载配置。
func LoadFromYAML(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return &cfg, nil
}

// LoadFromJSON 从 JSON 文件加载配置。
func LoadFromJSON(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	return &cfg, nil
}

// BuildEngine 按配置装配推荐引擎。
func (c *Config) BuildEngine() (*engine.Engine, error) {
	ec := c.Engine
	if ec.Embeddings == "" || ec.Index == "" {
		return nil, fmt.Errorf("config: embeddings and index paths are required")
	}

	embStore := embedding.NewStore(
		&embedding.FileMatrixSource{Path: ec.Embeddings},
		&embedding.FileIndexSource{Path: ec.Index},
	)

	var (
		reader     core.InteractionReader
		metadata   core.CatalogMetadata
		popularity core.PopularityIndex
	)
	switch ec.Catalog.Backend {
	case "", "memory":
		catalog := store.NewMemoryCatalog()
		reader, metadata, popularity = catalog, catalog, catalog
	case "redis":
		if ec.Catalog.Redis.Addr == "" {
			return nil, fmt.Errorf("config: redis catalog requires addr")
		}
		catalog, err := store.NewRedisCatalog(ec.Catalog.Redis.Addr, ec.Catalog.Redis.DB)
		if err != nil {
			return nil, fmt.Errorf("config: connect redis catalog: %w", err)
		}
		reader, metadata, popularity = catalog, catalog, catalog
	default:
		return nil, fmt.Errorf("config: unsupported catalog backend %q (supported: memory, redis)", ec.Catalog.Backend)
	}

	// Feast 仅替换元数据；交互读取与热度排序仍由目录后端承担
	if ec.Feast != nil {
		ms, err := feast.NewMetadataStore(ec.Feast.Host, ec.Feast.Port, ec.Feast.Project)
		if err != nil {
			return nil, fmt.Errorf("config: connect feast: %w", err)
		}
		if ec.Feast.FeatureView != "" {
			ms.FeatureView = ec.Feast.FeatureView
		}
		metadata = ms
	}

	var opts []engine.Option
	if ec.HalfLifeDays > 0 {
		opts = append(opts, engine.WithHalfLife(ec.HalfLifeDays))
	}
	if len(ec.Filters.Blacklist) > 0 {
		opts = append(opts, engine.WithFilters(filter.NewBlacklist(ec.Filters.Blacklist)))
	}
	if ec.Filters.Rule != "" {
		rule, err := filter.NewRule(ec.Filters.Rule)
		if err != nil {
			return nil, fmt.Errorf("config: build rule: %w", err)
		}
		opts = append(opts, engine.WithFilters(rule))
	}

	return engine.New(embStore, reader, metadata, popularity, opts...), nil
}
