package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFromYAML(t *testing.T) {
	path := writeConfig(t, "engine.yaml", `
engine:
  embeddings: /data/embeddings.bin
  index: /data/index.json
  catalog:
    backend: redis
    redis:
      addr: localhost:6379
      db: 2
  feast:
    host: localhost
    port: 6565
    project: movies
    feature_view: movie_stats
  half_life_days: 7
  filters:
    blacklist: [101, 102]
    rule: 'movie.popularity > 1.0'
`)

	cfg, err := LoadFromYAML(path)
	if err != nil {
		t.Fatalf("LoadFromYAML() error = %v", err)
	}

	ec := cfg.Engine
	if ec.Embeddings != "/data/embeddings.bin" || ec.Index != "/data/index.json" {
		t.Errorf("paths = %q, %q", ec.Embeddings, ec.Index)
	}
	if ec.Catalog.Backend != "redis" || ec.Catalog.Redis.Addr != "localhost:6379" || ec.Catalog.Redis.DB != 2 {
		t.Errorf("catalog = %+v", ec.Catalog)
	}
	if ec.Feast == nil || ec.Feast.Project != "movies" || ec.Feast.FeatureView != "movie_stats" {
		t.Errorf("feast = %+v", ec.Feast)
	}
	if ec.HalfLifeDays != 7 {
		t.Errorf("half_life_days = %v, want 7", ec.HalfLifeDays)
	}
	if len(ec.Filters.Blacklist) != 2 || ec.Filters.Rule == "" {
		t.Errorf("filters = %+v", ec.Filters)
	}
}

func TestLoadFromJSON(t *testing.T) {
	path := writeConfig(t, "engine.json", `{
  "engine": {
    "embeddings": "/data/embeddings.bin",
    "index": "/data/index.json",
    "catalog": {"backend": "memory"}
  }
}`)

	cfg, err := LoadFromJSON(path)
	if err != nil {
		t.Fatalf("LoadFromJSON() error = %v", err)
	}
	if cfg.Engine.Catalog.Backend != "memory" {
		t.Errorf("backend = %q, want memory", cfg.Engine.Catalog.Backend)
	}
}

func TestBuildEngine(t *testing.T) {
	cfg := &Config{Engine: EngineConfig{
		Embeddings: "/data/embeddings.bin",
		Index:      "/data/index.json",
		Catalog:    CatalogConfig{Backend: "memory"},
		Filters: FilterConfig{
			Blacklist: []int64{101},
			Rule:      "movie.popularity > 1.0",
		},
	}}

	// embedding files load lazily, assembly succeeds without them on disk
	e, err := cfg.BuildEngine()
	if err != nil {
		t.Fatalf("BuildEngine() error = %v", err)
	}
	if e == nil {
		t.Fatalf("BuildEngine() returned nil engine")
	}
}

func TestBuildEngine_Invalid(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{
			name: "missing paths",
			cfg:  Config{Engine: EngineConfig{Catalog: CatalogConfig{Backend: "memory"}}},
		},
		{
			name: "unknown backend",
			cfg: Config{Engine: EngineConfig{
				Embeddings: "a.bin", Index: "b.json",
				Catalog: CatalogConfig{Backend: "cassandra"},
			}},
		},
		{
			name: "redis without addr",
			cfg: Config{Engine: EngineConfig{
				Embeddings: "a.bin", Index: "b.json",
				Catalog: CatalogConfig{Backend: "redis"},
			}},
		},
		{
			name: "bad rule expression",
			cfg: Config{Engine: EngineConfig{
				Embeddings: "a.bin", Index: "b.json",
				Catalog: CatalogConfig{Backend: "memory"},
				Filters: FilterConfig{Rule: "movie.popularity >"},
			}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.cfg.BuildEngine(); err == nil {
				t.Errorf("BuildEngine() succeeded, want error")
			}
		})
	}
}
