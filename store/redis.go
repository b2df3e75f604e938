package store

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rushteam/cinerec/core"
)

// Redis 键约定：
//   - user:interactions:{userID}  LIST，每个元素一条 JSON 交互记录
//   - movie:genres                HASH，field = movieID，value = JSON 字符串数组
//   - movie:popularity            ZSET，member = movieID，score = 热度
const (
	interactionKeyPrefix = "user:interactions:"
	genresKey            = "movie:genres"
	popularityKey        = "movie:popularity"
)

// RedisCatalog 是 Redis 实现的目录与交互存储。
// 生产环境常用，支持持久化、集群、哨兵等；
// 热度 ZSET 的 ZRevRange 直接驱动冷启动的热度榜。
type RedisCatalog struct {
	client *redis.Client
}

func NewRedisCatalog(addr string, db int) (*RedisCatalog, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return &RedisCatalog{client: client}, nil
}

func (r *RedisCatalog) Name() string { return "redis" }

// interactionRecord 是交互记录的 Redis JSON 形态。
type interactionRecord struct {
	UserID    int64     `json:"user_id"`
	MovieID   int64     `json:"movie_id"`
	Action    string    `json:"action"`
	Rating    *float64  `json:"rating,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func (r *RedisCatalog) Interactions(ctx context.Context, userID int64) ([]core.InteractionRecord, error) {
	key := interactionKeyPrefix + strconv.FormatInt(userID, 10)
	raw, err := r.client.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, err
	}

	out := make([]core.InteractionRecord, 0, len(raw))
	for _, item := range raw {
		var rec interactionRecord
		if json.Unmarshal([]byte(item), &rec) != nil {
			continue // 损坏的单条记录不中断读取
		}
		out = append(out, core.InteractionRecord{
			UserID:    rec.UserID,
			MovieID:   rec.MovieID,
			Action:    core.Action(rec.Action),
			Rating:    rec.Rating,
			Timestamp: rec.Timestamp,
		})
	}
	return out, nil
}

// AddInteraction 追加一条交互记录（引擎只读；写入供数据接入方使用）。
func (r *RedisCatalog) AddInteraction(ctx context.Context, rec core.InteractionRecord) error {
	data, err := json.Marshal(interactionRecord{
		UserID:    rec.UserID,
		MovieID:   rec.MovieID,
		Action:    string(rec.Action),
		Rating:    rec.Rating,
		Timestamp: rec.Timestamp,
	})
	if err != nil {
		return err
	}
	key := interactionKeyPrefix + strconv.FormatInt(rec.UserID, 10)
	return r.client.RPush(ctx, key, data).Err()
}

func (r *RedisCatalog) Genres(ctx context.Context, movieID int64) ([]string, error) {
	val, err := r.client.HGet(ctx, genresKey, strconv.FormatInt(movieID, 10)).Bytes()
	if err == redis.Nil {
		return nil, nil // 元数据缺失不是错误
	}
	if err != nil {
		return nil, err
	}

	var genres []string
	if err := json.Unmarshal(val, &genres); err != nil {
		return nil, err
	}
	return genres, nil
}

func (r *RedisCatalog) Popularity(ctx context.Context, movieID int64) (float64, error) {
	score, err := r.client.ZScore(ctx, popularityKey, strconv.FormatInt(movieID, 10)).Result()
	if err == redis.Nil {
		return 0, core.ErrCatalogNotFound
	}
	return score, err
}

func (r *RedisCatalog) MostPopular(ctx context.Context, n int) ([]int64, error) {
	if n <= 0 {
		return nil, nil
	}
	members, err := r.client.ZRevRange(ctx, popularityKey, 0, int64(n-1)).Result()
	if err != nil {
		return nil, err
	}

	out := make([]int64, 0, len(members))
	for _, m := range members {
		if id, err := strconv.ParseInt(m, 10, 64); err == nil {
			out = append(out, id)
		}
	}
	return out, nil
}

// SetMovie 写入电影元数据：genres 哈希 + 热度有序集合。
func (r *RedisCatalog) SetMovie(ctx context.Context, movieID int64, genres []string, popularity float64) error {
	data, err := json.Marshal(genres)
	if err != nil {
		return err
	}
	member := strconv.FormatInt(movieID, 10)

	pipe := r.client.Pipeline()
	pipe.HSet(ctx, genresKey, member, data)
	pipe.ZAdd(ctx, popularityKey, redis.Z{Score: popularity, Member: member})
	_, err = pipe.Exec(ctx)
	return err
}

func (r *RedisCatalog) Close() error {
	return r.client.Close()
}

// 确保实现了接口
var (
	_ core.InteractionReader = (*RedisCatalog)(nil)
	_ core.CatalogMetadata   = (*RedisCatalog)(nil)
	_ core.PopularityIndex   = (*RedisCatalog)(nil)
)
