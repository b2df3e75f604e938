package core

import (
	"sort"
	"time"
)

// Action 是用户对电影的一次行为类型。
type Action string

const (
	ActionWatch     Action = "watch"     // 观看
	ActionRate      Action = "rate"      // 评分
	ActionSkip      Action = "skip"      // 跳过（负反馈）
	ActionWatchlist Action = "watchlist" // 加入待看列表
)

// InteractionRecord 是一条用户-电影交互记录。
// 同一 (user, movie) 可存在多条记录（每种 Action 一条）；
// 引擎把用户的记录集合视为调用时刻的只读快照，从不修改。
type InteractionRecord struct {
	UserID    int64
	MovieID   int64
	Action    Action
	Rating    *float64 // 显式评分 0..10，仅 ActionRate 携带
	Timestamp time.Time
}

// WatchEvent 是一次观看事件（History 内部视图）。
type WatchEvent struct {
	MovieID   int64
	Timestamp time.Time
}

// History 是单个用户交互历史的快照，按信号计算器需要的形态切片：
//   - Watched: 观看事件（含时间，驱动时间衰减）
//   - Ratings: 显式评分（驱动评分加权与负反馈判定）
//   - Skipped: 跳过的电影（纯负反馈）
//
// History 构建后只读，可被多个信号计算器并发消费。
type History struct {
	Watched []WatchEvent
	Ratings map[int64]float64
	Skipped []int64
}

// BuildHistory 把原始交互记录切片整理为 History 快照。
// watchlist 记录不参与任何信号计算，但保留在原始记录中由上层自行使用。
func BuildHistory(records []InteractionRecord) *History {
	h := &History{
		Ratings: make(map[int64]float64),
	}
	for _, rec := range records {
		switch rec.Action {
		case ActionWatch:
			h.Watched = append(h.Watched, WatchEvent{
				MovieID:   rec.MovieID,
				Timestamp: rec.Timestamp,
			})
		case ActionRate:
			if rec.Rating != nil {
				h.Ratings[rec.MovieID] = *rec.Rating
			}
		case ActionSkip:
			h.Skipped = append(h.Skipped, rec.MovieID)
		}
	}
	return h
}

// WatchedSet 返回观看过的电影 ID 集合（用于候选排除）。
func (h *History) WatchedSet() map[int64]struct{} {
	set := make(map[int64]struct{}, len(h.Watched))
	for _, w := range h.Watched {
		set[w.MovieID] = struct{}{}
	}
	return set
}

// Disliked 返回"不喜欢"集合：跳过的电影 ∪ 评分低于 5.0 的电影。
// 结果去重且顺序确定：Skipped 原序在前，低评分按 ID 升序在后。
func (h *History) Disliked() []int64 {
	seen := make(map[int64]struct{}, len(h.Skipped))
	out := make([]int64, 0, len(h.Skipped))
	for _, id := range h.Skipped {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	lowRated := make([]int64, 0, len(h.Ratings))
	for id, rating := range h.Ratings {
		if rating >= 5.0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		lowRated = append(lowRated, id)
	}
	sort.Slice(lowRated, func(i, j int) bool { return lowRated[i] < lowRated[j] })
	return append(out, lowRated...)
}

// Empty 表示冷启动状态：既没有观看也没有跳过记录。
// 仅有评分不改变判定，此类用户同样走热度榜。
func (h *History) Empty() bool {
	return len(h.Watched) == 0 && len(h.Skipped) == 0
}
