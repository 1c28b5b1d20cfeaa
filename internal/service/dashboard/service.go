package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"nexus-dashboard/internal/domain"
	"nexus-dashboard/internal/service/analytics"

	"github.com/redis/go-redis/v9"
)

const statsTTL = 5 * time.Minute

// Source is the state the dashboard reads from.
type Source interface {
	Snapshot() *domain.Snapshot
	Revision() uint64
}

type Overview struct {
	Stats analytics.Stats         `json:"stats"`
	Goal  *analytics.GoalProgress `json:"goal"`
}

type Service interface {
	GetStats(ctx context.Context) (*analytics.Stats, error)
	GetOverview(ctx context.Context, now time.Time) (*Overview, error)
	GetAnalytics(ctx context.Context, r analytics.Range, now time.Time, from, to *time.Time) (*analytics.Analytics, error)
	GetProjectFinancials(ctx context.Context) []analytics.ProjectFinancials
	GetGoalProgress(ctx context.Context, now time.Time) *analytics.GoalProgress
}

type service struct {
	source Source
	redis  *redis.Client
}

func NewService(source Source, redis *redis.Client) Service {
	return &service{
		source: source,
		redis:  redis,
	}
}

// GetStats serves the global stats from Redis when the cached entry matches the current
// revision.
func (s *service) GetStats(ctx context.Context) (*analytics.Stats, error) {
	cacheKey := fmt.Sprintf("dashboard:stats:%d", s.source.Revision())

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var stats analytics.Stats
			if json.Unmarshal([]byte(cached), &stats) == nil {
				return &stats, nil
			}
		}
	}

	stats := analytics.GlobalStats(s.source.Snapshot().Projects)

	if s.redis != nil {
		if statsJSON, err := json.Marshal(stats); err == nil {
			_ = s.redis.Set(ctx, cacheKey, statsJSON, statsTTL).Err()
		}
	}

	return &stats, nil
}

func (s *service) GetOverview(ctx context.Context, now time.Time) (*Overview, error) {
	stats, err := s.GetStats(ctx)
	if err != nil {
		return nil, err
	}
	return &Overview{
		Stats: *stats,
		Goal:  s.GetGoalProgress(ctx, now),
	}, nil
}

func (s *service) GetAnalytics(ctx context.Context, r analytics.Range, now time.Time, from, to *time.Time) (*analytics.Analytics, error) {
	w, err := analytics.Resolve(r, now, from, to)
	if err != nil {
		return nil, err
	}
	a := analytics.Filtered(s.source.Snapshot().Projects, w)
	return &a, nil
}

func (s *service) GetProjectFinancials(ctx context.Context) []analytics.ProjectFinancials {
	return analytics.AllFinancials(s.source.Snapshot().Projects)
}

func (s *service) GetGoalProgress(ctx context.Context, now time.Time) *analytics.GoalProgress {
	snap := s.source.Snapshot()
	return analytics.ActiveProgress(snap.Goals, snap.Projects, now)
}
