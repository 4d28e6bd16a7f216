package service

import (
	"context"
	"time"

	"github.com/noah-isme/scolarite-api/internal/models"
)

type statisticsRepository interface {
	ClassHeadcounts(ctx context.Context) ([]models.ClassHeadcount, error)
	General(ctx context.Context) (*models.GeneralStatistics, error)
}

// StatisticsService serves institution wide counters, cached when a cache is configured.
type StatisticsService struct {
	repo  statisticsRepository
	cache *CacheService
	ttl   time.Duration
	now   func() time.Time
}

// NewStatisticsService constructs a StatisticsService. cache may be nil.
func NewStatisticsService(repo statisticsRepository, cache *CacheService, ttl time.Duration) *StatisticsService {
	return &StatisticsService{repo: repo, cache: cache, ttl: ttl, now: time.Now}
}

// General returns totals across programs, classes, students, sessions and fees.
func (s *StatisticsService) General(ctx context.Context) (*models.GeneralStatistics, error) {
	var cached models.GeneralStatistics
	if hit, err := s.cache.Get(ctx, statisticsCacheKey, &cached); err == nil && hit {
		return &cached, nil
	}
	stats, err := s.repo.General(ctx)
	if err != nil {
		return nil, internalError(err, "failed to load statistics")
	}
	stats.GeneratedAt = s.now().UTC()
	_ = s.cache.Set(ctx, statisticsCacheKey, stats, s.ttl)
	return stats, nil
}

// ClassHeadcounts returns the number of active and inactive students per class.
func (s *StatisticsService) ClassHeadcounts(ctx context.Context) ([]models.ClassHeadcount, error) {
	var cached []models.ClassHeadcount
	if hit, err := s.cache.Get(ctx, classHeadcountsCacheKey, &cached); err == nil && hit {
		return cached, nil
	}
	rows, err := s.repo.ClassHeadcounts(ctx)
	if err != nil {
		return nil, internalError(err, "failed to load class headcounts")
	}
	for i := range rows {
		rows[i].ActivePercentage = activePercentage(rows[i].Active, rows[i].Total)
	}
	_ = s.cache.Set(ctx, classHeadcountsCacheKey, rows, s.ttl)
	return rows, nil
}

func activePercentage(active, total int) float64 {
	if total == 0 {
		return 0
	}
	return round2(float64(active) * 100 / float64(total))
}
