package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/admission-planner-api/internal/models"
	appErrors "github.com/noah-isme/admission-planner-api/pkg/errors"
)

const (
	searchCachePrefix  = "programs:search:"
	searchCacheVersion = "v1"
)

// CacheRepository abstracts persistence for cached payloads.
type CacheRepository interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// CacheService orchestrates cache operations and related metrics.
type CacheService struct {
	repo       CacheRepository
	metrics    *MetricsService
	defaultTTL time.Duration
	logger     *zap.Logger
	enabled    bool
}

// NewCacheService constructs a cache service.
func NewCacheService(repo CacheRepository, metrics *MetricsService, defaultTTL time.Duration, logger *zap.Logger, enabled bool) *CacheService {
	if defaultTTL <= 0 {
		defaultTTL = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheService{repo: repo, metrics: metrics, defaultTTL: defaultTTL, logger: logger, enabled: enabled}
}

// Enabled indicates whether caching is active.
func (s *CacheService) Enabled() bool {
	return s != nil && s.enabled && s.repo != nil
}

// SearchKey hashes the normalized query. The version segment changes whenever the cached
// program shape does, so old entries are never decoded into new structs.
func SearchKey(query models.ProgramQuery) (string, error) {
	raw, err := json.Marshal(query)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(raw)
	return searchCachePrefix + searchCacheVersion + ":" + hex.EncodeToString(sum[:]), nil
}

// LookupSearch returns cached catalog rows for query. Failures are logged and reported as a miss.
func (s *CacheService) LookupSearch(ctx context.Context, query models.ProgramQuery) ([]models.Program, bool) {
	if !s.Enabled() || query.Unsatisfiable {
		return nil, false
	}
	key, err := SearchKey(query)
	if err != nil {
		s.logger.Warn("build search cache key", zap.Error(err))
		return nil, false
	}
	var programs []models.Program
	start := time.Now()
	err = s.repo.Get(ctx, key, &programs)
	hit := err == nil
	s.metrics.RecordCacheOperation(hit, time.Since(start))
	if err != nil && !errors.Is(err, appErrors.ErrCacheMiss) {
		s.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
	}
	return programs, hit
}

// StoreSearch caches catalog rows for query using ttl, or the default TTL when ttl is not positive.
func (s *CacheService) StoreSearch(ctx context.Context, query models.ProgramQuery, programs []models.Program, ttl time.Duration) {
	if !s.Enabled() || query.Unsatisfiable {
		return
	}
	key, err := SearchKey(query)
	if err != nil {
		s.logger.Warn("build search cache key", zap.Error(err))
		return
	}
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	if programs == nil {
		programs = []models.Program{}
	}
	start := time.Now()
	err = s.repo.Set(ctx, key, programs, ttl)
	s.metrics.ObserveCacheWrite(time.Since(start))
	if err != nil {
		s.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// InvalidateSearches drops every cached search result.
func (s *CacheService) InvalidateSearches(ctx context.Context) error {
	if !s.Enabled() {
		return nil
	}
	if err := s.repo.DeleteByPattern(ctx, searchCachePrefix+"*"); err != nil {
		s.logger.Warn("cache invalidate failed", zap.String("pattern", searchCachePrefix+"*"), zap.Error(err))
		return err
	}
	return nil
}
