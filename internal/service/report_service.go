package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/claims-service/internal/config"
	"github.com/spec-kit/claims-service/internal/domain"
	"github.com/spec-kit/claims-service/internal/persistence"
	"github.com/spec-kit/claims-service/internal/report"
	"github.com/spec-kit/claims-service/internal/repository"
)

// ReportService produces aggregated claim reports. Every report runs over the
// caller's role-scoped slice of the ledger; two different roles asking for
// the same filter can legitimately see different numbers.
type ReportService struct {
	source   repository.ReportSourceRepository
	cache    *persistence.Redis
	cacheCfg config.ReportsConfig
	logger   *zap.Logger
}

// NewReportService constructs the report service. The cache is optional; a
// nil Redis disables caching regardless of configuration.
func NewReportService(source repository.ReportSourceRepository, cache *persistence.Redis, cacheCfg config.ReportsConfig, logger *zap.Logger) *ReportService {
	return &ReportService{
		source:   source,
		cache:    cache,
		cacheCfg: cacheCfg,
		logger:   logger,
	}
}

// BuildBundle computes all report views in one pass for the caller.
func (s *ReportService) BuildBundle(ctx context.Context, caller *domain.User, filter report.Filter) (*report.Bundle, error) {
	scoped := filter.ForRole(caller.Role, caller.ID)

	if bundle, ok := s.cachedBundle(ctx, caller, scoped); ok {
		return bundle, nil
	}

	rows, err := s.source.FetchRows(ctx)
	if err != nil {
		return nil, err
	}
	bundle := report.Build(rows, scoped)

	s.storeBundle(ctx, caller, scoped, &bundle)
	return &bundle, nil
}

// ClaimsPerMonth reports monthly claim openings scoped to the caller.
func (s *ReportService) ClaimsPerMonth(ctx context.Context, caller *domain.User, filter report.Filter) ([]report.MonthCount, error) {
	rows, scoped, err := s.scopedRows(ctx, caller, filter)
	if err != nil {
		return nil, err
	}
	return report.ClaimsPerMonth(rows, scoped), nil
}

// StatusDistribution reports the current status breakdown scoped to the caller.
func (s *ReportService) StatusDistribution(ctx context.Context, caller *domain.User, filter report.Filter) (report.StatusCounts, error) {
	rows, scoped, err := s.scopedRows(ctx, caller, filter)
	if err != nil {
		return report.StatusCounts{}, err
	}
	return report.StatusDistribution(rows, scoped), nil
}

// AvgResolutionByType reports mean resolution time per claim type.
func (s *ReportService) AvgResolutionByType(ctx context.Context, caller *domain.User, filter report.Filter) ([]report.ResolutionByType, error) {
	rows, scoped, err := s.scopedRows(ctx, caller, filter)
	if err != nil {
		return nil, err
	}
	return report.AvgResolutionByType(rows, scoped), nil
}

// WorkloadByArea reports open work per organizational area and subarea.
func (s *ReportService) WorkloadByArea(ctx context.Context, caller *domain.User, filter report.Filter) ([]report.AreaWorkload, error) {
	rows, scoped, err := s.scopedRows(ctx, caller, filter)
	if err != nil {
		return nil, err
	}
	return report.WorkloadByArea(rows, scoped), nil
}

// WorkloadByResponsible reports open work per responsible user.
func (s *ReportService) WorkloadByResponsible(ctx context.Context, caller *domain.User, filter report.Filter) ([]report.UserWorkload, error) {
	rows, scoped, err := s.scopedRows(ctx, caller, filter)
	if err != nil {
		return nil, err
	}
	return report.WorkloadByResponsible(rows, scoped), nil
}

// CommonClaimTypes reports claim type frequency across all history entries.
func (s *ReportService) CommonClaimTypes(ctx context.Context, caller *domain.User, filter report.Filter) ([]report.TypeCount, error) {
	rows, scoped, err := s.scopedRows(ctx, caller, filter)
	if err != nil {
		return nil, err
	}
	return report.CommonClaimTypes(rows, scoped), nil
}

func (s *ReportService) scopedRows(ctx context.Context, caller *domain.User, filter report.Filter) ([]report.Row, report.Filter, error) {
	scoped := filter.ForRole(caller.Role, caller.ID)
	rows, err := s.source.FetchRows(ctx)
	if err != nil {
		return nil, scoped, err
	}
	return rows, scoped, nil
}

func (s *ReportService) cacheEnabled() bool {
	return s.cache != nil && s.cacheCfg.CacheEnabled && s.cacheCfg.CacheTTLSeconds > 0
}

func (s *ReportService) cachedBundle(ctx context.Context, caller *domain.User, filter report.Filter) (*report.Bundle, bool) {
	if !s.cacheEnabled() {
		return nil, false
	}
	raw, err := s.cache.Client.Get(ctx, bundleCacheKey(caller, filter)).Bytes()
	if err != nil {
		return nil, false
	}
	var bundle report.Bundle
	if err := json.Unmarshal(raw, &bundle); err != nil {
		s.logger.Warn("discarding malformed cached report bundle", zap.Error(err))
		return nil, false
	}
	return &bundle, true
}

func (s *ReportService) storeBundle(ctx context.Context, caller *domain.User, filter report.Filter, bundle *report.Bundle) {
	if !s.cacheEnabled() {
		return
	}
	raw, err := json.Marshal(bundle)
	if err != nil {
		return
	}
	ttl := time.Duration(s.cacheCfg.CacheTTLSeconds) * time.Second
	if err := s.cache.Client.Set(ctx, bundleCacheKey(caller, filter), raw, ttl).Err(); err != nil {
		s.logger.Warn("unable to cache report bundle", zap.Error(err))
	}
}

// bundleCacheKey isolates cache entries per role and caller so a scoped
// user's cached numbers can never leak to another caller.
func bundleCacheKey(caller *domain.User, filter report.Filter) string {
	raw, _ := json.Marshal(filter)
	sum := sha256.Sum256(raw)
	return fmt.Sprintf("reports:bundle:%s:%s:%s", caller.Role, caller.ID, hex.EncodeToString(sum[:8]))
}
