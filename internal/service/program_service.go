package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/admission-planner-api/internal/dto"
	"github.com/noah-isme/admission-planner-api/internal/models"
	appErrors "github.com/noah-isme/admission-planner-api/pkg/errors"
)

type programRepository interface {
	programReader
	Search(ctx context.Context, query models.ProgramQuery) ([]models.Program, error)
}

// ProgramServiceConfig holds catalog presentation settings.
type ProgramServiceConfig struct {
	VerificationWindowMonths int
	CacheTTL                 time.Duration
}

// ProgramService expands keywords and runs catalog searches.
type ProgramService struct {
	repo      programRepository
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	cfg       ProgramServiceConfig
	now       func() time.Time
}

// NewProgramService constructs the program service.
func NewProgramService(repo programRepository, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger, cfg ProgramServiceConfig) *ProgramService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.VerificationWindowMonths <= 0 {
		cfg.VerificationWindowMonths = 6
	}
	return &ProgramService{
		repo:      repo,
		cache:     cache,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Expand normalizes and expands free-text keywords.
func (s *ProgramService) Expand(ctx context.Context, req dto.ExpandSearchRequest) (*models.KeywordExpansion, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, models.Text("invalid keyword payload", "geçersiz anahtar kelime isteği"))
	}
	expansion := ExpandKeywords(req.Keywords)
	return &expansion, nil
}

// Search matches programs for a profile. When keywords yield nothing, a second query runs
// with near-equivalent fields and the response carries a fallback block. The boolean
// reports whether the primary result came from cache.
func (s *ProgramService) Search(ctx context.Context, req dto.ProgramSearchRequest) (*dto.ProgramSearchResponse, bool, error) {
	if err := validateProfile(s.validator, req.Profile); err != nil {
		return nil, false, err
	}
	if err := validateFilters(s.validator, req.Filters); err != nil {
		return nil, false, err
	}

	keywords := SearchKeywords(req.Profile, req.Filters)
	expansion := ExpandKeywords(keywords)
	query := BuildProgramQuery(req.Profile, req.Filters, expansion.Expanded)

	programs, cacheHit, err := s.search(ctx, query)
	if err != nil {
		return nil, false, err
	}

	resp := &dto.ProgramSearchResponse{Expansion: expansion}
	if len(programs) == 0 && len(query.Keywords) > 0 && !query.Unsatisfiable {
		if near := NearEquivalents(keywords); len(near) > 0 {
			fallbackQuery := BuildProgramQuery(req.Profile, req.Filters, ExpandKeywords(near).Expanded)
			programs, _, err = s.search(ctx, fallbackQuery)
			if err != nil {
				return nil, false, err
			}
			list := strings.Join(near, ", ")
			resp.Fallback = &dto.SearchFallback{
				Applied:         true,
				SuggestedFields: near,
				Note: models.Text(
					"No programs matched your keywords; showing results for related fields: "+list,
					"Anahtar kelimelerinizle eşleşen program bulunamadı; ilgili alanlar için sonuçlar gösteriliyor: "+list,
				),
			}
			s.metrics.RecordSearchFallback()
			s.logger.Info("program search fell back to near-equivalents",
				zap.Strings("keywords", keywords),
				zap.Strings("suggested", near),
				zap.Int("results", len(programs)),
			)
		}
	}

	now := s.now()
	resp.Results = make([]models.ProgramSearchResult, 0, len(programs))
	for _, p := range programs {
		resp.Results = append(resp.Results, ToSearchResult(p, now, s.cfg.VerificationWindowMonths))
	}
	resp.Total = len(resp.Results)
	return resp, cacheHit, nil
}

// Get returns a single program with its verification status.
func (s *ProgramService) Get(ctx context.Context, id string) (*models.ProgramSearchResult, error) {
	program, err := loadProgram(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	result := ToSearchResult(*program, s.now(), s.cfg.VerificationWindowMonths)
	return &result, nil
}

func (s *ProgramService) search(ctx context.Context, query models.ProgramQuery) ([]models.Program, bool, error) {
	if cached, hit := s.cache.LookupSearch(ctx, query); hit {
		return cached, true, nil
	}

	start := time.Now()
	programs, err := s.repo.Search(ctx, query)
	s.metrics.ObserveDBQuery("program_search", time.Since(start))
	if err != nil {
		return nil, false, appErrors.LocalizeWrap(err, appErrors.ErrInternal, "failed to search programs", "program araması başarısız")
	}
	s.cache.StoreSearch(ctx, query, programs, s.cfg.CacheTTL)
	return programs, false, nil
}
