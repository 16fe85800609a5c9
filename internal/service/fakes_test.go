package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"sync"
	"time"

	"github.com/noah-isme/admission-planner-api/internal/models"
	appErrors "github.com/noah-isme/admission-planner-api/pkg/errors"
)

type fakeProgramRepo struct {
	programs  []models.Program
	searchErr error
	findErr   error
	queries   []models.ProgramQuery
}

func (f *fakeProgramRepo) FindByID(ctx context.Context, id string) (*models.Program, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	for i := range f.programs {
		if f.programs[i].ID == id {
			p := f.programs[i]
			return &p, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeProgramRepo) Search(ctx context.Context, query models.ProgramQuery) ([]models.Program, error) {
	f.queries = append(f.queries, query)
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	result := []models.Program{}
	for _, p := range f.programs {
		if query.Matches(p) {
			result = append(result, p)
		}
	}
	return result, nil
}

type fakeRequirementRepo struct {
	byProgram     map[string][]models.RequirementRule
	byInstitution map[string][]models.RequirementRule
	err           error
}

func (f *fakeRequirementRepo) ListByProgram(ctx context.Context, programID string) ([]models.RequirementRule, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byProgram[programID], nil
}

func (f *fakeRequirementRepo) ListByInstitution(ctx context.Context, institutionID string) ([]models.RequirementRule, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byInstitution[institutionID], nil
}

type fakeDocumentRepo struct {
	byProgram map[string][]models.ProgramDocument
	err       error
}

func (f *fakeDocumentRepo) ListByProgram(ctx context.Context, programID string) ([]models.ProgramDocument, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byProgram[programID], nil
}

type fakeCacheRepo struct {
	mu    sync.Mutex
	store map[string][]byte
	sets  int
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{store: map[string][]byte{}}
}

func (f *fakeCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	raw, ok := f.store[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (f *fakeCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.store[key] = raw
	f.sets++
	return nil
}

func (f *fakeCacheRepo) DeleteByPattern(ctx context.Context, pattern string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.store = map[string][]byte{}
	return nil
}

func catalogProgram(id, name string, level models.EducationLevel, language models.InstructionLanguage, city string, tuition float64) models.Program {
	return models.Program{
		ID:            id,
		InstitutionID: "inst-1",
		NameEN:        name,
		DegreeLevel:   level,
		Language:      language,
		City:          city,
		TuitionMin:    tuition,
		TuitionMax:    tuition,
		Currency:      "USD",
		Intakes:       []string{"September", "February"},
		Active:        true,
	}
}

func appCode(err error) string {
	if appErr := appErrors.FromError(err); appErr != nil {
		return appErr.Code
	}
	return ""
}
