package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/admission-planner-api/internal/models"
)

const programColumns = `p.id, p.institution_id, i.name AS institution_name, p.name_en, p.name_tr, p.degree_level, p.language,
        p.city, p.tuition_min, p.tuition_max, p.currency, p.intakes, p.active, p.verified_at`

// ProgramRepository reads the program catalog.
type ProgramRepository struct {
	db *sqlx.DB
}

// NewProgramRepository constructs a ProgramRepository.
func NewProgramRepository(db *sqlx.DB) *ProgramRepository {
	return &ProgramRepository{db: db}
}

// Search returns active programs matching every predicate of the query.
func (r *ProgramRepository) Search(ctx context.Context, q models.ProgramQuery) ([]models.Program, error) {
	if q.Unsatisfiable {
		return []models.Program{}, nil
	}

	args := []interface{}{}
	conditions := []string{"p.active = TRUE"}

	if q.DegreeLevel != "" {
		conditions = append(conditions, fmt.Sprintf("p.degree_level = $%d", len(args)+1))
		args = append(args, q.DegreeLevel)
	}
	if len(q.Languages) > 0 {
		languages := make([]string, 0, len(q.Languages))
		for _, l := range q.Languages {
			languages = append(languages, string(l))
		}
		conditions = append(conditions, fmt.Sprintf("p.language = ANY($%d)", len(args)+1))
		args = append(args, pq.StringArray(languages))
	}
	if q.City != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(p.city) = $%d", len(args)+1))
		args = append(args, strings.ToLower(q.City))
	}
	if q.TuitionLow != nil {
		conditions = append(conditions, fmt.Sprintf("p.tuition_max >= $%d", len(args)+1))
		args = append(args, *q.TuitionLow)
	}
	if q.TuitionHigh != nil {
		conditions = append(conditions, fmt.Sprintf("p.tuition_min <= $%d", len(args)+1))
		args = append(args, *q.TuitionHigh)
	}
	if len(q.Keywords) > 0 {
		var keywordConds []string
		for _, kw := range q.Keywords {
			idx := len(args) + 1
			keywordConds = append(keywordConds, fmt.Sprintf("LOWER(p.name_en) LIKE $%d OR LOWER(p.name_tr) LIKE $%d", idx, idx))
			args = append(args, "%"+escapeLike(kw)+"%")
		}
		conditions = append(conditions, "("+strings.Join(keywordConds, " OR ")+")")
	}

	query := fmt.Sprintf(`SELECT %s
        FROM programs p JOIN institutions i ON i.id = p.institution_id
        WHERE %s ORDER BY p.tuition_min ASC, p.id ASC`, programColumns, strings.Join(conditions, " AND "))

	var programs []models.Program
	if err := r.db.SelectContext(ctx, &programs, query, args...); err != nil {
		return nil, fmt.Errorf("search programs: %w", err)
	}
	if programs == nil {
		programs = []models.Program{}
	}
	return programs, nil
}

// FindByID fetches a program regardless of its active flag.
func (r *ProgramRepository) FindByID(ctx context.Context, id string) (*models.Program, error) {
	query := fmt.Sprintf(`SELECT %s
        FROM programs p JOIN institutions i ON i.id = p.institution_id
        WHERE p.id = $1`, programColumns)
	var program models.Program
	if err := r.db.GetContext(ctx, &program, query, id); err != nil {
		return nil, err
	}
	return &program, nil
}

func escapeLike(term string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(term)
}
