package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/admission-planner-api/internal/models"
)

// DocumentRepository reads program document rules joined with their templates.
type DocumentRepository struct {
	db *sqlx.DB
}

// NewDocumentRepository constructs a DocumentRepository.
func NewDocumentRepository(db *sqlx.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

type programDocumentRow struct {
	ID                   string          `db:"id"`
	ProgramID            string          `db:"program_id"`
	DocumentKey          string          `db:"document_key"`
	Required             sql.NullBool    `db:"is_required"`
	TranslationRequired  models.TriState `db:"translation_required"`
	NotarizationRequired models.TriState `db:"notarization_required"`
	Notes                sql.NullString  `db:"notes"`

	TemplateKey          sql.NullString `db:"template_key"`
	NameEN               sql.NullString `db:"template_name_en"`
	NameTR               sql.NullString `db:"template_name_tr"`
	TemplateTranslation  sql.NullBool   `db:"template_translation_required"`
	TemplateNotarization sql.NullBool   `db:"template_notarization_required"`
	EstimatedDays        sql.NullInt64  `db:"template_estimated_days"`
}

func (row programDocumentRow) toModel() models.ProgramDocument {
	doc := models.ProgramDocument{
		Rule: models.ProgramDocumentRule{
			ID:                   row.ID,
			ProgramID:            row.ProgramID,
			DocumentKey:          row.DocumentKey,
			TranslationRequired:  row.TranslationRequired,
			NotarizationRequired: row.NotarizationRequired,
		},
	}
	if row.Required.Valid {
		required := row.Required.Bool
		doc.Rule.Required = &required
	}
	if row.Notes.Valid {
		notes := row.Notes.String
		doc.Rule.Notes = &notes
	}
	if !row.TemplateKey.Valid {
		return doc
	}
	tmpl := &models.DocumentTemplate{
		Key:                  row.TemplateKey.String,
		NameEN:               row.NameEN.String,
		NameTR:               row.NameTR.String,
		TranslationRequired:  row.TemplateTranslation.Bool,
		NotarizationRequired: row.TemplateNotarization.Bool,
	}
	if row.EstimatedDays.Valid {
		days := int(row.EstimatedDays.Int64)
		tmpl.EstimatedDays = &days
	}
	doc.Template = tmpl
	return doc
}

// ListByProgram returns every document rule of a program with its template, when one exists.
func (r *DocumentRepository) ListByProgram(ctx context.Context, programID string) ([]models.ProgramDocument, error) {
	const query = `SELECT d.id, d.program_id, d.document_key, d.is_required, d.translation_required, d.notarization_required, d.notes,
        t.key AS template_key, t.name_en AS template_name_en, t.name_tr AS template_name_tr,
        t.translation_required AS template_translation_required, t.notarization_required AS template_notarization_required,
        t.estimated_days AS template_estimated_days
        FROM program_document_rules d
        LEFT JOIN document_templates t ON t.key = d.document_key
        WHERE d.program_id = $1 ORDER BY d.document_key ASC`
	var rows []programDocumentRow
	if err := r.db.SelectContext(ctx, &rows, query, programID); err != nil {
		return nil, fmt.Errorf("list program documents: %w", err)
	}
	docs := make([]models.ProgramDocument, 0, len(rows))
	for _, row := range rows {
		docs = append(docs, row.toModel())
	}
	return docs, nil
}
