package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/admission-planner-api/internal/dto"
	"github.com/noah-isme/admission-planner-api/internal/models"
	appErrors "github.com/noah-isme/admission-planner-api/pkg/errors"
)

type plannerMock struct {
	eligibility *models.EligibilityResult
	checklist   *models.DocumentChecklist
	timeline    *models.Timeline
	file        *dto.ExportFile
	err         error

	programID string
	intake    string
	format    dto.ExportFormat
}

func (m *plannerMock) Evaluate(ctx context.Context, programID string, profile models.StudentProfile) (*models.EligibilityResult, error) {
	m.programID = programID
	return m.eligibility, m.err
}

func (m *plannerMock) Checklist(ctx context.Context, programID string, profile models.StudentProfile) (*models.DocumentChecklist, error) {
	m.programID = programID
	return m.checklist, m.err
}

func (m *plannerMock) Build(ctx context.Context, programID string, profile models.StudentProfile, intakeTarget string) (*models.Timeline, error) {
	m.programID = programID
	m.intake = intakeTarget
	return m.timeline, m.err
}

type exportMock struct {
	plannerMock
}

func (m *exportMock) Checklist(ctx context.Context, programID string, profile models.StudentProfile, format dto.ExportFormat) (*dto.ExportFile, error) {
	m.programID = programID
	m.format = format
	return m.file, m.err
}

func (m *exportMock) Timeline(ctx context.Context, programID string, profile models.StudentProfile, intakeTarget string, format dto.ExportFormat) (*dto.ExportFile, error) {
	m.programID = programID
	m.intake = intakeTarget
	m.format = format
	return m.file, m.err
}

func newPlannerRouter(planner *plannerMock, exports *exportMock) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewPlannerHandler(planner, planner, planner, exports)
	r := gin.New()
	r.POST("/programs/:id/eligibility", h.Eligibility)
	r.POST("/programs/:id/documents", h.Documents)
	r.POST("/programs/:id/documents/export", h.ExportDocuments)
	r.POST("/programs/:id/timeline", h.Timeline)
	r.POST("/programs/:id/timeline/export", h.ExportTimeline)
	return r
}

func profileBody() dto.ProfileRequest {
	return dto.ProfileRequest{Profile: models.StudentProfile{CurrentLevel: models.LevelHighSchool, DesiredLevel: models.LevelBachelor}}
}

func TestPlannerHandlerEligibility(t *testing.T) {
	planner := &plannerMock{eligibility: &models.EligibilityResult{ProgramID: "p-1", Status: models.StatusNeedsReview, MissingFields: []string{"gpa"}}}
	r := newPlannerRouter(planner, &exportMock{})

	w, env := doRequest(t, r, http.MethodPost, "/programs/p-1/eligibility", profileBody())
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "p-1", planner.programID)

	var result models.EligibilityResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, models.StatusNeedsReview, result.Status)
	assert.Equal(t, []string{"gpa"}, result.MissingFields)
}

func TestPlannerHandlerEligibilityErrors(t *testing.T) {
	planner := &plannerMock{err: appErrors.Clone(appErrors.ErrNotFound, "program not found")}
	r := newPlannerRouter(planner, &exportMock{})

	w, env := doRequest(t, r, http.MethodPost, "/programs/missing/eligibility", profileBody())
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)

	w, env = doRequest(t, r, http.MethodPost, "/programs/p-1/eligibility", "[]")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, appErrors.ErrValidation.Code, env.Error.Code)

	planner.err = errors.New("unexpected")
	w, env = doRequest(t, r, http.MethodPost, "/programs/p-1/eligibility", profileBody())
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, appErrors.ErrInternal.Code, env.Error.Code)
}

func TestPlannerHandlerDocuments(t *testing.T) {
	planner := &plannerMock{checklist: &models.DocumentChecklist{ProgramID: "p-2", Items: []models.ChecklistItem{{DocumentKey: "passport", Required: true}}}}
	r := newPlannerRouter(planner, &exportMock{})

	w, env := doRequest(t, r, http.MethodPost, "/programs/p-2/documents", profileBody())
	require.Equal(t, http.StatusOK, w.Code)
	var checklist models.DocumentChecklist
	require.NoError(t, json.Unmarshal(env.Data, &checklist))
	require.Len(t, checklist.Items, 1)
	assert.Equal(t, "passport", checklist.Items[0].DocumentKey)
}

func TestPlannerHandlerTimeline(t *testing.T) {
	planner := &plannerMock{timeline: &models.Timeline{ProgramID: "p-3", TargetIntake: "February", TotalWeeks: 8}}
	r := newPlannerRouter(planner, &exportMock{})

	body := dto.TimelineRequest{Profile: profileBody().Profile, IntakeTarget: "feb"}
	w, env := doRequest(t, r, http.MethodPost, "/programs/p-3/timeline", body)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "feb", planner.intake)
	var timeline models.Timeline
	require.NoError(t, json.Unmarshal(env.Data, &timeline))
	assert.Equal(t, "February", timeline.TargetIntake)
}

func TestPlannerHandlerExportDocuments(t *testing.T) {
	exports := &exportMock{}
	exports.file = &dto.ExportFile{Filename: "checklist_p-1.pdf", ContentType: "application/pdf", Payload: []byte("%PDF-1.3")}
	r := newPlannerRouter(&plannerMock{}, exports)

	w, _ := doRequest(t, r, http.MethodPost, "/programs/p-1/documents/export?format=pdf", profileBody())
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, dto.ExportFormatPDF, exports.format)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="checklist_p-1.pdf"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "%PDF-1.3", w.Body.String())
}

func TestPlannerHandlerExportTimelineDefaultsToCSV(t *testing.T) {
	exports := &exportMock{}
	exports.file = &dto.ExportFile{Filename: "timeline_p-1.csv", ContentType: "text/csv", Payload: []byte("Week,Task\n")}
	r := newPlannerRouter(&plannerMock{}, exports)

	body := dto.TimelineRequest{Profile: profileBody().Profile, IntakeTarget: "September"}
	w, _ := doRequest(t, r, http.MethodPost, "/programs/p-1/timeline/export", body)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, dto.ExportFormatCSV, exports.format)
	assert.Equal(t, "September", exports.intake)
}

func TestPlannerHandlerExportRejectsUnknownFormat(t *testing.T) {
	exports := &exportMock{}
	r := newPlannerRouter(&plannerMock{}, exports)

	w, env := doRequest(t, r, http.MethodPost, "/programs/p-1/documents/export?format=xlsx", profileBody())
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, appErrors.ErrValidation.Code, env.Error.Code)
	assert.Empty(t, exports.programID)
}

func TestPlannerHandlerExportDisabled(t *testing.T) {
	exports := &exportMock{}
	exports.err = appErrors.Clone(appErrors.ErrDisabled, "exports are disabled")
	r := newPlannerRouter(&plannerMock{}, exports)

	w, env := doRequest(t, r, http.MethodPost, "/programs/p-1/timeline/export", dto.TimelineRequest{Profile: profileBody().Profile})
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, appErrors.ErrDisabled.Code, env.Error.Code)
}
