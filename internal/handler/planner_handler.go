package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/admission-planner-api/internal/dto"
	"github.com/noah-isme/admission-planner-api/internal/models"
	"github.com/noah-isme/admission-planner-api/internal/service"
	appErrors "github.com/noah-isme/admission-planner-api/pkg/errors"
	"github.com/noah-isme/admission-planner-api/pkg/response"
)

type eligibilityService interface {
	Evaluate(ctx context.Context, programID string, profile models.StudentProfile) (*models.EligibilityResult, error)
}

type documentService interface {
	Checklist(ctx context.Context, programID string, profile models.StudentProfile) (*models.DocumentChecklist, error)
}

type timelineService interface {
	Build(ctx context.Context, programID string, profile models.StudentProfile, intakeTarget string) (*models.Timeline, error)
}

type exportService interface {
	Checklist(ctx context.Context, programID string, profile models.StudentProfile, format dto.ExportFormat) (*dto.ExportFile, error)
	Timeline(ctx context.Context, programID string, profile models.StudentProfile, intakeTarget string, format dto.ExportFormat) (*dto.ExportFile, error)
}

// PlannerHandler serves per-program eligibility, checklist and timeline endpoints.
type PlannerHandler struct {
	eligibility eligibilityService
	documents   documentService
	timelines   timelineService
	exports     exportService
}

// NewPlannerHandler constructs the handler.
func NewPlannerHandler(eligibility eligibilityService, documents documentService, timelines timelineService, exports exportService) *PlannerHandler {
	return &PlannerHandler{eligibility: eligibility, documents: documents, timelines: timelines, exports: exports}
}

func bindProfile(c *gin.Context) (models.StudentProfile, bool) {
	var req dto.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.LocalizeWrap(err, appErrors.ErrValidation, "invalid payload", "geçersiz istek gövdesi"))
		return models.StudentProfile{}, false
	}
	return req.Profile, true
}

func bindTimeline(c *gin.Context) (dto.TimelineRequest, bool) {
	var req dto.TimelineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.LocalizeWrap(err, appErrors.ErrValidation, "invalid payload", "geçersiz istek gövdesi"))
		return req, false
	}
	return req, true
}

// Eligibility godoc
// @Summary Evaluate eligibility for a program
// @Tags Planner
// @Accept json
// @Produce json
// @Param id path string true "Program ID"
// @Param payload body dto.ProfileRequest true "Student profile"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /programs/{id}/eligibility [post]
func (h *PlannerHandler) Eligibility(c *gin.Context) {
	profile, ok := bindProfile(c)
	if !ok {
		return
	}
	result, err := h.eligibility.Evaluate(c.Request.Context(), c.Param("id"), profile)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Documents godoc
// @Summary Resolve the document checklist for a program
// @Tags Planner
// @Accept json
// @Produce json
// @Param id path string true "Program ID"
// @Param payload body dto.ProfileRequest true "Student profile"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /programs/{id}/documents [post]
func (h *PlannerHandler) Documents(c *gin.Context) {
	profile, ok := bindProfile(c)
	if !ok {
		return
	}
	checklist, err := h.documents.Checklist(c.Request.Context(), c.Param("id"), profile)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, checklist)
}

// Timeline godoc
// @Summary Build a preparation timeline for a program
// @Tags Planner
// @Accept json
// @Produce json
// @Param id path string true "Program ID"
// @Param payload body dto.TimelineRequest true "Profile and intake target"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /programs/{id}/timeline [post]
func (h *PlannerHandler) Timeline(c *gin.Context) {
	req, ok := bindTimeline(c)
	if !ok {
		return
	}
	timeline, err := h.timelines.Build(c.Request.Context(), c.Param("id"), req.Profile, req.IntakeTarget)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, timeline)
}

// ExportDocuments godoc
// @Summary Download the document checklist
// @Tags Planner
// @Accept json
// @Produce text/csv
// @Produce application/pdf
// @Param id path string true "Program ID"
// @Param format query string false "csv or pdf"
// @Param payload body dto.ProfileRequest true "Student profile"
// @Success 200 {file} file
// @Router /programs/{id}/documents/export [post]
func (h *PlannerHandler) ExportDocuments(c *gin.Context) {
	format, err := service.ParseExportFormat(c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	profile, ok := bindProfile(c)
	if !ok {
		return
	}
	file, err := h.exports.Checklist(c.Request.Context(), c.Param("id"), profile, format)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Payload)
}

// ExportTimeline godoc
// @Summary Download the preparation timeline
// @Tags Planner
// @Accept json
// @Produce text/csv
// @Produce application/pdf
// @Param id path string true "Program ID"
// @Param format query string false "csv or pdf"
// @Param payload body dto.TimelineRequest true "Profile and intake target"
// @Success 200 {file} file
// @Router /programs/{id}/timeline/export [post]
func (h *PlannerHandler) ExportTimeline(c *gin.Context) {
	format, err := service.ParseExportFormat(c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	req, ok := bindTimeline(c)
	if !ok {
		return
	}
	file, err := h.exports.Timeline(c.Request.Context(), c.Param("id"), req.Profile, req.IntakeTarget, format)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Payload)
}
