package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/admission-planner-api/internal/dto"
	"github.com/noah-isme/admission-planner-api/internal/middleware"
	"github.com/noah-isme/admission-planner-api/internal/models"
	appErrors "github.com/noah-isme/admission-planner-api/pkg/errors"
	"github.com/noah-isme/admission-planner-api/pkg/response"
)

type programService interface {
	Expand(ctx context.Context, req dto.ExpandSearchRequest) (*models.KeywordExpansion, error)
	Search(ctx context.Context, req dto.ProgramSearchRequest) (*dto.ProgramSearchResponse, bool, error)
	Get(ctx context.Context, id string) (*models.ProgramSearchResult, error)
}

// ProgramHandler serves keyword expansion and catalog search.
type ProgramHandler struct {
	service programService
}

// NewProgramHandler constructs the handler.
func NewProgramHandler(service programService) *ProgramHandler {
	return &ProgramHandler{service: service}
}

// Expand godoc
// @Summary Expand search keywords with synonyms
// @Tags Search
// @Accept json
// @Produce json
// @Param payload body dto.ExpandSearchRequest true "Keywords"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /search/expand [post]
func (h *ProgramHandler) Expand(c *gin.Context) {
	var req dto.ExpandSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.LocalizeWrap(err, appErrors.ErrValidation, "invalid payload", "geçersiz istek gövdesi"))
		return
	}
	expansion, err := h.service.Expand(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, expansion)
}

// Search godoc
// @Summary Match programs against a student profile
// @Tags Programs
// @Accept json
// @Produce json
// @Param payload body dto.ProgramSearchRequest true "Profile and filters"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /programs/search [post]
func (h *ProgramHandler) Search(c *gin.Context) {
	var req dto.ProgramSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.LocalizeWrap(err, appErrors.ErrValidation, "invalid payload", "geçersiz istek gövdesi"))
		return
	}
	result, cacheHit, err := h.service.Search(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	middleware.SetFallbackApplied(c, result != nil && result.Fallback != nil)
	response.JSON(c, http.StatusOK, result, middleware.ExtractMeta(c))
}

// Get godoc
// @Summary Get program details
// @Tags Programs
// @Produce json
// @Param id path string true "Program ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /programs/{id} [get]
func (h *ProgramHandler) Get(c *gin.Context) {
	program, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, program)
}
