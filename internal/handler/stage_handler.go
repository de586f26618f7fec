package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"construction-stage-api/internal/dto"
	"construction-stage-api/internal/response"
	"construction-stage-api/internal/service"
)

// StageHandler exposes the construction stage operations over HTTP
type StageHandler struct {
	stageService service.StageService
}

func NewStageHandler(stageService service.StageService) *StageHandler {
	return &StageHandler{
		stageService: stageService,
	}
}

// parseStageID reads the :stageId path parameter. A non-numeric id is a
// validation error, not a 404.
func parseStageID(c *gin.Context) (uint, bool) {
	raw := c.Param("stageId")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		response.SendFieldError(c, http.StatusBadRequest, response.ErrCodeValidation,
			"Invalid stage ID", "stageId")
		return 0, false
	}
	return uint(id), true
}

// ListStages godoc
// @Summary      List construction stages
// @Description  Returns every stage, soft-deleted rows included
// @Tags         stages
// @Produce      json
// @Success      200 {object} response.SuccessResponse{data=[]dto.StageResponse}
// @Failure      500 {object} response.ErrorResponse
// @Router       / [get]
func (h *StageHandler) ListStages(c *gin.Context) {
	stages, err := h.stageService.ListStages(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, stages)
}

// GetStage godoc
// @Summary      Fetch a single stage
// @Tags         stages
// @Produce      json
// @Param        stageId path int true "Stage ID"
// @Success      200 {object} response.SuccessResponse{data=dto.StageResponse}
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Router       /{stageId} [get]
func (h *StageHandler) GetStage(c *gin.Context) {
	id, ok := parseStageID(c)
	if !ok {
		return
	}

	stage, err := h.stageService.GetStage(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, stage)
}

// CreateStage godoc
// @Summary      Create a construction stage
// @Description  Duration is derived from startDate, endDate and durationUnit; a caller-supplied duration is ignored
// @Tags         stages
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateStageRequest true "Stage to create"
// @Success      201 {object} response.SuccessResponse{data=dto.StageResponse}
// @Failure      400 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Router       / [post]
func (h *StageHandler) CreateStage(c *gin.Context) {
	var req dto.CreateStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	stage, err := h.stageService.CreateStage(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, stage)
}

// PatchStage godoc
// @Summary      Partially update a stage
// @Description  Only fields present in the payload change. Supplying endDate as null clears the end date and nulls out duration.
// @Tags         stages
// @Accept       json
// @Produce      json
// @Param        stageId path int true "Stage ID"
// @Param        request body dto.UpdateStageRequest true "Fields to update"
// @Success      200 {object} response.SuccessResponse{data=dto.StageResponse}
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Router       /{stageId} [patch]
func (h *StageHandler) PatchStage(c *gin.Context) {
	id, ok := parseStageID(c)
	if !ok {
		return
	}

	var req dto.UpdateStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	stage, err := h.stageService.PatchStage(c.Request.Context(), id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, stage)
}

// DeleteStage godoc
// @Summary      Soft-delete a stage
// @Description  Sets status to DELETED; the row is never physically removed
// @Tags         stages
// @Produce      json
// @Param        stageId path int true "Stage ID"
// @Success      200 {object} response.SuccessResponse{data=dto.StageResponse}
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Router       /{stageId} [delete]
func (h *StageHandler) DeleteStage(c *gin.Context) {
	id, ok := parseStageID(c)
	if !ok {
		return
	}

	stage, err := h.stageService.DeleteStage(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, stage)
}
