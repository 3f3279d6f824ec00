package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/class-scheduler-api/internal/dto"
	"github.com/noah-isme/class-scheduler-api/internal/middleware"
	appErrors "github.com/noah-isme/class-scheduler-api/pkg/errors"
	"github.com/noah-isme/class-scheduler-api/pkg/response"
)

type scheduleService interface {
	Generate(ctx context.Context, filter dto.ScheduleFilter) (*dto.GeneratedSchedule, error)
}

type exportService interface {
	Export(ctx context.Context, req dto.ExportRequest) (*dto.ExportResponse, error)
	Download(token string) (*dto.ExportFile, error)
}

// ScheduleHandler exposes schedule generation and export endpoints.
type ScheduleHandler struct {
	schedules scheduleService
	exports   exportService
}

// NewScheduleHandler constructs the handler.
func NewScheduleHandler(schedules scheduleService, exports exportService) *ScheduleHandler {
	return &ScheduleHandler{schedules: schedules, exports: exports}
}

// Generate godoc
// @Summary Generate the class schedule
// @Description Runs the scheduler over the active dataset. Sessions are ordered by timeslot id; unplaced tasks are listed in meta.
// @Tags Schedules
// @Security BearerAuth
// @Produce json
// @Param groupId query string false "Student group filter"
// @Param teacherId query string false "Teacher filter"
// @Param roomId query string false "Room filter"
// @Param day query string false "Day filter"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /schedules/generate [get]
func (h *ScheduleHandler) Generate(c *gin.Context) {
	var filter dto.ScheduleFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid filter"))
		return
	}

	res, err := h.schedules.Generate(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	middleware.SetCacheHit(c, res.Cached)
	response.JSON(c, http.StatusOK, res.Sessions, middleware.ResponseMeta(c, map[string]interface{}{
		"summary":        res.Summary,
		"unplaced":       res.Unplaced,
		"datasetVersion": res.DatasetVersion,
		"windows":        res.Windows,
		"strategy":       res.Strategy,
		"generatedAt":    res.GeneratedAt,
		"filters":        filter,
	}))
}

// Export godoc
// @Summary Export the class schedule
// @Description Renders the filtered schedule as CSV or PDF and returns a signed download link
// @Tags Schedules
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body dto.ExportRequest true "Export request"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /schedules/export [post]
func (h *ScheduleHandler) Export(c *gin.Context) {
	var req dto.ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid export payload"))
		return
	}

	res, err := h.exports.Export(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, res)
}

// Download godoc
// @Summary Download an exported schedule
// @Tags Schedules
// @Produce octet-stream
// @Param token path string true "Signed token"
// @Success 200 {file} file
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /schedules/exports/{token} [get]
func (h *ScheduleHandler) Download(c *gin.Context) {
	file, err := h.exports.Download(c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Body)
}
