package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/class-scheduler-api/internal/models"
	"github.com/noah-isme/class-scheduler-api/internal/service"
	"github.com/noah-isme/class-scheduler-api/pkg/response"
)

type datasetReloader interface {
	Reload(ctx context.Context) (*models.Dataset, error)
}

// DatasetHandler manages the scheduling dataset.
type DatasetHandler struct {
	service datasetReloader
}

// NewDatasetHandler constructs the handler.
func NewDatasetHandler(svc datasetReloader) *DatasetHandler {
	return &DatasetHandler{service: svc}
}

// Reload godoc
// @Summary Reload the scheduling dataset
// @Description Re-reads the dataset from its configured source and drops cached schedules
// @Tags Datasets
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /datasets/reload [post]
func (h *DatasetHandler) Reload(c *gin.Context) {
	ds, err := h.service.Reload(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, service.DatasetInfoOf(ds))
}
