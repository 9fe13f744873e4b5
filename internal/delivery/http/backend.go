package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ting-32/noodle/internal/backend"
	"github.com/ting-32/noodle/internal/models"
)

// BackendHandler serves the remote store contract on a single URL: GET returns
// the snapshot, POST applies a write envelope.
type BackendHandler struct {
	svc backend.Backend
}

func NewBackendHandler(s backend.Backend) *BackendHandler {
	return &BackendHandler{svc: s}
}

type snapshotResponse struct {
	Status string `json:"status"`
	models.Snapshot
}

func (h *BackendHandler) InitRoutes() *gin.Engine {
	router := gin.Default()
	router.GET("/", h.GetSnapshot)
	router.POST("/", h.PostWrite)
	mountCommon(router)
	return router
}

// GetSnapshot
// @Summary GetSnapshot (backend)
// @Description Whole remote state: stores, products, orders
// @ID backend-get-snapshot
// @Produce json
// @Success 200 {object} snapshotResponse
// @Failure 500 {object} models.WriteResponse
// @Router / [get]
func (h *BackendHandler) GetSnapshot(c *gin.Context) {
	snap, err := h.svc.Snapshot(c.Request.Context())
	if err != nil {
		logrus.WithError(err).Error("snapshot read failed")
		c.JSON(http.StatusInternalServerError, models.WriteResponse{Status: models.ResponseError, Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, snapshotResponse{Status: models.ResponseOK, Snapshot: snap})
}

// PostWrite
// @Summary PostWrite (backend)
// @Description Applies saveOrders, saveStores or saveProducts atomically
// @ID backend-post-write
// @Accept json
// @Produce json
// @Param input body models.WriteRequest true "write envelope"
// @Success 200 {object} models.WriteResponse
// @Router / [post]
func (h *BackendHandler) PostWrite(c *gin.Context) {
	var req models.WriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, models.WriteResponse{Status: models.ResponseError, Message: "invalid body: " + err.Error()})
		return
	}
	if err := h.svc.Apply(c.Request.Context(), req); err != nil {
		if !errors.Is(err, backend.ErrValidation) {
			logrus.WithError(err).WithField("action", req.Action).Error("write failed")
		}
		c.JSON(http.StatusOK, models.WriteResponse{Status: models.ResponseError, Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, models.WriteResponse{Status: models.ResponseOK})
}
