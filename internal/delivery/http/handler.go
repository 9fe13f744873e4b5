package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/ting-32/noodle/docs"
	"github.com/ting-32/noodle/internal/reconcile"
	"github.com/ting-32/noodle/internal/service"
)

type Handler struct {
	svc service.Planner
}

func NewHandler(s service.Planner) *Handler {
	return &Handler{svc: s}
}

func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.Default()

	api := router.Group("/api")
	{
		api.GET("/snapshot", h.GetSnapshot)
		api.POST("/reload", h.Reload)

		api.GET("/stores/eligible", h.GetEligibleStores)
		api.GET("/stores/:name/draft", h.GetDraft)
		api.PUT("/stores", h.PutStores)
		api.PUT("/products", h.PutProducts)

		api.POST("/orders/check", h.CheckOrder)
		api.POST("/orders", h.SubmitOrder)
		api.DELETE("/orders/staged/:id", h.DiscardStaged)
		api.POST("/sync/orders", h.SyncOrders)

		api.GET("/summary", h.GetSummary)
		api.GET("/schedule", h.GetSchedule)
	}

	mountCommon(router)
	return router
}

func mountCommon(router *gin.Engine) {
	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			newErrorResponse(c, http.StatusNotFound, "not found")
			return
		}
		c.Status(http.StatusNotFound)
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

type errorResponse struct {
	Message string `json:"message"`
}

func newErrorResponse(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, errorResponse{Message: message})
}

// statusFor maps planner errors to HTTP status codes.
func statusFor(err error) int {
	var (
		syncErr *reconcile.SyncError
		loadErr *reconcile.LoadError
	)
	switch {
	case reconcile.IsValidation(err), errors.Is(err, service.ErrStoreClosed):
		return http.StatusBadRequest
	case service.IsConflict(err), errors.Is(err, reconcile.ErrNothingToSync):
		return http.StatusConflict
	case errors.Is(err, reconcile.ErrNotStaged), errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, reconcile.ErrSyncInProgress):
		return http.StatusLocked
	case errors.As(err, &syncErr), errors.As(err, &loadErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
