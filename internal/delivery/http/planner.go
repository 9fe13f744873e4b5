package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ting-32/noodle/internal/models"
	"github.com/ting-32/noodle/internal/planning"
	"github.com/ting-32/noodle/internal/reconcile"
	"github.com/ting-32/noodle/internal/service"
)

type storesResponse struct {
	Data []models.Store `json:"data"`
}

type conflictResponse struct {
	Message   string                  `json:"message"`
	Conflicts []planning.CandidateRow `json:"conflicts"`
}

type checkResponse struct {
	Conflicts []planning.CandidateRow `json:"conflicts"`
}

type stagedResponse struct {
	Data []service.StagedView `json:"data"`
}

type syncResponse struct {
	Committed int    `json:"committed"`
	Reloaded  bool   `json:"reloaded"`
	Message   string `json:"message,omitempty"`
}

type summaryResponse struct {
	Data []planning.DayPlan `json:"data"`
}

type scheduleResponse struct {
	Data []planning.DaySchedule `json:"data"`
}

func (h *Handler) fail(c *gin.Context, err error) {
	var ce *service.ConflictError
	if errors.As(err, &ce) {
		c.AbortWithStatusJSON(http.StatusConflict, conflictResponse{Message: ce.Error(), Conflicts: ce.Rows})
		return
	}
	newErrorResponse(c, statusFor(err), err.Error())
}

// GetSnapshot
// @Summary GetSnapshot
// @Description Stores, products and every order; staged orders carry isLocal and are listed with their staged ids
// @ID get-snapshot
// @Produce json
// @Success 200 {object} service.View
// @Router /api/snapshot [get]
func (h *Handler) GetSnapshot(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Snapshot())
}

// Reload
// @Summary Reload
// @Description Fetches the remote snapshot; staged orders are kept
// @ID reload
// @Produce json
// @Success 200 {object} service.View
// @Failure 423,502 {object} errorResponse
// @Router /api/reload [post]
func (h *Handler) Reload(c *gin.Context) {
	if err := h.svc.Reload(c.Request.Context()); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, h.svc.Snapshot())
}

// GetEligibleStores
// @Summary GetEligibleStores
// @Description Stores that accept deliveries on the given date
// @ID get-eligible-stores
// @Produce json
// @Param date query string true "delivery date, YYYY-MM-DD"
// @Success 200 {object} storesResponse
// @Failure 400 {object} errorResponse
// @Router /api/stores/eligible [get]
func (h *Handler) GetEligibleStores(c *gin.Context) {
	date := models.NormalizeDate(c.Query("date"))
	if date == "" {
		newErrorResponse(c, http.StatusBadRequest, "date query parameter must be YYYY-MM-DD")
		return
	}
	c.JSON(http.StatusOK, storesResponse{Data: h.svc.EligibleStores(date)})
}

// GetDraft
// @Summary GetDraft
// @Description Order entry pre-filled from the store's default items and delivery time
// @ID get-draft
// @Produce json
// @Param name path string true "store name"
// @Param date query string false "delivery date, YYYY-MM-DD"
// @Success 200 {object} reconcile.Batch
// @Failure 400,404 {object} errorResponse
// @Router /api/stores/{name}/draft [get]
func (h *Handler) GetDraft(c *gin.Context) {
	b, err := h.svc.Draft(strings.TrimSpace(c.Param("name")), c.Query("date"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// CheckOrder
// @Summary CheckOrder
// @Description Lists the rows that duplicate an existing (date, store, item) without admitting anything
// @ID check-order
// @Accept json
// @Produce json
// @Param input body reconcile.Batch true "order entry"
// @Success 200 {object} checkResponse
// @Failure 400 {object} errorResponse
// @Router /api/orders/check [post]
func (h *Handler) CheckOrder(c *gin.Context) {
	var b reconcile.Batch
	if err := c.ShouldBindJSON(&b); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}
	rows, err := h.svc.CheckConflicts(b)
	if err != nil {
		h.fail(c, err)
		return
	}
	if rows == nil {
		rows = []planning.CandidateRow{}
	}
	c.JSON(http.StatusOK, checkResponse{Conflicts: rows})
}

// SubmitOrder
// @Summary SubmitOrder
// @Description Stages the order rows. Duplicates are refused with 409 unless override=true
// @ID submit-order
// @Accept json
// @Produce json
// @Param input body reconcile.Batch true "order entry"
// @Param override query bool false "admit rows that duplicate existing orders"
// @Success 201 {object} stagedResponse
// @Failure 400 {object} errorResponse
// @Failure 409 {object} conflictResponse
// @Router /api/orders [post]
func (h *Handler) SubmitOrder(c *gin.Context) {
	var b reconcile.Batch
	if err := c.ShouldBindJSON(&b); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}
	override := false
	if raw := c.Query("override"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			newErrorResponse(c, http.StatusBadRequest, "override must be a boolean")
			return
		}
		override = v
	}

	added, err := h.svc.SubmitOrder(b, override)
	if err != nil {
		h.fail(c, err)
		return
	}
	out := make([]service.StagedView, 0, len(added))
	for _, st := range added {
		out = append(out, service.StagedView{ID: st.ID, Order: st.Order})
	}
	c.JSON(http.StatusCreated, stagedResponse{Data: out})
}

// DiscardStaged
// @Summary DiscardStaged
// @Description Removes an order that has not been synced yet
// @ID discard-staged
// @Produce json
// @Param id path string true "staged order id"
// @Success 200 {object} models.Order
// @Failure 404 {object} errorResponse
// @Router /api/orders/staged/{id} [delete]
func (h *Handler) DiscardStaged(c *gin.Context) {
	o, err := h.svc.DiscardStaged(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// SyncOrders
// @Summary SyncOrders
// @Description Writes every staged order to the remote store in one call and reloads
// @ID sync-orders
// @Produce json
// @Success 200 {object} syncResponse
// @Failure 409,423,502 {object} errorResponse
// @Router /api/sync/orders [post]
func (h *Handler) SyncOrders(c *gin.Context) {
	res, err := h.svc.SyncOrders(c.Request.Context())
	if err != nil && len(res.Committed) == 0 {
		h.fail(c, err)
		return
	}
	out := syncResponse{Committed: len(res.Committed), Reloaded: res.Reloaded}
	if err != nil {
		out.Message = err.Error()
	}
	c.JSON(http.StatusOK, out)
}

// PutStores
// @Summary PutStores
// @Description Replaces the whole store collection remotely, then reloads
// @ID put-stores
// @Accept json
// @Produce json
// @Param input body []models.Store true "stores"
// @Success 200 {object} service.View
// @Failure 400,423,502 {object} errorResponse
// @Router /api/stores [put]
func (h *Handler) PutStores(c *gin.Context) {
	var stores []models.Store
	if err := c.ShouldBindJSON(&stores); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}
	if err := h.svc.SaveStores(c.Request.Context(), stores); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, h.svc.Snapshot())
}

// PutProducts
// @Summary PutProducts
// @Description Replaces the whole product catalog remotely, then reloads
// @ID put-products
// @Accept json
// @Produce json
// @Param input body []models.Product true "products"
// @Success 200 {object} service.View
// @Failure 400,423,502 {object} errorResponse
// @Router /api/products [put]
func (h *Handler) PutProducts(c *gin.Context) {
	var products []models.Product
	if err := c.ShouldBindJSON(&products); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}
	if err := h.svc.SaveProducts(c.Request.Context(), products); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, h.svc.Snapshot())
}

// GetSummary
// @Summary GetSummary
// @Description Pending quantities per delivery date and item, staged orders included
// @ID get-summary
// @Produce json
// @Success 200 {object} summaryResponse
// @Router /api/summary [get]
func (h *Handler) GetSummary(c *gin.Context) {
	c.JSON(http.StatusOK, summaryResponse{Data: h.svc.Summary()})
}

// GetSchedule
// @Summary GetSchedule
// @Description Orders grouped per date in delivery time order
// @ID get-schedule
// @Produce json
// @Success 200 {object} scheduleResponse
// @Router /api/schedule [get]
func (h *Handler) GetSchedule(c *gin.Context) {
	c.JSON(http.StatusOK, scheduleResponse{Data: h.svc.Schedule()})
}
