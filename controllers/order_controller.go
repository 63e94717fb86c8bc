package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/coffee-shop-api/config"
	"github.com/kendall-kelly/coffee-shop-api/logging"
	"github.com/kendall-kelly/coffee-shop-api/middleware"
	"github.com/kendall-kelly/coffee-shop-api/services"
	"github.com/kendall-kelly/coffee-shop-api/utils"
)

// OrderController handles order submission and the barista/owner views
type OrderController struct {
	orders *services.OrderService
	cfg    *config.Config
}

// NewOrderController creates an order controller
func NewOrderController(orders *services.OrderService, cfg *config.Config) *OrderController {
	return &OrderController{orders: orders, cfg: cfg}
}

// CreateOrder handles POST /api/v1/orders - sends the customer's selection to the barista
func (oc *OrderController) CreateOrder(c *gin.Context) {
	sessionID, ok := requireSession(c)
	if !ok {
		return
	}

	var req SelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, http.StatusBadRequest, err)
		return
	}

	main, sub, err := parseSelection(req)
	if err != nil {
		utils.RespondValidationError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.orders.Submit(c.Request.Context(), sessionID, main, sub)
	if errors.Is(err, services.ErrRuleNotFound) {
		utils.RespondError(c, http.StatusNotFound, "RULE_NOT_FOUND", "No recipe is configured for this flavor profile yet")
		return
	}
	if err != nil {
		logging.Error().Err(err).Str("session_id", sessionID).Msg("Failed to submit order")
		utils.RespondError(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to record order")
		return
	}

	utils.RespondSuccess(c, http.StatusCreated, order)
}

// ListOrders handles GET /api/v1/orders - the session's orders, most recent first
func (oc *OrderController) ListOrders(c *gin.Context) {
	sessionID, ok := requireSession(c)
	if !ok {
		return
	}

	orders, err := oc.orders.History(c.Request.Context(), sessionID)
	if err != nil {
		logging.Error().Err(err).Str("session_id", sessionID).Msg("Failed to list orders")
		utils.RespondError(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to fetch orders")
		return
	}

	utils.RespondSuccess(c, http.StatusOK, orders)
}

// GetLatestOrder handles GET /api/v1/orders/latest - the barista view
func (oc *OrderController) GetLatestOrder(c *gin.Context) {
	sessionID, ok := requireSession(c)
	if !ok {
		return
	}

	summary, err := oc.orders.Summary(c.Request.Context(), sessionID)
	if err != nil {
		logging.Error().Err(err).Str("session_id", sessionID).Msg("Failed to load latest order")
		utils.RespondError(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to fetch latest order")
		return
	}
	if summary.Latest == nil {
		utils.RespondError(c, http.StatusNotFound, "NO_ORDERS", "Waiting for the first order")
		return
	}

	utils.RespondSuccess(c, http.StatusOK, summary.Latest)
}

// GetOrderSummary handles GET /api/v1/orders/summary - the owner view
func (oc *OrderController) GetOrderSummary(c *gin.Context) {
	sessionID, ok := requireSession(c)
	if !ok {
		return
	}

	summary, err := oc.orders.Summary(c.Request.Context(), sessionID)
	if err != nil {
		logging.Error().Err(err).Str("session_id", sessionID).Msg("Failed to load order summary")
		utils.RespondError(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to fetch order summary")
		return
	}

	utils.RespondSuccess(c, http.StatusOK, summary)
}

// EndSession handles DELETE /api/v1/session - discards the session's orders
// and expires its cookie
func (oc *OrderController) EndSession(c *gin.Context) {
	sessionID, ok := requireSession(c)
	if !ok {
		return
	}

	if err := oc.orders.EndSession(c.Request.Context(), sessionID); err != nil {
		logging.Error().Err(err).Str("session_id", sessionID).Msg("Failed to end session")
		utils.RespondError(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to end session")
		return
	}

	middleware.ClearSession(c, oc.cfg)
	utils.RespondSuccess(c, http.StatusOK, gin.H{"session_id": sessionID})
}
