package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"snackbar/internal/services"
)

type OrderHandler struct {
	orderService services.OrderService
	logger       *zap.Logger
}

func NewOrderHandler(orderService services.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{orderService: orderService, logger: logger}
}

// CreateOrder handles POST /api/orders.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var draft services.OrderDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), draft)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	h.logger.Info("Order created",
		zap.Uint("order_id", order.ID),
		zap.String("department", order.Department),
		zap.Int("items", len(order.Items)),
	)
	c.JSON(http.StatusCreated, order)
}

// ListOrders handles GET /api/orders.
func (h *OrderHandler) ListOrders(c *gin.Context) {
	orders, err := h.orderService.GetOrders(c.Request.Context(), services.OrderCriteria{
		Name:       c.Query("name"),
		Department: c.Query("department"),
		Status:     c.Query("status"),
		Type:       c.Query("type"),
		DateFrom:   c.Query("dateFrom"),
		DateTo:     c.Query("dateTo"),
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GetOrder handles GET /api/orders/:id.
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := parseOrderID(c)
	if !ok {
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateOrderStatus handles PATCH /api/orders/:id/status.
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	id, ok := parseOrderID(c)
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	order, err := h.orderService.UpdateOrderStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	h.logger.Info("Order status updated",
		zap.Uint("order_id", order.ID),
		zap.String("status", order.Status.String()),
	)
	c.JSON(http.StatusOK, order)
}

// parseOrderID reads the :id path parameter, answering 400 when it is not
// an unsigned integer. Ids past the bigint range cannot exist and get 404.
func parseOrderID(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 63)
	switch {
	case errors.Is(err, strconv.ErrRange):
		c.JSON(http.StatusNotFound, gin.H{"message": "order not found: " + raw})
		return 0, false
	case err != nil:
		badRequest(c, "invalid order id")
		return 0, false
	}
	return uint(id), true
}
