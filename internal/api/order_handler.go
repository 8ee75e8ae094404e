package api

import (
	"net/http"

	"grindhub/gym-platform/internal/domain"
	"grindhub/gym-platform/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

type CreateOrderRequest struct {
	UserID uuid.UUID          `json:"userId"`
	Items  []OrderItemRequest `json:"items" binding:"required"`
}

type OrderItemRequest struct {
	ProductID uuid.UUID `json:"productId" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

type UpdateOrderStatusRequest struct {
	Status domain.OrderStatus `json:"status" binding:"required"`
}

// Create godoc
// @Summary Place an order
// @Description Validates stock for every line, snapshots prices and decrements stock atomically.
// @Tags Orders
// @Accept json
// @Produce json
// @Param order body CreateOrderRequest true "Order lines; userId defaults to the caller"
// @Success 201 {object} Response
// @Failure 400 {object} Response "Empty items, unknown product or insufficient stock"
// @Failure 403 {object} Response "Student ordering for another user"
// @Router /orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	items := make([]service.OrderItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.OrderItemInput{ProductID: item.ProductID, Quantity: item.Quantity}
	}

	order, err := h.orderService.Create(c.Request.Context(), getActor(c), req.UserID, items)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, order)
}

func (h *OrderHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid order id")
		return
	}
	order, err := h.orderService.Get(c.Request.Context(), getActor(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, order)
}

// List returns orders scoped to the caller's role: students their own,
// trainers their students', everyone else the whole gym.
func (h *OrderHandler) List(c *gin.Context) {
	var status *domain.OrderStatus
	if raw := c.Query("status"); raw != "" {
		s := domain.OrderStatus(raw)
		if !s.Valid() {
			abortWithError(c, http.StatusBadRequest, "invalid order status")
			return
		}
		status = &s
	}

	page, limit := parsePagination(c)
	orders, total, err := h.orderService.List(c.Request.Context(), getActor(c), status, page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondList(c, orders, total, page, limit)
}

// UpdateStatus godoc
// @Summary Transition an order's status
// @Description Moving to cancelled restores stock. Students cannot use this endpoint.
// @Tags Orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param status body UpdateOrderStatusRequest true "Target status"
// @Success 200 {object} Response
// @Failure 400 {object} Response "Invalid status or order already completed"
// @Failure 403 {object} Response "Student actor"
// @Router /orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid order id")
		return
	}
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), getActor(c), id, req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, order)
}

func (h *OrderHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid order id")
		return
	}
	if err := h.orderService.Delete(c.Request.Context(), getActor(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondMessage(c, "order cancelled")
}

func (h *OrderHandler) Stats(c *gin.Context) {
	stats, err := h.orderService.Stats(c.Request.Context(), getActor(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, stats)
}
