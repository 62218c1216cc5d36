package handler

import (
	"context"
	"net/http"

	"sunnydayy-backend/internal/domain"
	"sunnydayy-backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type OrderService interface {
	CreateOrder(ctx context.Context, userID string, req domain.CheckoutRequest) (*domain.CheckoutResult, error)
	VerifyPayment(ctx context.Context, req domain.VerifyPaymentRequest) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, raw string) (*domain.Order, error)
	GetOrder(ctx context.Context, id primitive.ObjectID) (*domain.Order, error)
	ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)
	GatewayKeyID() string
}

type OrderHandler struct {
	orders OrderService
	logger *zap.Logger
}

func NewOrderHandler(orders OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, logger: logger}
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req domain.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid checkout request",
			zap.String("request_id", c.GetString(middleware.RequestIDKey)),
			zap.Error(err))
		badRequest(c, err)
		return
	}

	res, err := h.orders.CreateOrder(c.Request.Context(), userID(c), req)
	if err != nil {
		respondError(c, h.logger, err, "Order", "create order")
		return
	}

	if res.Order.PaymentMethod == domain.PaymentCOD {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"orderId": res.Order.ID.Hex(),
			"message": "Order placed successfully. You will receive a confirmation email shortly.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"orderId":         res.Order.ID.Hex(),
		"razorpayOrderId": res.RazorpayOrderID,
		"amount":          res.Order.Amount,
		"gatewayAmount":   res.GatewayAmount,
		"currency":        res.Order.Currency,
		"keyId":           h.orders.GatewayKeyID(),
	})
}

func (h *OrderHandler) VerifyPayment(c *gin.Context) {
	var req domain.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	order, err := h.orders.VerifyPayment(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err, "Order", "verify payment")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"orderId": order.ID.Hex(),
		"message": "Payment verified and order confirmed!",
	})
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, err := domain.ParseID(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err, "order", "fetch order")
		return
	}

	order, err := h.orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err, "Order", "fetch order")
		return
	}
	c.JSON(http.StatusOK, order)
}

// ListUserOrders lists one shopper's orders. The shared guest id is refused
// since it would expose every anonymous order.
func (h *OrderHandler) ListUserOrders(c *gin.Context) {
	user := c.Param("userId")
	if user == "" || user == domain.GuestUserID {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "A registered user id is required"})
		return
	}

	orders, err := h.orders.ListOrders(c.Request.Context(), domain.OrderFilter{UserID: user})
	if err != nil {
		respondError(c, h.logger, err, "Order", "fetch orders")
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) AdminListOrders(c *gin.Context) {
	filter := domain.OrderFilter{Status: domain.OrderStatus(c.Query("status"))}
	orders, err := h.orders.ListOrders(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.logger, err, "Order", "fetch orders")
		return
	}
	c.JSON(http.StatusOK, orders)
}

type statusRequest struct {
	Status string `json:"status"`
}

// AdminUpdateOrder changes an order's status. The id is checked before the
// body so a malformed id is reported even when the body is also bad.
func (h *OrderHandler) AdminUpdateOrder(c *gin.Context) {
	id, err := domain.ParseID(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err, "order", "update order")
		return
	}

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	order, err := h.orders.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondError(c, h.logger, err, "Order", "update order")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Order updated successfully",
		"order":   order,
	})
}
