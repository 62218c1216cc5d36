package service

import (
	"context"
	"fmt"
	"time"

	"sunnydayy-backend/internal/domain"
	"sunnydayy-backend/internal/payment"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type OrderStore interface {
	Insert(ctx context.Context, order *domain.Order) error
	SetGatewayOrder(ctx context.Context, id primitive.ObjectID, gatewayOrderID string, at time.Time) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Order, error)
	FindByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*domain.Order, error)
	List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)
	Transition(ctx context.Context, id primitive.ObjectID, from domain.OrderStatus, change domain.StatusChange) (*domain.Order, error)
}

// Notifier is told about orders customers should hear about. Implementations
// must not block the caller.
type Notifier interface {
	OrderPlaced(order domain.Order)
	PaymentReceived(order domain.Order)
}

type OrderService struct {
	orders   OrderStore
	gateway  payment.Gateway
	notifier Notifier
	logger   *zap.Logger
	now      func() time.Time
}

func NewOrderService(orders OrderStore, gateway payment.Gateway, notifier Notifier, logger *zap.Logger) *OrderService {
	return &OrderService{
		orders:   orders,
		gateway:  gateway,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *OrderService) GatewayKeyID() string {
	return s.gateway.KeyID()
}

// CreateOrder stores the order and, for online payment, opens a matching
// gateway order. A gateway failure leaves the stored order in created state
// without a gateway id; nothing is rolled back.
func (s *OrderService) CreateOrder(ctx context.Context, userID string, req domain.CheckoutRequest) (*domain.CheckoutResult, error) {
	if !req.PaymentMethod.Valid() {
		return nil, fmt.Errorf("%w: unknown payment method %q", domain.ErrValidation, req.PaymentMethod)
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: items are required", domain.ErrValidation)
	}
	if userID == "" {
		userID = domain.GuestUserID
	}

	now := s.now()
	order := &domain.Order{
		UserID:        userID,
		Amount:        req.Amount,
		Currency:      req.CurrencyOrDefault(),
		Status:        req.PaymentMethod.InitialStatus(),
		PaymentMethod: req.PaymentMethod,
		FullName:      req.FullName,
		Email:         req.Email,
		Phone:         req.Phone,
		AddressLine1:  req.AddressLine1,
		AddressLine2:  req.AddressLine2,
		City:          req.City,
		State:         req.State,
		Pincode:       req.Pincode,
		Items:         make([]domain.OrderItem, 0, len(req.Items)),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, item := range req.Items {
		order.Items = append(order.Items, item.ToOrderItem())
	}

	if err := s.orders.Insert(ctx, order); err != nil {
		s.logger.Error("Failed to save order", zap.Error(err))
		return nil, fmt.Errorf("save order: %w", err)
	}

	result := &domain.CheckoutResult{Order: order}
	if order.PaymentMethod == domain.PaymentCOD {
		s.logger.Info("COD order placed",
			zap.String("order_id", order.ID.Hex()),
			zap.Float64("amount", order.Amount))
		s.notifier.OrderPlaced(*order)
		return result, nil
	}

	gwOrder, err := s.gateway.CreateOrder(ctx, payment.OrderRequest{
		Amount:   payment.ToMinorUnits(order.Amount),
		Currency: order.Currency,
		Receipt:  order.ID.Hex(),
		Notes:    map[string]string{"orderId": order.ID.Hex(), "email": order.Email},
	})
	if err != nil {
		s.logger.Error("Failed to create gateway order",
			zap.String("order_id", order.ID.Hex()),
			zap.Error(err))
		return nil, fmt.Errorf("create gateway order: %w", err)
	}

	if err := s.orders.SetGatewayOrder(ctx, order.ID, gwOrder.ID, s.now()); err != nil {
		s.logger.Error("Failed to attach gateway order",
			zap.String("order_id", order.ID.Hex()),
			zap.String("razorpay_order_id", gwOrder.ID),
			zap.Error(err))
		return nil, fmt.Errorf("attach gateway order: %w", err)
	}
	order.RazorpayOrderID = gwOrder.ID
	result.RazorpayOrderID = gwOrder.ID
	result.GatewayAmount = gwOrder.Amount

	s.logger.Info("Online order created",
		zap.String("order_id", order.ID.Hex()),
		zap.String("razorpay_order_id", gwOrder.ID),
		zap.Float64("amount", order.Amount))
	return result, nil
}

// VerifyPayment checks the gateway signature over the gateway order id and
// payment id and marks the matching order paid. Nothing is written when the
// signature does not match. Replaying a verification for an order already
// paid with the same payment id succeeds without another write.
func (s *OrderService) VerifyPayment(ctx context.Context, req domain.VerifyPaymentRequest) (*domain.Order, error) {
	if !s.gateway.VerifySignature(req.OrderID, req.PaymentID, req.Signature) {
		s.logger.Warn("Payment signature mismatch",
			zap.String("razorpay_order_id", req.OrderID),
			zap.String("payment_id", req.PaymentID))
		return nil, domain.ErrInvalidSignature
	}

	order, err := s.orders.FindByGatewayOrderID(ctx, req.OrderID)
	if err != nil {
		return nil, fmt.Errorf("order for gateway order %s: %w", req.OrderID, err)
	}

	if order.Status == domain.StatusPaid {
		if order.PaymentID == req.PaymentID {
			return order, nil
		}
		return nil, &domain.TransitionError{From: order.Status, To: domain.StatusPaid}
	}
	if !order.Status.CanTransitionTo(domain.StatusPaid) {
		return nil, &domain.TransitionError{From: order.Status, To: domain.StatusPaid}
	}

	updated, err := s.orders.Transition(ctx, order.ID, order.Status, domain.StatusChange{
		Status:           domain.StatusPaid,
		PaymentID:        req.PaymentID,
		PaymentSignature: req.Signature,
		At:               s.now(),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Payment verified",
		zap.String("order_id", updated.ID.Hex()),
		zap.String("payment_id", req.PaymentID))
	s.notifier.PaymentReceived(*updated)
	return updated, nil
}

// UpdateStatus applies an administrator's status change. The value is
// checked against the admin set before the order is read.
func (s *OrderService) UpdateStatus(ctx context.Context, id primitive.ObjectID, raw string) (*domain.Order, error) {
	next, err := domain.ParseAdminStatus(raw)
	if err != nil {
		return nil, err
	}

	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(next) {
		return nil, &domain.TransitionError{From: order.Status, To: next}
	}

	updated, err := s.orders.Transition(ctx, id, order.Status, domain.StatusChange{
		Status: next,
		At:     s.now(),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Order status updated",
		zap.String("order_id", id.Hex()),
		zap.String("from", string(order.Status)),
		zap.String("to", string(next)))
	return updated, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id primitive.ObjectID) (*domain.Order, error) {
	return s.orders.FindByID(ctx, id)
}

func (s *OrderService) ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	if filter.Status != "" {
		if _, err := domain.ParseStatus(string(filter.Status)); err != nil {
			return nil, err
		}
	}
	return s.orders.List(ctx, filter)
}
