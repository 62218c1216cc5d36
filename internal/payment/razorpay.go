package payment

import (
	"context"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
	"go.uber.org/zap"
)

// orderCreator is the part of the Razorpay SDK used here.
type orderCreator interface {
	Create(data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
}

type Razorpay struct {
	keyID  string
	orders orderCreator
	signer *Signer
	logger *zap.Logger
}

func NewRazorpay(keyID, keySecret string, logger *zap.Logger) *Razorpay {
	client := razorpay.NewClient(keyID, keySecret)
	return &Razorpay{
		keyID:  keyID,
		orders: client.Order,
		signer: NewSigner(keySecret),
		logger: logger,
	}
}

func (r *Razorpay) KeyID() string {
	return r.keyID
}

// CreateOrder creates a Razorpay order with automatic payment capture.
// The SDK call itself is not context aware; ctx is only checked up front.
func (r *Razorpay) CreateOrder(ctx context.Context, req OrderRequest) (*Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data := map[string]interface{}{
		"amount":          req.Amount,
		"currency":        req.Currency,
		"receipt":         req.Receipt,
		"payment_capture": 1,
	}
	if len(req.Notes) > 0 {
		data["notes"] = req.Notes
	}

	body, err := r.orders.Create(data, nil)
	if err != nil {
		r.logger.Error("Razorpay order creation failed",
			zap.String("receipt", req.Receipt),
			zap.Error(err))
		return nil, fmt.Errorf("%w: create order: %v", ErrGateway, err)
	}

	order, err := parseOrder(body)
	if err != nil {
		return nil, err
	}
	r.logger.Info("Razorpay order created",
		zap.String("razorpay_order_id", order.ID),
		zap.String("receipt", req.Receipt),
		zap.Int64("amount", order.Amount))
	return order, nil
}

func (r *Razorpay) VerifySignature(orderID, paymentID, signature string) bool {
	return r.signer.Verify(orderID, paymentID, signature)
}

func parseOrder(body map[string]interface{}) (*Order, error) {
	id, _ := body["id"].(string)
	if id == "" {
		return nil, fmt.Errorf("%w: response has no order id", ErrGateway)
	}

	order := &Order{ID: id}
	order.Currency, _ = body["currency"].(string)
	order.Receipt, _ = body["receipt"].(string)
	order.Status, _ = body["status"].(string)

	// JSON numbers decode as float64 in the SDK's generic map.
	switch v := body["amount"].(type) {
	case float64:
		order.Amount = int64(v)
	case int64:
		order.Amount = v
	case int:
		order.Amount = int64(v)
	}
	return order, nil
}
