package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"sunnydayy-backend/internal/domain"
	"sunnydayy-backend/internal/payment"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memOrders struct {
	mu        sync.Mutex
	orders    map[primitive.ObjectID]domain.Order
	writes    int
	insertErr error
}

func newMemOrders() *memOrders {
	return &memOrders{orders: map[primitive.ObjectID]domain.Order{}}
}

func (m *memOrders) Insert(_ context.Context, order *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.insertErr != nil {
		return m.insertErr
	}
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	m.orders[order.ID] = *order
	m.writes++
	return nil
}

func (m *memOrders) SetGatewayOrder(_ context.Context, id primitive.ObjectID, gatewayOrderID string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.RazorpayOrderID = gatewayOrderID
	o.UpdatedAt = at
	m.orders[id] = o
	m.writes++
	return nil
}

func (m *memOrders) FindByID(_ context.Context, id primitive.ObjectID) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, fmt.Errorf("find order: %w", domain.ErrNotFound)
	}
	return &o, nil
}

func (m *memOrders) FindByGatewayOrderID(_ context.Context, gatewayOrderID string) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.orders {
		if o.RazorpayOrderID == gatewayOrderID {
			return &o, nil
		}
	}
	return nil, fmt.Errorf("find order: %w", domain.ErrNotFound)
}

func (m *memOrders) List(_ context.Context, f domain.OrderFilter) ([]domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Order{}
	for _, o := range m.orders {
		if f.UserID != "" && o.UserID != f.UserID {
			continue
		}
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memOrders) Transition(_ context.Context, id primitive.ObjectID, from domain.OrderStatus, change domain.StatusChange) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok || o.Status != from {
		return nil, domain.ErrIllegalTransition
	}
	o.Status = change.Status
	if change.PaymentID != "" {
		o.PaymentID = change.PaymentID
		o.PaymentSignature = change.PaymentSignature
	}
	o.UpdatedAt = change.At
	m.orders[id] = o
	m.writes++
	return &o, nil
}

func (m *memOrders) get(id primitive.ObjectID) domain.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.orders[id]
}

func (m *memOrders) writeCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

const testKeySecret = "test_secret"

type fakeGateway struct {
	signer   *payment.Signer
	requests []payment.OrderRequest
	err      error
	nextID   int
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{signer: payment.NewSigner(testKeySecret)}
}

func (g *fakeGateway) CreateOrder(_ context.Context, req payment.OrderRequest) (*payment.Order, error) {
	g.requests = append(g.requests, req)
	if g.err != nil {
		return nil, g.err
	}
	g.nextID++
	return &payment.Order{
		ID:       fmt.Sprintf("order_test%d", g.nextID),
		Amount:   req.Amount,
		Currency: req.Currency,
		Receipt:  req.Receipt,
		Status:   "created",
	}, nil
}

func (g *fakeGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return g.signer.Verify(orderID, paymentID, signature)
}

func (g *fakeGateway) KeyID() string { return "rzp_test_key" }

type recordingNotifier struct {
	placed []domain.Order
	paid   []domain.Order
}

func (n *recordingNotifier) OrderPlaced(order domain.Order)     { n.placed = append(n.placed, order) }
func (n *recordingNotifier) PaymentReceived(order domain.Order) { n.paid = append(n.paid, order) }

var errStore = errors.New("store unavailable")
