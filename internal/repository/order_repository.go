package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sunnydayy-backend/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type OrderRepository struct {
	coll *mongo.Collection
}

func NewOrderRepository(coll *mongo.Collection) *OrderRepository {
	return &OrderRepository{coll: coll}
}

func (r *OrderRepository) Insert(ctx context.Context, order *domain.Order) error {
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	if _, err := r.coll.InsertOne(ctx, order); err != nil {
		return fmt.Errorf("insert order: %w", translate(err))
	}
	return nil
}

// SetGatewayOrder attaches the remote payment order id to a stored order.
func (r *OrderRepository) SetGatewayOrder(ctx context.Context, id primitive.ObjectID, gatewayOrderID string, at time.Time) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"razorpayOrderId": gatewayOrderID, "updatedAt": at}},
	)
	if err != nil {
		return fmt.Errorf("set gateway order: %w", translate(err))
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("set gateway order %s: %w", id.Hex(), domain.ErrNotFound)
	}
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Order, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *OrderRepository) FindByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*domain.Order, error) {
	return r.findOne(ctx, bson.M{"razorpayOrderId": gatewayOrderID})
}

func (r *OrderRepository) findOne(ctx context.Context, filter bson.M) (*domain.Order, error) {
	var order domain.Order
	if err := r.coll.FindOne(ctx, filter).Decode(&order); err != nil {
		return nil, fmt.Errorf("find order: %w", translate(err))
	}
	return &order, nil
}

// List returns orders newest first.
func (r *OrderRepository) List(ctx context.Context, f domain.OrderFilter) ([]domain.Order, error) {
	filter := bson.M{}
	if f.UserID != "" {
		filter["userId"] = f.UserID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	orders := []domain.Order{}
	if err := cur.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	return orders, nil
}

// Transition moves an order from one status to another. The write only
// applies while the stored status still equals from; if another writer got
// there first the call reports domain.ErrIllegalTransition.
func (r *OrderRepository) Transition(ctx context.Context, id primitive.ObjectID, from domain.OrderStatus, change domain.StatusChange) (*domain.Order, error) {
	set := bson.M{"status": change.Status, "updatedAt": change.At}
	if change.PaymentID != "" {
		set["paymentId"] = change.PaymentID
	}
	if change.PaymentSignature != "" {
		set["paymentSignature"] = change.PaymentSignature
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var order domain.Order
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "status": from},
		bson.M{"$set": set},
		opts,
	).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("order %s is no longer %s: %w", id.Hex(), from, domain.ErrIllegalTransition)
	}
	if err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}
	return &order, nil
}

func translate(err error) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return domain.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %v", domain.ErrDuplicate, err)
	}
	return err
}
