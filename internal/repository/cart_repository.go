package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sunnydayy-backend/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CartRepository struct {
	coll *mongo.Collection
}

func NewCartRepository(coll *mongo.Collection) *CartRepository {
	return &CartRepository{coll: coll}
}

// Get returns the user's cart, or an empty one when none was saved yet.
func (r *CartRepository) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	cart := domain.Cart{UserID: userID, Items: []domain.CartItem{}}
	err := r.coll.FindOne(ctx, bson.M{"userId": userID}).Decode(&cart)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return &cart, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find cart: %w", err)
	}
	if cart.Items == nil {
		cart.Items = []domain.CartItem{}
	}
	return &cart, nil
}

// SaveItems replaces the cart lines, creating the cart on first write.
func (r *CartRepository) SaveItems(ctx context.Context, userID string, items []domain.CartItem) error {
	if items == nil {
		items = []domain.CartItem{}
	}
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"userId": userID},
		bson.M{"$set": bson.M{"items": items, "updatedAt": time.Now()}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}
