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

type WishlistRepository struct {
	coll *mongo.Collection
}

func NewWishlistRepository(coll *mongo.Collection) *WishlistRepository {
	return &WishlistRepository{coll: coll}
}

func (r *WishlistRepository) Get(ctx context.Context, userID string) (*domain.Wishlist, error) {
	w := domain.Wishlist{UserID: userID, ProductIDs: []string{}}
	err := r.coll.FindOne(ctx, bson.M{"userId": userID}).Decode(&w)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return &w, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find wishlist: %w", err)
	}
	if w.ProductIDs == nil {
		w.ProductIDs = []string{}
	}
	return &w, nil
}

// Add is idempotent: a product already on the list is left in place.
func (r *WishlistRepository) Add(ctx context.Context, userID, productID string) (*domain.Wishlist, error) {
	return r.modify(ctx, userID, bson.M{
		"$addToSet": bson.M{"productIds": productID},
		"$set":      bson.M{"updatedAt": time.Now()},
	}, true)
}

func (r *WishlistRepository) Remove(ctx context.Context, userID, productID string) (*domain.Wishlist, error) {
	return r.modify(ctx, userID, bson.M{
		"$pull": bson.M{"productIds": productID},
		"$set":  bson.M{"updatedAt": time.Now()},
	}, false)
}

func (r *WishlistRepository) modify(ctx context.Context, userID string, update bson.M, upsert bool) (*domain.Wishlist, error) {
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetUpsert(upsert)

	w := domain.Wishlist{UserID: userID, ProductIDs: []string{}}
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"userId": userID}, update, opts).Decode(&w)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return &w, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update wishlist: %w", err)
	}
	if w.ProductIDs == nil {
		w.ProductIDs = []string{}
	}
	return &w, nil
}
