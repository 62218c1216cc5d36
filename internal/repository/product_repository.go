package repository

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"sunnydayy-backend/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProductRepository struct {
	coll *mongo.Collection
}

func NewProductRepository(coll *mongo.Collection) *ProductRepository {
	return &ProductRepository{coll: coll}
}

func productFilter(q domain.ProductQuery) bson.M {
	filter := bson.M{}
	if !q.Category.IsZero() {
		filter["category"] = q.Category
	}
	if q.MinPrice != nil || q.MaxPrice != nil {
		price := bson.M{}
		if q.MinPrice != nil {
			price["$gte"] = *q.MinPrice
		}
		if q.MaxPrice != nil {
			price["$lte"] = *q.MaxPrice
		}
		filter["price"] = price
	}
	if q.Search != "" {
		filter["name"] = primitive.Regex{Pattern: regexp.QuoteMeta(q.Search), Options: "i"}
	}
	return filter
}

// List returns one page of products plus the total number matching q.
func (r *ProductRepository) List(ctx context.Context, q domain.ProductQuery) ([]domain.Product, int64, error) {
	filter := productFilter(q)

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: q.SortBy, Value: q.SortOrder}}).
		SetSkip((q.Page - 1) * q.Limit).
		SetLimit(q.Limit)
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	products := []domain.Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, 0, fmt.Errorf("decode products: %w", err)
	}
	return products, total, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	var p domain.Product
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, fmt.Errorf("find product: %w", translate(err))
	}
	return &p, nil
}

func (r *ProductRepository) Insert(ctx context.Context, p *domain.Product) error {
	now := time.Now()
	p.ID = primitive.NewObjectID()
	p.CreatedAt, p.UpdatedAt = now, now
	if _, err := r.coll.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("insert product: %w", translate(err))
	}
	return nil
}

func (r *ProductRepository) Update(ctx context.Context, id primitive.ObjectID, p *domain.Product) (*domain.Product, error) {
	set := bson.M{
		"name":          p.Name,
		"description":   p.Description,
		"price":         p.Price,
		"originalPrice": p.OriginalPrice,
		"images":        p.Images,
		"category":      p.Category,
		"stock":         p.Stock,
		"sku":           p.SKU,
		"brand":         p.Brand,
		"tags":          p.Tags,
		"sizes":         p.Sizes,
		"colors":        p.Colors,
		"featured":      p.Featured,
		"updatedAt":     time.Now(),
	}

	var out domain.Product
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&out)
	if err != nil {
		return nil, fmt.Errorf("update product: %w", translate(err))
	}
	return &out, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("delete product %s: %w", id.Hex(), domain.ErrNotFound)
	}
	return nil
}

// SKUTaken reports whether another product already uses sku.
func (r *ProductRepository) SKUTaken(ctx context.Context, sku string, except primitive.ObjectID) (bool, error) {
	filter := bson.M{"sku": sku}
	if !except.IsZero() {
		filter["_id"] = bson.M{"$ne": except}
	}
	n, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("check sku: %w", err)
	}
	return n > 0, nil
}
