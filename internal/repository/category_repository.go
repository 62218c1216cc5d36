package repository

import (
	"context"
	"fmt"
	"time"

	"sunnydayy-backend/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CategoryRepository struct {
	coll *mongo.Collection
}

func NewCategoryRepository(coll *mongo.Collection) *CategoryRepository {
	return &CategoryRepository{coll: coll}
}

// List returns categories ordered by sortOrder then name.
func (r *CategoryRepository) List(ctx context.Context, q domain.CategoryQuery) ([]domain.Category, int64, error) {
	filter := bson.M{}
	if !q.IncludeInactive {
		filter["isActive"] = true
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count categories: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "sortOrder", Value: 1}, {Key: "name", Value: 1}}).
		SetSkip((q.Page - 1) * q.Limit).
		SetLimit(q.Limit)
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list categories: %w", err)
	}
	categories := []domain.Category{}
	if err := cur.All(ctx, &categories); err != nil {
		return nil, 0, fmt.Errorf("decode categories: %w", err)
	}
	return categories, total, nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Category, error) {
	var c domain.Category
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return nil, fmt.Errorf("find category: %w", translate(err))
	}
	return &c, nil
}

func (r *CategoryRepository) Insert(ctx context.Context, c *domain.Category) error {
	now := time.Now()
	c.ID = primitive.NewObjectID()
	c.CreatedAt, c.UpdatedAt = now, now
	if _, err := r.coll.InsertOne(ctx, c); err != nil {
		return fmt.Errorf("insert category: %w", translate(err))
	}
	return nil
}

func (r *CategoryRepository) Update(ctx context.Context, id primitive.ObjectID, c *domain.Category) (*domain.Category, error) {
	set := bson.M{
		"name":            c.Name,
		"slug":            c.Slug,
		"description":     c.Description,
		"image":           c.Image,
		"sortOrder":       c.SortOrder,
		"isActive":        c.IsActive,
		"metaTitle":       c.MetaTitle,
		"metaDescription": c.MetaDescription,
		"updatedAt":       time.Now(),
	}

	var out domain.Category
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&out)
	if err != nil {
		return nil, fmt.Errorf("update category: %w", translate(err))
	}
	return &out, nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("delete category %s: %w", id.Hex(), domain.ErrNotFound)
	}
	return nil
}

// Taken reports whether another category already uses the name or slug.
func (r *CategoryRepository) Taken(ctx context.Context, field, value string, except primitive.ObjectID) (bool, error) {
	filter := bson.M{field: value}
	if !except.IsZero() {
		filter["_id"] = bson.M{"$ne": except}
	}
	n, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("check category %s: %w", field, err)
	}
	return n > 0, nil
}
