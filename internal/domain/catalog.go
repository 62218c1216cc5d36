package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name          string             `bson:"name" json:"name" binding:"required"`
	Description   string             `bson:"description" json:"description"`
	Price         float64            `bson:"price" json:"price" binding:"gte=0"`
	OriginalPrice float64            `bson:"originalPrice,omitempty" json:"originalPrice,omitempty"`
	Images        []string           `bson:"images" json:"images"`
	Category      primitive.ObjectID `bson:"category,omitempty" json:"category,omitempty"`
	Stock         int                `bson:"stock" json:"stock" binding:"gte=0"`
	SKU           string             `bson:"sku" json:"sku" binding:"required"`
	Brand         string             `bson:"brand,omitempty" json:"brand,omitempty"`
	Tags          []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	Sizes         []string           `bson:"sizes,omitempty" json:"sizes,omitempty"`
	Colors        []string           `bson:"colors,omitempty" json:"colors,omitempty"`
	Featured      bool               `bson:"featured" json:"featured"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type ProductQuery struct {
	Page      int64
	Limit     int64
	Category  primitive.ObjectID
	MinPrice  *float64
	MaxPrice  *float64
	Search    string
	SortBy    string
	SortOrder int
}

type Category struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name            string             `bson:"name" json:"name" binding:"required"`
	Slug            string             `bson:"slug" json:"slug" binding:"required"`
	Description     string             `bson:"description" json:"description"`
	Image           string             `bson:"image" json:"image"`
	SortOrder       int                `bson:"sortOrder" json:"sortOrder"`
	IsActive        bool               `bson:"isActive" json:"isActive"`
	MetaTitle       string             `bson:"metaTitle,omitempty" json:"metaTitle,omitempty"`
	MetaDescription string             `bson:"metaDescription,omitempty" json:"metaDescription,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type CategoryQuery struct {
	Page            int64
	Limit           int64
	IncludeInactive bool
}

type Pagination struct {
	Page  int64 `json:"page"`
	Limit int64 `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

func NewPagination(page, limit, total int64) Pagination {
	pages := int64(0)
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}

// CartItem is one line of a cart. Lines are unique per product, size and color.
type CartItem struct {
	ID        primitive.ObjectID `bson:"_id" json:"_id"`
	ProductID string             `bson:"productId" json:"productId"`
	Name      string             `bson:"name" json:"name"`
	Image     string             `bson:"image" json:"image"`
	Price     float64            `bson:"price" json:"price"`
	Size      string             `bson:"size" json:"size"`
	Color     string             `bson:"color" json:"color"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	AddedAt   time.Time          `bson:"addedAt" json:"addedAt"`
}

// SameLine reports whether other refers to the same product configuration.
func (i CartItem) SameLine(other CartItem) bool {
	return i.ProductID == other.ProductID && i.Size == other.Size && i.Color == other.Color
}

type Cart struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	UserID    string             `bson:"userId" json:"userId"`
	Items     []CartItem         `bson:"items" json:"items"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type CartItemPatch struct {
	Quantity *int    `json:"quantity"`
	Size     *string `json:"size"`
	Color    *string `json:"color"`
}

type Wishlist struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID     string             `bson:"userId" json:"userId"`
	ProductIDs []string           `bson:"productIds" json:"productIds"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}
