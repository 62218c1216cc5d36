package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"sunnydayy-backend/internal/domain"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type CatalogService interface {
	ListProducts(ctx context.Context, q domain.ProductQuery) ([]domain.Product, domain.Pagination, error)
	GetProduct(ctx context.Context, id primitive.ObjectID) (*domain.Product, error)
	CreateProduct(ctx context.Context, p *domain.Product) error
	UpdateProduct(ctx context.Context, id primitive.ObjectID, p *domain.Product) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id primitive.ObjectID) error
	ListCategories(ctx context.Context, q domain.CategoryQuery) ([]domain.Category, domain.Pagination, error)
	GetCategory(ctx context.Context, id primitive.ObjectID) (*domain.Category, error)
	CreateCategory(ctx context.Context, c *domain.Category) error
	UpdateCategory(ctx context.Context, id primitive.ObjectID, c *domain.Category) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id primitive.ObjectID) error
}

type CatalogHandler struct {
	catalog CatalogService
	logger  *zap.Logger
}

func NewCatalogHandler(catalog CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, logger: logger}
}

func queryInt(c *gin.Context, key string) (int64, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", domain.ErrValidation, key)
	}
	return n, nil
}

func queryFloat(c *gin.Context, key string) (*float64, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a number", domain.ErrValidation, key)
	}
	return &f, nil
}

func productQuery(c *gin.Context) (domain.ProductQuery, error) {
	var (
		q   domain.ProductQuery
		err error
	)
	if q.Page, err = queryInt(c, "page"); err != nil {
		return q, err
	}
	if q.Limit, err = queryInt(c, "limit"); err != nil {
		return q, err
	}
	if q.MinPrice, err = queryFloat(c, "minPrice"); err != nil {
		return q, err
	}
	if q.MaxPrice, err = queryFloat(c, "maxPrice"); err != nil {
		return q, err
	}
	if raw := c.Query("category"); raw != "" {
		if q.Category, err = domain.ParseID(raw); err != nil {
			return q, fmt.Errorf("%w: invalid category", domain.ErrValidation)
		}
	}
	q.Search = c.Query("search")
	q.SortBy = c.Query("sortBy")
	if strings.EqualFold(c.Query("sortOrder"), "asc") {
		q.SortOrder = 1
	}
	return q, nil
}

func (h *CatalogHandler) ListProducts(c *gin.Context) {
	q, err := productQuery(c)
	if err != nil {
		respondError(c, h.logger, err, "Product", "fetch products")
		return
	}

	products, page, err := h.catalog.ListProducts(c.Request.Context(), q)
	if err != nil {
		respondError(c, h.logger, err, "Product", "fetch products")
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products, "pagination": page})
}

func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, err := domain.ParseID(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err, "product", "fetch product")
		return
	}
	product, err := h.catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err, "Product", "fetch product")
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var p domain.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.catalog.CreateProduct(c.Request.Context(), &p); err != nil {
		respondError(c, h.logger, err, "Product", "create product")
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, err := domain.ParseID(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err, "product", "update product")
		return
	}
	var p domain.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, err)
		return
	}
	updated, err := h.catalog.UpdateProduct(c.Request.Context(), id, &p)
	if err != nil {
		respondError(c, h.logger, err, "Product", "update product")
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	id, err := domain.ParseID(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err, "product", "delete product")
		return
	}
	if err := h.catalog.DeleteProduct(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err, "Product", "delete product")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product deleted successfully"})
}

type categoryRequest struct {
	Name            string `json:"name" binding:"required"`
	Slug            string `json:"slug" binding:"required"`
	Description     string `json:"description"`
	Image           string `json:"image"`
	SortOrder       int    `json:"sortOrder"`
	IsActive        *bool  `json:"isActive"`
	MetaTitle       string `json:"metaTitle"`
	MetaDescription string `json:"metaDescription"`
}

// toCategory treats a missing isActive as true.
func (r categoryRequest) toCategory() *domain.Category {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return &domain.Category{
		Name:            r.Name,
		Slug:            r.Slug,
		Description:     r.Description,
		Image:           r.Image,
		SortOrder:       r.SortOrder,
		IsActive:        active,
		MetaTitle:       r.MetaTitle,
		MetaDescription: r.MetaDescription,
	}
}

func (h *CatalogHandler) ListCategories(c *gin.Context) {
	var (
		q   domain.CategoryQuery
		err error
	)
	if q.Page, err = queryInt(c, "page"); err == nil {
		q.Limit, err = queryInt(c, "limit")
	}
	if err != nil {
		respondError(c, h.logger, err, "Category", "fetch categories")
		return
	}
	q.IncludeInactive = c.Query("includeInactive") == "true"

	categories, page, err := h.catalog.ListCategories(c.Request.Context(), q)
	if err != nil {
		respondError(c, h.logger, err, "Category", "fetch categories")
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories, "pagination": page})
}

func (h *CatalogHandler) GetCategory(c *gin.Context) {
	id, err := domain.ParseID(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err, "category", "fetch category")
		return
	}
	category, err := h.catalog.GetCategory(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err, "Category", "fetch category")
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	category := req.toCategory()
	if err := h.catalog.CreateCategory(c.Request.Context(), category); err != nil {
		respondError(c, h.logger, err, "Category", "create category")
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	id, err := domain.ParseID(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err, "category", "update category")
		return
	}
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	updated, err := h.catalog.UpdateCategory(c.Request.Context(), id, req.toCategory())
	if err != nil {
		respondError(c, h.logger, err, "Category", "update category")
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	id, err := domain.ParseID(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err, "category", "delete category")
		return
	}
	if err := h.catalog.DeleteCategory(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err, "Category", "delete category")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Category deleted successfully"})
}
