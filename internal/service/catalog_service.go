package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"sunnydayy-backend/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

var productSortFields = map[string]bool{
	"createdAt": true,
	"price":     true,
	"name":      true,
}

type ProductStore interface {
	List(ctx context.Context, q domain.ProductQuery) ([]domain.Product, int64, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error)
	Insert(ctx context.Context, p *domain.Product) error
	Update(ctx context.Context, id primitive.ObjectID, p *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	SKUTaken(ctx context.Context, sku string, except primitive.ObjectID) (bool, error)
}

type CategoryStore interface {
	List(ctx context.Context, q domain.CategoryQuery) ([]domain.Category, int64, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Category, error)
	Insert(ctx context.Context, c *domain.Category) error
	Update(ctx context.Context, id primitive.ObjectID, c *domain.Category) (*domain.Category, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	Taken(ctx context.Context, field, value string, except primitive.ObjectID) (bool, error)
}

type CatalogService struct {
	products   ProductStore
	categories CategoryStore
	logger     *zap.Logger
}

func NewCatalogService(products ProductStore, categories CategoryStore, logger *zap.Logger) *CatalogService {
	return &CatalogService{products: products, categories: categories, logger: logger}
}

func normalizePage(page, limit int64) (int64, int64) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	// (page-1)*limit is the skip and must not overflow.
	if maxPage := math.MaxInt64 / limit; page > maxPage {
		page = maxPage
	}
	return page, limit
}

// ListProducts clamps paging and sorting to supported values before querying.
func (s *CatalogService) ListProducts(ctx context.Context, q domain.ProductQuery) ([]domain.Product, domain.Pagination, error) {
	q.Page, q.Limit = normalizePage(q.Page, q.Limit)
	if !productSortFields[q.SortBy] {
		q.SortBy = "createdAt"
	}
	if q.SortOrder != 1 {
		q.SortOrder = -1
	}
	q.Search = strings.TrimSpace(q.Search)

	products, total, err := s.products.List(ctx, q)
	if err != nil {
		return nil, domain.Pagination{}, err
	}
	return products, domain.NewPagination(q.Page, q.Limit, total), nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	return s.products.FindByID(ctx, id)
}

func (s *CatalogService) CreateProduct(ctx context.Context, p *domain.Product) error {
	if err := s.checkSKU(ctx, p, primitive.NilObjectID); err != nil {
		return err
	}
	if err := s.products.Insert(ctx, p); err != nil {
		return err
	}
	s.logger.Info("Product created", zap.String("product_id", p.ID.Hex()), zap.String("sku", p.SKU))
	return nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id primitive.ObjectID, p *domain.Product) (*domain.Product, error) {
	if err := s.checkSKU(ctx, p, id); err != nil {
		return nil, err
	}
	return s.products.Update(ctx, id, p)
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id primitive.ObjectID) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Product deleted", zap.String("product_id", id.Hex()))
	return nil
}

func (s *CatalogService) checkSKU(ctx context.Context, p *domain.Product, except primitive.ObjectID) error {
	p.SKU = strings.TrimSpace(p.SKU)
	if p.SKU == "" {
		return fmt.Errorf("%w: sku is required", domain.ErrValidation)
	}
	taken, err := s.products.SKUTaken(ctx, p.SKU, except)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("%w: product with SKU %q already exists", domain.ErrDuplicate, p.SKU)
	}
	return nil
}

func (s *CatalogService) ListCategories(ctx context.Context, q domain.CategoryQuery) ([]domain.Category, domain.Pagination, error) {
	q.Page, q.Limit = normalizePage(q.Page, q.Limit)
	categories, total, err := s.categories.List(ctx, q)
	if err != nil {
		return nil, domain.Pagination{}, err
	}
	return categories, domain.NewPagination(q.Page, q.Limit, total), nil
}

func (s *CatalogService) GetCategory(ctx context.Context, id primitive.ObjectID) (*domain.Category, error) {
	return s.categories.FindByID(ctx, id)
}

func (s *CatalogService) CreateCategory(ctx context.Context, c *domain.Category) error {
	if err := s.checkCategory(ctx, c, primitive.NilObjectID); err != nil {
		return err
	}
	if err := s.categories.Insert(ctx, c); err != nil {
		return err
	}
	s.logger.Info("Category created", zap.String("category_id", c.ID.Hex()), zap.String("slug", c.Slug))
	return nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id primitive.ObjectID, c *domain.Category) (*domain.Category, error) {
	if err := s.checkCategory(ctx, c, id); err != nil {
		return nil, err
	}
	return s.categories.Update(ctx, id, c)
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id primitive.ObjectID) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Category deleted", zap.String("category_id", id.Hex()))
	return nil
}

// checkCategory lowercases the slug and rejects a name or slug used by
// another category.
func (s *CatalogService) checkCategory(ctx context.Context, c *domain.Category, except primitive.ObjectID) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Slug = strings.ToLower(strings.TrimSpace(c.Slug))
	if c.Name == "" || c.Slug == "" {
		return fmt.Errorf("%w: name and slug are required", domain.ErrValidation)
	}
	for _, field := range []struct{ name, value string }{{"name", c.Name}, {"slug", c.Slug}} {
		taken, err := s.categories.Taken(ctx, field.name, field.value, except)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("%w: category with this %s already exists", domain.ErrDuplicate, field.name)
		}
	}
	return nil
}
