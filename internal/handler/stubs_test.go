package handler

import (
	"context"

	"sunnydayy-backend/internal/domain"
	"sunnydayy-backend/internal/service"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type stubOrders struct {
	create  func(userID string, req domain.CheckoutRequest) (*domain.CheckoutResult, error)
	verify  func(req domain.VerifyPaymentRequest) (*domain.Order, error)
	update  func(id primitive.ObjectID, raw string) (*domain.Order, error)
	get     func(id primitive.ObjectID) (*domain.Order, error)
	list    func(filter domain.OrderFilter) ([]domain.Order, error)
	updates int
}

func (s *stubOrders) CreateOrder(_ context.Context, userID string, req domain.CheckoutRequest) (*domain.CheckoutResult, error) {
	return s.create(userID, req)
}

func (s *stubOrders) VerifyPayment(_ context.Context, req domain.VerifyPaymentRequest) (*domain.Order, error) {
	return s.verify(req)
}

func (s *stubOrders) UpdateStatus(_ context.Context, id primitive.ObjectID, raw string) (*domain.Order, error) {
	s.updates++
	return s.update(id, raw)
}

func (s *stubOrders) GetOrder(_ context.Context, id primitive.ObjectID) (*domain.Order, error) {
	return s.get(id)
}

func (s *stubOrders) ListOrders(_ context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	return s.list(filter)
}

func (s *stubOrders) GatewayKeyID() string { return "rzp_test_key" }

type stubCatalog struct {
	productQuery   domain.ProductQuery
	createdProduct *domain.Product
	createdCat     *domain.Category
	createErr      error
}

func (s *stubCatalog) ListProducts(_ context.Context, q domain.ProductQuery) ([]domain.Product, domain.Pagination, error) {
	s.productQuery = q
	return []domain.Product{}, domain.NewPagination(1, 10, 0), nil
}

func (s *stubCatalog) GetProduct(_ context.Context, id primitive.ObjectID) (*domain.Product, error) {
	return nil, domain.ErrNotFound
}

func (s *stubCatalog) CreateProduct(_ context.Context, p *domain.Product) error {
	if s.createErr != nil {
		return s.createErr
	}
	p.ID = primitive.NewObjectID()
	s.createdProduct = p
	return nil
}

func (s *stubCatalog) UpdateProduct(_ context.Context, id primitive.ObjectID, p *domain.Product) (*domain.Product, error) {
	p.ID = id
	return p, nil
}

func (s *stubCatalog) DeleteProduct(_ context.Context, id primitive.ObjectID) error {
	return nil
}

func (s *stubCatalog) ListCategories(_ context.Context, q domain.CategoryQuery) ([]domain.Category, domain.Pagination, error) {
	return []domain.Category{}, domain.NewPagination(1, 10, 0), nil
}

func (s *stubCatalog) GetCategory(_ context.Context, id primitive.ObjectID) (*domain.Category, error) {
	return nil, domain.ErrNotFound
}

func (s *stubCatalog) CreateCategory(_ context.Context, c *domain.Category) error {
	if s.createErr != nil {
		return s.createErr
	}
	c.ID = primitive.NewObjectID()
	s.createdCat = c
	return nil
}

func (s *stubCatalog) UpdateCategory(_ context.Context, id primitive.ObjectID, c *domain.Category) (*domain.Category, error) {
	c.ID = id
	return c, nil
}

func (s *stubCatalog) DeleteCategory(_ context.Context, id primitive.ObjectID) error {
	return domain.ErrNotFound
}

type stubCarts struct {
	lastUser string
	lastItem domain.CartItem
}

func (s *stubCarts) Cart(_ context.Context, userID string) (service.CartSummary, error) {
	s.lastUser = userID
	return service.CartSummary{Items: []domain.CartItem{}}, nil
}

func (s *stubCarts) AddItem(_ context.Context, userID string, item domain.CartItem) (service.CartSummary, error) {
	s.lastUser, s.lastItem = userID, item
	return service.Summarize(&domain.Cart{Items: []domain.CartItem{item}}), nil
}

func (s *stubCarts) UpdateItem(_ context.Context, userID string, itemID primitive.ObjectID, patch domain.CartItemPatch) (service.CartSummary, error) {
	return service.CartSummary{}, domain.ErrNotFound
}

func (s *stubCarts) RemoveItem(_ context.Context, userID string, itemID primitive.ObjectID) (service.CartSummary, error) {
	return service.CartSummary{Items: []domain.CartItem{}}, nil
}

func (s *stubCarts) Clear(_ context.Context, userID string) error {
	s.lastUser = userID
	return nil
}

func (s *stubCarts) Wishlist(_ context.Context, userID string) (*domain.Wishlist, error) {
	return &domain.Wishlist{UserID: userID, ProductIDs: []string{}}, nil
}

func (s *stubCarts) AddToWishlist(_ context.Context, userID, productID string) (*domain.Wishlist, error) {
	return &domain.Wishlist{UserID: userID, ProductIDs: []string{productID}}, nil
}

func (s *stubCarts) RemoveFromWishlist(_ context.Context, userID, productID string) (*domain.Wishlist, error) {
	return &domain.Wishlist{UserID: userID, ProductIDs: []string{}}, nil
}
