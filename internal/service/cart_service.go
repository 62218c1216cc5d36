package service

import (
	"context"
	"fmt"
	"time"

	"sunnydayy-backend/internal/domain"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CartStore interface {
	Get(ctx context.Context, userID string) (*domain.Cart, error)
	SaveItems(ctx context.Context, userID string, items []domain.CartItem) error
}

type WishlistStore interface {
	Get(ctx context.Context, userID string) (*domain.Wishlist, error)
	Add(ctx context.Context, userID, productID string) (*domain.Wishlist, error)
	Remove(ctx context.Context, userID, productID string) (*domain.Wishlist, error)
}

// CartSummary is a cart with its derived totals.
type CartSummary struct {
	Items     []domain.CartItem `json:"items"`
	ItemCount int               `json:"itemCount"`
	Subtotal  float64           `json:"subtotal"`
}

func Summarize(cart *domain.Cart) CartSummary {
	sum := CartSummary{Items: cart.Items}
	if sum.Items == nil {
		sum.Items = []domain.CartItem{}
	}
	total := decimal.Zero
	for _, item := range sum.Items {
		sum.ItemCount += item.Quantity
		total = total.Add(decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	sum.Subtotal = total.Round(2).InexactFloat64()
	return sum
}

type CartService struct {
	carts     CartStore
	wishlists WishlistStore
	now       func() time.Time
}

func NewCartService(carts CartStore, wishlists WishlistStore) *CartService {
	return &CartService{carts: carts, wishlists: wishlists, now: time.Now}
}

func (s *CartService) Cart(ctx context.Context, userID string) (CartSummary, error) {
	cart, err := s.carts.Get(ctx, userID)
	if err != nil {
		return CartSummary{}, err
	}
	return Summarize(cart), nil
}

// AddItem merges item into an existing line with the same product, size and
// color, or appends it as a new line.
func (s *CartService) AddItem(ctx context.Context, userID string, item domain.CartItem) (CartSummary, error) {
	if item.ProductID == "" {
		return CartSummary{}, fmt.Errorf("%w: productId is required", domain.ErrValidation)
	}
	if item.Quantity < 1 {
		item.Quantity = 1
	}

	cart, err := s.carts.Get(ctx, userID)
	if err != nil {
		return CartSummary{}, err
	}

	merged := false
	for i := range cart.Items {
		if cart.Items[i].SameLine(item) {
			cart.Items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		item.ID = primitive.NewObjectID()
		item.AddedAt = s.now()
		cart.Items = append(cart.Items, item)
	}

	return s.save(ctx, cart)
}

// UpdateItem patches a line. A quantity of zero or less removes it. A line
// whose new size or color matches another line is folded into that line.
func (s *CartService) UpdateItem(ctx context.Context, userID string, itemID primitive.ObjectID, patch domain.CartItemPatch) (CartSummary, error) {
	cart, err := s.carts.Get(ctx, userID)
	if err != nil {
		return CartSummary{}, err
	}

	idx := findLine(cart.Items, itemID)
	if idx < 0 {
		return CartSummary{}, fmt.Errorf("cart item %s: %w", itemID.Hex(), domain.ErrNotFound)
	}

	if patch.Quantity != nil && *patch.Quantity <= 0 {
		cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
		return s.save(ctx, cart)
	}
	if patch.Quantity != nil {
		cart.Items[idx].Quantity = *patch.Quantity
	}
	if patch.Size != nil {
		cart.Items[idx].Size = *patch.Size
	}
	if patch.Color != nil {
		cart.Items[idx].Color = *patch.Color
	}
	for i := range cart.Items {
		if i != idx && cart.Items[i].SameLine(cart.Items[idx]) {
			cart.Items[i].Quantity += cart.Items[idx].Quantity
			cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
			break
		}
	}
	return s.save(ctx, cart)
}

func (s *CartService) RemoveItem(ctx context.Context, userID string, itemID primitive.ObjectID) (CartSummary, error) {
	cart, err := s.carts.Get(ctx, userID)
	if err != nil {
		return CartSummary{}, err
	}
	idx := findLine(cart.Items, itemID)
	if idx < 0 {
		return CartSummary{}, fmt.Errorf("cart item %s: %w", itemID.Hex(), domain.ErrNotFound)
	}
	cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
	return s.save(ctx, cart)
}

func (s *CartService) Clear(ctx context.Context, userID string) error {
	return s.carts.SaveItems(ctx, userID, []domain.CartItem{})
}

func (s *CartService) save(ctx context.Context, cart *domain.Cart) (CartSummary, error) {
	if err := s.carts.SaveItems(ctx, cart.UserID, cart.Items); err != nil {
		return CartSummary{}, err
	}
	return Summarize(cart), nil
}

func findLine(items []domain.CartItem, id primitive.ObjectID) int {
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func (s *CartService) Wishlist(ctx context.Context, userID string) (*domain.Wishlist, error) {
	return s.wishlists.Get(ctx, userID)
}

func (s *CartService) AddToWishlist(ctx context.Context, userID, productID string) (*domain.Wishlist, error) {
	if productID == "" {
		return nil, fmt.Errorf("%w: productId is required", domain.ErrValidation)
	}
	return s.wishlists.Add(ctx, userID, productID)
}

func (s *CartService) RemoveFromWishlist(ctx context.Context, userID, productID string) (*domain.Wishlist, error) {
	return s.wishlists.Remove(ctx, userID, productID)
}
