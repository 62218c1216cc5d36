package service

import (
	"context"
	"errors"
	"testing"

	"sunnydayy-backend/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memCarts struct {
	carts map[string][]domain.CartItem
}

func (m *memCarts) Get(_ context.Context, userID string) (*domain.Cart, error) {
	items := append([]domain.CartItem{}, m.carts[userID]...)
	return &domain.Cart{UserID: userID, Items: items}, nil
}

func (m *memCarts) SaveItems(_ context.Context, userID string, items []domain.CartItem) error {
	m.carts[userID] = append([]domain.CartItem{}, items...)
	return nil
}

type memWishlists struct {
	lists map[string][]string
}

func (m *memWishlists) Get(_ context.Context, userID string) (*domain.Wishlist, error) {
	return &domain.Wishlist{UserID: userID, ProductIDs: append([]string{}, m.lists[userID]...)}, nil
}

func (m *memWishlists) Add(ctx context.Context, userID, productID string) (*domain.Wishlist, error) {
	for _, id := range m.lists[userID] {
		if id == productID {
			return m.Get(ctx, userID)
		}
	}
	m.lists[userID] = append(m.lists[userID], productID)
	return m.Get(ctx, userID)
}

func (m *memWishlists) Remove(ctx context.Context, userID, productID string) (*domain.Wishlist, error) {
	kept := []string{}
	for _, id := range m.lists[userID] {
		if id != productID {
			kept = append(kept, id)
		}
	}
	m.lists[userID] = kept
	return m.Get(ctx, userID)
}

func newCartService() (*CartService, *memCarts) {
	carts := &memCarts{carts: map[string][]domain.CartItem{}}
	wishlists := &memWishlists{lists: map[string][]string{}}
	return NewCartService(carts, wishlists), carts
}

func TestCartService_AddItemMergesSameLine(t *testing.T) {
	svc, carts := newCartService()
	ctx := context.Background()

	shirt := domain.CartItem{ProductID: "p1", Name: "Shirt", Price: 799.5, Size: "M", Quantity: 1}
	svc.AddItem(ctx, "guest", shirt)
	svc.AddItem(ctx, "guest", shirt)
	shirt.Size = "L"
	sum, err := svc.AddItem(ctx, "guest", shirt)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(carts.carts["guest"]) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(carts.carts["guest"]))
	}
	if carts.carts["guest"][0].Quantity != 2 {
		t.Errorf("Expected merged quantity 2, got %d", carts.carts["guest"][0].Quantity)
	}
	if sum.ItemCount != 3 {
		t.Errorf("Expected 3 items, got %d", sum.ItemCount)
	}
	if sum.Subtotal != 2398.5 {
		t.Errorf("Expected subtotal 2398.5, got %v", sum.Subtotal)
	}
	if carts.carts["guest"][0].ID.IsZero() {
		t.Error("Expected line id to be assigned")
	}
}

func TestCartService_UpdateItem(t *testing.T) {
	svc, carts := newCartService()
	ctx := context.Background()
	svc.AddItem(ctx, "u1", domain.CartItem{ProductID: "p1", Price: 100, Quantity: 1})
	id := carts.carts["u1"][0].ID

	qty, color := 4, "blue"
	sum, err := svc.UpdateItem(ctx, "u1", id, domain.CartItemPatch{Quantity: &qty, Color: &color})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if sum.Items[0].Quantity != 4 || sum.Items[0].Color != "blue" {
		t.Errorf("Unexpected line %+v", sum.Items[0])
	}

	zero := 0
	sum, _ = svc.UpdateItem(ctx, "u1", id, domain.CartItemPatch{Quantity: &zero})
	if len(sum.Items) != 0 {
		t.Errorf("Expected line to be removed, got %d lines", len(sum.Items))
	}

	_, err = svc.UpdateItem(ctx, "u1", primitive.NewObjectID(), domain.CartItemPatch{Quantity: &qty})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Expected not found, got: %v", err)
	}
}

func TestCartService_UpdateItemMergesIntoExistingLine(t *testing.T) {
	svc, carts := newCartService()
	ctx := context.Background()
	svc.AddItem(ctx, "u1", domain.CartItem{ProductID: "p1", Price: 100, Size: "M", Quantity: 1})
	svc.AddItem(ctx, "u1", domain.CartItem{ProductID: "p1", Price: 100, Size: "L", Quantity: 2})
	keep := carts.carts["u1"][0].ID
	large := carts.carts["u1"][1].ID

	size := "M"
	sum, err := svc.UpdateItem(ctx, "u1", large, domain.CartItemPatch{Size: &size})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(carts.carts["u1"]) != 1 {
		t.Fatalf("Expected lines to merge, got %+v", carts.carts["u1"])
	}
	line := carts.carts["u1"][0]
	if line.ID != keep || line.Size != "M" || line.Quantity != 3 {
		t.Errorf("Unexpected merged line %+v", line)
	}
	if sum.ItemCount != 3 {
		t.Errorf("Expected 3 items, got %d", sum.ItemCount)
	}
}

func TestCartService_RemoveAndClear(t *testing.T) {
	svc, carts := newCartService()
	ctx := context.Background()
	svc.AddItem(ctx, "u1", domain.CartItem{ProductID: "p1", Price: 10, Quantity: 1})
	svc.AddItem(ctx, "u1", domain.CartItem{ProductID: "p2", Price: 20, Quantity: 1})

	sum, err := svc.RemoveItem(ctx, "u1", carts.carts["u1"][0].ID)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(sum.Items) != 1 || sum.Items[0].ProductID != "p2" {
		t.Errorf("Unexpected cart %+v", sum.Items)
	}

	if err := svc.Clear(ctx, "u1"); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(carts.carts["u1"]) != 0 {
		t.Error("Expected cart to be empty")
	}
}

func TestCartService_Wishlist(t *testing.T) {
	svc, _ := newCartService()
	ctx := context.Background()

	svc.AddToWishlist(ctx, "u1", "p1")
	w, _ := svc.AddToWishlist(ctx, "u1", "p1")
	if len(w.ProductIDs) != 1 {
		t.Errorf("Expected one product, got %v", w.ProductIDs)
	}

	w, _ = svc.RemoveFromWishlist(ctx, "u1", "p1")
	if len(w.ProductIDs) != 0 {
		t.Errorf("Expected empty wishlist, got %v", w.ProductIDs)
	}

	if _, err := svc.AddToWishlist(ctx, "u1", ""); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("Expected validation error, got: %v", err)
	}
}
