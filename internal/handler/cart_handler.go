package handler

import (
	"context"
	"net/http"

	"sunnydayy-backend/internal/domain"
	"sunnydayy-backend/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type CartService interface {
	Cart(ctx context.Context, userID string) (service.CartSummary, error)
	AddItem(ctx context.Context, userID string, item domain.CartItem) (service.CartSummary, error)
	UpdateItem(ctx context.Context, userID string, itemID primitive.ObjectID, patch domain.CartItemPatch) (service.CartSummary, error)
	RemoveItem(ctx context.Context, userID string, itemID primitive.ObjectID) (service.CartSummary, error)
	Clear(ctx context.Context, userID string) error
	Wishlist(ctx context.Context, userID string) (*domain.Wishlist, error)
	AddToWishlist(ctx context.Context, userID, productID string) (*domain.Wishlist, error)
	RemoveFromWishlist(ctx context.Context, userID, productID string) (*domain.Wishlist, error)
}

type CartHandler struct {
	carts  CartService
	logger *zap.Logger
}

func NewCartHandler(carts CartService, logger *zap.Logger) *CartHandler {
	return &CartHandler{carts: carts, logger: logger}
}

type cartItemRequest struct {
	ProductID domain.ProductRef `json:"productId" binding:"required"`
	Name      string            `json:"name"`
	Image     string            `json:"image"`
	Price     float64           `json:"price" binding:"gte=0"`
	Size      string            `json:"size"`
	Color     string            `json:"color"`
	Quantity  int               `json:"quantity"`
}

func (h *CartHandler) GetCart(c *gin.Context) {
	cart, err := h.carts.Cart(c.Request.Context(), userID(c))
	if err != nil {
		respondError(c, h.logger, err, "Cart", "fetch cart")
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *CartHandler) AddItem(c *gin.Context) {
	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	cart, err := h.carts.AddItem(c.Request.Context(), userID(c), domain.CartItem{
		ProductID: string(req.ProductID),
		Name:      req.Name,
		Image:     req.Image,
		Price:     req.Price,
		Size:      req.Size,
		Color:     req.Color,
		Quantity:  req.Quantity,
	})
	if err != nil {
		respondError(c, h.logger, err, "Cart item", "add to cart")
		return
	}
	c.JSON(http.StatusCreated, cart)
}

func (h *CartHandler) UpdateItem(c *gin.Context) {
	id, err := domain.ParseID(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err, "cart item", "update cart")
		return
	}
	var patch domain.CartItemPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err)
		return
	}

	cart, err := h.carts.UpdateItem(c.Request.Context(), userID(c), id, patch)
	if err != nil {
		respondError(c, h.logger, err, "Cart item", "update cart")
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	id, err := domain.ParseID(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err, "cart item", "update cart")
		return
	}
	cart, err := h.carts.RemoveItem(c.Request.Context(), userID(c), id)
	if err != nil {
		respondError(c, h.logger, err, "Cart item", "update cart")
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *CartHandler) ClearCart(c *gin.Context) {
	if err := h.carts.Clear(c.Request.Context(), userID(c)); err != nil {
		respondError(c, h.logger, err, "Cart", "clear cart")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cart cleared"})
}

func (h *CartHandler) GetWishlist(c *gin.Context) {
	w, err := h.carts.Wishlist(c.Request.Context(), userID(c))
	if err != nil {
		respondError(c, h.logger, err, "Wishlist", "fetch wishlist")
		return
	}
	c.JSON(http.StatusOK, w)
}

func (h *CartHandler) AddToWishlist(c *gin.Context) {
	var req struct {
		ProductID domain.ProductRef `json:"productId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	w, err := h.carts.AddToWishlist(c.Request.Context(), userID(c), string(req.ProductID))
	if err != nil {
		respondError(c, h.logger, err, "Wishlist", "update wishlist")
		return
	}
	c.JSON(http.StatusOK, w)
}

func (h *CartHandler) RemoveFromWishlist(c *gin.Context) {
	w, err := h.carts.RemoveFromWishlist(c.Request.Context(), userID(c), c.Param("productId"))
	if err != nil {
		respondError(c, h.logger, err, "Wishlist", "update wishlist")
		return
	}
	c.JSON(http.StatusOK, w)
}
