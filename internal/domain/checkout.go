package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ProductRef is a product identifier that the storefront may send either as a
// JSON string or as a bare number.
type ProductRef string

func (r *ProductRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*r = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = ProductRef(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("product id must be a string or number: %w", err)
	}
	*r = ProductRef(n.String())
	return nil
}

type CheckoutItem struct {
	ID        ProductRef `json:"id"`
	ProductID ProductRef `json:"productId"`
	Name      string     `json:"name" binding:"required"`
	Price     float64    `json:"price" binding:"gte=0"`
	Quantity  int        `json:"quantity" binding:"gte=0"`
	Image     string     `json:"image"`
}

// ToOrderItem snapshots the item, defaulting the quantity to one.
func (i CheckoutItem) ToOrderItem() OrderItem {
	ref := i.ProductID
	if ref == "" {
		ref = i.ID
	}
	qty := i.Quantity
	if qty == 0 {
		qty = 1
	}
	return OrderItem{
		ProductID: string(ref),
		Name:      i.Name,
		Price:     i.Price,
		Quantity:  qty,
		Image:     i.Image,
	}
}

type CheckoutRequest struct {
	Amount        float64        `json:"amount" binding:"required,gt=0"`
	Currency      string         `json:"currency"`
	FullName      string         `json:"fullName" binding:"required"`
	Email         string         `json:"email" binding:"required,email"`
	Phone         string         `json:"phone" binding:"required"`
	AddressLine1  string         `json:"addressLine1" binding:"required"`
	AddressLine2  string         `json:"addressLine2"`
	City          string         `json:"city" binding:"required"`
	State         string         `json:"state" binding:"required"`
	Pincode       string         `json:"pincode" binding:"required"`
	PaymentMethod PaymentMethod  `json:"paymentMethod" binding:"required,oneof=online cod"`
	Items         []CheckoutItem `json:"items" binding:"required,min=1,dive"`
}

// CurrencyOrDefault returns the upper-cased currency, INR when none was sent.
func (r CheckoutRequest) CurrencyOrDefault() string {
	c := strings.ToUpper(strings.TrimSpace(r.Currency))
	if c == "" {
		return DefaultCurrency
	}
	return c
}

type CheckoutResult struct {
	Order           *Order
	RazorpayOrderID string
	GatewayAmount   int64
}

type VerifyPaymentRequest struct {
	PaymentID string `json:"paymentId" binding:"required"`
	OrderID   string `json:"orderId" binding:"required"`
	Signature string `json:"signature" binding:"required"`
}
