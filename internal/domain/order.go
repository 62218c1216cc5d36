package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GuestUserID identifies carts, wishlists and orders of anonymous shoppers.
const GuestUserID = "guest"

const DefaultCurrency = "INR"

type PaymentMethod string

const (
	PaymentOnline PaymentMethod = "online"
	PaymentCOD    PaymentMethod = "cod"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentOnline || m == PaymentCOD
}

// InitialStatus is the status an order is stored with when it is placed.
func (m PaymentMethod) InitialStatus() OrderStatus {
	if m == PaymentCOD {
		return StatusPending
	}
	return StatusCreated
}

type OrderItem struct {
	ProductID string  `bson:"productId" json:"productId"`
	Name      string  `bson:"name" json:"name"`
	Price     float64 `bson:"price" json:"price"`
	Quantity  int     `bson:"quantity" json:"quantity"`
	Image     string  `bson:"image,omitempty" json:"image,omitempty"`
}

type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID        string             `bson:"userId" json:"userId"`
	Amount        float64            `bson:"amount" json:"amount"`
	Currency      string             `bson:"currency" json:"currency"`
	Status        OrderStatus        `bson:"status" json:"status"`
	PaymentMethod PaymentMethod      `bson:"paymentMethod" json:"paymentMethod"`

	FullName     string `bson:"fullName" json:"fullName"`
	Email        string `bson:"email" json:"email"`
	Phone        string `bson:"phone" json:"phone"`
	AddressLine1 string `bson:"addressLine1" json:"addressLine1"`
	AddressLine2 string `bson:"addressLine2,omitempty" json:"addressLine2,omitempty"`
	City         string `bson:"city" json:"city"`
	State        string `bson:"state" json:"state"`
	Pincode      string `bson:"pincode" json:"pincode"`

	Items []OrderItem `bson:"items" json:"items"`

	RazorpayOrderID  string `bson:"razorpayOrderId,omitempty" json:"razorpayOrderId,omitempty"`
	PaymentID        string `bson:"paymentId,omitempty" json:"paymentId,omitempty"`
	PaymentSignature string `bson:"paymentSignature,omitempty" json:"paymentSignature,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// StatusChange is the set of fields written together with a status transition.
type StatusChange struct {
	Status           OrderStatus
	PaymentID        string
	PaymentSignature string
	At               time.Time
}

type OrderFilter struct {
	UserID string
	Status OrderStatus
}
