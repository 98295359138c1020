package models

import "time"

// OrderItem is a point-in-time snapshot: Price and Quantity are captured at
// order creation and never recomputed from the live catalog.
type OrderItem struct {
	ProductID string  `json:"productId" bson:"productId"`
	Quantity  int     `json:"quantity" bson:"quantity"`
	Price     float64 `json:"price" bson:"price"`
	Total     float64 `json:"total" bson:"total"`
}

// Order is created once at checkout. The monetary fields are immutable
// thereafter; only Status and PaymentStatus change.
type Order struct {
	OrderID               string        `json:"orderId" bson:"orderId"`
	OrderNumber           string        `json:"orderNumber" bson:"orderNumber"`
	UserID                string        `json:"userId" bson:"userId"`
	Items                 []OrderItem   `json:"items" bson:"items"`
	Subtotal              float64       `json:"subtotal" bson:"subtotal"`
	Tax                   float64       `json:"tax" bson:"tax"`
	Shipping              float64       `json:"shipping" bson:"shipping"`
	Total                 float64       `json:"total" bson:"total"`
	Status                OrderStatus   `json:"status" bson:"status"`
	PaymentStatus         PaymentStatus `json:"paymentStatus" bson:"paymentStatus"`
	PaymentMethod         string        `json:"paymentMethod,omitempty" bson:"paymentMethod,omitempty"`
	CouponCode            string        `json:"couponCode,omitempty" bson:"couponCode,omitempty"`
	StripePaymentIntentID string        `json:"stripePaymentIntentId,omitempty" bson:"stripePaymentIntentId,omitempty"`
	AddressID             string        `json:"addressId,omitempty" bson:"addressId,omitempty"`
	CreatedAt             time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt             time.Time     `json:"updatedAt" bson:"updatedAt"`
}
