package payments

import (
	"context"
	"log"

	"storefront/models"
)

// OrderStore is the slice of persistence the webhook reconciler needs.
type OrderStore interface {
	OrderByIntent(ctx context.Context, intentID string) (*models.Order, error)
	SetPaymentOutcome(ctx context.Context, orderID string, payment models.PaymentStatus, fulfillment models.OrderStatus) error
	ClearCart(ctx context.Context, userID string) error
}

// ApplySucceeded records a successful charge: payment PAID, order
// CONFIRMED, and the owner's cart cleared. An intent that matches no
// order is ignored, and an order already PAID is left untouched so a
// redelivered event has no further effect.
func ApplySucceeded(ctx context.Context, store OrderStore, intentID string) error {
	order, err := store.OrderByIntent(ctx, intentID)
	if err != nil {
		return err
	}
	if order == nil {
		log.Printf("webhook: no order for intent %s", intentID)
		return nil
	}
	if order.PaymentStatus == models.PaymentPaid {
		return nil
	}
	if err := store.SetPaymentOutcome(ctx, order.OrderID, models.PaymentPaid, models.OrderConfirmed); err != nil {
		return err
	}
	return store.ClearCart(ctx, order.UserID)
}

// ApplyFailed marks the payment FAILED and leaves fulfillment alone.
func ApplyFailed(ctx context.Context, store OrderStore, intentID string) error {
	order, err := store.OrderByIntent(ctx, intentID)
	if err != nil {
		return err
	}
	if order == nil {
		log.Printf("webhook: no order for intent %s", intentID)
		return nil
	}
	if order.PaymentStatus != models.PaymentPending {
		return nil
	}
	return store.SetPaymentOutcome(ctx, order.OrderID, models.PaymentFailed, order.Status)
}
