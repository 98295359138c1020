package payments

import (
	"context"
	"testing"

	"storefront/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeOrderStore holds a single order in memory and counts cart clears.
type fakeOrderStore struct {
	order      *models.Order
	cartClears int
}

func (f *fakeOrderStore) OrderByIntent(_ context.Context, intentID string) (*models.Order, error) {
	if f.order != nil && f.order.StripePaymentIntentID == intentID {
		o := *f.order
		return &o, nil
	}
	return nil, nil
}

func (f *fakeOrderStore) SetPaymentOutcome(_ context.Context, orderID string, payment models.PaymentStatus, fulfillment models.OrderStatus) error {
	if f.order != nil && f.order.OrderID == orderID {
		f.order.PaymentStatus = payment
		f.order.Status = fulfillment
	}
	return nil
}

func (f *fakeOrderStore) ClearCart(_ context.Context, _ string) error {
	f.cartClears++
	return nil
}

func pendingOrder() *models.Order {
	return &models.Order{
		OrderID:               "ord_1",
		UserID:                "usr_1",
		StripePaymentIntentID: "pi_1",
		Status:                models.OrderPending,
		PaymentStatus:         models.PaymentPending,
	}
}

func TestApplySucceeded(t *testing.T) {
	store := &fakeOrderStore{order: pendingOrder()}

	require.NoError(t, ApplySucceeded(context.Background(), store, "pi_1"))

	assert.Equal(t, models.PaymentPaid, store.order.PaymentStatus)
	assert.Equal(t, models.OrderConfirmed, store.order.Status)
	assert.Equal(t, 1, store.cartClears)
}

func TestApplySucceededRedelivered(t *testing.T) {
	store := &fakeOrderStore{order: pendingOrder()}

	require.NoError(t, ApplySucceeded(context.Background(), store, "pi_1"))
	require.NoError(t, ApplySucceeded(context.Background(), store, "pi_1"))

	// The second delivery must not clear the cart again.
	assert.Equal(t, 1, store.cartClears)
	assert.Equal(t, models.PaymentPaid, store.order.PaymentStatus)
}

func TestApplySucceededUnknownIntent(t *testing.T) {
	store := &fakeOrderStore{order: pendingOrder()}

	require.NoError(t, ApplySucceeded(context.Background(), store, "pi_unknown"))

	assert.Equal(t, models.PaymentPending, store.order.PaymentStatus)
	assert.Zero(t, store.cartClears)
}

func TestApplyFailed(t *testing.T) {
	store := &fakeOrderStore{order: pendingOrder()}

	require.NoError(t, ApplyFailed(context.Background(), store, "pi_1"))

	assert.Equal(t, models.PaymentFailed, store.order.PaymentStatus)
	// Fulfillment stays where it was.
	assert.Equal(t, models.OrderPending, store.order.Status)
	assert.Zero(t, store.cartClears)
}

func TestApplyFailedAfterPaid(t *testing.T) {
	store := &fakeOrderStore{order: pendingOrder()}
	store.order.PaymentStatus = models.PaymentPaid

	require.NoError(t, ApplyFailed(context.Background(), store, "pi_1"))

	// A stale failure event cannot downgrade a paid order.
	assert.Equal(t, models.PaymentPaid, store.order.PaymentStatus)
}

func TestApplyFailedUnknownIntent(t *testing.T) {
	store := &fakeOrderStore{order: pendingOrder()}

	require.NoError(t, ApplyFailed(context.Background(), store, "pi_unknown"))

	assert.Equal(t, models.PaymentPending, store.order.PaymentStatus)
}
