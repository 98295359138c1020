package payments

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront/middleware"
	"storefront/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	intent *Intent
}

func (g *fakeGateway) CreateIntent(_ context.Context, _ float64, _ string, _ map[string]string) (*Intent, error) {
	return g.intent, nil
}

func (g *fakeGateway) GetIntent(_ context.Context, id string) (*Intent, error) {
	return g.intent, nil
}

func confirmRequest(userID string, role models.Role) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/api/payments/confirm-payment",
		strings.NewReader(`{"paymentIntentId":"pi_1"}`))
	return r.WithContext(middleware.WithUser(r.Context(), userID, role))
}

func TestConfirmPaymentAppliesOutcomeForOwner(t *testing.T) {
	store := &fakeOrderStore{order: pendingOrder()}
	h := &Handler{
		gateway: &fakeGateway{intent: &Intent{ID: "pi_1", Status: "succeeded"}},
		orders:  store,
	}

	rec := httptest.NewRecorder()
	h.ConfirmPayment(rec, confirmRequest("usr_1", models.RoleCustomer), nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.PaymentPaid, store.order.PaymentStatus)
	assert.Equal(t, models.OrderConfirmed, store.order.Status)
	assert.Equal(t, 1, store.cartClears)

	var body struct {
		Data struct {
			Status string       `json:"status"`
			Order  models.Order `json:"order"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "succeeded", body.Data.Status)
	assert.Equal(t, models.PaymentPaid, body.Data.Order.PaymentStatus)
}

func TestConfirmPaymentForbiddenForOtherUser(t *testing.T) {
	store := &fakeOrderStore{order: pendingOrder()}
	h := &Handler{
		gateway: &fakeGateway{intent: &Intent{ID: "pi_1", Status: "succeeded"}},
		orders:  store,
	}

	rec := httptest.NewRecorder()
	h.ConfirmPayment(rec, confirmRequest("usr_2", models.RoleCustomer), nil)

	// The order must be left untouched: no paid transition, no cart clear.
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, models.PaymentPending, store.order.PaymentStatus)
	assert.Equal(t, models.OrderPending, store.order.Status)
	assert.Zero(t, store.cartClears)
}

func TestConfirmPaymentAdminBypassesOwnership(t *testing.T) {
	store := &fakeOrderStore{order: pendingOrder()}
	h := &Handler{
		gateway: &fakeGateway{intent: &Intent{ID: "pi_1", Status: "succeeded"}},
		orders:  store,
	}

	rec := httptest.NewRecorder()
	h.ConfirmPayment(rec, confirmRequest("usr_admin", models.RoleAdmin), nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.PaymentPaid, store.order.PaymentStatus)
}

func TestConfirmPaymentUnknownIntent(t *testing.T) {
	store := &fakeOrderStore{order: pendingOrder()}
	h := &Handler{
		gateway: &fakeGateway{intent: &Intent{ID: "pi_other", Status: "succeeded"}},
		orders:  store,
	}

	r := httptest.NewRequest(http.MethodPost, "/api/payments/confirm-payment",
		strings.NewReader(`{"paymentIntentId":"pi_other"}`))
	r = r.WithContext(middleware.WithUser(r.Context(), "usr_1", models.RoleCustomer))

	rec := httptest.NewRecorder()
	h.ConfirmPayment(rec, r, nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, models.PaymentPending, store.order.PaymentStatus)
}
