package payments

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"storefront/apperr"
	"storefront/db"
	"storefront/middleware"
	"storefront/models"
	"storefront/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// maxWebhookBody caps how much of a webhook payload is read before
// signature verification.
const maxWebhookBody = 1 << 16

type Handler struct {
	store         *db.Store
	gateway       Gateway
	orders        OrderStore
	webhookSecret string
}

func NewHandler(store *db.Store, gateway Gateway, webhookSecret string) *Handler {
	return &Handler{
		store:         store,
		gateway:       gateway,
		orders:        NewMongoOrderStore(store),
		webhookSecret: webhookSecret,
	}
}

// CreateIntent opens a payment intent at the provider for an existing
// order and records the intent id on the order document.
func (h *Handler) CreateIntent(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		OrderID string `json:"orderId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.OrderID == "" {
		apperr.Write(w, apperr.New(apperr.Validation, "Order ID is required"))
		return
	}

	var order models.Order
	if err := h.store.Orders.FindOne(ctx, bson.M{"orderId": input.OrderID}).Decode(&order); err != nil {
		apperr.Write(w, apperr.New(apperr.NotFound, "Order not found"))
		return
	}
	if order.UserID != middleware.UserID(r) && middleware.UserRole(r) != models.RoleAdmin {
		apperr.Write(w, apperr.New(apperr.Forbidden, "Forbidden"))
		return
	}
	if order.PaymentStatus != models.PaymentPending {
		apperr.Write(w, apperr.New(apperr.Conflict, "Order is not awaiting payment"))
		return
	}

	intent, err := h.gateway.CreateIntent(ctx, order.Total, "usd", map[string]string{
		"userId":      order.UserID,
		"orderId":     order.OrderID,
		"orderNumber": order.OrderNumber,
	})
	if err != nil {
		apperr.Write(w, err)
		return
	}

	_, err = h.store.Orders.UpdateOne(ctx,
		bson.M{"orderId": order.OrderID},
		bson.M{"$set": bson.M{"stripePaymentIntentId": intent.ID, "updatedAt": time.Now()}})
	if err != nil {
		apperr.Write(w, apperr.Wrap(apperr.Internal, "order update failed", err))
		return
	}

	utils.Success(w, http.StatusOK, utils.M{
		"clientSecret":    intent.ClientSecret,
		"paymentIntentId": intent.ID,
	})
}

// ConfirmPayment re-checks an intent's status at the provider and applies
// the outcome. The webhook normally gets there first; this path covers
// clients polling after a redirect.
func (h *Handler) ConfirmPayment(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		PaymentIntentID string `json:"paymentIntentId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.PaymentIntentID == "" {
		apperr.Write(w, apperr.New(apperr.Validation, "Payment intent ID is required"))
		return
	}

	intent, err := h.gateway.GetIntent(ctx, input.PaymentIntentID)
	if err != nil {
		apperr.Write(w, err)
		return
	}

	// Ownership is checked before any state is applied; a caller who knows
	// someone else's intent id cannot force the outcome through.
	order, err := h.orders.OrderByIntent(ctx, intent.ID)
	if err != nil || order == nil {
		apperr.Write(w, apperr.New(apperr.NotFound, "Order not found"))
		return
	}
	if order.UserID != middleware.UserID(r) && middleware.UserRole(r) != models.RoleAdmin {
		apperr.Write(w, apperr.New(apperr.Forbidden, "Forbidden"))
		return
	}

	switch intent.Status {
	case "succeeded":
		err = ApplySucceeded(ctx, h.orders, intent.ID)
	case "canceled", "requires_payment_method":
		err = ApplyFailed(ctx, h.orders, intent.ID)
	}
	if err != nil {
		apperr.Write(w, apperr.Wrap(apperr.Internal, "payment confirmation failed", err))
		return
	}

	order, err = h.orders.OrderByIntent(ctx, intent.ID)
	if err != nil || order == nil {
		apperr.Write(w, apperr.New(apperr.NotFound, "Order not found"))
		return
	}

	utils.Success(w, http.StatusOK, utils.M{
		"status": intent.Status,
		"order":  order,
	})
}

// Webhook handles asynchronous provider events. The signature must
// verify, but an event referencing an unknown intent is acknowledged
// without effect so the provider stops redelivering it.
func (h *Handler) Webhook(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		apperr.Write(w, apperr.New(apperr.Validation, "Unreadable payload"))
		return
	}

	if err := VerifySignature(payload, r.Header.Get("Stripe-Signature"), h.webhookSecret, DefaultTolerance, time.Now()); err != nil {
		apperr.Write(w, apperr.Wrap(apperr.Validation, "Webhook signature verification failed", err))
		return
	}

	var event struct {
		Type string `json:"type"`
		Data struct {
			Object struct {
				ID string `json:"id"`
			} `json:"object"`
		} `json:"data"`
	}
	if err := json.Unmarshal(payload, &event); err != nil {
		apperr.Write(w, apperr.New(apperr.Validation, "Malformed event"))
		return
	}

	switch event.Type {
	case "payment_intent.succeeded":
		err = ApplySucceeded(ctx, h.orders, event.Data.Object.ID)
	case "payment_intent.payment_failed":
		err = ApplyFailed(ctx, h.orders, event.Data.Object.ID)
	default:
		// Unsubscribed event types are acknowledged and dropped.
	}
	if err != nil {
		apperr.Write(w, apperr.Wrap(apperr.Internal, "webhook processing failed", err))
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"received": true})
}

// PaymentMethods lists the checkout options the storefront accepts.
func (h *Handler) PaymentMethods(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	utils.Success(w, http.StatusOK, []utils.M{
		{"id": "card", "name": "Credit / Debit Card", "enabled": true},
		{"id": "cod", "name": "Cash on Delivery", "enabled": true},
	})
}
