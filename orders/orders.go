package orders

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"storefront/apperr"
	"storefront/db"
	"storefront/middleware"
	"storefront/models"
	"storefront/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Handler struct {
	store *db.Store
}

func NewHandler(store *db.Store) *Handler {
	return &Handler{store: store}
}

// CreateOrder turns the submitted line items into a priced order. Prices
// come from the request body as a point-in-time snapshot; the live catalog
// is not consulted. The order document, items included, goes in with a
// single insert, and its monetary fields never change afterwards.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		Items []struct {
			ProductID string  `json:"productId"`
			Quantity  int     `json:"quantity"`
			Price     float64 `json:"price"`
		} `json:"items"`
		ShippingAddress struct {
			ID string `json:"id"`
		} `json:"shippingAddress"`
		PaymentMethod string `json:"paymentMethod"`
		CouponCode    string `json:"couponCode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		apperr.Write(w, apperr.New(apperr.Validation, "Invalid order payload"))
		return
	}
	if len(input.Items) == 0 {
		apperr.Write(w, apperr.New(apperr.Validation, "Order must contain at least one item"))
		return
	}

	lines := make([]Line, 0, len(input.Items))
	items := make([]models.OrderItem, 0, len(input.Items))
	for _, it := range input.Items {
		lines = append(lines, Line{Price: it.Price, Quantity: it.Quantity})
		items = append(items, models.OrderItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
			Total:     LineTotal(it.Price, it.Quantity),
		})
	}

	totals := CalculateTotals(lines, DefaultTaxRate, DefaultShipping)
	now := time.Now()

	order := models.Order{
		OrderID:       utils.NewID(),
		OrderNumber:   GenerateOrderNumber(),
		UserID:        middleware.UserID(r),
		Items:         items,
		Subtotal:      totals.Subtotal,
		Tax:           totals.Tax,
		Shipping:      totals.Shipping,
		Total:         totals.Total,
		Status:        models.OrderPending,
		PaymentStatus: models.PaymentPending,
		PaymentMethod: input.PaymentMethod,
		CouponCode:    input.CouponCode,
		AddressID:     input.ShippingAddress.ID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if _, err := h.store.Orders.InsertOne(ctx, order); err != nil {
		if db.IsDup(err) {
			apperr.Write(w, apperr.New(apperr.Conflict, "Order number collision, retry"))
			return
		}
		apperr.Write(w, apperr.Wrap(apperr.Internal, "order insert failed", err))
		return
	}

	utils.Success(w, http.StatusCreated, order)
}

// GetOrders lists every order, newest first. Admin only (enforced at the
// route).
func (h *Handler) GetOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := h.store.Orders.Find(ctx, bson.M{},
		options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		apperr.Write(w, apperr.Wrap(apperr.Internal, "order list failed", err))
		return
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		apperr.Write(w, apperr.Wrap(apperr.Internal, "order decode failed", err))
		return
	}

	utils.Success(w, http.StatusOK, orders)
}

// GetOrder returns one order. Customers see only their own; admins any.
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var order models.Order
	if err := h.store.Orders.FindOne(ctx, bson.M{"orderId": ps.ByName("id")}).Decode(&order); err != nil {
		apperr.Write(w, apperr.New(apperr.NotFound, "Order not found"))
		return
	}

	if order.UserID != middleware.UserID(r) && middleware.UserRole(r) != models.RoleAdmin {
		apperr.Write(w, apperr.New(apperr.Forbidden, "Forbidden"))
		return
	}

	utils.Success(w, http.StatusOK, order)
}

// GetMyOrders lists the caller's own orders, newest first.
func (h *Handler) GetMyOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := h.store.Orders.Find(ctx,
		bson.M{"userId": middleware.UserID(r)},
		options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		apperr.Write(w, apperr.Wrap(apperr.Internal, "order list failed", err))
		return
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		apperr.Write(w, apperr.Wrap(apperr.Internal, "order decode failed", err))
		return
	}

	utils.Success(w, http.StatusOK, orders)
}
