package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"storefront/apperr"
	"storefront/db"
	"storefront/models"
	"storefront/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Handler struct {
	store             *db.Store
	strictTransitions bool
}

func NewHandler(store *db.Store, strictTransitions bool) *Handler {
	return &Handler{store: store, strictTransitions: strictTransitions}
}

// Dashboard aggregates the storefront's headline numbers: counts,
// revenue over paid orders, the latest orders, best sellers, and a
// 30-day sales series.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	totalOrders, err := h.store.Orders.CountDocuments(ctx, bson.M{})
	if err != nil {
		apperr.Write(w, apperr.Wrap(apperr.Internal, "dashboard query failed", err))
		return
	}
	totalProducts, err := h.store.Products.CountDocuments(ctx, bson.M{"isActive": true})
	if err != nil {
		apperr.Write(w, apperr.Wrap(apperr.Internal, "dashboard query failed", err))
		return
	}
	totalCustomers, err := h.store.Users.CountDocuments(ctx, bson.M{"role": models.RoleCustomer})
	if err != nil {
		apperr.Write(w, apperr.Wrap(apperr.Internal, "dashboard query failed", err))
		return
	}

	revenue, err := h.totalRevenue(ctx)
	if err != nil {
		apperr.Write(w, apperr.Wrap(apperr.Internal, "revenue aggregation failed", err))
		return
	}

	recent, err := h.recentOrders(ctx, 10)
	if err != nil {
		apperr.Write(w, apperr.Wrap(apperr.Internal, "recent orders query failed", err))
		return
	}

	topProducts, err := h.topProducts(ctx, 10)
	if err != nil {
		apperr.Write(w, apperr.Wrap(apperr.Internal, "top products aggregation failed", err))
		return
	}

	salesChart, err := h.salesByDay(ctx, 30)
	if err != nil {
		apperr.Write(w, apperr.Wrap(apperr.Internal, "sales chart aggregation failed", err))
		return
	}

	utils.Success(w, http.StatusOK, utils.M{
		"stats": utils.M{
			"totalOrders":    totalOrders,
			"totalProducts":  totalProducts,
			"totalCustomers": totalCustomers,
			"totalRevenue":   revenue,
		},
		"recentOrders": recent,
		"topProducts":  topProducts,
		"salesChart":   salesChart,
	})
}

func (h *Handler) totalRevenue(ctx context.Context) (float64, error) {
	cursor, err := h.store.Orders.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"paymentStatus": models.PaymentPaid}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$total"}}}},
	})
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}

func (h *Handler) recentOrders(ctx context.Context, limit int64) ([]models.Order, error) {
	cursor, err := h.store.Orders.Find(ctx, bson.M{},
		options.Find().SetSort(bson.M{"createdAt": -1}).SetLimit(limit))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// TopProduct is a best-seller row: units summed across all order items.
type TopProduct struct {
	ProductID string  `bson:"_id" json:"productId"`
	UnitsSold int     `bson:"unitsSold" json:"unitsSold"`
	Revenue   float64 `bson:"revenue" json:"revenue"`
}

func (h *Handler) topProducts(ctx context.Context, limit int) ([]TopProduct, error) {
	cursor, err := h.store.Orders.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$unwind", Value: "$items"}},
		{{Key: "$group", Value: bson.M{
			"_id":       "$items.productId",
			"unitsSold": bson.M{"$sum": "$items.quantity"},
			"revenue":   bson.M{"$sum": "$items.total"},
		}}},
		{{Key: "$sort", Value: bson.M{"unitsSold": -1}}},
		{{Key: "$limit", Value: limit}},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	rows := []TopProduct{}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// SalesPoint is one day of the sales chart.
type SalesPoint struct {
	Date   string  `bson:"_id" json:"date"`
	Orders int     `bson:"orders" json:"orders"`
	Sales  float64 `bson:"sales" json:"sales"`
}

func (h *Handler) salesByDay(ctx context.Context, days int) ([]SalesPoint, error) {
	since := time.Now().AddDate(0, 0, -days)
	cursor, err := h.store.Orders.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"createdAt": bson.M{"$gte": since}}}},
		{{Key: "$group", Value: bson.M{
			"_id":    bson.M{"$dateToString": bson.M{"format": "%Y-%m-%d", "date": "$createdAt"}},
			"orders": bson.M{"$sum": 1},
			"sales":  bson.M{"$sum": "$total"},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	rows := []SalesPoint{}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// GetOrders lists orders with an optional status filter and pagination.
func (h *Handler) GetOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	opts := utils.ParseQueryOptions(r)
	filter := bson.M{}
	if opts.Status != "" {
		filter["status"] = opts.Status
	}

	total, err := h.store.Orders.CountDocuments(ctx, filter)
	if err != nil {
		apperr.Write(w, apperr.Wrap(apperr.Internal, "order count failed", err))
		return
	}

	cursor, err := h.store.Orders.Find(ctx, filter, options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetSkip(opts.Skip()).
		SetLimit(int64(opts.Limit)))
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

	utils.SuccessPage(w, http.StatusOK, orders, utils.NewPagination(total, opts.Page, opts.Limit))
}

// UpdateOrderStatus sets an order's fulfillment status by hand. With
// strict transitions enabled the change must follow the normal
// progression; otherwise any valid status value is accepted as-is.
func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || !input.Status.Valid() {
		apperr.Write(w, apperr.New(apperr.Validation, "Invalid order status"))
		return
	}

	var order models.Order
	if err := h.store.Orders.FindOne(ctx, bson.M{"orderId": ps.ByName("id")}).Decode(&order); err != nil {
		apperr.Write(w, apperr.New(apperr.NotFound, "Order not found"))
		return
	}

	if h.strictTransitions && !order.Status.CanTransition(input.Status) {
		apperr.Write(w, apperr.WithDetails(apperr.Validation, "Invalid status transition",
			utils.M{"from": order.Status, "to": input.Status}))
		return
	}

	res := h.store.Orders.FindOneAndUpdate(ctx,
		bson.M{"orderId": order.OrderID},
		bson.M{"$set": bson.M{"status": input.Status, "updatedAt": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After))
	if err := res.Decode(&order); err != nil {
		apperr.Write(w, apperr.Wrap(apperr.Internal, "order update failed", err))
		return
	}

	utils.Success(w, http.StatusOK, order)
}

// GetProducts lists products for the dashboard, inactive ones included.
func (h *Handler) GetProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	opts := utils.ParseQueryOptions(r)
	filter := bson.M{}
	if opts.Search != "" {
		regex := bson.M{"$regex": opts.Search, "$options": "i"}
		filter["$or"] = []bson.M{{"name": regex}, {"sku": regex}}
	}

	total, err := h.store.Products.CountDocuments(ctx, filter)
	if err != nil {
		apperr.Write(w, apperr.Wrap(apperr.Internal, "product count failed", err))
		return
	}

	cursor, err := h.store.Products.Find(ctx, filter, options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetSkip(opts.Skip()).
		SetLimit(int64(opts.Limit)))
	if err != nil {
		apperr.Write(w, apperr.Wrap(apperr.Internal, "product list failed", err))
		return
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		apperr.Write(w, apperr.Wrap(apperr.Internal, "product decode failed", err))
		return
	}

	utils.SuccessPage(w, http.StatusOK, products, utils.NewPagination(total, opts.Page, opts.Limit))
}

// GetUsers lists accounts with optional search over name and email.
func (h *Handler) GetUsers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	opts := utils.ParseQueryOptions(r)
	filter := bson.M{}
	if opts.Search != "" {
		regex := bson.M{"$regex": opts.Search, "$options": "i"}
		filter["$or"] = []bson.M{{"email": regex}, {"firstName": regex}, {"lastName": regex}}
	}

	total, err := h.store.Users.CountDocuments(ctx, filter)
	if err != nil {
		apperr.Write(w, apperr.Wrap(apperr.Internal, "user count failed", err))
		return
	}

	cursor, err := h.store.Users.Find(ctx, filter, options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetSkip(opts.Skip()).
		SetLimit(int64(opts.Limit)))
	if err != nil {
		apperr.Write(w, apperr.Wrap(apperr.Internal, "user list failed", err))
		return
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		apperr.Write(w, apperr.Wrap(apperr.Internal, "user decode failed", err))
		return
	}

	utils.SuccessPage(w, http.StatusOK, users, utils.NewPagination(total, opts.Page, opts.Limit))
}

// ToggleUserStatus flips an account between active and deactivated.
func (h *Handler) ToggleUserStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var user models.User
	if err := h.store.Users.FindOne(ctx, bson.M{"userId": ps.ByName("id")}).Decode(&user); err != nil {
		apperr.Write(w, apperr.New(apperr.NotFound, "User not found"))
		return
	}

	res := h.store.Users.FindOneAndUpdate(ctx,
		bson.M{"userId": user.UserID},
		bson.M{"$set": bson.M{"isActive": !user.IsActive, "updatedAt": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After))
	if err := res.Decode(&user); err != nil {
		apperr.Write(w, apperr.Wrap(apperr.Internal, "user update failed", err))
		return
	}

	utils.Success(w, http.StatusOK, user)
}
