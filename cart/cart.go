package cart

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
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Handler struct {
	store *db.Store
}

func NewHandler(store *db.Store) *Handler {
	return &Handler{store: store}
}

// upsertSpec is the filter/update pair for an add: one row per
// (user, product), quantity incremented on repeat adds.
func upsertSpec(userID, productID string, qty int, now time.Time) (bson.M, bson.M) {
	filter := bson.M{"userId": userID, "productId": productID}
	update := bson.M{
		"$inc":         bson.M{"quantity": qty},
		"$setOnInsert": bson.M{"addedAt": now},
	}
	return filter, update
}

// GetCart returns the caller's items plus a running total computed from the
// current catalog prices.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := middleware.UserID(r)

	cursor, err := h.store.CartItems.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		apperr.Write(w, apperr.Wrap(apperr.Internal, "cart lookup failed", err))
		return
	}
	defer cursor.Close(ctx)

	items := []models.CartItem{}
	if err := cursor.All(ctx, &items); err != nil {
		apperr.Write(w, apperr.Wrap(apperr.Internal, "cart decode failed", err))
		return
	}

	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}

	prices := map[string]float64{}
	if len(ids) > 0 {
		pc, err := h.store.Products.Find(ctx, bson.M{"productId": bson.M{"$in": ids}})
		if err == nil {
			defer pc.Close(ctx)
			var prods []models.Product
			if err := pc.All(ctx, &prods); err == nil {
				for _, p := range prods {
					prices[p.ProductID] = p.Price
				}
			}
		}
	}

	total := decimal.Zero
	for _, it := range items {
		total = total.Add(decimal.NewFromFloat(prices[it.ProductID]).
			Mul(decimal.NewFromInt(int64(it.Quantity))))
	}

	utils.Success(w, http.StatusOK, utils.M{
		"items": items,
		"total": total.RoundBank(2).InexactFloat64(),
	})
}

// AddToCart increments quantity if the item exists, or inserts a new row.
func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		apperr.Write(w, apperr.New(apperr.Validation, "Invalid input"))
		return
	}
	if input.ProductID == "" || input.Quantity <= 0 {
		apperr.Write(w, apperr.New(apperr.Validation, "Product and a positive quantity are required"))
		return
	}

	userID := middleware.UserID(r)

	if err := h.store.Products.FindOne(ctx, bson.M{"productId": input.ProductID}).Err(); err != nil {
		apperr.Write(w, apperr.New(apperr.NotFound, "Product not found"))
		return
	}

	filter, update := upsertSpec(userID, input.ProductID, input.Quantity, time.Now())
	var item models.CartItem
	err := h.store.CartItems.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&item)
	if err != nil {
		apperr.Write(w, apperr.Wrap(apperr.Internal, "cart update failed", err))
		return
	}

	utils.Success(w, http.StatusCreated, item)
}

func (h *Handler) UpdateCartItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Quantity <= 0 {
		apperr.Write(w, apperr.New(apperr.Validation, "A positive quantity is required"))
		return
	}

	var item models.CartItem
	err := h.store.CartItems.FindOneAndUpdate(ctx,
		bson.M{"userId": middleware.UserID(r), "productId": ps.ByName("productId")},
		bson.M{"$set": bson.M{"quantity": input.Quantity}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&item)
	if err != nil {
		apperr.Write(w, apperr.New(apperr.NotFound, "Cart item not found"))
		return
	}

	utils.Success(w, http.StatusOK, item)
}

func (h *Handler) RemoveFromCart(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	res, err := h.store.CartItems.DeleteOne(ctx, bson.M{
		"userId":    middleware.UserID(r),
		"productId": ps.ByName("productId"),
	})
	if err != nil {
		apperr.Write(w, apperr.Wrap(apperr.Internal, "cart delete failed", err))
		return
	}
	if res.DeletedCount == 0 {
		apperr.Write(w, apperr.New(apperr.NotFound, "Cart item not found"))
		return
	}

	utils.SuccessMessage(w, http.StatusOK, "Item removed from cart")
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if _, err := h.store.CartItems.DeleteMany(ctx, bson.M{"userId": middleware.UserID(r)}); err != nil {
		apperr.Write(w, apperr.Wrap(apperr.Internal, "cart clear failed", err))
		return
	}

	utils.SuccessMessage(w, http.StatusOK, "Cart cleared")
}
