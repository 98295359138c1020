package wishlist

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
)

type Handler struct {
	store *db.Store
}

func NewHandler(store *db.Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) GetWishlist(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := h.store.Wishlist.Find(ctx, bson.M{"userId": middleware.UserID(r)})
	if err != nil {
		apperr.Write(w, apperr.Wrap(apperr.Internal, "wishlist lookup failed", err))
		return
	}
	defer cursor.Close(ctx)

	items := []models.WishlistItem{}
	if err := cursor.All(ctx, &items); err != nil {
		apperr.Write(w, apperr.Wrap(apperr.Internal, "wishlist decode failed", err))
		return
	}

	utils.Success(w, http.StatusOK, items)
}

// AddToWishlist inserts one entry per (user, product); the unique index
// turns a repeat add into a conflict.
func (h *Handler) AddToWishlist(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		ProductID string `json:"productId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.ProductID == "" {
		apperr.Write(w, apperr.New(apperr.Validation, "Product is required"))
		return
	}

	if err := h.store.Products.FindOne(ctx, bson.M{"productId": input.ProductID}).Err(); err != nil {
		apperr.Write(w, apperr.New(apperr.NotFound, "Product not found"))
		return
	}

	item := models.WishlistItem{
		UserID:    middleware.UserID(r),
		ProductID: input.ProductID,
		AddedAt:   time.Now(),
	}

	if _, err := h.store.Wishlist.InsertOne(ctx, item); err != nil {
		if db.IsDup(err) {
			apperr.Write(w, apperr.New(apperr.Conflict, "Product is already in wishlist"))
			return
		}
		apperr.Write(w, apperr.Wrap(apperr.Internal, "wishlist insert failed", err))
		return
	}

	utils.Success(w, http.StatusCreated, item)
}

func (h *Handler) RemoveFromWishlist(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	res, err := h.store.Wishlist.DeleteOne(ctx, bson.M{
		"userId":    middleware.UserID(r),
		"productId": ps.ByName("productId"),
	})
	if err != nil {
		apperr.Write(w, apperr.Wrap(apperr.Internal, "wishlist delete failed", err))
		return
	}
	if res.DeletedCount == 0 {
		apperr.Write(w, apperr.New(apperr.NotFound, "Wishlist item not found"))
		return
	}

	utils.SuccessMessage(w, http.StatusOK, "Item removed from wishlist")
}
