package reviews

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

// GetProductReviews lists approved reviews, newest first.
func (h *Handler) GetProductReviews(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := h.store.Reviews.Find(ctx,
		bson.M{"productId": ps.ByName("id"), "isApproved": true},
		options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		apperr.Write(w, apperr.Wrap(apperr.Internal, "review list failed", err))
		return
	}
	defer cursor.Close(ctx)

	revs := []models.Review{}
	if err := cursor.All(ctx, &revs); err != nil {
		apperr.Write(w, apperr.Wrap(apperr.Internal, "review decode failed", err))
		return
	}

	utils.Success(w, http.StatusOK, revs)
}

// CreateReview allows one review per (user, product); it starts unapproved.
func (h *Handler) CreateReview(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		ProductID string `json:"productId"`
		Rating    int    `json:"rating"`
		Title     string `json:"title"`
		Comment   string `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		apperr.Write(w, apperr.New(apperr.Validation, "Invalid input"))
		return
	}
	if input.ProductID == "" || input.Rating < 1 || input.Rating > 5 {
		apperr.Write(w, apperr.New(apperr.Validation, "Product and a rating from 1 to 5 are required"))
		return
	}

	review := models.Review{
		ReviewID:   utils.NewID(),
		UserID:     middleware.UserID(r),
		ProductID:  input.ProductID,
		Rating:     input.Rating,
		Title:      input.Title,
		Comment:    input.Comment,
		IsApproved: false,
		CreatedAt:  time.Now(),
	}

	if _, err := h.store.Reviews.InsertOne(ctx, review); err != nil {
		if db.IsDup(err) {
			apperr.Write(w, apperr.New(apperr.Conflict, "You have already reviewed this product"))
			return
		}
		apperr.Write(w, apperr.Wrap(apperr.Internal, "review insert failed", err))
		return
	}

	utils.Success(w, http.StatusCreated, review)
}

func (h *Handler) ApproveReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var review models.Review
	err := h.store.Reviews.FindOneAndUpdate(ctx,
		bson.M{"reviewId": ps.ByName("id")},
		bson.M{"$set": bson.M{"isApproved": true}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&review)
	if err != nil {
		apperr.Write(w, apperr.New(apperr.NotFound, "Review not found"))
		return
	}

	utils.Success(w, http.StatusOK, review)
}

// DeleteReview removes a review; owners delete their own, admins any.
func (h *Handler) DeleteReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var review models.Review
	if err := h.store.Reviews.FindOne(ctx, bson.M{"reviewId": ps.ByName("id")}).Decode(&review); err != nil {
		apperr.Write(w, apperr.New(apperr.NotFound, "Review not found"))
		return
	}

	if review.UserID != middleware.UserID(r) && middleware.UserRole(r) != models.RoleAdmin {
		apperr.Write(w, apperr.New(apperr.Forbidden, "Forbidden"))
		return
	}

	if _, err := h.store.Reviews.DeleteOne(ctx, bson.M{"reviewId": review.ReviewID}); err != nil {
		apperr.Write(w, apperr.Wrap(apperr.Internal, "review delete failed", err))
		return
	}

	utils.SuccessMessage(w, http.StatusOK, "Review deleted successfully")
}
