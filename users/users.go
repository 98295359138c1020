package users

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
	"golang.org/x/crypto/bcrypt"
)

type Handler struct {
	store      *db.Store
	bcryptCost int
}

func NewHandler(store *db.Store, bcryptCost int) *Handler {
	return &Handler{store: store, bcryptCost: bcryptCost}
}

// canAccess: users reach only their own record unless they are admin.
func canAccess(r *http.Request, userID string) bool {
	return middleware.UserID(r) == userID || middleware.UserRole(r) == models.RoleAdmin
}

func (h *Handler) GetUsers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := h.store.Users.Find(ctx, bson.M{},
		options.Find().SetSort(bson.M{"createdAt": -1}))
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

	utils.Success(w, http.StatusOK, users)
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id := ps.ByName("id")
	if !canAccess(r, id) {
		apperr.Write(w, apperr.New(apperr.Forbidden, "Forbidden"))
		return
	}

	var user models.User
	if err := h.store.Users.FindOne(ctx, bson.M{"userId": id}).Decode(&user); err != nil {
		apperr.Write(w, apperr.New(apperr.NotFound, "User not found"))
		return
	}

	addresses := []models.Address{}
	cursor, err := h.store.Addresses.Find(ctx, bson.M{"userId": id})
	if err != nil {
		apperr.Write(w, apperr.Wrap(apperr.Internal, "address lookup failed", err))
		return
	}
	defer cursor.Close(ctx)
	if err := cursor.All(ctx, &addresses); err != nil {
		apperr.Write(w, apperr.Wrap(apperr.Internal, "address decode failed", err))
		return
	}

	orders := []models.Order{}
	oc, err := h.store.Orders.Find(ctx, bson.M{"userId": id},
		options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		apperr.Write(w, apperr.Wrap(apperr.Internal, "order lookup failed", err))
		return
	}
	defer oc.Close(ctx)
	if err := oc.All(ctx, &orders); err != nil {
		apperr.Write(w, apperr.Wrap(apperr.Internal, "order decode failed", err))
		return
	}

	utils.Success(w, http.StatusOK, utils.M{"user": user, "addresses": addresses, "orders": orders})
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id := ps.ByName("id")
	if !canAccess(r, id) {
		apperr.Write(w, apperr.New(apperr.Forbidden, "Forbidden"))
		return
	}

	var input struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Phone     string `json:"phone"`
		Email     string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		apperr.Write(w, apperr.New(apperr.Validation, "Invalid input"))
		return
	}

	update := bson.M{"updatedAt": time.Now()}
	if input.FirstName != "" {
		update["firstName"] = input.FirstName
	}
	if input.LastName != "" {
		update["lastName"] = input.LastName
	}
	if input.Phone != "" {
		update["phone"] = input.Phone
	}
	if input.Email != "" {
		update["email"] = input.Email
	}

	var user models.User
	err := h.store.Users.FindOneAndUpdate(ctx,
		bson.M{"userId": id},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	if err != nil {
		apperr.Write(w, apperr.New(apperr.NotFound, "User not found"))
		return
	}

	utils.Success(w, http.StatusOK, user)
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id := ps.ByName("id")
	if middleware.UserID(r) != id {
		apperr.Write(w, apperr.New(apperr.Forbidden, "Forbidden"))
		return
	}

	var input struct {
		NewPassword string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.NewPassword == "" {
		apperr.Write(w, apperr.New(apperr.Validation, "Invalid input"))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), h.bcryptCost)
	if err != nil {
		apperr.Write(w, apperr.Wrap(apperr.Internal, "password hash failed", err))
		return
	}

	if _, err := h.store.Users.UpdateOne(ctx,
		bson.M{"userId": id},
		bson.M{"$set": bson.M{"password": string(hashed), "updatedAt": time.Now()}},
	); err != nil {
		apperr.Write(w, apperr.Wrap(apperr.Internal, "password update failed", err))
		return
	}

	utils.SuccessMessage(w, http.StatusOK, "Password updated successfully")
}
