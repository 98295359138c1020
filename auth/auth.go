package auth

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"storefront/apperr"
	"storefront/db"
	"storefront/middleware"
	"storefront/models"
	"storefront/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

type Handler struct {
	store      *db.Store
	auth       *middleware.Auth
	bcryptCost int
}

func NewHandler(store *db.Store, auth *middleware.Auth, bcryptCost int) *Handler {
	return &Handler{store: store, auth: auth, bcryptCost: bcryptCost}
}

// Register creates a CUSTOMER account. The role is never taken from input.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		Email     string `json:"email"`
		Password  string `json:"password"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		apperr.Write(w, apperr.New(apperr.Validation, "Invalid input"))
		return
	}
	if input.Email == "" || input.FirstName == "" || input.LastName == "" {
		apperr.Write(w, apperr.New(apperr.Validation, "Email, first name and last name are required"))
		return
	}

	if ok, problems := ValidatePassword(input.Password); !ok {
		apperr.Write(w, apperr.WithDetails(apperr.Validation, "Password validation failed", problems))
		return
	}

	err := h.store.Users.FindOne(ctx, bson.M{"email": input.Email}).Err()
	if err == nil {
		apperr.Write(w, apperr.New(apperr.Conflict, "Email is already registered"))
		return
	} else if err != mongo.ErrNoDocuments {
		apperr.Write(w, apperr.Wrap(apperr.Internal, "user lookup failed", err))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), h.bcryptCost)
	if err != nil {
		apperr.Write(w, apperr.Wrap(apperr.Internal, "password hash failed", err))
		return
	}

	now := time.Now()
	user := models.User{
		UserID:    utils.NewID(),
		Email:     input.Email,
		Password:  string(hashed),
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Role:      models.RoleCustomer,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := h.store.Users.InsertOne(ctx, user); err != nil {
		if db.IsDup(err) {
			apperr.Write(w, apperr.New(apperr.Conflict, "Email is already registered"))
			return
		}
		apperr.Write(w, apperr.Wrap(apperr.Internal, "user insert failed", err))
		return
	}

	log.Printf("registered user %s", user.UserID)
	utils.Success(w, http.StatusCreated, utils.M{"user": user})
}

// Login verifies credentials and returns a signed token plus the user.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		apperr.Write(w, apperr.New(apperr.Validation, "Invalid input"))
		return
	}

	var user models.User
	if err := h.store.Users.FindOne(ctx, bson.M{"email": input.Email}).Decode(&user); err != nil {
		apperr.Write(w, apperr.New(apperr.Auth, "Invalid email or password"))
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		apperr.Write(w, apperr.New(apperr.Auth, "Invalid email or password"))
		return
	}

	token, err := h.auth.IssueToken(user)
	if err != nil {
		apperr.Write(w, apperr.Wrap(apperr.Internal, "token signing failed", err))
		return
	}

	utils.Success(w, http.StatusOK, utils.M{"token": token, "user": user})
}

// Profile returns the authenticated user's record.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var user models.User
	if err := h.store.Users.FindOne(ctx, bson.M{"userId": middleware.UserID(r)}).Decode(&user); err != nil {
		apperr.Write(w, apperr.New(apperr.NotFound, "User not found"))
		return
	}

	utils.Success(w, http.StatusOK, user)
}
