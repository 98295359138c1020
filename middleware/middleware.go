package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"storefront/db"
	"storefront/models"
	"storefront/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// JWT claims
type Claims struct {
	UserID string      `json:"userId"`
	Email  string      `json:"email"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

type contextKey string

const (
	userIDKey contextKey = "userId"
	roleKey   contextKey = "role"
)

// Auth verifies bearer tokens and resolves them to active user accounts.
type Auth struct {
	store  *db.Store
	secret []byte
	expiry time.Duration
}

func NewAuth(store *db.Store, secret []byte, expiry time.Duration) *Auth {
	return &Auth{store: store, secret: secret, expiry: expiry}
}

// IssueToken signs an HS256 token carrying the user's id, email and role.
func (a *Auth) IssueToken(u models.User) (string, error) {
	claims := &Claims{
		UserID: u.UserID,
		Email:  u.Email,
		Role:   u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(a.expiry)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

var (
	ErrTokenExpired = errors.New("Token expired")
	ErrTokenInvalid = errors.New("Invalid token")
)

// ParseToken verifies signature and expiry. Expired tokens get a
// distinguishable error.
func (a *Auth) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return a.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return ""
	}
	return h[7:]
}

// Authenticate requires a valid bearer token belonging to an active account.
func (a *Auth) Authenticate(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		tokenString := bearerToken(r)
		if tokenString == "" {
			utils.RespondWithError(w, http.StatusUnauthorized, "Access token required")
			return
		}

		claims, err := a.ParseToken(tokenString)
		if err != nil {
			utils.RespondWithError(w, http.StatusUnauthorized, err.Error())
			return
		}

		var user models.User
		if err := a.store.Users.FindOne(r.Context(), bson.M{"userId": claims.UserID}).Decode(&user); err != nil {
			utils.RespondWithError(w, http.StatusUnauthorized, "User not found")
			return
		}
		if !user.IsActive {
			utils.RespondWithError(w, http.StatusUnauthorized, "Account is deactivated")
			return
		}

		next(w, r.WithContext(WithUser(r.Context(), user.UserID, user.Role)), ps)
	}
}

// WithUser attaches an authenticated identity to the context.
func WithUser(ctx context.Context, userID string, role models.Role) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, roleKey, role)
}

// OptionalAuth proceeds as anonymous when no valid token is presented.
func (a *Auth) OptionalAuth(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if tokenString := bearerToken(r); tokenString != "" {
			if claims, err := a.ParseToken(tokenString); err == nil {
				var user models.User
				if err := a.store.Users.FindOne(r.Context(), bson.M{"userId": claims.UserID}).Decode(&user); err == nil && user.IsActive {
					r = r.WithContext(WithUser(r.Context(), user.UserID, user.Role))
				}
			}
		}
		next(w, r, ps)
	}
}

// Allowed is the authorization decision: membership of role in the
// operation's allowed set.
func Allowed(role models.Role, allowed ...models.Role) bool {
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	return false
}

// RequireRole rejects callers outside the allowed-role set. It assumes
// Authenticate already ran.
func (a *Auth) RequireRole(next httprouter.Handle, roles ...models.Role) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		role, ok := r.Context().Value(roleKey).(models.Role)
		if !ok {
			utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		if !Allowed(role, roles...) {
			utils.RespondWithError(w, http.StatusForbidden, "Insufficient permissions")
			return
		}
		next(w, r, ps)
	}
}

// UserID returns the authenticated caller's id, or "" for anonymous.
func UserID(r *http.Request) string {
	id, _ := r.Context().Value(userIDKey).(string)
	return id
}

// UserRole returns the authenticated caller's role, or "" for anonymous.
func UserRole(r *http.Request) models.Role {
	role, _ := r.Context().Value(roleKey).(models.Role)
	return role
}
