package routes

import (
	"net/http"

	"storefront/admin"
	"storefront/auth"
	"storefront/cart"
	"storefront/categories"
	"storefront/middleware"
	"storefront/models"
	"storefront/orders"
	"storefront/payments"
	"storefront/products"
	"storefront/ratelim"
	"storefront/reviews"
	"storefront/uploads"
	"storefront/users"
	"storefront/wishlist"

	"github.com/julienschmidt/httprouter"
)

// Deps carries everything route registration needs.
type Deps struct {
	Auth *middleware.Auth
	RL   *ratelim.RateLimiter

	AuthH      *auth.Handler
	Users      *users.Handler
	Categories *categories.Handler
	Products   *products.Handler
	Cart       *cart.Handler
	Wishlist   *wishlist.Handler
	Reviews    *reviews.Handler
	Orders     *orders.Handler
	Payments   *payments.Handler
	Uploads    *uploads.Handler
	Admin      *admin.Handler
	MediaRoot  string
}

func admins(d Deps, h httprouter.Handle) httprouter.Handle {
	return d.Auth.Authenticate(d.Auth.RequireRole(h, models.RoleAdmin))
}

func AddAuthRoutes(router *httprouter.Router, d Deps) {
	router.POST("/api/auth/register", d.RL.Limit(d.AuthH.Register))
	router.POST("/api/auth/login", d.RL.Limit(d.AuthH.Login))
	router.GET("/api/auth/profile", d.Auth.Authenticate(d.AuthH.Profile))
}

func AddUserRoutes(router *httprouter.Router, d Deps) {
	router.GET("/api/users", admins(d, d.Users.GetUsers))
	router.GET("/api/users/:id", d.Auth.Authenticate(d.Users.GetUser))
	router.PUT("/api/users/:id", d.Auth.Authenticate(d.Users.UpdateUser))
	router.PUT("/api/users/:id/password", d.Auth.Authenticate(d.Users.ChangePassword))
	router.POST("/api/users/:id/addresses", d.Auth.Authenticate(d.Users.AddAddress))
	router.PUT("/api/users/:id/addresses/:addressId", d.Auth.Authenticate(d.Users.UpdateAddress))
	router.DELETE("/api/users/:id/addresses/:addressId", d.Auth.Authenticate(d.Users.DeleteAddress))
}

func AddCategoryRoutes(router *httprouter.Router, d Deps) {
	router.GET("/api/categories", d.Categories.GetCategories)
	router.GET("/api/categories/:id", d.Categories.GetCategory)
	router.POST("/api/categories", admins(d, d.Categories.CreateCategory))
	router.PUT("/api/categories/:id", admins(d, d.Categories.UpdateCategory))
	router.DELETE("/api/categories/:id", admins(d, d.Categories.DeleteCategory))
}

func AddProductRoutes(router *httprouter.Router, d Deps) {
	router.GET("/api/products", d.Products.GetProducts)
	router.GET("/api/products/:id", d.Products.GetProduct)
	router.POST("/api/products", admins(d, d.Products.CreateProduct))
	router.PUT("/api/products/:id", admins(d, d.Products.UpdateProduct))
	router.DELETE("/api/products/:id", admins(d, d.Products.DeleteProduct))
	router.GET("/api/products/:id/reviews", d.Reviews.GetProductReviews)
}

func AddCartRoutes(router *httprouter.Router, d Deps) {
	router.GET("/api/cart", d.Auth.Authenticate(d.Cart.GetCart))
	router.POST("/api/cart", d.Auth.Authenticate(d.Cart.AddToCart))
	router.PUT("/api/cart/:productId", d.Auth.Authenticate(d.Cart.UpdateCartItem))
	router.DELETE("/api/cart/:productId", d.Auth.Authenticate(d.Cart.RemoveFromCart))
	router.DELETE("/api/cart", d.Auth.Authenticate(d.Cart.ClearCart))
}

func AddWishlistRoutes(router *httprouter.Router, d Deps) {
	router.GET("/api/wishlist", d.Auth.Authenticate(d.Wishlist.GetWishlist))
	router.POST("/api/wishlist", d.Auth.Authenticate(d.Wishlist.AddToWishlist))
	router.DELETE("/api/wishlist/:productId", d.Auth.Authenticate(d.Wishlist.RemoveFromWishlist))
}

func AddReviewRoutes(router *httprouter.Router, d Deps) {
	router.POST("/api/reviews", d.Auth.Authenticate(d.Reviews.CreateReview))
	router.PUT("/api/reviews/:id/approve", admins(d, d.Reviews.ApproveReview))
	router.DELETE("/api/reviews/:id", d.Auth.Authenticate(d.Reviews.DeleteReview))
}

func AddOrderRoutes(router *httprouter.Router, d Deps) {
	router.POST("/api/orders", d.Auth.Authenticate(d.Orders.CreateOrder))
	router.GET("/api/orders", admins(d, d.Orders.GetOrders))
	router.GET("/api/orders/:id", d.Auth.Authenticate(d.Orders.GetOrder))
	router.GET("/api/my/orders", d.Auth.Authenticate(d.Orders.GetMyOrders))
}

func AddPaymentRoutes(router *httprouter.Router, d Deps) {
	router.POST("/api/payments/create-payment-intent", d.Auth.Authenticate(d.Payments.CreateIntent))
	router.POST("/api/payments/confirm-payment", d.Auth.Authenticate(d.Payments.ConfirmPayment))
	// Webhook is authenticated by its signature, not a bearer token.
	router.POST("/api/payments/webhook", d.Payments.Webhook)
	router.GET("/api/payments/payment-methods", d.Payments.PaymentMethods)
}

func AddUploadRoutes(router *httprouter.Router, d Deps) {
	router.POST("/api/upload/images", admins(d, d.Uploads.UploadImages))
	router.DELETE("/api/upload/images/:publicId", admins(d, d.Uploads.DeleteImage))
}

func AddAdminRoutes(router *httprouter.Router, d Deps) {
	router.GET("/api/admin/dashboard", admins(d, d.Admin.Dashboard))
	router.GET("/api/admin/orders", admins(d, d.Admin.GetOrders))
	router.PUT("/api/admin/orders/:id/status", admins(d, d.Admin.UpdateOrderStatus))
	router.GET("/api/admin/products", admins(d, d.Admin.GetProducts))
	router.GET("/api/admin/users", admins(d, d.Admin.GetUsers))
	router.PUT("/api/admin/users/:id/toggle-status", admins(d, d.Admin.ToggleUserStatus))
}

func AddStaticRoutes(router *httprouter.Router, d Deps) {
	router.ServeFiles("/media/*filepath", http.Dir(d.MediaRoot))
}

// Setup registers every route group on a fresh router.
func Setup(d Deps) *httprouter.Router {
	router := httprouter.New()

	AddAuthRoutes(router, d)
	AddUserRoutes(router, d)
	AddCategoryRoutes(router, d)
	AddProductRoutes(router, d)
	AddCartRoutes(router, d)
	AddWishlistRoutes(router, d)
	AddReviewRoutes(router, d)
	AddOrderRoutes(router, d)
	AddPaymentRoutes(router, d)
	AddUploadRoutes(router, d)
	AddAdminRoutes(router, d)
	AddStaticRoutes(router, d)

	return router
}
