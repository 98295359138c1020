package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/admin"
	"storefront/auth"
	"storefront/cart"
	"storefront/categories"
	"storefront/config"
	"storefront/db"
	"storefront/middleware"
	"storefront/orders"
	"storefront/payments"
	"storefront/products"
	"storefront/ratelim"
	"storefront/rdx"
	"storefront/reviews"
	"storefront/routes"
	"storefront/uploads"
	"storefront/users"
	"storefront/wishlist"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
)

// securityHeaders applies a set of recommended HTTP security headers.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "frame-ancestors 'none'")
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		w.Header().Set("Referrer-Policy", "no-referrer")
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs each request method, path, remote address, and duration.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s from %s - %v", r.Method, r.RequestURI, r.RemoteAddr, time.Since(start))
	})
}

func healthCheck(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	store, err := db.Open(ctx, cfg.MongoURI, cfg.MongoDB)
	cancel()
	if err != nil {
		log.Fatalf("mongodb connect failed: %v", err)
	}

	ctx, cancel = context.WithTimeout(context.Background(), 15*time.Second)
	err = store.EnsureIndexes(ctx)
	cancel()
	if err != nil {
		log.Fatalf("index creation failed: %v", err)
	}

	cache, err := rdx.New(cfg.RedisURL)
	if err != nil {
		log.Fatalf("redis connect failed: %v", err)
	}

	authMW := middleware.NewAuth(store, cfg.JWTSecret, cfg.JWTExpiry)
	gateway := payments.NewStripeGateway(cfg.StripeSecretKey)
	media := uploads.NewLocalMedia(cfg.MediaRoot, cfg.MediaBaseURL)

	deps := routes.Deps{
		Auth:       authMW,
		RL:         ratelim.NewRateLimiter(cfg.RateLimitWindow, cfg.RateLimitMax),
		AuthH:      auth.NewHandler(store, authMW, cfg.BcryptCost),
		Users:      users.NewHandler(store, cfg.BcryptCost),
		Categories: categories.NewHandler(store, cache),
		Products:   products.NewHandler(store, cache),
		Cart:       cart.NewHandler(store),
		Wishlist:   wishlist.NewHandler(store),
		Reviews:    reviews.NewHandler(store),
		Orders:     orders.NewHandler(store),
		Payments:   payments.NewHandler(store, gateway, cfg.StripeWebhookSecret),
		Uploads:    uploads.NewHandler(store, media, cfg.MaxFileSize, cfg.MaxFiles),
		Admin:      admin.NewHandler(store, cfg.StrictStatusTransitions),
		MediaRoot:  cfg.MediaRoot,
	}

	router := routes.Setup(deps)
	router.GET("/health", healthCheck)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "Stripe-Signature"},
		AllowCredentials: true,
	}).Handler(router)

	server := &http.Server{
		Addr:              cfg.Port,
		Handler:           loggingMiddleware(securityHeaders(corsHandler)),
		ReadTimeout:       7 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	go func() {
		log.Printf("Server listening on %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("Shutdown signal received; shutting down gracefully...")
	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("graceful shutdown failed: %v", err)
	}
	if err := cache.Close(); err != nil {
		log.Printf("redis close: %v", err)
	}
	if err := store.Close(ctx); err != nil {
		log.Printf("mongodb close: %v", err)
	}

	log.Println("Server stopped cleanly")
}
