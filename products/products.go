package products

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"storefront/apperr"
	"storefront/db"
	"storefront/models"
	"storefront/rdx"
	"storefront/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const cachePrefix = "product:"

type Handler struct {
	store *db.Store
	cache *rdx.Cache
}

func NewHandler(store *db.Store, cache *rdx.Cache) *Handler {
	return &Handler{store: store, cache: cache}
}

// listFilter builds the catalog query from the request options.
func listFilter(opts utils.QueryOptions) bson.M {
	filter := bson.M{"isActive": true}

	if opts.Search != "" {
		re := bson.M{"$regex": opts.Search, "$options": "i"}
		filter["$or"] = []bson.M{
			{"name": re},
			{"description": re},
			{"sku": re},
			{"tags": opts.Search},
		}
	}
	if opts.Category != "" {
		filter["categoryId"] = opts.Category
	}
	if opts.MinPrice != nil || opts.MaxPrice != nil {
		price := bson.M{}
		if opts.MinPrice != nil {
			price["$gte"] = *opts.MinPrice
		}
		if opts.MaxPrice != nil {
			price["$lte"] = *opts.MaxPrice
		}
		filter["price"] = price
	}
	if opts.Featured != nil {
		filter["isFeatured"] = *opts.Featured
	}

	return filter
}

func (h *Handler) GetProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	opts := utils.ParseQueryOptions(r)
	filter := listFilter(opts)

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

	prods := []models.Product{}
	if err := cursor.All(ctx, &prods); err != nil {
		apperr.Write(w, apperr.Wrap(apperr.Internal, "product decode failed", err))
		return
	}

	utils.SuccessPage(w, http.StatusOK, prods, utils.NewPagination(total, opts.Page, opts.Limit))
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id := ps.ByName("id")

	if cached, ok := h.cache.Get(ctx, cachePrefix+id); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(cached))
		return
	}

	var prod models.Product
	if err := h.store.Products.FindOne(ctx, bson.M{"productId": id}).Decode(&prod); err != nil {
		apperr.Write(w, apperr.New(apperr.NotFound, "Product not found"))
		return
	}

	payload := utils.M{"success": true, "data": prod}
	if buf, err := json.Marshal(payload); err == nil {
		h.cache.Set(ctx, cachePrefix+id, string(buf), 5*time.Minute)
	}

	utils.RespondWithJSON(w, http.StatusOK, payload)
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		Name             string                `json:"name"`
		Description      string                `json:"description"`
		ShortDescription string                `json:"shortDescription"`
		Price            float64               `json:"price"`
		ComparePrice     float64               `json:"comparePrice"`
		Quantity         int                   `json:"quantity"`
		TrackQuantity    bool                  `json:"trackQuantity"`
		Tags             []string              `json:"tags"`
		Images           []models.ProductImage `json:"images"`
		CategoryID       string                `json:"categoryId"`
		CategoryName     string                `json:"categoryName"`
		IsFeatured       bool                  `json:"isFeatured"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		apperr.Write(w, apperr.New(apperr.Validation, "Invalid input"))
		return
	}
	if input.Name == "" || input.Price < 0 {
		apperr.Write(w, apperr.New(apperr.Validation, "Name and a non-negative price are required"))
		return
	}

	now := time.Now()
	prod := models.Product{
		ProductID:        utils.NewID(),
		Name:             input.Name,
		Slug:             utils.Slugify(input.Name),
		SKU:              utils.GenerateSKU(input.Name, input.CategoryName),
		Description:      input.Description,
		ShortDescription: input.ShortDescription,
		Price:            input.Price,
		ComparePrice:     input.ComparePrice,
		Quantity:         input.Quantity,
		TrackQuantity:    input.TrackQuantity,
		Tags:             input.Tags,
		Images:           input.Images,
		CategoryID:       input.CategoryID,
		IsActive:         true,
		IsFeatured:       input.IsFeatured,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if _, err := h.store.Products.InsertOne(ctx, prod); err != nil {
		if db.IsDup(err) {
			apperr.Write(w, apperr.New(apperr.Conflict, "Product SKU already exists"))
			return
		}
		apperr.Write(w, apperr.Wrap(apperr.Internal, "product insert failed", err))
		return
	}

	utils.Success(w, http.StatusCreated, prod)
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id := ps.ByName("id")

	var input struct {
		Name        string   `json:"name"`
		Description string   `json:"description"`
		Price       *float64 `json:"price"`
		Quantity    *int     `json:"quantity"`
		CategoryID  string   `json:"categoryId"`
		Tags        []string `json:"tags"`
		IsActive    *bool    `json:"isActive"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		apperr.Write(w, apperr.New(apperr.Validation, "Invalid input"))
		return
	}

	update := bson.M{"updatedAt": time.Now()}
	if input.Name != "" {
		update["name"] = input.Name
		update["slug"] = utils.Slugify(input.Name)
	}
	if input.Description != "" {
		update["description"] = input.Description
	}
	if input.Price != nil {
		update["price"] = *input.Price
	}
	if input.Quantity != nil {
		update["quantity"] = *input.Quantity
	}
	if input.CategoryID != "" {
		update["categoryId"] = input.CategoryID
	}
	if input.Tags != nil {
		update["tags"] = input.Tags
	}
	if input.IsActive != nil {
		update["isActive"] = *input.IsActive
	}

	var prod models.Product
	err := h.store.Products.FindOneAndUpdate(ctx,
		bson.M{"productId": id},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&prod)
	if err != nil {
		apperr.Write(w, apperr.New(apperr.NotFound, "Product not found"))
		return
	}

	h.cache.Del(ctx, cachePrefix+id)
	utils.Success(w, http.StatusOK, prod)
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id := ps.ByName("id")
	res, err := h.store.Products.DeleteOne(ctx, bson.M{"productId": id})
	if err != nil {
		apperr.Write(w, apperr.Wrap(apperr.Internal, "product delete failed", err))
		return
	}
	if res.DeletedCount == 0 {
		apperr.Write(w, apperr.New(apperr.NotFound, "Product not found"))
		return
	}

	h.cache.Del(ctx, cachePrefix+id)
	utils.SuccessMessage(w, http.StatusOK, "Product deleted successfully")
}
