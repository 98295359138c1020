package categories

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

const cachePrefix = "category:"

type Handler struct {
	store *db.Store
	cache *rdx.Cache
}

func NewHandler(store *db.Store, cache *rdx.Cache) *Handler {
	return &Handler{store: store, cache: cache}
}

func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := h.store.Categories.Find(ctx,
		bson.M{"isActive": true},
		options.Find().SetSort(bson.M{"name": 1}))
	if err != nil {
		apperr.Write(w, apperr.Wrap(apperr.Internal, "category list failed", err))
		return
	}
	defer cursor.Close(ctx)

	cats := []models.Category{}
	if err := cursor.All(ctx, &cats); err != nil {
		apperr.Write(w, apperr.Wrap(apperr.Internal, "category decode failed", err))
		return
	}

	utils.Success(w, http.StatusOK, cats)
}

// GetCategory returns the category with its children and active products.
// Detail reads go through the cache; admin writes invalidate it.
func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id := ps.ByName("id")

	if cached, ok := h.cache.Get(ctx, cachePrefix+id); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(cached))
		return
	}

	var cat models.Category
	if err := h.store.Categories.FindOne(ctx, bson.M{"categoryId": id}).Decode(&cat); err != nil {
		apperr.Write(w, apperr.New(apperr.NotFound, "Category not found"))
		return
	}

	children := []models.Category{}
	if cursor, err := h.store.Categories.Find(ctx, bson.M{"parentId": id}); err == nil {
		defer cursor.Close(ctx)
		cursor.All(ctx, &children)
	}

	products := []models.Product{}
	if cursor, err := h.store.Products.Find(ctx, bson.M{"categoryId": id, "isActive": true}); err == nil {
		defer cursor.Close(ctx)
		cursor.All(ctx, &products)
	}

	payload := utils.M{
		"success": true,
		"data":    utils.M{"category": cat, "children": children, "products": products},
	}
	if buf, err := json.Marshal(payload); err == nil {
		h.cache.Set(ctx, cachePrefix+id, string(buf), 5*time.Minute)
	}

	utils.RespondWithJSON(w, http.StatusOK, payload)
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		ParentID    string `json:"parentId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Name == "" {
		apperr.Write(w, apperr.New(apperr.Validation, "Name is required"))
		return
	}

	cat := models.Category{
		CategoryID:  utils.NewID(),
		Name:        input.Name,
		Slug:        utils.Slugify(input.Name),
		Description: input.Description,
		ParentID:    input.ParentID,
		IsActive:    true,
		CreatedAt:   time.Now(),
	}

	if _, err := h.store.Categories.InsertOne(ctx, cat); err != nil {
		apperr.Write(w, apperr.Wrap(apperr.Internal, "category insert failed", err))
		return
	}

	utils.Success(w, http.StatusCreated, cat)
}

func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id := ps.ByName("id")

	var input struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		ParentID    string `json:"parentId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		apperr.Write(w, apperr.New(apperr.Validation, "Invalid input"))
		return
	}

	update := bson.M{}
	if input.Name != "" {
		update["name"] = input.Name
		update["slug"] = utils.Slugify(input.Name)
	}
	if input.Description != "" {
		update["description"] = input.Description
	}
	if input.ParentID != "" {
		update["parentId"] = input.ParentID
	}

	var cat models.Category
	err := h.store.Categories.FindOneAndUpdate(ctx,
		bson.M{"categoryId": id},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&cat)
	if err != nil {
		apperr.Write(w, apperr.New(apperr.NotFound, "Category not found"))
		return
	}

	h.cache.Del(ctx, cachePrefix+id)
	utils.Success(w, http.StatusOK, cat)
}

func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id := ps.ByName("id")
	res, err := h.store.Categories.DeleteOne(ctx, bson.M{"categoryId": id})
	if err != nil {
		apperr.Write(w, apperr.Wrap(apperr.Internal, "category delete failed", err))
		return
	}
	if res.DeletedCount == 0 {
		apperr.Write(w, apperr.New(apperr.NotFound, "Category not found"))
		return
	}

	h.cache.Del(ctx, cachePrefix+id)
	utils.SuccessMessage(w, http.StatusOK, "Category deleted successfully")
}
