package users

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"storefront/apperr"
	"storefront/middleware"
	"storefront/models"
	"storefront/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AddAddress inserts into the caller's address book. Setting isDefault
// unsets every other default first; the unset and the insert are separate
// writes, so a concurrent add can leave two defaults.
func (h *Handler) AddAddress(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id := ps.ByName("id")
	if middleware.UserID(r) != id {
		apperr.Write(w, apperr.New(apperr.Forbidden, "Forbidden"))
		return
	}

	var addr models.Address
	if err := json.NewDecoder(r.Body).Decode(&addr); err != nil {
		apperr.Write(w, apperr.New(apperr.Validation, "Invalid input"))
		return
	}
	if addr.AddressLine1 == "" || addr.City == "" || addr.Country == "" {
		apperr.Write(w, apperr.New(apperr.Validation, "Address line, city and country are required"))
		return
	}

	if addr.IsDefault {
		if _, err := h.store.Addresses.UpdateMany(ctx,
			bson.M{"userId": id},
			bson.M{"$set": bson.M{"isDefault": false}},
		); err != nil {
			apperr.Write(w, apperr.Wrap(apperr.Internal, "default address reset failed", err))
			return
		}
	}

	addr.AddressID = utils.NewID()
	addr.UserID = id
	addr.CreatedAt = time.Now()

	if _, err := h.store.Addresses.InsertOne(ctx, addr); err != nil {
		apperr.Write(w, apperr.Wrap(apperr.Internal, "address insert failed", err))
		return
	}

	utils.Success(w, http.StatusCreated, addr)
}

func (h *Handler) UpdateAddress(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id := ps.ByName("id")
	if middleware.UserID(r) != id {
		apperr.Write(w, apperr.New(apperr.Forbidden, "Forbidden"))
		return
	}

	var addr models.Address
	if err := json.NewDecoder(r.Body).Decode(&addr); err != nil {
		apperr.Write(w, apperr.New(apperr.Validation, "Invalid input"))
		return
	}

	if addr.IsDefault {
		if _, err := h.store.Addresses.UpdateMany(ctx,
			bson.M{"userId": id},
			bson.M{"$set": bson.M{"isDefault": false}},
		); err != nil {
			apperr.Write(w, apperr.Wrap(apperr.Internal, "default address reset failed", err))
			return
		}
	}

	addr.AddressID = ps.ByName("addressId")
	addr.UserID = id

	var updated models.Address
	err := h.store.Addresses.FindOneAndReplace(ctx,
		bson.M{"addressId": addr.AddressID, "userId": id},
		addr,
		options.FindOneAndReplace().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		apperr.Write(w, apperr.New(apperr.NotFound, "Address not found"))
		return
	}

	utils.Success(w, http.StatusOK, updated)
}

func (h *Handler) DeleteAddress(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id := ps.ByName("id")
	if middleware.UserID(r) != id {
		apperr.Write(w, apperr.New(apperr.Forbidden, "Forbidden"))
		return
	}

	res, err := h.store.Addresses.DeleteOne(ctx, bson.M{
		"addressId": ps.ByName("addressId"),
		"userId":    id,
	})
	if err != nil {
		apperr.Write(w, apperr.Wrap(apperr.Internal, "address delete failed", err))
		return
	}
	if res.DeletedCount == 0 {
		apperr.Write(w, apperr.New(apperr.NotFound, "Address not found"))
		return
	}

	utils.SuccessMessage(w, http.StatusOK, "Address deleted successfully")
}
