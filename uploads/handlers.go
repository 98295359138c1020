package uploads

import (
	"context"
	"fmt"
	"net/http"
	"strings"
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
	store       *db.Store
	media       Media
	maxFileSize int64
	maxFiles    int
}

func NewHandler(store *db.Store, media Media, maxFileSize int64, maxFiles int) *Handler {
	return &Handler{store: store, media: media, maxFileSize: maxFileSize, maxFiles: maxFiles}
}

// UploadImages accepts a multipart form with one or more "images" parts,
// processes each, and records the result. The optional "folder" field
// groups images by purpose (products, categories, ...).
func (h *Handler) UploadImages(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize*int64(h.maxFiles)+1<<20)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		apperr.Write(w, apperr.New(apperr.Validation, "Invalid multipart form"))
		return
	}

	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		apperr.Write(w, apperr.New(apperr.Validation, "No images provided"))
		return
	}
	if len(files) > h.maxFiles {
		apperr.Write(w, apperr.New(apperr.Validation,
			fmt.Sprintf("Maximum %d images per upload", h.maxFiles)))
		return
	}

	folder := r.FormValue("folder")
	if folder == "" {
		folder = "products"
	}

	uploads := make([]models.Upload, 0, len(files))
	for _, fh := range files {
		if fh.Size > h.maxFileSize {
			apperr.Write(w, apperr.New(apperr.Validation,
				fmt.Sprintf("File %s exceeds the size limit", fh.Filename)))
			return
		}
		if ct := fh.Header.Get("Content-Type"); !strings.HasPrefix(ct, "image/") {
			apperr.Write(w, apperr.New(apperr.Validation,
				fmt.Sprintf("File %s is not an image", fh.Filename)))
			return
		}

		f, err := fh.Open()
		if err != nil {
			apperr.Write(w, apperr.Wrap(apperr.Internal, "file open failed", err))
			return
		}
		up, err := h.media.SaveImage(f, folder)
		f.Close()
		if err != nil {
			apperr.Write(w, apperr.New(apperr.Validation,
				fmt.Sprintf("File %s could not be processed", fh.Filename)))
			return
		}

		up.UserID = middleware.UserID(r)
		up.CreatedAt = time.Now()
		if _, err := h.store.Uploads.InsertOne(ctx, up); err != nil {
			apperr.Write(w, apperr.Wrap(apperr.Internal, "upload record failed", err))
			return
		}
		uploads = append(uploads, *up)
	}

	utils.Success(w, http.StatusCreated, uploads)
}

// DeleteImage removes a stored image and its record.
func (h *Handler) DeleteImage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	publicID := ps.ByName("publicId")

	var up models.Upload
	if err := h.store.Uploads.FindOne(ctx, bson.M{"publicId": publicID}).Decode(&up); err != nil {
		apperr.Write(w, apperr.New(apperr.NotFound, "Image not found"))
		return
	}

	if err := h.media.DeleteImage(up.Folder, up.PublicID); err != nil {
		apperr.Write(w, apperr.Wrap(apperr.Internal, "image delete failed", err))
		return
	}
	if _, err := h.store.Uploads.DeleteOne(ctx, bson.M{"publicId": publicID}); err != nil {
		apperr.Write(w, apperr.Wrap(apperr.Internal, "upload record delete failed", err))
		return
	}

	utils.SuccessMessage(w, http.StatusOK, "Image deleted successfully")
}
