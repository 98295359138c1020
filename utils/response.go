package utils

import (
	"encoding/json"
	"net/http"
)

type M map[string]any

// Pagination is attached to list responses that page through a collection.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

func NewPagination(total int64, page, limit int) *Pagination {
	totalPages := total / int64(limit)
	if total%int64(limit) != 0 {
		totalPages++
	}
	return &Pagination{Page: page, Limit: limit, Total: total, TotalPages: totalPages}
}

// RespondWithJSON sends a raw JSON payload.
func RespondWithJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// Success sends the standard success envelope.
func Success(w http.ResponseWriter, statusCode int, data any) {
	RespondWithJSON(w, statusCode, M{"success": true, "data": data})
}

// SuccessPage sends a success envelope with pagination metadata.
func SuccessPage(w http.ResponseWriter, statusCode int, data any, pg *Pagination) {
	RespondWithJSON(w, statusCode, M{"success": true, "data": data, "pagination": pg})
}

// SuccessMessage sends a success envelope with no data payload.
func SuccessMessage(w http.ResponseWriter, statusCode int, msg string) {
	RespondWithJSON(w, statusCode, M{"success": true, "message": msg})
}

func RespondWithError(w http.ResponseWriter, code int, msg string) {
	RespondWithJSON(w, code, M{"success": false, "error": msg})
}

func RespondWithErrorDetails(w http.ResponseWriter, code int, msg string, details any) {
	RespondWithJSON(w, code, M{"success": false, "error": msg, "details": details})
}
