package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/sattamap/mechkeys-server/internal/repository"
	"github.com/sattamap/mechkeys-server/internal/service"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleServiceError converts service/repository errors to HTTP responses.
// Storage failures become a 500 carrying the raw error detail.
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrProductNotFound):
		respondError(w, http.StatusNotFound, "product_not_found", "Product not found")
	case errors.Is(err, repository.ErrCartItemNotFound):
		respondError(w, http.StatusNotFound, "cart_item_not_found", "Item not found")
	case errors.Is(err, repository.ErrInsufficientStock):
		respondError(w, http.StatusBadRequest, "insufficient_stock", "Not enough stock available")
	case errors.Is(err, service.ErrAllFieldsRequired):
		respondError(w, http.StatusBadRequest, "validation_error", "All fields are required")
	default:
		respondJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error:   "internal server error",
			Code:    "internal_error",
			Details: err.Error(),
		})
	}
}
