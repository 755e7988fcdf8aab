package response

import (
	"encoding/json"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/mrops-br/storefront-api/internal/domain"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// JSON sends a JSON response
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Error sends an error response
func Error(w http.ResponseWriter, status int, err error) {
	errorType := "error"
	switch status {
	case http.StatusNotFound:
		errorType = "not_found"
	case http.StatusBadRequest:
		errorType = "bad_request"
	case http.StatusConflict:
		errorType = "conflict"
	case http.StatusBadGateway:
		errorType = "bad_gateway"
	case http.StatusInternalServerError:
		errorType = "internal_server_error"
	}

	JSON(w, status, ErrorResponse{
		Error:   errorType,
		Message: err.Error(),
	})
}

// StatusFor maps a domain error to its HTTP status
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrProductNotFound), errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrFetchFailed):
		return http.StatusBadGateway
	case errors.Is(err, domain.ErrInvalidSelection), errors.Is(err, domain.ErrUnknownVariant):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrOutOfStock), errors.Is(err, domain.ErrProductNotLoaded):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// DomainError sends err with the status StatusFor picks
func DomainError(w http.ResponseWriter, err error) {
	Error(w, StatusFor(err), err)
}
