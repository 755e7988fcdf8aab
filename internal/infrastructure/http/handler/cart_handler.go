package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mrops-br/storefront-api/internal/app/dto"
	"github.com/mrops-br/storefront-api/internal/app/service"
	"github.com/mrops-br/storefront-api/internal/domain"
	"github.com/mrops-br/storefront-api/internal/infrastructure/http/response"
)

// CartHandler handles HTTP requests for the cart page
type CartHandler struct {
	service *service.CartService
	logger  *slog.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(service *service.CartService, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger,
	}
}

// GetCart handles GET /sessions/{sessionID}/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.service.GetCart(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, cart)
}

// AddItem handles POST /sessions/{sessionID}/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req dto.LineItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to decode request body",
			slog.String("error", err.Error()),
		)
		response.Error(w, http.StatusBadRequest, err)
		return
	}

	cart, err := h.service.AddItem(r.Context(), chi.URLParam(r, "sessionID"), &req)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, cart)
}

// Increment handles POST /sessions/{sessionID}/cart/items/increment
func (h *CartHandler) Increment(w http.ResponseWriter, r *http.Request) {
	h.mutateLine(w, r, h.service.Increment)
}

// Decrement handles POST /sessions/{sessionID}/cart/items/decrement
func (h *CartHandler) Decrement(w http.ResponseWriter, r *http.Request) {
	h.mutateLine(w, r, h.service.Decrement)
}

// Clear handles DELETE /sessions/{sessionID}/cart
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	cart, err := h.service.Clear(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, cart)
}

func (h *CartHandler) mutateLine(
	w http.ResponseWriter,
	r *http.Request,
	mutate func(ctx context.Context, sessionID string, key domain.LineKey) (*dto.CartResponse, error),
) {
	var req dto.LineKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to decode request body",
			slog.String("error", err.Error()),
		)
		response.Error(w, http.StatusBadRequest, err)
		return
	}

	cart, err := mutate(r.Context(), chi.URLParam(r, "sessionID"), req.ToLineKey())
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, cart)
}
