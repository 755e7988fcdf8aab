package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/mrops-br/storefront-api/internal/app/dto"
	"github.com/mrops-br/storefront-api/internal/app/service"
	"github.com/mrops-br/storefront-api/internal/infrastructure/http/response"
)

// ViewHandler handles HTTP requests for the product page
type ViewHandler struct {
	service *service.ProductViewService
	logger  *slog.Logger
}

// NewViewHandler creates a new product view handler
func NewViewHandler(service *service.ProductViewService, logger *slog.Logger) *ViewHandler {
	return &ViewHandler{
		service: service,
		logger:  logger,
	}
}

// Navigate handles POST /sessions/{sessionID}/view/{productID}
func (h *ViewHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r, "productID")
	if !ok {
		return
	}
	wait, _ := strconv.ParseBool(r.URL.Query().Get("wait"))

	view, err := h.service.Navigate(r.Context(), chi.URLParam(r, "sessionID"), id, wait)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, view)
}

// GetView handles GET /sessions/{sessionID}/view
func (h *ViewHandler) GetView(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.GetView(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, view)
}

// Select handles PUT /sessions/{sessionID}/view/selection
func (h *ViewHandler) Select(w http.ResponseWriter, r *http.Request) {
	var req dto.SelectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to decode request body",
			slog.String("error", err.Error()),
		)
		response.Error(w, http.StatusBadRequest, err)
		return
	}

	view, err := h.service.Select(r.Context(), chi.URLParam(r, "sessionID"), &req)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, view)
}

// IncrementQuantity handles POST /sessions/{sessionID}/view/quantity/increment
func (h *ViewHandler) IncrementQuantity(w http.ResponseWriter, r *http.Request) {
	qty, err := h.service.IncrementQuantity(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, qty)
}

// DecrementQuantity handles POST /sessions/{sessionID}/view/quantity/decrement
func (h *ViewHandler) DecrementQuantity(w http.ResponseWriter, r *http.Request) {
	qty, err := h.service.DecrementQuantity(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, qty)
}

// AddToCart handles POST /sessions/{sessionID}/view/cart
func (h *ViewHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.service.AddToCart(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, cart)
}
