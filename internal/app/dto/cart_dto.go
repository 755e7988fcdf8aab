package dto

import (
	"github.com/mrops-br/storefront-api/internal/domain"
	"github.com/shopspring/decimal"
)

// LineItemRequest is a line item as dispatched by a product card or the
// cart page. It is accepted as-is.
type LineItemRequest struct {
	ProductID     int     `json:"product_id"`
	Title         string  `json:"title"`
	Price         float64 `json:"price"`
	Image         string  `json:"image"`
	Qty           int     `json:"qty"`
	SelectedColor string  `json:"selected_color,omitempty"`
	SelectedSize  string  `json:"selected_size,omitempty"`
}

// ToLineItem converts the request into a domain line item
func (r *LineItemRequest) ToLineItem() domain.LineItem {
	return domain.LineItem{
		ProductID:     r.ProductID,
		Title:         r.Title,
		Price:         r.Price,
		Image:         r.Image,
		SelectedColor: r.SelectedColor,
		SelectedSize:  r.SelectedSize,
	}
}

// LineKeyRequest identifies a cart line
type LineKeyRequest struct {
	ProductID     int    `json:"product_id"`
	SelectedColor string `json:"selected_color,omitempty"`
	SelectedSize  string `json:"selected_size,omitempty"`
}

// ToLineKey converts the request into a domain key
func (r *LineKeyRequest) ToLineKey() domain.LineKey {
	return domain.LineKey{
		ProductID:     r.ProductID,
		SelectedColor: r.SelectedColor,
		SelectedSize:  r.SelectedSize,
	}
}

// LineItemResponse represents one cart line
type LineItemResponse struct {
	ProductID     int     `json:"product_id"`
	Title         string  `json:"title"`
	Price         float64 `json:"price"`
	Image         string  `json:"image"`
	Qty           int     `json:"qty"`
	SelectedColor string  `json:"selected_color,omitempty"`
	SelectedSize  string  `json:"selected_size,omitempty"`
	LineTotal     float64 `json:"line_total"`
}

// SummaryResponse represents the cart order summary
type SummaryResponse struct {
	TotalItems int     `json:"total_items"`
	Subtotal   float64 `json:"subtotal"`
	Shipping   float64 `json:"shipping"`
	Total      float64 `json:"total"`
}

// CartResponse represents the cart page. Summary is omitted for an empty cart.
type CartResponse struct {
	Empty   bool                `json:"empty"`
	Items   []*LineItemResponse `json:"items"`
	Summary *SummaryResponse    `json:"summary,omitempty"`
}

// ToLineItemResponse converts a domain line item
func ToLineItemResponse(i domain.LineItem) *LineItemResponse {
	return &LineItemResponse{
		ProductID:     i.ProductID,
		Title:         i.Title,
		Price:         i.Price,
		Image:         i.Image,
		Qty:           i.Qty,
		SelectedColor: i.SelectedColor,
		SelectedSize:  i.SelectedSize,
		LineTotal:     money(i.LineTotal()),
	}
}

// ToCartResponse converts line items and their summary
func ToCartResponse(items []domain.LineItem, summary domain.Summary) *CartResponse {
	resp := &CartResponse{
		Empty: summary.Empty,
		Items: make([]*LineItemResponse, len(items)),
	}
	for i, item := range items {
		resp.Items[i] = ToLineItemResponse(item)
	}

	if !summary.Empty {
		resp.Summary = &SummaryResponse{
			TotalItems: summary.TotalItems,
			Subtotal:   money(summary.Subtotal),
			Shipping:   money(summary.Shipping),
			Total:      money(summary.Total),
		}
	}
	return resp
}

func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
