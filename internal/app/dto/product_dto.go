package dto

import "github.com/mrops-br/storefront-api/internal/domain"

// RatingResponse represents a product rating
type RatingResponse struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
	Stars int     `json:"stars"`
}

// ProductResponse represents a product card
type ProductResponse struct {
	ID          int            `json:"id"`
	Title       string         `json:"title"`
	Price       float64        `json:"price"`
	Image       string         `json:"image"`
	Category    string         `json:"category"`
	Description string         `json:"description"`
	Rating      RatingResponse `json:"rating"`
	InStock     bool           `json:"in_stock"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *domain.Product) *ProductResponse {
	return &ProductResponse{
		ID:          p.ID,
		Title:       p.Title,
		Price:       p.Price,
		Image:       p.Image,
		Category:    p.Category,
		Description: p.Description,
		Rating: RatingResponse{
			Rate:  p.Rating.Rate,
			Count: p.Rating.Count,
			Stars: p.Rating.Stars(),
		},
		InStock: p.InStock(),
	}
}

// ToProductResponseList converts a list of domain Products to ProductResponse list
func ToProductResponseList(products []*domain.Product) []*ProductResponse {
	responses := make([]*ProductResponse, len(products))
	for i, p := range products {
		responses[i] = ToProductResponse(p)
	}
	return responses
}
