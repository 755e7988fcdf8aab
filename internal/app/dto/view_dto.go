package dto

import "github.com/mrops-br/storefront-api/internal/domain"

// SelectionRequest changes the variant selection. Nil fields are left
// unchanged; an empty string clears the field.
type SelectionRequest struct {
	Color *string `json:"color"`
	Size  *string `json:"size"`
}

// SelectionResponse represents the current variant selection
type SelectionResponse struct {
	Color string `json:"color"`
	Size  string `json:"size"`
}

// SizeOption is one size button for the selected color
type SizeOption struct {
	Size      string `json:"size"`
	Available bool   `json:"available"`
	Selected  bool   `json:"selected"`
}

// ColorOption is one color swatch
type ColorOption struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Hex      string `json:"hex"`
	Image    string `json:"image,omitempty"`
	Selected bool   `json:"selected"`
}

// ProductViewResponse represents the product page
type ProductViewResponse struct {
	ProductID      int                `json:"product_id"`
	State          string             `json:"state"`
	Product        *ProductResponse   `json:"product,omitempty"`
	Colors         []ColorOption      `json:"colors"`
	Sizes          []SizeOption       `json:"sizes"`
	Selection      SelectionResponse  `json:"selection"`
	SuggestedSize  string             `json:"suggested_size,omitempty"`
	InStock        bool               `json:"in_stock"`
	Quantity       int                `json:"quantity"`
	AddToCartPrice float64            `json:"add_to_cart_price,omitempty"`
	SimilarState   string             `json:"similar_state"`
	Similar        []*ProductResponse `json:"similar"`
}

// QuantityResponse is returned by the quantity stepper
type QuantityResponse struct {
	Quantity int `json:"quantity"`
}

// ToProductViewResponse converts a product view snapshot
func ToProductViewResponse(s domain.ProductViewSnapshot) *ProductViewResponse {
	resp := &ProductViewResponse{
		ProductID:     s.ProductID,
		State:         string(s.State),
		Selection:     SelectionResponse{Color: s.Selection.ColorID, Size: s.Selection.Size},
		SuggestedSize: s.SuggestedSize,
		InStock:       s.InStock,
		Quantity:      s.Quantity,
		SimilarState:  string(s.SimilarState),
		Similar:       ToProductResponseList(s.Similar),
	}

	image := ""
	if s.Product != nil {
		resp.Product = ToProductResponse(s.Product)
		image = s.Product.Image
		if s.InStock {
			line := domain.LineItem{Price: s.Product.Price, Qty: s.Quantity}
			resp.AddToCartPrice = money(line.LineTotal())
		}
	}

	resp.Colors = make([]ColorOption, len(domain.Colors))
	for i, c := range domain.Colors {
		resp.Colors[i] = ColorOption{
			ID:       c.ID,
			Name:     c.Name,
			Hex:      c.Hex,
			Image:    image,
			Selected: c.ID == s.Selection.ColorID,
		}
	}

	resp.Sizes = make([]SizeOption, len(domain.Sizes))
	for i, size := range domain.Sizes {
		resp.Sizes[i] = SizeOption{
			Size:      size,
			Available: domain.SizeAvailable(s.Selection.ColorID, size),
			Selected:  size == s.Selection.Size,
		}
	}

	return resp
}
