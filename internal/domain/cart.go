package domain

import "github.com/shopspring/decimal"

// DefaultShippingFee is the flat surcharge applied to a non-empty cart
var DefaultShippingFee = decimal.NewFromInt(30)

// LineKey identifies a cart line: one product in one variant
type LineKey struct {
	ProductID     int
	SelectedColor string
	SelectedSize  string
}

// LineItem is one entry in the cart
type LineItem struct {
	ProductID     int
	Title         string
	Price         float64
	Image         string
	Qty           int
	SelectedColor string
	SelectedSize  string
}

// Key returns the merge key of the line
func (i LineItem) Key() LineKey {
	return LineKey{
		ProductID:     i.ProductID,
		SelectedColor: i.SelectedColor,
		SelectedSize:  i.SelectedSize,
	}
}

// LineTotal returns price × qty
func (i LineItem) LineTotal() decimal.Decimal {
	return decimal.NewFromFloat(i.Price).Mul(decimal.NewFromInt(int64(i.Qty)))
}

// NewLineItem builds a line item for a product in the given variant.
// An empty selection produces a variant-less line.
func NewLineItem(p *Product, sel Selection) LineItem {
	return LineItem{
		ProductID:     p.ID,
		Title:         p.Title,
		Price:         p.Price,
		Image:         p.Image,
		SelectedColor: sel.ColorID,
		SelectedSize:  sel.Size,
	}
}

// Summary holds the derived cart totals
type Summary struct {
	TotalItems int
	Subtotal   decimal.Decimal
	Shipping   decimal.Decimal
	Total      decimal.Decimal
	Empty      bool
}

// Summarize derives the cart totals from a snapshot.
// The subtotal is rounded to whole currency units before shipping is added.
func Summarize(items []LineItem, shipping decimal.Decimal) Summary {
	if len(items) == 0 {
		return Summary{
			Subtotal: decimal.Zero,
			Shipping: decimal.Zero,
			Total:    decimal.Zero,
			Empty:    true,
		}
	}

	totalItems := 0
	subtotal := decimal.Zero
	for _, item := range items {
		totalItems += item.Qty
		subtotal = subtotal.Add(item.LineTotal())
	}

	return Summary{
		TotalItems: totalItems,
		Subtotal:   subtotal,
		Shipping:   shipping,
		Total:      subtotal.Round(0).Add(shipping),
	}
}
