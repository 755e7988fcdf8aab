package domain

// Rating is the aggregate review score reported by the catalog
type Rating struct {
	Rate  float64
	Count int
}

// Product represents a catalog product. Products are read-only; they are
// sourced from the remote catalog and never mutated locally.
type Product struct {
	ID          int
	Title       string
	Price       float64
	Image       string
	Category    string
	Description string
	Rating      Rating
}

// InStock reports whether the product card offers add-to-cart.
// The remote catalog carries no stock data, so every product is in stock.
func (p *Product) InStock() bool {
	return true
}

// Stars returns the number of filled stars out of five for the rating
func (r Rating) Stars() int {
	stars := int(r.Rate)
	if stars < 0 {
		return 0
	}
	if stars > 5 {
		return 5
	}
	return stars
}
