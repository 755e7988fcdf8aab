package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Session is one shopper's browsing session. It owns the cart, the cart
// view over it, the product view and the pending notices.
type Session struct {
	ID        string
	CreatedAt time.Time
	Cart      *CartStore
	CartView  *CartView
	View      *ProductView
	Notices   *NoticeFeed
}

// NewSession creates a session with an empty cart. The notifier returned by
// wrap receives every notice raised for the session; pass nil to deliver
// straight to the session's feed.
func NewSession(catalog CatalogClient, shipping decimal.Decimal, wrap func(*NoticeFeed) Notifier) *Session {
	feed := NewNoticeFeed()

	var notifier Notifier = feed
	if wrap != nil {
		notifier = wrap(feed)
	}

	cart := NewCartStore()

	return &Session{
		ID:        uuid.New().String(),
		CreatedAt: time.Now(),
		Cart:      cart,
		CartView:  NewCartView(cart, shipping),
		View:      NewProductView(catalog, notifier),
		Notices:   feed,
	}
}

// Notifier returns the sink the session's product view raises notices on
func (s *Session) Notifier() Notifier {
	return s.View.notifier
}

// End clears the cart and detaches the cart view
func (s *Session) End() {
	s.Cart.Clear()
	s.CartView.Close()
}
