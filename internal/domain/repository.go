package domain

import "context"

// CatalogClient defines the contract for the remote product catalog
type CatalogClient interface {
	GetProduct(ctx context.Context, id int) (*Product, error)
	ListByCategory(ctx context.Context, category string) ([]*Product, error)
	ListProducts(ctx context.Context) ([]*Product, error)
}

// SessionRepository defines the contract for session storage
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	FindByID(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) int
}
