package domain

import "github.com/go-faster/errors"

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrFetchFailed      = errors.New("catalog fetch failed")
	ErrSessionNotFound  = errors.New("session not found")
	ErrInvalidSelection = errors.New("please select color and size")
	ErrUnknownVariant   = errors.New("unknown color or size")
	ErrOutOfStock       = errors.New("selected variant is out of stock")
	ErrProductNotLoaded = errors.New("product is not loaded")
)
