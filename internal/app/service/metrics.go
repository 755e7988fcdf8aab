package service

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/mrops-br/storefront-api/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

func record(ctx context.Context, counter metric.Int64Counter, operation, result string) {
	if counter == nil {
		return
	}
	counter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("result", result),
		),
	)
}

// resultOf names the outcome of a failed operation for metric attributes
func resultOf(err error) string {
	switch {
	case errors.Is(err, domain.ErrProductNotFound), errors.Is(err, domain.ErrSessionNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrFetchFailed):
		return "fetch_failed"
	case errors.Is(err, domain.ErrInvalidSelection), errors.Is(err, domain.ErrUnknownVariant):
		return "invalid_selection"
	case errors.Is(err, domain.ErrOutOfStock):
		return "out_of_stock"
	case errors.Is(err, domain.ErrProductNotLoaded):
		return "not_loaded"
	default:
		return "failure"
	}
}
