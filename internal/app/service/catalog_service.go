package service

import (
	"context"
	"log/slog"

	"github.com/mrops-br/storefront-api/internal/app/dto"
	"github.com/mrops-br/storefront-api/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// CatalogService handles product listing use cases
type CatalogService struct {
	catalog           domain.CatalogClient
	tracer            trace.Tracer
	logger            *slog.Logger
	catalogOperations metric.Int64Counter
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	catalog domain.CatalogClient,
	tracer trace.Tracer,
	meter metric.Meter,
	logger *slog.Logger,
) *CatalogService {
	catalogOperations, _ := meter.Int64Counter(
		"catalog.operations",
		metric.WithDescription("Total number of catalog operations"),
	)

	return &CatalogService{
		catalog:           catalog,
		tracer:            tracer,
		logger:            logger,
		catalogOperations: catalogOperations,
	}
}

// GetProduct retrieves a single product
func (s *CatalogService) GetProduct(ctx context.Context, id int) (*dto.ProductResponse, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.GetProduct")
	defer span.End()

	span.SetAttributes(attribute.Int("product.id", id))

	product, err := s.catalog.GetProduct(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to get product")
		record(ctx, s.catalogOperations, "read", resultOf(err))
		return nil, err
	}

	record(ctx, s.catalogOperations, "read", "success")

	s.logger.DebugContext(ctx, "Product retrieved successfully",
		slog.Int("product_id", id),
	)

	span.SetStatus(codes.Ok, "Product retrieved successfully")
	return dto.ToProductResponse(product), nil
}

// ListProducts retrieves the product cards, optionally for one category
func (s *CatalogService) ListProducts(ctx context.Context, category string) ([]*dto.ProductResponse, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.ListProducts")
	defer span.End()

	var (
		products []*domain.Product
		err      error
	)
	if category != "" {
		span.SetAttributes(attribute.String("product.category", category))
		products, err = s.catalog.ListByCategory(ctx, category)
	} else {
		products, err = s.catalog.ListProducts(ctx)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to list products")
		record(ctx, s.catalogOperations, "list", resultOf(err))
		return nil, err
	}

	span.SetAttributes(attribute.Int("product.count", len(products)))
	record(ctx, s.catalogOperations, "list", "success")

	s.logger.InfoContext(ctx, "Products listed successfully",
		slog.Int("count", len(products)),
		slog.String("category", category),
	)

	span.SetStatus(codes.Ok, "Products listed successfully")
	return dto.ToProductResponseList(products), nil
}
