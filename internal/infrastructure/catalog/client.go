package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-faster/errors"
	"github.com/mrops-br/storefront-api/internal/domain"
	"github.com/mrops-br/storefront-api/internal/infrastructure/config"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Client is an HTTP implementation of domain.CatalogClient for the
// fakestoreapi-compatible product catalog
type Client struct {
	baseURL string
	http    *http.Client
	tracer  trace.Tracer
	logger  *slog.Logger
}

// NewClient creates a catalog client. Outbound requests are traced through
// otelhttp so the catalog shows up as a child span of the incoming request.
func NewClient(cfg *config.CatalogConfig, tracer trace.Tracer, logger *slog.Logger) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		tracer: tracer,
		logger: logger,
	}
}

type ratingPayload struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

type productPayload struct {
	ID          int           `json:"id"`
	Title       string        `json:"title"`
	Price       float64       `json:"price"`
	Description string        `json:"description"`
	Category    string        `json:"category"`
	Image       string        `json:"image"`
	Rating      ratingPayload `json:"rating"`
}

func (p *productPayload) toDomain() *domain.Product {
	return &domain.Product{
		ID:          p.ID,
		Title:       p.Title,
		Price:       p.Price,
		Image:       p.Image,
		Category:    p.Category,
		Description: p.Description,
		Rating: domain.Rating{
			Rate:  p.Rating.Rate,
			Count: p.Rating.Count,
		},
	}
}

// GetProduct fetches GET /products/{id}. The catalog answers unknown ids with
// 200 and an empty body, which is reported as domain.ErrProductNotFound.
func (c *Client) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	ctx, span := c.tracer.Start(ctx, "CatalogClient.GetProduct")
	defer span.End()

	span.SetAttributes(attribute.Int("product.id", id))

	var payload *productPayload
	if err := c.getJSON(ctx, fmt.Sprintf("/products/%d", id), &payload); err != nil {
		return nil, c.fail(ctx, span, err)
	}
	if payload == nil {
		return nil, c.fail(ctx, span, domain.ErrProductNotFound)
	}

	span.SetStatus(codes.Ok, "Product fetched")
	return payload.toDomain(), nil
}

// ListByCategory fetches GET /products/category/{category}
func (c *Client) ListByCategory(ctx context.Context, category string) ([]*domain.Product, error) {
	ctx, span := c.tracer.Start(ctx, "CatalogClient.ListByCategory")
	defer span.End()

	span.SetAttributes(attribute.String("product.category", category))

	products, err := c.list(ctx, "/products/category/"+url.PathEscape(category))
	if err != nil {
		return nil, c.fail(ctx, span, err)
	}

	span.SetAttributes(attribute.Int("product.count", len(products)))
	span.SetStatus(codes.Ok, "Category fetched")
	return products, nil
}

// ListProducts fetches GET /products
func (c *Client) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	ctx, span := c.tracer.Start(ctx, "CatalogClient.ListProducts")
	defer span.End()

	products, err := c.list(ctx, "/products")
	if err != nil {
		return nil, c.fail(ctx, span, err)
	}

	span.SetAttributes(attribute.Int("product.count", len(products)))
	span.SetStatus(codes.Ok, "Products fetched")
	return products, nil
}

func (c *Client) list(ctx context.Context, path string) ([]*domain.Product, error) {
	var payload []productPayload
	if err := c.getJSON(ctx, path, &payload); err != nil {
		// A listing has no not-found case of its own.
		if errors.Is(err, domain.ErrProductNotFound) {
			return nil, errors.Wrapf(domain.ErrFetchFailed, "GET %s: status 404", path)
		}
		return nil, err
	}

	products := make([]*domain.Product, len(payload))
	for i := range payload {
		products[i] = payload[i].toDomain()
	}
	return products, nil
}

// getJSON decodes the response body into target. An empty body leaves
// target untouched. A 404 maps to domain.ErrProductNotFound and every other
// failure to domain.ErrFetchFailed.
func (c *Client) getJSON(ctx context.Context, path string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fetchFailed(err, "build request %s", path)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fetchFailed(err, "GET %s", path)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return errors.Wrapf(domain.ErrProductNotFound, "GET %s", path)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.Wrapf(domain.ErrFetchFailed, "GET %s: status %d", path, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fetchFailed(err, "read %s", path)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, target); err != nil {
		return fetchFailed(err, "decode %s", path)
	}
	return nil
}

// fetchFailed marks err as domain.ErrFetchFailed and keeps it in the chain
func fetchFailed(err error, format string, args ...any) error {
	return errors.Join(domain.ErrFetchFailed, errors.Wrapf(err, format, args...))
}

func (c *Client) fail(ctx context.Context, span trace.Span, err error) error {
	span.RecordError(err)
	if errors.Is(err, domain.ErrProductNotFound) {
		span.SetStatus(codes.Error, "Product not found")
		c.logger.WarnContext(ctx, "Catalog product not found", slog.String("error", err.Error()))
		return err
	}
	span.SetStatus(codes.Error, "Catalog fetch failed")
	c.logger.ErrorContext(ctx, "Catalog fetch failed", slog.String("error", err.Error()))
	return err
}
