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

const msgAddedToCart = "Added to cart!"

// CartService handles cart page use cases
type CartService struct {
	repo           domain.SessionRepository
	tracer         trace.Tracer
	logger         *slog.Logger
	cartOperations metric.Int64Counter
}

// NewCartService creates a new cart service
func NewCartService(
	repo domain.SessionRepository,
	tracer trace.Tracer,
	meter metric.Meter,
	logger *slog.Logger,
) *CartService {
	cartOperations, _ := meter.Int64Counter(
		"cart.operations",
		metric.WithDescription("Total number of cart operations"),
	)

	return &CartService{
		repo:           repo,
		tracer:         tracer,
		logger:         logger,
		cartOperations: cartOperations,
	}
}

// GetCart renders the session's cart
func (s *CartService) GetCart(ctx context.Context, sessionID string) (*dto.CartResponse, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.GetCart")
	defer span.End()

	session, err := s.session(ctx, span, sessionID, "read")
	if err != nil {
		return nil, err
	}

	record(ctx, s.cartOperations, "read", "success")
	span.SetStatus(codes.Ok, "Cart rendered")
	return render(session), nil
}

// AddItem adds a line item as dispatched by a product card
func (s *CartService) AddItem(ctx context.Context, sessionID string, req *dto.LineItemRequest) (*dto.CartResponse, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.AddItem")
	defer span.End()

	span.SetAttributes(
		attribute.Int("product.id", req.ProductID),
		attribute.Int("cart.qty", req.Qty),
	)

	session, err := s.session(ctx, span, sessionID, "add")
	if err != nil {
		return nil, err
	}

	session.Cart.Add(req.ToLineItem(), req.Qty)
	session.Notifier().Notify(ctx, domain.NewNotice(domain.NoticeSuccess, msgAddedToCart))

	record(ctx, s.cartOperations, "add", "success")

	s.logger.InfoContext(ctx, "Item added to cart",
		slog.Int("product_id", req.ProductID),
		slog.Int("qty", req.Qty),
	)

	span.SetStatus(codes.Ok, "Item added")
	return render(session), nil
}

// Increment adds one unit to an existing line
func (s *CartService) Increment(ctx context.Context, sessionID string, key domain.LineKey) (*dto.CartResponse, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.Increment")
	defer span.End()

	span.SetAttributes(attribute.Int("product.id", key.ProductID))

	session, err := s.session(ctx, span, sessionID, "increment")
	if err != nil {
		return nil, err
	}

	session.CartView.Increment(key)
	record(ctx, s.cartOperations, "increment", "success")

	span.SetStatus(codes.Ok, "Line incremented")
	return render(session), nil
}

// Decrement removes one unit from a line, deleting the line at zero
func (s *CartService) Decrement(ctx context.Context, sessionID string, key domain.LineKey) (*dto.CartResponse, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.Decrement")
	defer span.End()

	span.SetAttributes(attribute.Int("product.id", key.ProductID))

	session, err := s.session(ctx, span, sessionID, "decrement")
	if err != nil {
		return nil, err
	}

	session.CartView.Decrement(key)
	record(ctx, s.cartOperations, "decrement", "success")

	span.SetStatus(codes.Ok, "Line decremented")
	return render(session), nil
}

// Clear empties the cart after checkout completes
func (s *CartService) Clear(ctx context.Context, sessionID string) (*dto.CartResponse, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.Clear")
	defer span.End()

	session, err := s.session(ctx, span, sessionID, "clear")
	if err != nil {
		return nil, err
	}

	session.Cart.Clear()
	record(ctx, s.cartOperations, "clear", "success")

	s.logger.InfoContext(ctx, "Cart cleared")

	span.SetStatus(codes.Ok, "Cart cleared")
	return render(session), nil
}

func (s *CartService) session(ctx context.Context, span trace.Span, id, operation string) (*domain.Session, error) {
	span.SetAttributes(attribute.String("session.id", id))

	session, err := s.repo.FindByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Session not found")
		record(ctx, s.cartOperations, operation, resultOf(err))
		return nil, err
	}
	return session, nil
}

func render(session *domain.Session) *dto.CartResponse {
	r := session.CartView.Render()
	return dto.ToCartResponse(r.Items, r.Summary)
}
