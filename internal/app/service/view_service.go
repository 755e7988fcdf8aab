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

// ProductViewService handles product page use cases
type ProductViewService struct {
	repo           domain.SessionRepository
	tracer         trace.Tracer
	logger         *slog.Logger
	viewOperations metric.Int64Counter
}

// NewProductViewService creates a new product view service
func NewProductViewService(
	repo domain.SessionRepository,
	tracer trace.Tracer,
	meter metric.Meter,
	logger *slog.Logger,
) *ProductViewService {
	viewOperations, _ := meter.Int64Counter(
		"product_view.operations",
		metric.WithDescription("Total number of product view operations"),
	)

	return &ProductViewService{
		repo:           repo,
		tracer:         tracer,
		logger:         logger,
		viewOperations: viewOperations,
	}
}

// Navigate points the session's product view at productID. With wait set,
// the call also waits for the similar-products fetch to settle.
func (s *ProductViewService) Navigate(ctx context.Context, sessionID string, productID int, wait bool) (*dto.ProductViewResponse, error) {
	ctx, span := s.tracer.Start(ctx, "ProductViewService.Navigate")
	defer span.End()

	span.SetAttributes(attribute.Int("product.id", productID))

	session, err := s.session(ctx, span, sessionID, "navigate")
	if err != nil {
		return nil, err
	}

	snap, err := session.View.Navigate(ctx, productID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to load product")
		record(ctx, s.viewOperations, "navigate", resultOf(err))
		s.logger.WarnContext(ctx, "Product view failed to load",
			slog.Int("product_id", productID),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	if wait {
		session.View.Wait()
		snap = session.View.Snapshot()
	}

	record(ctx, s.viewOperations, "navigate", "success")

	span.SetAttributes(attribute.String("view.similar_state", string(snap.SimilarState)))
	span.SetStatus(codes.Ok, "Product loaded")
	return dto.ToProductViewResponse(snap), nil
}

// GetView returns the session's product view
func (s *ProductViewService) GetView(ctx context.Context, sessionID string) (*dto.ProductViewResponse, error) {
	ctx, span := s.tracer.Start(ctx, "ProductViewService.GetView")
	defer span.End()

	session, err := s.session(ctx, span, sessionID, "read")
	if err != nil {
		return nil, err
	}

	span.SetStatus(codes.Ok, "View rendered")
	return dto.ToProductViewResponse(session.View.Snapshot()), nil
}

// Select changes the color and/or size selection
func (s *ProductViewService) Select(ctx context.Context, sessionID string, req *dto.SelectionRequest) (*dto.ProductViewResponse, error) {
	ctx, span := s.tracer.Start(ctx, "ProductViewService.Select")
	defer span.End()

	session, err := s.session(ctx, span, sessionID, "select")
	if err != nil {
		return nil, err
	}

	if req.Color != nil {
		span.SetAttributes(attribute.String("variant.color", *req.Color))
	}
	if req.Size != nil {
		span.SetAttributes(attribute.String("variant.size", *req.Size))
	}

	snap, err := session.View.Select(req.Color, req.Size)
	if err != nil {
		return nil, s.fail(ctx, span, "select", err)
	}

	record(ctx, s.viewOperations, "select", "success")

	span.SetAttributes(attribute.Bool("variant.in_stock", snap.InStock))
	span.SetStatus(codes.Ok, "Selection changed")
	return dto.ToProductViewResponse(snap), nil
}

// IncrementQuantity steps the quantity up
func (s *ProductViewService) IncrementQuantity(ctx context.Context, sessionID string) (*dto.QuantityResponse, error) {
	return s.step(ctx, sessionID, "increment", (*domain.ProductView).IncrementQuantity)
}

// DecrementQuantity steps the quantity down, never below one
func (s *ProductViewService) DecrementQuantity(ctx context.Context, sessionID string) (*dto.QuantityResponse, error) {
	return s.step(ctx, sessionID, "decrement", (*domain.ProductView).DecrementQuantity)
}

func (s *ProductViewService) step(ctx context.Context, sessionID, op string, fn func(*domain.ProductView) (int, error)) (*dto.QuantityResponse, error) {
	ctx, span := s.tracer.Start(ctx, "ProductViewService.Quantity")
	defer span.End()

	span.SetAttributes(attribute.String("quantity.op", op))

	session, err := s.session(ctx, span, sessionID, "quantity")
	if err != nil {
		return nil, err
	}

	qty, err := fn(session.View)
	if err != nil {
		return nil, s.fail(ctx, span, "quantity", err)
	}

	record(ctx, s.viewOperations, "quantity", "success")
	span.SetStatus(codes.Ok, "Quantity changed")
	return &dto.QuantityResponse{Quantity: qty}, nil
}

// AddToCart adds the viewed product in the selected variant to the cart
func (s *ProductViewService) AddToCart(ctx context.Context, sessionID string) (*dto.CartResponse, error) {
	ctx, span := s.tracer.Start(ctx, "ProductViewService.AddToCart")
	defer span.End()

	session, err := s.session(ctx, span, sessionID, "add_to_cart")
	if err != nil {
		return nil, err
	}

	if _, err := session.View.AddToCart(ctx, session.Cart); err != nil {
		return nil, s.fail(ctx, span, "add_to_cart", err)
	}

	record(ctx, s.viewOperations, "add_to_cart", "success")

	s.logger.InfoContext(ctx, "Selected variant added to cart")

	span.SetStatus(codes.Ok, "Added to cart")
	return render(session), nil
}

func (s *ProductViewService) session(ctx context.Context, span trace.Span, id, operation string) (*domain.Session, error) {
	span.SetAttributes(attribute.String("session.id", id))

	session, err := s.repo.FindByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Session not found")
		record(ctx, s.viewOperations, operation, resultOf(err))
		return nil, err
	}
	return session, nil
}

func (s *ProductViewService) fail(ctx context.Context, span trace.Span, operation string, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	record(ctx, s.viewOperations, operation, resultOf(err))
	s.logger.InfoContext(ctx, "Product view action rejected",
		slog.String("operation", operation),
		slog.String("error", err.Error()),
	)
	return err
}
