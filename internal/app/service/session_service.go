package service

import (
	"context"
	"log/slog"

	"github.com/mrops-br/storefront-api/internal/app/dto"
	"github.com/mrops-br/storefront-api/internal/domain"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// SessionService handles shopper session lifecycle
type SessionService struct {
	repo           domain.SessionRepository
	catalog        domain.CatalogClient
	shipping       decimal.Decimal
	wrapNotifier   func(*domain.NoticeFeed) domain.Notifier
	tracer         trace.Tracer
	logger         *slog.Logger
	activeSessions metric.Int64UpDownCounter
	cartItems      metric.Int64UpDownCounter
}

// NewSessionService creates a new session service. wrapNotifier decorates
// each session's notice feed and may be nil.
func NewSessionService(
	repo domain.SessionRepository,
	catalog domain.CatalogClient,
	shipping decimal.Decimal,
	wrapNotifier func(*domain.NoticeFeed) domain.Notifier,
	tracer trace.Tracer,
	meter metric.Meter,
	logger *slog.Logger,
) *SessionService {
	activeSessions, _ := meter.Int64UpDownCounter(
		"storefront.sessions.active",
		metric.WithDescription("Number of live shopper sessions"),
	)

	cartItems, _ := meter.Int64UpDownCounter(
		"cart.items.active",
		metric.WithDescription("Units currently held in carts across all sessions"),
	)

	return &SessionService{
		repo:           repo,
		catalog:        catalog,
		shipping:       shipping,
		wrapNotifier:   wrapNotifier,
		tracer:         tracer,
		logger:         logger,
		activeSessions: activeSessions,
		cartItems:      cartItems,
	}
}

// CreateSession starts a session with an empty cart
func (s *SessionService) CreateSession(ctx context.Context) (*dto.SessionResponse, error) {
	ctx, span := s.tracer.Start(ctx, "SessionService.CreateSession")
	defer span.End()

	session := domain.NewSession(s.catalog, s.shipping, s.wrapNotifier)
	span.SetAttributes(attribute.String("session.id", session.ID))

	// Deliveries are serialized by the store, so held needs no lock.
	held := 0
	session.Cart.Subscribe(func(items []domain.LineItem) {
		total := domain.Summarize(items, s.shipping).TotalItems
		if s.cartItems != nil {
			s.cartItems.Add(context.Background(), int64(total-held))
		}
		held = total
	})

	if err := s.repo.Create(ctx, session); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to store session")
		s.logger.ErrorContext(ctx, "Failed to store session",
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	if s.activeSessions != nil {
		s.activeSessions.Add(ctx, 1)
	}

	s.logger.InfoContext(ctx, "Session created",
		slog.String("session_id", session.ID),
	)

	span.SetStatus(codes.Ok, "Session created")
	return dto.ToSessionResponse(session), nil
}

// EndSession clears the session's cart and discards the session
func (s *SessionService) EndSession(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "SessionService.EndSession")
	defer span.End()

	span.SetAttributes(attribute.String("session.id", id))

	session, err := s.repo.FindByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Session not found")
		return err
	}

	session.End()

	if err := s.repo.Delete(ctx, id); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to delete session")
		return err
	}

	if s.activeSessions != nil {
		s.activeSessions.Add(ctx, -1)
	}

	s.logger.InfoContext(ctx, "Session ended",
		slog.String("session_id", id),
	)

	span.SetStatus(codes.Ok, "Session ended")
	return nil
}

// DrainNotices returns and clears the session's pending notices
func (s *SessionService) DrainNotices(ctx context.Context, id string) ([]*dto.NoticeResponse, error) {
	ctx, span := s.tracer.Start(ctx, "SessionService.DrainNotices")
	defer span.End()

	session, err := s.repo.FindByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Session not found")
		return nil, err
	}

	notices := session.Notices.Drain()
	span.SetAttributes(attribute.Int("notice.count", len(notices)))
	span.SetStatus(codes.Ok, "Notices drained")
	return dto.ToNoticeResponseList(notices), nil
}
