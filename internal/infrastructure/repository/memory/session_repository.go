package memory

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mrops-br/storefront-api/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// SessionRepository is an in-memory implementation of domain.SessionRepository.
// Sessions live for the lifetime of the process.
type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
	tracer   trace.Tracer
	logger   *slog.Logger
}

// NewSessionRepository creates a new in-memory session repository
func NewSessionRepository(tracer trace.Tracer, logger *slog.Logger) *SessionRepository {
	return &SessionRepository{
		sessions: make(map[string]*domain.Session),
		tracer:   tracer,
		logger:   logger,
	}
}

// Create stores a new session
func (r *SessionRepository) Create(ctx context.Context, session *domain.Session) error {
	ctx, span := r.tracer.Start(ctx, "SessionRepository.Create")
	defer span.End()

	span.SetAttributes(attribute.String("session.id", session.ID))

	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[session.ID] = session

	r.logger.DebugContext(ctx, "Session stored in repository",
		slog.String("session_id", session.ID),
	)

	span.SetStatus(codes.Ok, "Session stored")
	return nil
}

// FindByID retrieves a session by ID
func (r *SessionRepository) FindByID(ctx context.Context, id string) (*domain.Session, error) {
	ctx, span := r.tracer.Start(ctx, "SessionRepository.FindByID")
	defer span.End()

	span.SetAttributes(attribute.String("session.id", id))

	r.mu.RLock()
	defer r.mu.RUnlock()

	session, exists := r.sessions[id]
	if !exists {
		span.RecordError(domain.ErrSessionNotFound)
		span.SetStatus(codes.Error, "Session not found")
		r.logger.WarnContext(ctx, "Session not found",
			slog.String("session_id", id),
		)
		return nil, domain.ErrSessionNotFound
	}

	span.SetStatus(codes.Ok, "Session found")
	return session, nil
}

// Delete removes a session. Deleting an unknown session is an error.
func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	ctx, span := r.tracer.Start(ctx, "SessionRepository.Delete")
	defer span.End()

	span.SetAttributes(attribute.String("session.id", id))

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[id]; !exists {
		span.RecordError(domain.ErrSessionNotFound)
		span.SetStatus(codes.Error, "Session not found")
		return domain.ErrSessionNotFound
	}
	delete(r.sessions, id)

	r.logger.DebugContext(ctx, "Session removed from repository",
		slog.String("session_id", id),
	)

	span.SetStatus(codes.Ok, "Session removed")
	return nil
}

// Count returns the number of live sessions
func (r *SessionRepository) Count(_ context.Context) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
