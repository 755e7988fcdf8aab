package memory

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/mrops-br/storefront-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

func newTestRepository() *SessionRepository {
	return NewSessionRepository(noop.NewTracerProvider().Tracer("test"), slog.New(slog.NewJSONHandler(io.Discard, nil)))
}

func TestSessionRepository_CreateFindDelete(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository()
	session := domain.NewSession(nil, domain.DefaultShippingFee, nil)

	require.NoError(t, repo.Create(ctx, session))
	assert.Equal(t, 1, repo.Count(ctx))

	found, err := repo.FindByID(ctx, session.ID)
	require.NoError(t, err)
	assert.Same(t, session, found)

	require.NoError(t, repo.Delete(ctx, session.ID))
	assert.Zero(t, repo.Count(ctx))

	_, err = repo.FindByID(ctx, session.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, session.ID), domain.ErrSessionNotFound)
}

func TestSessionRepository_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s := domain.NewSession(nil, domain.DefaultShippingFee, nil)
			_ = repo.Create(ctx, s)
			_, _ = repo.FindByID(ctx, s.ID)
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, repo.Count(ctx))
}
