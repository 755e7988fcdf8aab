package notify

import (
	"context"
	"log/slog"

	"github.com/mrops-br/storefront-api/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// LoggingNotifier logs and counts every notice before handing it to the
// next sink
type LoggingNotifier struct {
	next    domain.Notifier
	logger  *slog.Logger
	notices metric.Int64Counter
}

// NewLoggingNotifier wraps next
func NewLoggingNotifier(next domain.Notifier, logger *slog.Logger, meter metric.Meter) *LoggingNotifier {
	notices, _ := meter.Int64Counter(
		"storefront.notices",
		metric.WithDescription("Total number of user-facing notices raised"),
	)

	return &LoggingNotifier{
		next:    next,
		logger:  logger,
		notices: notices,
	}
}

// Wrapper returns a func suitable for domain.NewSession
func Wrapper(logger *slog.Logger, meter metric.Meter) func(*domain.NoticeFeed) domain.Notifier {
	return func(feed *domain.NoticeFeed) domain.Notifier {
		return NewLoggingNotifier(feed, logger, meter)
	}
}

// Notify implements domain.Notifier
func (n *LoggingNotifier) Notify(ctx context.Context, notice domain.Notice) {
	level := slog.LevelInfo
	if notice.Kind == domain.NoticeError {
		level = slog.LevelWarn
	}
	n.logger.Log(ctx, level, "Notice raised",
		slog.String("notice.kind", string(notice.Kind)),
		slog.String("notice.message", notice.Message),
	)

	if n.notices != nil {
		n.notices.Add(ctx, 1, metric.WithAttributes(
			attribute.String("kind", string(notice.Kind)),
		))
	}

	n.next.Notify(ctx, notice)
}
