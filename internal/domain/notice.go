package domain

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// NoticeKind classifies a user-facing notice
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// MaxFeedNotices bounds the number of undrained notices kept per session
const MaxFeedNotices = 50

// Notice is a fire-and-forget message for the surrounding UI
type Notice struct {
	ID      string
	Kind    NoticeKind
	Message string
	At      time.Time
}

// NewNotice creates a notice stamped with the current time
func NewNotice(kind NoticeKind, message string) Notice {
	return Notice{
		ID:      uuid.New().String(),
		Kind:    kind,
		Message: message,
		At:      time.Now(),
	}
}

// Notifier is the notification sink
type Notifier interface {
	Notify(ctx context.Context, n Notice)
}

// NoticeFeed buffers notices until the UI drains them. When full, the oldest
// notice is dropped.
type NoticeFeed struct {
	mu      sync.Mutex
	notices []Notice
}

// NewNoticeFeed creates an empty feed
func NewNoticeFeed() *NoticeFeed {
	return &NoticeFeed{}
}

// Notify appends a notice to the feed
func (f *NoticeFeed) Notify(_ context.Context, n Notice) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.notices = append(f.notices, n)
	if over := len(f.notices) - MaxFeedNotices; over > 0 {
		f.notices = f.notices[over:]
	}
}

// Drain returns all pending notices in arrival order and empties the feed
func (f *NoticeFeed) Drain() []Notice {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := f.notices
	f.notices = nil
	if out == nil {
		return []Notice{}
	}
	return out
}

// Len returns the number of pending notices
func (f *NoticeFeed) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.notices)
}
