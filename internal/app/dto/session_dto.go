package dto

import (
	"time"

	"github.com/mrops-br/storefront-api/internal/domain"
)

// SessionResponse represents a shopper session
type SessionResponse struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// NoticeResponse represents a user-facing notice
type NoticeResponse struct {
	ID      string    `json:"id"`
	Kind    string    `json:"kind"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// ToSessionResponse converts a domain Session
func ToSessionResponse(s *domain.Session) *SessionResponse {
	return &SessionResponse{
		ID:        s.ID,
		CreatedAt: s.CreatedAt,
	}
}

// ToNoticeResponseList converts drained notices
func ToNoticeResponseList(notices []domain.Notice) []*NoticeResponse {
	responses := make([]*NoticeResponse, len(notices))
	for i, n := range notices {
		responses[i] = &NoticeResponse{
			ID:      n.ID,
			Kind:    string(n.Kind),
			Message: n.Message,
			At:      n.At,
		}
	}
	return responses
}
