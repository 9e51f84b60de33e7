package session

import (
	"context"
	"time"
)

// Turn is one exchange half in a chat session.
type Turn struct {
	Role      string    `json:"role"` // "user" or "assistant"
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Store keeps per-session conversation turns for the lifetime of the session
// only. Entries expire on their own; nothing here is durable by design.
type Store interface {
	Append(ctx context.Context, sessionID string, turns ...Turn) error
	History(ctx context.Context, sessionID string) ([]Turn, error)
	Clear(ctx context.Context, sessionID string) error
}
