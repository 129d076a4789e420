package ports

import (
	"context"
	"errors"
	"time"

	"github.com/fixware/console/internal/core/domain"
	"github.com/fixware/console/internal/core/paging"
)

// ErrSessionNotFound is returned by a SessionStore when no session exists
// for the given ID (never created, expired, or torn down after a 401).
var ErrSessionNotFound = errors.New("session not found")

// Session is the durable client-side state of one authenticated actor: the
// bearer token issued by the backend, the cached profile, and the order
// listing's pagination bookkeeping. It is an explicit object threaded
// through every layer; nothing reads it from ambient package state.
type Session struct {
	ID        string       `json:"id"`
	Token     string       `json:"token"`
	User      domain.User  `json:"user"`
	Pager     paging.Pager `json:"pager"`
	CreatedAt time.Time    `json:"createdAt"`
}

// SessionStore persists sessions across console restarts.
// Lifecycle: Create on login, Save on bookkeeping updates, Delete on logout
// or on the first upstream 401.
type SessionStore interface {
	Create(ctx context.Context, sess *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, sess *Session) error
	Delete(ctx context.Context, id string) error
}
