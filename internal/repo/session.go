package repo

import (
	"context"
	"time"

	"github.com/Shreyas-k-p/SCANV2-sub000/internal/domain"
)

type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	GetByToken(ctx context.Context, token string) (*domain.Session, error)
	Delete(ctx context.Context, token string) error
}

// ManagerLockRepository is the server-side advisory lock behind the
// one-active-manager invariant. The lock is a single record holding the
// staff id, the session token it backs and a wall-clock expiry, acquired
// and renewed atomically so the guarantee holds across devices.
type ManagerLockRepository interface {
	// Acquire takes or re-takes the lock for staffID, rebinding it to
	// token. It fails with domain.ErrManagerActive when a different
	// staff id holds an unexpired lock.
	Acquire(ctx context.Context, staffID, token string, ttl time.Duration) error
	// Release frees the lock only if the (staffID, token) pair still
	// holds it. A stale token from an older session of the same staff
	// id must not drop the lock backing the newer session.
	Release(ctx context.Context, staffID, token string) error
	Holder(ctx context.Context) (string, error)
}
