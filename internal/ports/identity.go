package ports

import (
	"context"

	"ritmo/internal/domain"
)

// Identity resolves the current user. A nil user with a nil error means
// no one is signed in; mutating operations gate on that rather than
// treating it as a failure.
type Identity interface {
	// CurrentUser returns the signed-in user, or nil when anonymous
	CurrentUser(ctx context.Context) (*domain.User, error)

	// Subscribe registers an auth-state-changed observer and returns an
	// unsubscribe func. The observer receives nil on sign-out.
	Subscribe(fn func(*domain.User)) func()
}
