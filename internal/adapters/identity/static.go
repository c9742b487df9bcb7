package identity

import (
	"context"

	"ritmo/internal/domain"
	"ritmo/internal/ports"
)

// StaticIdentity is an always-signed-in identity for contexts where the
// transport already authenticated the user, such as SSH sessions.
type StaticIdentity struct {
	user domain.User
}

var _ ports.Identity = (*StaticIdentity)(nil)

// NewStaticIdentity creates a StaticIdentity for the given user
func NewStaticIdentity(user domain.User) *StaticIdentity {
	return &StaticIdentity{user: user}
}

// CurrentUser implements ports.Identity
func (s *StaticIdentity) CurrentUser(ctx context.Context) (*domain.User, error) {
	u := s.user
	return &u, nil
}

// Subscribe implements ports.Identity. Static identities never change,
// so the observer is never invoked.
func (s *StaticIdentity) Subscribe(fn func(*domain.User)) func() {
	return func() {}
}
