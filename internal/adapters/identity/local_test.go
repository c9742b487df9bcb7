package identity

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ritmo/internal/domain"
)

func newTestIdentity(t *testing.T) *LocalIdentity {
	t.Helper()
	dir := t.TempDir()
	return NewLocalIdentity(
		filepath.Join(dir, "profile.json"),
		filepath.Join(dir, "session.token"),
	)
}

func TestCurrentUserAnonymousByDefault(t *testing.T) {
	ident := newTestIdentity(t)

	user, err := ident.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestRegisterSignsIn(t *testing.T) {
	ident := newTestIdentity(t)

	user, err := ident.Register("maria", "Maria", "1234")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "maria", user.Name)

	current, err := ident.CurrentUser(context.Background())
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, user.ID, current.ID)
}

func TestRegisterTwiceFails(t *testing.T) {
	ident := newTestIdentity(t)

	_, err := ident.Register("maria", "Maria", "1234")
	require.NoError(t, err)

	_, err = ident.Register("maria", "Maria", "1234")
	assert.ErrorIs(t, err, ErrProfileExists)
}

func TestLoginVerifiesPasscode(t *testing.T) {
	ident := newTestIdentity(t)

	_, err := ident.Register("maria", "Maria", "1234")
	require.NoError(t, err)
	require.NoError(t, ident.Logout())

	_, err = ident.Login("wrong")
	assert.ErrorIs(t, err, ErrInvalidPasscode)

	user, err := ident.Login("1234")
	require.NoError(t, err)
	require.NotNil(t, user)
}

func TestLoginWithoutProfile(t *testing.T) {
	ident := newTestIdentity(t)

	_, err := ident.Login("1234")
	assert.ErrorIs(t, err, ErrNoProfile)
}

func TestLogoutReturnsToAnonymous(t *testing.T) {
	ident := newTestIdentity(t)

	_, err := ident.Register("maria", "Maria", "1234")
	require.NoError(t, err)

	require.NoError(t, ident.Logout())

	user, err := ident.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Nil(t, user)

	// Logout is idempotent
	require.NoError(t, ident.Logout())
}

func TestSubscribeNotifiesOnAuthChange(t *testing.T) {
	ident := newTestIdentity(t)

	var events []*domain.User
	unsubscribe := ident.Subscribe(func(u *domain.User) {
		events = append(events, u)
	})

	user, err := ident.Register("maria", "Maria", "1234")
	require.NoError(t, err)
	require.NoError(t, ident.Logout())

	require.Len(t, events, 2)
	require.NotNil(t, events[0])
	assert.Equal(t, user.ID, events[0].ID)
	assert.Nil(t, events[1])

	unsubscribe()
	_, err = ident.Login("1234")
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestStaticIdentity(t *testing.T) {
	ident := NewStaticIdentity(domain.User{ID: "ssh:carol", Name: "carol"})

	user, err := ident.CurrentUser(context.Background())
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "ssh:carol", user.ID)
}
