package identity

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"ritmo/internal/domain"
	"ritmo/internal/logging"
	"ritmo/internal/ports"
)

var (
	// ErrNoProfile is returned when no local profile has been registered
	ErrNoProfile = errors.New("no profile registered")

	// ErrProfileExists is returned when registering over an existing profile
	ErrProfileExists = errors.New("profile already exists")

	// ErrInvalidPasscode is returned when the passcode does not match
	ErrInvalidPasscode = errors.New("invalid passcode")
)

const sessionTokenTTL = 30 * 24 * time.Hour

// profile is the on-disk account record. The signing secret is generated
// once per install, so tokens do not survive a profile reset.
type profile struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	DisplayName  string `json:"display_name"`
	PasscodeHash string `json:"passcode_hash"`
	Secret       string `json:"secret"`
}

// LocalIdentity implements ports.Identity against a local profile file.
// Sessions are JWTs signed with the profile's install secret and stored
// alongside it, so sign-in survives process restarts until the token
// expires or the user signs out.
type LocalIdentity struct {
	profilePath string
	tokenPath   string

	mu          sync.Mutex
	nextSubID   int
	subscribers map[int]func(*domain.User)
}

var _ ports.Identity = (*LocalIdentity)(nil)

// NewLocalIdentity creates a LocalIdentity using the given file paths
func NewLocalIdentity(profilePath, tokenPath string) *LocalIdentity {
	return &LocalIdentity{
		profilePath: profilePath,
		tokenPath:   tokenPath,
		subscribers: make(map[int]func(*domain.User)),
	}
}

// CurrentUser implements ports.Identity. A missing profile, missing
// token, or stale token all resolve to anonymous rather than an error.
func (l *LocalIdentity) CurrentUser(ctx context.Context) (*domain.User, error) {
	p, err := l.loadProfile()
	if err != nil {
		if errors.Is(err, ErrNoProfile) {
			return nil, nil
		}
		return nil, err
	}

	raw, err := os.ReadFile(l.tokenPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read session token: %w", err)
	}

	token, err := jwt.Parse(string(raw), func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		secret, err := base64.StdEncoding.DecodeString(p.Secret)
		if err != nil {
			return nil, fmt.Errorf("corrupt profile secret: %w", err)
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		logging.Logger.Debug("Session token rejected", "error", err)
		return nil, nil
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || subject != p.ID {
		return nil, nil
	}

	return &domain.User{ID: p.ID, Name: p.Name, DisplayName: p.DisplayName}, nil
}

// Subscribe implements ports.Identity
func (l *LocalIdentity) Subscribe(fn func(*domain.User)) func() {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := l.nextSubID
	l.nextSubID++
	l.subscribers[id] = fn

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.subscribers, id)
	}
}

// Register creates the local profile and signs the first session
func (l *LocalIdentity) Register(name, displayName, passcode string) (*domain.User, error) {
	if _, err := l.loadProfile(); err == nil {
		return nil, ErrProfileExists
	} else if !errors.Is(err, ErrNoProfile) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(passcode), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash passcode: %w", err)
	}

	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("failed to generate secret: %w", err)
	}

	p := profile{
		ID:           uuid.NewString(),
		Name:         name,
		DisplayName:  displayName,
		PasscodeHash: string(hash),
		Secret:       base64.StdEncoding.EncodeToString(secret),
	}
	if err := l.saveProfile(p); err != nil {
		return nil, err
	}

	user, err := l.signIn(p)
	if err != nil {
		return nil, err
	}

	logging.Logger.Info("Profile registered", "user_id", p.ID, "name", p.Name)
	return user, nil
}

// Login verifies the passcode and signs a fresh session token
func (l *LocalIdentity) Login(passcode string) (*domain.User, error) {
	p, err := l.loadProfile()
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(p.PasscodeHash), []byte(passcode)); err != nil {
		return nil, ErrInvalidPasscode
	}

	return l.signIn(p)
}

// Logout removes the session token and notifies subscribers
func (l *LocalIdentity) Logout() error {
	if err := os.Remove(l.tokenPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session token: %w", err)
	}
	l.notify(nil)
	return nil
}

func (l *LocalIdentity) signIn(p profile) (*domain.User, error) {
	secret, err := base64.StdEncoding.DecodeString(p.Secret)
	if err != nil {
		return nil, fmt.Errorf("corrupt profile secret: %w", err)
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   p.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(sessionTokenTTL)),
	})
	signed, err := token.SignedString(secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(l.tokenPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(l.tokenPath, []byte(signed), 0600); err != nil {
		return nil, fmt.Errorf("failed to write session token: %w", err)
	}

	user := &domain.User{ID: p.ID, Name: p.Name, DisplayName: p.DisplayName}
	l.notify(user)
	return user, nil
}

func (l *LocalIdentity) notify(user *domain.User) {
	l.mu.Lock()
	fns := make([]func(*domain.User), 0, len(l.subscribers))
	for _, fn := range l.subscribers {
		fns = append(fns, fn)
	}
	l.mu.Unlock()

	for _, fn := range fns {
		fn(user)
	}
}

func (l *LocalIdentity) loadProfile() (profile, error) {
	raw, err := os.ReadFile(l.profilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return profile{}, ErrNoProfile
		}
		return profile{}, fmt.Errorf("failed to read profile: %w", err)
	}

	var p profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return profile{}, fmt.Errorf("failed to parse profile: %w", err)
	}
	return p, nil
}

func (l *LocalIdentity) saveProfile(p profile) error {
	if err := os.MkdirAll(filepath.Dir(l.profilePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	raw, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	if err := os.WriteFile(l.profilePath, raw, 0600); err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}
	return nil
}
