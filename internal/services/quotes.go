package services

import (
	"context"
	"math/rand"

	"github.com/google/uuid"

	"ritmo/internal/domain"
	"ritmo/internal/logging"
	"ritmo/internal/ports"
)

// QuoteService manages the signed-in user's motivational quotes. Quotes
// are owner-scoped, so every operation requires a current user.
type QuoteService struct {
	repo     ports.QuoteRepository
	identity ports.Identity
}

// NewQuoteService creates a new QuoteService
func NewQuoteService(repo ports.QuoteRepository, identity ports.Identity) *QuoteService {
	return &QuoteService{repo: repo, identity: identity}
}

// List returns the current user's quotes, newest first
func (s *QuoteService) List(ctx context.Context) ([]domain.Quote, error) {
	user, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.ListForOwner(ctx, user.ID)
}

// Random returns one of the current user's quotes, or nil when there are
// none. Anonymous users get nil rather than an error so the timer view
// can simply omit the quote line.
func (s *QuoteService) Random(ctx context.Context) (*domain.Quote, error) {
	user, err := s.identity.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	quotes, err := s.repo.ListForOwner(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if len(quotes) == 0 {
		return nil, nil
	}
	quote := quotes[rand.Intn(len(quotes))]
	return &quote, nil
}

// Create validates and persists a new quote for the current user
func (s *QuoteService) Create(ctx context.Context, content string) (*domain.Quote, error) {
	user, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}

	quote := domain.Quote{
		ID:          uuid.NewString(),
		Content:     domain.ClampContent(content),
		OwnerUserID: user.ID,
	}
	if err := quote.Validate(); err != nil {
		return nil, err
	}

	created, err := s.repo.InsertQuote(ctx, quote)
	if err != nil {
		return nil, err
	}
	logging.Logger.Info("Quote created", "quote_id", created.ID)
	return created, nil
}

// Update validates and persists new quote content
func (s *QuoteService) Update(ctx context.Context, id, content string) (*domain.Quote, error) {
	user, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}

	quote := domain.Quote{
		ID:          id,
		Content:     domain.ClampContent(content),
		OwnerUserID: user.ID,
	}
	if err := quote.Validate(); err != nil {
		return nil, err
	}
	return s.repo.UpdateQuote(ctx, quote)
}

// Delete removes a quote
func (s *QuoteService) Delete(ctx context.Context, id string) error {
	if _, err := s.owner(ctx); err != nil {
		return err
	}
	if err := s.repo.DeleteQuote(ctx, id); err != nil {
		return err
	}
	logging.Logger.Info("Quote deleted", "quote_id", id)
	return nil
}

func (s *QuoteService) owner(ctx context.Context) (*domain.User, error) {
	user, err := s.identity.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrSignInRequired
	}
	return user, nil
}
