package ports

import (
	"context"

	"ritmo/internal/domain"
)

// QuoteRepository reads and mutates quotes, scoped by owner
type QuoteRepository interface {
	ListForOwner(ctx context.Context, ownerUserID string) ([]domain.Quote, error)
	InsertQuote(ctx context.Context, quote domain.Quote) (*domain.Quote, error)
	UpdateQuote(ctx context.Context, quote domain.Quote) (*domain.Quote, error)
	DeleteQuote(ctx context.Context, id string) error
}
