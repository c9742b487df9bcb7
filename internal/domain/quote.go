package domain

import (
	"strings"
	"time"
)

// MaxQuoteLength caps quote content at 240 characters
const MaxQuoteLength = 240

// Quote is a journaled quote owned by a user (domain entity)
type Quote struct {
	ID          string
	Content     string
	OwnerUserID string
	CreatedAt   time.Time
}

// Validate checks quote fields before any persistence call
func (q Quote) Validate() error {
	trimmed := strings.TrimSpace(q.Content)
	if trimmed == "" {
		return ErrEmptyQuote
	}
	if len([]rune(trimmed)) > MaxQuoteLength {
		return ErrQuoteTooLong
	}
	return nil
}

// ClampContent trims and truncates content to the maximum length
func ClampContent(content string) string {
	trimmed := strings.TrimSpace(content)
	runes := []rune(trimmed)
	if len(runes) > MaxQuoteLength {
		return string(runes[:MaxQuoteLength])
	}
	return trimmed
}
