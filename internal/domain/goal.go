package domain

import (
	"strings"
	"time"
)

// Goal groups tasks under a longer-term objective (domain entity)
type Goal struct {
	ID          string
	Name        string
	OwnerUserID *string
	CreatedAt   time.Time
}

// Validate checks goal fields before any persistence call
func (g Goal) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return ErrEmptyGoalName
	}
	return nil
}
