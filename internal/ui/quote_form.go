package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"ritmo/internal/domain"
	"ritmo/internal/logging"
	"ritmo/internal/services"
)

// QuoteFormResult contains the result of the quote dialog
type QuoteFormResult struct {
	Cancelled bool
	Error     error
	Quote     *domain.Quote
}

// QuoteForm is a Bubble Tea component for adding a quote
type QuoteForm struct {
	Completed bool

	quoteService *services.QuoteService
	content      string
	form         *huh.Form
	result       QuoteFormResult
}

// NewQuoteForm creates the quote dialog
func NewQuoteForm(quoteService *services.QuoteService) *QuoteForm {
	qf := &QuoteForm{quoteService: quoteService}

	qf.form = huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("New quote").
				Description(fmt.Sprintf("Up to %d characters", domain.MaxQuoteLength)).
				Value(&qf.content).
				CharLimit(domain.MaxQuoteLength).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("quote is required")
					}
					return nil
				}),
		),
	)
	return qf
}

func (qf *QuoteForm) Init() tea.Cmd {
	return qf.form.Init()
}

func (qf *QuoteForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.String() == "esc" || keyMsg.String() == "ctrl+c" {
			qf.result.Cancelled = true
			qf.Completed = true
			return qf, nil
		}
	}

	form, cmd := qf.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		qf.form = f
	}

	if qf.form.State == huh.StateCompleted {
		qf.Completed = true
		created, err := qf.quoteService.Create(context.Background(), qf.content)
		if err != nil {
			logging.Logger.Error("Failed to save quote", "error", err)
			qf.result.Error = err
		} else {
			qf.result.Quote = created
		}
		return qf, nil
	}

	return qf, cmd
}

func (qf *QuoteForm) View() string {
	if qf.form != nil {
		return qf.form.View()
	}
	return ""
}

// Result returns the form result
func (qf *QuoteForm) Result() QuoteFormResult {
	return qf.result
}
