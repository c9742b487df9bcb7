package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"ritmo/internal/domain"
	"ritmo/internal/logging"
)

// QuotesCmd manages motivational quotes
type QuotesCmd struct {
	Add  QuotesAddCmd  `cmd:"add" help:"Add a new quote"`
	Del  QuotesDelCmd  `cmd:"del" help:"Delete a quote"`
	List QuotesListCmd `cmd:"list" help:"List your quotes" default:"1"`
	Set  QuotesSetCmd  `cmd:"set" help:"Replace a quote's text"`
}

// QuotesSetCmd replaces a quote's text
type QuotesSetCmd struct {
	ID      string `arg:"" help:"ID of the quote to update"`
	Content string `arg:"" help:"New quote text"`
}

// Run executes the set command
func (q *QuotesSetCmd) Run(cli *CLI) error {
	quote, err := cli.Container.QuoteService.Update(context.Background(), q.ID, q.Content)
	if err != nil {
		if errors.Is(err, domain.ErrSignInRequired) {
			return fmt.Errorf("quotes need a profile: run 'ritmo auth register'")
		}
		logging.Logger.Error("Failed to update quote", "quote", q.ID, "error", err)
		return fmt.Errorf("failed to update quote: %w", err)
	}

	fmt.Printf("Quote updated (%s)\n", quote.ID)
	return nil
}

// QuotesAddCmd adds a new quote
type QuotesAddCmd struct {
	Content string `arg:"" help:"Quote text"`
}

// Run executes the add command
func (q *QuotesAddCmd) Run(cli *CLI) error {
	quote, err := cli.Container.QuoteService.Create(context.Background(), q.Content)
	if err != nil {
		if errors.Is(err, domain.ErrSignInRequired) {
			return fmt.Errorf("quotes need a profile: run 'ritmo auth register' first")
		}
		logging.Logger.Error("Failed to add quote", "error", err)
		return fmt.Errorf("failed to add quote: %w", err)
	}

	fmt.Printf("Quote added (%s)\n", quote.ID)
	return nil
}

// QuotesListCmd lists the signed-in user's quotes
type QuotesListCmd struct{}

// Run executes the list command
func (q *QuotesListCmd) Run(cli *CLI) error {
	quotes, err := cli.Container.QuoteService.List(context.Background())
	if err != nil {
		if errors.Is(err, domain.ErrSignInRequired) {
			return fmt.Errorf("quotes need a profile: run 'ritmo auth register' first")
		}
		return fmt.Errorf("failed to list quotes: %w", err)
	}

	if len(quotes) == 0 {
		fmt.Println("No quotes found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tQUOTE")
	for _, quote := range quotes {
		fmt.Fprintf(w, "%s\t%s\n", quote.ID, quote.Content)
	}
	return w.Flush()
}

// QuotesDelCmd deletes a quote
type QuotesDelCmd struct {
	ID string `arg:"" help:"ID of the quote to delete"`
}

// Run executes the del command
func (q *QuotesDelCmd) Run(cli *CLI) error {
	if err := cli.Container.QuoteService.Delete(context.Background(), q.ID); err != nil {
		if errors.Is(err, domain.ErrSignInRequired) {
			return fmt.Errorf("quotes need a profile: run 'ritmo auth register' first")
		}
		logging.Logger.Error("Failed to delete quote", "quote", q.ID, "error", err)
		return fmt.Errorf("failed to delete quote: %w", err)
	}

	fmt.Println("Quote deleted")
	return nil
}
