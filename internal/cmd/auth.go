package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"ritmo/internal/adapters/identity"
	"ritmo/internal/logging"
)

// AuthCmd manages the local profile
type AuthCmd struct {
	Login    AuthLoginCmd    `cmd:"login" help:"Sign in with your passcode"`
	Logout   AuthLogoutCmd   `cmd:"logout" help:"Sign out of the current session"`
	Register AuthRegisterCmd `cmd:"register" help:"Create the local profile and sign in"`
	Whoami   AuthWhoamiCmd   `cmd:"whoami" help:"Show the signed-in user" default:"1"`
}

// AuthRegisterCmd creates the local profile
type AuthRegisterCmd struct {
	DisplayName string `help:"Display name shown in the TUI header" default:""`
	Name        string `arg:"" help:"Profile name"`
	Passcode    string `help:"Passcode (prompted when omitted)" default:""`
}

// Run executes the register command
func (a *AuthRegisterCmd) Run(cli *CLI) error {
	passcode := a.Passcode
	if passcode == "" {
		var err error
		passcode, err = promptPasscode("Choose a passcode")
		if err != nil {
			return err
		}
	}

	displayName := a.DisplayName
	if displayName == "" {
		displayName = a.Name
	}

	user, err := cli.Container.Identity.Register(a.Name, displayName, passcode)
	if err != nil {
		if errors.Is(err, identity.ErrProfileExists) {
			return fmt.Errorf("a profile already exists: use 'ritmo auth login'")
		}
		logging.Logger.Error("Failed to register profile", "error", err)
		return fmt.Errorf("failed to register profile: %w", err)
	}

	fmt.Printf("Welcome, %s. You are signed in.\n", user.DisplayName)
	return nil
}

// AuthLoginCmd signs in against the stored profile
type AuthLoginCmd struct {
	Passcode string `help:"Passcode (prompted when omitted)" default:""`
}

// Run executes the login command
func (a *AuthLoginCmd) Run(cli *CLI) error {
	passcode := a.Passcode
	if passcode == "" {
		var err error
		passcode, err = promptPasscode("Passcode")
		if err != nil {
			return err
		}
	}

	user, err := cli.Container.Identity.Login(passcode)
	if err != nil {
		if errors.Is(err, identity.ErrNoProfile) {
			return fmt.Errorf("no profile registered: use 'ritmo auth register'")
		}
		if errors.Is(err, identity.ErrInvalidPasscode) {
			return fmt.Errorf("invalid passcode")
		}
		logging.Logger.Error("Failed to log in", "error", err)
		return fmt.Errorf("failed to log in: %w", err)
	}

	fmt.Printf("Welcome back, %s.\n", user.DisplayName)
	return nil
}

// AuthLogoutCmd signs out
type AuthLogoutCmd struct{}

// Run executes the logout command
func (a *AuthLogoutCmd) Run(cli *CLI) error {
	if err := cli.Container.Identity.Logout(); err != nil {
		logging.Logger.Error("Failed to log out", "error", err)
		return fmt.Errorf("failed to log out: %w", err)
	}
	fmt.Println("Signed out")
	return nil
}

// AuthWhoamiCmd shows the signed-in user
type AuthWhoamiCmd struct{}

// Run executes the whoami command
func (a *AuthWhoamiCmd) Run(cli *CLI) error {
	user, err := cli.Container.Identity.CurrentUser(context.Background())
	if err != nil {
		return fmt.Errorf("failed to resolve current user: %w", err)
	}
	if user == nil {
		fmt.Println("anonymous")
		return nil
	}
	fmt.Printf("%s (%s)\n", user.DisplayName, user.Name)
	return nil
}

func promptPasscode(title string) (string, error) {
	var passcode string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title(title).
			EchoMode(huh.EchoModePassword).
			Validate(func(s string) error {
				if s == "" {
					return fmt.Errorf("passcode is required")
				}
				return nil
			}).
			Value(&passcode),
	))
	if err := form.Run(); err != nil {
		return "", fmt.Errorf("passcode entry cancelled: %w", err)
	}
	return passcode, nil
}
