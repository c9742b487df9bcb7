package cmd

import (
	"fmt"

	"ritmo/internal/config"
	"ritmo/internal/logging"
	"ritmo/internal/server"
)

// ServeCmd serves the TUI over SSH
type ServeCmd struct {
	Host string `help:"Host to bind the SSH server to" default:"localhost"`
	Port string `help:"Port to bind the SSH server to" default:"23234"`
}

// Run starts the SSH server
func (s *ServeCmd) Run(cli *CLI) error {
	logging.Logger.Info("Starting SSH server", "host", s.Host, "port", s.Port)

	srv, err := server.NewServer(s.Host, s.Port, config.GetDBPath(), cli.settings)
	if err != nil {
		return fmt.Errorf("failed to create SSH server: %w", err)
	}

	return srv.Start()
}
