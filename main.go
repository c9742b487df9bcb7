package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"ritmo/internal/cmd"
	"ritmo/version"
)

func main() {
	var cli cmd.CLI

	settings, err := cmd.LoadSettingsEarly()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	cli.SetSettings(settings)

	ctx := kong.Parse(&cli,
		kong.Name("ritmo"),
		kong.Description(version.Tagline),
		kong.UsageOnError(),
		kong.Vars{"version": version.Info()},
	)

	err = ctx.Run(&cli)
	if closeErr := cli.Close(); closeErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to release resources: %v\n", closeErr)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
