package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
)

var (
	// Version is set via ldflags when building.
	Version = "dev"

	cli struct {
		Globals

		Version kong.VersionFlag `help:"Show version information."`
		Commands
	}
)

func main() {
	ctx := kong.Parse(&cli,
		kong.Vars{"version": Version},
		kong.Name("ledgerctl"),
		kong.Description("Operational commands for the ledger core."),
		kong.UsageOnError(),
		kong.Bind(&cli.Globals),
	)

	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
