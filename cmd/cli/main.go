package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vk/tilegen/internal/app"
	"github.com/vk/tilegen/internal/cli"
	"github.com/vk/tilegen/internal/fabricerr"
	"github.com/vk/tilegen/internal/hcl"
)

// main is the entrypoint for the tilegen application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	// The real main function handles errors and exit codes.
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		if subject := fabricerr.Subject(err); subject != "" {
			fmt.Fprintf(os.Stderr, "offending item: %s\n", subject)
		}
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(outW io.Writer, args []string) error {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	loader := hcl.NewLoader()
	tilegenApp, err := app.NewApp(outW, appConfig, loader)
	if err != nil {
		return err
	}

	_, err = tilegenApp.Run(context.Background())
	return err
}
