package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/app"
	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/cli"
	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/hcl_adapter"
	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/localsession"
)

// main is the entrypoint for the buildorder application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(outW, logW io.Writer, args []string) error {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	loader := hcl_adapter.NewLoader()
	buildApp := app.NewApp(outW, logW, appConfig, loader, &localsession.SessionFactory{})
	return buildApp.Run(context.Background())
}
