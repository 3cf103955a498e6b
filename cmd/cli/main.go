package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/vk/idfgo/internal/app"
	"github.com/vk/idfgo/internal/cli"
	"github.com/vk/idfgo/internal/config"
	"github.com/vk/idfgo/internal/hcl"
	"github.com/vk/idfgo/internal/yamlcfg"
)

// main is the entrypoint for the idfgo application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// The real main function handles errors and exit codes.
	if err := run(ctx, os.Stdout, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			stop()
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(ctx context.Context, outW io.Writer, args []string) error {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	idfApp, err := app.NewApp(outW, appConfig, newFileLoader())
	if err != nil {
		return &cli.ExitError{Code: 2, Message: fmt.Sprintf("A critical startup error occurred: %v", err)}
	}
	return idfApp.Run(ctx)
}

// fileLoader sends each configuration path to the loader of its format,
// in order, and merges the results. Directories are read as HCL.
type fileLoader struct {
	hcl  config.Loader
	yaml config.Loader
}

func newFileLoader() *fileLoader {
	return &fileLoader{hcl: hcl.NewLoader(), yaml: yamlcfg.NewLoader()}
}

// Load implements config.Loader.
func (l *fileLoader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	model := &config.Model{}
	for _, path := range paths {
		loader := l.hcl
		if yamlcfg.IsYAML(path) {
			loader = l.yaml
		}
		part, err := loader.Load(ctx, path)
		if err != nil {
			return nil, err
		}
		model.Merge(part)
	}
	return model, nil
}
