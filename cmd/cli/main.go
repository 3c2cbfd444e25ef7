package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/vk/araliago/internal/app"
	"github.com/vk/araliago/internal/cli"
	"github.com/vk/araliago/internal/tree"
)

// main is the entrypoint for the araliago converter.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(os.Stdout, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, describe(err))
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

	converter := app.NewApp(outW, appConfig)
	return converter.Run(context.Background())
}

// describe prefixes an error with its failure class for the final report.
func describe(err error) string {
	var perr *tree.ParseError
	if errors.As(err, &perr) {
		switch perr.Kind {
		case tree.KindRecognition:
			return "Parsing Error:\n" + perr.Error()
		case tree.KindFormat:
			return "Format Error:\n" + perr.Error()
		default:
			return "Error in the fault tree:\n" + perr.Error()
		}
	}
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return "IO Error:\n" + err.Error()
	}
	return err.Error()
}
