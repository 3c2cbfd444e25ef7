package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/araliago/internal/ctxlog"
	"github.com/vk/araliago/internal/mef"
	"github.com/vk/araliago/internal/tree"
)

// Run performs one conversion: load the input lines, build and validate the
// fault tree, render the MEF document, and write it out. The document is
// assembled in memory first, so a failed conversion never leaves a partial
// output file behind.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	lines, err := readLines(a.config.InputPath)
	if err != nil {
		return err
	}
	a.logger.Debug("Input loaded.", "path", a.config.InputPath, "lines", len(lines))

	ft, err := tree.Parse(ctx, lines, tree.Options{MultiTop: a.config.MultiTop})
	if err != nil {
		return err
	}
	for _, warning := range ft.Warnings {
		a.logger.Warn(warning)
	}

	var buf bytes.Buffer
	if err := mef.Write(&buf, ft, a.config.Nest); err != nil {
		return err
	}

	outPath := a.config.OutPath
	if outPath == "" {
		outPath = defaultOutPath(a.config.InputPath)
	}
	if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		return err
	}
	a.logger.Info("Conversion finished.",
		"input", a.config.InputPath,
		"output", outPath,
		"gates", len(ft.Gates),
		"warnings", len(ft.Warnings))
	return nil
}

// defaultOutPath is the input file's base name with the XML extension,
// placed in the working directory.
func defaultOutPath(inputPath string) string {
	base := filepath.Base(inputPath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".xml"
}
