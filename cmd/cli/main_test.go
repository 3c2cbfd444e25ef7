package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/araliago/internal/cli"
	"github.com/vk/araliago/internal/tree"
)

func TestRun(t *testing.T) {
	t.Run("no arguments prints usage and exits cleanly", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, run(&out, nil))
		assert.Contains(t, out.String(), "Usage:")
	})

	t.Run("help exits cleanly", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, run(&out, []string{"-h"}))
	})

	t.Run("flag errors surface as ExitError", func(t *testing.T) {
		err := run(&bytes.Buffer{}, []string{"--bogus"})
		var exitErr *cli.ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Equal(t, 2, exitErr.Code)
	})

	t.Run("converts an input file", func(t *testing.T) {
		dir := t.TempDir()
		input := filepath.Join(dir, "tree.txt")
		output := filepath.Join(dir, "tree.xml")
		require.NoError(t, os.WriteFile(input,
			[]byte("FT\ntop := e1 | e2\np(e1) = 0.1\np(e2) = 0.2\n"), 0o644))

		var out bytes.Buffer
		require.NoError(t, run(&out, []string{"--out", output, "--log-level", "error", input}))

		doc, err := os.ReadFile(output)
		require.NoError(t, err)
		assert.Contains(t, string(doc), "<define-fault-tree name=\"FT\">")
	})

	t.Run("missing input reports a path error", func(t *testing.T) {
		err := run(&bytes.Buffer{}, []string{"--log-level", "error", filepath.Join(t.TempDir(), "absent.txt")})
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestDescribe(t *testing.T) {
	t.Run("recognition", func(t *testing.T) {
		err := &tree.ParseError{Kind: tree.KindRecognition, Err: errors.New("Cannot interpret the line.")}
		assert.Equal(t, "Parsing Error:\nCannot interpret the line.", describe(err))
	})

	t.Run("format", func(t *testing.T) {
		err := &tree.ParseError{Kind: tree.KindFormat, Err: errors.New("The fault tree name is not given.")}
		assert.Equal(t, "Format Error:\nThe fault tree name is not given.", describe(err))
	})

	t.Run("structural", func(t *testing.T) {
		err := &tree.ParseError{Kind: tree.KindStructural, Err: errors.New("Redefinition of an event: g1")}
		assert.Equal(t, "Error in the fault tree:\nRedefinition of an event: g1", describe(err))
	})

	t.Run("io", func(t *testing.T) {
		_, err := os.Open(filepath.Join(t.TempDir(), "absent.txt"))
		require.Error(t, err)
		assert.Contains(t, describe(err), "IO Error:\n")
	})

	t.Run("other errors pass through", func(t *testing.T) {
		assert.Equal(t, "boom", describe(errors.New("boom")))
	})
}
