package mef

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/araliago/internal/tree"
)

func buildTree(t *testing.T, opts tree.Options, lines ...string) *tree.FaultTree {
	t.Helper()
	ft, err := tree.Parse(context.Background(), lines, opts)
	require.NoError(t, err)
	return ft
}

func render(t *testing.T, ft *tree.FaultTree, nest int) string {
	t.Helper()
	var sb strings.Builder
	require.NoError(t, Write(&sb, ft, nest))
	return sb.String()
}

func TestWriteMinimalDocument(t *testing.T) {
	ft := buildTree(t, tree.Options{}, "FT", "g1 := a")

	want := `<?xml version="1.0"?>
<opsa-mef>
<define-fault-tree name="FT">
<define-gate name="g1">
<event name="a"/>
</define-gate>
</define-fault-tree>
<model-data>
</model-data>
</opsa-mef>
`
	assert.Equal(t, want, render(t, ft, 0))
}

func TestWriteArgumentGrouping(t *testing.T) {
	ft := buildTree(t, tree.Options{},
		"FT",
		"top := ~h1 & e1 & u1 & g1",
		"g1 := e2 | e3",
		"p(e1) = 0.1",
		"p(e2) = 0.2",
		"p(e3) = 0.3",
		"s(h1) = true",
	)

	want := `<?xml version="1.0"?>
<opsa-mef>
<define-fault-tree name="FT">
<define-gate name="top">
<and>
<not>
<house-event name="h1"/>
</not>
<basic-event name="e1"/>
<event name="u1"/>
<gate name="g1"/>
</and>
</define-gate>
<define-gate name="g1">
<or>
<basic-event name="e2"/>
<basic-event name="e3"/>
</or>
</define-gate>
</define-fault-tree>
<model-data>
<define-basic-event name="e1">
<float value="0.1"/>
</define-basic-event>
<define-basic-event name="e2">
<float value="0.2"/>
</define-basic-event>
<define-basic-event name="e3">
<float value="0.3"/>
</define-basic-event>
<define-house-event name="h1">
<constant value="true"/>
</define-house-event>
</model-data>
</opsa-mef>
`
	assert.Equal(t, want, render(t, ft, 0))
}

func TestWriteOperatorAttributes(t *testing.T) {
	ft := buildTree(t, tree.Options{},
		"FT",
		"top := ga | gc",
		"ga := @(2, [e1, e2, e3])",
		"gc := #(1, 2, [e1, e2, e3])",
		"p(e1) = 0.1",
		"p(e2) = 0.2",
		"p(e3) = 0.3",
	)

	doc := render(t, ft, 0)
	assert.Contains(t, doc, "<atleast min=\"2\">\n")
	assert.Contains(t, doc, "</atleast>\n")
	assert.Contains(t, doc, "<cardinality min=\"1\" max=\"2\">\n")
	assert.Contains(t, doc, "</cardinality>\n")
}

func TestWriteTopologicalOrder(t *testing.T) {
	ft := buildTree(t, tree.Options{},
		"FT",
		"top := g1 | g2",
		"g1 := g3 & e1",
		"g2 := g3 & e2",
		"g3 := e1 | e2",
		"p(e1) = 0.1",
		"p(e2) = 0.2",
	)

	doc := render(t, ft, 0)
	pos := func(gate string) int {
		i := strings.Index(doc, "<define-gate name=\""+gate+"\">")
		require.GreaterOrEqual(t, i, 0, "gate %s missing from document", gate)
		return i
	}
	assert.Less(t, pos("top"), pos("g1"))
	assert.Less(t, pos("top"), pos("g2"))
	assert.Less(t, pos("g1"), pos("g3"))
	assert.Less(t, pos("g2"), pos("g3"))
}

func TestWriteNesting(t *testing.T) {
	ft := buildTree(t, tree.Options{},
		"FT",
		"top := g1 | g2",
		"g1 := e1 & e2",
		"g2 := e1",
		"p(e1) = 0.1",
		"p(e2) = 0.2",
	)

	t.Run("zero keeps by-name references", func(t *testing.T) {
		doc := render(t, ft, 0)
		assert.Contains(t, doc, "<gate name=\"g1\"/>\n")
		assert.Contains(t, doc, "<gate name=\"g2\"/>\n")
	})

	t.Run("one level inlines child formulas", func(t *testing.T) {
		doc := render(t, ft, 1)
		assert.NotContains(t, doc, "<gate name=")
		assert.Contains(t, doc, `<define-gate name="top">
<or>
<and>
<basic-event name="e1"/>
<basic-event name="e2"/>
</and>
<basic-event name="e1"/>
</or>
</define-gate>
`)
		// Inlined gates keep their own top-level definitions.
		assert.Contains(t, doc, "<define-gate name=\"g1\">")
		assert.Contains(t, doc, "<define-gate name=\"g2\">")
	})
}

func TestWriteNestedComplementGate(t *testing.T) {
	ft := buildTree(t, tree.Options{},
		"FT",
		"top := ~g1 | e1",
		"g1 := e1 & e2",
		"p(e1) = 0.1",
		"p(e2) = 0.2",
	)

	doc := render(t, ft, 1)
	assert.Contains(t, doc, `<not>
<and>
<basic-event name="e1"/>
<basic-event name="e2"/>
</and>
</not>
`)
}

func TestWriteRejectsNegativeNesting(t *testing.T) {
	ft := buildTree(t, tree.Options{}, "FT", "g1 := a")
	err := Write(&strings.Builder{}, ft, -1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "negative nesting depth")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWritePropagatesWriterError(t *testing.T) {
	ft := buildTree(t, tree.Options{}, "FT", "g1 := a")
	err := Write(failingWriter{}, ft, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}
