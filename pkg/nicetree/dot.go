package nicetree

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"
)

// bag fill colours per type, chosen to survive both light and dark canvases.
var dotFill = map[BagType]string{
	Leaf:            "#f0f0f0",
	IntroduceVertex: "#d8ecd4",
	Forget:          "#f9e0c7",
	Join:            "#cfe2f3",
}

// ToDOT returns a Graphviz DOT representation of the bag tree.
//
// Each bag becomes one node labelled with its number, type, vertex set and
// introduced edges, filled by type: leaves grey, introduce bags green,
// forget bags orange, join bags blue. Edges run from parents to children.
//
// The DOT output can be rendered with Graphviz tools (dot, neato, etc.) or
// programmatically with [RenderSVG].
func ToDOT(t *Tree) string {
	var buf bytes.Buffer
	buf.WriteString("digraph nicetree {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontname=\"SF Mono, Menlo, monospace\", fontsize=12, shape=box, style=\"filled,rounded\"];\n")
	buf.WriteString("  edge [arrowhead=none];\n\n")

	for _, b := range t.Bags() {
		fmt.Fprintf(&buf, "  b%d [label=%q, fillcolor=%q];\n", b.ID, dotLabel(b), dotFill[b.Type])
	}
	buf.WriteString("\n")
	for _, b := range t.Bags() {
		if b.HasParent() {
			fmt.Fprintf(&buf, "  b%d -> b%d;\n", b.Parent, b.ID)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func dotLabel(b *Bag) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d %s\n{", b.ID, b.Type)
	for i, v := range b.Vertices {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, "%d", v)
	}
	sb.WriteByte('}')
	for i, e := range b.Edges {
		if i == 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(e.String())
	}
	return sb.String()
}

// RenderSVG renders the bag tree as an SVG image.
//
// RenderSVG generates a DOT representation via [ToDOT], then uses Graphviz
// to render it. The returned bytes are a complete SVG document suitable for
// embedding in HTML or saving to a file.
//
// RenderSVG requires the Graphviz library (github.com/goccy/go-graphviz).
// Errors are returned if Graphviz cannot initialize, the DOT is malformed,
// or rendering fails, each wrapped with context for errors.Is/errors.As.
func RenderSVG(ctx context.Context, t *Tree) ([]byte, error) {
	return render(ctx, t, graphviz.SVG)
}

// RenderPNG renders the bag tree as a PNG image. See [RenderSVG].
func RenderPNG(ctx context.Context, t *Tree) ([]byte, error) {
	return render(ctx, t, graphviz.PNG)
}

func render(ctx context.Context, t *Tree, format graphviz.Format) ([]byte, error) {
	dot := ToDOT(t)

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
