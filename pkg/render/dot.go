package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/parkerchace/MusicTheory-sub000/pkg/menu"
	"github.com/parkerchace/MusicTheory-sub000/pkg/radial"
)

// Options configures DOT output.
type Options struct {
	// Detailed adds the tier label and voice-leading grade under each name.
	Detailed bool

	// Scale converts layout units to points. Zero means 1.
	Scale float64
}

// ToDOT converts a menu to a Graphviz graph with pinned positions. Layout
// coordinates have y pointing down; DOT has y pointing up, so y is negated.
func ToDOT(m menu.Menu, opts Options) string {
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  splines=false;\n")
	buf.WriteString("  outputorder=edgesfirst;\n")
	buf.WriteString("  node [shape=circle, style=filled, fixedsize=true, fontname=\"Helvetica\", fontsize=11, penwidth=1.5];\n")
	buf.WriteString("  edge [color=\"#b0b0b0\", penwidth=1];\n")
	buf.WriteString("\n")

	fmt.Fprintf(&buf, "  %q [label=%q, pos=\"0,0!\", width=%.2f, fillcolor=\"#222222\", fontcolor=white, fontsize=14];\n",
		menu.CenterID, m.Center.Name, inches(nodeSize*1.2*scale))

	for _, n := range m.Nodes {
		attrs := nodeAttrs(n, opts.Detailed, scale)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range m.Edges {
		style := ""
		if n, ok := m.Node(e.To); ok && n.Kind != radial.KindCandidate {
			style = " [style=dashed]"
		}
		fmt.Fprintf(&buf, "  %q -- %q%s;\n", e.From, e.To, style)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n radial.PositionedNode, detailed bool, scale float64) []string {
	label := n.FullName
	if n.Kind != radial.KindCandidate {
		label = n.Label
	}
	if detailed {
		label += "\n" + n.TierLabel
		if n.Grade != "" {
			label += "\n" + string(n.Grade)
		}
	}

	attrs := []string{
		fmt.Sprintf("label=%q", label),
		fmt.Sprintf("pos=\"%.2f,%.2f!\"", n.X*scale, -n.Y*scale),
		fmt.Sprintf("width=%.2f", inches(nodeSize*scale)),
		fmt.Sprintf("fillcolor=%q", n.Color),
		fmt.Sprintf("tooltip=%q", tooltip(n)),
	}
	switch n.Kind {
	case radial.KindCluster:
		attrs = append(attrs, "style=\"filled,dashed\"", "shape=doublecircle")
	case radial.KindMore:
		attrs = append(attrs, "style=\"filled,dotted\"", "fillcolor=\"#eeeeee\"")
	}
	return attrs
}

func tooltip(n radial.PositionedNode) string {
	if len(n.Members) == 0 {
		return fmt.Sprintf("%s (%s, %s)", n.FullName, n.Family, n.TierLabel)
	}
	names := make([]string, len(n.Members))
	for i, m := range n.Members {
		names[i] = m.FullName
	}
	return strings.Join(names, ", ")
}

// nodeSize matches the default layout node diameter.
const nodeSize = 56.0

func inches(points float64) float64 { return points / 72 }
