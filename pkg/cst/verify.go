package cst

import (
	"fmt"
	"strings"
)

// Verify checks the structural invariants of a tree: leaves carry a token,
// interior nodes have children, every child span lies inside its parent's
// span, and siblings are in source order without overlapping.
func Verify(n *Node) error {
	if n == nil {
		return fmt.Errorf("cst: nil node")
	}
	if n.IsLeaf() {
		if len(n.Children) > 0 {
			return fmt.Errorf("cst: token leaf at offset %d has children", n.Span.Start.Offset)
		}
		return nil
	}
	if len(n.Children) == 0 {
		return fmt.Errorf("cst: %s node at offset %d has no children", n.Rule, n.Span.Start.Offset)
	}
	prevEnd := n.Span.Start.Offset
	for i, c := range n.Children {
		if !n.Span.Covers(c.Span) {
			return fmt.Errorf("cst: %s child %d (%s) [%d,%d) escapes parent [%d,%d)",
				n.Rule, i, c.Rule, c.Span.Start.Offset, c.Span.End.Offset,
				n.Span.Start.Offset, n.Span.End.Offset)
		}
		if c.Span.Start.Offset < prevEnd {
			return fmt.Errorf("cst: %s child %d (%s) at offset %d overlaps its predecessor",
				n.Rule, i, c.Rule, c.Span.Start.Offset)
		}
		prevEnd = c.Span.End.Offset
		if err := Verify(c); err != nil {
			return err
		}
	}
	return nil
}

// Dump renders the tree as an indented outline, one node per line.
func Dump(n *Node) string {
	var sb strings.Builder
	dump(&sb, n, 0)
	return sb.String()
}

func dump(sb *strings.Builder, n *Node, depth int) {
	if n == nil {
		return
	}
	sb.WriteString(strings.Repeat("  ", depth))
	if n.Label != "" {
		sb.WriteString(n.Label)
		sb.WriteString(": ")
	}
	if n.IsLeaf() {
		fmt.Fprintf(sb, "%s %s\n", n.Token.Type, n.Token.Raw)
		return
	}
	fmt.Fprintf(sb, "%s [%d,%d)\n", n.Rule, n.Span.Start.Offset, n.Span.End.Offset)
	for _, c := range n.Children {
		dump(sb, c, depth+1)
	}
}
