package output

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/list"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Table renders a table: box drawing in text mode, a pipe table in markdown
// mode. An empty rows slice prints "(0 rows)".
func (r *Renderer) Table(header []string, rows [][]string) {
	if len(rows) == 0 {
		r.Println("(0 rows)")
		return
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(toRow(header))
	for _, row := range rows {
		t.AppendRow(toRow(row))
	}

	if r.EffectiveMode() == ModeMarkdown {
		r.Println(t.RenderMarkdown())
		return
	}
	r.Println(t.Render())
}

func toRow(cells []string) table.Row {
	row := make(table.Row, len(cells))
	for i, c := range cells {
		row[i] = c
	}
	return row
}

// TreeNode is one entry of a rendered tree.
type TreeNode struct {
	Label    string
	Children []*TreeNode
}

// Add appends a child with the given label and returns it.
func (n *TreeNode) Add(format string, a ...any) *TreeNode {
	child := &TreeNode{Label: fmt.Sprintf(format, a...)}
	n.Children = append(n.Children, child)
	return child
}

// Tree renders root and its descendants as a connected list, or as a nested
// markdown list in markdown mode.
func (r *Renderer) Tree(root *TreeNode) {
	if root == nil {
		return
	}
	l := list.NewWriter()
	l.SetStyle(list.StyleConnectedLight)
	appendTree(l, root)

	if r.EffectiveMode() == ModeMarkdown {
		r.Println(l.RenderMarkdown())
		return
	}
	r.Println(l.Render())
}

func appendTree(l list.Writer, n *TreeNode) {
	l.AppendItem(n.Label)
	if len(n.Children) == 0 {
		return
	}
	l.Indent()
	for _, c := range n.Children {
		appendTree(l, c)
	}
	l.UnIndent()
}
