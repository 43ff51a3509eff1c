// Package cst defines the concrete syntax tree produced by the grammar parser.
//
// The tree is generic: every node names the grammar production it came from
// (Rule) and the role it plays inside its parent (Label). Every consumed token
// is kept as a RuleToken leaf, so a node's span is exactly the range of the
// tokens below it and the tree reproduces the input token stream in order.
//
// The AST builder in pkg/builder turns the tree into pkg/core statements.
package cst

import (
	"strings"

	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// Node is a node of the concrete syntax tree.
type Node struct {
	Rule     Rule
	Label    string
	Token    token.Token // set for RuleToken leaves only
	Span     token.Span
	Children []*Node
}

// New creates an empty interior node for rule.
func New(rule Rule) *Node {
	return &Node{Rule: rule}
}

// Leaf creates a token leaf.
func Leaf(tok token.Token, label string) *Node {
	return &Node{Rule: RuleToken, Label: label, Token: tok, Span: tok.Span()}
}

// IsLeaf reports whether the node is a token leaf.
func (n *Node) IsLeaf() bool {
	return n != nil && n.Rule == RuleToken
}

// Add appends child under label and extends the node's span.
// A nil child is ignored.
func (n *Node) Add(label string, child *Node) *Node {
	if child == nil {
		return n
	}
	child.Label = label
	n.Children = append(n.Children, child)
	if len(n.Children) == 1 {
		n.Span = child.Span
	} else {
		n.Span.End = child.Span.End
	}
	return n
}

// AddToken appends a token leaf under label.
func (n *Node) AddToken(label string, tok token.Token) *Node {
	return n.Add(label, Leaf(tok, ""))
}

// Child returns the first child with the given label, or nil.
func (n *Node) Child(label string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Label == label {
			return c
		}
	}
	return nil
}

// All returns every child with the given label, in source order.
func (n *Node) All(label string) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, c := range n.Children {
		if c.Label == label {
			out = append(out, c)
		}
	}
	return out
}

// Has reports whether a child with the given label exists.
func (n *Node) Has(label string) bool {
	return n.Child(label) != nil
}

// Text returns the decoded text of a leaf, or "" for interior nodes.
func (n *Node) Text() string {
	if !n.IsLeaf() {
		return ""
	}
	return n.Token.Literal
}

// Upper returns the upper-cased text of a leaf.
func (n *Node) Upper() string {
	return strings.ToUpper(n.Text())
}

// Words joins the upper-cased text of every leaf child labelled label.
func (n *Node) Words(label string) string {
	var parts []string
	for _, c := range n.All(label) {
		parts = append(parts, c.Upper())
	}
	return strings.Join(parts, " ")
}

// Tokens returns the token leaves below n in source order.
func (n *Node) Tokens() []token.Token {
	var out []token.Token
	n.walk(func(c *Node) {
		if c.IsLeaf() {
			out = append(out, c.Token)
		}
	})
	return out
}

func (n *Node) walk(fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, c := range n.Children {
		c.walk(fn)
	}
}
