package peg

import (
	"fmt"
	"strings"
)

// Node is an immutable parse-tree node: a labelled, half-open input
// range with an ordered list of children and the semantic value (if
// any) bound to the frame that produced it. Span carries the same
// range as Start/End, already resolved to line/column, for callers
// that want to print a location without going back through the
// buffer.
type Node struct {
	Label    string
	Start    int
	End      int
	Span     Span
	Children []*Node
	Value    any
}

// Text returns the raw input text covered by the node, extracted
// from buf.
func (n *Node) Text(buf InputBuffer) string {
	return buf.Extract(n.Start, n.End)
}

func (n *Node) String() string {
	var sb strings.Builder
	n.write(&sb, 0)
	return sb.String()
}

func (n *Node) write(sb *strings.Builder, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	fmt.Fprintf(sb, "%s [%d,%d)\n", n.Label, n.Start, n.End)
	for _, c := range n.Children {
		c.write(sb, depth+1)
	}
}

// NodeVisitor provides read-only traversal of a parse tree. Visit is
// called for every node in pre-order; returning false skips that
// node's children.
type NodeVisitor interface {
	Visit(n *Node) bool
}

// WalkNode drives v over the tree rooted at n.
func WalkNode(n *Node, v NodeVisitor) {
	if n == nil {
		return
	}
	if !v.Visit(n) {
		return
	}
	for _, c := range n.Children {
		WalkNode(c, v)
	}
}

// visitNodeFunc adapts a plain function to NodeVisitor.
type visitNodeFunc func(n *Node) bool

func (f visitNodeFunc) Visit(n *Node) bool { return f(n) }

// InspectNode walks n in pre-order, calling fn for every node. It is
// the functional shorthand for NodeVisitor, mirroring the single
// type-switch-friendly traversal many callers reach for instead of
// implementing the full visitor interface.
func InspectNode(n *Node, fn func(n *Node) bool) {
	WalkNode(n, visitNodeFunc(fn))
}
