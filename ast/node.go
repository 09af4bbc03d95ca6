// Package ast defines the Metaphor abstract syntax tree: a node carries a
// copy of its originating token plus an ordered list of owned children
// and a non-owning back-reference to its parent.
//
// Generalized from the teacher's tree.Node/NonTermNode split
// (tree/tree.go): llx's trees distinguish terminal token nodes from
// non-terminal nodes built by grammar hooks, because its grammar is
// table-driven and generic over arbitrary languages. Metaphor's grammar
// is fixed, and every node in spec.md's data model — text, keyword text,
// and block keywords alike — carries exactly one token and an ordered
// child list, so the split collapses into a single concrete type. The
// parent/child wiring (AppendChild setting a non-owning back-pointer) and
// the depth-first Walk helper are ported from tree.go's AppendChild/Walk.
package ast

import (
	"strings"

	"github.com/ava12/metaphorc/token"
)

// Node is a single AST node: a copy of the token that produced it plus
// its ordered, owned children.
type Node struct {
	Kind     token.Kind
	Value    string
	Filename string
	Line     int
	Col      int

	Children []*Node
	Parent   *Node // non-owning; set by AppendChild
}

// New builds a Node from a token, copying its kind, value, and position
// the way ASTNode.__init__ does in original_source.
func New(t *token.Token) *Node {
	return &Node{
		Kind:     t.Kind,
		Value:    t.Value,
		Filename: t.File,
		Line:     t.Ln,
		Col:      t.Cl,
	}
}

// AppendChild adds child as n's last child, setting child's back-pointer
// to n. Mirrors tree.nonTermNode.AppendChild.
func (n *Node) AppendChild(child *Node) {
	child.Parent = n
	n.Children = append(n.Children, child)
}

// IsBlock reports whether n is one of the three block keyword kinds that
// the renderer numbers as sections.
func (n *Node) IsBlock() bool {
	switch n.Kind {
	case token.TARGET, token.SCOPE, token.EXAMPLE:
		return true
	default:
		return false
	}
}

// Walk performs a depth-first, pre-order traversal of n and its
// descendants, invoking visit on each node. If visit returns false for a
// node, that node's children are skipped. Ported from tree.Walk/visitNode
// collapsed to the single traversal order simplify and render both need.
func Walk(n *Node, visit func(*Node) bool) {
	if n == nil {
		return
	}
	if !visit(n) {
		return
	}
	for _, c := range n.Children {
		Walk(c, visit)
	}
}

// DebugString renders an indented dump of the tree rooted at n, ported
// from ASTNode.print_tree in original_source. Used by tests and by the
// CLI's --debug flag to show the parsed tree before rendering.
func (n *Node) DebugString() string {
	var b strings.Builder
	n.writeDebug(&b, 0)
	return b.String()
}

func (n *Node) writeDebug(b *strings.Builder, level int) {
	b.WriteString(strings.Repeat("  ", level))
	b.WriteString(n.Value)
	b.WriteByte('\n')
	for _, c := range n.Children {
		c.writeDebug(b, level+1)
	}
}
