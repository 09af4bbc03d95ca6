// Package render writes a simplified AST as numbered plain text, per
// spec.md §4.5. Ported from original_source/src/python/m6rc.py's
// recurse().
package render

import (
	"fmt"
	"io"

	"github.com/ava12/metaphorc/ast"
	"github.com/ava12/metaphorc/token"
)

// Tree writes root starting at section "1". root should already have
// been passed through simplify.Tree.
func Tree(root *ast.Node, w io.Writer) error {
	return recurse(root, "1", w)
}

func recurse(node *ast.Node, section string, w io.Writer) error {
	if node.Kind == token.TEXT {
		_, err := fmt.Fprintf(w, "%s\n\n", node.Value)
		return err
	}

	if node.IsBlock() {
		var err error
		if len(node.Children) > 0 && node.Children[0].Kind == token.KEYWORD_TEXT {
			_, err = fmt.Fprintf(w, "%s %s\n\n", section, node.Children[0].Value)
		} else {
			_, err = fmt.Fprintf(w, "%s\n\n", section)
		}
		if err != nil {
			return err
		}
	}

	index := 0
	for _, child := range node.Children {
		if child.Kind == token.SCOPE || child.Kind == token.EXAMPLE {
			index++
		}
		if err := recurse(child, fmt.Sprintf("%s.%d", section, index), w); err != nil {
			return err
		}
	}
	return nil
}
