package mdast

import (
	"errors"
	"fmt"
)

// ErrSkipChildren may be returned by a WalkFunc to skip the children of the
// current node without aborting the walk.
var ErrSkipChildren = errors.New("mdast: skip children")

// WalkFunc is invoked for every node in depth-first order. Path locates the
// node relative to the walk root (e.g. "children[0].items[1]").
type WalkFunc func(node Node, path string) error

// Walk visits node and its descendants depth-first, stopping on the first
// error returned by fn. Nil entries inside child slices are still reported to
// fn (as a nil Node) so validators can flag them.
func Walk(node Node, fn WalkFunc) error {
	return walk(node, "", fn)
}

func walk(node Node, path string, fn WalkFunc) error {
	if err := fn(node, path); err != nil {
		if errors.Is(err, ErrSkipChildren) {
			return nil
		}
		return err
	}
	if IsNil(node) {
		return nil
	}
	for _, child := range Children(node) {
		if err := walk(child.Node, join(path, child.Path), fn); err != nil {
			return err
		}
	}
	return nil
}

// Child pairs a child node with its path segment relative to its parent.
type Child struct {
	Path string
	Node Node
}

// Children lists the direct children of node with their path segments.
func Children(node Node) []Child {
	var out []Child
	switch n := node.(type) {
	case *Root:
		out = blockChildren("children", n.Children)
	case *Heading:
		out = inlineChildren("children", n.Children)
	case *Paragraph:
		out = inlineChildren("children", n.Children)
	case *List:
		for i, item := range n.Items {
			var child Node
			if item != nil {
				child = item
			}
			out = append(out, Child{Path: fmt.Sprintf("items[%d]", i), Node: child})
		}
	case *ListItem:
		out = blockChildren("children", n.Children)
	case *Blockquote:
		out = blockChildren("children", n.Children)
	case *Table:
		for i, cell := range n.Header {
			out = append(out, Child{Path: fmt.Sprintf("header[%d]", i), Node: cellNode(cell)})
		}
		for r, row := range n.Rows {
			for c, cell := range row {
				out = append(out, Child{Path: fmt.Sprintf("rows[%d][%d]", r, c), Node: cellNode(cell)})
			}
		}
	case *TableCell:
		out = inlineChildren("children", n.Children)
	case *Emphasis:
		out = inlineChildren("children", n.Children)
	case *Strong:
		out = inlineChildren("children", n.Children)
	case *Delete:
		out = inlineChildren("children", n.Children)
	case *Link:
		out = inlineChildren("children", n.Children)
	case *Unknown:
		for i, child := range n.Children {
			out = append(out, Child{Path: fmt.Sprintf("children[%d]", i), Node: child})
		}
	}
	return out
}

func blockChildren(field string, nodes []Block) []Child {
	out := make([]Child, 0, len(nodes))
	for i, node := range nodes {
		out = append(out, Child{Path: fmt.Sprintf("%s[%d]", field, i), Node: node})
	}
	return out
}

func inlineChildren(field string, nodes []Inline) []Child {
	out := make([]Child, 0, len(nodes))
	for i, node := range nodes {
		out = append(out, Child{Path: fmt.Sprintf("%s[%d]", field, i), Node: node})
	}
	return out
}

func cellNode(cell *TableCell) Node {
	if cell == nil {
		return nil
	}
	return cell
}

func join(parent, segment string) string {
	if parent == "" {
		return segment
	}
	return parent + "." + segment
}

// IsNil reports whether node is nil, including typed nil pointers stored in
// an interface.
func IsNil(node Node) bool {
	if node == nil {
		return true
	}
	switch n := node.(type) {
	case *Root:
		return n == nil
	case *Heading:
		return n == nil
	case *Paragraph:
		return n == nil
	case *Code:
		return n == nil
	case *List:
		return n == nil
	case *ListItem:
		return n == nil
	case *Blockquote:
		return n == nil
	case *Table:
		return n == nil
	case *TableCell:
		return n == nil
	case *ThematicBreak:
		return n == nil
	case *HTML:
		return n == nil
	case *Text:
		return n == nil
	case *Emphasis:
		return n == nil
	case *Strong:
		return n == nil
	case *Delete:
		return n == nil
	case *InlineCode:
		return n == nil
	case *Link:
		return n == nil
	case *Image:
		return n == nil
	case *Break:
		return n == nil
	case *InlineHTML:
		return n == nil
	case *Unknown:
		return n == nil
	}
	return false
}
