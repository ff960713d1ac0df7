package mrkdwn

import (
	"strings"

	"github.com/goliatone/go-slackmd/pkg/mdast"
)

// PlainText reduces a phrasing node to unformatted text for plain_text fields.
// Markup is dropped, images contribute their title (or URL when untitled).
func PlainText(node mdast.Inline) string {
	switch n := node.(type) {
	case *mdast.Text:
		return n.Value
	case *mdast.InlineCode:
		return n.Value
	case *mdast.InlineHTML:
		return n.Value
	case *mdast.Strong:
		return PlainTextAll(n.Children)
	case *mdast.Emphasis:
		return PlainTextAll(n.Children)
	case *mdast.Delete:
		return PlainTextAll(n.Children)
	case *mdast.Link:
		return PlainTextAll(n.Children)
	case *mdast.Image:
		if n.Title != "" {
			return n.Title
		}
		return n.URL
	default:
		return ""
	}
}

// PlainTextAll concatenates the plain text of every node in order.
func PlainTextAll(nodes []mdast.Inline) string {
	var b strings.Builder
	for _, node := range nodes {
		if mdast.IsNil(node) {
			continue
		}
		b.WriteString(PlainText(node))
	}
	return b.String()
}
