// Package mrkdwn renders Markdown phrasing nodes into Slack's mrkdwn dialect
// and into plain text for fields that do not accept markup.
package mrkdwn

import (
	"strings"

	"github.com/goliatone/go-slackmd/pkg/mdast"
)

// Slack only requires &, < and > to be escaped.
// https://api.slack.com/reference/surfaces/formatting#escaping
var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

// Escape replaces the three control characters Slack reserves in mrkdwn.
func Escape(value string) string {
	return escaper.Replace(value)
}

// Format converts a single phrasing node into mrkdwn. Images are not handled
// here; callers lift them into dedicated image blocks before formatting, so an
// image (like any unsupported node) formats to the empty string.
func Format(node mdast.Inline) string {
	switch n := node.(type) {
	case *mdast.Text:
		return Escape(n.Value)
	case *mdast.Strong:
		return "*" + FormatAll(n.Children) + "*"
	case *mdast.Emphasis:
		return "_" + FormatAll(n.Children) + "_"
	case *mdast.Delete:
		return "~" + FormatAll(n.Children) + "~"
	case *mdast.InlineCode:
		return "`" + n.Value + "`"
	case *mdast.Link:
		// The trailing space is part of the established output format.
		return "<" + n.URL + "|" + FormatAll(n.Children) + "> "
	case *mdast.Break:
		return ""
	default:
		return ""
	}
}

// FormatAll concatenates the mrkdwn of every node in order.
func FormatAll(nodes []mdast.Inline) string {
	var b strings.Builder
	for _, node := range nodes {
		if mdast.IsNil(node) {
			continue
		}
		b.WriteString(Format(node))
	}
	return b.String()
}
