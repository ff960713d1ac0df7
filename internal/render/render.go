// Package render maps a Markdown tree onto Slack Block Kit blocks.
//
// Conversion is a single synchronous depth-first pass over the root's
// children. Each block-level node maps independently to zero or more output
// blocks; node kinds without a Slack analog produce nothing.
package render

import (
	"strings"

	"github.com/slack-go/slack"

	"github.com/goliatone/go-slackmd/internal/blocks"
	"github.com/goliatone/go-slackmd/internal/mrkdwn"
	"github.com/goliatone/go-slackmd/pkg/mdast"
)

const (
	fence       = "```"
	quotePrefix = "> "
)

// ParseBlocks converts every top-level child of root, in document order.
func ParseBlocks(root *mdast.Root, opts Options) []slack.Block {
	if root == nil {
		return []slack.Block{}
	}
	out := make([]slack.Block, 0, len(root.Children))
	for _, node := range root.Children {
		out = append(out, ParseNode(node, opts)...)
	}
	return out
}

// ParseNode converts a single block-level node.
func ParseNode(node mdast.Block, opts Options) []slack.Block {
	if mdast.IsNil(node) {
		return nil
	}
	switch n := node.(type) {
	case *mdast.Heading:
		return []slack.Block{parseHeading(n)}
	case *mdast.Paragraph:
		return parseParagraph(n, nil)
	case *mdast.Code:
		return []slack.Block{parseCode(n)}
	case *mdast.List:
		return []slack.Block{parseList(n, opts.Lists)}
	case *mdast.Table:
		return []slack.Block{parseTable(n)}
	case *mdast.Blockquote:
		return parseBlockquote(n)
	case *mdast.ThematicBreak:
		return []slack.Block{blocks.Divider()}
	case *mdast.HTML:
		return parseHTML(n)
	default:
		return nil
	}
}

func parseHeading(heading *mdast.Heading) *slack.HeaderBlock {
	return blocks.Header(mrkdwn.PlainTextAll(heading.Children))
}

func parseParagraph(paragraph *mdast.Paragraph, transform func(string) string) []slack.Block {
	acc := &runAccumulator{}
	for _, child := range paragraph.Children {
		if mdast.IsNil(child) {
			continue
		}
		acc.add(child)
	}
	return acc.blocks(transform)
}

func parseCode(code *mdast.Code) *slack.SectionBlock {
	return blocks.Section(fence + "\n" + code.Value + "\n" + fence)
}

// parseBlockquote renders the quote's paragraphs with every line prefixed.
// Other children (lists, headings, nested quotes) are not representable and
// are skipped.
func parseBlockquote(quote *mdast.Blockquote) []slack.Block {
	var out []slack.Block
	for _, child := range quote.Children {
		paragraph, ok := child.(*mdast.Paragraph)
		if !ok || paragraph == nil {
			continue
		}
		out = append(out, parseParagraph(paragraph, quoteLines)...)
	}
	return out
}

func quoteLines(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = quotePrefix + line
	}
	return strings.Join(lines, "\n")
}

func parseHTML(node *mdast.HTML) []slack.Block {
	refs := ExtractImages(node.Value)
	if len(refs) == 0 {
		return nil
	}
	out := make([]slack.Block, 0, len(refs))
	for _, ref := range refs {
		out = append(out, ref.Block())
	}
	return out
}
