// Package slackmd converts Markdown into Slack Block Kit blocks.
//
// A tokenized Markdown tree (see pkg/mdast) maps onto four block types:
// header, section (mrkdwn text), image and divider. ParseBlocks is the pure
// tree converter; MarkdownToBlocks tokenizes raw Markdown with goldmark first.
// Module wires the converter with logging, block IDs, schema validation and
// a Slack publisher from a Config.
package slackmd

import (
	"context"

	"github.com/slack-go/slack"

	"github.com/goliatone/go-slackmd/internal/convert"
	"github.com/goliatone/go-slackmd/internal/markdown"
	"github.com/goliatone/go-slackmd/internal/render"
	"github.com/goliatone/go-slackmd/internal/validation"
	"github.com/goliatone/go-slackmd/pkg/interfaces"
	"github.com/goliatone/go-slackmd/pkg/mdast"
)

// Options configures a conversion. The zero value applies the defaults.
type Options = render.Options

// ListOptions configures list rendering.
type ListOptions = render.ListOptions

// CheckboxPrefixFunc renders the prefix of a task list item.
type CheckboxPrefixFunc = render.CheckboxPrefixFunc

// Converter runs the configured conversion pipeline.
type Converter = convert.Converter

// Built-in checkbox prefixes.
var (
	BulletCheckboxPrefix = render.BulletCheckboxPrefix
	GlyphCheckboxPrefix  = render.GlyphCheckboxPrefix
	NoCheckboxPrefix     = render.NoCheckboxPrefix
)

var (
	// ErrInvalidNode matches errors caused by a tree that breaks the node contract.
	ErrInvalidNode = validation.ErrInvalidNode
	// ErrTooManyBlocks matches output longer than the configured block limit.
	ErrTooManyBlocks = validation.ErrTooManyBlocks
	// ErrSchemaValidation matches output rejected by the Block Kit schema.
	ErrSchemaValidation = validation.ErrSchemaValidation
)

// ParseBlocks converts a Markdown tree into Block Kit blocks, in document
// order. Nodes without a Slack analog are dropped. A malformed tree (a nil
// child, a heading level outside 1..6, a link or image without URL) yields
// an error matching ErrInvalidNode and no blocks.
func ParseBlocks(root *mdast.Root, opts Options) ([]slack.Block, error) {
	if err := validation.ValidateTree(root); err != nil {
		return nil, err
	}
	return render.ParseBlocks(root, opts), nil
}

// MarkdownToBlocks tokenizes source with the GFM goldmark tokenizer, strips
// any front matter, and converts the tree.
func MarkdownToBlocks(ctx context.Context, source []byte, opts Options) ([]slack.Block, error) {
	settings := convert.Settings{
		Render: opts,
		Parse:  interfaces.ParseOptions{FrontMatter: true},
	}
	tokenizer := markdown.NewGoldmarkTokenizer(settings.Parse)
	return convert.New(tokenizer, settings, nil).Convert(ctx, source)
}
