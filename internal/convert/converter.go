// Package convert runs the full Markdown to Block Kit pipeline: tokenize,
// check the tree, render, then optionally assign block IDs and validate the
// output against Slack's limits.
package convert

import (
	"context"
	"errors"
	"fmt"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/slack-go/slack"

	"github.com/goliatone/go-slackmd/internal/identity"
	"github.com/goliatone/go-slackmd/internal/logging"
	"github.com/goliatone/go-slackmd/internal/render"
	"github.com/goliatone/go-slackmd/internal/runtimeconfig"
	"github.com/goliatone/go-slackmd/internal/validation"
	"github.com/goliatone/go-slackmd/pkg/interfaces"
	"github.com/goliatone/go-slackmd/pkg/mdast"
)

const (
	textCodeTokenize     = "MARKDOWN_TOKENIZE_FAILED"
	textCodeSchema       = "BLOCKKIT_SCHEMA_INVALID"
	textCodeTooMany      = "BLOCKKIT_TOO_MANY_BLOCKS"
	textCodeNoTokenizer  = "MARKDOWN_TOKENIZER_MISSING"
	textCodeSchemaBroken = "BLOCKKIT_SCHEMA_UNAVAILABLE"
)

// ErrNoTokenizer is returned by Convert when the converter was built without one.
var ErrNoTokenizer = errors.New("convert: tokenizer is required to convert raw markdown")

// Settings drives a Converter.
type Settings struct {
	Render render.Options
	Parse  interfaces.ParseOptions
	// IDPrefix enables deterministic block IDs when non-empty.
	IDPrefix       string
	ValidateSchema bool
	MaxBlocks      int
}

// SettingsFromConfig derives converter settings from runtime configuration.
func SettingsFromConfig(cfg runtimeconfig.Config) (Settings, error) {
	prefix, ok := render.CheckboxPrefixForStyle(cfg.Lists.CheckboxStyle)
	if !ok {
		return Settings{}, fmt.Errorf("%w: %s", runtimeconfig.ErrCheckboxStyleInvalid, cfg.Lists.CheckboxStyle)
	}
	return Settings{
		Render: render.Options{Lists: render.ListOptions{CheckboxPrefix: prefix}},
		Parse: interfaces.ParseOptions{
			Extensions:  append([]string(nil), cfg.Parser.Extensions...),
			FrontMatter: cfg.Parser.FrontMatter,
		},
		IDPrefix:       cfg.Blocks.IDPrefix,
		ValidateSchema: cfg.Blocks.ValidateSchema,
		MaxBlocks:      cfg.Blocks.MaxBlocks,
	}, nil
}

// Converter turns Markdown, already tokenized trees, or loaded documents into
// Block Kit blocks. It is safe for concurrent use when its tokenizer is.
type Converter struct {
	tokenizer interfaces.Tokenizer
	settings  Settings
	logger    interfaces.Logger
}

// New builds a Converter. tokenizer may be nil when only ConvertTree is used.
func New(tokenizer interfaces.Tokenizer, settings Settings, logger interfaces.Logger) *Converter {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Converter{
		tokenizer: tokenizer,
		settings:  settings,
		logger:    logger,
	}
}

// Settings returns a copy of the converter settings.
func (c *Converter) Settings() Settings {
	return c.settings
}

// Convert tokenizes source and converts the resulting tree.
func (c *Converter) Convert(ctx context.Context, source []byte) ([]slack.Block, error) {
	return c.convertSource(ctx, source, c.settings.Parse, c.logger)
}

// ConvertDocument converts a loaded document. Its body is already free of
// front matter.
func (c *Converter) ConvertDocument(ctx context.Context, doc *interfaces.Document) ([]slack.Block, error) {
	if doc == nil {
		return []slack.Block{}, nil
	}
	logger := logging.WithDocumentContext(c.logger, doc.FilePath, doc.FrontMatter.Channel, doc.FrontMatter.Thread)
	opts := c.settings.Parse
	opts.FrontMatter = false
	return c.convertSource(ctx, doc.Body, opts, logger)
}

// ConvertTree converts an already tokenized tree.
func (c *Converter) ConvertTree(ctx context.Context, root *mdast.Root) ([]slack.Block, error) {
	return c.convertTree(ctx, root, c.logger)
}

func (c *Converter) convertSource(ctx context.Context, source []byte, opts interfaces.ParseOptions, logger interfaces.Logger) ([]slack.Block, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c.tokenizer == nil {
		return nil, goerrors.Wrap(ErrNoTokenizer, goerrors.CategoryInternal, "markdown tokenizer missing").
			WithTextCode(textCodeNoTokenizer)
	}
	root, err := c.tokenizer.ParseWithOptions(source, opts)
	if err != nil {
		logger.Warn("markdown.tokenize.failed", "error", err)
		return nil, goerrors.Wrap(err, goerrors.CategoryBadInput, "markdown could not be tokenized").
			WithTextCode(textCodeTokenize)
	}
	logger = logging.WithFields(logger, map[string]any{"source_bytes": len(source)})
	return c.convertTree(ctx, root, logger)
}

func (c *Converter) convertTree(ctx context.Context, root *mdast.Root, logger interfaces.Logger) ([]slack.Block, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	started := time.Now()
	logger = logger.WithContext(ctx)

	if err := validation.ValidateTree(root); err != nil {
		logger.Warn("markdown.tree.invalid", "error", err)
		return nil, err
	}

	out := render.ParseBlocks(root, c.settings.Render)
	identity.AssignBlockIDs(out, c.settings.IDPrefix)

	if c.settings.ValidateSchema {
		if err := validation.ValidateBlocks(out, c.settings.MaxBlocks); err != nil {
			logger.Warn("blocks.validation.failed", "blocks", len(out), "error", err)
			return nil, wrapBlocksError(err)
		}
	}

	logger.Debug("blocks.converted", "blocks", len(out), "elapsed", time.Since(started))
	return out, nil
}

func wrapBlocksError(err error) error {
	switch {
	case errors.Is(err, validation.ErrTooManyBlocks):
		return goerrors.Wrap(err, goerrors.CategoryValidation, "too many blocks for one message").
			WithTextCode(textCodeTooMany)
	case errors.Is(err, validation.ErrSchemaInvalid):
		return goerrors.Wrap(err, goerrors.CategoryInternal, "block kit schema unavailable").
			WithTextCode(textCodeSchemaBroken)
	default:
		return goerrors.Wrap(err, goerrors.CategoryValidation, "blocks rejected by block kit schema").
			WithTextCode(textCodeSchema)
	}
}
