package convertcmd

import (
	"context"
	"errors"
	"strings"

	command "github.com/goliatone/go-command"
	"github.com/goliatone/go-slackmd/internal/commands"
	"github.com/goliatone/go-slackmd/internal/logging"
	"github.com/goliatone/go-slackmd/internal/markdown"
	"github.com/goliatone/go-slackmd/pkg/interfaces"
	"github.com/slack-go/slack"
)

const (
	convertOperation = "convert.file"
	publishOperation = "publish.file"
)

var (
	// ErrPublishFeatureDisabled is returned when publishing is disabled at runtime.
	ErrPublishFeatureDisabled = errors.New("convert command: publish feature disabled")
	// ErrChannelRequired is returned when neither the command, the document nor the defaults name a channel.
	ErrChannelRequired = errors.New("convert command: channel is required")
)

var (
	_ command.Commander[ConvertFileCommand] = (*ConvertHandler)(nil)
	_ command.Commander[PublishFileCommand] = (*PublishHandler)(nil)
)

// DocumentLoader reads Markdown documents.
type DocumentLoader interface {
	LoadFile(ctx context.Context, path string) (*markdown.DocumentResult, error)
}

// DocumentConverter turns a loaded document into blocks.
type DocumentConverter interface {
	ConvertDocument(ctx context.Context, doc *interfaces.Document) ([]slack.Block, error)
}

// Result is handed to the ResultFunc after a successful run.
type Result struct {
	Document *interfaces.Document
	Blocks   []slack.Block
	// Published is set by the publish handler only.
	Published *interfaces.PublishResult
}

// ResultFunc receives handler output. Returning an error fails the command.
type ResultFunc func(ctx context.Context, result Result) error

// ConvertHandler converts a Markdown file via the shared command handler foundation.
type ConvertHandler struct {
	inner *commands.Handler[ConvertFileCommand]
}

// NewConvertHandler creates a handler bound to the supplied loader and converter.
func NewConvertHandler(loader DocumentLoader, converter DocumentConverter, logger interfaces.Logger, onResult ResultFunc, opts ...commands.HandlerOption[ConvertFileCommand]) *ConvertHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg ConvertFileCommand) error {
		doc, blocks, err := loadAndConvert(ctx, loader, converter, msg.Path)
		if err != nil {
			return err
		}
		logging.WithFields(baseLogger, map[string]any{
			"path":   doc.FilePath,
			"blocks": len(blocks),
		}).Info("convert.command.file.completed")
		return deliver(ctx, onResult, Result{Document: doc, Blocks: blocks})
	}

	handlerOpts := []commands.HandlerOption[ConvertFileCommand]{
		commands.WithLogger[ConvertFileCommand](baseLogger),
		commands.WithOperation[ConvertFileCommand](convertOperation),
		commands.WithMessageFields(func(msg ConvertFileCommand) map[string]any {
			return map[string]any{"path": msg.Path}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ConvertFileCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ConvertHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ConvertFileCommand].
func (h *ConvertHandler) Execute(ctx context.Context, msg ConvertFileCommand) error {
	return h.inner.Execute(ctx, msg)
}

// PublishDefaults supplies values used when neither the command nor the document sets them.
type PublishDefaults struct {
	Channel string
}

// PublishHandler converts a Markdown file and posts the result to Slack.
type PublishHandler struct {
	inner *commands.Handler[PublishFileCommand]
}

// NewPublishHandler creates a handler bound to the supplied loader, converter and publisher.
func NewPublishHandler(loader DocumentLoader, converter DocumentConverter, publisher interfaces.Publisher, logger interfaces.Logger, gates FeatureGates, defaults PublishDefaults, onResult ResultFunc, opts ...commands.HandlerOption[PublishFileCommand]) *PublishHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg PublishFileCommand) error {
		if !gates.publishEnabled() {
			return ErrPublishFeatureDisabled
		}
		if publisher == nil {
			return errors.New("convert command: publisher is nil")
		}

		doc, blocks, err := loadAndConvert(ctx, loader, converter, msg.Path)
		if err != nil {
			return err
		}

		channel := firstNonBlank(msg.Channel, doc.FrontMatter.Channel, defaults.Channel)
		if channel == "" {
			return ErrChannelRequired
		}
		thread := firstNonBlank(msg.ThreadTS, doc.FrontMatter.Thread)

		published, err := publisher.Publish(ctx, interfaces.PublishRequest{
			Channel:      channel,
			ThreadTS:     thread,
			Blocks:       blocks,
			FallbackText: firstNonBlank(msg.FallbackText, doc.FrontMatter.Title),
		})
		if err != nil {
			return err
		}

		logging.WithFields(logging.WithDocumentContext(baseLogger, doc.FilePath, channel, thread), map[string]any{
			"blocks":     len(blocks),
			"message_ts": published.Timestamp,
		}).Info("convert.command.publish.completed")

		return deliver(ctx, onResult, Result{Document: doc, Blocks: blocks, Published: published})
	}

	handlerOpts := []commands.HandlerOption[PublishFileCommand]{
		commands.WithLogger[PublishFileCommand](baseLogger),
		commands.WithOperation[PublishFileCommand](publishOperation),
		commands.WithMessageFields(func(msg PublishFileCommand) map[string]any {
			fields := map[string]any{"path": msg.Path}
			if msg.Channel != "" {
				fields["channel"] = msg.Channel
			}
			if msg.ThreadTS != "" {
				fields["thread_ts"] = msg.ThreadTS
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[PublishFileCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &PublishHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[PublishFileCommand].
func (h *PublishHandler) Execute(ctx context.Context, msg PublishFileCommand) error {
	return h.inner.Execute(ctx, msg)
}

func loadAndConvert(ctx context.Context, loader DocumentLoader, converter DocumentConverter, path string) (*interfaces.Document, []slack.Block, error) {
	if loader == nil || converter == nil {
		return nil, nil, errors.New("convert command: loader and converter are required")
	}
	select {
	case <-ctx.Done():
		return nil, nil, ctx.Err()
	default:
	}

	path = strings.TrimSpace(path)
	ctx = logging.ContextWithFields(ctx, map[string]any{"document_path": path})

	loaded, err := loader.LoadFile(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	blocks, err := converter.ConvertDocument(ctx, loaded.Document)
	if err != nil {
		return nil, nil, err
	}
	return loaded.Document, blocks, nil
}

func deliver(ctx context.Context, fn ResultFunc, result Result) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, result)
}

func firstNonBlank(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
