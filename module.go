package slackmd

import (
	"context"
	"io/fs"
	"strings"

	"github.com/slack-go/slack"

	convertcmd "github.com/goliatone/go-slackmd/internal/commands/convert"
	"github.com/goliatone/go-slackmd/internal/di"
	"github.com/goliatone/go-slackmd/pkg/interfaces"
)

// Option customises the wiring performed by New.
type Option = di.Option

// Command handler types exposed by Module.Commands.
type (
	HandlerSet         = convertcmd.HandlerSet
	ConvertFileCommand = convertcmd.ConvertFileCommand
	PublishFileCommand = convertcmd.PublishFileCommand
	CommandRegistry    = convertcmd.CommandRegistry
	CommandResult      = convertcmd.Result
	CommandResultFunc  = convertcmd.ResultFunc
	PublishResult      = interfaces.PublishResult
)

// WithLoggerProvider overrides the provider selected by Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return di.WithLoggerProvider(provider)
}

// WithTokenizer replaces the goldmark tokenizer.
func WithTokenizer(tokenizer interfaces.Tokenizer) Option {
	return di.WithTokenizer(tokenizer)
}

// WithPublisher replaces the Slack Web API publisher.
func WithPublisher(publisher interfaces.Publisher) Option {
	return di.WithPublisher(publisher)
}

// WithFS sets the filesystem documents are loaded from.
func WithFS(filesystem fs.FS, basePath string) Option {
	return di.WithFS(filesystem, basePath)
}

// WithCommandResults receives the output of the command handlers.
func WithCommandResults(fn CommandResultFunc) Option {
	return di.WithResultFunc(fn)
}

// Module is the top level runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a Module from cfg and optional overrides.
func New(cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// NewConverter builds only the conversion pipeline described by cfg.
func NewConverter(cfg Config, opts ...Option) (*Converter, error) {
	module, err := New(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return module.Converter(), nil
}

// Converter returns the configured conversion pipeline.
func (m *Module) Converter() *Converter {
	return m.container.Converter()
}

// Publisher returns the Slack publisher, or nil when publishing is disabled.
func (m *Module) Publisher() interfaces.Publisher {
	return m.container.Publisher()
}

// Commands returns the convert and publish command handlers.
func (m *Module) Commands() *HandlerSet {
	return m.container.Commands()
}

// RegisterCommands hands the command handlers to a go-command style registry.
func (m *Module) RegisterCommands(reg CommandRegistry) error {
	return m.container.RegisterCommands(reg)
}

// Convert tokenizes and converts source using the module configuration.
func (m *Module) Convert(ctx context.Context, source []byte) ([]slack.Block, error) {
	return m.container.Converter().Convert(ctx, source)
}

// Publish posts blocks to channel, optionally as a reply in thread. An empty
// channel falls back to Config.Slack.Channel.
func (m *Module) Publish(ctx context.Context, channel, thread string, blocks []slack.Block) (*interfaces.PublishResult, error) {
	publisher := m.container.Publisher()
	if publisher == nil {
		return nil, convertcmd.ErrPublishFeatureDisabled
	}
	if strings.TrimSpace(channel) == "" {
		channel = m.container.Config.Slack.Channel
	}
	return publisher.Publish(ctx, interfaces.PublishRequest{
		Channel:  channel,
		ThreadTS: thread,
		Blocks:   blocks,
	})
}
