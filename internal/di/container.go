package di

import (
	"fmt"
	"io/fs"
	"os"
	"strings"

	convertcmd "github.com/goliatone/go-slackmd/internal/commands/convert"
	"github.com/goliatone/go-slackmd/internal/convert"
	"github.com/goliatone/go-slackmd/internal/logging"
	"github.com/goliatone/go-slackmd/internal/logging/console"
	"github.com/goliatone/go-slackmd/internal/logging/gologger"
	"github.com/goliatone/go-slackmd/internal/markdown"
	"github.com/goliatone/go-slackmd/internal/publish"
	"github.com/goliatone/go-slackmd/internal/runtimeconfig"
	"github.com/goliatone/go-slackmd/pkg/interfaces"
)

// Container wires the converter, its collaborators and the command handlers
// from a runtime configuration.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	tokenizer      interfaces.Tokenizer
	publisher      interfaces.Publisher

	filesystem fs.FS
	basePath   string

	converter *convert.Converter
	loader    *markdown.Loader
	commands  *convertcmd.HandlerSet
	onResult  convertcmd.ResultFunc
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the provider selected by Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.loggerProvider = provider
		}
	}
}

// WithTokenizer replaces the goldmark tokenizer.
func WithTokenizer(tokenizer interfaces.Tokenizer) Option {
	return func(c *Container) {
		if tokenizer != nil {
			c.tokenizer = tokenizer
		}
	}
}

// WithPublisher replaces the Slack Web API publisher.
func WithPublisher(publisher interfaces.Publisher) Option {
	return func(c *Container) {
		if publisher != nil {
			c.publisher = publisher
		}
	}
}

// WithFS sets the filesystem documents are loaded from. basePath relativises
// absolute paths and may be empty.
func WithFS(filesystem fs.FS, basePath string) Option {
	return func(c *Container) {
		if filesystem != nil {
			c.filesystem = filesystem
			c.basePath = basePath
		}
	}
}

// WithResultFunc receives the output of the convert and publish command handlers.
func WithResultFunc(fn convertcmd.ResultFunc) Option {
	return func(c *Container) {
		c.onResult = fn
	}
}

// NewContainer validates cfg and builds every service it describes.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}

	settings, err := convert.SettingsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	if c.tokenizer == nil {
		c.tokenizer = markdown.NewGoldmarkTokenizer(settings.Parse)
	}
	c.converter = convert.New(c.tokenizer, settings, logging.ConvertLogger(c.loggerProvider))

	if c.publisher == nil && cfg.Features.Publish {
		c.publisher = publish.New(publish.Config{
			Token:  cfg.Slack.Token,
			APIURL: cfg.Slack.APIURL,
		}, publish.WithLogger(logging.PublishLogger(c.loggerProvider)))
	}

	if c.filesystem == nil {
		if wd, err := os.Getwd(); err == nil {
			c.filesystem, c.basePath = os.DirFS(wd), wd
		} else {
			c.filesystem = os.DirFS(".")
		}
	}
	c.loader = markdown.NewLoader(c.filesystem, c.basePath,
		markdown.WithLoaderLogger(logging.MarkdownLogger(c.loggerProvider)),
	)

	registerOpts := []convertcmd.Option{convertcmd.WithResultFunc(c.onResult)}
	if c.publisher != nil {
		registerOpts = append(registerOpts, convertcmd.WithPublisher(c.publisher, convertcmd.FeatureGates{
			PublishEnabled: func() bool { return c.Config.Features.Publish },
		}, convertcmd.PublishDefaults{Channel: cfg.Slack.Channel}))
	}
	c.commands, err = convertcmd.RegisterConvertCommands(nil, c.loader, c.converter, c.loggerProvider, registerOpts...)
	if err != nil {
		return nil, err
	}

	logging.WithFields(logging.RootLogger(c.loggerProvider), map[string]any{
		"checkbox_style":  cfg.Lists.CheckboxStyle,
		"validate_schema": cfg.Blocks.ValidateSchema,
		"publish":         c.publisher != nil,
	}).Debug("container.configured")

	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil || !c.Config.Features.Logger {
		return nil
	}
	logCfg := c.Config.Logging
	switch strings.ToLower(strings.TrimSpace(logCfg.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     logCfg.Level,
			Format:    logCfg.Format,
			AddSource: logCfg.AddSource,
			Focus:     logCfg.Focus,
		})
		if err != nil {
			return fmt.Errorf("%w: %v", runtimeconfig.ErrLoggingFormatInvalid, err)
		}
		c.loggerProvider = provider
	default:
		opts := console.Options{}
		if level, ok := console.ParseLevel(logCfg.Level); ok {
			opts.MinLevel = &level
		}
		c.loggerProvider = console.NewProvider(opts)
	}
	return nil
}

// LoggerProvider returns the configured provider, or nil when logging is disabled.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// Tokenizer returns the Markdown tokenizer.
func (c *Container) Tokenizer() interfaces.Tokenizer {
	return c.tokenizer
}

// Converter returns the conversion pipeline.
func (c *Container) Converter() *convert.Converter {
	return c.converter
}

// Publisher returns the Slack publisher, or nil when publishing is not configured.
func (c *Container) Publisher() interfaces.Publisher {
	return c.publisher
}

// Loader returns the document loader bound to the container filesystem.
func (c *Container) Loader() *markdown.Loader {
	return c.loader
}

// Commands returns the convert and publish command handlers.
func (c *Container) Commands() *convertcmd.HandlerSet {
	return c.commands
}

// RegisterCommands hands every command handler to reg.
func (c *Container) RegisterCommands(reg convertcmd.CommandRegistry) error {
	if reg == nil {
		return nil
	}
	if err := reg.RegisterCommand(c.commands.Convert); err != nil {
		return err
	}
	if c.commands.Publish != nil {
		return reg.RegisterCommand(c.commands.Publish)
	}
	return nil
}
