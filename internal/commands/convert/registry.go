package convertcmd

import (
	"errors"

	"github.com/goliatone/go-slackmd/internal/commands"
	"github.com/goliatone/go-slackmd/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// HandlerSet groups the handlers produced by RegisterConvertCommands.
type HandlerSet struct {
	Convert *ConvertHandler
	// Publish is nil when no publisher was supplied.
	Publish *PublishHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	publisher          interfaces.Publisher
	gates              FeatureGates
	defaults           PublishDefaults
	onResult           ResultFunc
	convertHandlerOpts []commands.HandlerOption[ConvertFileCommand]
	publishHandlerOpts []commands.HandlerOption[PublishFileCommand]
}

// WithPublisher enables the publish handler.
func WithPublisher(publisher interfaces.Publisher, gates FeatureGates, defaults PublishDefaults) Option {
	return func(cfg *options) {
		cfg.publisher = publisher
		cfg.gates = gates
		cfg.defaults = defaults
	}
}

// WithResultFunc receives the output of both handlers.
func WithResultFunc(fn ResultFunc) Option {
	return func(cfg *options) {
		cfg.onResult = fn
	}
}

// WithConvertHandlerOptions forwards options to the ConvertHandler constructor.
func WithConvertHandlerOptions(opts ...commands.HandlerOption[ConvertFileCommand]) Option {
	return func(cfg *options) {
		cfg.convertHandlerOpts = append(cfg.convertHandlerOpts, opts...)
	}
}

// WithPublishHandlerOptions forwards options to the PublishHandler constructor.
func WithPublishHandlerOptions(opts ...commands.HandlerOption[PublishFileCommand]) Option {
	return func(cfg *options) {
		cfg.publishHandlerOpts = append(cfg.publishHandlerOpts, opts...)
	}
}

// RegisterConvertCommands builds the convert handlers and registers them with the
// provided registry, which may be nil. The HandlerSet is returned so callers can
// execute handlers directly.
func RegisterConvertCommands(reg CommandRegistry, loader DocumentLoader, converter DocumentConverter, provider interfaces.LoggerProvider, opts ...Option) (*HandlerSet, error) {
	if loader == nil {
		return nil, errors.New("convert command registration: loader is nil")
	}
	if converter == nil {
		return nil, errors.New("convert command registration: converter is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	set := &HandlerSet{
		Convert: NewConvertHandler(loader, converter, commands.CommandLogger(provider, "convert"), cfg.onResult, cfg.convertHandlerOpts...),
	}
	if cfg.publisher != nil {
		set.Publish = NewPublishHandler(loader, converter, cfg.publisher, commands.CommandLogger(provider, "publish"), cfg.gates, cfg.defaults, cfg.onResult, cfg.publishHandlerOpts...)
	}

	if reg != nil {
		if err := reg.RegisterCommand(set.Convert); err != nil {
			return nil, err
		}
		if set.Publish != nil {
			if err := reg.RegisterCommand(set.Publish); err != nil {
				return nil, err
			}
		}
	}
	return set, nil
}
