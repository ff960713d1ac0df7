package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-slackmd/internal/markdown"
)

var ErrCheckboxStyleInvalid = errors.New("slackmd config: checkbox style is invalid")
var ErrParserExtensionUnknown = errors.New("slackmd config: parser extension is unknown")
var ErrMaxBlocksInvalid = errors.New("slackmd config: max blocks must be zero or positive")
var ErrLoggingProviderRequired = errors.New("slackmd config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("slackmd config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("slackmd config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("slackmd config: logging format is invalid")

// ErrSlackTokenRequired guards publishing without credentials.
var ErrSlackTokenRequired = errors.New("slackmd config: slack token is required when publishing is enabled")

// Checkbox styles for task list items.
const (
	CheckboxStyleBullet = "bullet"
	CheckboxStyleGlyph  = "glyph"
	CheckboxStyleNone   = "none"
)

// DefaultMaxBlocks is Slack's per-message block limit.
const DefaultMaxBlocks = 50

// Config aggregates conversion, delivery and logging settings. Fields use
// simple types so hosts can unmarshal them from any configuration source.
type Config struct {
	Lists    ListsConfig
	Parser   ParserConfig
	Blocks   BlocksConfig
	Slack    SlackConfig
	Features Features
	Logging  LoggingConfig
}

// ListsConfig controls list rendering.
type ListsConfig struct {
	// CheckboxStyle selects a built-in task item prefix: bullet, glyph or none.
	CheckboxStyle string
}

// ParserConfig mirrors interfaces.ParseOptions for runtime configuration.
type ParserConfig struct {
	Extensions  []string
	FrontMatter bool
}

// BlocksConfig controls post-processing of the emitted blocks.
type BlocksConfig struct {
	// IDPrefix enables deterministic block_id values when non-empty.
	IDPrefix string
	// ValidateSchema checks output against the Block Kit schema.
	ValidateSchema bool
	// MaxBlocks caps the sequence length when validating; zero disables the cap.
	MaxBlocks int
}

// SlackConfig captures Web API credentials and the default destination.
type SlackConfig struct {
	Token   string
	APIURL  string
	Channel string
}

// Features toggles optional behaviour.
type Features struct {
	Logger  bool
	Publish bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns the documented conversion defaults.
func DefaultConfig() Config {
	return Config{
		Lists: ListsConfig{
			CheckboxStyle: CheckboxStyleBullet,
		},
		Parser: ParserConfig{
			Extensions: []string{"gfm"},
		},
		Blocks: BlocksConfig{
			MaxBlocks: DefaultMaxBlocks,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
			Format:   "",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if style := strings.TrimSpace(cfg.Lists.CheckboxStyle); style != "" && !isSupportedCheckboxStyle(style) {
		return fmt.Errorf("%w: %s", ErrCheckboxStyleInvalid, style)
	}
	if name, ok := markdown.SupportedExtensions(cfg.Parser.Extensions); !ok {
		return fmt.Errorf("%w: %s", ErrParserExtensionUnknown, name)
	}
	if cfg.Blocks.MaxBlocks < 0 {
		return fmt.Errorf("%w: %d", ErrMaxBlocksInvalid, cfg.Blocks.MaxBlocks)
	}
	if cfg.Features.Publish && strings.TrimSpace(cfg.Slack.Token) == "" {
		return ErrSlackTokenRequired
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func isSupportedCheckboxStyle(style string) bool {
	switch strings.ToLower(style) {
	case CheckboxStyleBullet, CheckboxStyleGlyph, CheckboxStyleNone:
		return true
	default:
		return false
	}
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
