package slackmd

import "github.com/goliatone/go-slackmd/internal/runtimeconfig"

var (
	ErrCheckboxStyleInvalid    = runtimeconfig.ErrCheckboxStyleInvalid
	ErrParserExtensionUnknown  = runtimeconfig.ErrParserExtensionUnknown
	ErrMaxBlocksInvalid        = runtimeconfig.ErrMaxBlocksInvalid
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
	ErrSlackTokenRequired      = runtimeconfig.ErrSlackTokenRequired
)

const (
	CheckboxStyleBullet = runtimeconfig.CheckboxStyleBullet
	CheckboxStyleGlyph  = runtimeconfig.CheckboxStyleGlyph
	CheckboxStyleNone   = runtimeconfig.CheckboxStyleNone
	DefaultMaxBlocks    = runtimeconfig.DefaultMaxBlocks
)

type (
	Config        = runtimeconfig.Config
	ListsConfig   = runtimeconfig.ListsConfig
	ParserConfig  = runtimeconfig.ParserConfig
	BlocksConfig  = runtimeconfig.BlocksConfig
	SlackConfig   = runtimeconfig.SlackConfig
	Features      = runtimeconfig.Features
	LoggingConfig = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
