package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-slackmd/pkg/interfaces"
)

const (
	rootModule     = "slackmd"
	convertModule  = "slackmd.convert"
	markdownModule = "slackmd.markdown"
	publishModule  = "slackmd.publish"
	commandsModule = "slackmd.commands"
)

const (
	fieldDocumentPath = "document_path"
	fieldChannel      = "channel"
	fieldThread       = "thread_ts"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// RootLogger returns the top-level logger namespace.
func RootLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, rootModule)
}

// ConvertLogger returns the logger namespace reserved for block conversion.
func ConvertLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, convertModule)
}

// MarkdownLogger returns the logger namespace reserved for tokenizing and loading.
func MarkdownLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, markdownModule)
}

// PublishLogger returns the logger namespace reserved for Slack delivery.
func PublishLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, publishModule)
}

// CommandsLogger returns the logger namespace reserved for command handlers.
func CommandsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, commandsModule)
}

// WithDocumentContext enriches the logger with the document path and its
// delivery target. Empty values are ignored.
func WithDocumentContext(logger interfaces.Logger, path, channel, thread string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		fields[fieldDocumentPath] = trimmed
	}
	if trimmed := strings.TrimSpace(channel); trimmed != "" {
		fields[fieldChannel] = trimmed
	}
	if trimmed := strings.TrimSpace(thread); trimmed != "" {
		fields[fieldThread] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
