package convertcmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	convertFileMessageType = "slackmd.convert.file"
	publishFileMessageType = "slackmd.publish.file"
)

// ConvertFileCommand converts a single Markdown file into Block Kit blocks.
type ConvertFileCommand struct {
	// Path selects the Markdown file, relative to the loader's filesystem.
	Path string `json:"path"`
}

// Type implements command.Message.
func (ConvertFileCommand) Type() string { return convertFileMessageType }

// Validate ensures a path is present before handlers execute.
func (cmd ConvertFileCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Path, validation.Required, validation.By(notBlank(
			"slackmd.convert.file.path_required", "path is required",
		))),
	)
}

// PublishFileCommand converts a Markdown file and posts the blocks to Slack.
// Channel and ThreadTS override the document's front matter when set.
type PublishFileCommand struct {
	Path     string `json:"path"`
	Channel  string `json:"channel,omitempty"`
	ThreadTS string `json:"thread_ts,omitempty"`
	// FallbackText replaces the notification text derived from the blocks.
	FallbackText string `json:"fallback_text,omitempty"`
}

// Type implements command.Message.
func (PublishFileCommand) Type() string { return publishFileMessageType }

// Validate ensures a path is present and that an explicit thread has a usable timestamp.
func (cmd PublishFileCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Path, validation.Required, validation.By(notBlank(
			"slackmd.publish.file.path_required", "path is required",
		))),
		validation.Field(&cmd.ThreadTS, validation.By(threadTimestamp)),
	)
}

func notBlank(code, message string) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if strings.TrimSpace(s) == "" {
			return validation.NewError(code, message)
		}
		return nil
	}
}

// threadTimestamp accepts Slack message timestamps of the form "seconds.micros".
func threadTimestamp(value any) error {
	ts, _ := value.(string)
	ts = strings.TrimSpace(ts)
	if ts == "" {
		return nil
	}
	seconds, micros, ok := strings.Cut(ts, ".")
	if !ok || !isDigits(seconds) || !isDigits(micros) {
		return validation.NewError("slackmd.publish.file.thread_ts_invalid", "thread timestamp must look like 1700000000.000100")
	}
	return nil
}

func isDigits(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
