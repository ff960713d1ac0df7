package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to command failures that were not already categorised
// by the conversion or publishing layers.
const (
	CodeCommandInvalid   = "SLACKMD_COMMAND_INVALID"
	CodeCommandCancelled = "SLACKMD_COMMAND_CANCELLED"
	CodeCommandTimeout   = "SLACKMD_COMMAND_TIMEOUT"
	CodeCommandFailed    = "SLACKMD_COMMAND_FAILED"
)

func commandMetadata(messageType, operation string) map[string]any {
	meta := map[string]any{"command": messageType}
	if operation != "" {
		meta["operation"] = operation
	}
	return meta
}

func wrapValidationError(err error, messageType string) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "command message invalid").
		WithTextCode(CodeCommandInvalid).
		WithMetadata(commandMetadata(messageType, ""))
}

// wrapContextError keeps cancellation distinguishable from a deadline so
// callers can tell an interrupted CLI run from a slow Slack API.
func wrapContextError(err error, messageType, operation string) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	code, msg := CodeCommandCancelled, "command cancelled"
	if errors.Is(err, context.DeadlineExceeded) {
		code, msg = CodeCommandTimeout, "command deadline exceeded"
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, msg).
		WithTextCode(code).
		WithMetadata(commandMetadata(messageType, operation))
}

func wrapExecuteError(err error, messageType, operation string) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "command failed").
		WithTextCode(CodeCommandFailed).
		WithMetadata(commandMetadata(messageType, operation))
}
