package commands

import (
	"strings"

	"github.com/goliatone/go-slackmd/internal/logging"
	"github.com/goliatone/go-slackmd/pkg/interfaces"
)

const commandModuleRoot = "slackmd.commands"

// CommandLogger returns a logger scoped below the commands module, tagged with the
// command group so convert and publish runs can be filtered apart. A blank
// group yields the commands module logger itself.
func CommandLogger(provider interfaces.LoggerProvider, group string) interfaces.Logger {
	name := strings.TrimSpace(group)
	fields := map[string]any{"component": "command"}
	if name == "" {
		return logging.WithFields(logging.CommandsLogger(provider), fields)
	}
	fields["command_group"] = name
	return logging.WithFields(logging.ModuleLogger(provider, commandModuleRoot+"."+name), fields)
}
