package interfaces

import (
	"context"

	"github.com/slack-go/slack"
)

// Publisher delivers converted blocks to Slack.
type Publisher interface {
	Publish(ctx context.Context, req PublishRequest) (*PublishResult, error)
}

// PublishRequest describes a single message post.
type PublishRequest struct {
	Channel string
	// ThreadTS posts the message as a reply when set.
	ThreadTS string
	Blocks   []slack.Block
	// FallbackText is shown in notifications. When empty the publisher derives
	// it from the first section or header block.
	FallbackText string
}

// PublishResult identifies the posted message.
type PublishResult struct {
	Channel   string
	Timestamp string
}
