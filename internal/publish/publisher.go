// Package publish posts converted blocks to Slack through the Web API.
package publish

import (
	"context"
	"errors"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-slackmd/internal/blocks"
	"github.com/goliatone/go-slackmd/internal/logging"
	"github.com/goliatone/go-slackmd/pkg/interfaces"
	"github.com/slack-go/slack"
)

const (
	textCodeChannelRequired = "SLACK_CHANNEL_REQUIRED"
	textCodeNoBlocks        = "SLACK_NO_BLOCKS"
	textCodePostFailed      = "SLACK_POST_FAILED"
	textCodeRateLimited     = "SLACK_RATE_LIMITED"
)

// fallbackLimit keeps notification text well under Slack's 40k message cap.
const fallbackLimit = 3000

var (
	ErrChannelRequired = errors.New("publish: channel is required")
	ErrNoBlocks        = errors.New("publish: no blocks to post")
)

// poster is the subset of *slack.Client used by the Publisher.
type poster interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

// Config configures a Publisher.
type Config struct {
	Token string
	// APIURL overrides the Slack Web API endpoint. It must end with a slash.
	APIURL string
	// UnfurlLinks keeps Slack's link previews; they are disabled by default.
	UnfurlLinks bool
}

// Publisher posts blocks with chat.postMessage.
type Publisher struct {
	client      poster
	logger      interfaces.Logger
	unfurlLinks bool
}

var _ interfaces.Publisher = (*Publisher)(nil)

// Option customises a Publisher.
type Option func(*Publisher)

// WithLogger sets the logger used for delivery events.
func WithLogger(logger interfaces.Logger) Option {
	return func(p *Publisher) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithClient replaces the slack-go client, mostly for tests.
func WithClient(client *slack.Client) Option {
	return func(p *Publisher) {
		if client != nil {
			p.client = client
		}
	}
}

// New builds a Publisher from cfg.
func New(cfg Config, opts ...Option) *Publisher {
	var clientOpts []slack.Option
	if apiURL := strings.TrimSpace(cfg.APIURL); apiURL != "" {
		if !strings.HasSuffix(apiURL, "/") {
			apiURL += "/"
		}
		clientOpts = append(clientOpts, slack.OptionAPIURL(apiURL))
	}
	p := &Publisher{
		client:      slack.New(cfg.Token, clientOpts...),
		logger:      logging.NoOp(),
		unfurlLinks: cfg.UnfurlLinks,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Publish posts req.Blocks to req.Channel, threading the message under
// req.ThreadTS when set.
func (p *Publisher) Publish(ctx context.Context, req interfaces.PublishRequest) (*interfaces.PublishResult, error) {
	channel := strings.TrimSpace(req.Channel)
	if channel == "" {
		return nil, goerrors.Wrap(ErrChannelRequired, goerrors.CategoryValidation, "slack channel missing").
			WithTextCode(textCodeChannelRequired)
	}
	if len(req.Blocks) == 0 {
		return nil, goerrors.Wrap(ErrNoBlocks, goerrors.CategoryValidation, "nothing to publish").
			WithTextCode(textCodeNoBlocks)
	}

	fallback := strings.TrimSpace(req.FallbackText)
	if fallback == "" {
		fallback = FallbackText(req.Blocks)
	}

	options := []slack.MsgOption{
		slack.MsgOptionBlocks(req.Blocks...),
		slack.MsgOptionText(fallback, false),
	}
	if thread := strings.TrimSpace(req.ThreadTS); thread != "" {
		options = append(options, slack.MsgOptionTS(thread))
	}
	if !p.unfurlLinks {
		options = append(options, slack.MsgOptionDisableLinkUnfurl())
	}

	logger := logging.WithFields(p.logger.WithContext(ctx), map[string]any{
		"channel":   channel,
		"thread_ts": req.ThreadTS,
		"blocks":    len(req.Blocks),
	})

	respChannel, timestamp, err := p.client.PostMessageContext(ctx, channel, options...)
	if err != nil {
		logger.Error("publish.failed", "error", err)
		return nil, wrapSlackError(err)
	}
	logger.Info("publish.posted", "message_ts", timestamp)

	if respChannel == "" {
		respChannel = channel
	}
	return &interfaces.PublishResult{
		Channel:   respChannel,
		Timestamp: timestamp,
	}, nil
}

// FallbackText returns the text of the first section or header block, used
// as the notification text of a message.
func FallbackText(items []slack.Block) string {
	for _, block := range items {
		if text, ok := blocks.Text(block); ok && strings.TrimSpace(text) != "" {
			return blocks.Truncate(text, fallbackLimit)
		}
	}
	return ""
}

func wrapSlackError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var rateErr *slack.RateLimitedError
	if errors.As(err, &rateErr) {
		return goerrors.Wrap(err, goerrors.CategoryRateLimit, "slack rate limit exceeded").
			WithTextCode(textCodeRateLimited).
			WithMetadata(map[string]any{"retry_after": rateErr.RetryAfter.String()})
	}
	return goerrors.Wrap(err, goerrors.CategoryExternal, "slack post failed").
		WithTextCode(textCodePostFailed)
}
