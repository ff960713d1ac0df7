// Package blocks builds the Slack Block Kit blocks emitted by the converter.
// The constructors here are the only place output blocks are created, so every
// text field passes through Truncate before it leaves the package.
package blocks

import (
	"github.com/slack-go/slack"
)

// Slack API field limits, counted in characters.
const (
	MaxTextLength         = 3000
	MaxHeaderLength       = 150
	MaxImageAltTextLength = 2000
	MaxImageTitleLength   = 2000
)

// Truncate keeps the first limit characters of value. Characters are counted
// as runes so multi-byte text is never split mid-character.
func Truncate(value string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if len(value) <= limit {
		return value
	}
	count := 0
	for i := range value {
		if count == limit {
			return value[:i]
		}
		count++
	}
	return value
}

// Section returns a section block with a mrkdwn text object.
func Section(text string) *slack.SectionBlock {
	return slack.NewSectionBlock(
		slack.NewTextBlockObject(slack.MarkdownType, Truncate(text, MaxTextLength), false, false),
		nil,
		nil,
	)
}

// Header returns a header block with a plain_text text object.
func Header(text string) *slack.HeaderBlock {
	return slack.NewHeaderBlock(
		slack.NewTextBlockObject(slack.PlainTextType, Truncate(text, MaxHeaderLength), false, false),
	)
}

// Image returns an image block. The title object is omitted when title is empty.
func Image(url, altText, title string) *slack.ImageBlock {
	var titleObject *slack.TextBlockObject
	if title != "" {
		titleObject = slack.NewTextBlockObject(slack.PlainTextType, Truncate(title, MaxImageTitleLength), false, false)
	}
	return slack.NewImageBlock(url, Truncate(altText, MaxImageAltTextLength), "", titleObject)
}

// Divider returns a divider block.
func Divider() *slack.DividerBlock {
	return slack.NewDividerBlock()
}

// Text returns the primary text of a section or header block and whether the
// block carries one.
func Text(block slack.Block) (string, bool) {
	switch b := block.(type) {
	case *slack.SectionBlock:
		if b.Text != nil {
			return b.Text.Text, true
		}
	case *slack.HeaderBlock:
		if b.Text != nil {
			return b.Text.Text, true
		}
	}
	return "", false
}
