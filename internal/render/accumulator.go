package render

import (
	"strings"

	"github.com/slack-go/slack"

	"github.com/goliatone/go-slackmd/internal/blocks"
	"github.com/goliatone/go-slackmd/internal/mrkdwn"
	"github.com/goliatone/go-slackmd/pkg/mdast"
)

// segment is either a run of mrkdwn text or a single image block.
type segment struct {
	text  *strings.Builder
	image *slack.ImageBlock
}

// runAccumulator folds the phrasing content of one paragraph into segments.
// Consecutive non-image nodes share a text run; an image closes the current
// run so the next text opens a new one.
type runAccumulator struct {
	segments []segment
}

func (a *runAccumulator) appendText(text string) {
	if n := len(a.segments); n > 0 && a.segments[n-1].text != nil {
		a.segments[n-1].text.WriteString(text)
		return
	}
	run := &strings.Builder{}
	run.WriteString(text)
	a.segments = append(a.segments, segment{text: run})
}

func (a *runAccumulator) appendImage(image *slack.ImageBlock) {
	a.segments = append(a.segments, segment{image: image})
}

func (a *runAccumulator) add(node mdast.Inline) {
	switch n := node.(type) {
	case *mdast.Image:
		a.appendImage(imageBlock(n))
	case *mdast.InlineHTML:
		refs := ExtractImages(n.Value)
		for _, ref := range refs {
			a.appendImage(ref.Block())
		}
		if len(refs) == 0 {
			a.appendText(mrkdwn.Format(n))
		}
	default:
		a.appendText(mrkdwn.Format(n))
	}
}

// blocks materialises the segments. Text runs pass through transform (when
// non-nil) before reaching the section constructor; empty runs are dropped.
func (a *runAccumulator) blocks(transform func(string) string) []slack.Block {
	out := make([]slack.Block, 0, len(a.segments))
	for _, seg := range a.segments {
		if seg.image != nil {
			out = append(out, seg.image)
			continue
		}
		text := seg.text.String()
		if text == "" {
			continue
		}
		if transform != nil {
			text = transform(text)
		}
		out = append(out, blocks.Section(text))
	}
	return out
}

func imageBlock(image *mdast.Image) *slack.ImageBlock {
	alt := image.Alt
	if alt == "" {
		alt = image.Title
	}
	if alt == "" {
		alt = image.URL
	}
	return blocks.Image(image.URL, alt, image.Title)
}
