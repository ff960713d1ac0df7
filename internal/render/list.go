package render

import (
	"strconv"
	"strings"

	"github.com/slack-go/slack"

	"github.com/goliatone/go-slackmd/internal/blocks"
	"github.com/goliatone/go-slackmd/internal/mrkdwn"
	"github.com/goliatone/go-slackmd/pkg/mdast"
)

// parseList flattens a list into one section, one line per item. Ordered lists
// are numbered from 1 whatever their start value; task items use the
// configured checkbox prefix; everything else gets a bullet.
func parseList(list *mdast.List, opts ListOptions) *slack.SectionBlock {
	lines := make([]string, 0, len(list.Items))
	index := 0
	for _, item := range list.Items {
		if item == nil {
			continue
		}
		text := listItemText(item)
		switch {
		case list.Ordered:
			index++
			lines = append(lines, strconv.Itoa(index)+". "+text)
		case item.Checked != nil:
			lines = append(lines, opts.checkboxPrefix(*item.Checked)+text)
		default:
			lines = append(lines, Bullet+text)
		}
	}
	return blocks.Section(strings.Join(lines, "\n"))
}

// listItemText renders the item's first paragraph. Images are dropped since a
// section line cannot hold them; nested blocks are not supported.
func listItemText(item *mdast.ListItem) string {
	if len(item.Children) == 0 {
		return ""
	}
	paragraph, ok := item.Children[0].(*mdast.Paragraph)
	if !ok || paragraph == nil {
		return ""
	}
	var b strings.Builder
	for _, child := range paragraph.Children {
		if mdast.IsNil(child) {
			continue
		}
		if _, isImage := child.(*mdast.Image); isImage {
			continue
		}
		b.WriteString(mrkdwn.Format(child))
	}
	return b.String()
}
