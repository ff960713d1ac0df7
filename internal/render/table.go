package render

import (
	"strings"

	"github.com/slack-go/slack"

	"github.com/goliatone/go-slackmd/internal/blocks"
	"github.com/goliatone/go-slackmd/internal/mrkdwn"
	"github.com/goliatone/go-slackmd/pkg/mdast"
)

const tableSeparator = "---"

// parseTable renders the table as pipe-delimited rows inside a code fence so
// Slack shows it monospaced.
func parseTable(table *mdast.Table) *slack.SectionBlock {
	lines := make([]string, 0, len(table.Rows)+2)
	lines = append(lines, pipeRow(cellTexts(table.Header)))

	separators := make([]string, len(table.Header))
	for i := range separators {
		separators[i] = tableSeparator
	}
	lines = append(lines, pipeRow(separators))

	for _, row := range table.Rows {
		lines = append(lines, pipeRow(cellTexts(row)))
	}
	return blocks.Section(fence + "\n" + strings.Join(lines, "\n") + "\n" + fence)
}

func pipeRow(cells []string) string {
	return "| " + strings.Join(cells, " | ") + " |"
}

func cellTexts(cells []*mdast.TableCell) []string {
	out := make([]string, 0, len(cells))
	for _, cell := range cells {
		if cell == nil {
			out = append(out, "")
			continue
		}
		out = append(out, cellText(cell))
	}
	return out
}

// cellText formats a cell's phrasing content. Images cannot live inside the
// fenced text, so they are written out as their URL.
func cellText(cell *mdast.TableCell) string {
	var b strings.Builder
	for _, child := range cell.Children {
		if mdast.IsNil(child) {
			continue
		}
		if image, ok := child.(*mdast.Image); ok {
			b.WriteString(imageLabel(image))
			continue
		}
		b.WriteString(mrkdwn.Format(child))
	}
	return b.String()
}

func imageLabel(image *mdast.Image) string {
	for _, candidate := range []string{image.URL, image.Title, image.Alt} {
		if candidate != "" {
			return candidate
		}
	}
	return "image"
}
