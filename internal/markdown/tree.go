package markdown

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/goliatone/go-slackmd/pkg/mdast"
)

// treeBuilder maps a goldmark AST onto mdast. Text values are resolved
// (entities, numeric references, backslash escapes) but never escaped for
// Slack; that happens when the tree is rendered.
type treeBuilder struct {
	source []byte
}

func newTreeBuilder(source []byte) *treeBuilder {
	return &treeBuilder{source: source}
}

func (b *treeBuilder) root(doc ast.Node) *mdast.Root {
	return &mdast.Root{Children: b.blocks(doc)}
}

func (b *treeBuilder) blocks(parent ast.Node) []mdast.Block {
	var out []mdast.Block
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		if block := b.block(child); block != nil {
			out = append(out, block)
		}
	}
	return out
}

func (b *treeBuilder) block(node ast.Node) mdast.Block {
	switch n := node.(type) {
	case *ast.Heading:
		return &mdast.Heading{Level: n.Level, Children: b.inlines(n)}
	case *ast.Paragraph, *ast.TextBlock:
		return &mdast.Paragraph{Children: b.inlines(n)}
	case *ast.FencedCodeBlock:
		return &mdast.Code{Lang: string(n.Language(b.source)), Value: b.lines(n.Lines())}
	case *ast.CodeBlock:
		return &mdast.Code{Value: b.lines(n.Lines())}
	case *ast.List:
		return b.list(n)
	case *ast.Blockquote:
		return &mdast.Blockquote{Children: b.blocks(n)}
	case *ast.ThematicBreak:
		return &mdast.ThematicBreak{}
	case *ast.HTMLBlock:
		value := b.lines(n.Lines())
		if n.HasClosure() {
			closure := strings.TrimSuffix(string(n.ClosureLine.Value(b.source)), "\n")
			if value != "" {
				value += "\n"
			}
			value += closure
		}
		return &mdast.HTML{Value: value}
	case *extast.Table:
		return b.table(n)
	default:
		return &mdast.Unknown{Type: kindName(node), Children: b.unknownChildren(node)}
	}
}

func (b *treeBuilder) lines(lines *text.Segments) string {
	var sb strings.Builder
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		sb.Write(segment.Value(b.source))
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func (b *treeBuilder) list(n *ast.List) *mdast.List {
	list := &mdast.List{Ordered: n.IsOrdered(), Start: n.Start}
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		item, ok := child.(*ast.ListItem)
		if !ok {
			continue
		}
		list.Items = append(list.Items, b.listItem(item))
	}
	return list
}

// listItem lifts a leading task checkbox into ListItem.Checked. The checkbox
// only ever appears as the first inline of the item's first text block.
func (b *treeBuilder) listItem(n *ast.ListItem) *mdast.ListItem {
	item := &mdast.ListItem{Children: b.blocks(n)}

	first := n.FirstChild()
	if first == nil {
		return item
	}
	box, ok := first.FirstChild().(*extast.TaskCheckBox)
	if !ok {
		return item
	}
	checked := box.IsChecked
	item.Checked = &checked

	if len(item.Children) > 0 {
		if paragraph, ok := item.Children[0].(*mdast.Paragraph); ok && len(paragraph.Children) > 0 {
			if txt, ok := paragraph.Children[0].(*mdast.Text); ok {
				txt.Value = strings.TrimLeftFunc(txt.Value, unicode.IsSpace)
			}
		}
	}
	return item
}

func (b *treeBuilder) table(n *extast.Table) *mdast.Table {
	table := &mdast.Table{}
	for row := n.FirstChild(); row != nil; row = row.NextSibling() {
		switch row.(type) {
		case *extast.TableHeader:
			table.Header = b.cells(row)
		case *extast.TableRow:
			table.Rows = append(table.Rows, b.cells(row))
		}
	}
	return table
}

func (b *treeBuilder) cells(row ast.Node) []*mdast.TableCell {
	var cells []*mdast.TableCell
	for child := row.FirstChild(); child != nil; child = child.NextSibling() {
		if _, ok := child.(*extast.TableCell); !ok {
			continue
		}
		cells = append(cells, &mdast.TableCell{Children: b.inlines(child)})
	}
	return cells
}

func (b *treeBuilder) inlines(parent ast.Node) []mdast.Inline {
	var out []mdast.Inline
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		out = b.appendInline(out, child)
	}
	return out
}

func (b *treeBuilder) appendInline(out []mdast.Inline, node ast.Node) []mdast.Inline {
	switch n := node.(type) {
	case *ast.Text:
		value := n.Segment.Value(b.source)
		if n.IsRaw() {
			out = appendText(out, string(value))
		} else {
			out = appendText(out, resolve(value))
		}
		switch {
		case n.HardLineBreak():
			out = append(out, &mdast.Break{})
		case n.SoftLineBreak():
			out = appendText(out, "\n")
		}
		return out
	case *ast.String:
		if n.IsCode() || n.IsRaw() {
			return appendText(out, string(n.Value))
		}
		return appendText(out, resolve(n.Value))
	case *ast.Emphasis:
		if n.Level >= 2 {
			return append(out, &mdast.Strong{Children: b.inlines(n)})
		}
		return append(out, &mdast.Emphasis{Children: b.inlines(n)})
	case *extast.Strikethrough:
		return append(out, &mdast.Delete{Children: b.inlines(n)})
	case *ast.CodeSpan:
		return append(out, &mdast.InlineCode{Value: string(n.Text(b.source))})
	case *ast.Link:
		// A link without a destination keeps only its text.
		if strings.TrimSpace(string(n.Destination)) == "" {
			for child := n.FirstChild(); child != nil; child = child.NextSibling() {
				out = b.appendInline(out, child)
			}
			return out
		}
		return append(out, &mdast.Link{
			URL:      string(n.Destination),
			Title:    string(n.Title),
			Children: b.inlines(n),
		})
	case *ast.AutoLink:
		url := string(n.URL(b.source))
		if n.AutoLinkType == ast.AutoLinkEmail && !strings.HasPrefix(strings.ToLower(url), "mailto:") {
			url = "mailto:" + url
		}
		return append(out, &mdast.Link{
			URL:      url,
			Children: []mdast.Inline{&mdast.Text{Value: string(n.Label(b.source))}},
		})
	case *ast.Image:
		if strings.TrimSpace(string(n.Destination)) == "" {
			return out
		}
		return append(out, &mdast.Image{
			URL:   string(n.Destination),
			Alt:   resolve(n.Text(b.source)),
			Title: string(n.Title),
		})
	case *ast.RawHTML:
		var sb strings.Builder
		for i := 0; i < n.Segments.Len(); i++ {
			segment := n.Segments.At(i)
			sb.Write(segment.Value(b.source))
		}
		return append(out, &mdast.InlineHTML{Value: sb.String()})
	case *extast.TaskCheckBox:
		return out
	default:
		return append(out, &mdast.Unknown{Type: kindName(node), Children: b.unknownChildren(node)})
	}
}

func (b *treeBuilder) unknownChildren(node ast.Node) []mdast.Node {
	var out []mdast.Node
	if node.Type() == ast.TypeInline {
		for _, inline := range b.inlines(node) {
			out = append(out, inline)
		}
		return out
	}
	for _, block := range b.blocks(node) {
		out = append(out, block)
	}
	return out
}

// appendText merges value into a trailing text node when there is one.
func appendText(out []mdast.Inline, value string) []mdast.Inline {
	if value == "" {
		return out
	}
	if n := len(out); n > 0 {
		if last, ok := out[n-1].(*mdast.Text); ok {
			last.Value += value
			return out
		}
	}
	return append(out, &mdast.Text{Value: value})
}

func resolve(value []byte) string {
	return string(util.UnescapePunctuations(util.ResolveNumericReferences(util.ResolveEntityNames(value))))
}

// kindName lower-cases the first letter of a goldmark kind ("FootnoteList"
// becomes "footnoteList").
func kindName(node ast.Node) string {
	name := node.Kind().String()
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return string(unicode.ToLower(r)) + name[size:]
}
