package mdast

// Constructor helpers keep hand-built trees (tests, programmatic callers)
// readable. They mirror the node shapes one-to-one.

func NewRoot(children ...Block) *Root { return &Root{Children: children} }

func NewHeading(level int, children ...Inline) *Heading {
	return &Heading{Level: level, Children: children}
}

func NewParagraph(children ...Inline) *Paragraph { return &Paragraph{Children: children} }

func NewCode(lang, value string) *Code { return &Code{Lang: lang, Value: value} }

func NewOrderedList(items ...*ListItem) *List {
	return &List{Ordered: true, Start: 1, Items: items}
}

func NewUnorderedList(items ...*ListItem) *List { return &List{Items: items} }

func NewListItem(children ...Block) *ListItem { return &ListItem{Children: children} }

// NewCheckedListItem builds a task list item with the supplied checkbox state.
func NewCheckedListItem(checked bool, children ...Block) *ListItem {
	state := checked
	return &ListItem{Checked: &state, Children: children}
}

func NewBlockquote(children ...Block) *Blockquote { return &Blockquote{Children: children} }

func NewTable(header []*TableCell, rows ...[]*TableCell) *Table {
	return &Table{Header: header, Rows: rows}
}

func NewTableCell(children ...Inline) *TableCell { return &TableCell{Children: children} }

// NewTextRow builds a row of cells that each hold a single text node.
func NewTextRow(values ...string) []*TableCell {
	row := make([]*TableCell, 0, len(values))
	for _, value := range values {
		row = append(row, NewTableCell(NewText(value)))
	}
	return row
}

func NewThematicBreak() *ThematicBreak { return &ThematicBreak{} }

func NewHTML(value string) *HTML { return &HTML{Value: value} }

func NewText(value string) *Text { return &Text{Value: value} }

func NewEmphasis(children ...Inline) *Emphasis { return &Emphasis{Children: children} }

func NewStrong(children ...Inline) *Strong { return &Strong{Children: children} }

func NewDelete(children ...Inline) *Delete { return &Delete{Children: children} }

func NewInlineCode(value string) *InlineCode { return &InlineCode{Value: value} }

func NewLink(url string, children ...Inline) *Link { return &Link{URL: url, Children: children} }

func NewImage(url, alt, title string) *Image { return &Image{URL: url, Alt: alt, Title: title} }

func NewBreak() *Break { return &Break{} }

func NewInlineHTML(value string) *InlineHTML { return &InlineHTML{Value: value} }

func NewUnknown(typ string, children ...Node) *Unknown {
	return &Unknown{Type: typ, Children: children}
}
