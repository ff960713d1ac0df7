package mdast

// Kind identifies the variant of a Node.
type Kind string

const (
	KindRoot          Kind = "root"
	KindHeading       Kind = "heading"
	KindParagraph     Kind = "paragraph"
	KindCode          Kind = "code"
	KindList          Kind = "list"
	KindListItem      Kind = "listItem"
	KindBlockquote    Kind = "blockquote"
	KindTable         Kind = "table"
	KindTableCell     Kind = "tableCell"
	KindThematicBreak Kind = "thematicBreak"
	KindHTML          Kind = "html"

	KindText       Kind = "text"
	KindEmphasis   Kind = "emphasis"
	KindStrong     Kind = "strong"
	KindDelete     Kind = "delete"
	KindInlineCode Kind = "inlineCode"
	KindLink       Kind = "link"
	KindImage      Kind = "image"
	KindBreak      Kind = "break"
	KindInlineHTML Kind = "inlineHtml"
)

// Node is implemented by every tree node.
type Node interface {
	Kind() Kind
}

// Block is flow content: a direct child of Root, Blockquote or ListItem.
type Block interface {
	Node
	blockNode()
}

// Inline is phrasing content found inside paragraphs, headings and table cells.
type Inline interface {
	Node
	inlineNode()
}

// Root is the document node.
type Root struct {
	Children []Block
}

func (*Root) Kind() Kind { return KindRoot }

// Heading is an ATX or setext heading. Level ranges from 1 to 6.
type Heading struct {
	Level    int
	Children []Inline
}

// Paragraph groups a run of phrasing content.
type Paragraph struct {
	Children []Inline
}

// Code is a fenced or indented code block. Lang is empty when absent.
type Code struct {
	Lang  string
	Value string
}

// List is an ordered or unordered list. Start carries the ordered start number
// reported by the tokenizer; renderers are free to ignore it.
type List struct {
	Ordered bool
	Start   int
	Items   []*ListItem
}

// ListItem is a single list entry. Checked is nil for plain items and points to
// the checkbox state for task list items.
type ListItem struct {
	Checked  *bool
	Children []Block
}

// Blockquote wraps quoted flow content.
type Blockquote struct {
	Children []Block
}

// Table is a GFM table with one header row and zero or more data rows.
type Table struct {
	Header []*TableCell
	Rows   [][]*TableCell
}

// TableCell holds the phrasing content of a single table cell.
type TableCell struct {
	Children []Inline
}

// ThematicBreak is a horizontal rule.
type ThematicBreak struct{}

// HTML is a raw HTML block.
type HTML struct {
	Value string
}

func (*Heading) Kind() Kind       { return KindHeading }
func (*Paragraph) Kind() Kind     { return KindParagraph }
func (*Code) Kind() Kind          { return KindCode }
func (*List) Kind() Kind          { return KindList }
func (*ListItem) Kind() Kind      { return KindListItem }
func (*Blockquote) Kind() Kind    { return KindBlockquote }
func (*Table) Kind() Kind         { return KindTable }
func (*TableCell) Kind() Kind     { return KindTableCell }
func (*ThematicBreak) Kind() Kind { return KindThematicBreak }
func (*HTML) Kind() Kind          { return KindHTML }

func (*Heading) blockNode()       {}
func (*Paragraph) blockNode()     {}
func (*Code) blockNode()          {}
func (*List) blockNode()          {}
func (*Blockquote) blockNode()    {}
func (*Table) blockNode()         {}
func (*ThematicBreak) blockNode() {}
func (*HTML) blockNode()          {}

// Text is literal text. Value is unescaped; converters escape it for their target.
type Text struct {
	Value string
}

// Emphasis renders as italics.
type Emphasis struct {
	Children []Inline
}

// Strong renders as bold.
type Strong struct {
	Children []Inline
}

// Delete is GFM strikethrough.
type Delete struct {
	Children []Inline
}

// InlineCode is a code span.
type InlineCode struct {
	Value string
}

// Link is a hyperlink with phrasing children.
type Link struct {
	URL      string
	Title    string
	Children []Inline
}

// Image is an inline image. Alt and Title are empty when absent.
type Image struct {
	URL   string
	Alt   string
	Title string
}

// Break is a hard line break.
type Break struct{}

// InlineHTML is raw HTML found inside phrasing content.
type InlineHTML struct {
	Value string
}

func (*Text) Kind() Kind       { return KindText }
func (*Emphasis) Kind() Kind   { return KindEmphasis }
func (*Strong) Kind() Kind     { return KindStrong }
func (*Delete) Kind() Kind     { return KindDelete }
func (*InlineCode) Kind() Kind { return KindInlineCode }
func (*Link) Kind() Kind       { return KindLink }
func (*Image) Kind() Kind      { return KindImage }
func (*Break) Kind() Kind      { return KindBreak }
func (*InlineHTML) Kind() Kind { return KindInlineHTML }

func (*Text) inlineNode()       {}
func (*Emphasis) inlineNode()   {}
func (*Strong) inlineNode()     {}
func (*Delete) inlineNode()     {}
func (*InlineCode) inlineNode() {}
func (*Link) inlineNode()       {}
func (*Image) inlineNode()      {}
func (*Break) inlineNode()      {}
func (*InlineHTML) inlineNode() {}

// Unknown carries a construct the tree model has no variant for (footnotes,
// definition lists, ...). Type records the tokenizer's name for it.
type Unknown struct {
	Type     string
	Children []Node
}

func (u *Unknown) Kind() Kind {
	if u == nil || u.Type == "" {
		return "unknown"
	}
	return Kind(u.Type)
}

func (*Unknown) blockNode()  {}
func (*Unknown) inlineNode() {}
