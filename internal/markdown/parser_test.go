package markdown

import (
	"os"
	"reflect"
	"strings"
	"testing"

	"github.com/goliatone/go-slackmd/internal/validation"
	"github.com/goliatone/go-slackmd/pkg/interfaces"
	"github.com/goliatone/go-slackmd/pkg/mdast"
)

func TestParseFrontMatter(t *testing.T) {
	data := readFixture(t, "testdata/announcement.md")

	fm, body, err := ParseFrontMatter(data)
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}

	if fm.Title != "Release notes" {
		t.Fatalf("FrontMatter Title mismatch, got %q", fm.Title)
	}
	if fm.Channel != "C0123456" {
		t.Fatalf("FrontMatter Channel mismatch, got %q", fm.Channel)
	}
	if fm.Thread != "1700000000.000100" {
		t.Fatalf("FrontMatter Thread mismatch, got %q", fm.Thread)
	}
	if len(fm.Tags) != 2 || fm.Tags[0] != "release" {
		t.Fatalf("FrontMatter Tags mismatch: %#v", fm.Tags)
	}
	if fm.Custom["audience"] != "engineering" {
		t.Fatalf("FrontMatter Custom audience missing: %#v", fm.Custom)
	}
	if fm.Raw["slack_channel"] != "C0123456" {
		t.Fatalf("FrontMatter Raw channel missing: %#v", fm.Raw)
	}
	if strings.Contains(string(body), "slack_channel") || !strings.Contains(string(body), "# Release notes") {
		t.Fatalf("Markdown body not returned correctly: %q", string(body))
	}
}

func TestParseFrontMatterWithoutBlock(t *testing.T) {
	fm, body, err := ParseFrontMatter([]byte("# Plain"))
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}
	if fm.Title != "" || len(fm.Custom) != 0 {
		t.Fatalf("expected empty front matter, got %#v", fm)
	}
	if string(body) != "# Plain" {
		t.Fatalf("expected body to be unchanged, got %q", string(body))
	}
}

func TestGoldmarkTokenizer_Parse(t *testing.T) {
	tokenizer := NewGoldmarkTokenizer(interfaces.ParseOptions{})

	root, err := tokenizer.Parse([]byte("# Heading\n\nHello **world**"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(root.Children) != 2 {
		t.Fatalf("expected 2 top-level nodes, got %d", len(root.Children))
	}

	heading, ok := root.Children[0].(*mdast.Heading)
	if !ok || heading.Level != 1 {
		t.Fatalf("expected level 1 heading, got %#v", root.Children[0])
	}
	if text := textOf(t, heading.Children[0]); text != "Heading" {
		t.Fatalf("expected heading text, got %q", text)
	}

	paragraph := root.Children[1].(*mdast.Paragraph)
	if len(paragraph.Children) != 2 {
		t.Fatalf("expected text and strong, got %#v", paragraph.Children)
	}
	if text := textOf(t, paragraph.Children[0]); text != "Hello " {
		t.Fatalf("expected leading text, got %q", text)
	}
	strong, ok := paragraph.Children[1].(*mdast.Strong)
	if !ok || textOf(t, strong.Children[0]) != "world" {
		t.Fatalf("expected strong world, got %#v", paragraph.Children[1])
	}
}

func TestGoldmarkTokenizer_TaskList(t *testing.T) {
	root := parse(t, "- [x] done\n- [ ] todo\n- plain\n")

	list, ok := root.Children[0].(*mdast.List)
	if !ok {
		t.Fatalf("expected list, got %#v", root.Children[0])
	}
	if list.Ordered || len(list.Items) != 3 {
		t.Fatalf("expected 3 unordered items, got %#v", list)
	}
	if list.Items[0].Checked == nil || !*list.Items[0].Checked {
		t.Fatalf("expected first item checked")
	}
	if list.Items[1].Checked == nil || *list.Items[1].Checked {
		t.Fatalf("expected second item unchecked")
	}
	if list.Items[2].Checked != nil {
		t.Fatalf("expected plain item without checkbox")
	}
	first := list.Items[0].Children[0].(*mdast.Paragraph)
	if text := textOf(t, first.Children[0]); text != "done" {
		t.Fatalf("expected checkbox stripped from text, got %q", text)
	}
}

func TestGoldmarkTokenizer_OrderedListStart(t *testing.T) {
	root := parse(t, "3. a\n4. b\n")

	list := root.Children[0].(*mdast.List)
	if !list.Ordered || list.Start != 3 || len(list.Items) != 2 {
		t.Fatalf("unexpected list %#v", list)
	}
}

func TestGoldmarkTokenizer_Table(t *testing.T) {
	root := parse(t, "| a | b |\n| --- | --- |\n| c | d |\n")

	table, ok := root.Children[0].(*mdast.Table)
	if !ok {
		t.Fatalf("expected table, got %#v", root.Children[0])
	}
	if len(table.Header) != 2 || len(table.Rows) != 1 || len(table.Rows[0]) != 2 {
		t.Fatalf("unexpected table shape %#v", table)
	}
	if text := textOf(t, table.Header[1].Children[0]); text != "b" {
		t.Fatalf("expected header cell b, got %q", text)
	}
	if text := textOf(t, table.Rows[0][0].Children[0]); text != "c" {
		t.Fatalf("expected data cell c, got %q", text)
	}
}

func TestGoldmarkTokenizer_Code(t *testing.T) {
	root := parse(t, "```go\nfmt.Println(1)\nreturn\n```\n\n    indented\n")

	fenced := root.Children[0].(*mdast.Code)
	if fenced.Lang != "go" || fenced.Value != "fmt.Println(1)\nreturn" {
		t.Fatalf("unexpected fenced code %#v", fenced)
	}
	indented := root.Children[1].(*mdast.Code)
	if indented.Lang != "" || indented.Value != "indented" {
		t.Fatalf("unexpected indented code %#v", indented)
	}
}

func TestGoldmarkTokenizer_LineBreaks(t *testing.T) {
	root := parse(t, "a\nb\n\nc  \nd\n")

	soft := root.Children[0].(*mdast.Paragraph)
	if len(soft.Children) != 1 || textOf(t, soft.Children[0]) != "a\nb" {
		t.Fatalf("expected soft break kept as newline, got %#v", soft.Children)
	}

	hard := root.Children[1].(*mdast.Paragraph)
	if len(hard.Children) != 3 {
		t.Fatalf("expected text, break, text, got %#v", hard.Children)
	}
	if _, ok := hard.Children[1].(*mdast.Break); !ok {
		t.Fatalf("expected break node, got %#v", hard.Children[1])
	}
}

func TestGoldmarkTokenizer_ResolvesEscapesAndEntities(t *testing.T) {
	root := parse(t, `a \*b\* &amp; c`)

	paragraph := root.Children[0].(*mdast.Paragraph)
	if len(paragraph.Children) != 1 {
		t.Fatalf("expected a single text node, got %#v", paragraph.Children)
	}
	if text := textOf(t, paragraph.Children[0]); text != "a *b* & c" {
		t.Fatalf("expected resolved text, got %q", text)
	}
}

func TestGoldmarkTokenizer_Inlines(t *testing.T) {
	root := parse(t, "see https://example.com and ![alt](https://img.example/x.png \"t\") `code` ~~gone~~ <img src=\"https://i\">\n")

	var (
		link   *mdast.Link
		image  *mdast.Image
		code   *mdast.InlineCode
		del    *mdast.Delete
		inline *mdast.InlineHTML
	)
	for _, child := range root.Children[0].(*mdast.Paragraph).Children {
		switch n := child.(type) {
		case *mdast.Link:
			link = n
		case *mdast.Image:
			image = n
		case *mdast.InlineCode:
			code = n
		case *mdast.Delete:
			del = n
		case *mdast.InlineHTML:
			inline = n
		}
	}

	if link == nil || link.URL != "https://example.com" || textOf(t, link.Children[0]) != "https://example.com" {
		t.Fatalf("expected linkified URL, got %#v", link)
	}
	if image == nil || image.URL != "https://img.example/x.png" || image.Alt != "alt" || image.Title != "t" {
		t.Fatalf("unexpected image %#v", image)
	}
	if code == nil || code.Value != "code" {
		t.Fatalf("unexpected inline code %#v", code)
	}
	if del == nil || textOf(t, del.Children[0]) != "gone" {
		t.Fatalf("unexpected strikethrough %#v", del)
	}
	if inline == nil || inline.Value != `<img src="https://i">` {
		t.Fatalf("unexpected inline html %#v", inline)
	}
}

func TestGoldmarkTokenizer_EmptyDestinations(t *testing.T) {
	cases := []struct {
		name   string
		source string
		want   []mdast.Inline
	}{
		{
			name:   "link keeps its text",
			source: "see [docs]() here\n",
			want:   []mdast.Inline{&mdast.Text{Value: "see docs here"}},
		},
		{
			name:   "link keeps nested markup",
			source: "see [**docs**](<>) here\n",
			want: []mdast.Inline{
				&mdast.Text{Value: "see "},
				&mdast.Strong{Children: []mdast.Inline{&mdast.Text{Value: "docs"}}},
				&mdast.Text{Value: " here"},
			},
		},
		{
			name:   "image is dropped",
			source: "![logo]() after\n",
			want:   []mdast.Inline{&mdast.Text{Value: " after"}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			root := parse(t, tc.source)
			if err := validation.ValidateTree(root); err != nil {
				t.Fatalf("ValidateTree rejected tokenizer output: %v", err)
			}

			paragraph, ok := root.Children[0].(*mdast.Paragraph)
			if !ok {
				t.Fatalf("expected paragraph, got %#v", root.Children[0])
			}
			if !reflect.DeepEqual(paragraph.Children, tc.want) {
				t.Fatalf("unexpected inlines %#v", paragraph.Children)
			}
		})
	}
}

func TestGoldmarkTokenizer_HTMLBlock(t *testing.T) {
	root := parse(t, "<div>\n<img src=\"https://x\">\n</div>\n")

	block, ok := root.Children[0].(*mdast.HTML)
	if !ok {
		t.Fatalf("expected html block, got %#v", root.Children[0])
	}
	if !strings.Contains(block.Value, `<img src="https://x">`) {
		t.Fatalf("expected html value to keep markup, got %q", block.Value)
	}
}

func TestGoldmarkTokenizer_UnsupportedNodesBecomeUnknown(t *testing.T) {
	tokenizer := NewGoldmarkTokenizer(interfaces.ParseOptions{Extensions: []string{"gfm", "footnote"}})

	root, err := tokenizer.Parse([]byte("text[^1]\n\n[^1]: note\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	unknown := 0
	if err := mdast.Walk(root, func(node mdast.Node, _ string) error {
		if _, ok := node.(*mdast.Unknown); ok {
			unknown++
		}
		return nil
	}); err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if unknown == 0 {
		t.Fatalf("expected footnote nodes to map to unknown nodes")
	}
}

func TestGoldmarkTokenizer_FrontMatterOption(t *testing.T) {
	source := readFixture(t, "testdata/announcement.md")

	stripped, err := NewGoldmarkTokenizer(interfaces.ParseOptions{FrontMatter: true}).Parse(source)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, ok := stripped.Children[0].(*mdast.Heading); !ok {
		t.Fatalf("expected heading first once front matter is stripped, got %#v", stripped.Children[0])
	}

	kept, err := NewGoldmarkTokenizer(interfaces.ParseOptions{}).Parse(source)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, ok := kept.Children[0].(*mdast.ThematicBreak); !ok {
		t.Fatalf("expected front matter fence to parse as a thematic break, got %#v", kept.Children[0])
	}
}

func TestCollectExtensions(t *testing.T) {
	if got := collectExtensions(nil); len(got) != 1 {
		t.Fatalf("expected GFM default, got %d extensions", len(got))
	}
	if got := collectExtensions([]string{"Table", "table", " strikethrough ", "bogus", ""}); len(got) != 2 {
		t.Fatalf("expected deduplicated known extensions, got %d", len(got))
	}

	if name, ok := SupportedExtensions([]string{"gfm", "tasklist"}); !ok {
		t.Fatalf("expected known extensions, rejected %q", name)
	}
	if name, ok := SupportedExtensions([]string{"gfm", "emoji"}); ok || name != "emoji" {
		t.Fatalf("expected emoji to be rejected, got %q %v", name, ok)
	}
}

func parse(t *testing.T, source string) *mdast.Root {
	t.Helper()
	root, err := NewGoldmarkTokenizer(interfaces.ParseOptions{}).Parse([]byte(source))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(root.Children) == 0 {
		t.Fatalf("expected parsed nodes for %q", source)
	}
	return root
}

func textOf(t *testing.T, node mdast.Inline) string {
	t.Helper()
	text, ok := node.(*mdast.Text)
	if !ok {
		t.Fatalf("expected text node, got %#v", node)
	}
	return text.Value
}

func readFixture(tb testing.TB, path string) []byte {
	tb.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		tb.Fatalf("read fixture %s: %v", path, err)
	}
	return data
}
