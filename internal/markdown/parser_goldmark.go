package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/goliatone/go-slackmd/pkg/interfaces"
	"github.com/goliatone/go-slackmd/pkg/mdast"
)

// GoldmarkTokenizer implements interfaces.Tokenizer using the goldmark engine.
// The tokenizer is stateless so callers can reuse a single instance across
// goroutines without additional locking.
type GoldmarkTokenizer struct {
	defaultOptions interfaces.ParseOptions
}

var _ interfaces.Tokenizer = (*GoldmarkTokenizer)(nil)

// NewGoldmarkTokenizer constructs a tokenizer with the supplied defaults.
func NewGoldmarkTokenizer(defaults interfaces.ParseOptions) *GoldmarkTokenizer {
	return &GoldmarkTokenizer{
		defaultOptions: defaults,
	}
}

// Parse tokenizes Markdown using the tokenizer's default configuration.
func (p *GoldmarkTokenizer) Parse(markdown []byte) (*mdast.Root, error) {
	return p.ParseWithOptions(markdown, p.defaultOptions)
}

// ParseWithOptions tokenizes Markdown using the provided options. The goldmark
// engine is built per call; it is cheap compared to the parse itself.
func (p *GoldmarkTokenizer) ParseWithOptions(markdown []byte, opts interfaces.ParseOptions) (*mdast.Root, error) {
	source := markdown
	if opts.FrontMatter {
		body, err := StripFrontMatter(markdown)
		if err != nil {
			return nil, err
		}
		source = body
	}

	engine := newGoldmarkEngine(opts)
	doc := engine.Parser().Parse(text.NewReader(source))
	return newTreeBuilder(source).root(doc), nil
}

// newGoldmarkEngine builds a goldmark.Markdown for the requested extensions.
// Unsupported extension names are ignored.
func newGoldmarkEngine(opts interfaces.ParseOptions) goldmark.Markdown {
	var engineOptions []goldmark.Option
	if exts := collectExtensions(opts.Extensions); len(exts) > 0 {
		engineOptions = append(engineOptions, goldmark.WithExtensions(exts...))
	}
	return goldmark.New(engineOptions...)
}

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
}

// SupportedExtensions reports whether every name is a known extension. The
// first unknown name is returned when it is not.
func SupportedExtensions(names []string) (string, bool) {
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		if _, ok := extensionRegistry[key]; !ok {
			return name, false
		}
	}
	return "", true
}

func collectExtensions(names []string) []goldmark.Extender {
	if len(names) == 0 {
		return []goldmark.Extender{
			extension.GFM,
		}
	}

	var extenders []goldmark.Extender
	seen := map[string]struct{}{}

	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}

		if _, ok := seen[key]; ok {
			continue
		}

		ext, ok := extensionRegistry[key]
		if !ok {
			continue
		}

		extenders = append(extenders, ext)
		seen[key] = struct{}{}
	}

	return extenders
}
