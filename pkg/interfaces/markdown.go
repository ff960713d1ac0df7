package interfaces

import (
	"time"

	"github.com/goliatone/go-slackmd/pkg/mdast"
)

// Tokenizer turns raw Markdown into the node tree consumed by the converter.
// Implementations must be safe to reuse across calls.
type Tokenizer interface {
	// Parse tokenizes Markdown using the tokenizer's default settings.
	Parse(markdown []byte) (*mdast.Root, error)
	// ParseWithOptions tokenizes Markdown using the supplied overrides.
	ParseWithOptions(markdown []byte, opts ParseOptions) (*mdast.Root, error)
}

// ParseOptions customises tokenization, keeping option names readable for
// configuration unmarshalling and CLI flags.
type ParseOptions struct {
	// Extensions lists goldmark extension names. Empty selects the GFM set.
	Extensions []string
	// FrontMatter strips a leading YAML/TOML front matter block before parsing.
	FrontMatter bool
}

// Document represents a Markdown file with parsed metadata and content.
type Document struct {
	FilePath     string
	FrontMatter  FrontMatter
	Body         []byte
	LastModified time.Time
	// Checksum stores the SHA-256 digest of the original file content.
	Checksum []byte
}

// FrontMatter models the metadata keys understood by the converter. Anything
// else lands in Custom.
type FrontMatter struct {
	Title   string         `yaml:"title" json:"title"`
	Channel string         `yaml:"slack_channel" json:"slack_channel"`
	Thread  string         `yaml:"slack_thread" json:"slack_thread"`
	Tags    []string       `yaml:"tags" json:"tags"`
	Custom  map[string]any `yaml:",inline" json:"custom"`
	Raw     map[string]any `yaml:"-" json:"raw"`
}
