package markdown

import (
	"bytes"
	"fmt"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-slackmd/pkg/interfaces"
)

// ParseFrontMatter extracts metadata and the Markdown body from source. Sources
// without front matter return empty metadata and the unchanged body.
func ParseFrontMatter(source []byte) (interfaces.FrontMatter, []byte, error) {
	var meta frontMatterEnvelope

	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return interfaces.FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	return envelopeToFrontMatter(meta), body, nil
}

// StripFrontMatter returns source without its leading front matter block.
func StripFrontMatter(source []byte) ([]byte, error) {
	_, body, err := ParseFrontMatter(source)
	return body, err
}

// BuildDocument assembles an interfaces.Document from the supplied file path,
// raw content and modification time.
func BuildDocument(path string, source []byte, modified time.Time) (*interfaces.Document, error) {
	fm, body, err := ParseFrontMatter(source)
	if err != nil {
		return nil, err
	}

	return &interfaces.Document{
		FilePath:     path,
		FrontMatter:  fm,
		Body:         body,
		LastModified: modified,
	}, nil
}

type frontMatterEnvelope struct {
	Title   string         `yaml:"title" toml:"title"`
	Channel string         `yaml:"slack_channel" toml:"slack_channel"`
	Thread  string         `yaml:"slack_thread" toml:"slack_thread"`
	Tags    []string       `yaml:"tags" toml:"tags"`
	Custom  map[string]any `yaml:",inline"`
}

func envelopeToFrontMatter(env frontMatterEnvelope) interfaces.FrontMatter {
	raw := make(map[string]any, len(env.Custom)+4)
	for key, value := range env.Custom {
		raw[key] = value
	}

	if env.Title != "" {
		raw["title"] = env.Title
	}
	if env.Channel != "" {
		raw["slack_channel"] = env.Channel
	}
	if env.Thread != "" {
		raw["slack_thread"] = env.Thread
	}
	if len(env.Tags) > 0 {
		raw["tags"] = append([]string(nil), env.Tags...)
	}

	return interfaces.FrontMatter{
		Title:   env.Title,
		Channel: env.Channel,
		Thread:  env.Thread,
		Tags:    append([]string(nil), env.Tags...),
		Custom:  cloneMap(env.Custom),
		Raw:     raw,
	}
}

func cloneMap(input map[string]any) map[string]any {
	out := make(map[string]any, len(input))
	for key, value := range input {
		out[key] = value
	}
	return out
}
