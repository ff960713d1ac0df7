package render

import (
	"strings"

	"github.com/slack-go/slack"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/goliatone/go-slackmd/internal/blocks"
)

// ImageRef is an <img> tag found in a raw HTML fragment.
type ImageRef struct {
	URL   string
	Alt   string
	Title string
}

// Block converts the reference into an image block, falling back to the URL
// for the alt text.
func (r ImageRef) Block() *slack.ImageBlock {
	alt := r.Alt
	if alt == "" {
		alt = r.URL
	}
	return blocks.Image(r.URL, alt, r.Title)
}

// ExtractImages scans an HTML fragment for <img> tags with a non-empty src.
// Everything else in the fragment is ignored, and malformed markup simply
// yields whatever images were tokenized before the error.
func ExtractImages(fragment string) []ImageRef {
	if !strings.Contains(strings.ToLower(fragment), "<img") {
		return nil
	}

	var refs []ImageRef
	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return refs
		case html.StartTagToken, html.SelfClosingTagToken:
			token := z.Token()
			if token.DataAtom != atom.Img {
				continue
			}
			ref := ImageRef{}
			for _, attr := range token.Attr {
				switch strings.ToLower(attr.Key) {
				case "src":
					ref.URL = strings.TrimSpace(attr.Val)
				case "alt":
					ref.Alt = attr.Val
				case "title":
					ref.Title = attr.Val
				}
			}
			if ref.URL != "" {
				refs = append(refs, ref)
			}
		}
	}
}
