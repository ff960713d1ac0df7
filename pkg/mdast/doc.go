// Package mdast defines the Markdown document tree consumed by the Slack block
// converter. Trees are produced by a tokenizer (see internal/markdown) or built
// by hand with the constructor helpers, and are treated as immutable once built.
//
// Block nodes (headings, paragraphs, lists, ...) implement Block; phrasing nodes
// (text, emphasis, links, ...) implement Inline. Unknown implements both so
// tokenizers can hand through constructs the converter does not support.
package mdast
