// Package markdown tokenizes Markdown sources into the mdast node tree. It
// wraps goldmark for parsing, strips front matter, and loads documents from an
// fs.FS.
package markdown
