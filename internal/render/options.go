package render

import "strings"

// Bullet prefixes unordered list items.
const Bullet = "• "

// CheckboxPrefixFunc renders the prefix for a task list item.
type CheckboxPrefixFunc func(checked bool) string

// ListOptions configures list rendering.
type ListOptions struct {
	// CheckboxPrefix renders task list item prefixes. When nil, task items are
	// prefixed with Bullet regardless of their state.
	CheckboxPrefix CheckboxPrefixFunc
}

// Options configures a conversion. The zero value applies the defaults.
type Options struct {
	Lists ListOptions
}

// BulletCheckboxPrefix renders every task item with the plain bullet.
func BulletCheckboxPrefix(bool) string { return Bullet }

// GlyphCheckboxPrefix renders distinct ballot box glyphs per checkbox state.
func GlyphCheckboxPrefix(checked bool) string {
	if checked {
		return "☑ "
	}
	return "☐ "
}

// NoCheckboxPrefix renders task items without any prefix.
func NoCheckboxPrefix(bool) string { return "" }

func (o ListOptions) checkboxPrefix(checked bool) string {
	if o.CheckboxPrefix == nil {
		return BulletCheckboxPrefix(checked)
	}
	return o.CheckboxPrefix(checked)
}

// CheckboxPrefixForStyle maps a configured style name (bullet, glyph or none)
// to its prefix function. An empty name selects bullet.
func CheckboxPrefixForStyle(style string) (CheckboxPrefixFunc, bool) {
	switch strings.ToLower(strings.TrimSpace(style)) {
	case "", "bullet":
		return BulletCheckboxPrefix, true
	case "glyph":
		return GlyphCheckboxPrefix, true
	case "none":
		return NoCheckboxPrefix, true
	default:
		return nil, false
	}
}
