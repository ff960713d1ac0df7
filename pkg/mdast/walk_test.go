package mdast

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalkVisitsDepthFirstWithPaths(t *testing.T) {
	root := NewRoot(
		NewHeading(1, NewText("h")),
		NewUnorderedList(NewListItem(NewParagraph(NewStrong(NewText("s"))))),
		NewTable(NewTextRow("a"), NewTextRow("b")),
	)

	var paths []string
	err := Walk(root, func(node Node, path string) error {
		paths = append(paths, string(node.Kind())+"@"+path)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{
		"root@",
		"heading@children[0]",
		"text@children[0].children[0]",
		"list@children[1]",
		"listItem@children[1].items[0]",
		"paragraph@children[1].items[0].children[0]",
		"strong@children[1].items[0].children[0].children[0]",
		"text@children[1].items[0].children[0].children[0].children[0]",
		"table@children[2]",
		"tableCell@children[2].header[0]",
		"text@children[2].header[0].children[0]",
		"tableCell@children[2].rows[0][0]",
		"text@children[2].rows[0][0].children[0]",
	}, paths)
}

func TestWalkReportsNilChildren(t *testing.T) {
	root := NewRoot(&Paragraph{Children: []Inline{nil, (*Text)(nil)}})

	var nilPaths []string
	err := Walk(root, func(node Node, path string) error {
		if IsNil(node) {
			nilPaths = append(nilPaths, path)
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"children[0].children[0]", "children[0].children[1]"}, nilPaths)
}

func TestWalkSkipChildrenAndAbort(t *testing.T) {
	root := NewRoot(
		NewBlockquote(NewParagraph(NewText("inside"))),
		NewParagraph(NewText("after")),
	)

	var kinds []Kind
	err := Walk(root, func(node Node, _ string) error {
		kinds = append(kinds, node.Kind())
		if node.Kind() == KindBlockquote {
			return ErrSkipChildren
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []Kind{KindRoot, KindBlockquote, KindParagraph, KindText}, kinds)

	stop := errors.New("stop")
	err = Walk(root, func(node Node, _ string) error {
		if node.Kind() == KindParagraph {
			return stop
		}
		return nil
	})
	assert.ErrorIs(t, err, stop)
}

func TestUnknownKind(t *testing.T) {
	assert.Equal(t, Kind("footnoteReference"), NewUnknown("footnoteReference").Kind())
	assert.Equal(t, Kind("unknown"), (&Unknown{}).Kind())

	var block Block = NewUnknown("x")
	var inline Inline = NewUnknown("y")
	assert.NotNil(t, block)
	assert.NotNil(t, inline)
}

func TestBuilders(t *testing.T) {
	list := NewOrderedList(NewCheckedListItem(true, NewParagraph(NewText("a"))))
	require.Len(t, list.Items, 1)
	assert.True(t, list.Ordered)
	assert.Equal(t, 1, list.Start)
	require.NotNil(t, list.Items[0].Checked)
	assert.True(t, *list.Items[0].Checked)

	row := NewTextRow("x", "y")
	require.Len(t, row, 2)
	assert.Equal(t, "y", row[1].Children[0].(*Text).Value)
}
