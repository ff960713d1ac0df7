package validation

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-slackmd/pkg/mdast"
)

// ErrInvalidNode marks a node tree that violates the input contract.
var ErrInvalidNode = errors.New("invalid markdown node")

const invalidNodeCode = "MDAST_INVALID_NODE"

// NodeError locates the first contract violation in a tree.
type NodeError struct {
	Path  string
	Kind  mdast.Kind
	Cause error
}

func (e *NodeError) Error() string {
	path := e.Path
	if path == "" {
		path = "root"
	}
	if e.Kind == "" {
		return fmt.Sprintf("%s: %v", path, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %v", path, e.Kind, e.Cause)
}

func (e *NodeError) Unwrap() []error {
	return []error{ErrInvalidNode, e.Cause}
}

var errNilNode = validation.NewError("mdast.node_nil", "node is nil")

// ValidateTree checks every node reachable from root. Unknown nodes are
// accepted as is, and their children are not inspected since nothing renders
// them.
func ValidateTree(root *mdast.Root) error {
	if root == nil {
		return wrapNodeError(&NodeError{Kind: mdast.KindRoot, Cause: errNilNode})
	}
	err := mdast.Walk(root, func(node mdast.Node, path string) error {
		if mdast.IsNil(node) {
			return &NodeError{Path: path, Cause: errNilNode}
		}
		if _, ok := node.(*mdast.Unknown); ok {
			return mdast.ErrSkipChildren
		}
		if err := validateNode(node); err != nil {
			return &NodeError{Path: path, Kind: node.Kind(), Cause: err}
		}
		return nil
	})
	return wrapNodeError(err)
}

func validateNode(node mdast.Node) error {
	switch n := node.(type) {
	case *mdast.Heading:
		return validation.ValidateStruct(n,
			validation.Field(&n.Level, validation.Required, validation.Min(1), validation.Max(6)),
		)
	case *mdast.Link:
		return validation.ValidateStruct(n,
			validation.Field(&n.URL, validation.Required),
		)
	case *mdast.Image:
		return validation.ValidateStruct(n,
			validation.Field(&n.URL, validation.Required),
		)
	case *mdast.List:
		return validation.ValidateStruct(n,
			validation.Field(&n.Start, validation.Min(0)),
		)
	}
	return nil
}

func wrapNodeError(err error) error {
	if err == nil {
		return nil
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "markdown tree invalid").
		WithTextCode(invalidNodeCode)
}
