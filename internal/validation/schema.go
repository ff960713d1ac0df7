package validation

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/slack-go/slack"
)

var (
	ErrSchemaInvalid    = errors.New("schema invalid")
	ErrSchemaValidation = errors.New("schema validation failed")
	ErrTooManyBlocks    = errors.New("too many blocks")
)

const blockKitResource = "blockkit.json"

//go:embed schemas/blockkit.json
var blockKitSchema []byte

var (
	blockKitOnce     sync.Once
	blockKitCompiled *jsonschema.Schema
	blockKitErr      error
)

// ValidationIssue captures a single validation failure.
type ValidationIssue struct {
	Location string
	Message  string
}

// PayloadValidationError surfaces validation issues with their JSON location.
type PayloadValidationError struct {
	Issues []ValidationIssue
	Cause  error
}

func (e *PayloadValidationError) Error() string {
	if len(e.Issues) == 0 {
		if e.Cause != nil {
			return e.Cause.Error()
		}
		return ErrSchemaValidation.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := strings.TrimSpace(issue.Location)
		if location == "" {
			location = "#"
		} else if !strings.HasPrefix(location, "#") {
			location = "#" + location
		}
		if issue.Message == "" {
			parts = append(parts, location)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	return strings.Join(parts, "; ")
}

func (e *PayloadValidationError) Unwrap() error {
	return ErrSchemaValidation
}

// Issues extracts validation issues from an error.
func Issues(err error) []ValidationIssue {
	if err == nil {
		return nil
	}
	var payloadErr *PayloadValidationError
	if errors.As(err, &payloadErr) && payloadErr != nil {
		return payloadErr.Issues
	}
	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) && validationErr != nil {
		return collectValidationIssues(validationErr)
	}
	return []ValidationIssue{{Message: err.Error()}}
}

// ValidateBlocks checks blocks against the embedded Block Kit schema. When
// maxBlocks is positive, longer sequences fail with ErrTooManyBlocks before
// the schema is consulted.
func ValidateBlocks(blocks []slack.Block, maxBlocks int) error {
	if maxBlocks > 0 && len(blocks) > maxBlocks {
		return fmt.Errorf("%w: %d blocks exceeds the limit of %d", ErrTooManyBlocks, len(blocks), maxBlocks)
	}

	compiled, err := blockKit()
	if err != nil {
		return err
	}

	if blocks == nil {
		blocks = []slack.Block{}
	}
	encoded, err := json.Marshal(blocks)
	if err != nil {
		return fmt.Errorf("%w: encode blocks: %v", ErrSchemaValidation, err)
	}
	var payload any
	if err := json.Unmarshal(encoded, &payload); err != nil {
		return fmt.Errorf("%w: decode blocks: %v", ErrSchemaValidation, err)
	}

	if err := compiled.Validate(payload); err != nil {
		return &PayloadValidationError{
			Issues: Issues(err),
			Cause:  err,
		}
	}
	return nil
}

func blockKit() (*jsonschema.Schema, error) {
	blockKitOnce.Do(func() {
		blockKitCompiled, blockKitErr = compileSchema(blockKitResource, blockKitSchema)
		if blockKitErr != nil {
			blockKitErr = fmt.Errorf("%w: %v", ErrSchemaInvalid, blockKitErr)
		}
	})
	return blockKitCompiled, blockKitErr
}

func compileSchema(resource string, schema []byte) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(resource, bytes.NewReader(schema)); err != nil {
		return nil, err
	}
	return compiler.Compile(resource)
}

func collectValidationIssues(err *jsonschema.ValidationError) []ValidationIssue {
	if err == nil {
		return nil
	}
	issues := []ValidationIssue{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, ValidationIssue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
