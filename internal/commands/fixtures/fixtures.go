package fixtures

import "errors"

// ErrRegistryClosed is returned by a RecordingRegistry after Close.
var ErrRegistryClosed = errors.New("fixtures: registry closed")

// RecordingRegistry captures command handlers passed to RegisterCommand.
type RecordingRegistry struct {
	Handlers []any
	closed   bool
}

// NewRecordingRegistry constructs an empty registry recorder.
func NewRecordingRegistry() *RecordingRegistry {
	return &RecordingRegistry{
		Handlers: make([]any, 0),
	}
}

// RegisterCommand records the handler.
func (r *RecordingRegistry) RegisterCommand(handler any) error {
	if r.closed {
		return ErrRegistryClosed
	}
	r.Handlers = append(r.Handlers, handler)
	return nil
}

// Close makes subsequent registrations fail.
func (r *RecordingRegistry) Close() {
	r.closed = true
}
