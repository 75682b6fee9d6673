package keyframe

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDefinition marks malformed keyframe input.
	ErrInvalidDefinition = errors.New("invalid animation definition")
	// ErrMissingKeyframe marks a position with no keyframe to read.
	ErrMissingKeyframe = errors.New("missing animation keyframe")
)

// DefinitionError describes why a definition failed to compile.
type DefinitionError struct {
	Key     string
	Message string
	Err     error
}

func newDefinitionError(key, message string, err error) error {
	return &DefinitionError{Key: key, Message: message, Err: err}
}

func (e *DefinitionError) Error() string {
	if e == nil {
		return ""
	}
	if e.Key != "" {
		return fmt.Sprintf("%v: %s: %s", e.Err, e.Key, e.Message)
	}
	return fmt.Sprintf("%v: %s", e.Err, e.Message)
}

// Unwrap exposes the sentinel error.
func (e *DefinitionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
