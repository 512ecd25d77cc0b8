package types

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownEntryType            = errors.New("unknown entry type")
	ErrUnknownSyncManagerKind      = errors.New("unknown sync manager kind")
	ErrUnknownSyncManagerDirection = errors.New("unknown sync manager direction")
)

const (
	CodeRequired     = "required"
	CodeInvalidType  = "invalid_type"
	CodeOutOfRange   = "out_of_range"
	CodeInvalidValue = "invalid_value"
)

// ModelError describes one problem at a location in the device model.
// Path uses model-file notation, e.g. devices[0].rx_pdos[1].sync_manager.
type ModelError struct {
	Code    string
	Path    string
	Message string
}

// NewModelError builds a consistent model error.
func NewModelError(code, path, message string) *ModelError {
	return &ModelError{
		Code:    code,
		Path:    path,
		Message: message,
	}
}

func (e *ModelError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Path, e.Code, e.Message)
}

// ModelErrors collects every problem found in one validation pass.
type ModelErrors []*ModelError

func (es ModelErrors) Error() string {
	msgs := make([]string, 0, len(es))
	for _, e := range es {
		msgs = append(msgs, e.Error())
	}
	return fmt.Sprintf("%d model error(s): %s", len(es), strings.Join(msgs, "; "))
}

// Err returns nil for an empty collection so callers can return it directly.
func (es ModelErrors) Err() error {
	if len(es) == 0 {
		return nil
	}
	return es
}
