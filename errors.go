package fsbi

import (
	"errors"
	"fmt"

	"github.com/hupe1980/fsbi/index"
)

var (
	// ErrMissingField is returned when a required input (doc id) is absent.
	ErrMissingField = errors.New("missing required field")

	// ErrInvalidTopK is returned when a negative top-k is requested.
	ErrInvalidTopK = errors.New("top_k must be non-negative")
)

// ErrInvalidConfig indicates an out-of-range construction parameter.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrInvalidConfig struct {
	Field string
	Value any
	cause error
}

func (e *ErrInvalidConfig) Error() string {
	return fmt.Sprintf("invalid config: %s = %v", e.Field, e.Value)
}

func (e *ErrInvalidConfig) Unwrap() error { return e.cause }

// translateError maps index-level errors onto the root package's taxonomy so
// callers only ever match against fsbi sentinels and types.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, index.ErrMissingField) {
		return fmt.Errorf("%w: %w", ErrMissingField, err)
	}
	if errors.Is(err, index.ErrInvalidTopK) {
		return fmt.Errorf("%w: %w", ErrInvalidTopK, err)
	}

	var ice *index.ErrInvalidConfig
	if errors.As(err, &ice) {
		return &ErrInvalidConfig{Field: ice.Field, Value: ice.Value, cause: err}
	}

	return err
}
