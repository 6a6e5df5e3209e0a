package obj

import (
	"errors"
	"fmt"
)

// Parse and resolution errors. The first error encountered aborts the
// whole load; no partial result is ever returned.
var (
	ErrMalformedGeometry   = errors.New("malformed geometry")
	ErrMalformedMaterial   = errors.New("malformed material")
	ErrIndexOutOfRange     = errors.New("face index out of range")
	ErrDegenerateFace      = errors.New("degenerate face")
	ErrUnknownMaterial     = errors.New("unknown material")
	ErrUnresolvedReference = errors.New("unresolved reference")
)

// lineError wraps a sentinel with the source path and 1-based line number
// of the offending directive.
func lineError(path string, line int, sentinel error, format string, args ...interface{}) error {
	reason := fmt.Sprintf(format, args...)
	if path == "" {
		return fmt.Errorf("line %d: %w: %s", line, sentinel, reason)
	}
	return fmt.Errorf("%s:%d: %w: %s", path, line, sentinel, reason)
}
