package installer

import (
	"fmt"
)

// pathError carries an operator-facing message while still matching one of
// the sentinel errors with errors.Is
type pathError struct {
	kind error
	msg  string
}

func newPathError(kind error, format string, args ...any) error {
	return &pathError{kind: kind, msg: fmt.Sprintf(format, args...)}
}

func (e *pathError) Error() string { return e.msg }

func (e *pathError) Is(target error) bool { return target == e.kind }
