package forum

import (
	"fmt"
	"strings"
)

// IncompleteError reports the fields an operation required but found
// absent. No request is made while any are missing; the caller can fill
// them in and retry.
type IncompleteError struct {
	Missing []Field
}

func (e *IncompleteError) Error() string {
	names := make([]string, len(e.Missing))
	for i, f := range e.Missing {
		names[i] = string(f)
	}
	return fmt.Sprintf("incomplete entity: missing fields: %s", strings.Join(names, ", "))
}

// NotImplementedError reports an update/submit method the entity variant
// does not declare. This is a programmer error, not a request failure.
type NotImplementedError struct {
	Op     string
	Method Method
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("%s method %q not implemented", e.Op, e.Method)
}
