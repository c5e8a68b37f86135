package trivia

import "fmt"

// Kind classifies engine failures. Each failing operation returns exactly one
// kind; callers map kinds to transport-level status codes.
type Kind int

const (
	// KindInvalidRequest marks structurally invalid input, e.g. a create
	// request with a missing field.
	KindInvalidRequest Kind = iota + 1
	// KindValidation marks a domain rule violation, e.g. a question
	// referencing a category that does not exist.
	KindValidation
	// KindNotFound marks a lookup that produced zero usable results.
	KindNotFound
	// KindUnprocessable marks an operation that could not complete for an
	// opaque underlying reason, e.g. a store failure during a write.
	KindUnprocessable
)

func (k Kind) String() string {
	switch k {
	case KindInvalidRequest:
		return "invalid_request"
	case KindValidation:
		return "validation_failed"
	case KindNotFound:
		return "not_found"
	case KindUnprocessable:
		return "unprocessable"
	default:
		return "unknown"
	}
}

// Error is the discriminated failure value returned by engine operations.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Errf builds an Error with a formatted message.
func Errf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WrapErr builds an Error around an underlying cause.
func WrapErr(kind Kind, err error, message string) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the Kind from err, or 0 if err is not an engine Error.
func KindOf(err error) Kind {
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return 0
}

// IsKind reports whether err is an engine Error of the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
