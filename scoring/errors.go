package scoring

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindValidation Kind = iota + 1
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindInvalidState
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not found"
	case KindInvalidState:
		return "invalid state"
	default:
		return "unknown"
	}
}

// Error is a caller-facing failure. Message is safe to return to clients.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func ValidationError(format string, args ...interface{}) error {
	return newError(KindValidation, format, args...)
}

func ForbiddenError(format string, args ...interface{}) error {
	return newError(KindForbidden, format, args...)
}

func NotFoundError(format string, args ...interface{}) error {
	return newError(KindNotFound, format, args...)
}

func InvalidStateError(format string, args ...interface{}) error {
	return newError(KindInvalidState, format, args...)
}

func UnauthenticatedError(format string, args ...interface{}) error {
	return newError(KindUnauthenticated, format, args...)
}

// KindOf returns the kind of a scoring error anywhere in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
