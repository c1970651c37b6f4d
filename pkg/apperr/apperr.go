package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error so transport layers can map it to a status
// without string matching.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalid
	KindNotFound
	KindConflict
	KindUnavailable
)

type Error struct {
	kind Kind
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

func (e *Error) Unwrap() error {
	return e.err
}

func (e *Error) Kind() Kind {
	return e.kind
}

func New(kind Kind, msg string) error {
	return &Error{kind: kind, msg: msg}
}

// Invalidf marks a request the caller can fix.
func Invalidf(format string, args ...any) error {
	return &Error{kind: KindInvalid, msg: fmt.Sprintf(format, args...)}
}

// NotFoundf marks a missing resource.
func NotFoundf(format string, args ...any) error {
	return &Error{kind: KindNotFound, msg: fmt.Sprintf(format, args...)}
}

// Conflictf marks a request that lost to existing state.
func Conflictf(format string, args ...any) error {
	return &Error{kind: KindConflict, msg: fmt.Sprintf(format, args...)}
}

// Unavailable wraps an infrastructure failure the caller can retry.
func Unavailable(msg string, err error) error {
	return &Error{kind: KindUnavailable, msg: msg, err: err}
}

// KindOf returns the kind of the first classified error in the chain,
// or KindUnknown when no classified error is present.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return KindUnknown
}

func IsInvalid(err error) bool {
	return KindOf(err) == KindInvalid
}

func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

func IsConflict(err error) bool {
	return KindOf(err) == KindConflict
}

func IsUnavailable(err error) bool {
	return KindOf(err) == KindUnavailable
}
