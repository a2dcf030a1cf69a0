package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies a failure so the HTTP layer can pick a status code for it.
type Kind string

const (
	KindConnectivity   Kind = "connectivity"
	KindNotFound       Kind = "not_found"
	KindMalformedInput Kind = "malformed_input"
	KindConflict       Kind = "conflict"
	KindInternal       Kind = "internal"
)

var kindStatus = map[Kind]int{
	KindConnectivity:   http.StatusInternalServerError,
	KindNotFound:       http.StatusNotFound,
	KindMalformedInput: http.StatusBadRequest,
	KindConflict:       http.StatusConflict,
	KindInternal:       http.StatusInternalServerError,
}

// Error is a typed application error carrying its kind and an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	switch {
	case e.Message != "" && e.Err != nil:
		return e.Message + ": " + e.Err.Error()
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches another *Error of the same kind, so errors.Is(err, apperr.ErrNotFound) works
// for any not-found error regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Kind == t.Kind
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap attaches a kind to err. A nil err yields nil.
func Wrap(err error, kind Kind, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Message: message, Err: err}
}

func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) && e != nil {
		return e, true
	}
	return nil, false
}

// KindOf returns the kind of err, defaulting to KindInternal for untyped errors.
func KindOf(err error) Kind {
	if e, ok := As(err); ok && e.Kind != "" {
		return e.Kind
	}
	return KindInternal
}

// Status maps err to an HTTP status code.
func Status(err error) int {
	if s, ok := kindStatus[KindOf(err)]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// ErrNotFound matches any error of KindNotFound under errors.Is.
var ErrNotFound = New(KindNotFound, "")
