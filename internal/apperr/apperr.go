package apperr

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindNotFound           Kind = "not_found"
	KindInvalidInput       Kind = "invalid_input"
	KindConflict           Kind = "conflict"
	KindPreconditionFailed Kind = "precondition_failed"
	KindDomainInvariant    Kind = "domain_invariant"
	KindStore              Kind = "store"
)

// Sentinels for errors.Is; an *Error matches the sentinel of its Kind.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrConflict           = errors.New("conflict")
	ErrPreconditionFailed = errors.New("precondition failed")
	ErrDomainInvariant    = errors.New("domain invariant violated")
	ErrStore              = errors.New("store failure")
)

// Reason codes carried by Error.Code.
const (
	CodeLoginAlreadyUsed = "LoginAlreadyUsed"
	CodePhoneAlreadyUsed = "PhoneAlreadyUsed"
	CodeIDExists         = "idexists"
	CodeIDNull           = "idnull"
	CodeNoActiveEvent    = "NoActiveEvent"
	CodeInvalidAmount    = "InvalidAmount"
	CodeInvalidName      = "InvalidName"
	CodeRequired         = "Required"
	CodeBadCredentials   = "BadCredentials"
	CodeInvalidImage     = "InvalidImage"
	CodeUnknownRelation  = "UnknownRelation"
)

type Error struct {
	Kind Kind
	Code string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := string(e.Kind)
	if e.Code != "" {
		msg += " (" + e.Code + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	if e == nil {
		return false
	}
	return sentinel(e.Kind) == target
}

func sentinel(k Kind) error {
	switch k {
	case KindNotFound:
		return ErrNotFound
	case KindInvalidInput:
		return ErrInvalidInput
	case KindConflict:
		return ErrConflict
	case KindPreconditionFailed:
		return ErrPreconditionFailed
	case KindDomainInvariant:
		return ErrDomainInvariant
	case KindStore:
		return ErrStore
	}
	return nil
}

func New(kind Kind, code string, err error) *Error {
	return &Error{Kind: kind, Code: code, Err: err}
}

func NotFound(entity string, id any) *Error {
	return New(KindNotFound, "", fmt.Errorf("%s %v not found", entity, id))
}

func InvalidInput(code, format string, args ...any) *Error {
	return New(KindInvalidInput, code, fmt.Errorf(format, args...))
}

func Conflict(code string) *Error {
	return New(KindConflict, code, nil)
}

func PreconditionFailed(code, format string, args ...any) *Error {
	return New(KindPreconditionFailed, code, fmt.Errorf(format, args...))
}

func DomainInvariant(code, format string, args ...any) *Error {
	return New(KindDomainInvariant, code, fmt.Errorf(format, args...))
}

// Store wraps an unexpected persistence failure. Already-typed errors pass through.
func Store(op string, err error) error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return err
	}
	return New(KindStore, "", fmt.Errorf("%s: %w", op, err))
}

// KindOf returns the Kind of err, or "" when err is not an *Error.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return ""
}

// CodeOf returns the reason code of err, or "".
func CodeOf(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code
	}
	return ""
}
