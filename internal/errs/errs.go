package errs

import (
	"errors"
	"fmt"

	"github.com/hupe1980/sparsegraph/internal/resource"
	"github.com/hupe1980/sparsegraph/internal/sparse"
)

// Kind classifies who is responsible for a failure.
type Kind uint8

const (
	// KindNone is reported for a nil error.
	KindNone Kind = iota
	KindUser
	KindLogic
	KindSystem
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindUser:
		return "user error"
	case KindLogic:
		return "logic error"
	case KindSystem:
		return "system error"
	default:
		return "other error"
	}
}

// Code identifies the concrete failure condition.
type Code uint8

const (
	CodeOther Code = iota
	CodeKeyAlreadyExists
	CodeVertexKeyNotFound
	CodeIndexOutOfBounds
	CodeEdgeTypeKeyAlreadyExists
	CodeEdgeTypeDoesNotExist
	CodeEdgeTypeMustExist
	CodeVertexKindMismatch
	CodeEdgeNotFound
	CodeLogicInconsistency
	CodeResourceExhausted
	CodeBackend
)

var codeNames = [...]string{
	CodeOther:                    "other",
	CodeKeyAlreadyExists:         "key already exists",
	CodeVertexKeyNotFound:        "vertex key not found",
	CodeIndexOutOfBounds:         "index out of bounds",
	CodeEdgeTypeKeyAlreadyExists: "edge type key already exists",
	CodeEdgeTypeDoesNotExist:     "edge type does not exist",
	CodeEdgeTypeMustExist:        "edge type must exist",
	CodeVertexKindMismatch:       "vertex value kind mismatch",
	CodeEdgeNotFound:             "edge not found",
	CodeLogicInconsistency:       "logic inconsistency",
	CodeResourceExhausted:        "resource exhausted",
	CodeBackend:                  "sparse backend failure",
}

func (c Code) String() string {
	if int(c) < len(codeNames) {
		return codeNames[c]
	}
	return fmt.Sprintf("code(%d)", uint8(c))
}

// Error is a classified failure. The underlying cause (if any) can be
// accessed via errors.Unwrap.
type Error struct {
	Kind Kind
	Code Code
	Msg  string

	cause    error
	sentinel bool
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = e.Code.String()
	}
	if e.cause != nil {
		return msg + ": " + e.cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.cause }

// Is matches sentinel errors by code, so errors.Is(err, ErrVertexKeyNotFound)
// holds for every vertex-key-not-found failure regardless of its message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || !t.sentinel {
		return false
	}
	return e.Code == t.Code
}

func sentinel(kind Kind, code Code) *Error {
	return &Error{Kind: kind, Code: code, sentinel: true}
}

var (
	ErrKeyAlreadyExists         = sentinel(KindUser, CodeKeyAlreadyExists)
	ErrVertexKeyNotFound        = sentinel(KindUser, CodeVertexKeyNotFound)
	ErrIndexOutOfBounds         = sentinel(KindUser, CodeIndexOutOfBounds)
	ErrEdgeTypeKeyAlreadyExists = sentinel(KindUser, CodeEdgeTypeKeyAlreadyExists)
	ErrEdgeTypeDoesNotExist     = sentinel(KindUser, CodeEdgeTypeDoesNotExist)
	ErrEdgeTypeMustExist        = sentinel(KindUser, CodeEdgeTypeMustExist)
	ErrVertexKindMismatch       = sentinel(KindUser, CodeVertexKindMismatch)
	ErrEdgeNotFound             = sentinel(KindUser, CodeEdgeNotFound)
	ErrLogicInconsistency       = sentinel(KindLogic, CodeLogicInconsistency)
	ErrResourceExhausted        = sentinel(KindSystem, CodeResourceExhausted)
	ErrBackend                  = sentinel(KindSystem, CodeBackend)
)

// User returns a caller-error.
func User(code Code, format string, args ...any) *Error {
	return &Error{Kind: KindUser, Code: code, Msg: fmt.Sprintf(format, args...)}
}

// Logic returns an invariant-violation error.
func Logic(format string, args ...any) *Error {
	return &Error{Kind: KindLogic, Code: CodeLogicInconsistency, Msg: fmt.Sprintf(format, args...)}
}

// System returns a system error wrapping cause.
func System(code Code, cause error, format string, args ...any) *Error {
	return &Error{Kind: KindSystem, Code: code, Msg: fmt.Sprintf(format, args...), cause: cause}
}

// FromBackend classifies a failure reported by the sparse backend. Memory
// limit violations become resource exhaustion and out-of-bounds writes are
// logic errors, since callers validate indices first. Everything else is a
// backend failure. Already classified errors are returned unchanged.
func FromBackend(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	if errors.Is(err, resource.ErrMemoryLimitExceeded) {
		return System(CodeResourceExhausted, err, format, args...)
	}
	if errors.Is(err, sparse.ErrIndexOutOfBounds) {
		l := Logic(format, args...)
		l.cause = err
		return l
	}
	return System(CodeBackend, err, format, args...)
}

// KindOf returns the kind of the first classified error in err's chain.
// Unclassified errors are KindOther.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindOther
}

// CodeOf returns the code of the first classified error in err's chain.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeOther
}

// IsUser reports whether err is a caller mistake.
func IsUser(err error) bool { return KindOf(err) == KindUser }

// IsLogic reports whether err signals an engine defect.
func IsLogic(err error) bool { return KindOf(err) == KindLogic }

// IsSystem reports whether err stems from the backend or resource limits.
func IsSystem(err error) bool { return KindOf(err) == KindSystem }
