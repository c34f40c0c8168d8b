package sparsegraph

import (
	"errors"

	"github.com/hupe1980/sparsegraph/internal/errs"
)

// Error is the error type returned by every Graph operation. Its Kind tells
// whether the caller, the engine or the backend is at fault; its Code names
// the condition.
type Error = errs.Error

// ErrorKind classifies who is responsible for a failure.
type ErrorKind = errs.Kind

// ErrorCode names a failure condition.
type ErrorCode = errs.Code

const (
	ErrorKindUser   = errs.KindUser
	ErrorKindLogic  = errs.KindLogic
	ErrorKindSystem = errs.KindSystem
	ErrorKindOther  = errs.KindOther
)

// Sentinels for errors.Is. Matching is by code, so the message of the
// returned error may carry more context.
var (
	ErrKeyAlreadyExists         = errs.ErrKeyAlreadyExists
	ErrVertexKeyNotFound        = errs.ErrVertexKeyNotFound
	ErrIndexOutOfBounds         = errs.ErrIndexOutOfBounds
	ErrEdgeTypeKeyAlreadyExists = errs.ErrEdgeTypeKeyAlreadyExists
	ErrEdgeTypeDoesNotExist     = errs.ErrEdgeTypeDoesNotExist
	ErrEdgeTypeMustExist        = errs.ErrEdgeTypeMustExist
	ErrVertexKindMismatch       = errs.ErrVertexKindMismatch
	ErrEdgeNotFound             = errs.ErrEdgeNotFound
	ErrLogicInconsistency       = errs.ErrLogicInconsistency
	ErrResourceExhausted        = errs.ErrResourceExhausted
	ErrBackend                  = errs.ErrBackend
)

// ErrInvalidOption is returned by New for out-of-range options.
var ErrInvalidOption = errors.New("invalid option")

// ErrorKindOf returns the kind of err. Errors not produced by the engine are
// ErrorKindOther.
func ErrorKindOf(err error) ErrorKind { return errs.KindOf(err) }

// ErrorCodeOf returns the code of err.
func ErrorCodeOf(err error) ErrorCode { return errs.CodeOf(err) }

// IsUserError reports whether err was caused by invalid caller input.
func IsUserError(err error) bool { return errs.IsUser(err) }

// IsLogicError reports whether err signals a broken engine invariant.
func IsLogicError(err error) bool { return errs.IsLogic(err) }

// IsSystemError reports whether err stems from resource limits or the
// storage backend.
func IsSystemError(err error) bool { return errs.IsSystem(err) }
