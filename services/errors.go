package services

import (
	"errors"
	"fmt"
)

// ErrorKind classifies every recoverable failure the core can surface.
type ErrorKind string

const (
	KindNotFound            ErrorKind = "not_found"
	KindInvalidCode         ErrorKind = "invalid_code"
	KindExpired             ErrorKind = "expired"
	KindSelfTransfer        ErrorKind = "self_transfer"
	KindAlreadyAnswered     ErrorKind = "already_answered"
	KindForbidden           ErrorKind = "forbidden"
	KindIllegalQuestionPair ErrorKind = "illegal_question_pair"
	KindValidation          ErrorKind = "validation"
	KindPersistence         ErrorKind = "persistence"
)

// Error is the structured failure returned to callers: a kind for mapping to a
// status code plus a human-readable message. None of these are fatal.
type Error struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func newError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func NotFoundErr(format string, args ...any) *Error {
	return newError(KindNotFound, format, args...)
}

func InvalidCodeErr(format string, args ...any) *Error {
	return newError(KindInvalidCode, format, args...)
}

func ExpiredErr(format string, args ...any) *Error {
	return newError(KindExpired, format, args...)
}

func SelfTransferErr(format string, args ...any) *Error {
	return newError(KindSelfTransfer, format, args...)
}

func AlreadyAnsweredErr(format string, args ...any) *Error {
	return newError(KindAlreadyAnswered, format, args...)
}

func ForbiddenErr(format string, args ...any) *Error {
	return newError(KindForbidden, format, args...)
}

func IllegalQuestionPairErr(format string, args ...any) *Error {
	return newError(KindIllegalQuestionPair, format, args...)
}

func ValidationErr(format string, args ...any) *Error {
	return newError(KindValidation, format, args...)
}

// persistenceErr wraps a store-level failure. No retry happens inside the core;
// retry policy belongs to the caller.
func persistenceErr(err error) *Error {
	return newError(KindPersistence, "persistence failure: %v", err)
}

// KindOf extracts the error kind, or KindPersistence for anything untyped.
func KindOf(err error) ErrorKind {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return KindPersistence
}
