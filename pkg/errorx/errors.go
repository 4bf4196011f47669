/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package errorx defines the error taxonomy shared by the token decryption
// pipeline: configuration errors, invalid-token errors and cryptographic
// errors. Lower-level library errors are always wrapped into one of these
// three kinds before crossing a package boundary.
package errorx

import (
	"errors"
	"fmt"
)

// Kind classifies a decryption failure.
type Kind string

const (
	// Configuration covers bad merchant identifiers and missing or
	// unreadable key material, detected before any token is processed.
	Configuration Kind = "configuration"

	// InvalidToken covers malformed envelopes, unsupported versions,
	// malformed key encodings, short payloads and malformed plaintext.
	InvalidToken Kind = "invalid-token"

	// Cryptographic covers key-agreement failures, AEAD tag verification
	// failures and any underlying cipher error.
	Cryptographic Kind = "cryptographic"
)

// Error is a typed decryption error with an optional wrapped cause.
type Error struct {
	kind  Kind
	msg   string
	cause error
}

// New returns an Error of the given kind with a printf-style message.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}

// Wrap returns an Error of the given kind wrapping cause.
func Wrap(kind Kind, cause error, format string, args ...interface{}) *Error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...), cause: cause}
}

// NewConfiguration returns a Configuration kind error.
func NewConfiguration(format string, args ...interface{}) *Error {
	return New(Configuration, format, args...)
}

// NewInvalidToken returns an InvalidToken kind error.
func NewInvalidToken(format string, args ...interface{}) *Error {
	return New(InvalidToken, format, args...)
}

// NewCryptographic returns a Cryptographic kind error.
func NewCryptographic(format string, args ...interface{}) *Error {
	return New(Cryptographic, format, args...)
}

// Kind returns the error's kind.
func (e *Error) Kind() Kind {
	return e.kind
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.kind, e.msg, e.cause)
	}

	return fmt.Sprintf("%s: %s", e.kind, e.msg)
}

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target is an Error of the same kind, so that
// errors.Is(err, errorx.New(errorx.InvalidToken, "")) matches by kind.
func (e *Error) Is(target error) bool {
	var te *Error
	if errors.As(target, &te) {
		return e.kind == te.kind
	}

	return false
}

// IsKind reports whether err is (or wraps) an Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.kind == kind
	}

	return false
}

// IsConfiguration reports whether err is a Configuration kind error.
func IsConfiguration(err error) bool {
	return IsKind(err, Configuration)
}

// IsInvalidToken reports whether err is an InvalidToken kind error.
func IsInvalidToken(err error) bool {
	return IsKind(err, InvalidToken)
}

// IsCryptographic reports whether err is a Cryptographic kind error.
func IsCryptographic(err error) bool {
	return IsKind(err, Cryptographic)
}
