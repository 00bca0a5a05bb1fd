// Package dberr defines the error taxonomy shared by every public
// operation in this module. Driver-level errors never cross the module
// boundary raw: the pool, introspector, and DDL generator translate
// them into *Error before returning.
package dberr

import (
	"errors"
	"fmt"
)

// Kind categorises a failure without exposing driver-specific codes.
type Kind int

const (
	KindUnknown        Kind = iota
	KindValidation          // bad input: empty identifiers, zero-column tables
	KindConfiguration       // missing or contradictory connection parameters
	KindConnection          // network, listener, or pool failure
	KindQuery               // SQL execution failure (syntax, missing object)
	KindMetadata            // catalog introspection failure
	KindTimeout             // query or connection exceeded its deadline
	KindAuthentication      // invalid credentials or insufficient privilege
	KindProcessing          // internal failure not fitting the other kinds
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConfiguration:
		return "configuration"
	case KindConnection:
		return "connection"
	case KindQuery:
		return "query"
	case KindMetadata:
		return "metadata"
	case KindTimeout:
		return "timeout"
	case KindAuthentication:
		return "authentication"
	case KindProcessing:
		return "processing"
	default:
		return "unknown"
	}
}

// Error is the single error type returned by pool, metadata, and DDL
// operations. Cause holds the original driver error for logging.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// --- Constructors ---

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func Validationf(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func Configuration(msg string) *Error {
	return &Error{Kind: KindConfiguration, Message: msg}
}

func Connection(msg string, cause error) *Error {
	return &Error{Kind: KindConnection, Message: msg, Cause: cause}
}

func Query(msg string, cause error) *Error {
	return &Error{Kind: KindQuery, Message: msg, Cause: cause}
}

func Metadata(msg string, cause error) *Error {
	return &Error{Kind: KindMetadata, Message: msg, Cause: cause}
}

func Timeout(msg string, cause error) *Error {
	return &Error{Kind: KindTimeout, Message: msg, Cause: cause}
}

func Authentication(msg string, cause error) *Error {
	return &Error{Kind: KindAuthentication, Message: msg, Cause: cause}
}

func Processing(msg string, cause error) *Error {
	return &Error{Kind: KindProcessing, Message: msg, Cause: cause}
}

// --- Predicates ---

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool { return KindOf(err) == KindValidation }

// IsConfiguration reports whether err is a configuration failure.
func IsConfiguration(err error) bool { return KindOf(err) == KindConfiguration }

// IsConnection reports whether err is a connectivity or pool failure.
func IsConnection(err error) bool { return KindOf(err) == KindConnection }

// IsQuery reports whether err is a SQL execution failure.
func IsQuery(err error) bool { return KindOf(err) == KindQuery }

// IsMetadata reports whether err is a catalog introspection failure.
func IsMetadata(err error) bool { return KindOf(err) == KindMetadata }

// IsTimeout reports whether err was caused by a deadline.
func IsTimeout(err error) bool { return KindOf(err) == KindTimeout }

// IsAuthentication reports whether err is a credential failure.
func IsAuthentication(err error) bool { return KindOf(err) == KindAuthentication }

// KindOf extracts the Kind from err, or KindUnknown for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
