package fmg

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a FortiManager API failure.
type Kind string

const (
	KindAPI        Kind = "api"
	KindAuth       Kind = "auth"
	KindConnection Kind = "connection"
	KindPermission Kind = "permission"
	KindNotFound   Kind = "not_found"
	KindValidation Kind = "validation"
	KindDuplicate  Kind = "duplicate"
	KindInUse      Kind = "in_use"
	KindLock       Kind = "lock"
	KindTimeout    Kind = "timeout"
)

// Error represents a failed FortiManager API call with operation context.
type Error struct {
	// Operation that failed, e.g. "GET /dvmdb/adom"
	Operation string

	// Kind is the error classification derived from the status code
	Kind Kind

	// Code is the FortiManager status code (0 means not applicable)
	Code int

	// Message is the human-readable error message
	Message string

	// Err is the underlying transport error, if any
	Err error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Operation != "" {
		return fmt.Sprintf("fmg: %s failed: %s", e.Operation, e.Message)
	}
	return fmt.Sprintf("fmg: %s", e.Message)
}

// Unwrap returns the underlying transport error
func (e *Error) Unwrap() error {
	return e.Err
}

// errorKinds maps FortiManager status codes to error classifications.
var errorKinds = map[int]Kind{
	-1:  KindAPI,        // internal error
	-2:  KindAuth,       // invalid session
	-3:  KindPermission, // permission denied
	-4:  KindNotFound,   // object not found
	-5:  KindValidation, // invalid parameter
	-6:  KindDuplicate,  // entry already exists
	-7:  KindInUse,      // entry in use
	-8:  KindLock,       // workspace locked
	-9:  KindLock,       // workspace has uncommitted changes
	-10: KindAPI,        // version mismatch
	-11: KindTimeout,    // task timeout
	-20: KindAuth,       // invalid credentials
	-21: KindAuth,       // token expired
}

// errorMessages carries human-readable messages for common status codes.
var errorMessages = map[int]string{
	-1:  "Internal server error occurred",
	-2:  "Session is invalid or expired",
	-3:  "Permission denied for this operation",
	-4:  "Requested resource not found",
	-5:  "Invalid parameter value",
	-6:  "Object already exists",
	-7:  "Cannot delete object - it is still in use",
	-8:  "ADOM is locked by another user",
	-9:  "ADOM has uncommitted changes",
	-10: "API version mismatch",
	-11: "Operation timed out",
	-20: "Invalid username or password",
	-21: "Authentication token has expired",
}

// parseStatusError builds an Error from a non-zero FortiManager status code.
func parseStatusError(code int, message, operation string) *Error {
	kind, ok := errorKinds[code]
	if !ok {
		kind = KindAPI
	}

	base, ok := errorMessages[code]
	if !ok {
		base = fmt.Sprintf("Unknown error (code %d)", code)
	}

	msg := base
	if message != "" && message != base {
		msg = fmt.Sprintf("%s: %s", base, message)
	}

	return &Error{
		Operation: operation,
		Kind:      kind,
		Code:      code,
		Message:   msg,
	}
}

// connectionError wraps a transport-level failure.
func connectionError(operation string, err error) *Error {
	return &Error{
		Operation: operation,
		Kind:      KindConnection,
		Message:   err.Error(),
		Err:       err,
	}
}

func errorIs(err error, kind Kind, codes ...int) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.Kind == kind {
		return true
	}
	for _, c := range codes {
		if apiErr.Code == c {
			return true
		}
	}
	return false
}

// IsNotFound reports whether err indicates a missing resource.
func IsNotFound(err error) bool {
	return errorIs(err, KindNotFound, -4)
}

// IsDuplicate reports whether err indicates the object already exists.
func IsDuplicate(err error) bool {
	if errorIs(err, KindDuplicate, -6) {
		return true
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		msg := strings.ToLower(apiErr.Message)
		return strings.Contains(msg, "already exists") || strings.Contains(msg, "duplicate")
	}
	return false
}

// IsObjectInUse reports whether a delete failed because the object is
// still referenced by policies or other objects.
func IsObjectInUse(err error) bool {
	if errorIs(err, KindInUse, -7) {
		return true
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		msg := strings.ToLower(apiErr.Message)
		return strings.Contains(msg, "in use") || strings.Contains(msg, "referenced")
	}
	return false
}

// IsPermission reports whether err is permission-related.
func IsPermission(err error) bool {
	return errorIs(err, KindPermission, -3)
}

// IsAuthError reports whether err is authentication-related.
func IsAuthError(err error) bool {
	return errorIs(err, KindAuth, -2, -20, -21)
}

// IsConnectionError reports whether err is a transport failure rather
// than an API status error.
func IsConnectionError(err error) bool {
	return errorIs(err, KindConnection)
}
