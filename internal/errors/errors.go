package errors

import (
	"fmt"
	"net/http"

	"github.com/cockroachdb/errors"
)

// Classification codes carried by the sentinel errors below.
const (
	CodeNotFound         = "not_found"
	CodeAlreadyExists    = "already_exists"
	CodeValidation       = "validation_error"
	CodeInvalidOperation = "invalid_operation"
	CodePermissionDenied = "permission_denied"
	CodeHTTPClient       = "http_client_error"
	CodeDatabase         = "database_error"
	CodeSystem           = "system_error"
)

// Sentinel errors. Every error leaving a service is marked with exactly one
// of these; the mark drives both the Is* predicates and the HTTP status.
var (
	ErrNotFound         = newSentinel(CodeNotFound, "resource not found")
	ErrAlreadyExists    = newSentinel(CodeAlreadyExists, "resource already exists")
	ErrValidation       = newSentinel(CodeValidation, "validation error")
	ErrInvalidOperation = newSentinel(CodeInvalidOperation, "invalid operation")
	ErrPermissionDenied = newSentinel(CodePermissionDenied, "permission denied")
	ErrHTTPClient       = newSentinel(CodeHTTPClient, "http client error")
	ErrDatabase         = newSentinel(CodeDatabase, "database error")
	ErrSystem           = newSentinel(CodeSystem, "system error")
)

var statusBySentinel = map[error]int{
	ErrNotFound:         http.StatusNotFound,
	ErrAlreadyExists:    http.StatusConflict,
	ErrValidation:       http.StatusBadRequest,
	ErrInvalidOperation: http.StatusBadRequest,
	ErrPermissionDenied: http.StatusForbidden,
	ErrHTTPClient:       http.StatusInternalServerError,
	ErrDatabase:         http.StatusInternalServerError,
	ErrSystem:           http.StatusInternalServerError,
}

type sentinelError struct {
	code    string
	message string
}

func newSentinel(code, message string) *sentinelError {
	return &sentinelError{code: code, message: message}
}

func (e *sentinelError) Error() string {
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

// Is matches sentinels by code so marked chains resolve to the right class.
func (e *sentinelError) Is(target error) bool {
	t, ok := target.(*sentinelError)
	return ok && e.code == t.code
}

// As delegates to cockroachdb/errors so callers need only this package.
func As(err error, target any) bool {
	return errors.As(err, target)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

func IsInvalidOperation(err error) bool {
	return errors.Is(err, ErrInvalidOperation)
}

func IsPermissionDenied(err error) bool {
	return errors.Is(err, ErrPermissionDenied)
}

func IsDatabase(err error) bool {
	return errors.Is(err, ErrDatabase)
}

// HTTPStatusFromErr resolves the response status for a marked error.
// Unmarked errors are treated as internal failures.
func HTTPStatusFromErr(err error) int {
	for sentinel, status := range statusBySentinel {
		if errors.Is(err, sentinel) {
			return status
		}
	}
	return http.StatusInternalServerError
}
