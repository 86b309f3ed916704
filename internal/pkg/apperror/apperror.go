package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Kind string

const (
	KindNotFound        Kind = "not_found"
	KindUnauthenticated Kind = "unauthenticated"
	KindForbidden       Kind = "forbidden"
	KindValidation      Kind = "validation"
	KindIntegrity       Kind = "integrity"
)

// Error is the typed error returned across service boundaries.
// Controllers never build status codes themselves; the server error handler maps Kind to HTTP.
type Error struct {
	Kind    Kind                `json:"-"`
	Message string              `json:"message"`
	Fields  map[string][]string `json:"errors,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Status() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindValidation:
		return http.StatusBadRequest
	case KindIntegrity:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func newError(kind Kind, msg string, args ...any) *Error {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	return &Error{Kind: kind, Message: msg}
}

func NotFound(msg string, args ...any) *Error {
	return newError(KindNotFound, msg, args...)
}

func Unauthenticated(msg string, args ...any) *Error {
	return newError(KindUnauthenticated, msg, args...)
}

func Forbidden(msg string, args ...any) *Error {
	return newError(KindForbidden, msg, args...)
}

func Validation(msg string, args ...any) *Error {
	return newError(KindValidation, msg, args...)
}

func Integrity(msg string, args ...any) *Error {
	return newError(KindIntegrity, msg, args...)
}

// Is reports whether err (or anything it wraps) is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// FromValidationError turns validator.ValidationErrors into a field-keyed Validation error.
// Returns nil when err is not a validation error.
func FromValidationError(err error) *Error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}

	problems := map[string][]string{}
	for _, fe := range ve {
		field := lowerFirst(fe.Field())

		switch fe.Tag() {
		case "required":
			problems[field] = append(problems[field], "This field is required")
		case "min":
			problems[field] = append(problems[field], "Value is too short, min: "+fe.Param())
		case "max":
			problems[field] = append(problems[field], "Value is too long, max: "+fe.Param())
		case "email":
			problems[field] = append(problems[field], "Value must be a valid email address")
		default:
			problems[field] = append(problems[field], "Invalid value provided")
		}
	}

	return &Error{
		Kind:    KindValidation,
		Message: "Invalid request payload",
		Fields:  problems,
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
