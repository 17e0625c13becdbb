package errx

import (
	"errors"
	"fmt"
	"maps"
	"net/http"
)

// Type classifies an error independently of the aggregate that raised it
type Type string

const (
	TypeValidation    Type = "VALIDATION"
	TypeNotFound      Type = "NOT_FOUND"
	TypeConflict      Type = "CONFLICT"
	TypeBusiness      Type = "BUSINESS"
	TypeAuthorization Type = "AUTHORIZATION"
	TypeUnauthorized  Type = "UNAUTHORIZED"
	TypeInternal      Type = "INTERNAL"
	TypeExternal      Type = "EXTERNAL"
)

// defaultStatus maps a Type to the HTTP status used when none was registered
var defaultStatus = map[Type]int{
	TypeValidation:    http.StatusBadRequest,
	TypeNotFound:      http.StatusNotFound,
	TypeConflict:      http.StatusConflict,
	TypeBusiness:      http.StatusUnprocessableEntity,
	TypeAuthorization: http.StatusForbidden,
	TypeUnauthorized:  http.StatusUnauthorized,
	TypeInternal:      http.StatusInternalServerError,
	TypeExternal:      http.StatusBadGateway,
}

// Error is the structured error carried across every layer
type Error struct {
	Type       Type           `json:"type"`
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Cause      error          `json:"-"`
}

// New creates an error without a registry
func New(message string, errType Type) *Error {
	return &Error{
		Type:       errType,
		Code:       string(errType),
		Message:    message,
		HTTPStatus: statusFor(errType),
	}
}

// Wrap attaches a message and type to an underlying error.
// An *Error passed in keeps its code and status; only the message context is added.
func Wrap(err error, message string, errType Type) *Error {
	if err == nil {
		return nil
	}

	var existing *Error
	if errors.As(err, &existing) {
		wrapped := existing.clone()
		wrapped.Message = fmt.Sprintf("%s: %s", message, existing.Message)
		wrapped.Cause = err
		return wrapped
	}

	return &Error{
		Type:       errType,
		Code:       string(errType),
		Message:    message,
		HTTPStatus: statusFor(errType),
		Cause:      err,
	}
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches errors by code so registry errors compare with errors.Is
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// WithDetail returns a copy carrying one more detail entry
func (e *Error) WithDetail(key string, value any) *Error {
	c := e.clone()
	if c.Details == nil {
		c.Details = make(map[string]any)
	}
	c.Details[key] = value
	return c
}

// WithDetails returns a copy carrying the given detail entries
func (e *Error) WithDetails(details map[string]any) *Error {
	c := e.clone()
	if c.Details == nil {
		c.Details = make(map[string]any, len(details))
	}
	maps.Copy(c.Details, details)
	return c
}

// WithCause returns a copy wrapping cause
func (e *Error) WithCause(cause error) *Error {
	c := e.clone()
	c.Cause = cause
	return c
}

// ToHTTPResponse renders the error body sent to API clients
func (e *Error) ToHTTPResponse() map[string]any {
	resp := map[string]any{
		"error":   e.Message,
		"type":    e.Type,
		"code":    e.Code,
		"message": e.Message,
	}
	if len(e.Details) > 0 {
		resp["details"] = e.Details
	}
	return resp
}

func (e *Error) clone() *Error {
	c := *e
	if e.Details != nil {
		c.Details = maps.Clone(e.Details)
	}
	return &c
}

// IsType reports whether err is an *Error of the given type
func IsType(err error, errType Type) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Type == errType
	}
	return false
}

// IsCode reports whether err is an *Error with the given code
func IsCode(err error, code string) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

func statusFor(t Type) int {
	if s, ok := defaultStatus[t]; ok {
		return s
	}
	return http.StatusInternalServerError
}
