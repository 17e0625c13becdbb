package errx

import (
	"fmt"
	"sync"
)

// Definition is a registered error template
type Definition struct {
	Code       string
	Type       Type
	HTTPStatus int
	Message    string
}

// Registry holds the error definitions of one aggregate under a common prefix
type Registry struct {
	prefix string

	mu          sync.RWMutex
	definitions map[string]Definition
}

// NewRegistry creates a registry whose codes are prefixed with prefix
func NewRegistry(prefix string) *Registry {
	return &Registry{
		prefix:      prefix,
		definitions: make(map[string]Definition),
	}
}

// Register adds an error definition and returns its fully qualified code.
// Registering the same code twice panics, since it always means a programming mistake.
func (r *Registry) Register(code string, errType Type, httpStatus int, message string) string {
	full := fmt.Sprintf("%s_%s", r.prefix, code)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.definitions[full]; exists {
		panic(fmt.Sprintf("errx: duplicate error code %s", full))
	}
	r.definitions[full] = Definition{
		Code:       full,
		Type:       errType,
		HTTPStatus: httpStatus,
		Message:    message,
	}
	return full
}

// New builds an error from a registered code
func (r *Registry) New(code string) *Error {
	r.mu.RLock()
	def, ok := r.definitions[code]
	r.mu.RUnlock()

	if !ok {
		return &Error{
			Type:       TypeInternal,
			Code:       code,
			Message:    "unregistered error code",
			HTTPStatus: statusFor(TypeInternal),
		}
	}

	return &Error{
		Type:       def.Type,
		Code:       def.Code,
		Message:    def.Message,
		HTTPStatus: def.HTTPStatus,
	}
}

// NewWithCause builds an error from a registered code wrapping cause
func (r *Registry) NewWithCause(code string, cause error) *Error {
	e := r.New(code)
	e.Cause = cause
	return e
}

// NewWithMessage builds an error from a registered code with a custom message
func (r *Registry) NewWithMessage(code string, message string) *Error {
	e := r.New(code)
	e.Message = message
	return e
}

// Definitions returns a snapshot of every registered definition
func (r *Registry) Definitions() []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Definition, 0, len(r.definitions))
	for _, d := range r.definitions {
		out = append(out, d)
	}
	return out
}
