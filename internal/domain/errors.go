package domain

import "fmt"

// Error types for consistent error handling across the API.
// Adapters return these as explicit error values; the handler layer is the
// single place where they are classified into HTTP statuses.

// FieldErrors maps an input field name to the ordered list of
// human-readable violation messages for that field.
type FieldErrors map[string][]string

// ErrValidation indicates a request payload failed schema validation.
// It carries the full per-field error mapping so the HTTP layer can expose
// it as machine-readable details.
type ErrValidation struct {
	Fields FieldErrors
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}

// ErrUnauthorized indicates a missing or invalid session.
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "unauthorized"
}

// ErrUpstream indicates a failure in an external provider call
// (Stripe, Supabase). The wrapped error never reaches the HTTP response.
type ErrUpstream struct {
	Service string
	Err     error
}

func (e *ErrUpstream) Error() string {
	return fmt.Sprintf("upstream service error [%s]: %v", e.Service, e.Err)
}

func (e *ErrUpstream) Unwrap() error {
	return e.Err
}

// ErrNotFound indicates a resource was not found.
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrCircuitOpen indicates the circuit breaker is open for a provider.
type ErrCircuitOpen struct {
	Service string
}

func (e *ErrCircuitOpen) Error() string {
	return fmt.Sprintf("circuit breaker open for service: %s", e.Service)
}
