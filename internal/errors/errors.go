package errors

import "errors"

var (
	// ErrInvalidInput is returned when the request body is missing or malformed.
	ErrInvalidInput = errors.New("Invalid input")
	// ErrInvalidCredentials covers both unknown identity and wrong password so
	// the response never reveals which one failed.
	ErrInvalidCredentials = errors.New("Invalid identity or password")
	// ErrUserNotFound is returned when a referenced username does not exist.
	ErrUserNotFound = errors.New("Username does not exist.")
	// ErrUpstreamUnavailable is returned when the completion provider keeps
	// failing after retries.
	ErrUpstreamUnavailable = errors.New("answer service is unavailable")
	// ErrUpstreamMalformed is returned when the provider response cannot be
	// interpreted.
	ErrUpstreamMalformed = errors.New("answer service returned an unexpected response")
)

// MessageResponse is the {"error":{"message":...}} envelope.
type MessageResponse struct {
	Error ErrorMessage `json:"error"`
}

// ErrorMessage holds a single human-readable error message.
type ErrorMessage struct {
	Message string `json:"message"`
}

// Message builds a message envelope.
func Message(msg string) MessageResponse {
	return MessageResponse{Error: ErrorMessage{Message: msg}}
}

// FieldErrors maps a field name to its validation messages, serialized as
// {"error":{"<field>":["msg", ...]}} on 422 responses.
type FieldErrors map[string][]string

// Add appends a message for a field.
func (f FieldErrors) Add(field, msg string) {
	f[field] = append(f[field], msg)
}

// Error implements the error interface so FieldErrors can travel through the
// service layer as a value, not a panic.
func (f FieldErrors) Error() string {
	return "validation failed"
}

// FieldsResponse is the envelope wrapping FieldErrors.
type FieldsResponse struct {
	Error FieldErrors `json:"error"`
}

// Fields builds a field-errors envelope.
func Fields(f FieldErrors) FieldsResponse {
	return FieldsResponse{Error: f}
}

// InvalidInputResponse is the plain {"error":"Invalid input"} envelope used
// for missing or undecodable bodies.
type InvalidInputResponse struct {
	Error string `json:"error"`
}

// InvalidInput builds the 400 envelope.
func InvalidInput() InvalidInputResponse {
	return InvalidInputResponse{Error: ErrInvalidInput.Error()}
}
