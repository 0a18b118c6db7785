package model

import "fmt"

// ValidationError reports a missing or malformed request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// GatewayError reports a failed call to the hosted model.
type GatewayError struct {
	Provider string
	Err      error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// TransportError reports that the client could not get a usable reply from
// the server. Message is what the user sees.
type TransportError struct {
	Operation Operation
	Status    int // 0 when no response was received
	Message   string
	Err       error
}

func (e *TransportError) Error() string {
	return e.Message
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// FallbackMessage is shown when the server gave no usable error text.
func FallbackMessage(op Operation) string {
	return fmt.Sprintf("Failed to fetch %s.", op)
}
