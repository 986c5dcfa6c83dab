package gemini

import "fmt"

// CodeNotFound is the AuthError code used when the gemini executable cannot be resolved.
const CodeNotFound = 127

// AuthError reports that the Gemini CLI is missing or cannot authenticate.
// It is the only failure Invoke returns as an error; every other problem
// is reported through Result.
type AuthError struct {
	Code    int
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause for errors.Is/errors.As support.
func (e *AuthError) Unwrap() error {
	return e.Cause
}

// ValidationError reports an invalid option override.
type ValidationError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid option %q: %s", e.Field, e.Reason)
}
