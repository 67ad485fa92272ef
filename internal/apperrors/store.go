package apperrors

// Store wraps an underlying database failure.
func Store(message string, cause error) *Error {
	return &Error{Kind: KindStore, Message: message, Cause: cause}
}
