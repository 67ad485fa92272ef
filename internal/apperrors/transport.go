package apperrors

// Transport wraps a network or non-2xx HTTP failure from the remote
// completion endpoint.
func Transport(message string, cause error) *Error {
	return &Error{Kind: KindTransport, Message: message, Cause: cause}
}
