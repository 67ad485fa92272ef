package apperrors

// IO wraps a terminal, filesystem, clipboard, or editor-process failure.
func IO(message string, cause error) *Error {
	return &Error{Kind: KindIO, Message: message, Cause: cause}
}
