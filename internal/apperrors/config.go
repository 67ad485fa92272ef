package apperrors

// Config wraps malformed TOML, a missing API key, or an invalid persona color.
func Config(message string, cause error) *Error {
	return &Error{Kind: KindConfig, Message: message, Cause: cause}
}
