// Package redact scrubs sensitive values from strings before they reach
// logs or error responses: credentials embedded in connection URLs, JWTs,
// bearer tokens, password fields, and email addresses.
package redact

import "regexp"

// Redaction placeholders.
const (
	CredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	TokenPlaceholder      = "[REDACTED_TOKEN]"
	EmailPlaceholder      = "[REDACTED_EMAIL]"
)

var (
	// user:password@ segments in connection URLs
	urlCredRegex = regexp.MustCompile(`(?i)(postgres|postgresql|mysql|amqp|redis)://[^@/\s]+@`)

	// password fields in key=value, key: value, or JSON form
	passwordRegex = regexp.MustCompile(`(?i)(password|passwd|pwd)["']?\s*[=:]\s*["']?[^'"&\s]{3,}`)

	// three-part base64url JWTs, including ones riding in query strings
	jwtRegex = regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`)

	// token query parameters on websocket URLs
	tokenParamRegex = regexp.MustCompile(`(?i)(token=)[^&\s]+`)

	// bearer credentials in header dumps
	bearerRegex = regexp.MustCompile(`(?i)(bearer\s+)[A-Za-z0-9_\-.~+/]+`)

	emailRegex = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
)

// String returns input with every recognized sensitive value replaced by
// a placeholder.
func String(input string) string {
	if input == "" {
		return input
	}
	out := urlCredRegex.ReplaceAllString(input, CredentialPlaceholder)
	out = passwordRegex.ReplaceAllString(out, CredentialPlaceholder)
	out = jwtRegex.ReplaceAllString(out, TokenPlaceholder)
	out = tokenParamRegex.ReplaceAllString(out, "$1"+TokenPlaceholder)
	out = bearerRegex.ReplaceAllString(out, "$1"+TokenPlaceholder)
	out = emailRegex.ReplaceAllString(out, EmailPlaceholder)
	return out
}

// Error redacts an error's message. Returns "" for nil.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
