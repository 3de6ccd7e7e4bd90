// Package redact scrubs sensitive values from strings before they are
// logged. Error messages from upstream services and the filesystem can
// carry API keys, tokens, addresses or absolute paths; redacting at the
// logging boundary keeps them out of the log stream.
package redact

import "regexp"

// Redaction placeholders.
const (
	KeyPlaceholder   = "[REDACTED_KEY]"
	TokenPlaceholder = "[REDACTED_TOKEN]"
	PathPlaceholder  = "[REDACTED_PATH]"
	EmailPlaceholder = "[REDACTED_EMAIL]"
)

var (
	// API keys and secrets appearing as key=value or key: value pairs.
	apiKeyRegex = regexp.MustCompile(
		`(?i)(api[_-]?key|token|secret|key|auth)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`,
	)

	// Three-part base64url JWT tokens.
	jwtokenRegex = regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`)

	// Bearer credentials copied out of Authorization headers.
	bearerRegex = regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9_\-.~+/]{8,}`)

	// Absolute filesystem paths, as leaked by os wrapped errors.
	unixPathRegex = regexp.MustCompile(`(/[\w.-]+){2,}`)

	// Email addresses from token claims.
	emailRegex = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

	replacements = []struct {
		pattern     *regexp.Regexp
		placeholder string
	}{
		{apiKeyRegex, KeyPlaceholder},
		{jwtokenRegex, TokenPlaceholder},
		{bearerRegex, TokenPlaceholder},
		{emailRegex, EmailPlaceholder},
		{unixPathRegex, PathPlaceholder},
	}
)

// String redacts sensitive values from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range replacements {
		result = r.pattern.ReplaceAllString(result, r.placeholder)
	}
	return result
}

// Error redacts sensitive values from an error's message.
// Returns "" for a nil error.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
