// Package redact strips sensitive fragments from error text before it is
// logged. The storage and auth layers fold connection strings, SQL, and
// bearer tokens into their error chains; none of that may reach log
// aggregation verbatim.
package redact

import "regexp"

// Redaction placeholders.
const (
	CredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	TokenPlaceholder      = "[REDACTED_TOKEN]"
	SQLPlaceholder        = "[REDACTED_SQL]"
	HostPlaceholder       = "[REDACTED_HOST]"
)

var (
	// Database connection strings with inline credentials.
	dsnRegex = regexp.MustCompile(`(?i)postgres(?:ql)?://[^@\s]+@`)

	// Three-part base64url JWT tokens.
	jwtRegex = regexp.MustCompile(`eyJ[A-Za-z0-9_-]+\.eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`)

	// SQL statement fragments leaked from driver errors.
	sqlRegex = regexp.MustCompile(
		`(?i)(SELECT|INSERT|UPDATE|DELETE)[\s\w,*()]+(?:FROM|INTO|SET)[\s\w,*()='$]*`,
	)

	// host:port endpoints from connection failures.
	hostPortRegex = regexp.MustCompile(
		`\b(?:[A-Za-z0-9](?:[A-Za-z0-9-]{0,61}[A-Za-z0-9])?\.)+[A-Za-z]{2,}(?::\d{1,5})?\b`,
	)

	placeholders = []struct {
		pattern     *regexp.Regexp
		replacement string
	}{
		{dsnRegex, CredentialPlaceholder},
		{jwtRegex, TokenPlaceholder},
		{sqlRegex, SQLPlaceholder},
		{hostPortRegex, HostPlaceholder},
	}
)

// String replaces every sensitive fragment in s with its placeholder.
func String(s string) string {
	for _, p := range placeholders {
		s = p.pattern.ReplaceAllString(s, p.replacement)
	}
	return s
}

// Error redacts an error's message. Returns the empty string for nil.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
