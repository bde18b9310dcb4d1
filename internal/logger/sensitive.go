package logger

import (
	"log/slog"
	"regexp"
	"strings"
)

// redactedValue replaces sensitive values in log output
const redactedValue = "[REDACTED]"

// SensitiveDataPatterns contains regex patterns for sensitive data that should be redacted in logs.
// Exported archives leave the machine, so secrets are scrubbed before they ever reach a log file.
var SensitiveDataPatterns = []*regexp.Regexp{
	// Auth tokens (Bearer, JWT, etc.)
	regexp.MustCompile(`(?i)(bearer\s+)([A-Za-z0-9-._~+/]+=*)`),
	regexp.MustCompile(`(?i)(eyJ[a-zA-Z0-9_-]{5,}\.eyJ[a-zA-Z0-9_-]{5,})\.[a-zA-Z0-9_-]{5,}`),

	// API keys, tokens and secrets in key=value or key: value form
	regexp.MustCompile(`(?i)(\b(?:api|access|auth|token|secret|key|passw(?:or)?d)[0-9a-z\-_\.]*\s*[:=]\s*)([^;,\s]{5,})`),

	// Common cookie patterns
	regexp.MustCompile(`(?i)((?:session|auth|token|csrf|sid)=)([^;,\s]{5,})`),
}

// SensitiveKeywords are field-key fragments that mark a value as sensitive
var SensitiveKeywords = []string{
	"password", "passwd", "secret", "credential", "token", "api_key",
	"apikey", "authorization", "cookie", "session", "csrf",
}

// RedactSensitiveData replaces sensitive information with "[REDACTED]"
func RedactSensitiveData(input string) string {
	if input == "" {
		return input
	}

	for _, pattern := range SensitiveDataPatterns {
		input = pattern.ReplaceAllString(input, "${1}"+redactedValue)
	}

	return input
}

// verbatimKeys hold diagnostic text that must reach the log unchanged
var verbatimKeys = map[string]struct{}{
	"error": {},
	"stack": {},
}

// isSensitiveKey reports whether a field key indicates a secret value
func isSensitiveKey(key string) bool {
	keyLower := strings.ToLower(key)
	for _, keyword := range SensitiveKeywords {
		if strings.Contains(keyLower, keyword) {
			return true
		}
	}
	return false
}

// redactAttr scrubs string attributes; used from slog ReplaceAttr hooks
func redactAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() != slog.KindString {
		return a
	}
	if _, ok := verbatimKeys[a.Key]; ok {
		return a
	}
	if isSensitiveKey(a.Key) {
		if a.Value.String() != "" {
			a.Value = slog.StringValue(redactedValue)
		}
		return a
	}
	a.Value = slog.StringValue(RedactSensitiveData(a.Value.String()))
	return a
}
