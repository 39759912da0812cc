package logging

import (
	"log/slog"
	"regexp"

	"github.com/m-mizutani/masq"
)

// SensitiveHeaders is the canonical set of HTTP header names (lowercase)
// that carry session credentials and must be redacted before logging. The
// session backend's entire security boundary is the cookie token, so it
// must never reach log output. Shared with the HTTP middleware's
// RedactHeaders utility so the two cannot silently drift apart.
var SensitiveHeaders = map[string]bool{
	"cookie":        true,
	"set-cookie":    true,
	"authorization": true,
	"x-api-key":     true,
}

// cookiePairPattern matches inline "todo_session=<value>" pairs that may
// appear inside arbitrary string fields such as dumped headers. List and
// todo IDs share the token alphabet but are not secrets, so only the
// cookie pair form is matched.
var cookiePairPattern = regexp.MustCompile(`(?i)todo_session\s*=\s*[^;\s]+`)

// fixedRedactOptions is the number of masq options beyond the dynamic
// SensitiveHeaders set (2 field names + 1 prefix + 1 regex).
const fixedRedactOptions = 4

// newRedactAttr returns a masq-powered ReplaceAttr function for use in
// slog.HandlerOptions. It redacts by field name for known sensitive fields
// and by regex for token values that escape call-site redaction.
func newRedactAttr() func([]string, slog.Attr) slog.Attr {
	opts := make([]masq.Option, 0, fixedRedactOptions+len(SensitiveHeaders))

	// Sensitive header names shared with the HTTP middleware layer.
	for name := range SensitiveHeaders {
		opts = append(opts, masq.WithFieldName(name))
	}

	opts = append(opts,
		masq.WithFieldName("session_token"),
		masq.WithFieldName("token"),

		// Prefix-based redaction for variations like "session_id".
		masq.WithFieldPrefix("session_"),

		// Regex-based defense-in-depth for raw token values.
		masq.WithRegex(cookiePairPattern),
	)

	return masq.New(opts...)
}
