package dbutil

import (
	"fmt"
	"regexp"
	"strings"
)

// Unquoted MySQL identifiers may start with a digit and contain '$'.
var identRe = regexp.MustCompile(`^[A-Za-z0-9_$]+$`)

// ValidIdent reports whether name is a table name that can be quoted without
// escaping in both MySQL and PostgreSQL.
func ValidIdent(name string) bool {
	return identRe.MatchString(name)
}

// SafeIdent returns name unchanged when ValidIdent accepts it.
func SafeIdent(name string) (string, error) {
	if !ValidIdent(name) {
		return "", fmt.Errorf("invalid identifier: %q", name)
	}
	return name, nil
}

// QuoteLiteral returns a SQL string literal with single quotes escaped.
func QuoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// ErrWrap returns a formatted error with an operation label and optional details.
// Example: ErrWrap("reset.delete", err, "entity=customer", "table=customer_entity")
func ErrWrap(op string, err error, parts ...string) error {
	if err == nil {
		return nil
	}
	if len(parts) == 0 {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w; %s", op, err, strings.Join(parts, ","))
}

// Missing returns the entries of want absent from present, keeping want's order.
func Missing(want, present []string) []string {
	have := make(map[string]struct{}, len(present))
	for _, p := range present {
		have[p] = struct{}{}
	}
	var out []string
	for _, w := range want {
		if _, ok := have[w]; !ok {
			out = append(out, w)
		}
	}
	return out
}
