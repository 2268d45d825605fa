package validation

import "strings"

// NormalizePhone strips a raw phone string down to ASCII digits plus an
// optional single leading +, preserving digit order. An empty or malformed
// result is valid output; downstream checks decide what to do with it.
func NormalizePhone(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(raw))
	plus := strings.HasPrefix(raw, "+")
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if digits == "" {
		return ""
	}
	if plus {
		return "+" + digits
	}
	return digits
}
