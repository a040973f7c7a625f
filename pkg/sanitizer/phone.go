package sanitizer

import (
	"regexp"
	"strings"
)

var e164Regex = regexp.MustCompile(`^\+[1-9]\d{7,14}$`)

// NormalizePhone strips common formatting characters and returns the number
// in E.164 form, or an empty string when the result is not a valid number.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return ""
	}

	var b strings.Builder
	for i, r := range phone {
		switch {
		case r == '+' && i == 0:
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '(' || r == ')' || r == '.':
			// formatting noise
		default:
			return ""
		}
	}

	normalized := b.String()
	if !strings.HasPrefix(normalized, "+") {
		normalized = "+" + normalized
	}

	if !e164Regex.MatchString(normalized) {
		return ""
	}
	return normalized
}
