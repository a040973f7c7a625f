package sanitizer

import "testing"

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"already e164", "+14155550123", "+14155550123"},
		{"formatted", "+1 (415) 555-0123", "+14155550123"},
		{"dots and spaces", "+33 6.12.34.56.78", "+33612345678"},
		{"missing plus", "14155550123", "+14155550123"},
		{"surrounding whitespace", "  +14155550123  ", "+14155550123"},
		{"empty", "", ""},
		{"letters rejected", "+1415CALLME", ""},
		{"plus in the middle rejected", "14+155550123", ""},
		{"too short", "+1234567", ""},
		{"leading zero country code", "+0123456789", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizePhone(tc.input); got != tc.want {
				t.Errorf("NormalizePhone(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestTrimAndNormalize(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"  Maria  Garcia  ", "Maria Garcia"},
		{"Maria\tGarcia", "Maria Garcia"},
		{"Maria\n Garcia", "Maria Garcia"},
		{"   ", ""},
		{"Maria", "Maria"},
	}

	for _, tc := range cases {
		if got := TrimAndNormalize(tc.input); got != tc.want {
			t.Errorf("TrimAndNormalize(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Maria.Garcia@Example.COM "); got != "maria.garcia@example.com" {
		t.Errorf("NormalizeEmail = %q", got)
	}
}
