package validation

import "testing"

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"formatted russian number", "+7 (999) 123-45-67", "+79991234567"},
		{"bare digits", "79991234567", "79991234567"},
		{"eight prefix", "8 999 123 45 67", "89991234567"},
		{"dots and dashes", "9-99.12.34", "9991234"},
		{"plus not leading is dropped", "7+999", "7999"},
		{"letters stripped", "phone: 123abc456", "123456"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
		{"no digits at all", "+-()", ""},
		{"leading plus kept", "+79991234567", "+79991234567"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePhone(tt.raw); got != tt.want {
				t.Fatalf("NormalizePhone(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizePhoneIdempotent(t *testing.T) {
	inputs := []string{
		"+7 (999) 123-45-67",
		"89991234567",
		"",
		"+-()",
		"abc123",
	}
	for _, raw := range inputs {
		once := NormalizePhone(raw)
		twice := NormalizePhone(once)
		if once != twice {
			t.Fatalf("not idempotent for %q: %q != %q", raw, once, twice)
		}
	}
}
