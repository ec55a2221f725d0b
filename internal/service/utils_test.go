package service

import "testing"

func TestSanitizeUTF8(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"kopi ☕", "kopi ☕"},
		{"caf\xc3", "caf"},
		{"a\xffb\xfe", "ab"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := sanitizeUTF8(tt.in); got != tt.want {
			t.Errorf("sanitizeUTF8(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
