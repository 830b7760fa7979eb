package service

import (
	"strings"
	"testing"
)

func TestNormalizeVoucherCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"kf-abc123", "KF-ABC123"},
		{"  KF-ABC123  ", "KF-ABC123"},
		{"Kf-AbC123", "KF-ABC123"},
	}
	for _, tt := range tests {
		if got := NormalizeVoucherCode(tt.in); got != tt.want {
			t.Errorf("NormalizeVoucherCode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGenerateVoucherCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code := GenerateVoucherCode()
		if !strings.HasPrefix(code, "KF-") {
			t.Fatalf("code %q missing prefix", code)
		}
		if code != NormalizeVoucherCode(code) {
			t.Fatalf("generated code %q is not in canonical form", code)
		}
		if seen[code] {
			t.Fatalf("duplicate code %q within 100 generations", code)
		}
		seen[code] = true
	}
}
