package auth

import (
	"strings"
	"testing"
	"time"
)

func newTestTokenService(t *testing.T) *TokenService {
	t.Helper()
	ts, err := NewTokenService("test-secret-at-least-16-chars!!")
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	return ts
}

func TestNewTokenService_SecretLength(t *testing.T) {
	if _, err := NewTokenService("short"); err == nil {
		t.Error("NewTokenService() should reject secrets under 16 chars")
	}
	if _, err := NewTokenService("this-is-16-chars"); err != nil {
		t.Errorf("NewTokenService() rejected a valid secret: %v", err)
	}
}

func TestGenerateValidate_RoundTrip(t *testing.T) {
	ts := newTestTokenService(t)

	token, err := ts.Generate("user-abc-123")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if parts := strings.Count(token, "."); parts != 2 {
		t.Errorf("token has %d dots, want 2 (header.payload.signature)", parts)
	}

	got, err := ts.Validate(token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if got != "user-abc-123" {
		t.Errorf("Validate() subject = %q, want %q", got, "user-abc-123")
	}
}

func TestValidate_Rejections(t *testing.T) {
	ts := newTestTokenService(t)

	expired, err := ts.GenerateWithDuration("user-123", -time.Second)
	if err != nil {
		t.Fatalf("GenerateWithDuration() error = %v", err)
	}

	valid, _ := ts.Generate("user-123")
	tampered := valid[:len(valid)-3] + "xxx"

	otherService, _ := NewTokenService("a-completely-different-secret!!!")
	foreign, _ := otherService.Generate("user-123")

	tests := []struct {
		name  string
		token string
	}{
		{"expired token", expired},
		{"tampered signature", tampered},
		{"signed with another secret", foreign},
		{"empty string", ""},
		{"garbage", "not.a.jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ts.Validate(tt.token); err == nil {
				t.Error("Validate() accepted an invalid token")
			}
		})
	}
}
