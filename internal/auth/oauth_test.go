package auth

import (
	"strings"
	"testing"

	"github.com/sakif/hackhub/internal/model"
)

func TestAuthURL_CarriesState(t *testing.T) {
	p := NewGithubProvider("client-id", "client-secret", "http://localhost:8080/auth/github/callback")

	url := p.AuthURL("random-state-abc")
	if !strings.Contains(url, "state=random-state-abc") {
		t.Errorf("AuthURL() = %q, missing state parameter", url)
	}
	if !strings.Contains(url, "client_id=client-id") {
		t.Errorf("AuthURL() = %q, missing client_id", url)
	}
}

func TestDecodeGithubUser(t *testing.T) {
	fu, err := decodeGithubUser([]byte(`{
		"id": 583231,
		"login": "octocat",
		"name": "The Octocat",
		"email": "octocat@github.com",
		"avatar_url": "https://avatars.githubusercontent.com/u/583231"
	}`))
	if err != nil {
		t.Fatalf("decodeGithubUser() error = %v", err)
	}

	if fu.Provider != model.ProviderGithub {
		t.Errorf("Provider = %q, want %q", fu.Provider, model.ProviderGithub)
	}
	if fu.Subject != "583231" {
		t.Errorf("Subject = %q, want GitHub numeric ID as string", fu.Subject)
	}
	if fu.Name != "The Octocat" {
		t.Errorf("Name = %q, want %q", fu.Name, "The Octocat")
	}
}

func TestDecodeGithubUser_FallsBackToLogin(t *testing.T) {
	// "name" is optional on GitHub — the login fills in.
	fu, err := decodeGithubUser([]byte(`{"id": 42, "login": "octocat"}`))
	if err != nil {
		t.Fatalf("decodeGithubUser() error = %v", err)
	}
	if fu.Name != "octocat" {
		t.Errorf("Name = %q, want login fallback %q", fu.Name, "octocat")
	}
}

func TestDecodeGithubUser_RejectsZeroID(t *testing.T) {
	if _, err := decodeGithubUser([]byte(`{"login": "nobody"}`)); err == nil {
		t.Error("decodeGithubUser() should reject a response without an id")
	}
}

func TestDecodeGoogleUser(t *testing.T) {
	fu, err := decodeGoogleUser([]byte(`{
		"id": "109876543210",
		"email": "ann@gmail.com",
		"name": "Ann Example",
		"picture": "https://lh3.googleusercontent.com/a/photo"
	}`))
	if err != nil {
		t.Fatalf("decodeGoogleUser() error = %v", err)
	}

	if fu.Provider != model.ProviderGoogle {
		t.Errorf("Provider = %q, want %q", fu.Provider, model.ProviderGoogle)
	}
	if fu.Subject != "109876543210" {
		t.Errorf("Subject = %q, want Google user ID", fu.Subject)
	}
	if fu.AvatarURL == "" {
		t.Error("AvatarURL should map from picture")
	}
}

func TestDecodeGoogleUser_RejectsEmptyID(t *testing.T) {
	if _, err := decodeGoogleUser([]byte(`{"email": "x@y.com"}`)); err == nil {
		t.Error("decodeGoogleUser() should reject a response without an id")
	}
}
