package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
	"golang.org/x/oauth2/google"

	"github.com/sakif/hackhub/internal/model"
)

// FederatedUser is the provider-independent identity extracted from an
// OAuth userinfo response. Subject is the provider's stable user ID — the
// field federated logins are keyed on; email and name can change or be
// hidden between logins.
type FederatedUser struct {
	Provider  string // model.ProviderGoogle or model.ProviderGithub
	Subject   string // provider-issued user ID
	Email     string // may be empty if hidden in the provider's settings
	Name      string
	AvatarURL string
}

// Provider runs the OAuth 2.0 authorization-code flow for one upstream
// identity provider and normalizes its userinfo response to FederatedUser.
//
// FLOW (both providers):
//  1. AuthURL redirects the browser to the provider's consent page with a
//     random state (CSRF token, verified by the callback handler).
//  2. The provider calls back with a short-lived code.
//  3. Exchange trades the code for an access token server-to-server — the
//     ClientSecret and the token never reach the browser — then fetches the
//     userinfo endpoint with it.
type Provider struct {
	name        string
	config      *oauth2.Config
	userinfoURL string
	decode      func([]byte) (*FederatedUser, error)
}

// Name returns the provider identifier ("google" or "github").
func (p *Provider) Name() string { return p.name }

// NewGithubProvider configures the GitHub code flow.
//
// Register the OAuth app under github.com/settings/developers; callbackURL
// must exactly match the app's "Authorization callback URL".
func NewGithubProvider(clientID, clientSecret, callbackURL string) *Provider {
	return &Provider{
		name: model.ProviderGithub,
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  callbackURL,
			Scopes:       []string{"read:user", "user:email"},
			Endpoint:     github.Endpoint,
		},
		userinfoURL: "https://api.github.com/user",
		decode:      decodeGithubUser,
	}
}

// NewGoogleProvider configures the Google code flow. Credentials come from
// an OAuth client in the Google Cloud console.
func NewGoogleProvider(clientID, clientSecret, callbackURL string) *Provider {
	return &Provider{
		name: model.ProviderGoogle,
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  callbackURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		userinfoURL: "https://www.googleapis.com/oauth2/v2/userinfo",
		decode:      decodeGoogleUser,
	}
}

// AuthURL returns the consent-page URL for the given CSRF state.
func (p *Provider) AuthURL(state string) string {
	return p.config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// Exchange completes the code flow: trades the authorization code for an
// access token, fetches the userinfo endpoint, and returns the normalized
// identity.
func (p *Provider) Exchange(ctx context.Context, code string) (*FederatedUser, error) {
	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("auth: exchanging %s OAuth code: %w", p.name, err)
	}

	// config.Client returns an *http.Client that attaches the bearer
	// token to every request.
	resp, err := p.config.Client(ctx, token).Get(p.userinfoURL)
	if err != nil {
		return nil, fmt.Errorf("auth: fetching %s userinfo: %w", p.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("auth: %s userinfo returned status %d", p.name, resp.StatusCode)
	}

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("auth: decoding %s userinfo: %w", p.name, err)
	}

	fu, err := p.decode(raw)
	if err != nil {
		return nil, fmt.Errorf("auth: %s userinfo: %w", p.name, err)
	}
	return fu, nil
}

// githubUser is the slice of GitHub's /user response we care about. GitHub
// returns a much larger object; unknown fields are ignored.
type githubUser struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

func decodeGithubUser(raw []byte) (*FederatedUser, error) {
	var gh githubUser
	if err := json.Unmarshal(raw, &gh); err != nil {
		return nil, err
	}
	if gh.ID == 0 {
		return nil, fmt.Errorf("invalid user (id = 0)")
	}

	name := gh.Name
	if name == "" {
		name = gh.Login
	}
	return &FederatedUser{
		Provider:  model.ProviderGithub,
		Subject:   fmt.Sprintf("%d", gh.ID),
		Email:     gh.Email,
		Name:      name,
		AvatarURL: gh.AvatarURL,
	}, nil
}

// googleUser is the slice of the v2 userinfo response we care about.
type googleUser struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

func decodeGoogleUser(raw []byte) (*FederatedUser, error) {
	var g googleUser
	if err := json.Unmarshal(raw, &g); err != nil {
		return nil, err
	}
	if g.ID == "" {
		return nil, fmt.Errorf("invalid user (empty id)")
	}
	return &FederatedUser{
		Provider:  model.ProviderGoogle,
		Subject:   g.ID,
		Email:     g.Email,
		Name:      g.Name,
		AvatarURL: g.Picture,
	}, nil
}
