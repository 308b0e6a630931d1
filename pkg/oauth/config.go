package oauth

import (
	"net/url"
	"strings"
)

// DefaultResponseType is sent when Config.ResponseType is empty.
const DefaultResponseType = "code"

// Config holds the options for one authorization flow.
// It is passed by value to every Strategy call and never mutated.
// Empty fields fall back to the provider's defaults.
type Config struct {
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`

	// BaseURL is used to resolve relative endpoint URLs, e.g. UserURL="/api/user".
	BaseURL      string `env:"BASE_URL"`
	AuthorizeURL string `env:"AUTHORIZE_URL"`
	TokenURL     string `env:"TOKEN_URL"`
	UserURL      string `env:"USER_URL"`

	RedirectURI  string `env:"REDIRECT_URI"`
	Scope        string `env:"SCOPE"`
	ResponseType string `env:"RESPONSE_TYPE"`

	// State is the preset token for AuthorizeURL, and the expected token
	// (normally round-tripped through the session) for Callback.
	State string

	// CodeVerifier is the PKCE verifier returned by AuthorizeURL.
	// Callback sends it to the token endpoint when set.
	CodeVerifier string

	// AuthorizeParams are extra query parameters for the authorization URL.
	AuthorizeParams map[string]string `env:"AUTHORIZE_PARAMS"`

	// UserTokenParam, when set, sends the access token as this query
	// parameter on the user request instead of the Authorization header.
	UserTokenParam string `env:"USER_TOKEN_PARAM"`

	// PKCE adds an S256 code challenge to the authorization URL.
	PKCE bool `env:"PKCE"`
}

// merge returns c with empty fields taken from defaults.
func (c Config) merge(defaults Config) Config {
	pick := func(v, d string) string {
		if v != "" {
			return v
		}
		return d
	}

	out := c
	out.ClientID = pick(c.ClientID, defaults.ClientID)
	out.ClientSecret = pick(c.ClientSecret, defaults.ClientSecret)
	out.BaseURL = pick(c.BaseURL, defaults.BaseURL)
	out.AuthorizeURL = pick(c.AuthorizeURL, defaults.AuthorizeURL)
	out.TokenURL = pick(c.TokenURL, defaults.TokenURL)
	out.UserURL = pick(c.UserURL, defaults.UserURL)
	out.RedirectURI = pick(c.RedirectURI, defaults.RedirectURI)
	out.Scope = pick(c.Scope, defaults.Scope)
	out.ResponseType = pick(c.ResponseType, defaults.ResponseType)
	out.UserTokenParam = pick(c.UserTokenParam, defaults.UserTokenParam)
	out.PKCE = c.PKCE || defaults.PKCE

	if len(defaults.AuthorizeParams) > 0 {
		params := make(map[string]string, len(defaults.AuthorizeParams)+len(c.AuthorizeParams))
		for k, v := range defaults.AuthorizeParams {
			params[k] = v
		}
		for k, v := range c.AuthorizeParams {
			params[k] = v
		}
		out.AuthorizeParams = params
	}

	if out.ResponseType == "" {
		out.ResponseType = DefaultResponseType
	}
	return out
}

// endpoint resolves raw against BaseURL when raw is relative.
// An empty raw stays empty so the missing-endpoint checks still fire.
func (c Config) endpoint(raw string) (string, error) {
	if raw == "" || c.BaseURL == "" {
		return raw, nil
	}

	ref, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if ref.IsAbs() {
		return raw, nil
	}

	base, err := url.Parse(strings.TrimSuffix(c.BaseURL, "/") + "/")
	if err != nil {
		return "", err
	}
	// Leading slash on raw would discard a base path; join instead.
	ref.Path = strings.TrimPrefix(ref.Path, "/")
	return base.ResolveReference(ref).String(), nil
}
