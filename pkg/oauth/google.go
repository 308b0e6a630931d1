package oauth

import (
	googleOAuth "golang.org/x/oauth2/google"
)

const (
	// GoogleProviderName is the identifier for Google OAuth provider.
	GoogleProviderName = "google"
	googleUserInfoURL  = "https://www.googleapis.com/oauth2/v3/userinfo"
	googleScope        = "openid email profile"
)

var googleFields = FieldMap{
	UIDKey:           "sub",
	"name":           "name",
	"given_name":     "given_name",
	"family_name":    "family_name",
	"email":          "email",
	"email_verified": "email_verified",
	"picture":        "picture",
	"locale":         "locale",
	"hd":             "hd",
}

// Google implements Provider for Google sign-in.
type Google struct{}

// Name returns the provider identifier.
func (Google) Name() string { return GoogleProviderName }

// Defaults returns Google's endpoints and scope.
func (Google) Defaults() Config {
	return Config{
		AuthorizeURL: googleOAuth.Endpoint.AuthURL,
		TokenURL:     googleOAuth.Endpoint.TokenURL,
		UserURL:      googleUserInfoURL,
		Scope:        googleScope,
	}
}

// Normalize maps the OpenID userinfo payload.
func (Google) Normalize(payload []byte) (User, error) {
	return googleFields.Normalize(payload)
}
