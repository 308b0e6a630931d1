package oauth

import (
	"net/url"
	"time"
)

// UIDKey is the profile key every normalized User carries.
const UIDKey = "uid"

// User is a normalized user profile: string keys, string values,
// always with a non-empty "uid".
type User map[string]string

// UID returns the provider's identifier for the user.
func (u User) UID() string {
	return u[UIDKey]
}

// AuthorizationRequest is the result of Strategy.AuthorizeURL.
// The caller must persist State (and CodeVerifier, when PKCE is on)
// and hand them back through Config on the callback.
type AuthorizationRequest struct {
	URL          string
	State        string
	CodeVerifier string
}

// CallbackParams are the query or form parameters of the provider redirect.
type CallbackParams map[string]string

// ParamsFromValues flattens url.Values, keeping the first value per key.
func ParamsFromValues(v url.Values) CallbackParams {
	params := make(CallbackParams, len(v))
	for k := range v {
		params[k] = v.Get(k)
	}
	return params
}

// Code returns the authorization code.
func (p CallbackParams) Code() string { return p["code"] }

// State returns the state token echoed by the provider.
func (p CallbackParams) State() string { return p[stateParam] }

// redirectError returns the provider error on the redirect, if any.
func (p CallbackParams) redirectError() (*CallbackError, bool) {
	code, ok := p["error"]
	if !ok {
		return nil, false
	}
	return &CallbackError{
		Code:        code,
		Description: p["error_description"],
		URI:         p["error_uri"],
	}, true
}

// TokenResponse is the parsed token endpoint payload.
// It lives only for the duration of one callback and is returned to the
// caller as-is; nothing here stores it.
type TokenResponse struct {
	Expiry      time.Time
	AccessToken string
	TokenType   string
	Scope       string
}

// Result is a successful callback outcome.
type Result struct {
	User  User
	Token TokenResponse
}
