// Package oauth implements the client side of the OAuth2 authorization code
// flow as a pluggable strategy.
//
// A Strategy builds the authorization redirect URL with an anti-forgery
// state token and, on the provider redirect, exchanges the code for an
// access token, fetches the user profile and normalizes it. Every failure
// is reported as one of a closed set of error types.
//
// # Features
//
//   - Provider interface with a Generic default and GitHub, Google and GitLab mappings
//   - Stateless Strategy: configuration is passed per call, safe for concurrent use
//   - Random 256-bit state tokens and strict state verification
//   - Optional PKCE (S256) support
//   - gjson path based field mapping for user payloads
//   - Functional options for the HTTP client, logger and state generator
//
// # Usage
//
//	strategy := oauth.New(oauth.GitHub{}, oauth.WithLogger(log))
//
//	cfg := oauth.Config{
//		ClientID:     os.Getenv("GITHUB_CLIENT_ID"),
//		ClientSecret: os.Getenv("GITHUB_CLIENT_SECRET"),
//		RedirectURI:  "https://example.com/auth/github/callback",
//	}
//
//	// Login handler: redirect and remember the state.
//	req, err := strategy.AuthorizeURL(cfg)
//	if err != nil {
//		// handle error
//	}
//	// store req.State in the session, then redirect to req.URL
//
//	// Callback handler: hand the stored state back through Config.
//	cfg.State = storedState
//	res, err := strategy.Callback(ctx, cfg, oauth.ParamsFromValues(r.URL.Query()))
//	if err != nil {
//		// handle error
//	}
//	log.Info("signed in", "uid", res.User.UID())
//
// # Callback sequence
//
// Callback runs these steps and stops at the first failure:
//
//  1. provider error on the redirect (error, error_description, error_uri)
//  2. state verification against Config.State
//  3. token exchange at Config.TokenURL
//  4. Config.UserURL presence check (after the exchange, by design of the flow)
//  5. user request with the access token
//  6. normalization through the provider
//
// No step is retried.
//
// # Custom Providers
//
// Providers only supply defaults and a field mapping:
//
//	acme := oauth.NewProvider("acme", oauth.Config{
//		AuthorizeURL: "https://acme.example/oauth/authorize",
//		TokenURL:     "https://acme.example/oauth/token",
//		UserURL:      "https://acme.example/api/me",
//	}, oauth.FieldMap{"uid": "data.id", "email": "data.attributes.email"})
//
// # Error Handling
//
//   - *ConfigurationError (ErrConfiguration): missing endpoint or credential
//   - *CallbackCSRFError (ErrCallbackCSRF): state missing or mismatched
//   - *CallbackError (ErrCallback): provider redirected with an error
//   - *RequestError (ErrRequest): token or user request failed; see Kind
//
// Use errors.Is for the category and errors.As for details:
//
//	var reqErr *oauth.RequestError
//	if errors.As(err, &reqErr) && reqErr.Kind == oauth.KindUnauthorized {
//		// token rejected by the user endpoint
//	}
//
// # Testing
//
// Use WithHTTPClient with an httptest server client, and a preset
// Config.State or WithStateGenerator for deterministic URLs.
package oauth
