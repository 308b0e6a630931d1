// Package authcookie keeps a pending OAuth2 authorization (state token,
// PKCE verifier, return path) in an encrypted, short-lived cookie between
// the login redirect and the provider callback.
//
//	store, err := authcookie.New(os.Getenv("COOKIE_SECRET"), authcookie.WithSecure(true))
//
//	// login
//	_ = store.Save(w, authcookie.Pending{Provider: "github", State: req.State, CodeVerifier: req.CodeVerifier})
//
//	// callback
//	pending, err := store.Load(r)
//	store.Clear(w)
//
// Values are sealed with AES-GCM under a key derived from the secret, so
// the browser can neither read nor forge them. Load rejects records older
// than the TTL with ErrExpired.
package authcookie
