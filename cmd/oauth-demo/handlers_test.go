package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/oauthflow/pkg/authcookie"
	"github.com/dmitrymomot/oauthflow/pkg/logger"
	"github.com/dmitrymomot/oauthflow/pkg/oauth"
)

const testSecret = "this-is-a-32-byte-or-longer-key!"

func newTestApp(t *testing.T) http.Handler {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"access_token": "abc", "token_type": "bearer"})
	})
	mux.HandleFunc("/user", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"uid": "1", "name": "Dan Schultzer"})
	})
	provider := httptest.NewServer(mux)
	t.Cleanup(provider.Close)

	cookies, err := authcookie.New(testSecret, authcookie.WithSecure(false))
	require.NoError(t, err)

	return newRouter(&authHandler{
		strategy: oauth.New(oauth.Generic{}, oauth.WithHTTPClient(provider.Client())),
		oauth: oauth.Config{
			ClientID:     "client-id",
			ClientSecret: "client-secret",
			BaseURL:      provider.URL,
			AuthorizeURL: "/authorize",
			TokenURL:     "/token",
			UserURL:      "/user",
			RedirectURI:  "http://app.example/auth/callback",
			PKCE:         true,
		},
		cookies: cookies,
		log:     logger.NewNope(),
	})
}

// login performs the login redirect and returns the state and cookie.
func login(t *testing.T, app http.Handler) (string, *http.Cookie) {
	t.Helper()

	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/login?return_to=/home", nil))
	require.Equal(t, http.StatusFound, w.Code)

	loc, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	require.Equal(t, "/authorize", loc.Path)
	require.Equal(t, "S256", loc.Query().Get("code_challenge_method"))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	return loc.Query().Get("state"), cookies[0]
}

func callback(app http.Handler, query string, c *http.Cookie) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodGet, "/auth/callback?"+query, nil)
	if c != nil {
		r.AddCookie(c)
	}
	w := httptest.NewRecorder()
	app.ServeHTTP(w, r)
	return w
}

func TestAuthFlow(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		app := newTestApp(t)
		state, c := login(t, app)

		w := callback(app, "code=c&state="+url.QueryEscape(state), c)
		require.Equal(t, http.StatusOK, w.Code)

		var resp callbackResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		require.Equal(t, oauth.User{"uid": "1", "name": "Dan Schultzer"}, resp.User)
		require.Equal(t, "oauth2", resp.Provider)
		require.Equal(t, "/home", resp.ReturnTo)
	})

	t.Run("state mismatch", func(t *testing.T) {
		t.Parallel()

		app := newTestApp(t)
		_, c := login(t, app)

		w := callback(app, "code=c&state=forged", c)
		require.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("missing cookie", func(t *testing.T) {
		t.Parallel()

		app := newTestApp(t)
		state, _ := login(t, app)

		w := callback(app, "code=c&state="+url.QueryEscape(state), nil)
		require.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("provider error", func(t *testing.T) {
		t.Parallel()

		app := newTestApp(t)
		w := callback(app, "error=access_denied&error_description=denied", nil)
		require.Equal(t, http.StatusUnauthorized, w.Code)

		var resp errorResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		require.Equal(t, "access_denied", resp.Error)
		require.Equal(t, "denied", resp.Description)
	})
}

func TestLocalPath(t *testing.T) {
	t.Parallel()

	require.Equal(t, "/home", localPath("/home"))
	require.Empty(t, localPath("https://evil.example"))
	require.Empty(t, localPath("//evil.example"))
	require.Empty(t, localPath(""))
}

func TestProviderByName(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"github", "google", "gitlab", "oauth2", ""} {
		_, err := providerByName(name)
		require.NoError(t, err, name)
	}
	_, err := providerByName("myspace")
	require.Error(t, err)
}
