package authcookie_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/oauthflow/pkg/authcookie"
)

const testSecret = "this-is-a-32-byte-or-longer-key!"

func roundTrip(t *testing.T, w *httptest.ResponseRecorder) *http.Request {
	t.Helper()
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	r := httptest.NewRequest(http.MethodGet, "/callback", nil)
	r.AddCookie(cookies[0])
	return r
}

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := authcookie.New("short")
	require.ErrorIs(t, err, authcookie.ErrBadSecret)

	s, err := authcookie.New(testSecret)
	require.NoError(t, err)
	require.NotNil(t, s)
}

func TestStore_SaveLoad(t *testing.T) {
	t.Parallel()

	s, err := authcookie.New(testSecret, authcookie.WithSecure(true), authcookie.WithPath("/auth"))
	require.NoError(t, err)

	w := httptest.NewRecorder()
	require.NoError(t, s.Save(w, authcookie.Pending{
		Provider:     "github",
		State:        "state-1",
		CodeVerifier: "verifier-1",
		ReturnTo:     "/dashboard",
	}))

	c := w.Result().Cookies()[0]
	require.Equal(t, authcookie.DefaultName, c.Name)
	require.Equal(t, "/auth", c.Path)
	require.True(t, c.Secure)
	require.True(t, c.HttpOnly)
	require.Equal(t, http.SameSiteLaxMode, c.SameSite)
	require.Equal(t, int(authcookie.DefaultTTL.Seconds()), c.MaxAge)
	require.NotContains(t, c.Value, "state-1")

	p, err := s.Load(roundTrip(t, w))
	require.NoError(t, err)
	require.Equal(t, "github", p.Provider)
	require.Equal(t, "state-1", p.State)
	require.Equal(t, "verifier-1", p.CodeVerifier)
	require.Equal(t, "/dashboard", p.ReturnTo)
}

func TestStore_Load(t *testing.T) {
	t.Parallel()

	t.Run("missing", func(t *testing.T) {
		t.Parallel()

		s, err := authcookie.New(testSecret)
		require.NoError(t, err)
		_, err = s.Load(httptest.NewRequest(http.MethodGet, "/", nil))
		require.ErrorIs(t, err, authcookie.ErrNotFound)
	})

	t.Run("tampered", func(t *testing.T) {
		t.Parallel()

		s, err := authcookie.New(testSecret)
		require.NoError(t, err)
		w := httptest.NewRecorder()
		require.NoError(t, s.Save(w, authcookie.Pending{State: "x"}))

		c := w.Result().Cookies()[0]
		c.Value = strings.ToUpper(c.Value[:4]) + c.Value[4:] + "AA"
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(c)

		_, err = s.Load(r)
		require.ErrorIs(t, err, authcookie.ErrDecrypt)
	})

	t.Run("other secret", func(t *testing.T) {
		t.Parallel()

		s, err := authcookie.New(testSecret)
		require.NoError(t, err)
		other, err := authcookie.New(testSecret + "-other")
		require.NoError(t, err)

		w := httptest.NewRecorder()
		require.NoError(t, s.Save(w, authcookie.Pending{State: "x"}))

		_, err = other.Load(roundTrip(t, w))
		require.ErrorIs(t, err, authcookie.ErrDecrypt)
	})

	t.Run("expired", func(t *testing.T) {
		t.Parallel()

		now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
		clock := func() time.Time { return now }
		s, err := authcookie.New(testSecret, authcookie.WithTTL(time.Minute), authcookie.WithClock(clock))
		require.NoError(t, err)

		w := httptest.NewRecorder()
		require.NoError(t, s.Save(w, authcookie.Pending{State: "x"}))
		r := roundTrip(t, w)

		now = now.Add(2 * time.Minute)
		_, err = s.Load(r)
		require.ErrorIs(t, err, authcookie.ErrExpired)
	})
}

func TestStore_Clear(t *testing.T) {
	t.Parallel()

	s, err := authcookie.New(testSecret, authcookie.WithName("pending"))
	require.NoError(t, err)

	w := httptest.NewRecorder()
	s.Clear(w)

	c := w.Result().Cookies()[0]
	require.Equal(t, "pending", c.Name)
	require.Empty(t, c.Value)
	require.Negative(t, c.MaxAge)
}
