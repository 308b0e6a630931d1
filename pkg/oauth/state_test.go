package oauth_test

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/oauthflow/pkg/oauth"
)

func TestRandomState(t *testing.T) {
	t.Parallel()

	state, err := oauth.RandomState{}.Generate()
	require.NoError(t, err)

	raw, err := base64.RawURLEncoding.DecodeString(state)
	require.NoError(t, err)
	require.Len(t, raw, 32)
}

func TestVerifyState(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		expected string
		received string
		ok       bool
	}{
		{name: "match", expected: "abc", received: "abc", ok: true},
		{name: "mismatch", expected: "abc", received: "abd"},
		{name: "length mismatch", expected: "abc", received: "abcd"},
		{name: "missing received", expected: "abc"},
		{name: "missing expected", received: "abc"},
		{name: "both missing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := oauth.VerifyState(tt.expected, tt.received)
			if tt.ok {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, oauth.ErrCallbackCSRF)

			var csrfErr *oauth.CallbackCSRFError
			require.ErrorAs(t, err, &csrfErr)
			require.Equal(t, "state", csrfErr.Key)
		})
	}
}
