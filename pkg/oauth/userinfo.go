package oauth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

// maxUserBody caps how much of the user response is read.
const maxUserBody = 1 << 20

// fetchUser GETs the user endpoint with the access token, either as a
// bearer header or as Config.UserTokenParam.
func (s *Strategy) fetchUser(ctx context.Context, f *callbackFlow) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.userURL, nil)
	if err != nil {
		return &ConfigurationError{Message: fmt.Sprintf("Invalid user URL: %v", err)}
	}
	req.Header.Set("Accept", "application/json")

	if param := f.cfg.UserTokenParam; param != "" {
		q := req.URL.Query()
		q.Set(param, f.token.AccessToken)
		req.URL.RawQuery = q.Encode()
	} else {
		f.token.SetAuthHeader(req)
	}

	resp, err := s.client().Do(req)
	if err != nil {
		return errUnreachable(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxUserBody))
	if err != nil {
		return errUnreachable(fmt.Errorf("read user response: %w", err))
	}

	switch {
	case unauthorized(resp):
		return errUnauthorizedToken(resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return errInvalidServerResponse(resp.StatusCode, body)
	case !gjson.ValidBytes(body):
		return errUnexpectedResponse(body, errors.New("user response is not valid JSON"))
	}

	f.payload = body
	return nil
}

// unauthorized reports a 401, or any status whose WWW-Authenticate header
// flags the token as invalid (RFC 6750 section 3.1).
func unauthorized(resp *http.Response) bool {
	if resp.StatusCode == http.StatusUnauthorized {
		return true
	}
	return strings.Contains(resp.Header.Get("WWW-Authenticate"), "invalid_token")
}
