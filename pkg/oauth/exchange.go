package oauth

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"golang.org/x/oauth2"
)

// exchangeToken posts the authorization code to the token endpoint.
// x/oauth2 sends grant_type, code and redirect_uri; client credentials go
// in the form body (AuthStyleInParams).
func (s *Strategy) exchangeToken(ctx context.Context, f *callbackFlow) error {
	tokenURL, err := f.cfg.endpoint(f.cfg.TokenURL)
	if err != nil {
		return &ConfigurationError{Message: fmt.Sprintf("Invalid token URL: %v", err)}
	}
	if tokenURL == "" {
		return &ConfigurationError{Message: "No token URL set"}
	}

	opts := []oauth2.AuthCodeOption{oauth2.SetAuthURLParam("response_type", DefaultResponseType)}
	if f.cfg.CodeVerifier != "" {
		opts = append(opts, oauth2.VerifierOption(f.cfg.CodeVerifier))
	}

	token, err := s.oauth2Config(f.cfg, "", tokenURL).
		Exchange(s.contextWithHTTPClient(ctx), f.params.Code(), opts...)
	if err != nil {
		return classifyTokenError(err)
	}
	f.token = token
	return nil
}

// classifyTokenError maps x/oauth2 exchange errors onto RequestError kinds.
//
// x/oauth2 returns *oauth2.RetrieveError for non-2xx statuses and for 2xx
// bodies carrying an "error" field, the client's *url.Error for transport
// failures, and plain errors for unparseable bodies or a missing
// access_token.
func classifyTokenError(err error) *RequestError {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		status := 0
		if retrieveErr.Response != nil {
			status = retrieveErr.Response.StatusCode
		}
		if status >= 200 && status < 300 {
			return errUnexpectedResponse(retrieveErr.Body, err)
		}
		return errInvalidServerResponse(status, retrieveErr.Body)
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return errUnreachable(err)
	}

	return errUnexpectedResponse(nil, err)
}
