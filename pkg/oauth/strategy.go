package oauth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/oauth2"

	"github.com/dmitrymomot/oauthflow/pkg/logger"
)

// Strategy runs the authorization code flow for one Provider.
// It holds only immutable collaborators, so a single Strategy can serve
// concurrent requests.
type Strategy struct {
	provider   Provider
	httpClient *http.Client
	logger     *slog.Logger
	state      StateGenerator
}

// New creates a Strategy for the provider. A nil provider means Generic.
func New(provider Provider, opts ...Option) *Strategy {
	o := options{
		logger: logger.NewNope(),
		state:  RandomState{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	if provider == nil {
		provider = Generic{}
	}

	return &Strategy{
		provider:   provider,
		httpClient: o.httpClient,
		logger:     o.logger.With(slog.String("provider", provider.Name())),
		state:      o.state,
	}
}

// Provider returns the strategy's provider.
func (s *Strategy) Provider() Provider {
	return s.provider
}

// AuthorizeURL builds the URL the user agent is redirected to.
// It uses cfg.State when preset and generates a fresh one otherwise.
// No network call is made.
func (s *Strategy) AuthorizeURL(cfg Config) (*AuthorizationRequest, error) {
	cfg = cfg.merge(s.provider.Defaults())

	if cfg.ClientID == "" {
		return nil, &ConfigurationError{Message: "No client_id set"}
	}
	authURL, err := cfg.endpoint(cfg.AuthorizeURL)
	if err != nil {
		return nil, &ConfigurationError{Message: fmt.Sprintf("Invalid authorize URL: %v", err)}
	}
	if authURL == "" {
		return nil, &ConfigurationError{Message: "No authorize URL set"}
	}

	state := cfg.State
	if state == "" {
		if state, err = s.state.Generate(); err != nil {
			return nil, &ConfigurationError{Message: fmt.Sprintf("Could not generate state: %v", err)}
		}
	}

	opts := []oauth2.AuthCodeOption{oauth2.SetAuthURLParam("response_type", cfg.ResponseType)}
	for k, v := range cfg.AuthorizeParams {
		opts = append(opts, oauth2.SetAuthURLParam(k, v))
	}

	var verifier string
	if cfg.PKCE {
		verifier = oauth2.GenerateVerifier()
		opts = append(opts, oauth2.S256ChallengeOption(verifier))
	}

	u := s.oauth2Config(cfg, authURL, "").AuthCodeURL(state, opts...)
	s.logger.Debug("authorization url built", slog.Bool("pkce", cfg.PKCE))

	return &AuthorizationRequest{URL: u, State: state, CodeVerifier: verifier}, nil
}

// callbackFlow is the value threaded through the callback steps.
type callbackFlow struct {
	params  CallbackParams
	token   *oauth2.Token
	cfg     Config
	userURL string
	payload []byte
	user    User
}

type callbackStep struct {
	run  func(context.Context, *callbackFlow) error
	name string
}

// Callback handles the provider redirect: it checks for a provider error,
// verifies state against cfg.State, exchanges the code, fetches and
// normalizes the user. The first failing step ends the flow; nothing
// partial is returned. Every provider request is made at most once.
func (s *Strategy) Callback(ctx context.Context, cfg Config, params CallbackParams) (*Result, error) {
	f := &callbackFlow{
		cfg:    cfg.merge(s.provider.Defaults()),
		params: params,
	}

	steps := []callbackStep{
		{name: "redirect_error", run: s.checkRedirectError},
		{name: "state", run: s.verifyState},
		{name: "token", run: s.exchangeToken},
		{name: "user_url", run: s.requireUserURL},
		{name: "user", run: s.fetchUser},
		{name: "normalize", run: s.normalize},
	}
	for _, step := range steps {
		if err := step.run(ctx, f); err != nil {
			s.logger.WarnContext(ctx, "oauth callback failed",
				slog.String("step", step.name),
				errorKind(err),
				slog.String("error", err.Error()),
			)
			return nil, err
		}
		s.logger.DebugContext(ctx, "oauth callback step done", slog.String("step", step.name))
	}

	return &Result{User: f.user, Token: tokenResponse(f.token)}, nil
}

func (s *Strategy) checkRedirectError(_ context.Context, f *callbackFlow) error {
	if cbErr, ok := f.params.redirectError(); ok {
		return cbErr
	}
	return nil
}

func (s *Strategy) verifyState(_ context.Context, f *callbackFlow) error {
	return VerifyState(f.cfg.State, f.params.State())
}

func (s *Strategy) requireUserURL(_ context.Context, f *callbackFlow) error {
	userURL, err := f.cfg.endpoint(f.cfg.UserURL)
	if err != nil {
		return &ConfigurationError{Message: fmt.Sprintf("Invalid user URL: %v", err)}
	}
	if userURL == "" {
		return &ConfigurationError{Message: "No user URL set"}
	}
	f.userURL = userURL
	return nil
}

func (s *Strategy) normalize(_ context.Context, f *callbackFlow) error {
	user, err := s.provider.Normalize(f.payload)
	if err != nil {
		return err
	}
	f.user = user
	return nil
}

func (s *Strategy) oauth2Config(cfg Config, authURL, tokenURL string) *oauth2.Config {
	var scopes []string
	if cfg.Scope != "" {
		scopes = []string{cfg.Scope}
	}
	return &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURI,
		Scopes:       scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:   authURL,
			TokenURL:  tokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
}

func (s *Strategy) contextWithHTTPClient(ctx context.Context) context.Context {
	if s.httpClient != nil {
		return context.WithValue(ctx, oauth2.HTTPClient, s.httpClient)
	}
	return ctx
}

func (s *Strategy) client() *http.Client {
	if s.httpClient != nil {
		return s.httpClient
	}
	return http.DefaultClient
}

func tokenResponse(t *oauth2.Token) TokenResponse {
	if t == nil {
		return TokenResponse{}
	}
	scope, _ := t.Extra("scope").(string)
	return TokenResponse{
		AccessToken: t.AccessToken,
		TokenType:   t.Type(),
		Expiry:      t.Expiry,
		Scope:       strings.TrimSpace(scope),
	}
}

func errorKind(err error) slog.Attr {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return slog.String("kind", string(reqErr.Kind))
	}
	switch {
	case errors.Is(err, ErrConfiguration):
		return slog.String("kind", "configuration")
	case errors.Is(err, ErrCallbackCSRF):
		return slog.String("kind", "csrf")
	case errors.Is(err, ErrCallback):
		return slog.String("kind", "callback")
	default:
		return slog.String("kind", "unknown")
	}
}
