package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dmitrymomot/oauthflow/pkg/authcookie"
	"github.com/dmitrymomot/oauthflow/pkg/logger"
	"github.com/dmitrymomot/oauthflow/pkg/oauth"
)

type authHandler struct {
	strategy *oauth.Strategy
	cookies  *authcookie.Store
	log      *slog.Logger
	oauth    oauth.Config
}

type callbackResponse struct {
	User     oauth.User `json:"user"`
	Provider string     `json:"provider"`
	ReturnTo string     `json:"return_to,omitempty"`
}

type errorResponse struct {
	Error       string `json:"error"`
	Description string `json:"error_description,omitempty"`
}

func (h *authHandler) login(w http.ResponseWriter, r *http.Request) {
	provider := h.strategy.Provider().Name()
	ctx := logger.WithProvider(r.Context(), provider)

	req, err := h.strategy.AuthorizeURL(h.oauth)
	if err != nil {
		h.log.ErrorContext(ctx, "build authorization url", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "configuration_error"})
		return
	}

	if err := h.cookies.Save(w, authcookie.Pending{
		Provider:     provider,
		State:        req.State,
		CodeVerifier: req.CodeVerifier,
		ReturnTo:     localPath(r.URL.Query().Get("return_to")),
	}); err != nil {
		h.log.ErrorContext(ctx, "save pending authorization", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "server_error"})
		return
	}

	h.log.InfoContext(logger.WithFlowID(ctx, req.State), "redirecting to provider")
	http.Redirect(w, r, req.URL, http.StatusFound)
}

func (h *authHandler) callback(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithProvider(r.Context(), h.strategy.Provider().Name())

	// A missing or unreadable cookie leaves the expected state empty, which
	// Callback reports as a CSRF failure unless the provider sent an error.
	pending, err := h.cookies.Load(r)
	if err != nil {
		h.log.WarnContext(ctx, "no pending authorization", slog.String("error", err.Error()))
	}
	h.cookies.Clear(w)
	ctx = logger.WithFlowID(ctx, pending.State)

	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_request"})
		return
	}

	cfg := h.oauth
	cfg.State = pending.State
	cfg.CodeVerifier = pending.CodeVerifier

	res, err := h.strategy.Callback(ctx, cfg, oauth.ParamsFromValues(r.Form))
	if err != nil {
		status, body := callbackFailure(err)
		h.log.WarnContext(ctx, "sign in failed", slog.Int("status", status), slog.String("error", err.Error()))
		writeJSON(w, status, body)
		return
	}

	h.log.InfoContext(ctx, "signed in", slog.String("uid", res.User.UID()))
	writeJSON(w, http.StatusOK, callbackResponse{
		User:     res.User,
		Provider: h.strategy.Provider().Name(),
		ReturnTo: pending.ReturnTo,
	})
}

// callbackFailure maps callback errors to a status and a client-safe body.
func callbackFailure(err error) (int, errorResponse) {
	var cbErr *oauth.CallbackError
	var reqErr *oauth.RequestError
	switch {
	case errors.As(err, &cbErr):
		return http.StatusUnauthorized, errorResponse{Error: cbErr.Code, Description: cbErr.Description}
	case errors.Is(err, oauth.ErrCallbackCSRF):
		return http.StatusForbidden, errorResponse{Error: "csrf_detected"}
	case errors.As(err, &reqErr):
		if reqErr.Kind == oauth.KindUnauthorized {
			return http.StatusUnauthorized, errorResponse{Error: "unauthorized_token"}
		}
		return http.StatusBadGateway, errorResponse{Error: string(reqErr.Kind)}
	default:
		return http.StatusInternalServerError, errorResponse{Error: "configuration_error"}
	}
}

// localPath keeps return_to on this site.
func localPath(p string) string {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.HasPrefix(p, "/\\") {
		return ""
	}
	return p
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
