package oauth

import (
	gitlabOAuth "golang.org/x/oauth2/gitlab"
)

const (
	// GitLabProviderName is the identifier for GitLab OAuth provider.
	GitLabProviderName = "gitlab"
	gitlabUserURL      = "https://gitlab.com/api/v4/user"
	gitlabScope        = "read_user"
)

var gitlabFields = FieldMap{
	UIDKey:     "id",
	"nickname": "username",
	"name":     "name",
	"email":    "email",
	"picture":  "avatar_url",
	"profile":  "web_url",
}

// GitLab implements Provider for gitlab.com. Self-managed instances can
// override the endpoints through Config.
type GitLab struct{}

// Name returns the provider identifier.
func (GitLab) Name() string { return GitLabProviderName }

// Defaults returns gitlab.com endpoints and scope.
func (GitLab) Defaults() Config {
	return Config{
		AuthorizeURL: gitlabOAuth.Endpoint.AuthURL,
		TokenURL:     gitlabOAuth.Endpoint.TokenURL,
		UserURL:      gitlabUserURL,
		Scope:        gitlabScope,
	}
}

// Normalize maps the /api/v4/user payload.
func (GitLab) Normalize(payload []byte) (User, error) {
	return gitlabFields.Normalize(payload)
}
