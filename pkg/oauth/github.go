package oauth

import (
	githubOAuth "golang.org/x/oauth2/github"
)

const (
	// GitHubProviderName is the identifier for GitHub OAuth provider.
	GitHubProviderName = "github"
	githubUserURL      = "https://api.github.com/user"
	githubScope        = "read:user user:email"
)

var githubFields = FieldMap{
	UIDKey:     "id",
	"nickname": "login",
	"name":     "name",
	"email":    "email",
	"picture":  "avatar_url",
	"profile":  "html_url",
	"website":  "blog",
}

// GitHub implements Provider for GitHub OAuth apps.
type GitHub struct{}

// Name returns the provider identifier.
func (GitHub) Name() string { return GitHubProviderName }

// Defaults returns GitHub's endpoints and scope.
func (GitHub) Defaults() Config {
	return Config{
		AuthorizeURL: githubOAuth.Endpoint.AuthURL,
		TokenURL:     githubOAuth.Endpoint.TokenURL,
		UserURL:      githubUserURL,
		Scope:        githubScope,
	}
}

// Normalize maps the /user payload. The numeric id becomes "uid".
func (GitHub) Normalize(payload []byte) (User, error) {
	return githubFields.Normalize(payload)
}
