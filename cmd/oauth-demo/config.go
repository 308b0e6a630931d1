package main

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/dmitrymomot/oauthflow/pkg/logger"
	"github.com/dmitrymomot/oauthflow/pkg/oauth"
)

type config struct {
	Addr         string        `env:"ADDR" envDefault:":8080"`
	CookieSecret string        `env:"COOKIE_SECRET,required"`
	Provider     string        `env:"OAUTH_PROVIDER" envDefault:"github"`
	OAuth        oauth.Config  `envPrefix:"OAUTH_"`
	Log          logger.Config
	HTTPTimeout  time.Duration `env:"HTTP_TIMEOUT" envDefault:"10s"`
	SecureCookie bool          `env:"COOKIE_SECURE" envDefault:"true"`
}

func loadConfig() (config, error) {
	cfg, err := env.ParseAs[config]()
	if err != nil {
		return config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func providerByName(name string) (oauth.Provider, error) {
	switch name {
	case oauth.GitHubProviderName:
		return oauth.GitHub{}, nil
	case oauth.GoogleProviderName:
		return oauth.Google{}, nil
	case oauth.GitLabProviderName:
		return oauth.GitLab{}, nil
	case oauth.GenericProviderName, "":
		return oauth.Generic{}, nil
	default:
		return nil, fmt.Errorf("unknown oauth provider %q", name)
	}
}
