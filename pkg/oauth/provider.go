package oauth

// GenericProviderName is the identifier of the Generic provider.
const GenericProviderName = "oauth2"

// Provider supplies the provider-specific parts of the flow: default
// endpoints and scope, and the mapping of the user payload.
// The flow itself lives in Strategy and is shared by all providers.
type Provider interface {
	// Name returns the provider identifier (e.g., "github").
	Name() string

	// Defaults returns the configuration applied under the caller's Config.
	Defaults() Config

	Normalizer
}

// Generic is the provider for any standard OAuth2 server. It has no
// default endpoints and keeps every top-level scalar field of the user
// payload. "uid" comes from UIDField when set, otherwise from the first
// of "uid", "sub" or "id".
type Generic struct {
	UIDField string
}

// Name returns GenericProviderName.
func (Generic) Name() string { return GenericProviderName }

// Defaults returns an empty Config.
func (Generic) Defaults() Config { return Config{} }

// Normalize implements Normalizer.
func (g Generic) Normalize(payload []byte) (User, error) {
	if g.UIDField != "" {
		return passThrough(payload, g.UIDField)
	}
	return passThrough(payload, "uid", "sub", "id")
}

// NewProvider builds a Provider from a name, default configuration and a
// normalizer. A nil normalizer falls back to Generic.
func NewProvider(name string, defaults Config, n Normalizer) Provider {
	if n == nil {
		n = Generic{}
	}
	return &customProvider{name: name, defaults: defaults, Normalizer: n}
}

type customProvider struct {
	Normalizer
	name     string
	defaults Config
}

func (p *customProvider) Name() string     { return p.name }
func (p *customProvider) Defaults() Config { return p.defaults }
