package oauth

import (
	"errors"
	"fmt"
	"strings"

	githubOAuth "golang.org/x/oauth2/github"
	googleOAuth "golang.org/x/oauth2/google"
)

// ProviderConfig is the static description of one identity provider.
// It is loaded once at startup and never mutated.
type ProviderConfig struct {
	Type                  string   `yaml:"type"`
	AuthorizationEndpoint string   `yaml:"authorization_endpoint"`
	TokenEndpoint         string   `yaml:"token_endpoint"`
	UserInfoEndpoint      string   `yaml:"userinfo_endpoint"`
	SecretName            string   `yaml:"secret_name"`
	Scopes                []string `yaml:"scopes"`

	// EmailsEndpoint is consulted by providers whose user-info payload may omit the email.
	EmailsEndpoint string `yaml:"emails_endpoint,omitempty"`
}

// Scope returns the space-delimited scope parameter.
func (c ProviderConfig) Scope() string {
	return strings.Join(c.Scopes, " ")
}

// Validate reports missing fields.
func (c ProviderConfig) Validate() error {
	var missing []string
	if c.Type == "" {
		missing = append(missing, "type")
	}
	if c.AuthorizationEndpoint == "" {
		missing = append(missing, "authorization_endpoint")
	}
	if c.TokenEndpoint == "" {
		missing = append(missing, "token_endpoint")
	}
	if c.UserInfoEndpoint == "" {
		missing = append(missing, "userinfo_endpoint")
	}
	if c.SecretName == "" {
		missing = append(missing, "secret_name")
	}
	if len(missing) > 0 {
		return errors.Join(ErrInvalidProviderConfig,
			fmt.Errorf("provider %q: missing %s", c.Type, strings.Join(missing, ", ")))
	}
	return nil
}

// WithDefaults fills empty fields with the built-in values for known provider types.
func (c ProviderConfig) WithDefaults() ProviderConfig {
	var def ProviderConfig
	switch strings.ToLower(c.Type) {
	case GoogleProviderName:
		def = GoogleDefaultConfig()
	case GitHubProviderName:
		def = GitHubDefaultConfig()
	default:
		return c
	}

	c.Type = def.Type
	if c.AuthorizationEndpoint == "" {
		c.AuthorizationEndpoint = def.AuthorizationEndpoint
	}
	if c.TokenEndpoint == "" {
		c.TokenEndpoint = def.TokenEndpoint
	}
	if c.UserInfoEndpoint == "" {
		c.UserInfoEndpoint = def.UserInfoEndpoint
	}
	if c.EmailsEndpoint == "" {
		c.EmailsEndpoint = def.EmailsEndpoint
	}
	if c.SecretName == "" {
		c.SecretName = def.SecretName
	}
	if len(c.Scopes) == 0 {
		c.Scopes = def.Scopes
	}
	return c
}

// GoogleDefaultConfig returns the provider record for Google's OpenID Connect endpoints.
func GoogleDefaultConfig() ProviderConfig {
	return ProviderConfig{
		Type:                  GoogleProviderName,
		AuthorizationEndpoint: googleOAuth.Endpoint.AuthURL,
		TokenEndpoint:         googleOAuth.Endpoint.TokenURL,
		UserInfoEndpoint:      "https://openidconnect.googleapis.com/v1/userinfo",
		SecretName:            "oauth/google",
		Scopes:                []string{"openid", "email", "profile"},
	}
}

// GitHubDefaultConfig returns the provider record for GitHub OAuth apps.
func GitHubDefaultConfig() ProviderConfig {
	return ProviderConfig{
		Type:                  GitHubProviderName,
		AuthorizationEndpoint: githubOAuth.Endpoint.AuthURL,
		TokenEndpoint:         githubOAuth.Endpoint.TokenURL,
		UserInfoEndpoint:      "https://api.github.com/user",
		EmailsEndpoint:        "https://api.github.com/user/emails",
		SecretName:            "oauth/github",
		Scopes:                []string{"read:user", "user:email"},
	}
}
