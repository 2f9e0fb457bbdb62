package oauth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/cvforge/pkg/oauth"
)

func newProvider(t *testing.T, typ string) oauth.Provider {
	t.Helper()

	p, err := oauth.NewProvider(oauth.ProviderConfig{Type: typ})
	require.NoError(t, err)
	return p
}

func TestNewProvider(t *testing.T) {
	t.Parallel()

	t.Run("fills defaults for known type", func(t *testing.T) {
		t.Parallel()

		p, err := oauth.NewProvider(oauth.ProviderConfig{Type: "GitHub", SecretName: "custom/github"})
		require.NoError(t, err)
		require.Equal(t, oauth.GitHubProviderName, p.Name())
		require.Equal(t, "custom/github", p.Config().SecretName)
		require.Equal(t, "https://api.github.com/user", p.Config().UserInfoEndpoint)
		require.Equal(t, "read:user user:email", p.Config().Scope())
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		t.Parallel()

		_, err := oauth.NewProvider(oauth.ProviderConfig{
			Type:                  "gitlab",
			AuthorizationEndpoint: "https://gitlab.example/authorize",
			TokenEndpoint:         "https://gitlab.example/token",
			UserInfoEndpoint:      "https://gitlab.example/user",
			SecretName:            "oauth/gitlab",
		})
		require.ErrorIs(t, err, oauth.ErrUnsupportedProviderType)
	})

	t.Run("rejects incomplete record", func(t *testing.T) {
		t.Parallel()

		_, err := oauth.NewProvider(oauth.ProviderConfig{Type: "gitlab"})
		require.ErrorIs(t, err, oauth.ErrInvalidProviderConfig)
	})
}

func TestDefaultAdapterBehavior(t *testing.T) {
	t.Parallel()

	p := newProvider(t, oauth.GoogleProviderName)

	h := p.UserInfoHeaders("tok")
	require.Equal(t, "Bearer tok", h.Get("Authorization"))
	require.Equal(t, "application/json", h.Get("Accept"))

	fields := p.SecretFormFields(oauth.Secret{ClientID: "id", ClientSecret: "sec"})
	require.Equal(t, "id", fields.Get("client_id"))
	require.Equal(t, "sec", fields.Get("client_secret"))

	require.Equal(t, "select_account", p.AuthorizationParams().Get("prompt"))
}

func TestGoogleProvider_NormalizeUserInfo(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	p := newProvider(t, oauth.GoogleProviderName)

	t.Run("maps claims", func(t *testing.T) {
		t.Parallel()

		info, err := p.NormalizeUserInfo(ctx, []byte(`{"sub":"G-1","email":"a@x.com","email_verified":true,"name":"Ann"}`), nil)
		require.NoError(t, err)
		require.Equal(t, "google", info.ProviderType)
		require.Equal(t, "G-1", info.ProviderUserID)
		require.Equal(t, "a@x.com", *info.Email)
		require.Equal(t, "Ann", *info.Username)
	})

	t.Run("null payload yields nil", func(t *testing.T) {
		t.Parallel()

		info, err := p.NormalizeUserInfo(ctx, []byte("null"), nil)
		require.NoError(t, err)
		require.Nil(t, info)
	})

	t.Run("missing email stays nil", func(t *testing.T) {
		t.Parallel()

		info, err := p.NormalizeUserInfo(ctx, []byte(`{"sub":"G-1","email":null}`), nil)
		require.NoError(t, err)
		require.Nil(t, info.Email)
		require.Nil(t, info.Username)
	})

	t.Run("unverified email is dropped", func(t *testing.T) {
		t.Parallel()

		info, err := p.NormalizeUserInfo(ctx, []byte(`{"sub":"G-1","email":"a@x.com","email_verified":false}`), nil)
		require.NoError(t, err)
		require.Nil(t, info.Email)
	})

	t.Run("markup is stripped from name", func(t *testing.T) {
		t.Parallel()

		info, err := p.NormalizeUserInfo(ctx, []byte(`{"sub":"G-1","name":"<b>Ann</b><script>x()</script>"}`), nil)
		require.NoError(t, err)
		require.Equal(t, "Ann", *info.Username)
	})

	t.Run("missing sub fails", func(t *testing.T) {
		t.Parallel()

		_, err := p.NormalizeUserInfo(ctx, []byte(`{"email":"a@x.com"}`), nil)
		require.ErrorIs(t, err, oauth.ErrMissingSubject)
	})

	t.Run("invalid JSON fails", func(t *testing.T) {
		t.Parallel()

		_, err := p.NormalizeUserInfo(ctx, []byte(`{"sub":`), nil)
		require.ErrorIs(t, err, oauth.ErrDecodeFailed)
	})
}

func TestGitHubProvider_NormalizeUserInfo(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	p := newProvider(t, oauth.GitHubProviderName)

	t.Run("sets API headers", func(t *testing.T) {
		t.Parallel()

		h := p.UserInfoHeaders("tok")
		require.Equal(t, "Bearer tok", h.Get("Authorization"))
		require.Equal(t, "application/vnd.github+json", h.Get("Accept"))
		require.Equal(t, "2022-11-28", h.Get("X-GitHub-Api-Version"))
	})

	t.Run("maps numeric id and login", func(t *testing.T) {
		t.Parallel()

		info, err := p.NormalizeUserInfo(ctx, []byte(`{"id":12345,"login":"octo","email":"o@x.com"}`), nil)
		require.NoError(t, err)
		require.Equal(t, "github", info.ProviderType)
		require.Equal(t, "12345", info.ProviderUserID)
		require.Equal(t, "o@x.com", *info.Email)
		require.Equal(t, "octo", *info.Username)
	})

	t.Run("looks up primary verified email", func(t *testing.T) {
		t.Parallel()

		var requested string
		fetch := func(_ context.Context, endpoint string) ([]byte, error) {
			requested = endpoint
			return []byte(`[
				{"email":"old@x.com","primary":false,"verified":true},
				{"email":"unverified@x.com","primary":true,"verified":false},
				{"email":"main@x.com","primary":true,"verified":true}
			]`), nil
		}

		info, err := p.NormalizeUserInfo(ctx, []byte(`{"id":1,"login":"octo","email":null}`), fetch)
		require.NoError(t, err)
		require.Equal(t, "https://api.github.com/user/emails", requested)
		require.Equal(t, "main@x.com", *info.Email)
	})

	t.Run("no primary verified email yields nil", func(t *testing.T) {
		t.Parallel()

		fetch := func(context.Context, string) ([]byte, error) {
			return []byte(`[{"email":"a@x.com","primary":false,"verified":true}]`), nil
		}

		info, err := p.NormalizeUserInfo(ctx, []byte(`{"id":1}`), fetch)
		require.NoError(t, err)
		require.Nil(t, info.Email)
	})

	t.Run("failed lookup yields nil email", func(t *testing.T) {
		t.Parallel()

		fetch := func(context.Context, string) ([]byte, error) {
			return nil, errors.New("boom")
		}

		info, err := p.NormalizeUserInfo(ctx, []byte(`{"id":1,"login":"octo"}`), fetch)
		require.NoError(t, err)
		require.Nil(t, info.Email)
		require.Equal(t, "octo", *info.Username)
	})

	t.Run("null payload yields nil", func(t *testing.T) {
		t.Parallel()

		info, err := p.NormalizeUserInfo(ctx, []byte(" null "), nil)
		require.NoError(t, err)
		require.Nil(t, info)
	})

	t.Run("missing id fails", func(t *testing.T) {
		t.Parallel()

		_, err := p.NormalizeUserInfo(ctx, []byte(`{"login":"octo"}`), nil)
		require.ErrorIs(t, err, oauth.ErrMissingSubject)
	})
}
