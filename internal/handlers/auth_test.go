package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/cvforge/internal/handlers"
	"github.com/dmitrymomot/cvforge/internal/login"
	"github.com/dmitrymomot/cvforge/pkg/oauth"
)

const baseURL = "https://cv.example.com/"

func registry(t *testing.T) *oauth.Registry {
	t.Helper()
	reg, err := oauth.NewRegistryFromConfigs(
		oauth.ProviderConfig{Type: "google", SecretName: "oauth/google"},
		oauth.ProviderConfig{Type: "github", SecretName: "oauth/github"},
	)
	require.NoError(t, err)
	return reg
}

type starterFunc func(ctx context.Context, provider, redirectURI string) (string, error)

func (f starterFunc) Start(ctx context.Context, provider, redirectURI string) (string, error) {
	return f(ctx, provider, redirectURI)
}

type completer struct {
	mu     sync.Mutex
	params []login.CallbackParams
	id     uuid.UUID
	err    error
}

func (c *completer) Handle(_ context.Context, p login.CallbackParams) (uuid.UUID, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.params = append(c.params, p)
	return c.id, c.err
}

func serve(h *handlers.Auth, target string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	h.Routes(r)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestAuth_Start(t *testing.T) {
	t.Parallel()

	t.Run("redirects to provider", func(t *testing.T) {
		t.Parallel()

		var gotProvider, gotRedirect string
		start := starterFunc(func(_ context.Context, provider, redirectURI string) (string, error) {
			gotProvider, gotRedirect = provider, redirectURI
			return "https://accounts.google.com/o/oauth2/v2/auth?state=S1", nil
		})
		h := handlers.NewAuth(registry(t), start, &completer{}, baseURL)

		rec := serve(h, "/auth/Google")
		require.Equal(t, http.StatusFound, rec.Code)
		require.Equal(t, "https://accounts.google.com/o/oauth2/v2/auth?state=S1", rec.Header().Get("Location"))
		require.Equal(t, "google", gotProvider)
		require.Equal(t, "https://cv.example.com/auth/google/callback", gotRedirect)
	})

	t.Run("unknown provider", func(t *testing.T) {
		t.Parallel()

		start := starterFunc(func(context.Context, string, string) (string, error) {
			t.Error("initiator must not run")
			return "", nil
		})
		h := handlers.NewAuth(registry(t), start, &completer{}, baseURL)

		rec := serve(h, "/auth/facebook")
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("configuration fault", func(t *testing.T) {
		t.Parallel()

		start := starterFunc(func(context.Context, string, string) (string, error) {
			return "", errors.Join(oauth.ErrInvalidSecret, errors.New("bad payload"))
		})
		h := handlers.NewAuth(registry(t), start, &completer{}, baseURL)

		rec := serve(h, "/auth/github")
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("store failure", func(t *testing.T) {
		t.Parallel()

		start := starterFunc(func(context.Context, string, string) (string, error) {
			return "", errors.New("redis down")
		})
		h := handlers.NewAuth(registry(t), start, &completer{}, baseURL, handlers.WithFailureURL("/signin"))

		rec := serve(h, "/auth/github")
		require.Equal(t, http.StatusFound, rec.Code)
		require.Equal(t, "/signin?error=auth_failed", rec.Header().Get("Location"))
	})
}

func TestAuth_Callback(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		c := &completer{id: userID}
		var signedIn uuid.UUID
		h := handlers.NewAuth(registry(t), starterFunc(nil), c, baseURL,
			handlers.WithSuccessURL("/dashboard"),
			handlers.WithSignIn(func(w http.ResponseWriter, _ *http.Request, id uuid.UUID) error {
				signedIn = id
				http.SetCookie(w, &http.Cookie{Name: "sid", Value: id.String()})
				return nil
			}),
		)

		rec := serve(h, "/auth/google/callback?code=C1&state=S1")
		require.Equal(t, http.StatusFound, rec.Code)
		require.Equal(t, "/dashboard", rec.Header().Get("Location"))
		require.Equal(t, userID, signedIn)
		require.Contains(t, rec.Header().Get("Set-Cookie"), "sid="+userID.String())

		require.Len(t, c.params, 1)
		require.Equal(t, login.CallbackParams{
			Provider:    "google",
			Code:        "C1",
			State:       "S1",
			RedirectURI: "https://cv.example.com/auth/google/callback",
		}, c.params[0])
	})

	t.Run("provider error is passed through", func(t *testing.T) {
		t.Parallel()

		c := &completer{err: &login.CallbackError{Kind: login.KindProviderErrorParameter}}
		h := handlers.NewAuth(registry(t), starterFunc(nil), c, baseURL)

		rec := serve(h, "/auth/github/callback?error=access_denied&state=S1")
		require.Equal(t, http.StatusFound, rec.Code)
		require.Equal(t, "access_denied", c.params[0].Error)
	})

	t.Run("every failure looks the same", func(t *testing.T) {
		t.Parallel()

		kinds := []login.Kind{
			login.KindProviderErrorParameter,
			login.KindMissingRequiredParameter,
			login.KindInvalidOrExpiredState,
			login.KindTokenExchangeFailed,
			login.KindUserInfoFetchFailed,
			login.KindLoginFailed,
		}
		for _, kind := range kinds {
			c := &completer{err: &login.CallbackError{Kind: kind, Err: errors.New("detail")}}
			h := handlers.NewAuth(registry(t), starterFunc(nil), c, baseURL, handlers.WithFailureURL("/login?next=%2Fcv"))

			rec := serve(h, "/auth/google/callback?code=C1&state=S1")
			require.Equal(t, http.StatusFound, rec.Code, kind)

			loc, err := url.Parse(rec.Header().Get("Location"))
			require.NoError(t, err)
			require.Equal(t, "/login", loc.Path)
			require.Equal(t, url.Values{"error": {"auth_failed"}, "next": {"/cv"}}, loc.Query())
			require.NotContains(t, rec.Body.String(), "detail")
		}
	})

	t.Run("sign in failure", func(t *testing.T) {
		t.Parallel()

		h := handlers.NewAuth(registry(t), starterFunc(nil), &completer{id: userID}, baseURL,
			handlers.WithSignIn(func(http.ResponseWriter, *http.Request, uuid.UUID) error {
				return errors.New("cookie store down")
			}),
		)

		rec := serve(h, "/auth/google/callback?code=C1&state=S1")
		require.Equal(t, http.StatusFound, rec.Code)
		require.Equal(t, "/login?error=auth_failed", rec.Header().Get("Location"))
	})

	t.Run("unknown provider", func(t *testing.T) {
		t.Parallel()

		c := &completer{}
		h := handlers.NewAuth(registry(t), starterFunc(nil), c, baseURL)

		rec := serve(h, "/auth/facebook/callback?code=C1&state=S1")
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Empty(t, c.params)
	})
}
