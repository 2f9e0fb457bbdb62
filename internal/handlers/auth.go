package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmitrymomot/cvforge/internal/login"
	"github.com/dmitrymomot/cvforge/pkg/oauth"
)

// FailureCode is the only error detail ever shown to the user.
const FailureCode = "auth_failed"

// Providers resolves a provider name from the route.
type Providers interface {
	Resolve(name string) (oauth.Provider, error)
}

// Starter begins the authorization code flow.
type Starter interface {
	Start(ctx context.Context, provider, redirectURI string) (string, error)
}

// Completer finishes the flow on the provider callback.
type Completer interface {
	Handle(ctx context.Context, p login.CallbackParams) (uuid.UUID, error)
}

// SignInFunc establishes the application session for userID,
// typically by setting a cookie on w.
type SignInFunc func(w http.ResponseWriter, r *http.Request, userID uuid.UUID) error

var (
	_ Providers = (*oauth.Registry)(nil)
	_ Starter   = (*login.Initiator)(nil)
	_ Completer = (*login.Callback)(nil)
)

// Auth serves the federated login routes.
type Auth struct {
	providers  Providers
	starter    Starter
	completer  Completer
	baseURL    string
	successURL string
	failureURL string
	signIn     SignInFunc
	logger     *slog.Logger
}

// NewAuth creates the login handler. baseURL is the public origin used to
// build the callback redirect URI.
func NewAuth(providers Providers, starter Starter, completer Completer, baseURL string, opts ...Option) *Auth {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &Auth{
		providers:  providers,
		starter:    starter,
		completer:  completer,
		baseURL:    strings.TrimRight(baseURL, "/"),
		successURL: o.successURL,
		failureURL: o.failureURL,
		signIn:     o.signIn,
		logger:     o.logger,
	}
}

// Routes mounts GET /auth/{provider} and GET /auth/{provider}/callback.
func (h *Auth) Routes(r chi.Router) {
	r.Route("/auth/{provider}", func(r chi.Router) {
		r.Get("/", h.start)
		r.Get("/callback", h.callback)
	})
}

// CallbackURL is the redirect URI for provider. Authorization and token
// exchange must send the same value.
func (h *Auth) CallbackURL(provider string) string {
	return h.baseURL + "/auth/" + url.PathEscape(provider) + "/callback"
}

func (h *Auth) start(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	p, err := h.providers.Resolve(chi.URLParam(r, "provider"))
	if err != nil {
		h.internalError(w, r, "unknown provider", err)
		return
	}
	name := p.Name()

	authURL, err := h.starter.Start(ctx, name, h.CallbackURL(name))
	if err != nil {
		if oauth.IsConfigFault(err) {
			h.internalError(w, r, "login initiation misconfigured", err)
			return
		}
		h.logger.ErrorContext(ctx, "login initiation failed",
			slog.String("provider", name),
			slog.String("error", err.Error()),
		)
		h.fail(w, r)
		return
	}

	http.Redirect(w, r, authURL, http.StatusFound)
}

func (h *Auth) callback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	p, err := h.providers.Resolve(chi.URLParam(r, "provider"))
	if err != nil {
		h.internalError(w, r, "unknown provider", err)
		return
	}
	name := p.Name()

	q := r.URL.Query()
	userID, err := h.completer.Handle(ctx, login.CallbackParams{
		Provider:    name,
		Code:        q.Get("code"),
		State:       q.Get("state"),
		Error:       q.Get("error"),
		RedirectURI: h.CallbackURL(name),
	})
	if err != nil {
		// Already logged with its kind by the callback.
		h.fail(w, r)
		return
	}

	if h.signIn != nil {
		if err := h.signIn(w, r, userID); err != nil {
			h.logger.ErrorContext(ctx, "sign in failed",
				slog.String("provider", name),
				slog.String("user_id", userID.String()),
				slog.String("error", err.Error()),
			)
			h.fail(w, r)
			return
		}
	}

	http.Redirect(w, r, h.successURL, http.StatusFound)
}

func (h *Auth) fail(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, withQuery(h.failureURL, "error", FailureCode), http.StatusFound)
}

func (h *Auth) internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.logger.ErrorContext(r.Context(), msg, slog.String("error", err.Error()))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}


func withQuery(target, key, value string) string {
	u, err := url.Parse(target)
	if err != nil {
		return target
	}
	q := u.Query()
	q.Set(key, value)
	u.RawQuery = q.Encode()
	return u.String()
}
