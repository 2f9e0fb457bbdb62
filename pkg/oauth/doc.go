// Package oauth implements the provider side of federated login:
// the authorization code flow with PKCE against external identity providers.
//
// The package includes a Provider interface (one adapter per identity
// provider), an immutable Registry, PKCE and state helpers, and a Gateway
// that performs the HTTP calls.
//
// # Adapters
//
// Each adapter is a static ProviderConfig plus a few overrides:
//
//   - AuthorizationParams: extra authorization query parameters (Google asks for the account chooser)
//   - UserInfoHeaders: bearer header by default; GitHub adds its media type and API version
//   - NormalizeUserInfo: maps sub/email/name (Google) or id/email/login (GitHub) to UserInfo
//   - SecretFormFields: client_id and client_secret in the token request body
//
// GitHub omits private addresses from /user. When email is missing the adapter
// reads /user/emails and takes the first primary verified address; if that
// yields nothing, Email stays nil and normalization still succeeds.
//
// # Usage
//
//	registry, err := oauth.NewRegistryFromConfigs(
//		oauth.GoogleDefaultConfig(),
//		oauth.GitHubDefaultConfig(),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gw := oauth.NewGateway(registry, secretsResolver,
//		oauth.WithHTTPClient(&http.Client{Timeout: 10 * time.Second}),
//	)
//
//	verifier := oauth.GenerateCodeVerifier()
//	state, _ := oauth.GenerateState()
//	authURL, err := gw.AuthorizationURL(ctx, "google", oauth.AuthorizationRequest{
//		RedirectURI:   "https://example.com/auth/google/callback",
//		State:         state,
//		CodeChallenge: oauth.CodeChallenge(verifier),
//	})
//
//	// in the callback handler
//	tok, err := gw.ExchangeToken(ctx, "google", code, redirectURI, verifier)
//	if err != nil || tok.HasError() || tok.AccessToken == "" {
//		// configuration fault or failed exchange
//	}
//	info, err := gw.FetchUserInfo(ctx, "google", tok.AccessToken)
//
// # Error Handling
//
// ExchangeToken never returns transport failures as errors; they are folded
// into a Token whose Error is ServerError. Its error return is reserved for
// configuration faults:
//
//   - ErrUnknownProvider: name not registered
//   - ErrInvalidSecret: credentials payload cannot be parsed
//   - ErrSecretUnavailable: secret store lookup failed
//
// FetchUserInfo returns ErrFetchFailed, ErrRequestFailed, ErrDecodeFailed,
// ErrMissingSubject or ErrEmptyUserInfo.
//
// # Testing
//
// Point ProviderConfig endpoints at an httptest server and pass its client
// with WithHTTPClient.
package oauth
