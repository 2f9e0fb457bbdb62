package oauth

import "errors"

var (
	// ErrUnknownProvider is returned when a provider name does not resolve to an adapter.
	// It indicates a configuration or programming fault, not a user error.
	ErrUnknownProvider = errors.New("oauth: unknown provider")

	// ErrUnsupportedProviderType is returned by NewProvider for a type with no adapter.
	ErrUnsupportedProviderType = errors.New("oauth: unsupported provider type")

	// ErrDuplicateProvider is returned when two adapters share a name.
	ErrDuplicateProvider = errors.New("oauth: duplicate provider")

	// ErrInvalidProviderConfig is returned when a provider record is incomplete.
	ErrInvalidProviderConfig = errors.New("oauth: invalid provider config")

	// ErrInvalidSecret is returned when the client credentials payload cannot be parsed.
	// Like ErrUnknownProvider, it is fatal and never retried.
	ErrInvalidSecret = errors.New("oauth: invalid client secret payload")

	// ErrSecretUnavailable is returned when the secret store could not be queried.
	ErrSecretUnavailable = errors.New("oauth: client secret unavailable")

	// ErrMissingSubject is returned when a user-info payload has no stable user identifier.
	ErrMissingSubject = errors.New("oauth: user info has no subject")

	// ErrEmptyUserInfo is returned when the provider answered with a null user-info payload.
	ErrEmptyUserInfo = errors.New("oauth: empty user info")

	// ErrFetchFailed is returned when fetching data from the provider fails.
	ErrFetchFailed = errors.New("oauth: failed to fetch from provider")

	// ErrRequestFailed is returned when the provider returns a non-OK status.
	ErrRequestFailed = errors.New("oauth: request returned non-OK status")

	// ErrDecodeFailed is returned when decoding the provider response fails.
	ErrDecodeFailed = errors.New("oauth: failed to decode response")
)

// IsConfigFault reports whether err comes from deployment configuration
// (unknown provider, unusable or unreachable client secret) rather than
// from the user or the provider. Such faults are not retried.
func IsConfigFault(err error) bool {
	return errors.Is(err, ErrUnknownProvider) ||
		errors.Is(err, ErrInvalidSecret) ||
		errors.Is(err, ErrSecretUnavailable)
}
