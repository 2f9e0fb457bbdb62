package login

import (
	"errors"
	"fmt"
)

// Kind names the step at which a callback failed.
// Kinds are for logs and metrics; users only ever see a generic message.
type Kind string

const (
	KindProviderErrorParameter   Kind = "provider_error_parameter"
	KindMissingRequiredParameter Kind = "missing_required_parameter"
	KindInvalidOrExpiredState    Kind = "invalid_or_expired_state"
	KindTokenExchangeFailed      Kind = "token_exchange_failed"
	KindUserInfoFetchFailed      Kind = "userinfo_fetch_failed"
	KindLoginFailed              Kind = "login_failed"
)

// CallbackError is the failure value of Callback.Handle.
type CallbackError struct {
	Kind Kind
	Err  error
}

func (e *CallbackError) Error() string {
	if e.Err == nil {
		return "login: " + string(e.Kind)
	}
	return fmt.Sprintf("login: %s: %v", e.Kind, e.Err)
}

func (e *CallbackError) Unwrap() error {
	return e.Err
}

// KindOf returns the kind carried by err, or "" when err is not a CallbackError.
func KindOf(err error) Kind {
	var ce *CallbackError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return ""
}

func fail(kind Kind, err error) *CallbackError {
	return &CallbackError{Kind: kind, Err: err}
}

var (
	ErrInvalidUserInfo = errors.New("login: user info lacks provider identity")
	ErrEmptyToken      = errors.New("login: token response has no access token")
	ErrResolverPanic   = errors.New("login: account resolution panicked")
	ErrStateMismatch   = errors.New("login: state was issued for another provider")
)
