package handlers

import (
	"log/slog"

	"github.com/dmitrymomot/cvforge/pkg/logger"
)

// Option configures Auth.
type Option func(*options)

type options struct {
	successURL string
	failureURL string
	signIn     SignInFunc
	logger     *slog.Logger
}

func defaultOptions() *options {
	return &options{
		successURL: "/",
		failureURL: "/login",
		logger:     logger.NewNope(),
	}
}

// WithSuccessURL sets where users land after signing in. Default: "/".
func WithSuccessURL(u string) Option {
	return func(o *options) {
		if u != "" {
			o.successURL = u
		}
	}
}

// WithFailureURL sets the login page failures redirect to. Default: "/login".
func WithFailureURL(u string) Option {
	return func(o *options) {
		if u != "" {
			o.failureURL = u
		}
	}
}

// WithSignIn runs fn after a successful callback, before the redirect.
func WithSignIn(fn SignInFunc) Option {
	return func(o *options) {
		o.signIn = fn
	}
}

// WithLogger sets the logger. Default: discard.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
