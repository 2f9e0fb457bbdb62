package redis

import "errors"

var (
	ErrEmptyURL          = errors.New("redis: connection URL is empty")
	ErrInvalidURL        = errors.New("redis: invalid connection URL")
	ErrConnect           = errors.New("redis: cannot connect")
	ErrHealthcheckFailed = errors.New("redis: healthcheck failed")
)
