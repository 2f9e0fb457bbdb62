package db

import "errors"

var (
	ErrInvalidConfig     = errors.New("db: invalid connection config")
	ErrConnect           = errors.New("db: cannot connect to postgres")
	ErrHealthcheckFailed = errors.New("db: healthcheck failed")
	ErrMigrate           = errors.New("db: migration failed")
)
