package config

import (
	"errors"
)

var (
	// ErrEmptyURL is returned when webserver.URL is not set.
	ErrEmptyURL = errors.New("config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero is returned when the listening port is missing.
	ErrWebServerPortCanNotBeZero = errors.New("config webserver.port can not be 0")

	// ErrNegativeDuration is returned when a session duration is below zero.
	ErrNegativeDuration = errors.New("config webserver.session durations can not be negative")
)
