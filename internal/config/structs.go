package config

import (
	"time"

	"github.com/orgdesk/orgdesk/internal/logger"
)

// Session settings.
type Session struct {
	ExpiryTime  time.Duration // how long a login stays valid
	LoadTimeout time.Duration // how long to wait for the actor record before showing a loading page
}

// Access settings for the navigation guard.
type Access struct {
	// RedirectPath is where denied page requests are sent when no fallback is configured.
	RedirectPath string `validate:"startswith=/"`
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Webserver Webserver
	Access    Access
}

// Webserver implement webserver settings.
type Webserver struct {
	Domain              string  // domain name for the webserver
	Port                int     // listening port for the webserver
	ShutDownTime        int     // wait time for shutdown
	URL                 string  // base url for the webserver
	CookieEncryptionKey string  // encryption key for cookies
	Session             Session // session settings
}
