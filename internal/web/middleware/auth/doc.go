// Package auth provides authentication middleware for the web application.
//
// The middleware validates the session cookie, loads the actor of the
// session user and stores it in the request for guards, handlers and
// templates. Loading is bounded by a deadline: when it passes, the request
// is marked as loading instead of being denied, and page guards answer with
// a loading view the browser retries.
//
// The middleware performs the following tasks:
//   - Redirects requests without a valid session to the login page
//   - Allows public access to login, logout and static files
//   - Redirects logged in users away from the login page
//   - Drops sessions of users that were deleted or deactivated
//
// Usage:
//
//	app.Use(authmiddleware.New(authmiddleware.Config{
//	    Loader:       authmiddleware.DBLoader(db),
//	    LoadTimeout:  cfg.Webserver.Session.LoadTimeout,
//	    RedirectPath: cfg.Access.RedirectPath,
//	}))
package auth
