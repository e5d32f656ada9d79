// Package auth provides local authentication for dashboard users.
//
// Users log in with username and password. Passwords are stored as Argon2id
// hashes and verified in constant time. Authorization decisions are not made
// here: once a user is authenticated, its role and subscription are loaded
// into an access.Actor (see the db/controller/actor package) and every guard
// asks the access package.
//
// Example usage:
//
//	authService := auth.NewService(db)
//
//	user, err := authService.Authenticate(username, password)
//	if errors.Is(err, auth.ErrInvalidPassword) {
//	    // show login form again
//	}
package auth
