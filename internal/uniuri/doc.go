// Package uniuri generates cryptographically secure random strings used as
// session identifiers and generated passwords.
package uniuri
