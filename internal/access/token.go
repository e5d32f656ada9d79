package access

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// TokenKind tells how a permission token addresses a permission.
type TokenKind int

const (
	// TokenPath addresses a permission by "category.action".
	TokenPath TokenKind = iota
	// TokenIdentifier addresses a permission definition by its id.
	TokenIdentifier
)

const canonicalUUIDLen = 36

var objectIDPattern = regexp.MustCompile(`(?i)^[0-9a-f]{24}$`)

// Token is a classified permission token. Only the fields of its Kind are set.
type Token struct {
	Kind     TokenKind
	Raw      string
	ID       string
	Category string
	Action   string
}

// IsIdentifier reports whether s has the shape of a permission definition id:
// 24 hex characters or a canonical UUID.
func IsIdentifier(s string) bool {
	if len(s) == canonicalUUIDLen && uuid.Validate(s) == nil {
		return true
	}

	return objectIDPattern.MatchString(s)
}

// ParseToken classifies a raw permission token. Identifiers win over paths.
// A path is split on its first dot, so the action may itself contain dots.
func ParseToken(raw string) (Token, error) {
	if IsIdentifier(raw) {
		return Token{Kind: TokenIdentifier, Raw: raw, ID: raw}, nil
	}

	category, action, found := strings.Cut(raw, ".")
	if !found || category == "" || action == "" {
		return Token{Raw: raw}, ErrMalformedToken
	}

	return Token{Kind: TokenPath, Raw: raw, Category: category, Action: action}, nil
}

// String returns the raw token.
func (t Token) String() string {
	return t.Raw
}
