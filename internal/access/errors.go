package access

import "errors"

var (
	// ErrMalformedToken is returned when a permission token is neither an identifier
	// nor a "category.action" path with both halves present.
	ErrMalformedToken = errors.New("malformed permission token")
)
