package uniuri

import "crypto/rand"

const (
	// StdLen is the standard length, about 95 bits of entropy with StdChars.
	StdLen = 16
	// SessionLen is the length of session identifiers, about 285 bits of entropy.
	SessionLen = 48
	// PasswordLen is the length of generated passwords.
	PasswordLen = 20

	byteRange = 256
)

var (
	// StdChars is the set of standard characters: ASCII letters and digits.
	StdChars = []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789")
	// PasswordChars extends StdChars with punctuation accepted by login forms.
	PasswordChars = append(append([]byte{}, StdChars...), []byte("-_.!@#%+=")...)
)

// New returns a random string of StdLen standard characters.
func New() string {
	return NewLenChars(StdLen, StdChars)
}

// NewLen returns a random string of the given length of standard characters.
func NewLen(length int) string {
	return NewLenChars(length, StdChars)
}

// SessionID returns a new session identifier.
func SessionID() string {
	return NewLenChars(SessionLen, StdChars)
}

// Password returns a new random password.
func Password() string {
	return NewLenChars(PasswordLen, PasswordChars)
}

// NewLenChars returns a random string of the given length drawn from chars.
// chars must hold between 2 and 256 characters. Random bytes that would
// bias the modulo are rejected and redrawn.
func NewLenChars(length int, chars []byte) string {
	if length <= 0 {
		return ""
	}

	clen := len(chars)
	if clen < 2 || clen > byteRange {
		panic("uniuri: wrong charset length for NewLenChars")
	}

	limit := byteRange - byteRange%clen
	out := make([]byte, 0, length)
	buf := make([]byte, length+length/2)

	for len(out) < length {
		if _, err := rand.Read(buf); err != nil {
			panic("uniuri: error reading random bytes: " + err.Error())
		}

		for _, b := range buf {
			if int(b) >= limit {
				continue
			}

			out = append(out, chars[int(b)%clen])
			if len(out) == length {
				break
			}
		}
	}

	return string(out)
}
