// Package session stores login sessions and carries the resolved actor
// through a request.
package session

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/orgdesk/orgdesk/internal/access"
	"github.com/orgdesk/orgdesk/internal/uniuri"
)

// CookieName is the name of the session cookie.
const CookieName = "session"

const (
	localsActor   = "Actor"
	localsLoading = "ActorLoading"
)

// ErrNotFound is returned when the session id is unknown or expired.
var ErrNotFound = errors.New("session not found")

// Store is the global session store instance.
var Store *session.Store

// Data represents the session data structure.
type Data struct {
	UserID    uint64    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

// Write writes the session data for the given session ID with an expiration duration.
func (s *Data) Write(sessionID string, exp time.Duration) error {
	out, err := json.Marshal(s)
	if err != nil {
		return err
	}

	return Store.Storage.Set(sessionID, out, exp)
}

// Read reads the session data for the given session ID.
func (s *Data) Read(sessionID string) error {
	if sessionID == "" {
		return ErrNotFound
	}

	byteData, err := Store.Storage.Get(sessionID)
	if err != nil {
		return err
	}

	if len(byteData) == 0 {
		return ErrNotFound
	}

	return json.Unmarshal(byteData, s)
}

// Delete removes the session with the given ID.
func Delete(sessionID string) error {
	if sessionID == "" {
		return nil
	}

	return Store.Storage.Delete(sessionID)
}

// Init initializes the session store with the provided storage backend.
// A nil storage keeps sessions in process memory.
func Init(storage fiber.Storage) {
	Store = session.New(session.Config{
		Storage:      storage,
		KeyLookup:    "cookie:" + CookieName,
		KeyGenerator: uniuri.SessionID,
	})
}

// GenerateSessionID generates a new secure random session ID.
func GenerateSessionID() string {
	return uniuri.SessionID()
}

// SetActor stores the resolved actor for the rest of the request.
func SetActor(c *fiber.Ctx, actor *access.Actor) {
	c.Locals(localsActor, actor)
}

// SetLoading marks that the actor could not be resolved in time.
func SetLoading(c *fiber.Ctx) {
	c.Locals(localsLoading, true)
}

// FromContext returns the actor of the request and whether its data is still loading.
// The actor is nil for anonymous requests.
func FromContext(c *fiber.Ctx) (*access.Actor, bool) {
	actor, _ := c.Locals(localsActor).(*access.Actor)
	loading, _ := c.Locals(localsLoading).(bool)

	return actor, loading
}
