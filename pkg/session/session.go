// Package session provides server-side HTTP sessions backed by Redis.
//
// Beyond load/save, the middleware enforces the storefront's session
// lifecycle: an idle timeout after which the session is invalidated, a
// periodic session-ID rotation, and a user-agent binding that destroys a
// session presented by a different browser.
//
// Usage (middleware):
//
//	r.Use(session.Middleware(session.DefaultOptions()))
//
// Usage (handler):
//
//	sess := session.FromCtx(r)
//	sess.Set("client_id", 42)
//	sess.Save(w)
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/aferchichi/stockshop/config"
	"github.com/aferchichi/stockshop/pkg/cache"
)

// Reserved keys maintained by the middleware.
const (
	keyLastActivity = "_last_activity"
	keyCreated      = "_created"
	keyUserAgent    = "_user_agent"
)

// rotateEvery is how often the session ID is regenerated to limit the value
// of a fixated or leaked ID.
const rotateEvery = 30 * time.Minute

// ------------------- Options -------------------

// Options configures session behaviour.
type Options struct {
	CookieName string
	IdleTTL    time.Duration
	HTTPOnly   bool
	Secure     bool
	SameSite   http.SameSite
	Path       string
}

// DefaultOptions returns the storefront defaults. The idle TTL comes from
// SESSION_LIFETIME.
func DefaultOptions() Options {
	return Options{
		CookieName: "stockshop_session",
		IdleTTL:    time.Duration(config.SessionLifetime()) * time.Second,
		HTTPOnly:   true,
		Secure:     false, // set true behind TLS
		SameSite:   http.SameSiteLaxMode,
		Path:       "/",
	}
}

// ------------------- Session -------------------

type ctxKey struct{}

// Session is an in-request session handle.
type Session struct {
	id      string
	data    map[string]interface{}
	opts    Options
	changed bool
}

func newID() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func redisKey(id string) string { return "stockshop:session:" + id }

func load(id string) (map[string]interface{}, bool) {
	var data map[string]interface{}
	if cache.Get(redisKey(id), &data) {
		return data, true
	}
	return map[string]interface{}{}, false
}

// NewDetached returns an unsaved session with fresh state. Used by tests and
// as the fallback when no middleware ran.
func NewDetached() *Session {
	return &Session{id: newID(), data: map[string]interface{}{}, opts: DefaultOptions()}
}

// ID returns the session ID.
func (s *Session) ID() string { return s.id }

// Set stores a value under key in the session.
func (s *Session) Set(key string, value interface{}) {
	s.data[key] = value
	s.changed = true
}

// Get retrieves a value from the session.
func (s *Session) Get(key string) (interface{}, bool) {
	v, ok := s.data[key]
	return v, ok
}

// GetString is a typed convenience getter.
func (s *Session) GetString(key string) (string, bool) {
	v, ok := s.data[key]
	if !ok {
		return "", false
	}
	s2, ok := v.(string)
	return s2, ok
}

// GetInt is a typed convenience getter.
func (s *Session) GetInt(key string) (int, bool) {
	v, ok := s.data[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64: // JSON numbers unmarshal as float64
		return int(n), true
	case int:
		return n, true
	case int64:
		return int(n), true
	}
	return 0, false
}

// SetJSON stores a struct value; it survives the JSON round-trip to Redis
// and can be read back with GetJSON.
func (s *Session) SetJSON(key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("session: marshal %s: %w", key, err)
	}
	s.Set(key, string(raw))
	return nil
}

// GetJSON reads a struct value stored with SetJSON. Returns false when the
// key is absent or does not decode into dest.
func (s *Session) GetJSON(key string, dest interface{}) bool {
	raw, ok := s.GetString(key)
	if !ok {
		return false
	}
	return json.Unmarshal([]byte(raw), dest) == nil
}

// Delete removes a key from the session.
func (s *Session) Delete(key string) {
	delete(s.data, key)
	s.changed = true
}

// Flash stores a one-shot value that is deleted on the first GetFlash.
func (s *Session) Flash(key string, value interface{}) {
	s.Set("_flash_"+key, value)
}

// FlashJSON stores a one-shot struct value.
func (s *Session) FlashJSON(key string, value interface{}) error {
	return s.SetJSON("_flash_"+key, value)
}

// GetFlash retrieves and removes a flash value.
func (s *Session) GetFlash(key string) (interface{}, bool) {
	v, ok := s.Get("_flash_" + key)
	if ok {
		s.Delete("_flash_" + key)
	}
	return v, ok
}

// GetFlashJSON retrieves and removes a one-shot struct value.
func (s *Session) GetFlashJSON(key string, dest interface{}) bool {
	ok := s.GetJSON("_flash_"+key, dest)
	if ok {
		s.Delete("_flash_" + key)
	}
	return ok
}

// Regenerate swaps the session onto a fresh ID, dropping the old server-side
// record. Called on login to prevent session fixation.
func (s *Session) Regenerate() {
	_ = cache.Del(redisKey(s.id))
	s.id = newID()
	s.data[keyCreated] = time.Now().Unix()
	s.changed = true
}

// Invalidate destroys all session state (logout / timeout).
func (s *Session) Invalidate() {
	_ = cache.Del(redisKey(s.id))
	s.id = newID()
	s.data = map[string]interface{}{}
	s.changed = true
}

// Save persists the session to Redis and writes the cookie to the response.
func (s *Session) Save(w http.ResponseWriter) error {
	if !s.changed {
		return nil
	}

	raw, err := json.Marshal(s.data)
	if err != nil {
		return fmt.Errorf("session: marshal: %w", err)
	}

	if err := cache.Set(redisKey(s.id), json.RawMessage(raw), s.opts.IdleTTL); err != nil {
		return fmt.Errorf("session: redis save: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.opts.CookieName,
		Value:    s.id,
		Path:     s.opts.Path,
		MaxAge:   int(s.opts.IdleTTL.Seconds()),
		HttpOnly: s.opts.HTTPOnly,
		Secure:   s.opts.Secure,
		SameSite: s.opts.SameSite,
	})

	s.changed = false
	return nil
}

// ------------------- Middleware -------------------

// Middleware loads (or creates) the session for every request, applying the
// idle timeout, rotation, and user-agent checks, then injects the handle
// into the request context. Handlers call session.FromCtx(r) to access it.
func Middleware(opts Options) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := &Session{opts: opts, data: map[string]interface{}{}}

			if cookie, err := r.Cookie(opts.CookieName); err == nil {
				sess.id = cookie.Value
				if data, ok := load(sess.id); ok {
					sess.data = data
				}
			} else {
				sess.id = newID()
			}

			now := time.Now()

			// Idle timeout: a stale session forces a fresh, anonymous one.
			if last, ok := sess.GetInt(keyLastActivity); ok {
				if now.Sub(time.Unix(int64(last), 0)) > opts.IdleTTL {
					sess.Invalidate()
				}
			}

			// A session presented by a different browser is discarded.
			sess.bindUserAgent(r.UserAgent())

			// Periodic ID rotation against fixation.
			if created, ok := sess.GetInt(keyCreated); !ok {
				sess.Set(keyCreated, now.Unix())
			} else if now.Sub(time.Unix(int64(created), 0)) > rotateEvery {
				sess.Regenerate()
				sess.Set(keyUserAgent, r.UserAgent())
			}

			sess.Set(keyLastActivity, now.Unix())

			ctx := context.WithValue(r.Context(), ctxKey{}, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bindUserAgent ties the session to the browser that created it. On a
// mismatch the old session is discarded and the replacement is bound to the
// presenting browser immediately, within the same request.
func (s *Session) bindUserAgent(ua string) {
	got, ok := s.GetString(keyUserAgent)
	if !ok {
		s.Set(keyUserAgent, ua)
		return
	}
	if got != ua {
		s.Invalidate()
		s.Set(keyUserAgent, ua)
	}
}

// FromCtx retrieves the session from the request context.
// Returns an empty (unsaved) session if none is present.
func FromCtx(r *http.Request) *Session {
	if s, ok := r.Context().Value(ctxKey{}).(*Session); ok {
		return s
	}
	return NewDetached()
}
