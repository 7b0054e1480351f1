// Package session owns the current session: who is logged in, with what
// role, and which videos they have purchased.  Exactly one session record
// exists at a time; it is persisted under the "session.user" key and
// restored when the store is constructed.
package session

import (
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"ppvstore/internal/model"
	"ppvstore/internal/storage"
	"ppvstore/internal/utils"
)

// credential is one of the two mock accounts the storefront accepts.
// The password hash is produced at construction so no plaintext is kept
// around after startup.
type credential struct {
	id           string
	email        string
	passwordHash string
	role         string
	seeded       []string // video IDs pre-purchased at login
}

// Store answers access-control queries and applies the login, logout and
// purchase flows.  All operations are synchronous local reads and writes;
// there is no retry layer because there is no network boundary to fail.
type Store struct {
	mu          sync.Mutex
	kv          storage.KV
	delay       time.Duration
	credentials []credential
	current     *model.User
}

// New builds a Store backed by kv and restores any persisted session.
// delay is the simulated latency applied before login and purchase resolve;
// a pending operation always completes, there is no cancellation.  cost is
// the bcrypt cost used to hash the mock credentials.
func New(kv storage.KV, delay time.Duration, cost int) (*Store, error) {
	userHash, err := utils.HashPassword("user123", cost)
	if err != nil {
		return nil, err
	}
	adminHash, err := utils.HashPassword("admin123", cost)
	if err != nil {
		return nil, err
	}
	s := &Store{
		kv:    kv,
		delay: delay,
		credentials: []credential{
			{id: "user1", email: "user@example.com", passwordHash: userHash, role: model.RoleUser, seeded: []string{"1"}},
			{id: "admin1", email: "admin@example.com", passwordHash: adminHash, role: model.RoleAdmin},
		},
	}
	raw, err := kv.Get(storage.KeySessionUser)
	switch {
	case err == nil:
		var u model.User
		if err := json.Unmarshal(raw, &u); err != nil {
			// A corrupt record is dropped rather than wedging startup.
			_ = kv.Delete(storage.KeySessionUser)
		} else {
			s.current = &u
		}
	case errors.Is(err, storage.ErrNotFound):
		// no session to restore
	default:
		return nil, err
	}
	return s, nil
}

// Login authenticates against the two mock credential pairs.  The triple
// (email, password, wantAdmin) must match exactly; anything else returns
// false with no state change.  On success the previous session, if any, is
// replaced: admin sessions start with an empty purchase set, standard
// sessions start with video "1" already purchased.
func (s *Store) Login(email, password string, wantAdmin bool) (model.User, bool) {
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	email = strings.ToLower(strings.TrimSpace(email))
	for _, cred := range s.credentials {
		if cred.email != email {
			continue
		}
		if wantAdmin != (cred.role == model.RoleAdmin) {
			continue
		}
		if !utils.VerifyPassword(cred.passwordHash, password) {
			continue
		}
		u := model.User{
			ID:        cred.id,
			Email:     cred.email,
			Role:      cred.role,
			Purchased: make(map[string]bool, len(cred.seeded)),
		}
		for _, id := range cred.seeded {
			u.Purchased[id] = true
		}
		s.mu.Lock()
		s.current = &u
		s.flush()
		s.mu.Unlock()
		return u, true
	}
	return model.User{}, false
}

// Logout clears the session record and its persisted copy.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
	_ = s.kv.Delete(storage.KeySessionUser)
}

// Purchase adds videoID to the current session's purchase set and persists
// the record.  Without a session it is a no-op, not an error.
func (s *Store) Purchase(videoID string) {
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return
	}
	if s.current.Purchased == nil {
		s.current.Purchased = make(map[string]bool)
	}
	s.current.Purchased[videoID] = true
	s.flush()
}

// HasPurchased reports whether the current session has purchased videoID.
func (s *Store) HasPurchased(videoID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil && s.current.HasPurchased(videoID)
}

// IsAuthenticated reports whether a session exists.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil
}

// IsAdmin reports whether the current session carries the admin role.
func (s *Store) IsAdmin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil && s.current.IsAdmin()
}

// Current returns a copy of the session record.
func (s *Store) Current() (model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return model.User{}, false
	}
	u := *s.current
	u.Purchased = make(map[string]bool, len(s.current.Purchased))
	for k, v := range s.current.Purchased {
		u.Purchased[k] = v
	}
	return u, true
}

// flush writes the session record to the KV layer.  Callers must hold mu.
func (s *Store) flush() {
	raw, err := json.Marshal(s.current)
	if err != nil {
		return
	}
	_ = s.kv.Put(storage.KeySessionUser, raw)
}
