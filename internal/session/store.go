// Package session holds the per-session entitlement records.  Each session
// is an explicit record keyed by its session ID rather than a single
// process-wide flag, so concurrent sessions never observe each other's
// entitlement.  Records live in process memory only: a restart starts every
// visitor back at the free tier, which is the intended lifecycle.
package session

import (
    "fmt"
    "math/rand/v2"
    "sync"
)

// Record is one session's entitlement state.
//
// Fields:
//  UserID – opaque identifier assigned on first touch, stable for the session.
//  Pro    – whether the session has the paid entitlement.
type Record struct {
    UserID string
    Pro    bool
}

// Store maps session IDs to entitlement records.  All methods are safe for
// concurrent use; the lock partitions nothing finer than the whole map
// because mutations are rare (upgrade/downgrade only).
type Store struct {
    mu       sync.RWMutex
    sessions map[string]*Record
}

// NewStore returns an empty store.
func NewStore() *Store {
    return &Store{sessions: map[string]*Record{}}
}

// Ensure idempotently initializes the record for a session: the first call
// assigns a random opaque user identifier and the free tier; later calls
// return the existing record unchanged.
func (s *Store) Ensure(sid string) Record {
    s.mu.Lock()
    defer s.mu.Unlock()
    rec, ok := s.sessions[sid]
    if !ok {
        rec = &Record{UserID: newUserID()}
        s.sessions[sid] = rec
    }
    return *rec
}

// Get returns the record for a session without creating one.
func (s *Store) Get(sid string) (Record, bool) {
    s.mu.RLock()
    defer s.mu.RUnlock()
    rec, ok := s.sessions[sid]
    if !ok {
        return Record{}, false
    }
    return *rec, true
}

// IsPro reports whether the session currently holds the paid entitlement.
// Unknown sessions are free tier.
func (s *Store) IsPro(sid string) bool {
    rec, ok := s.Get(sid)
    return ok && rec.Pro
}

// Upgrade grants the paid entitlement, initializing the record if needed.
// Takes effect immediately for the session.
func (s *Store) Upgrade(sid string) Record {
    return s.setPro(sid, true)
}

// Downgrade revokes the paid entitlement, initializing the record if needed.
func (s *Store) Downgrade(sid string) Record {
    return s.setPro(sid, false)
}

func (s *Store) setPro(sid string, pro bool) Record {
    s.mu.Lock()
    defer s.mu.Unlock()
    rec, ok := s.sessions[sid]
    if !ok {
        rec = &Record{UserID: newUserID()}
        s.sessions[sid] = rec
    }
    rec.Pro = pro
    return *rec
}

// newUserID mints the opaque identifier embedded in audit lines and export
// watermarks.  Five digits is plenty for a per-process namespace.
func newUserID() string {
    return fmt.Sprintf("user_%05d", rand.IntN(90000)+10000)
}
