package ui

import (
	"sync"
	"time"

	"boothpulse/domain/core"
	"boothpulse/domain/importer"
	"boothpulse/internal/errors"
)

// sessionEntry pairs a live session with the mutex that serializes every
// read-modify-write on it. gin serves requests concurrently, so two
// in-flight requests on the same session id must not touch the Session
// at the same time.
type sessionEntry struct {
	mu      sync.Mutex
	session *importer.Session
}

// SessionStore holds the live pipeline sessions in memory. The outer
// RWMutex guards the map; each entry carries its own lock, handed out by
// Acquire and held for the duration of one handler's work on the session.
// Nothing survives a process restart; an upload session is not resumable.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[core.SessionID]*sessionEntry
}

// NewSessionStore creates an empty session store
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[core.SessionID]*sessionEntry),
	}
}

// Put registers a session
func (st *SessionStore) Put(session *importer.Session) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[session.ID] = &sessionEntry{session: session}
}

// Acquire returns the session with its lock held. The caller must invoke
// the release function once it is done mutating or reading the session.
func (st *SessionStore) Acquire(id core.SessionID) (*importer.Session, func(), error) {
	st.mu.RLock()
	entry, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, nil, errors.NotFound("import session")
	}

	entry.mu.Lock()
	return entry.session, entry.mu.Unlock, nil
}

// Remove drops a session
func (st *SessionStore) Remove(id core.SessionID) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}

// ScheduleReset resets and removes a session after the confirmation delay,
// so the user sees the success banner before the form clears. The reset
// takes the session lock, never racing an in-flight handler.
func (st *SessionStore) ScheduleReset(id core.SessionID, delay time.Duration) {
	time.AfterFunc(delay, func() {
		st.mu.RLock()
		entry, ok := st.sessions[id]
		st.mu.RUnlock()
		if !ok {
			return
		}

		entry.mu.Lock()
		entry.session.Reset()
		entry.mu.Unlock()

		st.mu.Lock()
		delete(st.sessions, id)
		st.mu.Unlock()
	})
}

// Count returns the number of live sessions
func (st *SessionStore) Count() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
