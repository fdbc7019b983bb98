package hub

import "sync"

// Pusher is the outbound half of a live session. The registry and hub only
// ever push; reading belongs to the session's own pump. Tests register
// channel-backed fakes through the same interface.
type Pusher interface {
	UserID() string
	Push(payload []byte) error
}

// Registry tracks which users currently have open sessions. A user may
// hold several at once (multiple tabs or devices); an offline user simply
// has none, which is not an error.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]map[Pusher]bool
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]map[Pusher]bool),
	}
}

// Register adds a session for its user.
func (r *Registry) Register(p Pusher) {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.sessions[p.UserID()]
	if !ok {
		set = make(map[Pusher]bool)
		r.sessions[p.UserID()] = set
	}
	set[p] = true
}

// Unregister removes a session. Removing one that is already gone is a
// no-op; transport close handlers can fire more than once.
func (r *Registry) Unregister(p Pusher) {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.sessions[p.UserID()]
	if !ok {
		return
	}
	delete(set, p)
	if len(set) == 0 {
		delete(r.sessions, p.UserID())
	}
}

// SessionsFor returns a snapshot of the user's live sessions. Callers push
// on the copy after the lock is released; no I/O happens under the lock.
func (r *Registry) SessionsFor(userID string) []Pusher {
	r.mu.RLock()
	defer r.mu.RUnlock()

	set := r.sessions[userID]
	out := make([]Pusher, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	return out
}

// Online reports whether the user has at least one live session.
func (r *Registry) Online(userID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions[userID]) > 0
}
