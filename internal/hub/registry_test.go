package hub

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeSession is a channel-free Pusher for registry and hub tests.
type fakeSession struct {
	userID string

	mu     sync.Mutex
	pushed [][]byte
	fail   bool
}

func newFakeSession(userID string) *fakeSession {
	return &fakeSession{userID: userID}
}

func (f *fakeSession) UserID() string { return f.userID }

func (f *fakeSession) Push(payload []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return assert.AnError
	}
	f.pushed = append(f.pushed, payload)
	return nil
}

func (f *fakeSession) payloads() [][]byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([][]byte, len(f.pushed))
	copy(out, f.pushed)
	return out
}

func TestRegistry_MultipleSessionsPerUser(t *testing.T) {
	r := NewRegistry()
	tab1 := newFakeSession("u1")
	tab2 := newFakeSession("u1")

	r.Register(tab1)
	r.Register(tab2)

	assert.Len(t, r.SessionsFor("u1"), 2)
	assert.True(t, r.Online("u1"))
}

func TestRegistry_OfflineIsEmptyNotError(t *testing.T) {
	r := NewRegistry()
	assert.Empty(t, r.SessionsFor("nobody"))
	assert.False(t, r.Online("nobody"))
}

func TestRegistry_UnregisterIdempotent(t *testing.T) {
	r := NewRegistry()
	s := newFakeSession("u1")

	r.Register(s)
	r.Unregister(s)
	assert.False(t, r.Online("u1"))

	// Disconnect handlers can fire twice; second removal is a no-op
	r.Unregister(s)
	assert.False(t, r.Online("u1"))
}

func TestRegistry_ConcurrentChurn(t *testing.T) {
	r := NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s := newFakeSession("u1")
			r.Register(s)
			r.SessionsFor("u1")
			r.Unregister(s)
			r.Unregister(s)
		}()
	}
	wg.Wait()

	assert.False(t, r.Online("u1"))
}
