package board

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Registry keeps one board State per session and project. Entries idle out
// so boards for closed tabs do not pile up.
type Registry struct {
	mu      sync.Mutex
	states  map[string]*State
	fetcher Fetcher
	idle    time.Duration
	stop    chan struct{}
}

func NewRegistry(fetcher Fetcher, idle time.Duration) *Registry {
	if idle <= 0 {
		idle = 15 * time.Minute
	}
	r := &Registry{
		states:  make(map[string]*State),
		fetcher: fetcher,
		idle:    idle,
		stop:    make(chan struct{}),
	}
	go r.cleanup()
	return r
}

// Close stops the eviction goroutine.
func (r *Registry) Close() {
	close(r.stop)
}

func key(sid string, projectID int64) string {
	return fmt.Sprintf("%s/%d", sid, projectID)
}

// Get returns the board for this session and project, creating it on first
// use. The token is pinned at creation; a re-login gets a new SID and so a
// fresh state.
func (r *Registry) Get(sid, token string, projectID int64) *State {
	k := key(sid, projectID)
	r.mu.Lock()
	defer r.mu.Unlock()
	if st, ok := r.states[k]; ok {
		return st
	}
	st := NewState(r.fetcher, token, projectID)
	r.states[k] = st
	return st
}

// Drop removes every board belonging to sid; called on logout.
func (r *Registry) Drop(sid string) {
	prefix := sid + "/"
	r.mu.Lock()
	defer r.mu.Unlock()
	for k := range r.states {
		if strings.HasPrefix(k, prefix) {
			delete(r.states, k)
		}
	}
}

// cleanup evicts boards untouched for longer than the idle window.
func (r *Registry) cleanup() {
	ticker := time.NewTicker(r.idle / 2)
	defer ticker.Stop()
	for {
		select {
		case <-r.stop:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-r.idle)
			r.mu.Lock()
			for k, st := range r.states {
				if st.lastAccess().Before(cutoff) {
					delete(r.states, k)
				}
			}
			r.mu.Unlock()
		}
	}
}
