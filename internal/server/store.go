package server

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/matzehuels/flamelens/pkg/stack"
)

// Profile is a loaded profile held by the server. The tree is built once
// at upload time and shared read-only across requests.
type Profile struct {
	ID       string
	Name     string
	Tree     *stack.Tree
	Hash     string
	Uploaded time.Time
}

// store is the in-memory profile registry. All methods are safe for
// concurrent use.
type store struct {
	mu       sync.RWMutex
	profiles map[string]*Profile
}

func newStore() *store {
	return &store{profiles: make(map[string]*Profile)}
}

// Add registers a profile under a fresh id and returns it.
func (s *store) Add(name string, tree *stack.Tree, hash string) *Profile {
	p := &Profile{
		ID:       uuid.NewString(),
		Name:     name,
		Tree:     tree,
		Hash:     hash,
		Uploaded: time.Now(),
	}
	s.mu.Lock()
	s.profiles[p.ID] = p
	s.mu.Unlock()
	return p
}

// Get returns the profile with the given id.
func (s *store) Get(id string) (*Profile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[id]
	return p, ok
}

// Delete removes the profile with the given id. It reports whether a
// profile was removed.
func (s *store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[id]; !ok {
		return false
	}
	delete(s.profiles, id)
	return true
}

// List returns all profiles ordered by upload time, oldest first.
func (s *store) List() []*Profile {
	s.mu.RLock()
	out := make([]*Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		out = append(out, p)
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].Uploaded.Equal(out[j].Uploaded) {
			return out[i].ID < out[j].ID
		}
		return out[i].Uploaded.Before(out[j].Uploaded)
	})
	return out
}

// Len returns the number of stored profiles.
func (s *store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.profiles)
}
