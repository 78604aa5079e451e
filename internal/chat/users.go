package chat

import (
	"sync"

	"github.com/google/uuid"
)

// UserRegistry stores registered users. It is safe for concurrent use:
// mutations take the write lock, lookups take the read lock.
type UserRegistry struct {
	mu     sync.RWMutex
	byID   map[string]User
	byName map[string]string // name -> id
}

// NewUserRegistry constructs an empty user registry.
func NewUserRegistry() *UserRegistry {
	return &UserRegistry{
		byID:   make(map[string]User),
		byName: make(map[string]string),
	}
}

// Register creates a user with a fresh id, or returns the existing user when
// the exact name is already taken. Registration is idempotent by name.
func (r *UserRegistry) Register(name string) (User, error) {
	if name == "" {
		return User{}, ErrEmptyName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if id, ok := r.byName[name]; ok {
		return r.byID[id], nil
	}

	user := User{ID: uuid.NewString(), Name: name}
	r.byID[user.ID] = user
	r.byName[user.Name] = user.ID
	return user, nil
}

// Unregister removes the user from the registry. Removing an unknown user is
// a no-op. Messages already attributed to the user keep their author
// snapshot.
func (r *UserRegistry) Unregister(user User) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[user.ID]
	if !ok {
		return
	}
	delete(r.byID, stored.ID)
	delete(r.byName, stored.Name)
}

// FindByID returns the user with the given id, if registered.
func (r *UserRegistry) FindByID(id string) (User, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	return user, ok
}

// Len reports the number of registered users.
func (r *UserRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.byID)
}
