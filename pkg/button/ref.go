package button

import (
	"sync"

	"github.com/google/uuid"
)

// Ref is a handle to the element a Button renders. The Button binds it to
// the element id once the element has been written, so callers can target
// the element afterwards (scripts, hx-target, tests) without owning it.
type Ref struct {
	mu        sync.RWMutex
	preferred string
	id        string
}

// NewRef returns an unbound Ref. The bound id is generated at render time
// unless the button is given an explicit id attribute.
func NewRef() *Ref {
	return &Ref{}
}

// NewRefWithID returns a Ref whose button will be rendered with id, unless
// the button is given a different explicit id attribute.
func NewRefWithID(id string) *Ref {
	return &Ref{preferred: id}
}

// ID returns the bound element id and whether the Ref has been bound.
func (r *Ref) ID() (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.id, r.id != ""
}

// Selector returns a CSS selector for the bound element, or "" when unbound.
func (r *Ref) Selector() string {
	id, ok := r.ID()
	if !ok {
		return ""
	}
	return "#" + id
}

// Bound reports whether a Button has rendered with this Ref.
func (r *Ref) Bound() bool {
	_, ok := r.ID()
	return ok
}

// resolve picks the id the element will carry.
func (r *Ref) resolve(explicit string) string {
	if explicit != "" {
		return explicit
	}
	r.mu.RLock()
	preferred := r.preferred
	r.mu.RUnlock()
	if preferred != "" {
		return preferred
	}
	return BaseClass + "-" + uuid.NewString()
}

// bind records id. The last render wins.
func (r *Ref) bind(id string) {
	r.mu.Lock()
	r.id = id
	r.mu.Unlock()
}
