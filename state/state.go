// Package state implements the request lifecycle and the canonical
// collection every entity store is built on: an ordered item sequence, an
// optional currently-viewed entity, and the shared status/error pair.
package state

import (
	"sync"

	"github.com/studyhub-app/studyhub-go/entity"
)

// Status describes the lifecycle of the most recently settled operation on
// a store.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusLoading   Status = "loading"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Collection holds one domain's state. Status and LastError are shared by
// every operation of the owning store: when two operations overlap, the
// last response to resolve wins both fields. That race is accepted
// behavior, not guarded against.
type Collection[T entity.Entity] struct {
	mu      sync.RWMutex
	items   []T
	current *T
	status  Status
	lastErr string
}

// NewCollection creates an empty collection in the idle state.
func NewCollection[T entity.Entity]() *Collection[T] {
	return &Collection[T]{status: StatusIdle}
}

// Begin marks an operation in flight.
func (c *Collection[T]) Begin() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.status = StatusLoading
}

// Succeed marks the most recent operation settled successfully and clears
// the last error.
func (c *Collection[T]) Succeed() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.status = StatusSucceeded
	c.lastErr = ""
}

// Fail marks the most recent operation failed and records its message.
func (c *Collection[T]) Fail(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.status = StatusFailed
	c.lastErr = msg
}

// ReplaceAll swaps the item sequence wholesale, preserving response order.
// No merge with prior state.
func (c *Collection[T]) ReplaceAll(items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make([]T, len(items))
	copy(c.items, items)
}

// Append adds the item at the end of the sequence.
func (c *Collection[T]) Append(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = append(c.items, item)
}

// ReplaceByID replaces the item with the same identifier in place. When no
// item matches, the sequence is left unchanged and false is returned.
func (c *Collection[T]) ReplaceByID(item T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].EntityID() == item.EntityID() {
			c.items[i] = item
			return true
		}
	}
	return false
}

// RemoveByID removes the item with the given identifier. Removing an absent
// identifier is a no-op.
func (c *Collection[T]) RemoveByID(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.items[:0]
	for _, item := range c.items {
		if item.EntityID() != id {
			kept = append(kept, item)
		}
	}
	c.items = kept
}

// TransformAll applies fn to every item in place.
func (c *Collection[T]) TransformAll(fn func(T) T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		c.items[i] = fn(c.items[i])
	}
}

// SetCurrent sets the currently-viewed entity unconditionally.
func (c *Collection[T]) SetCurrent(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.current = &item
}

// UpdateCurrent overwrites the currently-viewed entity only when it refers
// to the same identifier, so a background update to entity X cannot clobber
// the view of entity Y.
func (c *Collection[T]) UpdateCurrent(item T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == nil || (*c.current).EntityID() != item.EntityID() {
		return false
	}
	c.current = &item
	return true
}

// Items returns a copy of the item sequence in insertion order.
func (c *Collection[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	items := make([]T, len(c.items))
	copy(items, c.items)
	return items
}

// Current returns a copy of the currently-viewed entity, or nil.
func (c *Collection[T]) Current() *T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.current == nil {
		return nil
	}
	v := *c.current
	return &v
}

// Status returns the lifecycle status.
func (c *Collection[T]) Status() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.status
}

// LastError returns the last recorded failure message.
func (c *Collection[T]) LastError() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.lastErr
}

// ClearError resets the last error without touching the status.
func (c *Collection[T]) ClearError() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lastErr = ""
}

// ClearCurrent resets the currently-viewed entity.
func (c *Collection[T]) ClearCurrent() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.current = nil
}
