package domain

import (
	"strconv"
	"sync/atomic"
)

// IDGenerator mints provisional identifiers -1, -2, -3 ...
// Negative values never collide with identifiers a user writes by hand.
type IDGenerator struct {
	counter atomic.Int64
}

// NewIDGenerator returns a generator whose first identifier is -1.
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{}
}

// Next returns a fresh identifier.
func (g *IDGenerator) Next() string {
	return strconv.FormatInt(g.counter.Add(-1), 10)
}

// Reset restarts the sequence at -1.
func (g *IDGenerator) Reset() {
	g.counter.Store(0)
}

// Observe lowers the sequence past id, so an identifier already stored in
// an outline is never minted again. Non-numeric ids are ignored.
func (g *IDGenerator) Observe(id string) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil || n >= 0 {
		return
	}
	for {
		cur := g.counter.Load()
		if n >= cur || g.counter.CompareAndSwap(cur, n) {
			return
		}
	}
}

// ObserveTree calls Observe for every identifier in the tree.
func (g *IDGenerator) ObserveTree(t *Task) {
	t.Walk(func(task *Task, _ int) bool {
		if id, ok := task.PeekID(); ok {
			g.Observe(id)
		}
		return true
	})
}

// PeekID returns the task's id tag without minting one.
func (t *Task) PeekID() (string, bool) {
	if t.IsVirtual() {
		return "", false
	}
	return t.Tag(IDTagKey)
}

// ID returns the task's identifier, appending a new id tag if it has none.
func (t *Task) ID() (string, error) {
	if t.IsVirtual() {
		return "", ErrVirtualIdentifierAccess
	}
	if err := t.EnsureID(); err != nil {
		return "", err
	}
	id, _ := t.PeekID()
	return id, nil
}

// EnsureID appends an id tag to a concrete task that has none.
func (t *Task) EnsureID() error {
	if t.IsVirtual() {
		return nil
	}
	if _, ok := t.PeekID(); ok {
		return nil
	}
	if t.ids == nil {
		return ErrNoIDGenerator
	}
	line, err := appendTag(t.Line(), IDTagKey, t.ids.Next())
	if err != nil {
		return err
	}
	t.setLine(line)
	return nil
}

// EnsureIDs assigns identifiers to every concrete task of the tree.
// It returns the number of identifiers minted.
func (t *Task) EnsureIDs() (int, error) {
	minted := 0
	var err error
	t.Walk(func(task *Task, _ int) bool {
		if err != nil {
			return false
		}
		if _, ok := task.PeekID(); ok || task.IsVirtual() {
			return true
		}
		if err = task.EnsureID(); err == nil {
			minted++
		}
		return err == nil
	})
	return minted, err
}
