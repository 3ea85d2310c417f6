package client

import (
	"context"
	"sync"
	"time"
)

// DefaultDelay is the undo window before a scheduled delete fires.
const DefaultDelay = 6 * time.Second

// Hooks let a UI react to scheduler transitions. Any hook may be nil.
type Hooks struct {
	// OnScheduled marks the item as pending, e.g. dims it.
	OnScheduled func(id string)
	// OnCancelled restores the item after an undo.
	OnCancelled func(id string)
	// OnDeleted removes the item once the delete succeeded.
	OnDeleted func(id string)
	// OnError restores the item and surfaces a one-shot failure notice.
	OnError func(id string, err error)
}

type pendingDelete struct {
	timer *time.Timer
}

// DeleteScheduler defers product deletes so the user can undo them. Per id
// the states are idle, scheduled, then committed or cancelled. Scheduling
// an id that is already pending silently replaces the earlier timer.
type DeleteScheduler struct {
	client *Client
	hooks  Hooks
	delay  time.Duration

	mu      sync.Mutex
	pending map[string]*pendingDelete
}

func NewDeleteScheduler(c *Client, hooks Hooks, delay time.Duration) *DeleteScheduler {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &DeleteScheduler{
		client:  c,
		hooks:   hooks,
		delay:   delay,
		pending: make(map[string]*pendingDelete),
	}
}

// Schedule arms the delete timer for id and reports the pending state.
func (s *DeleteScheduler) Schedule(id string) {
	s.mu.Lock()
	if prior, ok := s.pending[id]; ok {
		prior.timer.Stop()
	}
	entry := &pendingDelete{}
	entry.timer = time.AfterFunc(s.delay, func() { s.fire(id, entry) })
	s.pending[id] = entry
	s.mu.Unlock()

	if s.hooks.OnScheduled != nil {
		s.hooks.OnScheduled(id)
	}
}

// Cancel undoes a scheduled delete. It reports false when nothing was
// pending, including the case where the timer already claimed the entry;
// past that point the delete proceeds and Cancel is a no-op.
func (s *DeleteScheduler) Cancel(id string) bool {
	s.mu.Lock()
	entry, ok := s.pending[id]
	if ok {
		entry.timer.Stop()
		delete(s.pending, id)
	}
	s.mu.Unlock()

	if !ok {
		return false
	}
	if s.hooks.OnCancelled != nil {
		s.hooks.OnCancelled(id)
	}
	return true
}

// Pending reports whether a delete is scheduled for id.
func (s *DeleteScheduler) Pending(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.pending[id]
	return ok
}

// fire runs when the undo window elapses. The entry is claimed under the
// lock before any network call, so exactly one of fire and Cancel wins.
func (s *DeleteScheduler) fire(id string, entry *pendingDelete) {
	s.mu.Lock()
	cur, ok := s.pending[id]
	if !ok || cur != entry {
		// cancelled or replaced in the meantime
		s.mu.Unlock()
		return
	}
	delete(s.pending, id)
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.client.DeleteProduct(ctx, id); err != nil {
		if s.hooks.OnError != nil {
			s.hooks.OnError(id, err)
		}
		return
	}
	if s.hooks.OnDeleted != nil {
		s.hooks.OnDeleted(id)
	}
}
