package store

import "sync"

const (
	EntityCatalog = "catalog"
	EntityCart    = "cart"
	EntityOrders  = "orders"
)

const (
	OpCreated = "created"
	OpUpdated = "updated"
	OpDeleted = "deleted"
	OpCleared = "cleared"
)

// ChangeEvent is emitted after every successful mutation, once the new
// state has been persisted. Consumers re-fetch the slice of state they need.
type ChangeEvent struct {
	Entity string `json:"entity"`
	Op     string `json:"op"`
	ID     string `json:"id,omitempty"`
}

// Notifier fans change events out to subscribed listeners. Listeners run
// synchronously on the mutating goroutine and must not block.
type Notifier struct {
	mu        sync.RWMutex
	listeners []func(ChangeEvent)
}

func NewNotifier() *Notifier {
	return &Notifier{}
}

func (n *Notifier) Subscribe(fn func(ChangeEvent)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.listeners = append(n.listeners, fn)
}

func (n *Notifier) Publish(ev ChangeEvent) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	for _, fn := range n.listeners {
		fn(ev)
	}
}
