// Package notify is the subscribe/unsubscribe observer every shopper store
// exposes. Listeners run synchronously, after the mutation has committed.
package notify

import "sync"

// Event describes one committed mutation.
type Event struct {
	Store string
	Op    string
}

type Listener func(Event)

// Notifier fans events out to the current listeners in subscription order.
// The zero value is ready to use.
type Notifier struct {
	mu        sync.Mutex
	nextID    uint64
	listeners []subscription
}

type subscription struct {
	id uint64
	fn Listener
}

// Subscribe registers fn and returns the function that removes it. Calling the
// returned function more than once is a no-op.
func (n *Notifier) Subscribe(fn Listener) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	n.mu.Lock()
	n.nextID++
	id := n.nextID
	n.listeners = append(n.listeners, subscription{id: id, fn: fn})
	n.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { n.remove(id) })
	}
}

func (n *Notifier) remove(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, sub := range n.listeners {
		if sub.id == id {
			n.listeners = append(n.listeners[:i:i], n.listeners[i+1:]...)
			return
		}
	}
}

// Len reports how many listeners are subscribed.
func (n *Notifier) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.listeners)
}

// Notify calls every listener with ev. Listeners may unsubscribe themselves
// while being notified.
func (n *Notifier) Notify(ev Event) {
	n.mu.Lock()
	snapshot := make([]subscription, len(n.listeners))
	copy(snapshot, n.listeners)
	n.mu.Unlock()

	for _, sub := range snapshot {
		sub.fn(ev)
	}
}
