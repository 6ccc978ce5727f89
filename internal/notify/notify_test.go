package notify

import "testing"

func TestNotifyCallsListenersInOrder(t *testing.T) {
	var n Notifier
	var got []string
	n.Subscribe(func(ev Event) { got = append(got, "a:"+ev.Op) })
	n.Subscribe(func(ev Event) { got = append(got, "b:"+ev.Op) })

	n.Notify(Event{Store: "cart", Op: "add"})

	if len(got) != 2 || got[0] != "a:add" || got[1] != "b:add" {
		t.Fatalf("unexpected notification order %v", got)
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	var n Notifier
	calls := 0
	unsubscribe := n.Subscribe(func(Event) { calls++ })

	n.Notify(Event{Op: "add"})
	unsubscribe()
	unsubscribe()
	n.Notify(Event{Op: "add"})

	if calls != 1 {
		t.Fatalf("expected one delivery, got %d", calls)
	}
	if n.Len() != 0 {
		t.Fatalf("expected no listeners, got %d", n.Len())
	}
}

func TestListenerMayUnsubscribeDuringNotify(t *testing.T) {
	var n Notifier
	var unsubscribe func()
	calls := 0
	unsubscribe = n.Subscribe(func(Event) {
		calls++
		unsubscribe()
	})
	other := 0
	n.Subscribe(func(Event) { other++ })

	n.Notify(Event{Op: "clear"})
	n.Notify(Event{Op: "clear"})

	if calls != 1 || other != 2 {
		t.Fatalf("unexpected calls self=%d other=%d", calls, other)
	}
}

func TestSubscribeNilListener(t *testing.T) {
	var n Notifier
	n.Subscribe(nil)()
	if n.Len() != 0 {
		t.Fatalf("nil listener should not be registered")
	}
}
