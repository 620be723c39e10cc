// Package observable provides a minimal observer-pattern base: an Observable
// holds a set of Observers and notifies them synchronously. It underlies
// every revaluation trigger in the domain model (asset price changes, fx
// rate changes) the way pytrade.observable.Observable does.
//
// The observer set is held weakly, mirroring the WeakSet the Python
// original subscribes through: a subscriber that becomes unreachable
// elsewhere is dropped on the next notification instead of pinning the
// Observable's memory forever. This reuses the same weak.Pointer mechanism
// as codes.Registry, boxed through Ref the same way codes.Ref lets a
// concrete type register itself in a Registry[T].
package observable

import (
	"sync"
	"weak"
)

// Observer receives notifications from an Observable it has subscribed to.
type Observer interface {
	ObservableUpdate(o any)
}

// Ref boxes observer on the heap and returns its address. The returned
// pointer is the subscription's identity: pass it to AddObserver, and to
// RemoveObserver to undo exactly that subscription. The caller must hold
// onto the pointer for as long as the subscription should last; once it is
// unreachable elsewhere the entry is pruned on the next NotifyObservers
// call, same as a dropped registry entry in codes.Registry.
func Ref(observer Observer) *Observer {
	ref := new(Observer)
	*ref = observer
	return ref
}

// Observable is embedded by types that other objects can subscribe to.
type Observable struct {
	mu        sync.Mutex
	observers map[weak.Pointer[Observer]]struct{}
	self      any
}

// Init must be called once, from the embedding type's constructor, with a
// pointer to itself, so Observable can pass the right value to
// ObservableUpdate.
func (o *Observable) Init(self any) {
	o.self = self
	o.observers = make(map[weak.Pointer[Observer]]struct{})
}

// AddObserver registers the subscriber identified by ref to be notified of
// future changes. ref is normally the result of a prior Ref call; passing
// the same ref again is a no-op.
func (o *Observable) AddObserver(ref *Observer) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.observers == nil {
		o.observers = make(map[weak.Pointer[Observer]]struct{})
	}
	o.observers[weak.Make(ref)] = struct{}{}
}

// RemoveObserver unregisters the subscription identified by ref, if
// present. Safe to call repeatedly.
func (o *Observable) RemoveObserver(ref *Observer) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.observers, weak.Make(ref))
}

// Len returns the number of currently-live subscriptions, pruning any
// collected entries first.
func (o *Observable) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	for wp := range o.observers {
		if wp.Value() == nil {
			delete(o.observers, wp)
		}
	}
	return len(o.observers)
}

// NotifyObservers invokes ObservableUpdate on every still-live registered
// observer, passing the value Init was called with. Entries whose ref has
// been collected are pruned along the way. Handlers are snapshotted before
// invocation so a handler that subscribes/unsubscribes mid-notification
// does not race the set being iterated.
func (o *Observable) NotifyObservers() {
	o.mu.Lock()
	live := make([]Observer, 0, len(o.observers))
	for wp := range o.observers {
		ref := wp.Value()
		if ref == nil {
			delete(o.observers, wp)
			continue
		}
		live = append(live, *ref)
	}
	self := o.self
	o.mu.Unlock()

	for _, observer := range live {
		observer.ObservableUpdate(self)
	}
}
