// Package observable provides thread-safe containers and objects that
// notify registered observers of mutations.
//
// Three observable kinds are provided:
//   - List: an ordered sequence whose mutating operations each emit a
//     notification tagged with a ListModification kind
//   - Map: a key/value store whose mutating operations each emit a
//     notification tagged with a MapModification kind
//   - Object with Property: named, independently observable values with
//     defaults, equality-gated change detection, and an optional
//     on-changed hook per property
//
// Observers are explicit tagged variants chosen at construction time:
//
//	observable.OnChange(func() { ... })                      // no arguments
//	observable.OnNewValue(func(newValue any) { ... })        // new value only
//	observable.OnTransition(func(oldValue, newValue any) { ... })
//
// Container notifications carry no values, so OnChange is the natural
// variant for List and Map; the value-carrying variants receive nil.
// Object notifications carry the old and new property values.
//
// Registration returns a Subscription handle which the caller must keep
// to unsubscribe. Registrations do not keep anything else alive and are
// never removed implicitly; callers are responsible for calling
// RemoveObserver when an observer should stop receiving notifications.
//
// Common usage pattern:
//
//	list, _ := observable.NewList(observable.WithItems([]int{1, 2, 3}))
//
//	sub, _ := list.AddObserver(observable.OnChange(func() {
//		fmt.Println("list modified")
//	}))
//	appendSub, _ := list.AddObserverFor(observable.ListAppend, observable.OnChange(func() {
//		fmt.Println("item appended")
//	}))
//
//	list.Append(4)
//	// Output: "list modified"
//	//         "item appended"
//
//	list.RemoveObserver(sub)
//	list.RemoveObserver(appendSub)
//
// Every mutating operation acquires the instance's lock for exactly the
// duration of the mutation; observers are invoked after the lock is
// released, in registration order, wildcard registrations first. An
// observer that panics is logged and does not prevent the remaining
// observers from running.
package observable
