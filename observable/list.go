package observable

import (
	"sort"
	"sync"

	jsoniter "github.com/json-iterator/go"
)

// ListModification classifies the mutation a List notification reports.
type ListModification int

const (
	ListAll ListModification = iota
	ListAppend
	ListExtend
	ListInsert
	ListRemove
	ListUpdate
	ListClear
)

func (m ListModification) String() string {
	switch m {
	case ListAll:
		return "ALL"
	case ListAppend:
		return "APPEND"
	case ListExtend:
		return "EXTEND"
	case ListInsert:
		return "INSERT"
	case ListRemove:
		return "REMOVE"
	case ListUpdate:
		return "UPDATE"
	case ListClear:
		return "CLEAR"
	default:
		return "UNKNOWN"
	}
}

// List is a thread-safe, observable ordered sequence. Every mutating
// operation is applied under the instance lock and followed by exactly
// one notification tagged with the operation's ListModification kind,
// delivered after the lock is released.
type List[T comparable] struct {
	mu        sync.Mutex
	items     []T
	observers *registry[ListModification]
	logger    Logger
}

// ListOption defines a functional option for configuring a List.
type ListOption[T comparable] func(*List[T]) error

// WithItems sets the initial contents of the List. The slice is copied.
func WithItems[T comparable](items []T) ListOption[T] {
	return func(l *List[T]) error {
		l.items = append([]T(nil), items...)
		return nil
	}
}

// WithListLogger sets the logger for the List.
// The logger receives warnings for unknown-handle removals and error
// records for observers that panic during notification.
func WithListLogger[T comparable](logger Logger) ListOption[T] {
	return func(l *List[T]) error {
		if logger == nil {
			return ErrNilLogger
		}

		l.logger = logger

		return nil
	}
}

// NewList creates an observable List, empty unless WithItems is given.
func NewList[T comparable](opts ...ListOption[T]) (*List[T], error) {
	l := &List[T]{
		observers: newRegistry[ListModification](ListAll),
		logger:    defaultLogger{},
	}

	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, err
		}
	}

	return l, nil
}

// AddObserver registers an observer for every modification kind.
func (l *List[T]) AddObserver(obs Observer) (Subscription, error) {
	return l.AddObserverFor(ListAll, obs)
}

// AddObserverFor registers an observer for one modification kind.
// Observers registered for ListAll are additionally invoked, before the
// kind-specific ones, on every notification.
func (l *List[T]) AddObserverFor(kind ListModification, obs Observer) (Subscription, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.observers.add(kind, obs)
}

// RemoveObserver unregisters the registration identified by sub.
// An unknown handle is logged as a warning, not an error.
func (l *List[T]) RemoveObserver(sub Subscription) {
	l.mu.Lock()
	removed := l.observers.remove(sub)
	l.mu.Unlock()

	if !removed {
		l.logger.Warn("observer not found for removal", "subscription", sub.String())
	}
}

// mutate runs fn under the lock and, if it succeeds, notifies with kind.
// The lock covers exactly the mutation and the registry snapshot, never
// the dispatch, so observers can re-enter the list for reads.
func (l *List[T]) mutate(kind ListModification, fn func() error) error {
	l.mu.Lock()

	if err := fn(); err != nil {
		l.mu.Unlock()
		return err
	}

	regs := l.observers.snapshot(kind)
	l.mu.Unlock()

	dispatch(l.logger, kind, regs, nil, nil)

	return nil
}

// Append adds item at the end of the list.
func (l *List[T]) Append(item T) {
	_ = l.mutate(ListAppend, func() error {
		l.items = append(l.items, item)
		return nil
	})
}

// Extend adds all items at the end of the list in one operation,
// emitting a single EXTEND notification.
func (l *List[T]) Extend(items []T) {
	_ = l.mutate(ListExtend, func() error {
		l.items = append(l.items, items...)
		return nil
	})
}

// Concat is Extend under another name, mirroring in-place concatenation.
func (l *List[T]) Concat(items []T) {
	l.Extend(items)
}

// Repeat replaces the contents with n concatenated copies of itself,
// emitting a single EXTEND notification. n <= 0 empties the list.
func (l *List[T]) Repeat(n int) {
	_ = l.mutate(ListExtend, func() error {
		if n <= 0 {
			l.items = nil
			return nil
		}

		base := l.items
		repeated := make([]T, 0, len(base)*n)
		for range n {
			repeated = append(repeated, base...)
		}
		l.items = repeated

		return nil
	})
}

// Insert places item before position i. The index is clamped to the
// valid range, so Insert never fails.
func (l *List[T]) Insert(i int, item T) {
	_ = l.mutate(ListInsert, func() error {
		if i < 0 {
			i = 0
		}
		if i > len(l.items) {
			i = len(l.items)
		}

		l.items = append(l.items, item)
		copy(l.items[i+1:], l.items[i:])
		l.items[i] = item

		return nil
	})
}

// Remove deletes the first occurrence of item.
// Returns ErrItemNotFound, without notifying, when no item matches.
func (l *List[T]) Remove(item T) error {
	return l.mutate(ListRemove, func() error {
		for i := range l.items {
			if l.items[i] == item {
				l.items = append(l.items[:i:i], l.items[i+1:]...)
				return nil
			}
		}

		return ErrItemNotFound
	})
}

// Pop removes and returns the last item.
// Returns ErrIndexOutOfRange, without notifying, when the list is empty.
func (l *List[T]) Pop() (T, error) {
	l.mu.Lock()
	return l.popLocked(len(l.items) - 1)
}

// PopAt removes and returns the item at position i.
// Returns ErrIndexOutOfRange, without notifying, for an invalid index.
func (l *List[T]) PopAt(i int) (T, error) {
	l.mu.Lock()
	return l.popLocked(i)
}

// popLocked expects the lock held and releases it on every path.
func (l *List[T]) popLocked(i int) (T, error) {
	if i < 0 || i >= len(l.items) {
		l.mu.Unlock()

		var zero T
		return zero, ErrIndexOutOfRange
	}

	item := l.items[i]
	l.items = append(l.items[:i:i], l.items[i+1:]...)
	regs := l.observers.snapshot(ListRemove)
	l.mu.Unlock()

	dispatch(l.logger, ListRemove, regs, nil, nil)

	return item, nil
}

// DeleteAt removes the item at position i.
// Returns ErrIndexOutOfRange, without notifying, for an invalid index.
func (l *List[T]) DeleteAt(i int) error {
	return l.mutate(ListRemove, func() error {
		if i < 0 || i >= len(l.items) {
			return ErrIndexOutOfRange
		}

		l.items = append(l.items[:i:i], l.items[i+1:]...)

		return nil
	})
}

// SetAt replaces the item at position i.
// Returns ErrIndexOutOfRange, without notifying, for an invalid index.
func (l *List[T]) SetAt(i int, item T) error {
	return l.mutate(ListUpdate, func() error {
		if i < 0 || i >= len(l.items) {
			return ErrIndexOutOfRange
		}

		l.items[i] = item

		return nil
	})
}

// Clear removes all items.
func (l *List[T]) Clear() {
	_ = l.mutate(ListClear, func() error {
		l.items = nil
		return nil
	})
}

// Reverse reverses the order of the items in place.
func (l *List[T]) Reverse() {
	_ = l.mutate(ListUpdate, func() error {
		for i, j := 0, len(l.items)-1; i < j; i, j = i+1, j-1 {
			l.items[i], l.items[j] = l.items[j], l.items[i]
		}
		return nil
	})
}

// Sort sorts the items in place using less, keeping equal items in
// their original order.
func (l *List[T]) Sort(less func(a, b T) bool) {
	_ = l.mutate(ListUpdate, func() error {
		sort.SliceStable(l.items, func(i, j int) bool {
			return less(l.items[i], l.items[j])
		})
		return nil
	})
}

// Len returns the number of items.
func (l *List[T]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.items)
}

// Get returns the item at position i.
func (l *List[T]) Get(i int) (T, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if i < 0 || i >= len(l.items) {
		var zero T
		return zero, ErrIndexOutOfRange
	}

	return l.items[i], nil
}

// Items returns a copy of the current contents.
func (l *List[T]) Items() []T {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]T(nil), l.items...)
}

// MarshalJSON serializes the current contents as a JSON array.
func (l *List[T]) MarshalJSON() ([]byte, error) {
	items := l.Items()
	if items == nil {
		items = []T{}
	}

	return jsoniter.ConfigFastest.Marshal(items)
}

// SnapshotJSON returns the current contents as a JSON array.
func (l *List[T]) SnapshotJSON() ([]byte, error) {
	return l.MarshalJSON()
}
