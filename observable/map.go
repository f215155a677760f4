package observable

import (
	"sync"

	jsoniter "github.com/json-iterator/go"
)

// MapModification classifies the mutation a Map notification reports.
type MapModification int

const (
	MapAll MapModification = iota
	MapUpdated
	MapExtend
	MapRemove
	MapClear
)

func (m MapModification) String() string {
	switch m {
	case MapAll:
		return "ALL"
	case MapUpdated:
		return "UPDATED"
	case MapExtend:
		return "EXTEND"
	case MapRemove:
		return "REMOVE"
	case MapClear:
		return "CLEAR"
	default:
		return "UNKNOWN"
	}
}

// Map is a thread-safe, observable key/value store. Every mutating
// operation is applied under the instance lock and followed by exactly
// one notification tagged with the operation's MapModification kind,
// delivered after the lock is released.
type Map[K comparable, V any] struct {
	mu        sync.Mutex
	entries   map[K]V
	observers *registry[MapModification]
	logger    Logger
}

// MapOption defines a functional option for configuring a Map.
type MapOption[K comparable, V any] func(*Map[K, V]) error

// WithEntries sets the initial contents of the Map. The map is copied.
func WithEntries[K comparable, V any](entries map[K]V) MapOption[K, V] {
	return func(m *Map[K, V]) error {
		for k, v := range entries {
			m.entries[k] = v
		}
		return nil
	}
}

// WithMapLogger sets the logger for the Map.
// The logger receives warnings for unknown-handle removals and error
// records for observers that panic during notification.
func WithMapLogger[K comparable, V any](logger Logger) MapOption[K, V] {
	return func(m *Map[K, V]) error {
		if logger == nil {
			return ErrNilLogger
		}

		m.logger = logger

		return nil
	}
}

// NewMap creates an observable Map, empty unless WithEntries is given.
func NewMap[K comparable, V any](opts ...MapOption[K, V]) (*Map[K, V], error) {
	m := &Map[K, V]{
		entries:   make(map[K]V),
		observers: newRegistry[MapModification](MapAll),
		logger:    defaultLogger{},
	}

	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// AddObserver registers an observer for every modification kind.
func (m *Map[K, V]) AddObserver(obs Observer) (Subscription, error) {
	return m.AddObserverFor(MapAll, obs)
}

// AddObserverFor registers an observer for one modification kind.
// Observers registered for MapAll are additionally invoked, before the
// kind-specific ones, on every notification.
func (m *Map[K, V]) AddObserverFor(kind MapModification, obs Observer) (Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.observers.add(kind, obs)
}

// RemoveObserver unregisters the registration identified by sub.
// An unknown handle is logged as a warning, not an error.
func (m *Map[K, V]) RemoveObserver(sub Subscription) {
	m.mu.Lock()
	removed := m.observers.remove(sub)
	m.mu.Unlock()

	if !removed {
		m.logger.Warn("observer not found for removal", "subscription", sub.String())
	}
}

// mutate runs fn under the lock and, if it succeeds, notifies with kind.
func (m *Map[K, V]) mutate(kind MapModification, fn func() error) error {
	m.mu.Lock()

	if err := fn(); err != nil {
		m.mu.Unlock()
		return err
	}

	regs := m.observers.snapshot(kind)
	m.mu.Unlock()

	dispatch(m.logger, kind, regs, nil, nil)

	return nil
}

// Set stores value under key, inserting or overwriting.
func (m *Map[K, V]) Set(key K, value V) {
	_ = m.mutate(MapUpdated, func() error {
		m.entries[key] = value
		return nil
	})
}

// Delete removes key.
// Returns ErrKeyNotFound, without notifying, when key is absent.
func (m *Map[K, V]) Delete(key K) error {
	return m.mutate(MapRemove, func() error {
		if _, ok := m.entries[key]; !ok {
			return ErrKeyNotFound
		}

		delete(m.entries, key)

		return nil
	})
}

// Merge stores every entry of other, overwriting existing keys, in one
// operation with a single EXTEND notification.
func (m *Map[K, V]) Merge(other map[K]V) {
	_ = m.mutate(MapExtend, func() error {
		for k, v := range other {
			m.entries[k] = v
		}
		return nil
	})
}

// Clear removes all entries.
func (m *Map[K, V]) Clear() {
	_ = m.mutate(MapClear, func() error {
		m.entries = make(map[K]V)
		return nil
	})
}

// Pop removes key and returns its value, or fallback when key is
// absent. A REMOVE notification is emitted in either case.
func (m *Map[K, V]) Pop(key K, fallback V) V {
	value := fallback

	_ = m.mutate(MapRemove, func() error {
		if v, ok := m.entries[key]; ok {
			value = v
			delete(m.entries, key)
		}
		return nil
	})

	return value
}

// PopAny removes and returns an arbitrary entry.
// Returns ErrEmptyContainer, without notifying, when the map is empty.
func (m *Map[K, V]) PopAny() (K, V, error) {
	var (
		key   K
		value V
	)

	err := m.mutate(MapRemove, func() error {
		for k, v := range m.entries {
			key, value = k, v
			delete(m.entries, k)
			return nil
		}

		return ErrEmptyContainer
	})

	return key, value, err
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.entries)
}

// Get returns the value stored under key.
func (m *Map[K, V]) Get(key K) (V, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	value, ok := m.entries[key]

	return value, ok
}

// Keys returns the current keys in unspecified order.
func (m *Map[K, V]) Keys() []K {
	m.mu.Lock()
	defer m.mu.Unlock()

	keys := make([]K, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}

	return keys
}

// Entries returns a copy of the current contents.
func (m *Map[K, V]) Entries() map[K]V {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries := make(map[K]V, len(m.entries))
	for k, v := range m.entries {
		entries[k] = v
	}

	return entries
}

// MarshalJSON serializes the current contents as a JSON object.
func (m *Map[K, V]) MarshalJSON() ([]byte, error) {
	return jsoniter.ConfigFastest.Marshal(m.Entries())
}

// SnapshotJSON returns the current contents as a JSON object.
func (m *Map[K, V]) SnapshotJSON() ([]byte, error) {
	return m.MarshalJSON()
}
