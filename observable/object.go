package observable

import (
	"sync"
)

// AllProperties is the wildcard subscription key: observers registered
// under it are notified of changes to every property of the Object,
// before the property-specific observers. Properties must not use it
// as a name.
const AllProperties = "*"

// Object holds named, independently observable values. Properties are
// declared against an Object with NewProperty; each carries a default
// returned before the first write. Setting a property to a value equal
// to its current one is a no-op: no hook call, no notification.
type Object struct {
	mu        sync.Mutex
	values    map[string]any
	observers *registry[string]
	logger    Logger

	// dependents is reserved for dependent-property propagation.
	dependents map[string][]string
}

// ObjectOption defines a functional option for configuring an Object.
type ObjectOption func(*Object) error

// WithObjectLogger sets the logger for the Object.
// The logger receives warnings for unknown-handle removals and error
// records for observers that panic during notification.
func WithObjectLogger(logger Logger) ObjectOption {
	return func(o *Object) error {
		if logger == nil {
			return ErrNilLogger
		}

		o.logger = logger

		return nil
	}
}

// NewObject creates an Object with no properties set.
func NewObject(opts ...ObjectOption) (*Object, error) {
	o := &Object{
		values:     make(map[string]any),
		observers:  newRegistry[string](AllProperties),
		logger:     defaultLogger{},
		dependents: make(map[string][]string),
	}

	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}

	return o, nil
}

// AddObserver registers an observer for changes to the named property,
// or to every property when property is AllProperties. Object
// notifications carry the old and new values, dispatched to each
// observer per its variant: OnChange with no arguments, OnNewValue
// with the new value, OnTransition with old and new.
func (o *Object) AddObserver(property string, obs Observer) (Subscription, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.observers.add(property, obs)
}

// RemoveObserver unregisters the registration identified by sub.
// An unknown handle is logged as a warning, not an error.
func (o *Object) RemoveObserver(sub Subscription) {
	o.mu.Lock()
	removed := o.observers.remove(sub)
	o.mu.Unlock()

	if !removed {
		o.logger.Warn("observer not found for removal", "subscription", sub.String())
	}
}

// Property is a named observable value of an Object, declared with a
// default and an optional on-changed hook.
type Property[T comparable] struct {
	obj       *Object
	name      string
	def       T
	onChanged func(oldValue, newValue T)
}

// PropertyOption defines a functional option for declaring a Property.
type PropertyOption[T comparable] func(*Property[T])

// WithOnChanged supplies the property's change hook, invoked
// synchronously with (old, new) on every effective change, before the
// registered observers. Unlike registry-dispatched observers, the hook
// is a direct call: a panic in it propagates to Set's caller.
func WithOnChanged[T comparable](fn func(oldValue, newValue T)) PropertyOption[T] {
	return func(p *Property[T]) {
		p.onChanged = fn
	}
}

// NewProperty declares a named property of obj with a default value,
// returned by Get until the first effective Set.
func NewProperty[T comparable](obj *Object, name string, defaultValue T, opts ...PropertyOption[T]) *Property[T] {
	p := &Property[T]{
		obj:  obj,
		name: name,
		def:  defaultValue,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Name returns the property's name.
func (p *Property[T]) Name() string {
	return p.name
}

// Get returns the current value, or the declared default before the
// first write.
func (p *Property[T]) Get() T {
	p.obj.mu.Lock()
	defer p.obj.mu.Unlock()

	return p.currentLocked()
}

// Set stores value and notifies. When value equals the current one the
// call returns immediately without storing, without invoking the
// on-changed hook and without notifying.
func (p *Property[T]) Set(value T) {
	p.obj.mu.Lock()

	current := p.currentLocked()
	if value == current {
		p.obj.mu.Unlock()
		return
	}

	p.obj.values[p.name] = value
	regs := p.obj.observers.snapshot(p.name)
	p.obj.mu.Unlock()

	if p.onChanged != nil {
		p.onChanged(current, value)
	}

	dispatch(p.obj.logger, p.name, regs, current, value)
}

func (p *Property[T]) currentLocked() T {
	if v, ok := p.obj.values[p.name]; ok {
		return v.(T)
	}

	return p.def
}
