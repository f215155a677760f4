package observable

import (
	"github.com/google/uuid"
)

type observerArity int

const (
	arityNone observerArity = iota
	arityNewValue
	arityOldAndNew
)

// Observer is a callback registered against a container or object,
// tagged with the argument shape it expects. Construct one with
// OnChange, OnNewValue or OnTransition; the zero value is invalid and
// is rejected by AddObserver.
type Observer struct {
	name         string
	arity        observerArity
	onChange     func()
	onNewValue   func(newValue any)
	onTransition func(oldValue, newValue any)
}

// OnChange builds an observer invoked without arguments.
func OnChange(fn func()) Observer {
	return Observer{arity: arityNone, onChange: fn}
}

// OnNewValue builds an observer invoked with the value after the change.
func OnNewValue(fn func(newValue any)) Observer {
	return Observer{arity: arityNewValue, onNewValue: fn}
}

// OnTransition builds an observer invoked with the values before and after the change.
func OnTransition(fn func(oldValue, newValue any)) Observer {
	return Observer{arity: arityOldAndNew, onTransition: fn}
}

// Named returns a copy of the observer carrying an identifying name,
// used in log records when the observer panics during dispatch.
func (o Observer) Named(name string) Observer {
	o.name = name
	return o
}

func (o Observer) valid() bool {
	switch o.arity {
	case arityNone:
		return o.onChange != nil
	case arityNewValue:
		return o.onNewValue != nil
	case arityOldAndNew:
		return o.onTransition != nil
	}

	return false
}

func (o Observer) call(oldValue, newValue any) {
	switch o.arity {
	case arityNone:
		o.onChange()
	case arityNewValue:
		o.onNewValue(newValue)
	case arityOldAndNew:
		o.onTransition(oldValue, newValue)
	}
}

// identity returns the log-facing name for the observer registered under sub.
func (o Observer) identity(sub Subscription) string {
	if o.name != "" {
		return o.name
	}

	return sub.String()
}

// Subscription is an opaque handle identifying a single observer
// registration. Callers keep it to remove the registration later;
// registrations are never removed implicitly.
type Subscription struct {
	id uuid.UUID
}

func newSubscription() Subscription {
	return Subscription{id: uuid.New()}
}

func (s Subscription) String() string {
	return s.id.String()
}
