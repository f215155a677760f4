package observable

// registry stores insertion-ordered observer registrations per
// subscription key, plus a handle index for removal. All methods must
// be called with the owning instance's lock held; dispatch of a
// snapshot happens after the lock is released.
type registry[K comparable] struct {
	wildcard K
	entries  map[K][]registration
	index    map[Subscription]K
}

type registration struct {
	sub Subscription
	obs Observer
}

func newRegistry[K comparable](wildcard K) *registry[K] {
	return &registry[K]{
		wildcard: wildcard,
		entries:  make(map[K][]registration),
		index:    make(map[Subscription]K),
	}
}

func (r *registry[K]) add(key K, obs Observer) (Subscription, error) {
	if !obs.valid() {
		return Subscription{}, ErrInvalidObserver
	}

	sub := newSubscription()
	r.entries[key] = append(r.entries[key], registration{sub: sub, obs: obs})
	r.index[sub] = key

	return sub, nil
}

func (r *registry[K]) remove(sub Subscription) bool {
	key, ok := r.index[sub]
	if !ok {
		return false
	}

	delete(r.index, sub)

	regs := r.entries[key]
	for i := range regs {
		if regs[i].sub == sub {
			r.entries[key] = append(regs[:i:i], regs[i+1:]...)
			break
		}
	}

	if len(r.entries[key]) == 0 {
		delete(r.entries, key)
	}

	return true
}

// snapshot returns the registrations to invoke for key: wildcard
// registrations first, then key-specific ones unless key is the
// wildcard itself (which would invoke them twice).
func (r *registry[K]) snapshot(key K) []registration {
	regs := append([]registration(nil), r.entries[r.wildcard]...)
	if key != r.wildcard {
		regs = append(regs, r.entries[key]...)
	}

	return regs
}

// dispatch synchronously invokes regs in order, outside any lock.
// A panicking observer is logged with the subscription key and the
// observer's identity and does not stop the remaining observers.
func dispatch[K comparable](logger Logger, key K, regs []registration, oldValue, newValue any) {
	for _, reg := range regs {
		invoke(logger, key, reg, oldValue, newValue)
	}
}

func invoke[K comparable](logger Logger, key K, reg registration, oldValue, newValue any) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("observer panicked during notification",
				"key", key,
				"observer", reg.obs.identity(reg.sub),
				"panic", rec,
			)
		}
	}()

	reg.obs.call(oldValue, newValue)
}
