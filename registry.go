package vesselx

// Try runs register only when none of keys is registered in r.
//
// Keys are checked in order and the first one already present stops the
// check: Try then reports false without calling register. Otherwise register
// is called exactly once and Try reports true. An error from register is
// returned unchanged. A duplicate is never an error.
//
// Example:
//
//	ok, err := vesselx.Try(c, func() error {
//	    return c.Register("cache", newCache, vessel.Singleton())
//	}, vesselx.NameKey("cache"))
func Try(r Registry, register func() error, keys ...Key) (bool, error) {
	if err := validateKeys(keys); err != nil {
		return false, err
	}

	if register == nil {
		return false, ErrInvalidFactory
	}

	if taken, ok := FirstTaken(r, keys...); ok {
		notify(r, Event{Keys: keys, Outcome: OutcomeSkipped, Taken: taken})
		return false, nil
	}

	if err := register(); err != nil {
		notify(r, Event{Keys: keys, Outcome: OutcomeFailed, Err: err})
		return false, err
	}

	notify(r, Event{Keys: keys, Outcome: OutcomeRegistered})

	return true, nil
}

// FirstTaken returns the first of keys already registered in r.
func FirstTaken(r Registry, keys ...Key) (Key, bool) {
	for _, k := range keys {
		if r.Has(k.Name()) {
			return k, true
		}
	}
	return Key{}, false
}

// validateKeys rejects empty, zero and repeated keys.
func validateKeys(keys []Key) error {
	if len(keys) == 0 {
		return ErrNoKeys
	}

	seen := make(map[string]struct{}, len(keys))
	for i, k := range keys {
		if k.IsZero() {
			return ErrInvalidKey(i)
		}

		name := k.Name()
		if _, dup := seen[name]; dup {
			return ErrDuplicateKey(k)
		}
		seen[name] = struct{}{}
	}

	return nil
}

// notifier is implemented by registries that want registration events.
type notifier interface {
	notify(Event)
}

func notify(r Registry, e Event) {
	if n, ok := r.(notifier); ok {
		n.notify(e)
	}
}
