package vesselx

// Outcome is the result of one try-registration.
type Outcome int

const (
	// OutcomeRegistered means the keys were absent and are now bound.
	OutcomeRegistered Outcome = iota
	// OutcomeSkipped means a key was already registered; nothing changed.
	OutcomeSkipped
	// OutcomeFailed means the container rejected the registration.
	OutcomeFailed
)

// String returns the outcome label.
func (o Outcome) String() string {
	switch o {
	case OutcomeRegistered:
		return "registered"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Event describes one try-registration.
type Event struct {
	Keys    []Key
	Outcome Outcome
	// Taken is the key that caused a skip.
	Taken Key
	// Err is the container error behind a failure.
	Err error
}

// Observer receives registration events from a Builder.
// Observers can be used for logging, metrics, testing, etc.
type Observer interface {
	Observe(e Event)
}

// ObserverFunc wraps a function as an Observer.
type ObserverFunc func(e Event)

// Observe implements Observer.
func (f ObserverFunc) Observe(e Event) {
	if f != nil {
		f(e)
	}
}
