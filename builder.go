package vesselx

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CompositionMetadataKey is the metadata key a Builder stamps on every
// registration it performs.
const CompositionMetadataKey = "vesselx.composition"

// Builder wraps a container for the composition phase. It implements
// Registry, so every Try* operation accepts it, and it reports each
// try-registration to its logger and observers.
//
// A Builder holds no registration state of its own.
type Builder struct {
	container     Vessel
	logger        *zap.Logger
	observers     []Observer
	compositionID string
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger used for registration events.
func WithLogger(logger *zap.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithObserver adds observers. They are called in the order they are added.
func WithObserver(observers ...Observer) Option {
	return func(b *Builder) {
		b.observers = append(b.observers, observers...)
	}
}

// WithCompositionID overrides the generated composition id.
func WithCompositionID(id string) Option {
	return func(b *Builder) {
		b.compositionID = id
	}
}

// NewBuilder creates a Builder around c. A nil c gets a fresh container.
func NewBuilder(c Vessel, opts ...Option) *Builder {
	if c == nil {
		c = New()
	}

	b := &Builder{
		container:     c,
		logger:        zap.NewNop(),
		compositionID: uuid.NewString(),
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Container returns the wrapped container.
func (b *Builder) Container() Vessel {
	return b.container
}

// CompositionID returns the id stamped on registrations made through b.
func (b *Builder) CompositionID() string {
	return b.compositionID
}

// Has implements Registry.
func (b *Builder) Has(name string) bool {
	return b.container.Has(name)
}

// Register implements Registry.
func (b *Builder) Register(name string, factory Factory, opts ...RegisterOption) error {
	if b.compositionID != "" {
		opts = append(opts, WithMetadata(CompositionMetadataKey, b.compositionID))
	}
	return b.container.Register(name, factory, opts...)
}

func (b *Builder) notify(e Event) {
	fields := []zap.Field{
		zap.Strings("keys", Keys(e.Keys...)),
		zap.String("composition", b.compositionID),
	}

	switch e.Outcome {
	case OutcomeRegistered:
		b.logger.Debug("registered", fields...)
	case OutcomeSkipped:
		b.logger.Debug("skipped", append(fields, zap.String("taken", e.Taken.Name()))...)
	case OutcomeFailed:
		b.logger.Warn("registration failed", append(fields, zap.Error(e.Err))...)
	}

	for _, o := range b.observers {
		o.Observe(e)
	}
}
