package vesselx

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestBuilder_DefaultsToFreshContainer(t *testing.T) {
	b := NewBuilder(nil)

	require.NotNil(t, b.Container())
	assert.NotEmpty(t, b.CompositionID())
	assert.NotEqual(t, b.CompositionID(), NewBuilder(nil).CompositionID())
}

func TestBuilder_StampsComposition(t *testing.T) {
	c := New()
	b := NewBuilder(c, WithCompositionID("boot-1"))

	ok, err := TryRegisterAs(b, newFileStore, Singleton, KeyOf[testReader](), KeyOf[testWriter]())
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, "boot-1", c.Inspect(KeyOf[testReader]().Name()).Metadata[CompositionMetadataKey])
	assert.Equal(t, "boot-1", c.Inspect(KeyOf[testWriter]().Name()).Metadata[CompositionMetadataKey])

	require.NoError(t, c.Register("outside", constant(1)))
	assert.Equal(t, []string{KeyOf[testReader]().Name(), KeyOf[testWriter]().Name()}, Composed(c, "boot-1"))
}

func TestBuilder_SeesExistingRegistrations(t *testing.T) {
	c := New()
	require.NoError(t, c.Register("cache", constant("direct")))

	b := NewBuilder(c)
	ok, err := TryRegisterType(b, NameKey("cache"), constant("builder"), Singleton)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBuilder_Observers(t *testing.T) {
	var events []Event
	b := NewBuilder(nil,
		WithObserver(ObserverFunc(func(e Event) {
			events = append(events, e)
		})),
	)

	_, err := TryRegisterInstance(b, &foo{})
	require.NoError(t, err)
	_, err = TryRegisterInstance(b, &foo{})
	require.NoError(t, err)

	require.Len(t, events, 2)
	assert.Equal(t, OutcomeRegistered, events[0].Outcome)
	assert.Equal(t, []Key{KeyOf[*foo]()}, events[0].Keys)
	assert.Equal(t, OutcomeSkipped, events[1].Outcome)
	assert.Equal(t, KeyOf[*foo](), events[1].Taken)
}

func TestBuilder_ObserverOrder(t *testing.T) {
	var calls []string
	b := NewBuilder(nil,
		WithObserver(ObserverFunc(func(Event) { calls = append(calls, "first") })),
		WithObserver(ObserverFunc(func(Event) { calls = append(calls, "second") })),
	)

	_, err := TryRegisterInstance(b, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestBuilder_Logging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	b := NewBuilder(nil, WithLogger(zap.New(core)), WithCompositionID("c1"))

	_, err := TryRegisterInstance(b, &foo{})
	require.NoError(t, err)
	_, err = TryRegisterInstance(b, &foo{})
	require.NoError(t, err)

	registered := logs.FilterMessage("registered").All()
	require.Len(t, registered, 1)
	assert.Equal(t, "c1", registered[0].ContextMap()["composition"])

	skipped := logs.FilterMessage("skipped").All()
	require.Len(t, skipped, 1)
	assert.Equal(t, KeyOf[*foo]().Name(), skipped[0].ContextMap()["taken"])
}

func TestBuilder_LogsFailures(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	expectedErr := errors.New("rejected")

	var failed []Event
	b := NewBuilder(nil,
		WithLogger(zap.New(core)),
		WithObserver(ObserverFunc(func(e Event) {
			if e.Outcome == OutcomeFailed {
				failed = append(failed, e)
			}
		})),
	)

	ok, err := Try(b, func() error { return expectedErr }, NameKey("svc"))
	assert.False(t, ok)
	assert.Same(t, expectedErr, err)

	assert.Equal(t, 1, logs.FilterMessage("registration failed").Len())
	require.Len(t, failed, 1)
	assert.Same(t, expectedErr, failed[0].Err)
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "registered", OutcomeRegistered.String())
	assert.Equal(t, "skipped", OutcomeSkipped.String())
	assert.Equal(t, "failed", OutcomeFailed.String())
	assert.Equal(t, "unknown", Outcome(9).String())
}
