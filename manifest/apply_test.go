package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xraph/vesselx"
)

func constant(v any) vesselx.Factory {
	return func(c vesselx.Vessel) (any, error) {
		return v, nil
	}
}

func testCatalog() *Catalog {
	return NewCatalog().
		MustAdd("memory-cache", constant("memory")).
		MustAdd("ticker", constant("tick")).
		MustAdd("hud", constant("hud")).
		MustAdd("p", constant("p"))
}

func TestCatalog(t *testing.T) {
	cat := NewCatalog()
	require.NoError(t, cat.Add("b", constant(1)))
	require.NoError(t, cat.Add("a", constant(2)))

	assert.ErrorIs(t, cat.Add("a", constant(3)), ErrProviderExistsSentinel)
	assert.ErrorIs(t, cat.Add("c", nil), vesselx.ErrInvalidFactory)

	_, ok := cat.Lookup("a")
	assert.True(t, ok)
	_, ok = cat.Lookup("z")
	assert.False(t, ok)

	assert.Equal(t, []string{"a", "b"}, cat.Names())
	assert.Panics(t, func() { cat.MustAdd("a", constant(4)) })
}

func TestApply(t *testing.T) {
	m, err := Parse([]byte(baseYAML), FormatYAML)
	require.NoError(t, err)

	c := vesselx.New()
	report, err := Apply(c, testCatalog(), m)
	require.NoError(t, err)

	assert.Equal(t, []string{"cache", "ticker", "hud"}, report.Registered())
	assert.Empty(t, report.Skipped())

	require.Len(t, report.Entries, 3)
	assert.Equal(t, Entry{
		Section:  SectionServices,
		Keys:     []string{"cache", "kv"},
		Provider: "memory-cache",
		Lifetime: "transient",
		Outcome:  "registered",
	}, report.Entries[0])

	got, err := c.Resolve("kv")
	require.NoError(t, err)
	assert.Equal(t, "memory", got)

	info := c.Inspect("cache")
	assert.Equal(t, "transient", info.Lifecycle)
	assert.Equal(t, "platform", info.Metadata["owner"])

	assert.Equal(t, []string{"ticker"}, vesselx.EntryPoints(c))
	assert.Equal(t, []string{"hud"}, vesselx.Components(c, "ui/root"))
	assert.Equal(t, "HUD", c.Inspect("hud").Metadata[vesselx.ComponentNameMetadataKey])
}

func TestApply_SkipsTakenKeys(t *testing.T) {
	c := vesselx.New()
	require.NoError(t, c.Register("kv", constant("from code")))

	m := &Manifest{
		Services: []Binding{
			{Key: "cache", Provider: "memory-cache", As: []string{"kv"}},
			{Key: "a", Provider: "p"},
			{Key: "a", Provider: "p"},
		},
	}

	report, err := Apply(c, testCatalog(), m)
	require.NoError(t, err)

	assert.Equal(t, []string{"a"}, report.Registered())
	assert.Equal(t, []string{"cache", "a"}, report.Skipped())
	assert.Equal(t, "kv", report.Entries[0].Taken)
	assert.Equal(t, "a", report.Entries[2].Taken)

	assert.False(t, c.Has("cache"))
	got, err := c.Resolve("kv")
	require.NoError(t, err)
	assert.Equal(t, "from code", got)
}

func TestApply_IsIdempotent(t *testing.T) {
	m, err := Parse([]byte(baseYAML), FormatYAML)
	require.NoError(t, err)

	c := vesselx.New()
	_, err = Apply(c, testCatalog(), m)
	require.NoError(t, err)

	report, err := Apply(c, testCatalog(), m)
	require.NoError(t, err)
	assert.Empty(t, report.Registered())
	assert.Len(t, report.Skipped(), 3)
}

func TestApply_UnknownProviderLeavesContainerUntouched(t *testing.T) {
	c := vesselx.New()
	m := &Manifest{
		Services: []Binding{
			{Key: "a", Provider: "p"},
			{Key: "b", Provider: "missing"},
		},
	}

	report, err := Apply(c, testCatalog(), m)
	assert.Nil(t, report)
	assert.ErrorIs(t, err, ErrUnknownProviderSentinel)
	assert.False(t, c.Has("a"))
}

func TestApply_InvalidManifest(t *testing.T) {
	c := vesselx.New()

	_, err := Apply(c, testCatalog(), &Manifest{Services: []Binding{{Key: "a"}}})
	assert.ErrorIs(t, err, ErrInvalidManifestSentinel)
	assert.False(t, c.Has("a"))
}

func TestApply_ThroughBuilder(t *testing.T) {
	var events []vesselx.Event
	b := vesselx.NewBuilder(nil, vesselx.WithObserver(vesselx.ObserverFunc(func(e vesselx.Event) {
		events = append(events, e)
	})))

	m := &Manifest{Services: []Binding{{Key: "a", Provider: "p"}, {Key: "a", Provider: "p"}}}
	_, err := Apply(b, testCatalog(), m)
	require.NoError(t, err)

	require.Len(t, events, 2)
	assert.Equal(t, vesselx.OutcomeRegistered, events[0].Outcome)
	assert.Equal(t, vesselx.OutcomeSkipped, events[1].Outcome)
	assert.Equal(t, []string{"a"}, vesselx.Composed(b.Container(), b.CompositionID()))
}
