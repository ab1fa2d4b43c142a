package demos

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stamped is a demo that remembers which factory built it.
type stamped struct {
	id    string
	hits  int
	label string
}

func (s *stamped) Name() string        { return s.id }
func (s *stamped) Description() string { return s.label }
func (s *stamped) Run(_ context.Context, out io.Writer) error {
	s.hits++
	_, err := fmt.Fprintf(out, "%s:%d", s.id, s.hits)
	return err
}

func factoryFor(id, label string) Factory {
	return func() Demo { return &stamped{id: id, label: label} }
}

func ids(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ID)
	}
	sort.Strings(out)
	return out
}

func TestRegistry_EmptyIsValid(t *testing.T) {
	t.Parallel()
	r := NewRegistry(zerolog.Nop())

	require.Empty(t, r.List())
	require.Equal(t, 0, r.Len())

	d, ok := r.Create("anything")
	require.False(t, ok)
	require.Nil(t, d)
}

func TestRegistry_Scenario(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	r := NewRegistry(zerolog.Nop())
	r.Register("a", "Alpha", "desc-a", factoryFor("a", "from a"))
	r.Register("b", "Beta", "", factoryFor("b", "from b"))

	// --- Act ---
	entries := r.List()

	// --- Assert ---
	require.Len(t, entries, 2)
	require.Equal(t, []string{"a", "b"}, ids(entries))

	b, ok := r.Get("b")
	require.True(t, ok)
	assert.Equal(t, "Beta", b.DisplayName)
	assert.Empty(t, b.Description)

	d, ok := r.Create("a")
	require.True(t, ok)
	assert.Equal(t, "a", d.Name())

	d, ok = r.Create("c")
	assert.False(t, ok)
	assert.Nil(t, d)
}

func TestRegistry_DistinctIDsKeepLatestPayload(t *testing.T) {
	t.Parallel()
	r := NewRegistry(zerolog.Nop())

	for i := 0; i < 10; i++ {
		id := fmt.Sprintf("demo-%d", i)
		r.Register(id, "Name "+id, "desc "+id, factoryFor(id, id))
	}

	entries := r.List()
	require.Len(t, entries, 10)
	for _, e := range entries {
		assert.Equal(t, "Name "+e.ID, e.DisplayName)
		assert.Equal(t, "desc "+e.ID, e.Description)
		require.NotNil(t, e.Factory)
		assert.Equal(t, e.ID, e.Factory().Name())
	}
}

func TestRegistry_DuplicateIDLastWriteWins(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	r := NewRegistry(zerolog.Nop())
	r.Register("dup", "First", "first payload", factoryFor("dup", "first"))
	r.Register("dup", "Second", "second payload", factoryFor("dup", "second"))

	// --- Act ---
	entries := r.List()
	d, ok := r.Create("dup")

	// --- Assert ---
	require.Len(t, entries, 1)
	assert.Equal(t, "Second", entries[0].DisplayName)
	assert.Equal(t, "second payload", entries[0].Description)
	require.True(t, ok)
	assert.Equal(t, "second", d.Description(), "Create should use the factory from the latest registration")
}

func TestRegistry_EmptyIDIsStored(t *testing.T) {
	t.Parallel()
	r := NewRegistry(zerolog.Nop())

	r.Register("", "Nameless", "", factoryFor("", "nameless"))

	require.Equal(t, 1, r.Len())
	d, ok := r.Create("")
	require.True(t, ok)
	assert.Equal(t, "nameless", d.Description())
}

func TestRegistry_CreateReturnsFreshInstances(t *testing.T) {
	t.Parallel()
	r := NewRegistry(zerolog.Nop())
	r.Register("a", "Alpha", "", factoryFor("a", ""))

	first, ok := r.Create("a")
	require.True(t, ok)
	second, ok := r.Create("a")
	require.True(t, ok)

	require.NotSame(t, first.(*stamped), second.(*stamped))

	first.(*stamped).label = "mutated"
	first.(*stamped).hits = 41
	assert.Empty(t, second.Description())
	assert.Equal(t, 0, second.(*stamped).hits)
}

func TestRegistry_NilFactoryIsNotFound(t *testing.T) {
	t.Parallel()
	r := NewRegistry(zerolog.Nop())
	r.Register("nil-factory", "Broken", "", nil)
	r.Register("nil-demo", "Broken too", "", func() Demo { return nil })

	require.Equal(t, 2, r.Len())

	d, ok := r.Create("nil-factory")
	assert.False(t, ok)
	assert.Nil(t, d)

	d, ok = r.Create("nil-demo")
	assert.False(t, ok)
	assert.Nil(t, d)
}

func TestRegistry_ListIsSnapshot(t *testing.T) {
	t.Parallel()
	r := NewRegistry(zerolog.Nop())
	r.Register("a", "Alpha", "", factoryFor("a", ""))

	entries := r.List()
	entries[0].DisplayName = "changed"
	r.Register("b", "Beta", "", factoryFor("b", ""))

	require.Len(t, entries, 1)
	got, ok := r.Get("a")
	require.True(t, ok)
	assert.Equal(t, "Alpha", got.DisplayName)
}

type moduleFunc func(r *Registry)

func (f moduleFunc) Register(r *Registry) { f(r) }

func TestRegistry_RegisterModulesInOrder(t *testing.T) {
	t.Parallel()
	r := NewRegistry(zerolog.Nop())

	r.RegisterModules(
		moduleFunc(func(r *Registry) { r.Register("x", "Old", "", factoryFor("x", "old")) }),
		moduleFunc(func(r *Registry) {
			r.Register("x", "New", "", factoryFor("x", "new"))
			r.Register("y", "Why", "", factoryFor("y", ""))
		}),
	)

	require.Equal(t, []string{"x", "y"}, ids(r.List()))
	x, _ := r.Get("x")
	assert.Equal(t, "New", x.DisplayName)
}

func TestDefault_AccumulatesAcrossCallSites(t *testing.T) {
	// Default is process-wide, so ids are unique to this test.
	Default().Register("default-test-one", "One", "", factoryFor("default-test-one", ""))
	Default().Register("default-test-two", "Two", "", factoryFor("default-test-two", ""))

	require.Same(t, Default(), Default())

	seen := map[string]bool{}
	for _, e := range Default().List() {
		seen[e.ID] = true
	}
	assert.True(t, seen["default-test-one"])
	assert.True(t, seen["default-test-two"])
}

func TestRegistry_ConcurrentRegisterAndCreate(t *testing.T) {
	t.Parallel()
	r := NewRegistry(zerolog.Nop())
	r.Register("base", "Base", "", factoryFor("base", ""))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("w-%d", i)
			r.Register(id, id, "", factoryFor(id, ""))
		}(i)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_, ok := r.Create("base")
				assert.True(t, ok)
				_ = r.List()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 9, r.Len())
}
