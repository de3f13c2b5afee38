package sortmap

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var authorKey = Key{Public: "author", Internal: "authors"}

func authorTargets() map[string][]Target {
	return map[string][]Target{
		"Id":    {{Column: "id"}},
		"Genre": {{Column: "genre"}},
		"Age":   {{Column: "date_of_birth", Revert: true}},
		"Name":  {{Column: "first_name"}, {Column: "last_name"}},
	}
}

func newCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewCatalog(Entry{Key: authorKey, Targets: authorTargets()})
	require.NoError(t, err)
	return c
}

func TestRegister(t *testing.T) {
	t.Parallel()

	t.Run("rejects a duplicate pair", func(tt *testing.T) {
		c := newCatalog(tt)
		err := c.Register(authorKey, authorTargets())
		assert.True(tt, errors.Is(err, ErrDuplicateRegistration))
	})

	t.Run("allows the same public type against another entity", func(tt *testing.T) {
		c := newCatalog(tt)
		err := c.Register(Key{Public: "author", Internal: "archived_authors"}, authorTargets())
		assert.NoError(tt, err)
	})

	t.Run("rejects keys that only differ by case", func(tt *testing.T) {
		_, err := NewCatalog(Entry{
			Key: authorKey,
			Targets: map[string][]Target{
				"name": {{Column: "first_name"}},
				"NAME": {{Column: "last_name"}},
			},
		})
		assert.True(tt, errors.Is(err, ErrAmbiguousKey))
	})
}

func TestResolve(t *testing.T) {
	t.Parallel()
	c := newCatalog(t)

	m, err := c.Resolve(authorKey)
	require.NoError(t, err)
	assert.Equal(t, authorKey, m.Key())

	_, err = c.Resolve(Key{Public: "book", Internal: "books"})
	assert.True(t, errors.Is(err, ErrMappingNotFound))

	_, err = c.ValidOrderBy(Key{Public: "book", Internal: "books"}, "title")
	assert.True(t, errors.Is(err, ErrMappingNotFound))
}

func TestValid(t *testing.T) {
	t.Parallel()
	c := newCatalog(t)

	cases := []struct {
		clause string
		valid  bool
	}{
		{"", true},
		{"   ", true},
		{"name", true},
		{"NAME", true},
		{" name desc , age", true},
		{"genre DESC,id", true},
		{"name,,age", true},
		{"firstname", false},
		{"name,unknown", false},
		{"date_of_birth", false},
	}

	for _, tc := range cases {
		ok, err := c.ValidOrderBy(authorKey, tc.clause)
		require.NoError(t, err)
		assert.Equal(t, tc.valid, ok, "clause %q", tc.clause)
	}
}

func TestFirstUnknown(t *testing.T) {
	t.Parallel()
	m, err := newCatalog(t).Resolve(authorKey)
	require.NoError(t, err)

	name, ok := m.FirstUnknown("name, shoe desc, hat")
	assert.True(t, ok)
	assert.Equal(t, "shoe", name)

	_, ok = m.FirstUnknown("name desc")
	assert.False(t, ok)
}

func TestExpand(t *testing.T) {
	t.Parallel()
	m, err := newCatalog(t).Resolve(authorKey)
	require.NoError(t, err)

	t.Run("keeps token and column order", func(tt *testing.T) {
		orders, err := m.Expand("name, genre desc")
		require.NoError(tt, err)
		assert.Equal(tt, []Order{
			{Column: "first_name"},
			{Column: "last_name"},
			{Column: "genre", Descending: true},
		}, orders)
	})

	t.Run("reverts direction for reverted columns", func(tt *testing.T) {
		orders, err := m.Expand("age")
		require.NoError(tt, err)
		assert.Equal(tt, []Order{{Column: "date_of_birth", Descending: true}}, orders)

		orders, err = m.Expand("Age desc")
		require.NoError(tt, err)
		assert.Equal(tt, []Order{{Column: "date_of_birth", Descending: false}}, orders)
	})

	t.Run("empty clause expands to nothing", func(tt *testing.T) {
		orders, err := m.Expand("")
		require.NoError(tt, err)
		assert.Empty(tt, orders)
	})

	t.Run("unknown key", func(tt *testing.T) {
		_, err := m.Expand("name,height")
		assert.True(tt, errors.Is(err, ErrInvalidSortKey))
		assert.Contains(tt, err.Error(), `"height"`)
	})
}

func TestRegisterCopiesTargets(t *testing.T) {
	t.Parallel()
	targets := authorTargets()
	c, err := NewCatalog(Entry{Key: authorKey, Targets: targets})
	require.NoError(t, err)

	targets["Name"][0].Column = "mutated"

	m, err := c.Resolve(authorKey)
	require.NoError(t, err)
	orders, err := m.Expand("name")
	require.NoError(t, err)
	assert.Equal(t, "first_name", orders[0].Column)
}
