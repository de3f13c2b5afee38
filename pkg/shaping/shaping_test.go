package shaping

import (
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type album struct {
	ID    int
	Name  string
	Genre string
}

var albumSchema = NewSchema("id",
	Prop("id", func(a *album) any { return a.ID }),
	Prop("name", func(a *album) any { return a.Name }),
	Prop("genre", func(a *album) any { return a.Genre }),
)

func TestShape(t *testing.T) {
	t.Parallel()
	a := &album{ID: 7, Name: "Blue", Genre: "Jazz"}

	cases := []struct {
		name   string
		fields string
		keys   []string
	}{
		{"empty clause includes everything in declared order", "", []string{"id", "name", "genre"}},
		{"whitespace only behaves like empty", "  ", []string{"id", "name", "genre"}},
		{"identifier is forced in front", "name", []string{"id", "name"}},
		{"requested order is kept", "genre, name", []string{"id", "genre", "name"}},
		{"identifier keeps its requested position", "name,id", []string{"name", "id"}},
		{"case-insensitive", "NAME,Genre", []string{"id", "name", "genre"}},
		{"unknown fields are ignored", "name,shoe_size", []string{"id", "name"}},
		{"duplicates collapse", "name,name, NAME", []string{"id", "name"}},
		{"only unknown fields still has the identifier", "shoe_size", []string{"id"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(tt *testing.T) {
			r, err := albumSchema.Shape(a, tc.fields)
			require.NoError(tt, err)
			assert.Equal(tt, tc.keys, r.Keys())

			id, ok := r.Get("id")
			assert.True(tt, ok)
			assert.Equal(tt, 7, id)
		})
	}
}

func TestShape_ExcludesUnrequested(t *testing.T) {
	t.Parallel()

	r, err := albumSchema.Shape(&album{ID: 1, Name: "Blue", Genre: "Jazz"}, "name")
	require.NoError(t, err)

	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t, `{"id":1,"name":"Blue"}`, string(b))

	_, ok := r.Get("genre")
	assert.False(t, ok)
}

func TestShape_Idempotent(t *testing.T) {
	t.Parallel()
	a := &album{ID: 3, Name: "Kind of Blue", Genre: "Jazz"}

	first, err := albumSchema.Shape(a, "genre,name")
	require.NoError(t, err)
	second, err := albumSchema.Shape(a, "genre,name")
	require.NoError(t, err)

	b1, err := json.Marshal(first)
	require.NoError(t, err)
	b2, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(b1), string(b2))
	assert.Equal(t, `{"id":3,"genre":"Jazz","name":"Kind of Blue"}`, string(b1))
}

func TestShape_Nil(t *testing.T) {
	t.Parallel()
	_, err := albumSchema.Shape(nil, "")
	assert.True(t, errors.Is(err, ErrPreconditionFailed))
}

func TestShapeAll(t *testing.T) {
	t.Parallel()

	albums := []*album{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}}
	shaped, err := albumSchema.ShapeAll(albums, "name")
	require.NoError(t, err)
	require.Len(t, shaped, 2)
	v, _ := shaped[1].Get("name")
	assert.Equal(t, "b", v)

	_, err = albumSchema.ShapeAll([]*album{{ID: 1}, nil}, "")
	assert.True(t, errors.Is(err, ErrPreconditionFailed))
}

func TestHasFields(t *testing.T) {
	t.Parallel()

	assert.True(t, albumSchema.HasFields(""))
	assert.True(t, albumSchema.HasFields("id, Name ,genre"))
	assert.False(t, albumSchema.HasFields("name,age"))

	f, ok := albumSchema.FirstUnknown("name, age, size")
	assert.True(t, ok)
	assert.Equal(t, "age", f)
}

func TestNewSchema_UnknownIdentifier(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() {
		NewSchema("key", Prop("id", func(a *album) any { return a.ID }))
	})
}

func TestResource(t *testing.T) {
	t.Parallel()

	r := newResource(0)
	r.Set("b", 1)
	r.Set("a", "x")
	r.Set("b", 2)
	assert.Equal(t, []string{"b", "a"}, r.Keys())
	assert.Equal(t, 2, r.Len())

	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t, `{"b":2,"a":"x"}`, string(b))

	b, err = json.Marshal(newResource(0))
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(b))
}
