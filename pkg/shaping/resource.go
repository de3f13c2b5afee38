package shaping

import (
	"bytes"

	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
)

// Resource is a shaped resource: field names to values, kept in insertion
// order so the JSON comes out in the same order every time.
type Resource struct {
	keys   []string
	values map[string]any
}

func newResource(size int) *Resource {
	return &Resource{
		keys:   make([]string, 0, size),
		values: make(map[string]any, size),
	}
}

// Set adds or replaces a field. Replacing keeps the original position.
func (r *Resource) Set(key string, value any) {
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

func (r *Resource) Get(key string) (any, bool) {
	v, ok := r.values[key]
	return v, ok
}

func (r *Resource) Keys() []string {
	keys := make([]string, len(r.keys))
	copy(keys, r.keys)
	return keys
}

func (r *Resource) Len() int {
	return len(r.keys)
}

func (r *Resource) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(r.values[k])
		if err != nil {
			return nil, errors.Wrapf(err, "failed to encode field %q", k)
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
