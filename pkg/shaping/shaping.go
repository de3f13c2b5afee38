// Package shaping projects resources onto the subset of fields a client asked
// for with the `fields` query parameter.
//
// Every resource type describes itself once with a Schema: an ordered list of
// public field names and accessors. Shaping walks that list, so there's no
// reflection at request time and output order is stable.
package shaping

import (
	"strings"

	"github.com/pkg/errors"
)

var ErrPreconditionFailed = errors.New("cannot shape a nil resource")

// Property is a single public field of T.
type Property[T any] struct {
	Name  string
	Value func(*T) any
}

// Prop declares a public field.
func Prop[T any](name string, value func(*T) any) Property[T] {
	return Property[T]{Name: name, Value: value}
}

// Schema is the static description of a shapeable resource type.
type Schema[T any] struct {
	idField string
	props   []Property[T]
	index   map[string]int
}

// NewSchema describes T. idField must be one of props; it's included in every
// shaped resource.
func NewSchema[T any](idField string, props ...Property[T]) *Schema[T] {
	s := &Schema[T]{
		idField: idField,
		props:   props,
		index:   make(map[string]int, len(props)),
	}
	for i, p := range props {
		s.index[strings.ToLower(p.Name)] = i
	}
	if _, ok := s.index[strings.ToLower(idField)]; !ok {
		panic("shaping: identifier field " + idField + " is not a declared property")
	}
	return s
}

// HasFields reports whether every field in the comma separated list exists on
// T. An empty list is valid. It's what request validation uses; Shape itself
// ignores unknown fields.
func (s *Schema[T]) HasFields(fields string) bool {
	_, ok := s.FirstUnknown(fields)
	return !ok
}

// FirstUnknown returns the first requested field that T doesn't have.
func (s *Schema[T]) FirstUnknown(fields string) (string, bool) {
	for _, f := range split(fields) {
		if _, ok := s.index[strings.ToLower(f)]; !ok {
			return f, true
		}
	}
	return "", false
}

// Shape builds the projection of resource. With no fields requested every
// field is included in declared order; otherwise fields come in requested
// order, with the identifier first if it wasn't requested.
func (s *Schema[T]) Shape(resource *T, fields string) (*Resource, error) {
	if resource == nil {
		return nil, errors.WithStack(ErrPreconditionFailed)
	}

	requested := split(fields)
	if len(requested) == 0 {
		r := newResource(len(s.props))
		for _, p := range s.props {
			r.Set(p.Name, p.Value(resource))
		}
		return r, nil
	}

	picked := make([]int, 0, len(requested)+1)
	seen := make(map[int]bool, len(requested)+1)
	for _, f := range requested {
		i, ok := s.index[strings.ToLower(f)]
		if !ok || seen[i] {
			continue
		}
		seen[i] = true
		picked = append(picked, i)
	}

	id := s.index[strings.ToLower(s.idField)]
	if !seen[id] {
		picked = append([]int{id}, picked...)
	}

	r := newResource(len(picked))
	for _, i := range picked {
		p := s.props[i]
		r.Set(p.Name, p.Value(resource))
	}
	return r, nil
}

// ShapeAll shapes every resource with the same field list, in input order.
func (s *Schema[T]) ShapeAll(resources []*T, fields string) ([]*Resource, error) {
	shaped := make([]*Resource, 0, len(resources))
	for _, res := range resources {
		r, err := s.Shape(res, fields)
		if err != nil {
			return nil, err
		}
		shaped = append(shaped, r)
	}
	return shaped, nil
}

func split(fields string) []string {
	if strings.TrimSpace(fields) == "" {
		return nil
	}
	parts := strings.Split(fields, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
