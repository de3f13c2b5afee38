// Package sortmap maps the public sort keys of a resource onto the columns of
// the table that backs it. Clients only ever see the public vocabulary, so the
// schema can change without breaking order_by values, and nothing that isn't
// registered here can reach an ORDER BY clause.
package sortmap

import (
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrDuplicateRegistration = errors.New("sort mapping already registered")
	ErrMappingNotFound       = errors.New("sort mapping not found")
	ErrAmbiguousKey          = errors.New("sort key is ambiguous")
	ErrInvalidSortKey        = errors.New("invalid sort key")
)

// Key identifies a mapping by the public resource it is exposed as and the
// internal entity it is read from.
type Key struct {
	Public   string
	Internal string
}

func (k Key) String() string {
	return k.Public + " -> " + k.Internal
}

// Target is a single column a public key sorts by. Revert flips the requested
// direction, e.g. sorting by age ascending means sorting by date of birth
// descending.
type Target struct {
	Column string
	Revert bool
}

// Order is one expanded ORDER BY term.
type Order struct {
	Column     string
	Descending bool
}

// Mapping is the resolved, read-only table for a single Key. Public keys are
// stored lowercased.
type Mapping struct {
	key     Key
	targets map[string][]Target
}

// Entry is used to seed a catalog in one go.
type Entry struct {
	Key     Key
	Targets map[string][]Target
}

// Catalog holds every registered mapping. It's filled once at startup and only
// read afterwards, so lookups don't lock.
type Catalog struct {
	mappings map[Key]Mapping
}

func NewCatalog(entries ...Entry) (*Catalog, error) {
	c := &Catalog{mappings: make(map[Key]Mapping, len(entries))}
	for _, e := range entries {
		if err := c.Register(e.Key, e.Targets); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Register adds the mapping for key. Public keys are matched
// case-insensitively, so two keys that only differ by case are rejected.
func (c *Catalog) Register(key Key, targets map[string][]Target) error {
	if _, ok := c.mappings[key]; ok {
		return errors.Wrapf(ErrDuplicateRegistration, "%s", key)
	}

	normalized := make(map[string][]Target, len(targets))
	for name, t := range targets {
		lower := strings.ToLower(strings.TrimSpace(name))
		if _, ok := normalized[lower]; ok {
			return errors.Wrapf(ErrAmbiguousKey, "%q in %s", name, key)
		}
		cp := make([]Target, len(t))
		copy(cp, t)
		normalized[lower] = cp
	}

	c.mappings[key] = Mapping{key: key, targets: normalized}
	return nil
}

func (c *Catalog) Resolve(key Key) (Mapping, error) {
	m, ok := c.mappings[key]
	if !ok {
		return Mapping{}, errors.Wrapf(ErrMappingNotFound, "%s", key)
	}
	return m, nil
}

// ValidOrderBy resolves key and validates clause against it.
func (c *Catalog) ValidOrderBy(key Key, clause string) (bool, error) {
	m, err := c.Resolve(key)
	if err != nil {
		return false, err
	}
	return m.Valid(clause), nil
}

func (m Mapping) Key() Key {
	return m.key
}

// Valid reports whether every token of clause is a known public key. An empty
// clause is valid.
func (m Mapping) Valid(clause string) bool {
	_, ok := m.firstUnknown(clause)
	return !ok
}

// FirstUnknown returns the first token of clause that has no mapping.
func (m Mapping) FirstUnknown(clause string) (string, bool) {
	return m.firstUnknown(clause)
}

func (m Mapping) firstUnknown(clause string) (string, bool) {
	for _, tok := range tokens(clause) {
		if _, ok := m.targets[strings.ToLower(tok.name)]; !ok {
			return tok.name, true
		}
	}
	return "", false
}

// Expand turns clause into the ordered columns to sort by.
func (m Mapping) Expand(clause string) ([]Order, error) {
	var orders []Order
	for _, tok := range tokens(clause) {
		targets, ok := m.targets[strings.ToLower(tok.name)]
		if !ok {
			return nil, errors.Wrapf(ErrInvalidSortKey, "%q", tok.name)
		}
		for _, t := range targets {
			orders = append(orders, Order{
				Column:     t.Column,
				Descending: tok.descending != t.Revert,
			})
		}
	}
	return orders, nil
}

type token struct {
	name       string
	descending bool
}

// tokens splits an order_by clause. Anything after the first space of a term
// is treated as the direction marker, and only " desc" flips it.
func tokens(clause string) []token {
	if strings.TrimSpace(clause) == "" {
		return nil
	}

	parts := strings.Split(clause, ",")
	toks := make([]token, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		name, direction, _ := strings.Cut(p, " ")
		toks = append(toks, token{
			name:       name,
			descending: strings.EqualFold(strings.TrimSpace(direction), "desc"),
		})
	}
	return toks
}
