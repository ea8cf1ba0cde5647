// Package source provides the concrete Browsable data sources the browser
// ships with: an in-memory nested container, a file-system project tree and
// a SQLite database.
package source

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/mattsolo1/grove-browse/pkg/browse"
)

// Container is an ordered, in-memory nested key/value store. Children that
// are themselves non-empty containers are groups; scalars and empty
// containers are nodes. Insertion order is preserved.
type Container struct {
	name   string
	path   string
	keys   []string
	values map[string]any
}

// NewContainer returns an empty container.
func NewContainer(name string) *Container {
	return &Container{name: name, path: "/" + name, values: map[string]any{}}
}

// FromMap builds a container from a nested map, converting nested maps and
// []any slices into sub-containers recursively. Map keys are sorted for a
// deterministic order; slices keep their element order under decimal keys.
func FromMap(name string, m map[string]any) *Container {
	c := NewContainer(name)
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		c.keys = append(c.keys, k)
		c.values[k] = convertValue(c.path, k, m[k])
	}
	return c
}

// FromSlice builds a container from a sequence, with decimal element keys.
func FromSlice(name string, s []any) *Container {
	c := NewContainer(name)
	for i, el := range s {
		k := strconv.Itoa(i)
		c.keys = append(c.keys, k)
		c.values[k] = convertValue(c.path, k, el)
	}
	return c
}

// convertValue turns nested maps and sequences into sub-containers rooted at
// parentPath/key; scalars pass through.
func convertValue(parentPath, key string, v any) any {
	switch val := v.(type) {
	case map[string]any:
		sub := &Container{name: key, path: parentPath + "/" + key, values: map[string]any{}}
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			sub.keys = append(sub.keys, k)
			sub.values[k] = convertValue(sub.path, k, val[k])
		}
		return sub
	case []any:
		sub := &Container{name: key, path: parentPath + "/" + key, values: map[string]any{}}
		for i, el := range val {
			k := strconv.Itoa(i)
			sub.keys = append(sub.keys, k)
			sub.values[k] = convertValue(sub.path, k, el)
		}
		return sub
	default:
		return v
	}
}

// Name returns the container's own key.
func (c *Container) Name() string { return c.name }

// Path implements browse.PathProvider.
func (c *Container) Path() string { return c.path }

// Len returns the number of children.
func (c *Container) Len() int { return len(c.keys) }

// ListGroups returns the keys holding non-empty sub-containers.
func (c *Container) ListGroups() []string {
	var out []string
	for _, k := range c.keys {
		if sub, ok := c.values[k].(*Container); ok && sub.Len() > 0 {
			out = append(out, k)
		}
	}
	return out
}

// ListNodes returns the keys holding terminal values, including empty
// sub-containers.
func (c *Container) ListNodes() []string {
	var out []string
	for _, k := range c.keys {
		if sub, ok := c.values[k].(*Container); ok && sub.Len() > 0 {
			continue
		}
		out = append(out, k)
	}
	return out
}

// Get fetches a child by key.
func (c *Container) Get(name string) (any, error) {
	v, ok := c.values[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, browse.ErrNotFound)
	}
	return v, nil
}

// Set implements browse.Setter: insert or replace a child, preserving the
// position of replaced keys. Nested maps and slices are converted the same
// way FromMap converts them.
func (c *Container) Set(name string, value any) error {
	if _, ok := c.values[name]; !ok {
		c.keys = append(c.keys, name)
	}
	c.values[name] = convertValue(c.path, name, value)
	return nil
}
