package meta

import "strings"

type valueKind int

const (
	scalarValue valueKind = iota
	listValue
)

// Value is a configuration value: either a scalar string or a list of strings.
type Value struct {
	kind   valueKind
	scalar string
	list   []string
}

// Scalar returns a scalar value.
func Scalar(s string) Value {
	return Value{kind: scalarValue, scalar: s}
}

// List returns a list value. A nil items slice is stored as empty.
func List(items ...string) Value {
	if items == nil {
		items = []string{}
	}
	return Value{kind: listValue, list: items}
}

// IsList reports whether v holds a list.
func (v Value) IsList() bool { return v.kind == listValue }

// String returns the scalar, or the list items joined with ", ".
func (v Value) String() string {
	if v.kind == listValue {
		return strings.Join(v.list, ", ")
	}
	return v.scalar
}

// Items returns the list items, or a one-element slice for a scalar.
func (v Value) Items() []string {
	if v.kind == listValue {
		out := make([]string, len(v.list))
		copy(out, v.list)
		return out
	}
	return []string{v.scalar}
}

// Equal reports whether v and o hold the same kind and contents.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	if v.kind == scalarValue {
		return v.scalar == o.scalar
	}
	if len(v.list) != len(o.list) {
		return false
	}
	for i := range v.list {
		if v.list[i] != o.list[i] {
			return false
		}
	}
	return true
}

// Config is an ordered mapping from key to Value.
type Config struct {
	keys   []string
	values map[string]Value
}

// NewConfig returns an empty Config.
func NewConfig() *Config {
	return &Config{values: make(map[string]Value)}
}

// Set stores v under key. A repeated key keeps its original position.
func (c *Config) Set(key string, v Value) {
	if _, ok := c.values[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.values[key] = v
}

// Lookup returns the value for key.
func (c *Config) Lookup(key string) (Value, bool) {
	v, ok := c.values[key]
	return v, ok
}

// String returns the scalar form of key, or fallback when unset or empty.
func (c *Config) String(key, fallback string) string {
	v, ok := c.values[key]
	if !ok || v.String() == "" {
		return fallback
	}
	return v.String()
}

// List returns the items of key, or nil when unset.
func (c *Config) List(key string) []string {
	v, ok := c.values[key]
	if !ok {
		return nil
	}
	return v.Items()
}

// Keys returns keys in first-seen order.
func (c *Config) Keys() []string {
	out := make([]string, len(c.keys))
	copy(out, c.keys)
	return out
}

// Len returns the number of keys.
func (c *Config) Len() int { return len(c.keys) }

// Equal reports whether both configs hold the same keys, order and values.
func (c *Config) Equal(o *Config) bool {
	if c.Len() != o.Len() {
		return false
	}
	for i, k := range c.keys {
		if o.keys[i] != k || !c.values[k].Equal(o.values[k]) {
			return false
		}
	}
	return true
}

// ToMap returns a plain map for serialization: scalars as strings, lists as []string.
func (c *Config) ToMap() map[string]interface{} {
	m := make(map[string]interface{}, len(c.keys))
	for _, k := range c.keys {
		v := c.values[k]
		if v.IsList() {
			m[k] = v.Items()
		} else {
			m[k] = v.scalar
		}
	}
	return m
}
