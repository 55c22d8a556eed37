package cmdopt

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Entry is a stored value together with the source that supplied it.
type Entry struct {
	Value  any
	Source ValueSource
}

// Values maps attribute names to source-tagged values for one command.
// Insertion order is preserved so iteration follows declaration order.
// Set always overwrites both the value and the source tag: precedence
// between sources is enforced by the order the engine calls Set, never by
// comparing tags.
type Values struct {
	entries *orderedmap.OrderedMap[string, Entry]
}

// NewValues creates an empty store.
func NewValues() *Values {
	return &Values{
		entries: orderedmap.New[string, Entry](),
	}
}

// Set records value under key, overwriting any previous entry and its
// source tag.
func (v *Values) Set(key string, value any, source ValueSource) {
	v.entries.Set(key, Entry{Value: value, Source: source})
}

// Get returns the stored value for key.
func (v *Values) Get(key string) (any, bool) {
	entry, found := v.entries.Get(key)
	if !found {
		return nil, false
	}

	return entry.Value, true
}

// Source returns the source tag recorded for key, or "" when the key is
// absent.
func (v *Values) Source(key string) ValueSource {
	entry, found := v.entries.Get(key)
	if !found {
		return ""
	}

	return entry.Source
}

// Delete removes key from the store.
func (v *Values) Delete(key string) {
	v.entries.Delete(key)
}

// Has reports whether key holds a value from any source.
func (v *Values) Has(key string) bool {
	_, found := v.entries.Get(key)

	return found
}

// Len returns the number of stored keys.
func (v *Values) Len() int {
	return v.entries.Len()
}

// Keys returns the stored keys in insertion order.
func (v *Values) Keys() []string {
	keys := make([]string, 0, v.entries.Len())
	for pair := v.entries.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}

	return keys
}

// Each calls fn for every entry in insertion order.
func (v *Values) Each(fn func(key string, entry Entry)) {
	for pair := v.entries.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value)
	}
}

// overlay copies every entry of other into v, overwriting duplicates. Used
// to build merged views where later (more local) stores win.
func (v *Values) overlay(other *Values) {
	if other == nil {
		return
	}
	for pair := other.entries.Oldest(); pair != nil; pair = pair.Next() {
		v.entries.Set(pair.Key, pair.Value)
	}
}
