package message

import orderedmap "github.com/elliotchance/orderedmap/v3"

// Headers is the transport header map of a call body. Iteration order is
// insertion order so an encode → decode → encode cycle reproduces the exact
// wire bytes; the order itself carries no meaning. The wire format caps the
// map at 255 entries with keys and values of at most 255 bytes each; the
// codec enforces those limits, not this type.
type Headers struct {
	m *orderedmap.OrderedMap[string, string]
}

// NewHeaders returns an empty header map.
func NewHeaders() *Headers {
	return &Headers{m: orderedmap.NewOrderedMap[string, string]()}
}

// Len returns the number of entries. A nil Headers is an empty map.
func (h *Headers) Len() int {
	if h == nil || h.m == nil {
		return 0
	}
	return h.m.Len()
}

// Set adds or replaces an entry. Replacing keeps the key's original position.
func (h *Headers) Set(key, value string) {
	if h.m == nil {
		h.m = orderedmap.NewOrderedMap[string, string]()
	}
	h.m.Set(key, value)
}

// Get looks up a key.
func (h *Headers) Get(key string) (string, bool) {
	if h == nil || h.m == nil {
		return "", false
	}
	return h.m.Get(key)
}

// Each calls fn for every entry in insertion order, stopping early when fn
// returns false.
func (h *Headers) Each(fn func(key, value string) bool) {
	if h == nil || h.m == nil {
		return
	}
	for k, v := range h.m.AllFromFront() {
		if !fn(k, v) {
			return
		}
	}
}
