package core

import "sort"

// Notes is the puzzle's key->value metadata (e.g. "title", "author"),
// kept ordered by key the way textio prints and the cache codec would
// need a stable order if it ever serialized notes.
type Notes struct {
	m map[string]string
}

func NewNotes() *Notes {
	return &Notes{m: make(map[string]string)}
}

func (n *Notes) Set(key, value string) {
	if n.m == nil {
		n.m = make(map[string]string)
	}
	n.m[key] = value
}

func (n *Notes) Get(key string) (string, bool) {
	v, ok := n.m[key]
	return v, ok
}

// Keys returns the note keys sorted lexically.
func (n *Notes) Keys() []string {
	keys := make([]string, 0, len(n.m))
	for k := range n.m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (n *Notes) Len() int {
	return len(n.m)
}

func (n *Notes) Equal(other *Notes) bool {
	if n.Len() != other.Len() {
		return false
	}
	for k, v := range n.m {
		if ov, ok := other.m[k]; !ok || ov != v {
			return false
		}
	}
	return true
}
