package fixture

import (
	"fmt"
	"slices"

	"github.com/calumari/jwalk"
)

// Set holds the fixtures of one backend: target names in file order and
// the fixtures of each target.
type Set struct {
	Names    []string
	Fixtures map[string]jwalk.Array
}

// NewSet builds a Set from a document mapping target names to arrays.
func NewSet(doc jwalk.Document) (Set, error) {
	set := Set{
		Names:    make([]string, 0, len(doc)),
		Fixtures: make(map[string]jwalk.Array, len(doc)),
	}
	for _, e := range doc {
		arr, ok := e.Value.(jwalk.Array)
		if !ok {
			return Set{}, fmt.Errorf("target %q: expected an array of fixtures, got %T", e.Key, e.Value)
		}
		if _, dup := set.Fixtures[e.Key]; !dup {
			set.Names = append(set.Names, e.Key)
		}
		set.Fixtures[e.Key] = arr
	}
	return set, nil
}

// Section returns the Set stored under name in a backend-sectioned root
// document. ok is false when the section is absent.
func Section(root jwalk.Document, name string) (set Set, ok bool, err error) {
	for _, e := range root {
		if e.Key != name {
			continue
		}
		doc, isDoc := e.Value.(jwalk.Document)
		if !isDoc {
			return Set{}, true, fmt.Errorf("section %q: expected an object, got %T", name, e.Value)
		}
		s, err := NewSet(doc)
		if err != nil {
			return Set{}, true, fmt.Errorf("section %q: %w", name, err)
		}
		return s, true, nil
	}
	return Set{}, false, nil
}

// Select keeps only the named targets, in the Set's order. An empty list
// keeps everything.
func (s Set) Select(targets []string) Set {
	if len(targets) == 0 {
		return s
	}
	out := Set{Fixtures: make(map[string]jwalk.Array)}
	for _, name := range s.Names {
		if slices.Contains(targets, name) {
			out.Names = append(out.Names, name)
			out.Fixtures[name] = s.Fixtures[name]
		}
	}
	return out
}

// Empty reports whether the Set has no targets.
func (s Set) Empty() bool { return len(s.Names) == 0 }

// Convert applies fn to the fixtures of every target and returns the
// result keyed by target name.
func (s Set) Convert(fn func(target string, arr jwalk.Array) ([]any, error)) (map[string][]any, error) {
	out := make(map[string][]any, len(s.Names))
	for _, name := range s.Names {
		items, err := fn(name, s.Fixtures[name])
		if err != nil {
			return nil, err
		}
		out[name] = items
	}
	return out, nil
}

// PlainArray converts every element of arr with Plain.
func PlainArray(_ string, arr jwalk.Array) ([]any, error) {
	out := make([]any, len(arr))
	for i, v := range arr {
		out[i] = Plain(v)
	}
	return out, nil
}

// Plain converts jwalk documents and arrays into map[string]any and []any,
// recursively. Other values, including directive results, are returned as
// they are.
func Plain(v any) any {
	switch val := v.(type) {
	case jwalk.Document:
		m := make(map[string]any, len(val))
		for _, e := range val {
			m[e.Key] = Plain(e.Value)
		}
		return m
	case jwalk.Array:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = Plain(item)
		}
		return out
	default:
		return v
	}
}
