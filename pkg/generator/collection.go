package generator

import (
	"github.com/cmmoran/apimockgen/pkg/schema"
)

const (
	mapMinEntries = 1
	mapMaxEntries = 3
)

// Array generates between Minimum and Maximum elements of a.Of. Elements that
// come back without a value are dropped, so the result may be shorter than
// the drawn length. The result is never nil.
func (g *Generator) Array(a *schema.Array, opts ...Option) ([]any, error) {
	return g.array(a, Options{}.Apply(opts...))
}

func (g *Generator) array(a *schema.Array, o *Options) ([]any, error) {
	lo, hi := o.Bounds()
	n := g.src.IntRange(lo, hi)
	out := make([]any, 0, n)
	for range n {
		v, err := g.nested(a.Of)
		if err != nil {
			return nil, err
		}
		if v == nil {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

// Map generates one to three entries keyed by random nouns. A repeated key
// overwrites the earlier entry.
func (g *Generator) Map(m *schema.Map) (map[string]any, error) {
	n := g.src.IntRange(mapMinEntries, mapMaxEntries)
	out := make(map[string]any, n)
	for range n {
		key := g.src.Noun()
		v, err := g.nested(m.Of)
		if err != nil {
			return nil, err
		}
		if v == nil {
			delete(out, key)
			continue
		}
		out[key] = v
	}
	return out, nil
}

// Enum picks one value of e. ok is false when e has no values.
func (g *Generator) Enum(e *schema.Enum) (name string, ok bool) {
	i := g.src.Pick(len(e.Values))
	if i < 0 {
		return "", false
	}
	return e.Values[i].Name, true
}
