package generator

import (
	"github.com/cmmoran/apimockgen/pkg/schema"
)

// defaultMaxStringLength caps ranged strings that declare only a minimum.
const defaultMaxStringLength = 24

// Model generates a record for m. Each field is resolved by the first rule
// that applies:
//
//  1. OnlyRequired, field optional and not overridden → key omitted
//  2. override present                                  → override, verbatim
//  3. UseExample and example declared                   → example
//  4. field optional, default declared and UseDefault   → default
//  5. array type with a declared range                  → array bounded by the range
//  6. string type with a declared range                 → alphanumeric of ranged length
//  7. otherwise                                         → generated from the field type
//
// Generated fields without a value are left out; overrides are always kept.
func (g *Generator) Model(m *schema.Model, opts ...Option) (map[string]any, error) {
	return g.model(m, Options{}.Apply(opts...))
}

func (g *Generator) model(m *schema.Model, o *Options) (map[string]any, error) {
	out := make(map[string]any, len(m.Fields))
	for _, f := range m.Fields {
		override, overridden := o.Override(f.Name)

		switch {
		case o.OnlyRequired && !f.Required && !overridden:
			continue
		case overridden:
			out[f.Name] = override
			continue
		case o.UseExample && f.Example != nil:
			out[f.Name] = f.Example
			continue
		case !f.Required && f.Default != nil && o.UseDefault:
			out[f.Name] = f.Default
			continue
		}

		v, err := g.field(f)
		if err != nil {
			return nil, err
		}
		if v != nil {
			out[f.Name] = v
		}
	}
	return out, nil
}

// field generates a value for f from its type, honoring a declared range.
func (g *Generator) field(f *schema.Field) (any, error) {
	if f.HasRange() {
		switch t := f.Type.(type) {
		case *schema.Array:
			o := &Options{}
			if f.Minimum != nil {
				lo := clampLength(*f.Minimum)
				o.Minimum = &lo
			}
			if f.Maximum != nil {
				hi := clampLength(*f.Maximum)
				o.Maximum = &hi
			}
			return g.generate(t, o)
		case *schema.Primitive:
			if t.Name == schema.String {
				return g.src.AlphaNumeric(g.src.IntRange(stringBounds(f))), nil
			}
		}
	}
	return g.nested(f.Type)
}

func stringBounds(f *schema.Field) (int, int) {
	lo := 0
	if f.Minimum != nil {
		lo = clampLength(*f.Minimum)
	}
	hi := max(lo, defaultMaxStringLength)
	if f.Maximum != nil {
		hi = max(lo, clampLength(*f.Maximum))
	}
	return lo, hi
}

// clampLength converts a declared bound to a length in [0, MaxLength].
func clampLength(n int64) int {
	return int(min(max(n, 0), MaxLength))
}
