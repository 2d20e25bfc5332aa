package generator

import (
	"fmt"

	"github.com/cmmoran/apimockgen/pkg/schema"
)

// valueKey holds the payload of a primitive or enum union variant.
const valueKey = "value"

// Union generates one variant of u tagged with its discriminator. The variant
// is the one named by the Variant option, or a random one. Properties are
// passed to a model payload as field overrides; for primitive and enum
// payloads the "value" property replaces the generated payload.
func (g *Generator) Union(u *schema.Union, opts ...Option) (map[string]any, error) {
	return g.union(u, Options{}.Apply(opts...))
}

func (g *Generator) union(u *schema.Union, o *Options) (map[string]any, error) {
	ut, err := g.variant(u, o.Variant)
	if err != nil {
		return nil, err
	}

	key := u.DiscriminatorKey()
	out := map[string]any{key: ut.Discriminator()}

	switch t := ut.Type.(type) {
	case *schema.Primitive, *schema.Enum:
		v, overridden := o.Override(valueKey)
		if !overridden {
			if v, err = g.nested(t); err != nil {
				return nil, err
			}
			if v == nil {
				return out, nil
			}
		}
		out[valueKey] = v
	case *schema.Model:
		fields, err := g.model(t, &Options{Properties: o.Properties})
		if err != nil {
			return nil, err
		}
		for k, v := range fields {
			out[k] = v
		}
	default:
		v, err := g.nested(t)
		if err != nil {
			return nil, err
		}
		if fields, ok := v.(map[string]any); ok {
			for k, fv := range fields {
				out[k] = fv
			}
		}
	}
	return out, nil
}

func (g *Generator) variant(u *schema.Union, name string) (*schema.UnionType, error) {
	if name != "" {
		for _, ut := range u.Types {
			if ut.Matches(name) {
				return ut, nil
			}
		}
		return nil, fmt.Errorf("%w: %q is not a type of union %q", ErrUnknownVariant, name, u)
	}
	i := g.src.Pick(len(u.Types))
	if i < 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoVariants, u)
	}
	return u.Types[i], nil
}
