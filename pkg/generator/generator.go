// Package generator produces synthetic values for apibuilder type descriptors.
//
// Generate is the single dispatch point: every generator that recurses into a
// nested type (array element, map value, model field, union payload) goes back
// through it. Values come back as plain Go data: string, bool, int64, float64,
// []any and map[string]any. A nil value means "no value" (unit, empty enum,
// unrecognized kind) and is left out of the enclosing array, map or record.
package generator

import (
	"errors"
	"fmt"
	"time"

	"github.com/cmmoran/apimockgen/pkg/schema"
)

var (
	// ErrUnknownVariant is returned when a requested union variant does not exist.
	ErrUnknownVariant = fmt.Errorf("unknown variant: %w", schema.ErrNotFound)
	// ErrNoVariants is returned when generating a union that declares no types.
	ErrNoVariants = errors.New("union has no variants")
)

// Source is the random-primitive collaborator. Each call advances the
// underlying random stream and has no other effect.
type Source interface {
	// Word returns a random word.
	Word() string
	// Noun returns a random lowercase technical noun.
	Noun() string
	Bool() bool
	// IntRange returns a whole number in [min, max].
	IntRange(min, max int) int
	// Number returns a random whole number.
	Number() int64
	// Float returns a random real number.
	Float() float64
	// FutureTime returns an instant after now.
	FutureTime() time.Time
	// UUID returns a version 4 UUID string.
	UUID() string
	// AlphaNumeric returns a random [a-z0-9] string of length n.
	AlphaNumeric(n int) string
	// Pick returns an index in [0, n), or -1 when n <= 0.
	Pick(n int) int
}

// Generator generates values from type descriptors using a Source.
// It holds no state besides the source, so it is as safe for concurrent use
// as the source is.
type Generator struct {
	src Source
}

func New(src Source) *Generator {
	return &Generator{src: src}
}

// Source returns the random source backing g.
func (g *Generator) Source() Source {
	return g.src
}

// Generate returns a value of the shape described by t. Options are read
// according to the variant of t. An unrecognized or nil descriptor, typed or
// not, yields nil.
func (g *Generator) Generate(t schema.Type, opts ...Option) (any, error) {
	return g.generate(t, Options{}.Apply(opts...))
}

func (g *Generator) generate(t schema.Type, o *Options) (any, error) {
	if isNil(t) {
		return nil, nil
	}
	switch v := t.(type) {
	case *schema.Primitive:
		return g.Primitive(v), nil
	case *schema.Array:
		return g.array(v, o)
	case *schema.Map:
		return g.Map(v)
	case *schema.Enum:
		if name, ok := g.Enum(v); ok {
			return name, nil
		}
		return nil, nil
	case *schema.Model:
		m, err := g.model(v, o)
		if err != nil {
			return nil, err
		}
		return m, nil
	case *schema.Union:
		u, err := g.union(v, o)
		if err != nil {
			return nil, err
		}
		return u, nil
	default:
		return nil, nil
	}
}

// nested generates a value for a type contained in another one. Container
// options never propagate into nested types.
func (g *Generator) nested(t schema.Type) (any, error) {
	return g.generate(t, &Options{})
}

func isNil(t schema.Type) bool {
	switch v := t.(type) {
	case nil:
		return true
	case *schema.Primitive:
		return v == nil
	case *schema.Array:
		return v == nil
	case *schema.Map:
		return v == nil
	case *schema.Enum:
		return v == nil
	case *schema.Model:
		return v == nil
	case *schema.Union:
		return v == nil
	}
	return false
}
