// Package mock resolves enums, models, unions and operation responses of a
// service by name and generates example values for them.
package mock

import (
	"fmt"
	"log/slog"

	"github.com/cmmoran/apimockgen/pkg/faker"
	"github.com/cmmoran/apimockgen/pkg/generator"
	"github.com/cmmoran/apimockgen/pkg/schema"
)

var _ generator.Source = (*faker.Faker)(nil)

// ResponseParams identifies an operation response. UseDefault lets a code
// without a declared response fall back to the operation's Default response.
type ResponseParams struct {
	Path       string
	Method     string
	Code       int
	UseDefault bool
}

// Generator generates values for the named types of one service.
type Generator struct {
	service *schema.Service
	gen     *generator.Generator
	log     *slog.Logger
}

type Option func(*Generator)

// WithSource replaces the default randomly seeded faker.
func WithSource(src generator.Source) Option {
	return func(g *Generator) { g.gen = generator.New(src) }
}

func WithSeed(seed uint64) Option {
	return WithSource(faker.New(seed))
}

func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) { g.log = l }
}

func New(service *schema.Service, opts ...Option) *Generator {
	g := &Generator{
		service: service,
		log:     slog.Default(),
	}
	for _, fn := range opts {
		fn(g)
	}
	if g.gen == nil {
		g.gen = generator.New(faker.NewRandom())
	}
	return g
}

func (g *Generator) Service() *schema.Service {
	return g.service
}

// Enum generates a value of the named enum. The result is nil when the enum
// has no values.
func (g *Generator) Enum(name string) (any, error) {
	t, err := g.service.FindType(name)
	if err != nil {
		return nil, err
	}
	e, ok := t.(*schema.Enum)
	if !ok {
		return nil, g.mismatch(name, schema.KindEnum, t)
	}
	v, ok := g.gen.Enum(e)
	g.log.With("enum", e.TypeName(), "ok", ok).Debug("generated enum")
	if !ok {
		return nil, nil
	}
	return v, nil
}

func (g *Generator) Model(name string, opts ...generator.Option) (map[string]any, error) {
	t, err := g.service.FindType(name)
	if err != nil {
		return nil, err
	}
	m, ok := t.(*schema.Model)
	if !ok {
		return nil, g.mismatch(name, schema.KindModel, t)
	}
	v, err := g.gen.Model(m, opts...)
	if err != nil {
		return nil, err
	}
	g.log.With("model", m.TypeName(), "fields", len(v)).Debug("generated model")
	return v, nil
}

func (g *Generator) Union(name string, opts ...generator.Option) (map[string]any, error) {
	t, err := g.service.FindType(name)
	if err != nil {
		return nil, err
	}
	u, ok := t.(*schema.Union)
	if !ok {
		return nil, g.mismatch(name, schema.KindUnion, t)
	}
	v, err := g.gen.Union(u, opts...)
	if err != nil {
		return nil, err
	}
	g.log.With("union", u.TypeName(), "discriminator", v[u.DiscriminatorKey()]).Debug("generated union")
	return v, nil
}

// Type generates a value for a type expression of the service, such as
// "pet", "[pet]" or "map[uuid]".
func (g *Generator) Type(expr string, opts ...generator.Option) (any, error) {
	t, err := g.service.ResolveType(expr)
	if err != nil {
		return nil, err
	}
	return g.Generate(t, opts...)
}

// Generate generates a value for an already resolved descriptor.
func (g *Generator) Generate(t schema.Type, opts ...generator.Option) (any, error) {
	return g.gen.Generate(t, opts...)
}

// Response generates the body declared for the operation at params.Path with
// params.Method, answering with params.Code.
func (g *Generator) Response(params ResponseParams, opts ...generator.Option) (any, error) {
	t, err := g.ResponseType(params)
	if err != nil {
		return nil, err
	}
	return g.gen.Generate(t, opts...)
}

// ResponseType resolves the descriptor of the body answered by params.
func (g *Generator) ResponseType(params ResponseParams) (schema.Type, error) {
	op, err := g.service.FindOperation(params.Method, params.Path)
	if err != nil {
		return nil, err
	}
	lookup := op.ResponseByCode
	if params.UseDefault {
		lookup = op.ResponseOrDefault
	}
	resp, err := lookup(params.Code)
	if err != nil {
		return nil, err
	}
	g.log.With("operation", op.String(), "response", resp.String(), "type", resp.Type.TypeName()).Debug("generating response")
	return resp.Type, nil
}

func (g *Generator) mismatch(name string, want schema.Kind, got schema.Type) error {
	return fmt.Errorf("%w: %q did not match %s %s in service %q (found %s)",
		schema.ErrNotFound, name, article(want), want, g.service, got.Kind())
}

func article(k schema.Kind) string {
	switch k {
	case schema.KindEnum, schema.KindArray:
		return "an"
	default:
		return "a"
	}
}
