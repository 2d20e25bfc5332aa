package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jinzhu/inflection"

	"github.com/cmmoran/apimockgen/internal/model"
	"github.com/cmmoran/apimockgen/pkg/schema"
)

// defaultResponseCode is the apibuilder response_code_option for the
// catch-all response.
const defaultResponseCode = "Default"

// Builder resolves a RawService into a schema.Service.
type Builder struct {
	opts *Options
	raw  *model.RawService
	svc  *schema.Service

	enums  map[string]*schema.Enum
	models map[string]*schema.Model
	unions map[string]*schema.Union
}

func NewBuilder(opts *Options, raw *model.RawService) *Builder {
	return &Builder{
		opts:   opts,
		raw:    raw,
		enums:  make(map[string]*schema.Enum),
		models: make(map[string]*schema.Model),
		unions: make(map[string]*schema.Union),
	}
}

// Build is the main entrypoint:
//  1. Create shells for every enum, model and union so references resolve
//     regardless of declaration order (including self references).
//  2. Populate enum values, model fields and union types.
//  3. Resolve resources and their operations.
func (b *Builder) Build() (*schema.Service, error) {
	svc := &schema.Service{
		Name:      b.raw.Name,
		Namespace: b.raw.Namespace,
		Version:   b.raw.Version,
		BaseURL:   b.raw.BaseURL,
	}
	b.svc = svc

	// 1) Shells.
	for _, re := range b.raw.Enums {
		if re == nil {
			continue
		}
		e := &schema.Enum{
			Name:        re.Name,
			Plural:      b.plural(re.Plural, re.Name),
			Namespace:   b.raw.Namespace,
			Description: re.Description,
		}
		if err := b.register(re.Name); err != nil {
			return nil, err
		}
		b.enums[re.Name] = e
		svc.Enums = append(svc.Enums, e)
	}
	for _, rm := range b.raw.Models {
		if rm == nil {
			continue
		}
		m := &schema.Model{
			Name:        rm.Name,
			Plural:      b.plural(rm.Plural, rm.Name),
			Namespace:   b.raw.Namespace,
			Description: rm.Description,
		}
		if err := b.register(rm.Name); err != nil {
			return nil, err
		}
		b.models[rm.Name] = m
		svc.Models = append(svc.Models, m)
	}
	for _, ru := range b.raw.Unions {
		if ru == nil {
			continue
		}
		u := &schema.Union{
			Name:          ru.Name,
			Plural:        b.plural(ru.Plural, ru.Name),
			Namespace:     b.raw.Namespace,
			Description:   ru.Description,
			Discriminator: ru.Discriminator,
		}
		if err := b.register(ru.Name); err != nil {
			return nil, err
		}
		b.unions[ru.Name] = u
		svc.Unions = append(svc.Unions, u)
	}

	// 2) Populate.
	for _, re := range b.raw.Enums {
		if re == nil {
			continue
		}
		b.populateEnum(b.enums[re.Name], re)
	}
	for _, rm := range b.raw.Models {
		if rm == nil {
			continue
		}
		if err := b.populateModel(b.models[rm.Name], rm); err != nil {
			return nil, err
		}
	}
	for _, ru := range b.raw.Unions {
		if ru == nil {
			continue
		}
		if err := b.populateUnion(b.unions[ru.Name], ru); err != nil {
			return nil, err
		}
	}

	// 3) Resources.
	for _, rr := range b.raw.Resources {
		if rr == nil {
			continue
		}
		r, err := b.buildResource(rr)
		if err != nil {
			return nil, err
		}
		svc.Resources = append(svc.Resources, r)
	}

	return svc, nil
}

func (b *Builder) register(name string) error {
	if name == "" {
		return fmt.Errorf("service %q declares a type without a name", b.raw.Name)
	}
	_, e := b.enums[name]
	_, m := b.models[name]
	_, u := b.unions[name]
	if e || m || u {
		return fmt.Errorf("service %q declares type %q more than once", b.raw.Name, name)
	}
	return nil
}

func (b *Builder) plural(declared, name string) string {
	if declared != "" {
		return declared
	}
	return inflection.Plural(name)
}

func (b *Builder) populateEnum(e *schema.Enum, re *model.RawEnum) {
	e.Values = make([]schema.EnumValue, 0, len(re.Values))
	for _, rv := range re.Values {
		if shouldOmitEnumValue(rv, b.opts) {
			continue
		}
		dep, _ := rv.Deprecation.Deprecated()
		e.Values = append(e.Values, schema.EnumValue{
			Name:        rv.Name,
			Value:       rv.Value,
			Description: rv.Description,
			Deprecation: dep,
		})
	}
}

func (b *Builder) populateModel(m *schema.Model, rm *model.RawModel) error {
	m.Fields = make([]*schema.Field, 0, len(rm.Fields))
	seen := make(map[string]bool, len(rm.Fields))
	for _, rf := range rm.Fields {
		if shouldOmitField(rm.Name, rf, b.opts) {
			continue
		}
		if seen[rf.Name] {
			return fmt.Errorf("model %q declares field %q more than once", rm.Name, rf.Name)
		}
		seen[rf.Name] = true

		t, err := b.ResolveType(rf.Type)
		if err != nil {
			return fmt.Errorf("model %q field %q: %w", rm.Name, rf.Name, err)
		}
		dep, _ := rf.Deprecation.Deprecated()
		m.Fields = append(m.Fields, &schema.Field{
			Name: rf.Name,
			Type: t,
			// apibuilder fields are required unless declared otherwise
			Required:    rf.Required == nil || *rf.Required,
			Minimum:     rf.Minimum,
			Maximum:     rf.Maximum,
			Default:     rf.Default,
			Example:     rf.Example,
			Description: rf.Description,
			Deprecation: dep,
		})
	}
	return nil
}

func (b *Builder) populateUnion(u *schema.Union, ru *model.RawUnion) error {
	u.Types = make([]*schema.UnionType, 0, len(ru.Types))
	for _, rt := range ru.Types {
		if shouldOmitUnionType(rt, b.opts) {
			continue
		}
		t, err := b.ResolveType(rt.Type)
		if err != nil {
			return fmt.Errorf("union %q: %w", ru.Name, err)
		}
		dep, _ := rt.Deprecation.Deprecated()
		u.Types = append(u.Types, &schema.UnionType{
			Type:               t,
			TypeName:           rt.Type,
			DiscriminatorValue: rt.DiscriminatorValue,
			Description:        rt.Description,
			Deprecation:        dep,
		})
	}
	return nil
}

func (b *Builder) buildResource(rr *model.RawResource) (*schema.Resource, error) {
	plural := rr.Plural
	if plural == "" {
		plural = inflection.Plural(shortName(rr.Type))
	}
	path := "/" + plural
	if rr.Path != nil {
		path = *rr.Path
	}

	r := &schema.Resource{
		Type:       rr.Type,
		Plural:     plural,
		Path:       path,
		Operations: make([]*schema.Operation, 0, len(rr.Operations)),
	}
	for _, ro := range rr.Operations {
		if ro == nil {
			continue
		}
		op := &schema.Operation{
			Method:      strings.ToUpper(ro.Method),
			Path:        ro.Path,
			Description: ro.Description,
			Responses:   make([]*schema.Response, 0, len(ro.Responses)),
		}
		if op.Path == "" {
			op.Path = path
		}
		for _, rs := range ro.Responses {
			if rs == nil {
				continue
			}
			resp, err := b.buildResponse(rs)
			if err != nil {
				return nil, fmt.Errorf("operation %s: %w", op, err)
			}
			op.Responses = append(op.Responses, resp)
		}
		r.Operations = append(r.Operations, op)
	}
	return r, nil
}

func (b *Builder) buildResponse(rs *model.RawResponse) (*schema.Response, error) {
	code, isDefault, err := parseResponseCode(rs.Code)
	if err != nil {
		return nil, err
	}
	typ := rs.Type
	if typ == "" {
		typ = string(schema.Unit)
	}
	t, err := b.ResolveType(typ)
	if err != nil {
		return nil, fmt.Errorf("response %v: %w", rs.Code, err)
	}
	return &schema.Response{
		Code:        code,
		Default:     isDefault,
		Type:        t,
		Description: rs.Description,
	}, nil
}

// ResolveType resolves a type expression against the types of the service
// being built. Only valid once the shells exist.
func (b *Builder) ResolveType(ref string) (schema.Type, error) {
	return b.svc.ResolveType(ref)
}

// parseResponseCode accepts {"integer": {"value": N}},
// {"response_code_option": "Default"}, a number, or a numeric string.
func parseResponseCode(raw any) (code int, isDefault bool, err error) {
	switch v := raw.(type) {
	case map[string]any:
		if in, ok := v["integer"]; ok {
			if im, ok := in.(map[string]any); ok {
				return parseResponseCode(im["value"])
			}
			return parseResponseCode(in)
		}
		if opt, ok := v["response_code_option"]; ok {
			return parseResponseCode(opt)
		}
	case float64:
		return int(v), false, nil
	case int:
		return v, false, nil
	case int64:
		return int(v), false, nil
	case string:
		if strings.EqualFold(v, defaultResponseCode) {
			return 0, true, nil
		}
		if n, convErr := strconv.Atoi(v); convErr == nil {
			return n, false, nil
		}
	}
	return 0, false, fmt.Errorf("unsupported response code %v", raw)
}

func shortName(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i+1:]
	}
	return name
}
