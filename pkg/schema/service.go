package schema

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrNotFound is returned (wrapped) by every name-based lookup that misses.
	ErrNotFound = errors.New("not found")
	// ErrUnknownType is returned when a type expression does not resolve.
	ErrUnknownType = fmt.Errorf("unknown type: %w", ErrNotFound)
)

// Response is one declared response of an operation. Default marks the
// apibuilder "Default" response code; see Operation.ResponseOrDefault.
type Response struct {
	Code        int
	Default     bool
	Type        Type
	Description string
}

func (r *Response) String() string {
	if r.Default {
		return "Default"
	}
	return strconv.Itoa(r.Code)
}

type Operation struct {
	Method      string
	Path        string
	Description string
	Responses   []*Response
}

func (o *Operation) String() string {
	return o.Method + " " + o.Path
}

// ResponseByCode returns the response declared for exactly code.
func (o *Operation) ResponseByCode(code int) (*Response, error) {
	for _, r := range o.Responses {
		if !r.Default && r.Code == code {
			return r, nil
		}
	}
	return nil, fmt.Errorf("%w: response %d for operation %q", ErrNotFound, code, o)
}

// ResponseOrDefault is ResponseByCode falling back to the Default response
// when code itself is not declared.
func (o *Operation) ResponseOrDefault(code int) (*Response, error) {
	r, err := o.ResponseByCode(code)
	if err == nil {
		return r, nil
	}
	for _, r := range o.Responses {
		if r.Default {
			return r, nil
		}
	}
	return nil, err
}

type Resource struct {
	Type       string
	Plural     string
	Path       string
	Operations []*Operation
}

// Service is the resolved object model of one apibuilder service.
type Service struct {
	Name      string
	Namespace string
	Version   string
	BaseURL   string

	Enums     []*Enum
	Models    []*Model
	Unions    []*Union
	Resources []*Resource
}

func (s *Service) String() string {
	if s.Namespace != "" {
		return s.Namespace
	}
	return s.Name
}

// FindType returns the enum, model or union named name, matching either the
// short or the namespace-qualified name.
func (s *Service) FindType(name string) (Type, error) {
	for _, e := range s.Enums {
		if e.Name == name || e.TypeName() == name {
			return e, nil
		}
	}
	for _, m := range s.Models {
		if m.Name == name || m.TypeName() == name {
			return m, nil
		}
	}
	for _, u := range s.Unions {
		if u.Name == name || u.TypeName() == name {
			return u, nil
		}
	}
	return nil, fmt.Errorf("%w: type %q in service %q", ErrNotFound, name, s)
}

// ResolveType turns a type expression into a descriptor. Supported forms:
// primitives, "[T]", "map[T]", "map" (map of string), and the short or
// namespace-qualified name of an enum, model or union of the service.
func (s *Service) ResolveType(expr string) (Type, error) {
	expr = strings.TrimSpace(expr)
	switch {
	case expr == "":
		return nil, fmt.Errorf("%w: empty type in service %q", ErrUnknownType, s)
	case strings.HasPrefix(expr, "[") && strings.HasSuffix(expr, "]"):
		of, err := s.ResolveType(expr[1 : len(expr)-1])
		if err != nil {
			return nil, err
		}
		return NewArray(of), nil
	case expr == "map":
		return NewMap(NewPrimitive(String)), nil
	case strings.HasPrefix(expr, "map[") && strings.HasSuffix(expr, "]"):
		of, err := s.ResolveType(expr[len("map[") : len(expr)-1])
		if err != nil {
			return nil, err
		}
		return NewMap(of), nil
	case IsPrimitiveKind(expr):
		return NewPrimitive(PrimitiveKind(expr)), nil
	}
	if t, err := s.FindType(expr); err == nil {
		return t, nil
	}
	return nil, fmt.Errorf("%w: %q in service %q", ErrUnknownType, expr, s)
}

// Operations flattens the operations of every resource in declared order.
func (s *Service) Operations() []*Operation {
	ops := make([]*Operation, 0)
	for _, r := range s.Resources {
		ops = append(ops, r.Operations...)
	}
	return ops
}

// FindOperation returns the first operation matching path exactly and method
// case-insensitively.
func (s *Service) FindOperation(method, path string) (*Operation, error) {
	for _, op := range s.Operations() {
		if op.Path == path && strings.EqualFold(op.Method, method) {
			return op, nil
		}
	}
	return nil, fmt.Errorf("%w: operation %s %s in service %q", ErrNotFound, strings.ToUpper(method), path, s)
}
