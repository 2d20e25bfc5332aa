package schema

import (
	"strings"
)

// Kind identifies which descriptor variant a Type is.
type Kind int

const (
	KindInvalid Kind = iota
	KindPrimitive
	KindArray
	KindMap
	KindEnum
	KindModel
	KindUnion
)

func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	case KindEnum:
		return "enum"
	case KindModel:
		return "model"
	case KindUnion:
		return "union"
	default:
		return "invalid"
	}
}

// PrimitiveKind is the apibuilder name of a scalar type.
type PrimitiveKind string

const (
	String   PrimitiveKind = "string"
	Boolean  PrimitiveKind = "boolean"
	Date     PrimitiveKind = "date-iso8601"
	DateTime PrimitiveKind = "date-time-iso8601"
	Decimal  PrimitiveKind = "decimal"
	Double   PrimitiveKind = "double"
	Integer  PrimitiveKind = "integer"
	Long     PrimitiveKind = "long"
	JSON     PrimitiveKind = "json"
	Object   PrimitiveKind = "object"
	Unit     PrimitiveKind = "unit"
	UUID     PrimitiveKind = "uuid"
)

var primitiveKinds = map[PrimitiveKind]bool{
	String: true, Boolean: true, Date: true, DateTime: true, Decimal: true, Double: true,
	Integer: true, Long: true, JSON: true, Object: true, Unit: true, UUID: true,
}

// IsPrimitiveKind reports whether name is one of the known primitive kinds.
func IsPrimitiveKind(name string) bool {
	return primitiveKinds[PrimitiveKind(name)]
}

// Type is a read-only descriptor of one schema type. The set of
// implementations is closed: *Primitive, *Array, *Map, *Enum, *Model, *Union.
type Type interface {
	Kind() Kind
	// TypeName is the name as written in the service description.
	TypeName() string
	// ShortName is the unqualified name.
	ShortName() string

	schemaType()
}

// Primitive is a scalar type. Name may hold a kind outside the known set.
type Primitive struct {
	Name PrimitiveKind
}

func NewPrimitive(k PrimitiveKind) *Primitive { return &Primitive{Name: k} }

func (*Primitive) Kind() Kind          { return KindPrimitive }
func (p *Primitive) TypeName() string  { return string(p.Name) }
func (p *Primitive) ShortName() string { return string(p.Name) }
func (*Primitive) schemaType()         {}

// Array is a sequence of Of.
type Array struct {
	Of Type
}

func NewArray(of Type) *Array { return &Array{Of: of} }

func (*Array) Kind() Kind          { return KindArray }
func (a *Array) TypeName() string  { return "[" + nameOf(a.Of, Type.TypeName) + "]" }
func (a *Array) ShortName() string { return "[" + nameOf(a.Of, Type.ShortName) + "]" }
func (*Array) schemaType()         {}

// Map is a string-keyed collection of Of.
type Map struct {
	Of Type
}

func NewMap(of Type) *Map { return &Map{Of: of} }

func (*Map) Kind() Kind          { return KindMap }
func (m *Map) TypeName() string  { return "map[" + nameOf(m.Of, Type.TypeName) + "]" }
func (m *Map) ShortName() string { return "map[" + nameOf(m.Of, Type.ShortName) + "]" }
func (*Map) schemaType()         {}

func nameOf(t Type, fn func(Type) string) string {
	if t == nil {
		return ""
	}
	return fn(t)
}

type EnumValue struct {
	Name        string
	Value       string
	Description string
	Deprecation string
}

// Enum is a closed set of named values. Values may be empty.
type Enum struct {
	Name        string
	Plural      string
	Namespace   string
	Description string
	Values      []EnumValue
}

func (*Enum) Kind() Kind          { return KindEnum }
func (e *Enum) TypeName() string  { return qualify(e.Namespace, "enums", e.Name) }
func (e *Enum) ShortName() string { return e.Name }
func (*Enum) schemaType()         {}

// Field is a single model member.
type Field struct {
	Name        string
	Type        Type
	Required    bool
	Minimum     *int64
	Maximum     *int64
	Default     any
	Example     any
	Description string
	Deprecation string
}

// HasRange reports whether either bound is declared.
func (f *Field) HasRange() bool {
	return f.Minimum != nil || f.Maximum != nil
}

// Model is a record; Fields keep the declared order.
type Model struct {
	Name        string
	Plural      string
	Namespace   string
	Description string
	Fields      []*Field
}

func (*Model) Kind() Kind          { return KindModel }
func (m *Model) TypeName() string  { return qualify(m.Namespace, "models", m.Name) }
func (m *Model) ShortName() string { return m.Name }
func (*Model) schemaType()         {}

// Field returns the named field or nil.
func (m *Model) Field(name string) *Field {
	for _, f := range m.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// DefaultDiscriminator is the key used when a union declares none.
const DefaultDiscriminator = "discriminator"

// UnionType is one variant of a union.
type UnionType struct {
	Type Type
	// TypeName is the payload type as written in the union declaration.
	TypeName           string
	DiscriminatorValue string
	Description        string
	Deprecation        string
}

// Discriminator returns the explicit discriminator value, else the short
// name of the payload type.
func (u *UnionType) Discriminator() string {
	if u.DiscriminatorValue != "" {
		return u.DiscriminatorValue
	}
	if u.Type != nil {
		return u.Type.ShortName()
	}
	return shortName(u.TypeName)
}

// Matches reports whether name refers to this variant's payload type, either
// as declared or by its short name.
func (u *UnionType) Matches(name string) bool {
	if name == "" {
		return false
	}
	if u.TypeName == name {
		return true
	}
	if u.Type == nil {
		return false
	}
	return u.Type.TypeName() == name || u.Type.ShortName() == name
}

// Union is a discriminated choice between Types.
type Union struct {
	Name          string
	Plural        string
	Namespace     string
	Description   string
	Discriminator string
	Types         []*UnionType
}

func (*Union) Kind() Kind          { return KindUnion }
func (u *Union) TypeName() string  { return qualify(u.Namespace, "unions", u.Name) }
func (u *Union) ShortName() string { return u.Name }
func (*Union) schemaType()         {}

// DiscriminatorKey returns the declared discriminator or DefaultDiscriminator.
func (u *Union) DiscriminatorKey() string {
	if u.Discriminator != "" {
		return u.Discriminator
	}
	return DefaultDiscriminator
}

func (u *Union) String() string { return u.TypeName() }

func qualify(namespace, group, name string) string {
	if namespace == "" {
		return name
	}
	return namespace + "." + group + "." + name
}

func shortName(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i+1:]
	}
	return name
}
