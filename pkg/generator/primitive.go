package generator

import (
	"github.com/cmmoran/apimockgen/pkg/schema"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02T15:04:05.000Z07:00"
)

// Primitive returns a scalar for p, or nil for unit and unknown kinds.
func (g *Generator) Primitive(p *schema.Primitive) any {
	if p == nil {
		return nil
	}
	switch p.Name {
	case schema.String:
		return g.src.Word()
	case schema.Boolean:
		return g.src.Bool()
	case schema.Date:
		return g.src.FutureTime().UTC().Format(dateLayout)
	case schema.DateTime:
		return g.src.FutureTime().UTC().Format(dateTimeLayout)
	case schema.Decimal, schema.Double:
		return g.src.Float()
	case schema.Integer, schema.Long:
		return g.src.Number()
	case schema.JSON:
		return "{}"
	case schema.Object:
		return map[string]any{}
	case schema.UUID:
		return g.src.UUID()
	case schema.Unit:
		return nil
	default:
		return nil
	}
}

