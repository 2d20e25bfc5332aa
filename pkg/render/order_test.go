package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/cmmoran/apimockgen/pkg/schema"
)

func ownerModel() *schema.Model {
	return &schema.Model{Name: "owner", Fields: []*schema.Field{
		{Name: "name", Type: schema.NewPrimitive(schema.String)},
		{Name: "age", Type: schema.NewPrimitive(schema.Long)},
	}}
}

func dogModel() *schema.Model {
	return &schema.Model{Name: "dog", Fields: []*schema.Field{
		{Name: "name", Type: schema.NewPrimitive(schema.String)},
		{Name: "id", Type: schema.NewPrimitive(schema.UUID)},
		{Name: "owner", Type: ownerModel()},
	}}
}

func dog() map[string]any {
	return map[string]any{
		"id":    "x",
		"name":  "rex",
		"owner": map[string]any{"age": int64(3), "name": "bob"},
		"zeta":  1,
	}
}

func TestRender_Ordered(ttt *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{
			format: FormatJSON,
			want: `{
  "name": "rex",
  "id": "x",
  "owner": {
    "name": "bob",
    "age": 3
  },
  "zeta": 1
}
`,
		},
		{
			format: FormatYAML,
			want: `name: rex
id: x
owner:
  name: bob
  age: 3
zeta: 1
`,
		},
	}
	for _, tt := range tests {
		ttt.Run(string(tt.format), func(t *testing.T) {
			t.Parallel()
			buf := new(bytes.Buffer)
			require.NoError(t, Render(buf, Ordered(dog(), dogModel()), Options{Format: tt.format}))
			require.Equal(t, tt.want, buf.String())
		})
	}
}

func TestRender_Ordered_Go(t *testing.T) {
	buf := new(bytes.Buffer)
	require.NoError(t, Render(buf, Ordered(dog(), dogModel()), Options{Format: FormatGo, Name: "dog"}))
	out := buf.String()

	name, id, zeta := strings.Index(out, `"name"`), strings.Index(out, `"id"`), strings.Index(out, `"zeta"`)
	require.Positive(t, name)
	require.Less(t, name, id)
	require.Less(t, id, zeta)
	require.Less(t, strings.Index(out, `"bob"`), strings.Index(out, `"age"`))
}

func TestOrdered(ttt *testing.T) {
	animal := &schema.Union{Name: "animal", Discriminator: "type", Types: []*schema.UnionType{
		{Type: dogModel(), TypeName: "dog"},
		{Type: schema.NewPrimitive(schema.Integer), TypeName: "integer"},
	}}
	code := &schema.Union{Name: "code", Types: []*schema.UnionType{
		{Type: schema.NewPrimitive(schema.Integer), TypeName: "integer"},
	}}

	tests := []struct {
		name string
		v    any
		t    schema.Type
		want any
	}{
		{
			name: "union with a model payload",
			v:    map[string]any{"id": "x", "type": "dog", "name": "rex"},
			t:    animal,
			want: Object{Keys: []string{"type", "name", "id"}, Values: map[string]any{"id": "x", "type": "dog", "name": "rex"}},
		},
		{
			name: "union with a primitive payload",
			v:    map[string]any{"value": int64(4), "discriminator": "integer"},
			t:    code,
			want: Object{Keys: []string{"discriminator", "value"}, Values: map[string]any{"value": int64(4), "discriminator": "integer"}},
		},
		{
			name: "array of models",
			v:    []any{map[string]any{"id": "x", "name": "rex"}},
			t:    schema.NewArray(dogModel()),
			want: []any{Object{Keys: []string{"name", "id"}, Values: map[string]any{"id": "x", "name": "rex"}}},
		},
		{
			name: "map of models",
			v:    map[string]any{"a": map[string]any{"age": int64(1), "name": "bob"}},
			t:    schema.NewMap(ownerModel()),
			want: map[string]any{"a": Object{Keys: []string{"name", "age"}, Values: map[string]any{"age": int64(1), "name": "bob"}}},
		},
		{
			name: "override of another shape",
			v:    []string{"a"},
			t:    schema.NewArray(dogModel()),
			want: []string{"a"},
		},
		{
			name: "scalar",
			v:    "rex",
			t:    dogModel(),
			want: "rex",
		},
		{
			name: "no descriptor",
			v:    map[string]any{"a": 1},
			want: map[string]any{"a": 1},
		},
	}
	for _, tt := range tests {
		ttt.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if diff := cmp.Diff(tt.want, Ordered(tt.v, tt.t)); diff != "" {
				t.Errorf("Ordered() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
