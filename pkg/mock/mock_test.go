package mock

import (
	"bytes"
	"log/slog"
	"regexp"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/cmmoran/apimockgen/pkg/generator"
	"github.com/cmmoran/apimockgen/pkg/parser"
	"github.com/cmmoran/apimockgen/pkg/schema"
)

var uuidPattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

func petstore(t *testing.T) *schema.Service {
	t.Helper()
	svc, err := parser.Load("../../testdata/petstore/service.json")
	require.NoError(t, err)
	return svc
}

func TestGenerator_Model(t *testing.T) {
	g := New(petstore(t), WithSeed(1))

	for range 50 {
		pet, err := g.Model("pet")
		require.NoError(t, err)

		require.Regexp(t, uuidPattern, pet["id"])
		require.Contains(t, []any{"labrador", "poodle", "beagle"}, pet["breed"])
		name, ok := pet["name"].(string)
		require.True(t, ok)
		require.Regexp(t, `^[a-z0-9]{1,12}$`, name)
		require.Contains(t, pet, "created_at")
		require.Contains(t, pet, "legacy_code", "deprecated fields are generated unless excluded")
		if tags, ok := pet["tags"]; ok {
			require.GreaterOrEqual(t, len(tags.([]any)), 1)
			require.LessOrEqual(t, len(tags.([]any)), 2)
		}
	}

	pet, err := g.Model("pet", generator.WithOnlyRequired(), generator.WithUseExample(),
		generator.WithProperty("id", "c0ffee"))
	require.NoError(t, err)
	require.Equal(t, "c0ffee", pet["id"])
	require.Equal(t, "rex", pet["name"])
	require.NotContains(t, pet, "status")
	require.NotContains(t, pet, "tags")

	_, err = g.Model("breed")
	require.ErrorIs(t, err, schema.ErrNotFound)
	require.Contains(t, err.Error(), `"breed" did not match a model`)

	_, err = g.Model("cat")
	require.ErrorIs(t, err, schema.ErrNotFound)
}

func TestGenerator_Enum(t *testing.T) {
	g := New(petstore(t), WithSeed(2))

	v, err := g.Enum("breed")
	require.NoError(t, err)
	require.Contains(t, []any{"labrador", "poodle", "beagle"}, v)

	v, err = g.Enum("io.apibuilder.petstore.v0.enums.status")
	require.NoError(t, err)
	require.Contains(t, []any{"available", "pending", "sold", "retired"}, v)

	v, err = g.Enum("color")
	require.NoError(t, err)
	require.Nil(t, v)

	_, err = g.Enum("pet")
	require.ErrorIs(t, err, schema.ErrNotFound)
	require.Contains(t, err.Error(), `"pet" did not match an enum`)
}

func TestGenerator_Union(ttt *testing.T) {
	tests := []struct {
		name    string
		union   string
		variant string
		check   func(t *testing.T, v map[string]any)
	}{
		{
			name:    "response code integer",
			union:   "response_code",
			variant: "integer",
			check: func(t *testing.T, v map[string]any) {
				require.Equal(t, "integer", v["discriminator"])
				require.IsType(t, int64(0), v["value"])
				require.Len(t, v, 2)
			},
		},
		{
			name:    "response code enum",
			union:   "response_code",
			variant: "breed",
			check: func(t *testing.T, v map[string]any) {
				require.Equal(t, "breed", v["discriminator"])
				require.Contains(t, []any{"labrador", "poodle", "beagle"}, v["value"])
			},
		},
		{
			name:    "model payload",
			union:   "animal",
			variant: "pet",
			check: func(t *testing.T, v map[string]any) {
				require.Equal(t, "pet", v["type"])
				require.Regexp(t, uuidPattern, v["id"])
			},
		},
		{
			name:    "discriminator value",
			union:   "animal",
			variant: "io.apibuilder.petstore.v0.models.owner",
			check: func(t *testing.T, v map[string]any) {
				require.Equal(t, "person", v["type"])
				require.Contains(t, v, "name")
			},
		},
	}
	for _, tt := range tests {
		ttt.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			g := New(petstore(t), WithSeed(3))
			v, err := g.Union(tt.union, generator.WithVariant(tt.variant))
			require.NoError(t, err)
			tt.check(t, v)
		})
	}
}

func TestGenerator_Union_Errors(t *testing.T) {
	g := New(petstore(t), WithSeed(4))

	_, err := g.Union("animal", generator.WithVariant("breed"))
	require.ErrorIs(t, err, generator.ErrUnknownVariant)

	_, err = g.Union("pet")
	require.ErrorIs(t, err, schema.ErrNotFound)
	require.Contains(t, err.Error(), `"pet" did not match a union`)
}

func TestGenerator_Type(t *testing.T) {
	g := New(petstore(t), WithSeed(5))

	v, err := g.Type("[pet]", generator.WithMinimum(2), generator.WithMaximum(2))
	require.NoError(t, err)
	require.Len(t, v, 2)

	v, err = g.Type("map[uuid]")
	require.NoError(t, err)
	for _, id := range v.(map[string]any) {
		require.Regexp(t, uuidPattern, id)
	}

	v, err = g.Type("unit")
	require.NoError(t, err)
	require.Nil(t, v)

	_, err = g.Type("[cat]")
	require.ErrorIs(t, err, schema.ErrUnknownType)
}

func TestGenerator_Response(ttt *testing.T) {
	tests := []struct {
		name    string
		params  ResponseParams
		check   func(t *testing.T, v any)
		wantErr error
	}{
		{
			name:   "list",
			params: ResponseParams{Method: "GET", Path: "/pets", Code: 200},
			check: func(t *testing.T, v any) {
				require.IsType(t, []any{}, v)
			},
		},
		{
			name:   "single model",
			params: ResponseParams{Method: "get", Path: "/pets/:id", Code: 200},
			check: func(t *testing.T, v any) {
				require.Contains(t, v, "id")
			},
		},
		{
			name:   "unit",
			params: ResponseParams{Method: "GET", Path: "/pets/:id", Code: 404},
			check: func(t *testing.T, v any) {
				require.Nil(t, v)
			},
		},
		{
			name:   "default response",
			params: ResponseParams{Method: "GET", Path: "/pets/:id", Code: 503, UseDefault: true},
			check: func(t *testing.T, v any) {
				m := v.(map[string]any)
				require.Contains(t, m, "code")
				require.Contains(t, m, "message")
			},
		},
		{
			name:    "undeclared code without default",
			params:  ResponseParams{Method: "GET", Path: "/pets/:id", Code: 503},
			wantErr: schema.ErrNotFound,
		},
		{
			name:    "no response",
			params:  ResponseParams{Method: "DELETE", Path: "/pets/:id", Code: 500, UseDefault: true},
			wantErr: schema.ErrNotFound,
		},
		{
			name:    "no operation",
			params:  ResponseParams{Method: "PATCH", Path: "/pets/:id", Code: 200},
			wantErr: schema.ErrNotFound,
		},
	}
	for _, tt := range tests {
		ttt.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			g := New(petstore(t), WithSeed(6))
			v, err := g.Response(tt.params)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, v)
		})
	}
}

func TestGenerator_Response_Overrides(t *testing.T) {
	g := New(petstore(t), WithSeed(7))
	v, err := g.Response(ResponseParams{Method: "POST", Path: "/pets", Code: 409, UseDefault: true},
		generator.WithUseExample(), generator.WithProperty("message", "conflict"))
	require.NoError(t, err)
	require.Equal(t, map[string]any{"code": "not_found", "message": "conflict"}, v)
}

func TestWithSeed_Reproducible(t *testing.T) {
	svc := petstore(t)
	a, err := New(svc, WithSeed(99)).Model("owner")
	require.NoError(t, err)
	b, err := New(svc, WithSeed(99)).Model("owner")
	require.NoError(t, err)

	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("same seed produced different owners:\n%s", diff)
	}
}

func TestWithLogger(t *testing.T) {
	buf := new(bytes.Buffer)
	l := slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	g := New(petstore(t), WithSeed(8), WithLogger(l))

	_, err := g.Union("animal")
	require.NoError(t, err)
	require.Contains(t, buf.String(), `"msg":"generated union"`)
	require.Contains(t, buf.String(), `"union":"io.apibuilder.petstore.v0.unions.animal"`)
	require.NotNil(t, g.Service())
}

const scenarios = `{
  "name": "scenarios",
  "enums": [
    {"name": "breed", "values": [{"name": "russian_blue"}, {"name": "persian"}, {"name": "siamese"}, {"name": "maine_coon"}]}
  ],
  "models": [
    {"name": "pet", "fields": [
      {"name": "name", "type": "string", "required": true},
      {"name": "age", "type": "integer", "required": true}
    ]},
    {"name": "collar", "fields": [
      {"name": "color", "type": "string", "required": false, "default": "red", "example": "blue"}
    ]}
  ],
  "unions": [
    {"name": "response_code", "types": [{"type": "integer"}]},
    {"name": "tagged", "discriminator": "kind", "types": [{"type": "pet", "discriminator_value": "animal"}]}
  ]
}`

func TestScenarios(t *testing.T) {
	svc, err := parser.Decode([]byte(scenarios), parser.FormatJSON)
	require.NoError(t, err)

	for seed := uint64(0); seed < 25; seed++ {
		g := New(svc, WithSeed(seed))

		pet, err := g.Model("pet")
		require.NoError(t, err)
		require.Len(t, pet, 2)
		require.IsType(t, "", pet["name"])
		require.IsType(t, int64(0), pet["age"])

		rc, err := g.Union("response_code")
		require.NoError(t, err)
		require.Len(t, rc, 2)
		require.Equal(t, "integer", rc["discriminator"])
		require.IsType(t, int64(0), rc["value"])

		tagged, err := g.Union("tagged")
		require.NoError(t, err)
		require.Equal(t, "animal", tagged["kind"])
		require.NotContains(t, tagged, "discriminator")

		breed, err := g.Enum("breed")
		require.NoError(t, err)
		require.Contains(t, []any{"russian_blue", "persian", "siamese", "maine_coon"}, breed)
	}
}

func TestScenarios_FieldPrecedence(ttt *testing.T) {
	svc, err := parser.Decode([]byte(scenarios), parser.FormatJSON)
	require.NoError(ttt, err)

	tests := []struct {
		name string
		opts []generator.Option
		want any
	}{
		{name: "example", opts: []generator.Option{generator.WithUseExample()}, want: "blue"},
		{name: "example before default", opts: []generator.Option{generator.WithUseExample(), generator.WithUseDefault()}, want: "blue"},
		{name: "default", opts: []generator.Option{generator.WithUseDefault()}, want: "red"},
		{
			name: "override",
			opts: []generator.Option{generator.WithUseExample(), generator.WithUseDefault(), generator.WithOnlyRequired(), generator.WithProperty("color", "green")},
			want: "green",
		},
	}
	for _, tt := range tests {
		ttt.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			collar, err := New(svc, WithSeed(1)).Model("collar", tt.opts...)
			require.NoError(t, err)
			require.Equal(t, tt.want, collar["color"])
		})
	}

	collar, err := New(svc, WithSeed(1)).Model("collar", generator.WithOnlyRequired(), generator.WithUseExample())
	require.NoError(ttt, err)
	require.Empty(ttt, collar)
}
