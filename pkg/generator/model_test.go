package generator

import (
	"math"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/cmmoran/apimockgen/pkg/faker"
	"github.com/cmmoran/apimockgen/pkg/schema"
)

func int64p(n int64) *int64 { return &n }

func petModel() *schema.Model {
	status := &schema.Enum{Name: "status", Values: []schema.EnumValue{{Name: "available"}, {Name: "pending"}}}
	return &schema.Model{Name: "pet", Fields: []*schema.Field{
		{Name: "id", Type: schema.NewPrimitive(schema.UUID), Required: true},
		{Name: "name", Type: schema.NewPrimitive(schema.String), Required: true, Minimum: int64p(1), Maximum: int64p(12), Example: "rex"},
		{Name: "status", Type: status, Default: "available"},
		{Name: "tags", Type: schema.NewArray(schema.NewPrimitive(schema.String)), Minimum: int64p(1), Maximum: int64p(2)},
		{Name: "nickname", Type: schema.NewPrimitive(schema.String)},
		{Name: "nothing", Type: schema.NewPrimitive(schema.Unit)},
	}}
}

func TestGenerator_Model(ttt *testing.T) {
	tests := []struct {
		name string
		opts []Option
		want map[string]any
	}{
		{
			name: "defaults",
			want: map[string]any{
				"id":       stubUUID,
				"name":     "aaaaaaaaaaaa",
				"status":   "pending",
				"tags":     []any{"word", "word"},
				"nickname": "word",
			},
		},
		{
			name: "only required",
			opts: []Option{WithOnlyRequired()},
			want: map[string]any{
				"id":   stubUUID,
				"name": "aaaaaaaaaaaa",
			},
		},
		{
			name: "only required keeps overridden optional fields",
			opts: []Option{WithOnlyRequired(), WithProperty("nickname", "rover")},
			want: map[string]any{
				"id":       stubUUID,
				"name":     "aaaaaaaaaaaa",
				"nickname": "rover",
			},
		},
		{
			name: "only required wins over examples",
			opts: []Option{WithOnlyRequired(), WithUseExample()},
			want: map[string]any{
				"id":   stubUUID,
				"name": "rex",
			},
		},
		{
			name: "use example",
			opts: []Option{WithUseExample()},
			want: map[string]any{
				"id":       stubUUID,
				"name":     "rex",
				"status":   "pending",
				"tags":     []any{"word", "word"},
				"nickname": "word",
			},
		},
		{
			name: "use default",
			opts: []Option{WithUseDefault()},
			want: map[string]any{
				"id":       stubUUID,
				"name":     "aaaaaaaaaaaa",
				"status":   "available",
				"tags":     []any{"word", "word"},
				"nickname": "word",
			},
		},
		{
			name: "override wins over example",
			opts: []Option{WithUseExample(), WithProperties(map[string]any{"name": "fido", "tags": []string{"x"}})},
			want: map[string]any{
				"id":       stubUUID,
				"name":     "fido",
				"status":   "pending",
				"tags":     []string{"x"},
				"nickname": "word",
			},
		},
		{
			name: "nil override is kept",
			opts: []Option{WithProperty("nickname", nil), WithProperty("nothing", nil)},
			want: map[string]any{
				"id":       stubUUID,
				"name":     "aaaaaaaaaaaa",
				"status":   "pending",
				"tags":     []any{"word", "word"},
				"nickname": nil,
				"nothing":  nil,
			},
		},
		{
			name: "unknown properties are ignored",
			opts: []Option{WithProperty("owner", "bob")},
			want: map[string]any{
				"id":       stubUUID,
				"name":     "aaaaaaaaaaaa",
				"status":   "pending",
				"tags":     []any{"word", "word"},
				"nickname": "word",
			},
		},
		{
			name: "array bounds do not reach fields",
			opts: []Option{WithMinimum(7), WithMaximum(7)},
			want: map[string]any{
				"id":       stubUUID,
				"name":     "aaaaaaaaaaaa",
				"status":   "pending",
				"tags":     []any{"word", "word"},
				"nickname": "word",
			},
		},
	}
	for _, tt := range tests {
		ttt.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := New(&stubSource{pick: 1}).Model(petModel(), tt.opts...)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Model() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGenerator_Model_Ranges(ttt *testing.T) {
	str := schema.NewPrimitive(schema.String)
	tests := []struct {
		name      string
		field     *schema.Field
		atMin     bool
		wantRange [2]int
		want      any
	}{
		{
			name:      "string with both bounds",
			field:     &schema.Field{Name: "code", Type: str, Minimum: int64p(2), Maximum: int64p(6)},
			wantRange: [2]int{2, 6},
			want:      "aaaaaa",
		},
		{
			name:      "string with only a minimum",
			field:     &schema.Field{Name: "code", Type: str, Minimum: int64p(3)},
			atMin:     true,
			wantRange: [2]int{3, 24},
			want:      "aaa",
		},
		{
			name:      "string minimum above the default maximum",
			field:     &schema.Field{Name: "code", Type: str, Minimum: int64p(30)},
			wantRange: [2]int{30, 30},
			want:      "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		},
		{
			name:      "string with only a maximum",
			field:     &schema.Field{Name: "code", Type: str, Maximum: int64p(4)},
			wantRange: [2]int{0, 4},
			want:      "aaaa",
		},
		{
			name:      "string with inverted bounds",
			field:     &schema.Field{Name: "code", Type: str, Minimum: int64p(5), Maximum: int64p(2)},
			wantRange: [2]int{5, 5},
			want:      "aaaaa",
		},
		{
			name:      "array with only a minimum",
			field:     &schema.Field{Name: "tags", Type: schema.NewArray(str), Minimum: int64p(4)},
			wantRange: [2]int{4, 4},
			want:      []any{"word", "word", "word", "word"},
		},
		{
			name:      "string maximum beyond the length cap",
			field:     &schema.Field{Name: "code", Type: str, Minimum: int64p(0), Maximum: int64p(math.MaxInt64)},
			wantRange: [2]int{0, MaxLength},
			want:      strings.Repeat("a", MaxLength),
		},
		{
			name:      "string with a negative minimum",
			field:     &schema.Field{Name: "code", Type: str, Minimum: int64p(-5), Maximum: int64p(2)},
			atMin:     true,
			wantRange: [2]int{0, 2},
			want:      "",
		},
		{
			name:      "array minimum beyond the length cap",
			field:     &schema.Field{Name: "tags", Type: schema.NewArray(str), Minimum: int64p(math.MaxInt64)},
			wantRange: [2]int{MaxLength, MaxLength},
			want:      slices.Repeat([]any{"word"}, MaxLength),
		},
		{
			name:      "range on other types is ignored",
			field:     &schema.Field{Name: "age", Type: schema.NewPrimitive(schema.Integer), Minimum: int64p(1), Maximum: int64p(3)},
			wantRange: [2]int{-1, -1},
			want:      int64(42),
		},
	}
	for _, tt := range tests {
		ttt.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tt.field.Required = true
			src := &stubSource{atMin: tt.atMin}
			got, err := New(src).Model(&schema.Model{Name: "m", Fields: []*schema.Field{tt.field}})
			require.NoError(t, err)
			require.Equal(t, tt.want, got[tt.field.Name])
			if tt.wantRange == [2]int{-1, -1} {
				require.Empty(t, src.ranges)
				return
			}
			require.Equal(t, [][2]int{tt.wantRange}, src.ranges)
		})
	}
}

func TestGenerator_Model_Faker(t *testing.T) {
	m := petModel()
	for seed := uint64(0); seed < 100; seed++ {
		got, err := New(faker.New(seed)).Model(m)
		require.NoError(t, err)

		require.Regexp(t, uuidPattern, got["id"])
		name, ok := got["name"].(string)
		require.True(t, ok)
		require.GreaterOrEqual(t, len(name), 1)
		require.LessOrEqual(t, len(name), 12)
		require.Regexp(t, `^[a-z0-9]+$`, name)

		tags, ok := got["tags"].([]any)
		require.True(t, ok)
		require.GreaterOrEqual(t, len(tags), 1)
		require.LessOrEqual(t, len(tags), 2)

		require.NotContains(t, got, "nothing")
	}
}

func TestGenerator_Model_Faker_LargeBounds(t *testing.T) {
	m := &schema.Model{Name: "blob", Fields: []*schema.Field{
		{Name: "s", Type: schema.NewPrimitive(schema.String), Required: true, Minimum: int64p(0), Maximum: int64p(math.MaxInt64)},
		{Name: "tags", Type: schema.NewArray(schema.NewPrimitive(schema.Boolean)), Required: true, Maximum: int64p(math.MaxInt64)},
	}}
	for seed := uint64(0); seed < 20; seed++ {
		got, err := New(faker.New(seed)).Model(m)
		require.NoError(t, err)
		require.LessOrEqual(t, len(got["s"].(string)), MaxLength)
		if tags, ok := got["tags"].([]any); ok {
			require.LessOrEqual(t, len(tags), MaxLength)
		}
	}
}
