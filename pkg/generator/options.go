package generator

const (
	DefaultMinimum = 0
	DefaultMaximum = 3
	// MaxLength caps every generated array and ranged string length.
	MaxLength = 1024
)

// Options control a single generation call. Which fields apply depends on
// the variant of the type being generated.
//
// Minimum      – lower bound on generated array length (default 0).
// Maximum      – upper bound on generated array length (default 3).
// OnlyRequired – omit optional model fields that have no override.
// UseDefault   – use the declared default of optional model fields.
// UseExample   – use the declared example of model fields.
// Properties   – field name → override value, used verbatim. For a union whose
//                variant is a primitive or enum, the "value" key overrides the payload.
// Variant      – union variant to generate, by payload type name; random when empty.
// Note: options apply to the top-level type only; nested types are generated with defaults.
type Options struct {
	Minimum      *int           `json:"minimum,omitempty" yaml:"minimum,omitempty" mapstructure:"minimum,omitempty"`
	Maximum      *int           `json:"maximum,omitempty" yaml:"maximum,omitempty" mapstructure:"maximum,omitempty"`
	OnlyRequired bool           `json:"only_required,omitempty" yaml:"only_required,omitempty" mapstructure:"only_required,omitempty"`
	UseDefault   bool           `json:"use_default,omitempty" yaml:"use_default,omitempty" mapstructure:"use_default,omitempty"`
	UseExample   bool           `json:"use_example,omitempty" yaml:"use_example,omitempty" mapstructure:"use_example,omitempty"`
	Properties   map[string]any `json:"properties,omitempty" yaml:"properties,omitempty" mapstructure:"properties,omitempty"`
	Variant      string         `json:"variant,omitempty" yaml:"variant,omitempty" mapstructure:"variant,omitempty"`
}

// Bounds returns the array length range with defaults applied, both bounds
// clamped to [0, MaxLength]. The upper bound is never below the lower one.
func (o *Options) Bounds() (int, int) {
	lo, hi := DefaultMinimum, DefaultMaximum
	if o != nil && o.Minimum != nil {
		lo = *o.Minimum
	}
	if o != nil && o.Maximum != nil {
		hi = *o.Maximum
	}
	lo = min(max(lo, 0), MaxLength)
	return lo, min(max(lo, hi), MaxLength)
}

// Override returns the override for name and whether one was supplied.
// A supplied nil override counts.
func (o *Options) Override(name string) (any, bool) {
	if o == nil || o.Properties == nil {
		return nil, false
	}
	v, ok := o.Properties[name]
	return v, ok
}

// Apply returns a copy of o with opts applied; o itself is not modified.
func (o Options) Apply(opts ...Option) *Options {
	if len(o.Properties) > 0 {
		props := make(map[string]any, len(o.Properties))
		for k, v := range o.Properties {
			props[k] = v
		}
		o.Properties = props
	}
	for _, fn := range opts {
		fn(&o)
	}
	return &o
}

// functional option pattern ---------------------------------------------------

type Option func(*Options)

func WithMinimum(n int) Option       { return func(o *Options) { o.Minimum = &n } }
func WithMaximum(n int) Option       { return func(o *Options) { o.Maximum = &n } }
func WithOnlyRequired() Option       { return func(o *Options) { o.OnlyRequired = true } }
func WithUseDefault() Option         { return func(o *Options) { o.UseDefault = true } }
func WithUseExample() Option         { return func(o *Options) { o.UseExample = true } }
func WithVariant(name string) Option { return func(o *Options) { o.Variant = name } }
func WithProperties(props map[string]any) Option {
	return func(o *Options) {
		for k, v := range props {
			WithProperty(k, v)(o)
		}
	}
}
func WithProperty(name string, value any) Option {
	return func(o *Options) {
		if o.Properties == nil {
			o.Properties = make(map[string]any)
		}
		o.Properties[name] = value
	}
}

// WithOptions replaces every field with the values from src.
func WithOptions(src Options) Option {
	return func(o *Options) { *o = *src.Apply() }
}
