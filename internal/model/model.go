package model

// RawService is an apibuilder service.json document as read from disk.
// Type references are still plain strings ("[pet]", "map[string]", "uuid").
type RawService struct {
	Name      string         `json:"name" yaml:"name"`
	Namespace string         `json:"namespace" yaml:"namespace"`
	Version   string         `json:"version,omitempty" yaml:"version,omitempty"`
	BaseURL   string         `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	Enums     []*RawEnum     `json:"enums,omitempty" yaml:"enums,omitempty"`
	Models    []*RawModel    `json:"models,omitempty" yaml:"models,omitempty"`
	Unions    []*RawUnion    `json:"unions,omitempty" yaml:"unions,omitempty"`
	Resources []*RawResource `json:"resources,omitempty" yaml:"resources,omitempty"`
}

type RawEnum struct {
	Name        string          `json:"name" yaml:"name"`
	Plural      string          `json:"plural,omitempty" yaml:"plural,omitempty"`
	Description string          `json:"description,omitempty" yaml:"description,omitempty"`
	Deprecation *RawDeprecation `json:"deprecation,omitempty" yaml:"deprecation,omitempty"`
	Values      []*RawEnumValue `json:"values" yaml:"values"`
}

type RawEnumValue struct {
	Name        string          `json:"name" yaml:"name"`
	Value       string          `json:"value,omitempty" yaml:"value,omitempty"`
	Description string          `json:"description,omitempty" yaml:"description,omitempty"`
	Deprecation *RawDeprecation `json:"deprecation,omitempty" yaml:"deprecation,omitempty"`
}

type RawModel struct {
	Name        string          `json:"name" yaml:"name"`
	Plural      string          `json:"plural,omitempty" yaml:"plural,omitempty"`
	Description string          `json:"description,omitempty" yaml:"description,omitempty"`
	Deprecation *RawDeprecation `json:"deprecation,omitempty" yaml:"deprecation,omitempty"`
	Fields      []*RawField     `json:"fields" yaml:"fields"`
}

type RawField struct {
	Name        string          `json:"name" yaml:"name"`
	Type        string          `json:"type" yaml:"type"`
	Required    *bool           `json:"required,omitempty" yaml:"required,omitempty"`
	Default     any             `json:"default,omitempty" yaml:"default,omitempty"`
	Example     any             `json:"example,omitempty" yaml:"example,omitempty"`
	Minimum     *int64          `json:"minimum,omitempty" yaml:"minimum,omitempty"`
	Maximum     *int64          `json:"maximum,omitempty" yaml:"maximum,omitempty"`
	Description string          `json:"description,omitempty" yaml:"description,omitempty"`
	Deprecation *RawDeprecation `json:"deprecation,omitempty" yaml:"deprecation,omitempty"`
}

type RawUnion struct {
	Name          string          `json:"name" yaml:"name"`
	Plural        string          `json:"plural,omitempty" yaml:"plural,omitempty"`
	Discriminator string          `json:"discriminator,omitempty" yaml:"discriminator,omitempty"`
	Description   string          `json:"description,omitempty" yaml:"description,omitempty"`
	Deprecation   *RawDeprecation `json:"deprecation,omitempty" yaml:"deprecation,omitempty"`
	Types         []*RawUnionType `json:"types" yaml:"types"`
}

type RawUnionType struct {
	Type               string          `json:"type" yaml:"type"`
	DiscriminatorValue string          `json:"discriminator_value,omitempty" yaml:"discriminator_value,omitempty"`
	Description        string          `json:"description,omitempty" yaml:"description,omitempty"`
	Deprecation        *RawDeprecation `json:"deprecation,omitempty" yaml:"deprecation,omitempty"`
}

type RawResource struct {
	Type       string          `json:"type" yaml:"type"`
	Plural     string          `json:"plural,omitempty" yaml:"plural,omitempty"`
	Path       *string         `json:"path,omitempty" yaml:"path,omitempty"`
	Operations []*RawOperation `json:"operations" yaml:"operations"`
}

type RawOperation struct {
	Method      string         `json:"method" yaml:"method"`
	Path        string         `json:"path" yaml:"path"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Responses   []*RawResponse `json:"responses,omitempty" yaml:"responses,omitempty"`
}

// RawResponse.Code is one of {"integer": {"value": 200}},
// {"response_code_option": "Default"}, a number, or a numeric string.
type RawResponse struct {
	Code        any    `json:"code" yaml:"code"`
	Type        string `json:"type" yaml:"type"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

type RawDeprecation struct {
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Deprecated reports whether d marks its owner as deprecated, returning the
// deprecation note.
func (d *RawDeprecation) Deprecated() (string, bool) {
	if d == nil {
		return "", false
	}
	if d.Description == "" {
		return "deprecated", true
	}
	return d.Description, true
}
