package parser

import (
	"github.com/cmmoran/apimockgen/internal/model"
)

// shouldOmitField determines whether a raw field of the named model should be
// dropped, either by an explicit field filter or because it is deprecated.
func shouldOmitField(modelName string, f *model.RawField, opts *Options) bool {
	if f == nil {
		return true
	}
	if _, deprecated := f.Deprecation.Deprecated(); deprecated && opts.ExcludeDeprecated {
		return true
	}
	for _, ff := range opts.ExcludeFields {
		if ff.Field != f.Name {
			continue
		}
		if ff.Model == "" || ff.Model == modelName {
			return true
		}
	}
	return false
}

func shouldOmitEnumValue(v *model.RawEnumValue, opts *Options) bool {
	if v == nil {
		return true
	}
	_, deprecated := v.Deprecation.Deprecated()
	return deprecated && opts.ExcludeDeprecated
}

func shouldOmitUnionType(t *model.RawUnionType, opts *Options) bool {
	if t == nil {
		return true
	}
	_, deprecated := t.Deprecation.Deprecated()
	return deprecated && opts.ExcludeDeprecated
}
