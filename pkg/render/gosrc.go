package render

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"unicode"

	"github.com/dave/jennifer/jen"
	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
)

const defaultHeader = "Code generated by apimockgen. DO NOT EDIT."

// GoFile builds a Go source file declaring v as a package-level variable.
// Maps are emitted as map[string]interface{} with sorted keys and Objects
// keep their key order. Slices become []interface{}.
func GoFile(v any, opts Options) (*jen.File, error) {
	pkg := opts.Package
	if pkg == "" {
		pkg = "fixtures"
	}
	name := opts.Name
	if name == "" {
		name = "Fixture"
	}
	name = GoIdentifier(name)

	value, err := goValue(v)
	if err != nil {
		return nil, err
	}

	f := jen.NewFile(pkg)
	header := opts.Header
	if header == "" {
		header = defaultHeader
	}
	f.HeaderComment(header)
	if v == nil {
		f.Var().Id(name).Interface()
		return f, nil
	}
	f.Var().Id(name).Op("=").Add(value)
	return f, nil
}

func goValue(v any) (jen.Code, error) {
	switch x := v.(type) {
	case nil:
		return jen.Nil(), nil
	case string, bool, int, int64, float64:
		return jen.Lit(x), nil
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return goMap(keys, x)
	case Object:
		return goMap(x.Keys, x.Values)
	case []any:
		items := make([]jen.Code, 0, len(x))
		for i, e := range x {
			c, err := goValue(e)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			items = append(items, jen.Line().Add(c))
		}
		if len(items) > 0 {
			items = append(items, jen.Line())
		}
		return jen.Index().Interface().Values(items...), nil
	default:
		return reflectValue(v)
	}
}

func goMap(keys []string, values map[string]any) (jen.Code, error) {
	items := make([]jen.Code, 0, len(keys))
	for _, k := range keys {
		v, ok := values[k]
		if !ok {
			continue
		}
		c, err := goValue(v)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		items = append(items, jen.Line().Lit(k).Op(":").Add(c))
	}
	if len(items) > 0 {
		items = append(items, jen.Line())
	}
	return jen.Map(jen.String()).Interface().Values(items...), nil
}

// reflectValue handles override values of other shapes, such as []string or
// uint64 from decoded configuration.
func reflectValue(v any) (jen.Code, error) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		items := make([]any, rv.Len())
		for i := range items {
			items[i] = rv.Index(i).Interface()
		}
		return goValue(items)
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		m := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			m[iter.Key().String()] = iter.Value().Interface()
		}
		return goValue(m)
	case reflect.String:
		return jen.Lit(rv.String()), nil
	case reflect.Bool:
		return jen.Lit(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return jen.Lit(int(rv.Int())), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return jen.Lit(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return jen.Lit(rv.Float()), nil
	}
	return nil, fmt.Errorf("unsupported value type %T", v)
}

// GoIdentifier turns a schema name such as "response_code" into an exported
// Go identifier ("ResponseCode").
func GoIdentifier(name string) string {
	var sb strings.Builder
	upper := true
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		sb.WriteRune(r)
	}
	id := sb.String()
	if id == "" || unicode.IsDigit(rune(id[0])) {
		id = "X" + id
	}
	return id
}

// InferPackage returns the Go package name for dir: the base name of the
// import path derived from the nearest enclosing go.mod, or of dir itself when
// no module is found.
func InferPackage(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return packageName(filepath.Base(dir))
	}
	if importPath, err := importPathFor(abs); err == nil {
		prefix, _, _ := module.SplitPathVersion(importPath)
		return packageName(prefix[strings.LastIndex(prefix, "/")+1:])
	}
	return packageName(filepath.Base(abs))
}

// importPathFor walks up from dir until it finds go.mod and joins the module
// path with dir's relative location.
func importPathFor(dir string) (string, error) {
	from := dir
	for {
		data, err := os.ReadFile(filepath.Join(from, "go.mod"))
		if err == nil {
			modPath := modfile.ModulePath(data)
			if modPath == "" {
				return "", fmt.Errorf("no module path in %s", filepath.Join(from, "go.mod"))
			}
			rel, err := filepath.Rel(from, dir)
			if err != nil {
				return "", err
			}
			if rel == "." {
				return modPath, nil
			}
			return modPath + "/" + filepath.ToSlash(rel), nil
		}
		parent := filepath.Dir(from)
		if parent == from {
			return "", fmt.Errorf("no go.mod found")
		}
		from = parent
	}
}

func packageName(s string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(s) {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
		}
	}
	name := sb.String()
	if name == "" || unicode.IsDigit(rune(name[0])) {
		return "fixtures"
	}
	return name
}
