package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/cmmoran/apimockgen/pkg/schema"
)

// Object is a record whose keys render in the order of Keys rather than
// sorted. Keys not present in Values are skipped.
type Object struct {
	Keys   []string
	Values map[string]any
}

func (o Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for _, k := range o.Keys {
		v, ok := o.Values[k]
		if !ok {
			continue
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (o Object) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range o.Keys {
		v, ok := o.Values[k]
		if !ok {
			continue
		}
		var vn yaml.Node
		if err := vn.Encode(v); err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}, &vn)
	}
	return node, nil
}

// Ordered rewrites the records of v, a value generated for t, into Objects
// listing model fields in declaration order. A union lists its discriminator
// first. Keys the descriptor does not declare follow, sorted. Values that do
// not have the shape t describes are returned unchanged.
func Ordered(v any, t schema.Type) any {
	switch tt := t.(type) {
	case *schema.Model:
		m, ok := v.(map[string]any)
		if !ok || tt == nil {
			return v
		}
		return orderedObject(m, nil, tt)
	case *schema.Union:
		m, ok := v.(map[string]any)
		if !ok || tt == nil {
			return v
		}
		key := tt.DiscriminatorKey()
		for _, ut := range tt.Types {
			if ut.Discriminator() != m[key] {
				continue
			}
			if model, ok := ut.Type.(*schema.Model); ok && model != nil {
				return orderedObject(m, []string{key}, model)
			}
			out := orderedObject(m, []string{key, "value"}, nil)
			if payload, ok := m["value"]; ok {
				out.Values["value"] = Ordered(payload, ut.Type)
			}
			return out
		}
		return orderedObject(m, []string{key}, nil)
	case *schema.Array:
		items, ok := v.([]any)
		if !ok || tt == nil {
			return v
		}
		out := make([]any, len(items))
		for i, e := range items {
			out[i] = Ordered(e, tt.Of)
		}
		return out
	case *schema.Map:
		m, ok := v.(map[string]any)
		if !ok || tt == nil {
			return v
		}
		out := make(map[string]any, len(m))
		for k, e := range m {
			out[k] = Ordered(e, tt.Of)
		}
		return out
	}
	return v
}

func orderedObject(m map[string]any, lead []string, model *schema.Model) Object {
	out := Object{Values: make(map[string]any, len(m))}
	seen := make(map[string]bool, len(m))
	add := func(k string, t schema.Type) {
		if seen[k] {
			return
		}
		v, ok := m[k]
		if !ok {
			return
		}
		seen[k] = true
		out.Keys = append(out.Keys, k)
		out.Values[k] = Ordered(v, t)
	}

	for _, k := range lead {
		add(k, nil)
	}
	if model != nil {
		for _, f := range model.Fields {
			add(f.Name, f.Type)
		}
	}
	rest := make([]string, 0, len(m)-len(out.Keys))
	for k := range m {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	for _, k := range rest {
		add(k, nil)
	}
	return out
}
