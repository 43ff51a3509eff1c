package commands

import (
	"fmt"
	"reflect"

	"github.com/leapstack-labs/sqlfront/internal/cli/output"
	"github.com/leapstack-labs/sqlfront/pkg/core"
)

// astNode is the display form of a syntax tree node: its type, span and the
// fields that are set. Unset fields (nil, empty, false) are omitted.
type astNode struct {
	Type    string
	HasSpan bool
	Start   int
	End     int
	Fields  []astField
}

type astField struct {
	Name  string
	Value any // string, bool, int64, *astNode or []any
}

var (
	stringerType   = reflect.TypeFor[fmt.Stringer]()
	nodeInfoType   = reflect.TypeFor[core.NodeInfo]()
	identifierType = reflect.TypeFor[core.Identifier]()
)

// describe converts a node to its display form.
func describe(n core.Node) *astNode {
	d, _ := describeValue(reflect.ValueOf(n)).(*astNode)
	return d
}

func describeValue(v reflect.Value) any {
	if !v.IsValid() {
		return nil
	}
	switch v.Kind() {
	case reflect.Interface:
		if v.IsNil() {
			return nil
		}
		return describeValue(v.Elem())
	case reflect.Pointer:
		if v.IsNil() {
			return nil
		}
		return describeValue(v.Elem())
	case reflect.Struct:
		return describeStruct(v)
	case reflect.Slice:
		var out []any
		for i := range v.Len() {
			if d := describeValue(v.Index(i)); d != nil {
				out = append(out, d)
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	case reflect.String:
		if v.Len() == 0 {
			return nil
		}
		return v.String()
	case reflect.Bool:
		if !v.Bool() {
			return nil
		}
		return true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if v.Type().Implements(stringerType) {
			if s := v.Interface().(fmt.Stringer).String(); s != "" {
				return s
			}
			return nil
		}
		if v.CanInt() {
			return v.Int()
		}
		return int64(v.Uint())
	}
	return nil
}

func describeStruct(v reflect.Value) any {
	t := v.Type()
	if t == identifierType {
		if name := v.FieldByName("Value").String(); name != "" {
			return name
		}
		return nil
	}

	n := &astNode{Type: t.Name()}
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		fv := v.Field(i)
		if f.Type == nodeInfoType {
			info := fv.Interface().(core.NodeInfo)
			n.HasSpan = true
			n.Start, n.End = info.Span.Start.Offset, info.Span.End.Offset
			continue
		}
		d := describeValue(fv)
		if d == nil {
			continue
		}
		if inner, ok := d.(*astNode); ok && f.Anonymous {
			n.Fields = append(n.Fields, inner.Fields...)
			continue
		}
		n.Fields = append(n.Fields, astField{Name: f.Name, Value: d})
	}
	return n
}

// Map returns n as nested maps for JSON and YAML output.
func (n *astNode) Map() map[string]any {
	if n == nil {
		return nil
	}
	m := map[string]any{"type": n.Type}
	if n.HasSpan {
		m["span"] = []int{n.Start, n.End}
	}
	for _, f := range n.Fields {
		m[f.Name] = plain(f.Value)
	}
	return m
}

func plain(v any) any {
	switch x := v.(type) {
	case *astNode:
		return x.Map()
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = plain(e)
		}
		return out
	}
	return v
}

// Tree returns n as a display tree.
func (n *astNode) Tree() *output.TreeNode {
	root := &output.TreeNode{Label: n.Type}
	n.appendFields(root)
	return root
}

func (n *astNode) appendFields(parent *output.TreeNode) {
	for _, f := range n.Fields {
		appendValue(parent, f.Name+": ", f.Value)
	}
}

func appendValue(parent *output.TreeNode, prefix string, v any) {
	switch x := v.(type) {
	case *astNode:
		x.appendFields(parent.Add("%s%s", prefix, x.Type))
	case []any:
		list := parent.Add("%s[%d]", prefix, len(x))
		for _, e := range x {
			appendValue(list, "", e)
		}
	default:
		parent.Add("%s%v", prefix, x)
	}
}
