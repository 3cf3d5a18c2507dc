// Package scenefile decodes YAML scene documents into element trees.
//
// A document is a node or a list of nodes. A node is a mapping with a
// primitive type, an optional key and style, and children; scalars are
// text leaves:
//
//	- type: rectangle
//	  key: greeting
//	  style: {top: 5, left: 10, width: 96, height: 96, padding: 20, backgroundColor: tomato}
//	  children: [Hello, 42]
package scenefile

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/phanxgames/easel"
	"github.com/phanxgames/easel/reconciler"
)

// Load reads and decodes the scene document at path.
func Load(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenefile: %w", err)
	}
	el, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scenefile: %s: %w", path, err)
	}
	return el, nil
}

// Parse decodes a scene document. The result is a reconciler.Element, a
// []any of elements and leaves, or nil for an empty document.
func Parse(data []byte) (any, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, nil
	}
	return decode(doc.Content[0])
}

func decode(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return scalar(n)
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := decode(c)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.MappingNode:
		return element(n)
	case yaml.AliasNode:
		return decode(n.Alias)
	default:
		return nil, fmt.Errorf("line %d: unexpected node", n.Line)
	}
}

func element(n *yaml.Node) (reconciler.Element, error) {
	var (
		typ      string
		key      string
		props    = easel.Props{}
		children any
	)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		switch k.Value {
		case "type":
			if err := v.Decode(&typ); err != nil {
				return reconciler.Element{}, fmt.Errorf("line %d: type: %w", v.Line, err)
			}
		case "key":
			if err := v.Decode(&key); err != nil {
				return reconciler.Element{}, fmt.Errorf("line %d: key: %w", v.Line, err)
			}
		case "style":
			var st easel.Style
			if err := v.Decode(&st); err != nil {
				return reconciler.Element{}, fmt.Errorf("line %d: style: %w", v.Line, err)
			}
			props["style"] = st
		case "children":
			c, err := decode(v)
			if err != nil {
				return reconciler.Element{}, err
			}
			children = c
		default:
			var val any
			if err := v.Decode(&val); err != nil {
				return reconciler.Element{}, fmt.Errorf("line %d: %s: %w", v.Line, k.Value, err)
			}
			props[k.Value] = val
		}
	}
	if typ == "" {
		return reconciler.Element{}, fmt.Errorf("line %d: node without type", n.Line)
	}
	el := reconciler.CreateElement(typ, props)
	if children != nil {
		el.Props["children"] = children
	}
	if key != "" {
		el = el.WithKey(key)
	}
	return el, nil
}

func scalar(n *yaml.Node) (any, error) {
	switch n.Tag {
	case "!!null":
		return nil, nil
	case "!!bool":
		return strconv.ParseBool(n.Value)
	case "!!int":
		var v int
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return v, nil
	case "!!float":
		var v float64
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return v, nil
	default:
		return n.Value, nil
	}
}
