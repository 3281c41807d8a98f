package vdom

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/vango-dev/vtree/internal/errors"
)

// Registry resolves component names in tree documents.
type Registry map[string]*ComponentType

// nodeDoc is the JSON form of one descriptor.
//
//	{"type": "element", "tag": "li", "key": "a", "props": {...}, "children": [...]}
//	{"type": "text", "text": "hello"}       (a bare JSON string works too)
//	{"type": "fragment", "children": [...]}
//	{"type": "component", "name": "Counter", "props": {...}, "children": [...]}
//
// null and booleans are placeholders; nested arrays are allowed anywhere a
// child is.
type nodeDoc struct {
	Type     string          `json:"type"`
	Tag      string          `json:"tag,omitempty"`
	Text     string          `json:"text,omitempty"`
	Name     string          `json:"name,omitempty"`
	Key      any             `json:"key,omitempty"`
	Props    map[string]any  `json:"props,omitempty"`
	Children json.RawMessage `json:"children,omitempty"`
}

// Decode parses a tree document into a children payload suitable for
// ToChildArray or Renderer.Render.
func Decode(data []byte, reg Registry) (any, error) {
	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.New("E400").Wrap(err)
	}
	return decodeValue(raw, reg)
}

func decodeValue(raw json.RawMessage, reg Registry) (any, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return Undefined, nil
	}
	switch raw[0] {
	case 'n':
		return (*VNode)(nil), nil
	case 't', 'f':
		return false, nil
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, errors.New("E400").Wrap(err)
		}
		return Text(s), nil
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, errors.New("E400").Wrap(err)
		}
		out := make([]any, len(items))
		for i, item := range items {
			v, err := decodeValue(item, reg)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case '{':
		return decodeNode(raw, reg)
	default:
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, errors.New("E400").Wrap(err)
		}
		return Text(n.String()), nil
	}
}

func decodeNode(raw json.RawMessage, reg Registry) (*VNode, error) {
	var doc nodeDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errors.New("E400").Wrap(err)
	}

	var node *VNode
	switch doc.Type {
	case "element", "":
		if doc.Tag == "" {
			return nil, errors.New("E400").WithDetail("element without tag")
		}
		node = &VNode{Kind: KindElement, Tag: doc.Tag}
	case "text":
		return &VNode{Kind: KindText, Text: doc.Text, Key: keyString(doc.Key)}, nil
	case "fragment":
		node = &VNode{Kind: KindFragment}
	case "component":
		t, ok := reg[doc.Name]
		if !ok {
			return nil, errors.New("E400").WithDetailf("unknown component %q", doc.Name)
		}
		node = &VNode{Kind: KindComponent, Comp: t}
	default:
		return nil, errors.New("E400").WithDetailf("unknown node type %q", doc.Type)
	}

	node.Key = keyString(doc.Key)
	if len(doc.Props) > 0 {
		node.Props = Props(doc.Props)
	}
	if len(doc.Children) > 0 {
		content, err := decodeValue(doc.Children, reg)
		if err != nil {
			return nil, err
		}
		node.Content = content
	}
	return node, nil
}

func keyString(k any) string {
	switch v := k.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}
