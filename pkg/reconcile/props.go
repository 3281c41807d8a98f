package reconcile

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"

	"github.com/vango-dev/vtree/pkg/host"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// diffProps brings the attributes of dom from prev to next. Removals are
// applied before sets, each in key order.
func (p *pass) diffProps(dom host.NodeID, prev map[string]string, next vdom.Props) error {
	want := attrStrings(next)

	for _, key := range sortedKeys(prev) {
		if _, ok := want[key]; ok {
			continue
		}
		if err := p.doc.RemoveAttr(dom, key); err != nil {
			return err
		}
	}

	for _, key := range sortedKeys(want) {
		if old, ok := prev[key]; ok && old == want[key] {
			continue
		}
		if err := p.doc.SetAttr(dom, key, want[key]); err != nil {
			return err
		}
	}
	return nil
}

// attrStrings returns the attribute form of props. Nil and false values
// mean "absent"; function values are handlers, not attributes.
func attrStrings(props vdom.Props) map[string]string {
	if len(props) == 0 {
		return nil
	}
	out := make(map[string]string, len(props))
	for key, val := range props {
		if key == "key" || !isAttribute(val) {
			continue
		}
		out[key] = propToString(val)
	}
	return out
}

func isAttribute(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	}
	return reflect.ValueOf(v).Kind() != reflect.Func
}

// propToString converts a prop value to its attribute string.
func propToString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
