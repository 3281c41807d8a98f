package vdom

import (
	"testing"

	"github.com/vango-dev/vtree/pkg/host"
)

func TestVKindString(t *testing.T) {
	tests := []struct {
		kind VKind
		want string
	}{
		{KindElement, "Element"},
		{KindText, "Text"},
		{KindFragment, "Fragment"},
		{KindComponent, "Component"},
		{VKind(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("VKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestSameType(t *testing.T) {
	fn := Func("Row", nil)
	other := Func("Row", nil)

	tests := []struct {
		name string
		a, b *VNode
		want bool
	}{
		{"same tag", Li(), Li(), true},
		{"different tag", Li(), Div(), false},
		{"texts", Text("a"), Text("b"), true},
		{"fragments", Fragment(), Fragment(), true},
		{"same component", C(fn), C(fn), true},
		{"same name different type", C(fn), C(other), false},
		{"element vs text", Div(), Text("div"), false},
		{"nil", nil, Div(), false},
	}
	for _, tt := range tests {
		if got := tt.a.SameType(tt.b); got != tt.want {
			t.Errorf("%s: SameType = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestReusableByStructure(t *testing.T) {
	if !Func("F", nil).ReusableByStructure() {
		t.Error("function components should be reusable by structure")
	}
	if Stateful("S", nil).ReusableByStructure() {
		t.Error("stateful components should not be reusable by structure")
	}
	var missing *ComponentType
	if missing.ReusableByStructure() {
		t.Error("nil type should not be reusable")
	}
}

func TestBuildSplitsAttrsAndContent(t *testing.T) {
	n := Ul(Class("list"), Key(7), nil, Li("a"), []Attr{ID("x"), Data("role", "menu")})

	if n.Key != "7" {
		t.Errorf("Key = %q, want 7", n.Key)
	}
	if n.Props["class"] != "list" || n.Props["id"] != "x" || n.Props["data-role"] != "menu" {
		t.Errorf("Props = %v", n.Props)
	}
	if _, ok := n.Props["key"]; ok {
		t.Error("key should not be stored as a prop")
	}
	content, ok := n.Content.([]any)
	if !ok || len(content) != 2 || content[0] != nil {
		t.Fatalf("Content = %#v, want [nil, li]", n.Content)
	}
}

func TestElementWithoutChildrenHasNoContent(t *testing.T) {
	if n := Div(Class("a")); n.Content != nil {
		t.Errorf("Content = %#v, want nil", n.Content)
	}
}

func TestMountedAndClone(t *testing.T) {
	n := Li(Key("a"), "x")
	if n.Mounted() {
		t.Error("fresh descriptor should not be mounted")
	}
	n.Host = host.NodeID(3)
	n.Children = []*VNode{Text("x")}
	if !n.Mounted() {
		t.Error("descriptor with a host node should be mounted")
	}

	c := n.Clone()
	if c.Mounted() {
		t.Error("clone should drop render state")
	}
	if c.Key != "a" || c.Tag != "li" || c.Content == nil {
		t.Errorf("clone lost identity: %+v", c)
	}
}

func TestMultiNode(t *testing.T) {
	if !Fragment().MultiNode() || !C(Func("F", nil)).MultiNode() {
		t.Error("fragments and components are multi-node producers")
	}
	if Div().MultiNode() || Text("a").MultiNode() {
		t.Error("elements and texts are single-node")
	}
}

func TestString(t *testing.T) {
	if got := Li(Key("a")).String(); got != "li[key=a]" {
		t.Errorf("String() = %q", got)
	}
	if got := Text("hi").String(); got != `"hi"` {
		t.Errorf("String() = %q", got)
	}
	if got := C(Func("Row", nil)).String(); got != "Row" {
		t.Errorf("String() = %q", got)
	}
	var missing *VNode
	if got := missing.TypeName(); got != "placeholder" {
		t.Errorf("TypeName() = %q", got)
	}
}

func TestInstanceRender(t *testing.T) {
	ct := Stateful("Counter", func(c *Instance) any {
		return Textf("%d", c.State["n"])
	})
	inst := NewInstance(ct)
	inst.State["n"] = 2

	out, ok := inst.Render().(*VNode)
	if !ok || out.Text != "2" {
		t.Errorf("Render() = %v", out)
	}
	if inst.Renders != 1 {
		t.Errorf("Renders = %d, want 1", inst.Renders)
	}
	if NewInstance(nil).Render() != nil {
		t.Error("instance without type should render nothing")
	}
}

func TestRangeKeepsHoles(t *testing.T) {
	out := Range([]int{1, 2, 3}, func(n, _ int) *VNode {
		return If(n != 2, Li(Textf("%d", n)))
	})
	if len(out) != 3 || out[1] != nil {
		t.Errorf("Range = %v", out)
	}
}

func TestKeyed(t *testing.T) {
	type row struct{ id, label string }
	rows := []row{{"a", "A"}, {"b", "B"}}
	out := Keyed(rows, func(r row) string { return r.id }, func(r row) *VNode {
		return Li(r.label)
	})
	if out[0].Key != "a" || out[1].Key != "b" {
		t.Errorf("keys = %q, %q", out[0].Key, out[1].Key)
	}
}
