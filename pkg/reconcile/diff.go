package reconcile

import (
	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/host"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// diff reconciles v against old, its matched predecessor (or nil).
//
// Elements and texts return the host node they now own; the caller places
// it. Fragments and components reconcile straight into parent starting at
// the cursor at and return the cursor where they stopped.
func (p *pass) diff(parent host.NodeID, v, old *vdom.VNode, ctx map[string]any, svg bool, excess *Excess, ancestor *vdom.Instance, at cursor) (host.NodeID, cursor, error) {
	if old != nil && !v.SameType(old) {
		// Same key, different type: nothing is reusable.
		p.unmount(old, ancestor, false)
		old = nil
	}

	switch v.Kind {
	case vdom.KindText:
		n, err := p.diffText(v, old, excess)
		return n, at, err

	case vdom.KindElement:
		n, err := p.diffElement(v, old, ctx, svg, excess, ancestor)
		return n, at, err

	case vdom.KindFragment:
		c, err := p.diffChildren(parent, v, old, ctx, svg, excess, ancestor, &at)
		setRange(v)
		return v.Host, c, err

	case vdom.KindComponent:
		c, err := p.diffComponent(parent, v, old, ctx, svg, excess, ancestor, at)
		return v.Host, c, err

	default:
		return host.None, at, errors.New("E400").WithDetailf("descriptor %s has unknown kind", v)
	}
}

func (p *pass) diffText(v, old *vdom.VNode, excess *Excess) (host.NodeID, error) {
	if old != nil && p.doc.Valid(old.Host) {
		v.Host = old.Host
		if old.Text != v.Text {
			if err := p.doc.SetText(v.Host, v.Text); err != nil {
				return v.Host, err
			}
		}
		return v.Host, nil
	}

	if excess != nil {
		n := excess.Claim(func(n host.NodeID) bool {
			return p.doc.Type(n) == host.TextNode
		})
		if n != host.None {
			v.Host = n
			if p.doc.Text(n) != v.Text {
				return n, p.doc.SetText(n, v.Text)
			}
			return n, nil
		}
	}

	v.Host = p.doc.CreateText(v.Text)
	return v.Host, nil
}

func (p *pass) diffElement(v, old *vdom.VNode, ctx map[string]any, svg bool, excess *Excess, ancestor *vdom.Instance) (host.NodeID, error) {
	if v.Tag == "svg" {
		svg = true
	}

	var (
		dom         host.NodeID
		prev        map[string]string
		childExcess *Excess
	)

	switch {
	case old != nil && p.doc.Valid(old.Host):
		dom = old.Host
		prev = attrStrings(old.Props)

	case old != nil:
		// The host node was released behind our back; start over.
		p.unmount(old, ancestor, true)
		old = nil

	case excess != nil:
		dom = excess.Claim(func(n host.NodeID) bool {
			return p.doc.Type(n) == host.ElementNode && p.doc.Tag(n) == v.Tag
		})
		if dom != host.None {
			prev = p.doc.Attrs(dom)
			childExcess = NewExcess(p.doc.ChildNodes(dom))
		}
	}

	if dom == host.None {
		ns := ""
		if svg {
			ns = host.SVGNamespace
		}
		dom = p.doc.CreateElement(v.Tag, ns)
	}
	v.Host = dom

	if err := p.diffProps(dom, prev, v.Props); err != nil {
		keepChildren(v, old)
		return dom, err
	}

	if v.Tag == "foreignObject" {
		svg = false
	}
	_, err := p.diffChildren(dom, v, old, ctx, svg, childExcess, ancestor, nil)
	return dom, err
}

func (p *pass) diffComponent(parent host.NodeID, v, old *vdom.VNode, ctx map[string]any, svg bool, excess *Excess, ancestor *vdom.Instance, at cursor) (cursor, error) {
	var inst *vdom.Instance
	if old != nil && old.Instance != nil && !old.Instance.Unmounted() {
		inst = old.Instance
	} else {
		inst = vdom.NewInstance(v.Comp)
		inst.Props, inst.Content, inst.Context = v.Props, v.Content, ctx
		if v.Comp.Init != nil {
			v.Comp.Init(inst)
		}
	}
	// An instance kept from a failed pass never got DidMount; queue it again.
	if !inst.Mounted() {
		p.mounts.Push(inst)
	}
	inst.Props = v.Props
	inst.Content = v.Content
	inst.Context = ctx
	inst.VNode = v
	v.Instance = inst

	out, err := p.render(inst)
	if err != nil {
		keepChildren(v, old)
		return at, err
	}
	v.Children = vdom.ToChildArray(out, nil, p.coerce, true)

	if v.Comp.ChildContext != nil {
		ctx = mergeContext(ctx, v.Comp.ChildContext(inst))
	}

	c, err := p.diffChildren(parent, v, old, ctx, svg, excess, inst, &at)
	setRange(v)
	return c, err
}

// render calls the instance's render function. A panic becomes an E200
// naming the component.
func (p *pass) render(inst *vdom.Instance) (out any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = errors.New("E200").
				WithDetailf("component %s: %v", inst.Type.Name, rec)
		}
	}()
	return inst.Render(), nil
}

// keepChildren hands old's rendered children to v when v fails before
// reconciling its own, so they stay reachable from the stored tree.
func keepChildren(v, old *vdom.VNode) {
	if old == nil {
		return
	}
	v.Children = old.Children
	if v.MultiNode() {
		setRange(v)
	}
}

// mergeContext returns parent extended with extra. parent is not modified.
func mergeContext(parent, extra map[string]any) map[string]any {
	if len(extra) == 0 {
		return parent
	}
	out := make(map[string]any, len(parent)+len(extra))
	for k, v := range parent {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}
