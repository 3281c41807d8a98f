package reconcile

import (
	"github.com/vango-dev/vtree/pkg/host"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// unmount tears down v and its subtree: component instances get
// WillUnmount, then children are unmounted, then v's own host node is
// released. Below an element, descendants skip host removal since their
// nodes go away with the element.
func (p *pass) unmount(v *vdom.VNode, ancestor *vdom.Instance, skipRemove bool) {
	if v == nil {
		return
	}
	p.stats.Unmounted++

	if inst := v.Instance; inst != nil && !inst.Unmounted() {
		inst.MarkUnmounted()
		if inst.Type != nil && inst.Type.WillUnmount != nil {
			inst.Type.WillUnmount(inst)
		}
		ancestor = inst
	}

	childSkip := skipRemove || v.Kind == vdom.KindElement
	for _, c := range v.Children {
		p.unmount(c, ancestor, childSkip)
	}

	if !skipRemove && !v.MultiNode() && v.Host != host.None {
		p.doc.Release(v.Host)
	}
	if v.Instance != nil {
		p.logger.Debug("component unmounted",
			"component", v.Comp.Name,
			"host", v.Host,
		)
	}
	v.Host, v.LastHost = host.None, host.None
}
