package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/host"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// DefaultScanRatio is the default lookahead window as a fraction of the
// previous child count.
const DefaultScanRatio = 0.5

// Renderer renders descriptor trees into containers of a host Document and
// keeps each container's last tree for the next pass.
type Renderer struct {
	doc       *host.Document
	roots     map[host.NodeID]*vdom.VNode
	active    map[host.NodeID]bool
	logger    *slog.Logger
	observers []Observer
	scanRatio float64
	coerce    vdom.CoerceFunc
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithObserver adds an observer notified around every pass.
func WithObserver(obs Observer) Option {
	return func(r *Renderer) {
		if obs != nil {
			r.observers = append(r.observers, obs)
		}
	}
}

// WithScanRatio sets the lookahead window used when deciding whether a node
// is already in place, as a fraction of the previous child count.
// Values outside (0, 1] are ignored.
func WithScanRatio(ratio float64) Option {
	return func(r *Renderer) {
		if ratio > 0 && ratio <= 1 {
			r.scanRatio = ratio
		}
	}
}

// WithCoerce replaces the function turning raw leaves into descriptors.
func WithCoerce(fn vdom.CoerceFunc) Option {
	return func(r *Renderer) {
		if fn != nil {
			r.coerce = fn
		}
	}
}

// New creates a Renderer for doc.
func New(doc *host.Document, opts ...Option) *Renderer {
	r := &Renderer{
		doc:       doc,
		roots:     make(map[host.NodeID]*vdom.VNode),
		active:    make(map[host.NodeID]bool),
		logger:    slog.Default().With("component", "reconcile"),
		scanRatio: DefaultScanRatio,
		coerce:    vdom.Coerce,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Document returns the host document.
func (r *Renderer) Document() *host.Document {
	return r.doc
}

// Root returns the descriptor tree last rendered into container, or nil.
func (r *Renderer) Root(container host.NodeID) *vdom.VNode {
	return r.roots[container]
}

// Render reconciles container's children with content.
//
// content is any children payload: a descriptor, a slice, text, or nested
// combinations. The first Render into a container treats its current
// children as unrelated and leaves them alone; use Hydrate to adopt them.
func (r *Renderer) Render(ctx context.Context, content any, container host.NodeID) error {
	return r.run(ctx, content, container, PassRender)
}

// Hydrate renders content into container, adopting the container's existing
// children where they match in order and type, and removing the rest.
func (r *Renderer) Hydrate(ctx context.Context, content any, container host.NodeID) error {
	return r.run(ctx, content, container, PassHydrate)
}

// Unmount tears down everything rendered into container.
func (r *Renderer) Unmount(ctx context.Context, container host.NodeID) error {
	if _, ok := r.roots[container]; !ok {
		return nil
	}
	err := r.run(ctx, nil, container, PassUnmount)
	delete(r.roots, container)
	return err
}

func (r *Renderer) run(ctx context.Context, content any, container host.NodeID, kind PassKind) (err error) {
	if err := r.doc.Check(container); err != nil {
		return err
	}
	if r.doc.Type(container) != host.ElementNode {
		return errors.New("E101").WithDetailf("container %s is a %s node", container, r.doc.Type(container))
	}
	if r.active[container] {
		return errors.New("E201").WithDetailf("container %s", container)
	}
	r.active[container] = true
	defer delete(r.active, container)

	info := PassInfo{Container: container, Kind: kind}
	for _, obs := range r.observers {
		ctx = obs.PassStart(ctx, info)
	}

	root := &vdom.VNode{Kind: vdom.KindFragment, Content: content}
	old := r.roots[container]
	var excess *Excess
	if kind == PassHydrate {
		excess = NewExcess(r.doc.ChildNodes(container))
		old = nil
	}

	p := &pass{
		doc:       r.doc,
		root:      root,
		logger:    r.logger,
		scanRatio: r.scanRatio,
		coerce:    r.coerce,
	}
	before := r.doc.Stats()
	start := time.Now()

	defer func() {
		if rec := recover(); rec != nil {
			err = errors.New("E200").WithDetail(fmt.Sprint(rec))
		}
		p.stats.Mutations = r.doc.Stats().Sub(before)
		p.stats.Duration = time.Since(start)
		r.finish(ctx, info, p.stats, err)
	}()

	if prev := r.roots[container]; kind == PassHydrate && prev != nil {
		// The container's current nodes become the excess set, so the tree
		// rendered before only loses its instances, not its host nodes.
		for i := len(prev.Children) - 1; i >= 0; i-- {
			p.unmount(prev.Children[i], nil, true)
		}
	}

	svg := r.doc.Namespace(container) == host.SVGNamespace
	_, err = p.diffChildren(container, root, old, nil, svg, excess, nil, nil)

	// The tree is kept even on failure. It holds the host nodes the pass
	// claimed plus the previous children it never reached.
	r.roots[container] = root
	if err != nil {
		return err
	}

	p.stats.Mounted = p.mounts.Flush()
	return nil
}

func (r *Renderer) finish(ctx context.Context, info PassInfo, stats PassStats, err error) {
	for i := len(r.observers) - 1; i >= 0; i-- {
		r.observers[i].PassEnd(ctx, info, stats, err)
	}

	if err != nil {
		r.logger.Error("pass failed",
			"kind", info.Kind.String(),
			"container", info.Container.String(),
			"error", err,
		)
		return
	}
	r.logger.Debug("pass complete",
		"kind", info.Kind.String(),
		"container", info.Container.String(),
		"created", stats.Matches[MatchNone],
		"placements", stats.Mutations.Placements(),
		"removes", stats.Mutations.Removes,
		"unmounted", stats.Unmounted,
		"duration", stats.Duration,
	)
}

// pass is the state of one reconciliation pass.
type pass struct {
	doc       *host.Document
	root      *vdom.VNode
	logger    *slog.Logger
	scanRatio float64
	coerce    vdom.CoerceFunc
	mounts    MountQueue
	stats     PassStats
}
