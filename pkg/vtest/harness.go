package vtest

import (
	"context"
	"testing"

	"github.com/vango-dev/vtree/pkg/host"
	"github.com/vango-dev/vtree/pkg/protocol"
	"github.com/vango-dev/vtree/pkg/reconcile"
	"github.com/vango-dev/vtree/pkg/render"
)

// Harness renders into a container and keeps a wire-level mirror of it.
type Harness struct {
	tb       testing.TB
	ctx      context.Context
	doc      *host.Document
	root     host.NodeID
	renderer *reconcile.Renderer
	rec      *host.Recorder

	mirror     *host.Document
	mirrorRoot host.NodeID
	seq        uint64
}

// New creates a Harness. opts are passed to the renderer.
func New(tb testing.TB, opts ...reconcile.Option) *Harness {
	tb.Helper()

	doc := host.NewDocument()
	root := doc.CreateElement("div", "")
	mirror := host.NewDocument()
	mirrorRoot := mirror.CreateElement("div", "")
	if mirrorRoot != root {
		tb.Fatalf("mirror root %s does not match container %s", mirrorRoot, root)
	}

	return &Harness{
		tb:         tb,
		ctx:        context.Background(),
		doc:        doc,
		root:       root,
		renderer:   reconcile.New(doc, opts...),
		rec:        host.NewRecorder(doc),
		mirror:     mirror,
		mirrorRoot: mirrorRoot,
	}
}

// Document returns the document under test.
func (h *Harness) Document() *host.Document { return h.doc }

// Container returns the container handle.
func (h *Harness) Container() host.NodeID { return h.root }

// Renderer returns the renderer.
func (h *Harness) Renderer() *reconcile.Renderer { return h.renderer }

// Render renders content and returns the pass's mutation counts. The test
// fails on a render error or if the mirror drifts.
func (h *Harness) Render(content any) host.Stats {
	h.tb.Helper()
	stats, err := h.TryRender(content)
	if err != nil {
		h.tb.Fatalf("render: %v", err)
	}
	return stats
}

// TryRender is Render that returns the pass error instead of failing.
// Mutations made before a failure are still mirrored.
func (h *Harness) TryRender(content any) (host.Stats, error) {
	h.tb.Helper()
	before := h.doc.Stats()
	err := h.renderer.Render(h.ctx, content, h.root)
	h.sync()
	return h.doc.Stats().Sub(before), err
}

// Hydrate hydrates the container's current children with content.
func (h *Harness) Hydrate(content any) host.Stats {
	h.tb.Helper()
	before := h.doc.Stats()
	if err := h.renderer.Hydrate(h.ctx, content, h.root); err != nil {
		h.tb.Fatalf("hydrate: %v", err)
	}
	h.sync()
	return h.doc.Stats().Sub(before)
}

// Unmount tears down the container.
func (h *Harness) Unmount() {
	h.tb.Helper()
	if err := h.renderer.Unmount(h.ctx, h.root); err != nil {
		h.tb.Fatalf("unmount: %v", err)
	}
	h.sync()
}

// sync ships pending mutations to the mirror through an encoded frame and
// checks both sides serialize identically.
func (h *Harness) sync() {
	h.tb.Helper()
	muts := h.rec.Take()
	if len(muts) == 0 {
		return
	}
	h.seq++
	payload := protocol.EncodeMutations(&protocol.MutationsFrame{Seq: h.seq, Mutations: muts})
	mf, err := protocol.DecodeMutations(payload)
	if err != nil {
		h.tb.Fatalf("decode mutations: %v", err)
	}
	if err := protocol.Apply(h.mirror, mf); err != nil {
		h.tb.Fatalf("mirror apply: %v", err)
	}
	if got, want := h.mirrorHTML(), h.HTML(); got != want {
		h.tb.Fatalf("mirror drifted:\n  doc:    %s\n  mirror: %s", want, got)
	}
}

// HTML returns the container's inner HTML.
func (h *Harness) HTML() string {
	h.tb.Helper()
	html, err := render.NewRenderer(render.RendererConfig{}).InnerHTML(h.doc, h.root)
	if err != nil {
		h.tb.Fatalf("serialize: %v", err)
	}
	return html
}

func (h *Harness) mirrorHTML() string {
	html, err := render.NewRenderer(render.RendererConfig{}).InnerHTML(h.mirror, h.mirrorRoot)
	if err != nil {
		h.tb.Fatalf("serialize mirror: %v", err)
	}
	return html
}

// ExpectHTML asserts the container's inner HTML.
func (h *Harness) ExpectHTML(want string) {
	h.tb.Helper()
	if got := h.HTML(); got != want {
		h.tb.Errorf("html mismatch:\n  got:  %s\n  want: %s", truncate(got, 500), truncate(want, 500))
	}
}

// ExpectNoop renders content and asserts the pass made no mutations.
// Rendering the same tree twice must be a no-op.
func (h *Harness) ExpectNoop(content any) {
	h.tb.Helper()
	if stats := h.Render(content); stats.Total() != 0 {
		h.tb.Errorf("expected no mutations, got %+v", stats)
	}
}
