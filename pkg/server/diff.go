package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/host"
	"github.com/vango-dev/vtree/pkg/protocol"
	"github.com/vango-dev/vtree/pkg/reconcile"
	"github.com/vango-dev/vtree/pkg/render"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// DiffRequest is the body of POST /api/diff.
type DiffRequest struct {
	// Old is rendered first. Ignored when Markup is set.
	Old json.RawMessage `json:"old,omitempty"`

	// Markup is parsed into the container and hydrated with New, instead
	// of rendering Old and then New.
	Markup string `json:"markup,omitempty"`

	// New is the tree whose pass is reported.
	New json.RawMessage `json:"new"`
}

// DiffResponse reports the mutations of the pass that rendered New.
type DiffResponse struct {
	Mutations []MutationJSON `json:"mutations"`
	HTML      string         `json:"html"`
	Stats     StatsJSON      `json:"stats"`

	// Raw holds the recorded mutations for in-process callers.
	Raw []host.Mutation `json:"-"`
}

// MutationJSON is the JSON form of a host.Mutation.
type MutationJSON struct {
	Op     string      `json:"op"`
	Node   host.NodeID `json:"node"`
	Parent host.NodeID `json:"parent,omitempty"`
	Ref    host.NodeID `json:"ref,omitempty"`
	Name   string      `json:"name,omitempty"`
	Value  string      `json:"value,omitempty"`
}

// StatsJSON summarizes a pass.
type StatsJSON struct {
	Created      int   `json:"created"`
	ByIndex      int   `json:"matchedByIndex"`
	ByKey        int   `json:"matchedByKey"`
	ByStructure  int   `json:"matchedByStructure"`
	Mounted      int   `json:"mounted"`
	Unmounted    int   `json:"unmounted"`
	Excess       int   `json:"excessRemoved"`
	Placements   int   `json:"placements"`
	Mutations    int   `json:"mutations"`
	DurationNano int64 `json:"durationNs"`
}

// NewStatsJSON converts pass stats.
func NewStatsJSON(s reconcile.PassStats) StatsJSON {
	return StatsJSON{
		Created:      s.Matches[reconcile.MatchNone],
		ByIndex:      s.Matches[reconcile.MatchIndex],
		ByKey:        s.Matches[reconcile.MatchKey],
		ByStructure:  s.Matches[reconcile.MatchStructural],
		Mounted:      s.Mounted,
		Unmounted:    s.Unmounted,
		Excess:       s.Excess,
		Placements:   s.Mutations.Placements(),
		Mutations:    s.Mutations.Total(),
		DurationNano: s.Duration.Nanoseconds(),
	}
}

// NewMutationsJSON converts recorded mutations.
func NewMutationsJSON(muts []host.Mutation) []MutationJSON {
	out := make([]MutationJSON, len(muts))
	for i, m := range muts {
		out[i] = MutationJSON{
			Op:     m.Op.String(),
			Node:   m.Node,
			Parent: m.Parent,
			Ref:    m.Ref,
			Name:   m.Name,
			Value:  m.Value,
		}
	}
	return out
}

// lastPass keeps the stats of the most recent pass.
type lastPass struct {
	stats reconcile.PassStats
}

func (l *lastPass) PassStart(ctx context.Context, _ reconcile.PassInfo) context.Context {
	return ctx
}

func (l *lastPass) PassEnd(_ context.Context, _ reconcile.PassInfo, stats reconcile.PassStats, _ error) {
	l.stats = stats
}

// Diff runs the two passes a DiffRequest describes in a fresh document.
// A failing second pass still yields the mutations it made before failing.
func Diff(ctx context.Context, req *DiffRequest, reg vdom.Registry, opts ...reconcile.Option) (*DiffResponse, error) {
	next, err := decodeTree(req.New, reg)
	if err != nil {
		return nil, err
	}

	doc := host.NewDocument()
	root := doc.CreateElement("div", "")
	last := &lastPass{}
	r := reconcile.New(doc, append(opts, reconcile.WithObserver(last))...)

	hydrate := req.Markup != ""
	if hydrate {
		if err := render.ParseInto(doc, root, strings.NewReader(req.Markup)); err != nil {
			return nil, err
		}
	} else if len(req.Old) > 0 {
		prev, err := decodeTree(req.Old, reg)
		if err != nil {
			return nil, err
		}
		if err := r.Render(ctx, prev, root); err != nil {
			return nil, err
		}
	}

	rec := host.NewRecorder(doc)
	if hydrate {
		err = r.Hydrate(ctx, next, root)
	} else {
		err = r.Render(ctx, next, root)
	}

	muts := rec.Take()
	resp := &DiffResponse{
		Mutations: NewMutationsJSON(muts),
		Stats:     NewStatsJSON(last.stats),
		Raw:       muts,
	}
	html, herr := render.NewRenderer(render.RendererConfig{}).InnerHTML(doc, root)
	if herr != nil {
		return nil, herr
	}
	resp.HTML = html
	return resp, err
}

func decodeTree(raw json.RawMessage, reg vdom.Registry) (any, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	return vdom.Decode(raw, reg)
}

func (s *Server) handleDiff(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxMessageSize)

	var req DiffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, errors.New("E400").Wrap(err))
		return
	}

	resp, err := Diff(r.Context(), &req, s.config.Registry, s.config.rendererOptions(s.logger)...)
	if resp == nil {
		s.writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	if err != nil {
		// The partial result is still useful; report both.
		s.logger.Warn("diff pass failed", "error", err)
		w.Header().Set("X-Vtree-Error", protocol.NewErrorMessage(err, false).Code)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	em := protocol.NewErrorMessage(err, false)
	s.logger.Debug("request failed", "status", status, "code", em.Code, "error", err)
	writeJSON(w, status, map[string]string{
		"code":    em.Code,
		"message": em.Message,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
