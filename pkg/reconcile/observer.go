package reconcile

import (
	"context"
	"time"

	"github.com/vango-dev/vtree/pkg/host"
)

// PassKind says what started a pass.
type PassKind uint8

const (
	PassRender PassKind = iota
	PassHydrate
	PassUnmount
)

// String returns the string representation of the PassKind.
func (k PassKind) String() string {
	switch k {
	case PassRender:
		return "render"
	case PassHydrate:
		return "hydrate"
	case PassUnmount:
		return "unmount"
	default:
		return "unknown"
	}
}

// PassInfo describes a pass as it starts.
type PassInfo struct {
	Container host.NodeID
	Kind      PassKind
}

// PassStats summarizes a finished pass.
type PassStats struct {
	// Matches counts new descriptors by how they were matched.
	// Matches[MatchNone] is the number created fresh.
	Matches [MatchStructural + 1]int

	Mounted   int // DidMount callbacks run
	Unmounted int // Descriptors torn down
	Excess    int // Pre-existing nodes removed while hydrating

	// Mutations is the host mutation delta of the pass.
	Mutations host.Stats

	Duration time.Duration
}

// Observer is notified around every pass. PassStart may return a derived
// context (for example one carrying a span); PassEnd receives it.
type Observer interface {
	PassStart(ctx context.Context, info PassInfo) context.Context
	PassEnd(ctx context.Context, info PassInfo, stats PassStats, err error)
}
