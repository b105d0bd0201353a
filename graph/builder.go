// Package graph provides the caller-facing incremental graph builder:
// create nodes, Link them one at a time, then compile and run the batch
// pass, without hand-assembling CSR index arrays.
//
// Builder is not part of the batch engine's contract — the engine's own
// input is the dense CSR arrays engine.Input carries; Builder is the thin
// ergonomic layer callers use to arrive at that representation.
package graph

import (
	"sort"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/relevant-community/knowledge-rank/engine"
	"github.com/relevant-community/knowledge-rank/rankerr"
)

type link struct {
	target uint64
	author uint64
}

type inLink struct {
	source uint64
	author uint64
}

// Builder accumulates users, content nodes, and cyberlinks and compiles
// them into the CSR-form engine.Input the batch engine consumes.
type Builder struct {
	userIndex map[string]int
	userOrder []string
	stakes    []sdk.Uint

	nodeIndex map[string]int
	nodeOrder []string

	outLinks [][]link   // per source node index
	inLinks  [][]inLink // per target node index

	damping   float64
	tolerance float64
}

// NewBuilder starts a graph with the given damping factor and convergence
// tolerance. Both are checked for range at Compile time so a malformed
// invocation fails before any CSR array is assembled.
func NewBuilder(damping, tolerance float64) *Builder {
	return &Builder{
		userIndex: make(map[string]int),
		nodeIndex: make(map[string]int),
		damping:   damping,
		tolerance: tolerance,
	}
}

// AddUser registers a user with the given stake (a Cosmos-style
// arbitrary-precision amount at rest; converted to uint64 at Compile).
// Calling AddUser again for an existing id overwrites its stake.
func (b *Builder) AddUser(id string, stake sdk.Uint) {
	if idx, ok := b.userIndex[id]; ok {
		b.stakes[idx] = stake
		return
	}
	b.userIndex[id] = len(b.userOrder)
	b.userOrder = append(b.userOrder, id)
	b.stakes = append(b.stakes, stake)
}

// AddContent registers a content node. Calling it more than once for the
// same id is a no-op; Link also registers any content id it has not seen.
func (b *Builder) AddContent(id string) {
	b.internNode(id)
}

func (b *Builder) internNode(id string) int {
	if idx, ok := b.nodeIndex[id]; ok {
		return idx
	}
	idx := len(b.nodeOrder)
	b.nodeIndex[id] = idx
	b.nodeOrder = append(b.nodeOrder, id)
	b.outLinks = append(b.outLinks, nil)
	b.inLinks = append(b.inLinks, nil)
	return idx
}

// Link records a cyberlink authored by author from source to target.
// source and target are registered as content nodes if not already known;
// author must already have been registered via AddUser.
func (b *Builder) Link(source, target, author string) error {
	authorIdx, ok := b.userIndex[author]
	if !ok {
		return rankerr.Wrapf(rankerr.ErrPrecondition, "author %q has no registered stake", author)
	}

	sourceIdx := b.internNode(source)
	targetIdx := b.internNode(target)

	b.outLinks[sourceIdx] = append(b.outLinks[sourceIdx], link{target: uint64(targetIdx), author: uint64(authorIdx)})
	b.inLinks[targetIdx] = append(b.inLinks[targetIdx], inLink{source: uint64(sourceIdx), author: uint64(authorIdx)})
	return nil
}

// Compile assembles the accumulated users, nodes, and links into a CSR
// engine.Input, sorting each node's inbound slice by source ascending so
// the compression stage can rely on it. Index ranges, edge-array lengths,
// and the sorted-inbound invariant are all guaranteed correct by
// construction through AddUser/AddContent/Link, so the only failure mode
// left for Compile to catch is a degenerate damping factor or tolerance.
func (b *Builder) Compile() (engine.Input, error) {
	if b.damping <= 0 || b.damping >= 1 {
		return engine.Input{}, rankerr.Wrapf(rankerr.ErrNumericalDegeneracy, "dampingFactor %v outside (0, 1)", b.damping)
	}
	if b.tolerance <= 0 {
		return engine.Input{}, rankerr.Wrapf(rankerr.ErrNumericalDegeneracy, "tolerance %v must be positive", b.tolerance)
	}

	u := len(b.userOrder)
	c := len(b.nodeOrder)

	stakes := make([]uint64, u)
	for i, amt := range b.stakes {
		stakes[i] = amt.Uint64()
	}

	outCount := make([]uint32, c)
	inCount := make([]uint32, c)
	e := 0
	for i := range b.outLinks {
		outCount[i] = uint32(len(b.outLinks[i]))
		e += len(b.outLinks[i])
	}
	for i := range b.inLinks {
		inCount[i] = uint32(len(b.inLinks[i]))
	}

	outTarget := make([]uint64, 0, e)
	outAuthor := make([]uint64, 0, e)
	for i := range b.outLinks {
		for _, l := range b.outLinks[i] {
			outTarget = append(outTarget, l.target)
			outAuthor = append(outAuthor, l.author)
		}
	}

	inSource := make([]uint64, 0, e)
	inAuthor := make([]uint64, 0, e)
	for i := range b.inLinks {
		links := append([]inLink(nil), b.inLinks[i]...)
		sort.Slice(links, func(a, bIdx int) bool { return links[a].source < links[bIdx].source })
		for _, l := range links {
			inSource = append(inSource, l.source)
			inAuthor = append(inAuthor, l.author)
		}
	}

	return engine.Input{
		U:             u,
		C:             c,
		E:             e,
		Stakes:        stakes,
		OutCount:      outCount,
		InCount:       inCount,
		OutTarget:     outTarget,
		OutAuthor:     outAuthor,
		InSource:      inSource,
		InAuthor:      inAuthor,
		DampingFactor: b.damping,
		Tolerance:     b.tolerance,
	}, nil
}

// ContentID returns the id registered at dense index c, or "" if out of range.
func (b *Builder) ContentID(c int) string {
	if c < 0 || c >= len(b.nodeOrder) {
		return ""
	}
	return b.nodeOrder[c]
}

// UserID returns the id registered at dense index u, or "" if out of range.
func (b *Builder) UserID(u int) string {
	if u < 0 || u >= len(b.userOrder) {
		return ""
	}
	return b.userOrder[u]
}
