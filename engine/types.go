// Package engine implements the nine-stage batch rank/entropy/light/karma
// pipeline: graph compression, stake aggregation, the entropy and edge-weight
// kernels, and the power-method solver with tolerance-based termination.
//
// Everything here is data-parallel over content nodes or edges, with a
// device-synchronize-style barrier (a sync.WaitGroup) between stages. There
// is no host-level concurrency beyond that: a single control goroutine
// drives the stage sequence, as if targeting a single accelerator stream.
package engine

import (
	tmlog "github.com/tendermint/tendermint/libs/log"
)

// Input is the caller-owned borrowed view of one bipartite user->link->content
// graph. Both CSR views describe the same edge multiset; E is their shared
// length. Within a node's inbound slice, edges must be sorted by InSource
// ascending (this is what makes the compression stage a single linear scan).
type Input struct {
	U int // number of distinct users
	C int // number of distinct content nodes
	E int // number of cyberlinks

	Stakes []uint64 // stake[u], len U

	OutCount []uint32 // outCount[c], len C
	InCount  []uint32 // inCount[c], len C

	OutTarget []uint64 // outTarget[e], len E (dense content index)
	OutAuthor []uint64 // outAuthor[e], len E (dense user index)

	InSource []uint64 // inSource[e], len E (dense content index)
	InAuthor []uint64 // inAuthor[e], len E (dense user index)

	DampingFactor float64 // α ∈ (0, 1)
	Tolerance     float64 // L∞ convergence threshold, > 0
}

// Output holds the four fields the engine writes. The caller allocates and
// owns these; Run only ever fills them in, it never resizes or replaces them.
type Output struct {
	Rank    []float64 // len C
	Entropy []float64 // len C
	Light   []float64 // len C
	Karma   []float64 // len U
}

// NewOutput allocates a zero-valued Output sized for the given Input.
func NewOutput(in Input) Output {
	return Output{
		Rank:    make([]float64, in.C),
		Entropy: make([]float64, in.C),
		Light:   make([]float64, in.C),
		Karma:   make([]float64, in.U),
	}
}

// Report carries diagnostics the core computes as a byproduct of the
// batch pass. It supplements, never replaces, the four output arrays.
type Report struct {
	Iterations    int     // power-method iterations to convergence
	Delta         float64 // final L∞(rank-prevRank)
	DanglingNodes int     // D: nodes with zero inbound edges
}

// Config controls the ambient behavior of a Run: how many workers the
// data-parallel kernels use, and where stage tracing is logged. The zero
// value is a valid, silent, single-worker-per-CPU configuration.
type Config struct {
	// Workers bounds the goroutine fan-out used by the data-parallel
	// kernels. Zero means "use runtime.GOMAXPROCS(0)".
	Workers int

	// Logger receives stage-boundary trace lines. Nil means silent.
	Logger tmlog.Logger
}

func (cfg Config) logger() tmlog.Logger {
	if cfg.Logger == nil {
		return tmlog.NewNopLogger()
	}
	return cfg.Logger
}
