package engine

import (
	"github.com/relevant-community/knowledge-rank/rankerr"
)

// Run executes the nine-stage batch pass over in, writing rank/entropy/
// light into out (sized C) and karma into out (sized U). The caller owns
// in and out for the duration of the call; the engine owns and releases
// everything else.
//
// Numerical degeneracy (dampingFactor outside (0,1), tolerance <= 0) is
// rejected before any allocation. All other precondition violations are
// caught by validate before stage 1 runs. No error originates from the
// numerical iteration itself: an invocation either runs to convergence or
// fails a precondition up front.
func Run(cfg Config, in Input, out Output) (Report, error) {
	logger := cfg.logger()
	workers := cfg.workers()

	if in.DampingFactor <= 0 || in.DampingFactor >= 1 || in.Tolerance <= 0 {
		return Report{}, validate(in, nil)
	}

	// Stage 0: host-driven prefix sum over both CSR views.
	logger.Debug("prefix sum", "stage", 0)
	outStart, _ := PrefixSum(in.OutCount)
	inStart, _ := PrefixSum(in.InCount)

	if err := validate(in, inStart); err != nil {
		return Report{}, err
	}

	if len(out.Rank) != in.C || len(out.Entropy) != in.C || len(out.Light) != in.C {
		return Report{}, rankerr.Wrapf(rankerr.ErrPrecondition, "Rank/Entropy/Light outputs must have length C=%d", in.C)
	}
	if len(out.Karma) != in.U {
		return Report{}, rankerr.Wrapf(rankerr.ErrPrecondition, "Karma output must have length U=%d", in.U)
	}

	// Region 1 (device-only): stages 1-5 depend only on stakes and the raw
	// CSR, so they may run within a single stream without a barrier
	// between them beyond what data dependency already forces.
	logger.Debug("aggregating stake", "stage", 1)
	totalOutStake := aggregateStake(in.Stakes, outStart, in.OutCount, in.OutAuthor, workers)
	logger.Debug("aggregating stake", "stage", 2)
	totalInStake := aggregateStake(in.Stakes, inStart, in.InCount, in.InAuthor, workers)

	logger.Debug("stationary weight", "stage", 3)
	_ = stationaryWeight(totalOutStake, totalInStake, in.DampingFactor, workers) // diagnostic only, feeds nothing downstream

	logger.Debug("entropy field", "stage", 4)
	entropy := entropyField(in.Stakes, totalOutStake, totalInStake, outStart, in.OutCount, in.OutAuthor, inStart, in.InCount, in.InAuthor, workers)

	logger.Debug("edge weights", "stage", 5)
	w := edgeWeights(in.Stakes, totalOutStake, totalInStake, outStart, in.OutCount, in.OutAuthor, workers)

	// Host prefix sum #2: sizes the compressed inbound buffer.
	logger.Debug("compressing inbound adjacency", "stage", 6)
	compStart, compCount, compressed := compressInbound(inStart, in.InCount, in.InSource, in.InAuthor, in.Stakes, totalOutStake, workers)

	// Region 2 (device-only): the power iteration, driven from region 1's
	// compressed inbound view. Memory peak is here: the raw inbound view
	// and the compressed view coexist until this stage returns.
	logger.Debug("power iteration", "stage", 7)
	rank, report := powerMethod(compStart, compCount, compressed, in.DampingFactor, in.Tolerance, workers)

	// Region 3 (device-only): light and karma.
	logger.Debug("light and karma", "stage", 8)
	lightField := light(rank, entropy, workers)
	karmaField := karma(lightField, w, outStart, in.OutCount, in.OutAuthor, in.U, workers)

	copy(out.Rank, rank)
	copy(out.Entropy, entropy)
	copy(out.Light, lightField)
	copy(out.Karma, karmaField)

	logger.Debug("converged", "iterations", report.Iterations, "delta", report.Delta, "dangling", report.DanglingNodes)
	return report, nil
}
