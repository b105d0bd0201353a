package engine

import "math"

// entropyField computes entropy[c] = H_out[c] + H_in[c] for every node,
// where both sides are normalized by the same combined-stake denominator
// oil[c] = totalOutStake[c] + totalInStake[c] — a deliberate "centered
// node" normalizer, not a per-side one: the per-side terms do not sum to
// 1, so this is a generalized entropy rather than Shannon entropy on
// either marginal.
//
// A node with oil[c] == 0 is isolated: both slices are necessarily empty
// and entropy is 0 by construction. Zero-stake authors contribute a
// guarded 0 term rather than propagating log2(0) = -Inf.
func entropyField(
	stakes []uint64,
	totalOutStake, totalInStake []uint64,
	outStart, outCount []uint32, outAuthor []uint64,
	inStart, inCount []uint32, inAuthor []uint64,
	workers int,
) []float64 {
	entropy := make([]float64, len(outStart))
	parallelRange(len(entropy), workers, func(lo, hi int) {
		for c := lo; c < hi; c++ {
			oil := float64(totalOutStake[c]) + float64(totalInStake[c])
			if oil == 0 {
				entropy[c] = 0
				continue
			}
			hOut := sideEntropy(stakes, outStart[c], outCount[c], outAuthor, oil)
			hIn := sideEntropy(stakes, inStart[c], inCount[c], inAuthor, oil)
			entropy[c] = hOut + hIn
		}
	})
	return entropy
}

// sideEntropy computes -Σ p·log2(p) over one CSR slice, p = stake[author]/oil.
func sideEntropy(stakes []uint64, start, count uint32, author []uint64, oil float64) float64 {
	var h float64
	end := start + count
	for j := start; j < end; j++ {
		stake := stakes[author[j]]
		if stake == 0 {
			continue
		}
		p := float64(stake) / oil
		h -= p * math.Log2(p)
	}
	return h
}
