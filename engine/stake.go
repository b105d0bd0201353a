package engine

// aggregateStake computes, for each node, the sum of stake[author[e]] over
// its slice of a CSR view (start/count describing that view, authors the
// per-edge author array of the same view). It is invoked twice by the
// pipeline: once for the outbound view (-> totalOutStake) and once for the
// inbound view (-> totalInStake). The two calls share this one kernel body.
//
// Overflow is impossible under the caller's precondition U*max(stake) < 2^64;
// accumulation stays in 64-bit unsigned throughout.
func aggregateStake(stakes []uint64, start []uint32, count []uint32, authors []uint64, workers int) []uint64 {
	total := make([]uint64, len(start))
	parallelRange(len(start), workers, func(lo, hi int) {
		for c := lo; c < hi; c++ {
			s := start[c]
			e := s + count[c]
			var sum uint64
			for j := s; j < e; j++ {
				sum += stakes[authors[j]]
			}
			total[c] = sum
		}
	})
	return total
}
