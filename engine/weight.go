package engine

// edgeWeights computes, for every outbound edge e from node c,
// w[e] = stake[outAuthor[e]] / (totalOutStake[c] + totalInStake[c]).
//
// These are consumed only by the karma stage — the rank solver uses the
// independently-computed compressed inbound weights (compress.go), not
// these.
func edgeWeights(stakes []uint64, totalOutStake, totalInStake []uint64, outStart, outCount []uint32, outAuthor []uint64, workers int) []float64 {
	e := len(outAuthor)
	w := make([]float64, e)
	parallelRange(len(outStart), workers, func(lo, hi int) {
		for c := lo; c < hi; c++ {
			oil := float64(totalOutStake[c]) + float64(totalInStake[c])
			s := outStart[c]
			end := s + outCount[c]
			for j := s; j < end; j++ {
				if oil == 0 {
					w[j] = 0
					continue
				}
				w[j] = float64(stakes[outAuthor[j]]) / oil
			}
		}
	})
	return w
}
