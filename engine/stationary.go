package engine

// stationaryWeight computes S[c] = α·totalInStake[c] + (1-α)·totalOutStake[c]
// as doubles via unsigned-to-double conversion (round-to-nearest is what
// float64(uint64) already gives us) followed by one product per term and a
// single add; no explicit fused multiply-add (math.FMA) is used. It has no dependents further down the pipeline: it is a stage in
// its own right that produces a diagnostic quantity, computed and released
// once this call returns without feeding any later stage.
func stationaryWeight(totalOutStake, totalInStake []uint64, alpha float64, workers int) []float64 {
	s := make([]float64, len(totalOutStake))
	parallelRange(len(s), workers, func(lo, hi int) {
		for c := lo; c < hi; c++ {
			s[c] = alpha*float64(totalInStake[c]) + (1-alpha)*float64(totalOutStake[c])
		}
	})
	return s
}
