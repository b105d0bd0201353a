package engine

// light computes light[c] = rank[c] * entropy[c], data-parallel over nodes.
func light(rank, entropy []float64, workers int) []float64 {
	out := make([]float64, len(rank))
	parallelRange(len(rank), workers, func(lo, hi int) {
		for c := lo; c < hi; c++ {
			out[c] = rank[c] * entropy[c]
		}
	})
	return out
}

// karma computes karma[u] = Σ light[c]*w[e] over every outbound edge e
// authored by u. This scatter could be done with atomics keyed by author,
// but instead each worker accumulates into its own private karma vector
// while scanning a disjoint chunk of nodes, and the partial vectors are
// summed at the end. That keeps the result deterministic for a given worker
// count (no float CAS retries, no ulp churn from contended atomic adds);
// different worker counts may differ in the last bits because the
// summation order changes. The cost is
// O(workers*U) scratch, which is bounded and short-lived.
func karma(light []float64, w []float64, outStart, outCount []uint32, outAuthor []uint64, u int, workers int) []float64 {
	c := len(outStart)
	if workers <= 0 {
		workers = 1
	}
	if workers > c && c > 0 {
		workers = c
	}
	if workers < 1 {
		workers = 1
	}

	partials := make([][]float64, workers)
	for i := range partials {
		partials[i] = make([]float64, u)
	}

	parallelRangeIndexed(c, workers, func(worker, lo, hi int) {
		acc := partials[worker]
		for node := lo; node < hi; node++ {
			s := outStart[node]
			end := s + outCount[node]
			l := light[node]
			for e := s; e < end; e++ {
				acc[outAuthor[e]] += l * w[e]
			}
		}
	})

	out := make([]float64, u)
	for _, acc := range partials {
		for i, v := range acc {
			out[i] += v
		}
	}
	return out
}
