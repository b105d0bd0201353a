package engine

import "math"

// powerMethod runs the damped power iteration over the compressed inbound
// view until L∞(rank-prevRank) <= tolerance. The two ping-pong buffers
// alternate roles each iteration; no more than two buffers are ever live.
//
// The dangling-mass correction r̃ assumes dangling rank stays at the
// uniform default r0 rather than being recomputed each iteration — an
// intentional simplification that keeps the iteration fixed-cost per
// pass; convergence still holds because the perturbation it introduces is
// contractive under damping < 1.
func powerMethod(
	compStart, compCount []uint32, compressed []CompressedInLink,
	damping, tolerance float64,
	workers int,
) ([]float64, Report) {
	n := len(compStart)
	dangling := 0
	for _, cc := range compCount {
		if cc == 0 {
			dangling++
		}
	}

	r0 := (1 - damping) / float64(n)
	rTilde := damping*r0*(float64(dangling)/float64(n)) + r0

	r := make([]float64, n)
	rNext := make([]float64, n)
	for i := range r {
		r[i] = r0
	}

	iterations := 0
	delta := math.Inf(1)

	for delta > tolerance {
		partialMax := make([]float64, workersOrDefault(workers))
		numWorkers := len(partialMax)

		parallelRangeIndexed(n, numWorkers, func(worker, lo, hi int) {
			localMax := 0.0
			for c := lo; c < hi; c++ {
				var v float64
				if compCount[c] == 0 {
					v = rTilde
				} else {
					s := compStart[c]
					end := s + compCount[c]
					var acc float64
					for k := s; k < end; k++ {
						link := compressed[k]
						acc += r[link.FromIndex] * link.Weight
					}
					v = damping*acc + rTilde
				}
				rNext[c] = v
				if d := math.Abs(v - r[c]); d > localMax {
					localMax = d
				}
			}
			partialMax[worker] = localMax
		})

		delta = 0
		for _, m := range partialMax {
			if m > delta {
				delta = m
			}
		}

		r, rNext = rNext, r
		iterations++
	}

	return r, Report{Iterations: iterations, Delta: delta, DanglingNodes: dangling}
}

func workersOrDefault(workers int) int {
	if workers <= 0 {
		return 1
	}
	return workers
}

// parallelRangeIndexed is parallelRange with the worker's own index passed
// through, so each worker can write into its own slot of a partial-result
// slice without contention.
func parallelRangeIndexed(n, workers int, fn func(worker, lo, hi int)) {
	if n <= 0 {
		return
	}
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		fn(0, 0, n)
		return
	}
	chunk := (n + workers - 1) / workers
	done := make(chan struct{}, workers)
	worker := 0
	for lo := 0; lo < n; lo += chunk {
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		go func(worker, lo, hi int) {
			fn(worker, lo, hi)
			done <- struct{}{}
		}(worker, lo, hi)
		worker++
	}
	for i := 0; i < worker; i++ {
		<-done
	}
}
