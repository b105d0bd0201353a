package engine

// CompressedInLink is one coalesced inbound contribution: all raw inbound
// edges into a target that share the same source are folded into a single
// (fromIndex, weight) pair. Weight is the aggregated authoring stake behind
// the link, normalized by the source's total outbound stake.
type CompressedInLink struct {
	FromIndex uint64
	Weight    float64
}

// compressInbound coalesces same-source multi-edges in the raw inbound CSR
// view into a simple weighted graph, exploiting the precondition that each
// node's inbound slice is sorted by source ascending. This is a
// three-pass algorithm:
//
//  1. count pass (data-parallel over nodes): count runs of equal source
//  2. host prefix sum over the counts, sizing the compressed buffer
//  3. emit pass (data-parallel over nodes): aggregate each run's stake
//     and write the compressed entry
func compressInbound(
	inStart, inCount []uint32, inSource, inAuthor []uint64,
	stakes []uint64, totalOutStake []uint64,
	workers int,
) (compStart, compCount []uint32, compressed []CompressedInLink) {
	c := len(inStart)

	runCount := make([]uint32, c)
	parallelRange(c, workers, func(lo, hi int) {
		for node := lo; node < hi; node++ {
			s := inStart[node]
			n := inCount[node]
			if n == 0 {
				continue
			}
			end := s + n
			runs := uint32(1)
			for j := s + 1; j < end; j++ {
				if inSource[j] != inSource[j-1] {
					runs++
				}
			}
			runCount[node] = runs
		}
	})

	compStart, total := PrefixSum(runCount)
	compressed = make([]CompressedInLink, total)

	parallelRange(c, workers, func(lo, hi int) {
		for node := lo; node < hi; node++ {
			s := inStart[node]
			n := inCount[node]
			if n == 0 {
				continue
			}
			end := s + n
			out := compStart[node]

			runStart := s
			for j := s + 1; j <= end; j++ {
				if j == end || inSource[j] != inSource[runStart] {
					source := inSource[runStart]
					var sigma uint64
					for k := runStart; k < j; k++ {
						sigma += stakes[inAuthor[k]]
					}
					var w float64
					if denom := totalOutStake[source]; denom > 0 {
						w = float64(sigma) / float64(denom)
					}
					compressed[out] = CompressedInLink{FromIndex: source, Weight: w}
					out++
					runStart = j
				}
			}
		}
	})

	return compStart, runCount, compressed
}
