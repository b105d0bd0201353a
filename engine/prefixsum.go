package engine

// PrefixSum computes the exclusive prefix sum of count into start, and
// returns the total. It is serial by design: the sequential dependence
// between start[c] and start[c-1] does not amortize on a data-parallel
// backend for the node counts this engine expects, so it always runs on
// the host, driving one contiguous accumulation.
//
// Accumulation uses 64-bit arithmetic, so the returned total does not
// overflow while summing 32-bit counts. The start entries are uint32 and
// are exact only while the running total stays below 2^32.
func PrefixSum(count []uint32) (start []uint32, total uint64) {
	start = make([]uint32, len(count))
	var running uint64
	for i, c := range count {
		start[i] = uint32(running)
		running += uint64(c)
	}
	return start, running
}
