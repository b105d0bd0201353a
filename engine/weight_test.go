package engine

import "testing"

// TestEdgeWeightsBasic checks w[e] = stake[outAuthor[e]] /
// (totalOutStake[c] + totalInStake[c]) for every outbound edge of c.
func TestEdgeWeightsBasic(t *testing.T) {
	stakes := []uint64{3, 7}
	outStart := []uint32{0}
	outCount := []uint32{2}
	outAuthor := []uint64{0, 1}
	totalOutStake := []uint64{10}
	totalInStake := []uint64{0}

	w := edgeWeights(stakes, totalOutStake, totalInStake, outStart, outCount, outAuthor, 1)

	if w[0] != 0.3 || w[1] != 0.7 {
		t.Errorf("w = %v, want [0.3, 0.7]", w)
	}
}

// TestEdgeWeightsZeroOilGuarded checks the same isolated-node guard
// entropy.go uses: a node with no in- or out-stake gets zero weights
// rather than dividing by zero.
func TestEdgeWeightsZeroOilGuarded(t *testing.T) {
	stakes := []uint64{5}
	outStart := []uint32{0}
	outCount := []uint32{1}
	outAuthor := []uint64{0}
	totalOutStake := []uint64{0}
	totalInStake := []uint64{0}

	w := edgeWeights(stakes, totalOutStake, totalInStake, outStart, outCount, outAuthor, 1)
	if w[0] != 0 {
		t.Errorf("w[0] = %v, want 0", w[0])
	}
}

// TestEdgeWeightsSumToOneWhenOilMatchesOutStake checks that when a node has
// no inbound stake, its outbound weights sum to 1 (they are a full
// partition of its own authored stake).
func TestEdgeWeightsSumToOneWhenOilMatchesOutStake(t *testing.T) {
	stakes := []uint64{1, 2, 3, 4}
	outStart := []uint32{0}
	outCount := []uint32{4}
	outAuthor := []uint64{0, 1, 2, 3}
	totalOutStake := []uint64{10}
	totalInStake := []uint64{0}

	w := edgeWeights(stakes, totalOutStake, totalInStake, outStart, outCount, outAuthor, 1)

	var sum float64
	for _, v := range w {
		sum += v
	}
	if !approxEqual(sum, 1.0, 1e-12) {
		t.Errorf("Σw = %v, want 1.0", sum)
	}
}
