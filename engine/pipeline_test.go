package engine

import (
	"testing"
)

// TestRunSingleNodeNoLinks covers a single node with no links at all.
// entropy/light/karma are all zero by construction; rank converges to
// this engine's documented fixed-r~ dangling correction (see
// power_test.go's TestPowerMethodSingleIsolatedNode for why that is not
// literally 1.0 when the whole graph is dangling).
func TestRunSingleNodeNoLinks(t *testing.T) {
	in := Input{
		U: 1, C: 1, E: 0,
		Stakes:        []uint64{1},
		OutCount:      []uint32{0},
		InCount:       []uint32{0},
		OutTarget:     []uint64{},
		OutAuthor:     []uint64{},
		InSource:      []uint64{},
		InAuthor:      []uint64{},
		DampingFactor: 0.5,
		Tolerance:     1e-9,
	}
	out := NewOutput(in)

	report, err := Run(Config{Workers: 1}, in, out)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	d := 0.5
	want := d*(1-d)*(1.0/1.0) + (1 - d)
	if !approxEqual(out.Rank[0], want, 1e-6) {
		t.Errorf("rank[0] = %v, want %v", out.Rank[0], want)
	}
	if out.Entropy[0] != 0 {
		t.Errorf("entropy[0] = %v, want 0", out.Entropy[0])
	}
	if out.Light[0] != 0 {
		t.Errorf("light[0] = %v, want 0", out.Light[0])
	}
	if out.Karma[0] != 0 {
		t.Errorf("karma[0] = %v, want 0", out.Karma[0])
	}
	if report.DanglingNodes != 1 {
		t.Errorf("DanglingNodes = %d, want 1", report.DanglingNodes)
	}
}

// TestRunTwoUsersDisagreeOnOneEdge covers two users authoring the same
// source->target edge; compression must fold them into one entry with
// weight (3+7)/totalOutStake[source] = 1.0.
func TestRunTwoUsersDisagreeOnOneEdge(t *testing.T) {
	in := Input{
		U: 2, C: 2, E: 2,
		Stakes:        []uint64{3, 7},
		OutCount:      []uint32{2, 0},
		InCount:       []uint32{0, 2},
		OutTarget:     []uint64{1, 1},
		OutAuthor:     []uint64{0, 1},
		InSource:      []uint64{0, 0},
		InAuthor:      []uint64{0, 1},
		DampingFactor: 0.5,
		Tolerance:     1e-9,
	}
	out := NewOutput(in)

	inStart, _ := PrefixSum(in.InCount)
	totalOutStake := aggregateStake(in.Stakes, func() []uint32 { s, _ := PrefixSum(in.OutCount); return s }(), in.OutCount, in.OutAuthor, 1)
	_, compCount, compressed := compressInbound(inStart, in.InCount, in.InSource, in.InAuthor, in.Stakes, totalOutStake, 1)
	if compCount[1] != 1 {
		t.Fatalf("compCount[1] = %d, want 1", compCount[1])
	}
	if got := compressed[0].Weight; got != 1.0 {
		t.Errorf("compressed weight = %v, want 1.0", got)
	}

	if _, err := Run(Config{Workers: 1}, in, out); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

// TestRunKarmaConservation builds a graph where node 0 has two outbound
// edges to two leaf targets, authored by two different users with
// different stakes, so its entropy is strictly positive and both leaves
// have zero entropy (their single inbound edge is a point mass). Karma
// should exactly conserve light[0], and karma[0]/karma[1] should split
// it in the 3:7 stake ratio.
func TestRunKarmaConservation(t *testing.T) {
	in := Input{
		U: 2, C: 3, E: 2,
		Stakes:        []uint64{3, 7},
		OutCount:      []uint32{2, 0, 0},
		InCount:       []uint32{0, 1, 1},
		OutTarget:     []uint64{1, 2},
		OutAuthor:     []uint64{0, 1},
		InSource:      []uint64{0, 0},
		InAuthor:      []uint64{0, 1},
		DampingFactor: 0.85,
		Tolerance:     1e-12,
	}
	out := NewOutput(in)

	if _, err := Run(Config{Workers: 1}, in, out); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if out.Entropy[1] != 0 || out.Entropy[2] != 0 {
		t.Errorf("leaf entropy = %v, %v, want 0, 0", out.Entropy[1], out.Entropy[2])
	}
	if out.Entropy[0] <= 0 {
		t.Fatalf("entropy[0] = %v, want > 0", out.Entropy[0])
	}

	var totalLight, totalKarma float64
	for _, l := range out.Light {
		totalLight += l
	}
	for _, k := range out.Karma {
		totalKarma += k
	}
	if !approxEqual(totalLight, totalKarma, 1e-9) {
		t.Errorf("Σkarma = %v, Σlight = %v, want equal", totalKarma, totalLight)
	}

	if out.Karma[0] == 0 || out.Karma[1] == 0 {
		t.Fatalf("expected both users to have nonzero karma, got %v", out.Karma)
	}
	ratio := out.Karma[1] / out.Karma[0]
	if !approxEqual(ratio, 7.0/3.0, 1e-9) {
		t.Errorf("karma ratio = %v, want 7/3", ratio)
	}
}

// TestRunRankStochasticCorrection checks that after convergence Σrank
// stays close to 1.0 on a graph where every node has at least one
// inbound edge (so the dangling approximation error is small).
func TestRunRankStochasticCorrection(t *testing.T) {
	in := Input{
		U: 1, C: 3, E: 3,
		Stakes:        []uint64{1},
		OutCount:      []uint32{1, 1, 1},
		InCount:       []uint32{1, 1, 1},
		OutTarget:     []uint64{1, 2, 0},
		OutAuthor:     []uint64{0, 0, 0},
		InSource:      []uint64{2, 0, 1},
		InAuthor:      []uint64{0, 0, 0},
		DampingFactor: 0.85,
		Tolerance:     1e-12,
	}
	out := NewOutput(in)

	if _, err := Run(Config{Workers: 1}, in, out); err != nil {
		t.Fatalf("Run: %v", err)
	}

	var sum float64
	for _, r := range out.Rank {
		sum += r
	}
	if !approxEqual(sum, 1.0, 1e-6) {
		t.Errorf("Σrank = %v, want ~1.0", sum)
	}
}

// TestRunIdempotence checks that two invocations on identical inputs
// produce bit-identical outputs.
func TestRunIdempotence(t *testing.T) {
	build := func() Input {
		return Input{
			U: 1, C: 3, E: 3,
			Stakes:        []uint64{1},
			OutCount:      []uint32{1, 1, 1},
			InCount:       []uint32{1, 1, 1},
			OutTarget:     []uint64{1, 2, 0},
			OutAuthor:     []uint64{0, 0, 0},
			InSource:      []uint64{2, 0, 1},
			InAuthor:      []uint64{0, 0, 0},
			DampingFactor: 0.85,
			Tolerance:     1e-12,
		}
	}

	in1 := build()
	out1 := NewOutput(in1)
	if _, err := Run(Config{Workers: 4}, in1, out1); err != nil {
		t.Fatalf("Run 1: %v", err)
	}

	in2 := build()
	out2 := NewOutput(in2)
	if _, err := Run(Config{Workers: 4}, in2, out2); err != nil {
		t.Fatalf("Run 2: %v", err)
	}

	for i := range out1.Rank {
		if out1.Rank[i] != out2.Rank[i] {
			t.Errorf("rank[%d] differs across runs: %v vs %v", i, out1.Rank[i], out2.Rank[i])
		}
	}
}

// TestRunNumericalDegeneracy checks that dampingFactor outside (0,1) and
// tolerance <= 0 are rejected before any allocation.
func TestRunNumericalDegeneracy(t *testing.T) {
	base := Input{
		U: 1, C: 1, E: 0,
		Stakes:    []uint64{1},
		OutCount:  []uint32{0},
		InCount:   []uint32{0},
		OutTarget: []uint64{},
		OutAuthor: []uint64{},
		InSource:  []uint64{},
		InAuthor:  []uint64{},
	}

	cases := []Input{
		withParams(base, 0, 1e-9),
		withParams(base, 1, 1e-9),
		withParams(base, -0.1, 1e-9),
		withParams(base, 0.5, 0),
		withParams(base, 0.5, -1),
	}

	for i, in := range cases {
		out := NewOutput(in)
		if _, err := Run(Config{}, in, out); err == nil {
			t.Errorf("case %d: expected NumericalDegeneracy error, got nil", i)
		}
	}
}

func withParams(in Input, damping, tolerance float64) Input {
	in.DampingFactor = damping
	in.Tolerance = tolerance
	return in
}

// TestRunPreconditionViolationUnsortedInbound checks that an unsorted
// inbound slice is rejected as a PreconditionViolation.
func TestRunPreconditionViolationUnsortedInbound(t *testing.T) {
	in := Input{
		U: 1, C: 2, E: 2,
		Stakes:        []uint64{1},
		OutCount:      []uint32{2, 0},
		InCount:       []uint32{0, 2},
		OutTarget:     []uint64{1, 1},
		OutAuthor:     []uint64{0, 0},
		InSource:      []uint64{1, 0}, // descending: violates invariant 2
		InAuthor:      []uint64{0, 0},
		DampingFactor: 0.5,
		Tolerance:     1e-9,
	}
	out := NewOutput(in)

	if _, err := Run(Config{}, in, out); err == nil {
		t.Fatal("expected PreconditionViolation for unsorted inbound slice, got nil")
	}
}

func TestNewOutputSizes(t *testing.T) {
	in := Input{U: 2, C: 5}
	out := NewOutput(in)
	if len(out.Rank) != 5 || len(out.Entropy) != 5 || len(out.Light) != 5 {
		t.Errorf("content-sized outputs have wrong length")
	}
	if len(out.Karma) != 2 {
		t.Errorf("karma has wrong length")
	}
}
