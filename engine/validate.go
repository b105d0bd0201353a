package engine

import (
	"fmt"

	"github.com/relevant-community/knowledge-rank/rankerr"
)

func validate(in Input, inStart []uint32) error {
	if in.DampingFactor <= 0 || in.DampingFactor >= 1 {
		return rankerr.Wrapf(rankerr.ErrNumericalDegeneracy, "dampingFactor %v outside (0, 1)", in.DampingFactor)
	}
	if in.Tolerance <= 0 {
		return rankerr.Wrapf(rankerr.ErrNumericalDegeneracy, "tolerance %v must be positive", in.Tolerance)
	}

	if len(in.Stakes) != in.U {
		return rankerr.Wrapf(rankerr.ErrPrecondition, "len(Stakes)=%d != U=%d", len(in.Stakes), in.U)
	}
	if len(in.OutCount) != in.C || len(in.InCount) != in.C {
		return rankerr.Wrapf(rankerr.ErrPrecondition, "OutCount/InCount length must equal C=%d", in.C)
	}
	if len(in.OutTarget) != in.E || len(in.OutAuthor) != in.E {
		return rankerr.Wrapf(rankerr.ErrPrecondition, "outbound edge arrays must have length E=%d", in.E)
	}
	if len(in.InSource) != in.E || len(in.InAuthor) != in.E {
		return rankerr.Wrapf(rankerr.ErrPrecondition, "inbound edge arrays must have length E=%d", in.E)
	}

	var outTotal, inTotal uint64
	for _, c := range in.OutCount {
		outTotal += uint64(c)
	}
	for _, c := range in.InCount {
		inTotal += uint64(c)
	}
	if outTotal != uint64(in.E) || inTotal != uint64(in.E) {
		return rankerr.Wrapf(rankerr.ErrPrecondition, "outCount/inCount must each sum to E=%d, got %d/%d", in.E, outTotal, inTotal)
	}

	for e := 0; e < in.E; e++ {
		if in.OutAuthor[e] >= uint64(in.U) || in.InAuthor[e] >= uint64(in.U) {
			return rankerr.Wrapf(rankerr.ErrPrecondition, "author index out of range at edge %d", e)
		}
		if in.OutTarget[e] >= uint64(in.C) || in.InSource[e] >= uint64(in.C) {
			return rankerr.Wrapf(rankerr.ErrPrecondition, "node index out of range at edge %d", e)
		}
	}

	for c := 0; c < in.C; c++ {
		s := inStart[c]
		n := in.InCount[c]
		for j := s + 1; j < s+n; j++ {
			if in.InSource[j] < in.InSource[j-1] {
				return rankerr.Wrap(rankerr.ErrPrecondition, fmt.Sprintf("inbound slice of node %d is not sorted by source ascending", c))
			}
		}
	}

	return nil
}
