package glycan

import (
	"strconv"
	"strings"
)

// The linkage policy below is an approximation of common N-glycan
// nomenclature, not a verified chemistry rule. It exists so that the
// server grammar, which encodes no linkage at all, still yields one
// deterministic bond set. Consumers should treat inferred bonds as
// advisory next to explicitly specified ones.

// mannoseClass holds the CCD codes treated as mannose for trunk linkage.
var mannoseClass = map[string]bool{
	"MAN": true,
	"BMA": true,
}

// trunkOxygen maps "are both ends mannose-class" to the parent oxygen
// number of a trunk edge.
var trunkOxygen = map[bool]int{
	true:  2, // e.g. MAN(MAN)
	false: 4, // e.g. NAG(NAG), NAG(MAN)
}

// branchOxygen lists parent oxygen numbers by branch ordinal (1-based).
// Ordinals past the table alternate O4, O2, O4, O2, ...
var branchOxygen = []int{3, 6}

// InferParentAtom deterministically assigns the parent attachment atom for
// one parsed edge of the implicit-link grammar. trunk marks the first
// child attached to its parent; for later children ordinal is the 1-based
// position among those later children.
func InferParentAtom(parentCCD, childCCD string, trunk bool, ordinal int) string {
	if trunk {
		both := isMannose(parentCCD) && isMannose(childCCD)
		return "O" + strconv.Itoa(trunkOxygen[both])
	}
	if ordinal < 1 {
		ordinal = 1
	}
	var n int
	if ordinal <= len(branchOxygen) {
		n = branchOxygen[ordinal-1]
	} else if (ordinal-len(branchOxygen)-1)%2 == 0 {
		n = 4
	} else {
		n = 2
	}
	return "O" + strconv.Itoa(n)
}

func isMannose(ccd string) bool {
	return mannoseClass[strings.ToUpper(ccd)]
}
