// Package glycan parses, infers, and renders branched-sugar tree notations.
//
// Two compact textual grammars are supported. The Chai grammar carries
// explicit linkage numbers on every branch:
//
//	NAG(4-1 NAG(4-1 BMA(3-1 MAN)(6-1 MAN)))
//
// The AlphaFold Server grammar carries none:
//
//	NAG(NAG(BMA(MAN)(MAN)))
//
// Both parse into the same Graph: a preorder component list plus
// parent→child bonds annotated with attachment atoms. For the server
// grammar the parent attachment atom is assigned by a deterministic
// inference policy (see InferParentAtom); the child attachment is always
// the anomeric carbon C1.
//
// All operations are pure and allocate only call-local state, so they are
// safe to call concurrently across independent inputs.
package glycan
