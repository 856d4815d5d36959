// Package ir holds the dialect-neutral model of one structure-prediction
// job: polymer chains, ligands, ions, and the bonds between their atoms.
//
// Every dialect adapter reads into and writes out of this one model, so a
// conversion is always load → (optional transform) → dump. Values are
// immutable by convention: transformations such as NormalizeMultiComponent
// return a new Complex instead of mutating their input.
package ir
