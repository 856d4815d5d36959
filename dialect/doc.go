// Package dialect implements readers and writers for the tool-specific
// job formats: AlphaFold3 JSON, AlphaFold Server JSON, Boltz YAML, Chai
// FASTA + restraints CSV, and Protenix JSON.
//
// Every adapter converts between its wire format and the shared ir.Complex
// model; none of them talk to each other directly.
package dialect
