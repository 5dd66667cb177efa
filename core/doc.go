// Package core defines the data model shared by every layer of ConceptMesh:
// records, action references, patterns, frames, completions, synchronization
// rules and the concept adapter contract.
//
// The types here are deliberately free of I/O and engine mechanics. Pattern
// unification (Unify) is a pure function; Frames behave like the rows of a
// small relation; Completions are immutable once constructed. The engine
// package builds the dispatch loop on top of this substrate.
package core
