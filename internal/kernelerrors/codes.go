// Package kernelerrors provides centralized error code definitions for the
// type-checking kernel. Every kernel failure is reported through one of
// these codes so a front-end can branch on failure kind without parsing
// message text.
package kernelerrors

// Error code constants, one per kernel failure kind, in a phase-prefixed
// KER### series scoped to the kernel's own phase.
const (
	// KER001 indicates the inferred type does not match the expected type.
	KER001 = "KER001"

	// KER002 indicates the left-hand side of an application does not
	// weak-head reduce to a Π type.
	KER002 = "KER002"

	// KER003 indicates an inductive's arity is not a Π-telescope ending
	// in a Sort.
	KER003 = "KER003"

	// KER004 indicates an inductive's arity sort depends on one of the
	// telescope's own parameters.
	KER004 = "KER004"

	// KER005 indicates an inductive declares more constructors than fit
	// in a 16-bit index.
	KER005 = "KER005"

	// KER006 indicates a constructor's sort does not match the
	// inductive's declared arity sort.
	KER006 = "KER006"

	// KER007 indicates small elimination was requested for an inductive
	// whose arity sort is not always zero (i.e. not a proposition).
	KER007 = "KER007"

	// KER008 indicates a multi-constructor family was declared in a
	// universe where only singleton elimination is permitted.
	KER008 = "KER008"

	// KER009 indicates an inductive reference appears in a constructor
	// argument position that is not strictly positive.
	KER009 = "KER009"

	// KER010 indicates the singleton-elimination hidden-argument rule
	// could not be satisfied.
	KER010 = "KER010"

	// KER011 indicates a constructor's shape is invalid: its terminal
	// head is not the inductive's own back-reference, or a parameter the
	// result depends on mentions the back-reference in its own body.
	KER011 = "KER011"

	// KER012 indicates a universe level overflowed the kernel's bound,
	// either via Sortω successor or via level-engine Succ accumulation.
	KER012 = "KER012"

	// KER013 indicates an attempt to truncate the environment below the
	// reserved builtin indices.
	KER013 = "KER013"

	// KER014 indicates a de Bruijn or environment index is out of range
	// for the context it was used in. The original algorithm treats this
	// as unreachable for well-formed input; at a package boundary it must
	// still surface as an error rather than a panic.
	KER014 = "KER014"
)

// phase is the fixed Report.Phase value for every kernel error.
const phase = "kernel"
