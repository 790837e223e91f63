package kernel

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/sunholo/kernelcheck/internal/kernelerrors"
)

// NumBuiltins is the count of reserved built-in constants every Environment
// is seeded with: Level, Z, S, max, imax, Sort.
const NumBuiltins = 6

// Indices of the six reserved built-ins, fixed for the lifetime of any
// Environment.
const (
	idxLevel = 0
	idxZ     = 1
	idxS     = 2
	idxMax   = 3
	idxIMax  = 4
	idxSort  = 5
)

var (
	level = &FVar{Index: idxLevel}
	zero  = &FVar{Index: idxZ}
	succ  = &FVar{Index: idxS}
	maxOp = &FVar{Index: idxMax}
	imax  = &FVar{Index: idxIMax}
	sort  = &FVar{Index: idxSort}
)

// def is one append-only environment entry.
type def struct {
	name string
	typ  Expr
}

// Environment is an append-only ordered sequence of (name, type) bindings,
// seeded with the six distinguished built-ins. Names are for display only;
// identity is by index.
type Environment struct {
	defs []def
	log  *logrus.Logger
}

// New constructs an Environment with the six built-ins named as given
// (names are cosmetic) and their types fixed per the theory:
//
//	Level : Sort (S Z)
//	Z     : Level
//	S     : Level → Level
//	max   : Level → Level → Level
//	imax  : Level → Level → Level
//	Sort  : ∀ ℓ:Level, Sort (S ℓ)
func New(builtinNames [NumBuiltins]string) *Environment {
	builtinTypes := [NumBuiltins]Expr{
		app(sort, app(succ, zero)),
		level,
		pi(level, level),
		pi(level, pi(level, level)),
		pi(level, pi(level, level)),
		pi(level, app(sort, app(succ, &BVar{Index: 0}))),
	}
	defs := make([]def, NumBuiltins)
	for i := range builtinNames {
		defs[i] = def{name: builtinNames[i], typ: builtinTypes[i]}
	}
	log := logrus.New()
	log.SetOutput(io.Discard)
	return &Environment{defs: defs, log: log}
}

// SetLogOutput redirects the Environment's trace logging (default:
// discarded), for front-ends that want to observe type_of/def_eq tracing.
func (env *Environment) SetLogOutput(w io.Writer, level logrus.Level) {
	env.log.SetOutput(w)
	env.log.SetLevel(level)
}

// Add appends a new binding and returns its assigned index (>= NumBuiltins).
// The caller is responsible for having already type-checked typ against the
// environment prefix present at the time of the call.
func (env *Environment) Add(name string, typ Expr) int {
	env.defs = append(env.defs, def{name: name, typ: typ})
	return len(env.defs) - 1
}

// Truncate shortens the environment to len entries. len must be >=
// NumBuiltins; truncating into the reserved built-ins is rejected.
func (env *Environment) Truncate(length int) error {
	if length < NumBuiltins {
		return kernelerrors.TruncateBelowBuiltins(NumBuiltins)
	}
	if length < len(env.defs) {
		env.defs = env.defs[:length]
	}
	return nil
}

// Len returns the current number of bindings, builtins included.
func (env *Environment) Len() int { return len(env.defs) }

// NameOf returns the display name at index i.
func (env *Environment) NameOf(i int) string {
	if i < 0 || i >= len(env.defs) {
		return "?"
	}
	return env.defs[i].name
}

// Names returns every bound name in index order (cosmetic, read-only).
func (env *Environment) Names() []string {
	names := make([]string, len(env.defs))
	for i, d := range env.defs {
		names[i] = d.name
	}
	return names
}

// TypeOf infers the type of expr against this environment. The returned
// type is an expression, not normalized; failures indicate which rule
// failed via a *kernelerrors.Report (retrievable with kernelerrors.AsReport).
func (env *Environment) TypeOf(expr Expr) (Expr, error) {
	cx := newContext(env)
	return typeOf(cx, expr)
}
