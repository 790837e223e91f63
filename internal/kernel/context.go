package kernel

import (
	"github.com/sirupsen/logrus"

	"github.com/sunholo/kernelcheck/internal/kernelerrors"
)

// context carries the environment and the local binder stack through the
// mutually recursive type-of / normalize / def-eq / level-eq algorithms.
// bvarTypes is a growable stack of bound-variable types; the last element is
// the innermost binder (BVar index 0).
type context struct {
	env       *Environment
	bvarTypes []Expr
	depth     int // typeOf recursion depth, for trace-log column alignment (see traceColumn)
	log       *logrus.Entry
	typeCache map[Expr]Expr
}

func newContext(env *Environment) *context {
	return &context{
		env:       env,
		log:       env.log.WithField("op", "type_of"),
		typeCache: make(map[Expr]Expr),
	}
}

func (cx *context) fvarType(i int) (Expr, error) {
	if i < 0 || i >= cx.env.Len() {
		return nil, kernelerrors.IndexOutOfRange("FVar", i, cx.env.Len())
	}
	return cx.env.defs[i].typ, nil
}

// bvarType returns the type of the bound variable at relative index n,
// raised by n+1 to re-target it from its own binding position (where it was
// recorded) to the current one: every binder introduced between that
// position and here shifts the variable's own free indices by one.
func (cx *context) bvarType(n int) (Expr, error) {
	idx := len(cx.bvarTypes) - 1 - n
	if idx < 0 || idx >= len(cx.bvarTypes) {
		return nil, kernelerrors.IndexOutOfRange("BVar", n, len(cx.bvarTypes))
	}
	return raiseExpr(cx.bvarTypes[idx], 0, n+1), nil
}

// withBinder pushes domType onto the binder stack for the duration of f and
// pops it afterward. Mirrors the original kernel's `bind` helper.
func (cx *context) withBinder(domType Expr, f func() error) error {
	cx.bvarTypes = append(cx.bvarTypes, domType)
	err := f()
	cx.bvarTypes = cx.bvarTypes[:len(cx.bvarTypes)-1]
	return err
}

// univ classifies an inferred type as either a predicative Sort at some
// level expression, or the super-universe Sortω at some natural number.
type univ struct {
	isSortω bool
	level   Expr // valid when !isSortω
	omega   int  // valid when isSortω
}

// intoUniv recognizes expr as `Sort level` (an application of the built-in
// Sort constant) or as Sortω(k).
func intoUniv(expr Expr) (univ, bool) {
	switch e := expr.(type) {
	case *Sortω:
		return univ{isSortω: true, omega: e.K}, true
	case *App:
		if f, ok := e.Fun.(*FVar); ok && f.Index == idxSort {
			return univ{level: e.Arg}, true
		}
	}
	return univ{}, false
}

func expectUniv(cx *context, expr Expr) (univ, error) {
	u, ok := intoUniv(expr)
	if !ok {
		return univ{}, kernelerrors.NotASort(cx.display(expr))
	}
	return u, nil
}

// asLevel recognizes expr as `Sort level` and returns level.
func asLevel(expr Expr) (Expr, bool) {
	e, ok := expr.(*App)
	if !ok {
		return nil, false
	}
	f, ok := e.Fun.(*FVar)
	if !ok || f.Index != idxSort {
		return nil, false
	}
	return e.Arg, true
}

// cachedTypeOf returns typeOf(cx, e), memoized for the lifetime of this
// context (spec §9 Open Question: the UIP fallback's own type-of calls are
// cached per top-level TypeOf invocation, since the same sub-expression is
// often re-typed many times during a single equality check). ok is false if
// typeOf fails or if e is already being typed higher up the call stack
// (guards the fallback against the recursion that can occur when def_eq
// of two sub-terms drives the very type inference that invoked it).
func (cx *context) cachedTypeOf(e Expr) (Expr, bool) {
	if t, found := cx.typeCache[e]; found {
		if t == nil {
			return nil, false
		}
		return t, true
	}
	cx.typeCache[e] = nil
	t, err := typeOf(cx, e)
	if err != nil {
		return nil, false
	}
	cx.typeCache[e] = t
	return t, true
}

// bind types expr as a universe (its domain-type role), then runs f with
// that type pushed as a new innermost binder.
func bind(cx *context, expr Expr, f func(u univ) error) error {
	t, err := typeOf(cx, expr)
	if err != nil {
		return err
	}
	u, err := expectUniv(cx, t)
	if err != nil {
		return err
	}
	return cx.withBinder(expr, func() error { return f(u) })
}
