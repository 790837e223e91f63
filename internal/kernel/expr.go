// Package kernel implements the type-checking kernel for a dependent type
// theory with an impredicative universe of propositions, cumulative
// predicative universes indexed by level expressions, and user-declared
// inductive families with synthesized recursors.
//
// The package is deterministic and pure: no I/O, no global state beyond the
// Environment it is called with. It consumes only already-desugared
// expression trees; elaboration of surface syntax lives outside the kernel.
package kernel

import "fmt"

// Expr is the base interface for every kernel expression node. Terms are
// values: every transform (Raise, Lower, Subst, Whnf) returns a fresh tree
// rather than mutating its argument.
type Expr interface {
	fmt.Stringer
	exprNode()
}

// FVar is a reference to a named constant by its index into the Environment.
type FVar struct {
	Index int
}

func (*FVar) exprNode() {}
func (e *FVar) String() string { return fmt.Sprintf("fvar#%d", e.Index) }

// BVar is a de Bruijn index; 0 refers to the innermost enclosing binder.
type BVar struct {
	Index int
}

func (*BVar) exprNode() {}
func (e *BVar) String() string { return fmt.Sprintf("_%d", e.Index) }

// Sortω is the super-universe above every predicative Sort level, indexed
// by a non-negative integer.
type Sortω struct {
	K int
}

func (*Sortω) exprNode() {}
func (e *Sortω) String() string { return fmt.Sprintf("Sortω%s", subscript(e.K)) }

// Lam is a λ-abstraction: Dom is the domain type, Body is evaluated under
// one additional binder.
type Lam struct {
	Dom  Expr
	Body Expr
}

func (*Lam) exprNode() {}
func (e *Lam) String() string { return fmt.Sprintf("λ_:%s, %s", parenIfComplex(e.Dom), e.Body) }

// Pi is a dependent function type: Dom is the domain, Cod the codomain
// under one additional binder.
type Pi struct {
	Dom Expr
	Cod Expr
}

func (*Pi) exprNode() {}
func (e *Pi) String() string { return fmt.Sprintf("∀_:%s, %s", parenIfComplex(e.Dom), e.Cod) }

// App is function application.
type App struct {
	Fun Expr
	Arg Expr
}

func (*App) exprNode() {}
func (e *App) String() string {
	fs := e.Fun.String()
	if _, ok := e.Fun.(*Lam); ok {
		fs = "(" + fs + ")"
	}
	as := e.Arg.String()
	if _, ok := e.Arg.(*App); ok {
		as = "(" + as + ")"
	}
	return fs + " " + as
}

// Ind is an inductive descriptor: Arity is a Π-telescope ending in a Sort
// expression, Constrs is the ordered list of constructor type expressions
// (each an open term whose outermost free de Bruijn index denotes the
// inductive itself), and Small marks whether the family is allowed to
// eliminate into an arbitrary sort (proposition-like).
type Ind struct {
	Arity   Expr
	Constrs []Expr
	Small   bool
}

// IndExpr is the type former of an inductive family: Ind(I).
type IndExpr struct {
	I *Ind
}

func (*IndExpr) exprNode() {}
func (e *IndExpr) String() string { return "Ind" + indSuffix(e.I) }

// IndConstr is the K-th constructor of the inductive family I.
type IndConstr struct {
	K int
	I *Ind
}

func (*IndConstr) exprNode() {}
func (e *IndConstr) String() string { return fmt.Sprintf("Ind:constr%s%s", subscript(e.K), indSuffix(e.I)) }

// IndElim is the recursor/eliminator of the inductive family I.
type IndElim struct {
	I *Ind
}

func (*IndElim) exprNode() {}
func (e *IndElim) String() string { return "Ind:elim" + indSuffix(e.I) }

func indSuffix(i *Ind) string {
	prefix := "(_: "
	if i.Small {
		prefix = "(small, _: "
	}
	s := prefix + i.Arity.String()
	for _, c := range i.Constrs {
		s += ", " + c.String()
	}
	return s + ")"
}

func parenIfComplex(e Expr) string {
	switch e.(type) {
	case *Pi, *App:
		return "(" + e.String() + ")"
	default:
		return e.String()
	}
}

func subscript(n int) string {
	if n == 0 {
		return ""
	}
	digits := "₀₁₂₃₄₅₆₇₈₉"
	var runes []rune
	for n > 0 {
		r := []rune(digits)[n%10]
		runes = append([]rune{r}, runes...)
		n /= 10
	}
	return string(runes)
}

// pi builds Pi{Dom: dom, Cod: cod}.
func pi(dom, cod Expr) Expr { return &Pi{Dom: dom, Cod: cod} }

// app applies fn to each argument in turn, left-associatively.
func app(fn Expr, args ...Expr) Expr {
	for _, a := range args {
		fn = &App{Fun: fn, Arg: a}
	}
	return fn
}

// equalExpr is raw structural equality with no reduction — used only by
// tests (the level engine deduplicates atoms with defEq), never by
// definitional equality (which must normalize first).
func equalExpr(a, b Expr) bool {
	switch x := a.(type) {
	case *FVar:
		y, ok := b.(*FVar)
		return ok && x.Index == y.Index
	case *BVar:
		y, ok := b.(*BVar)
		return ok && x.Index == y.Index
	case *Sortω:
		y, ok := b.(*Sortω)
		return ok && x.K == y.K
	case *Lam:
		y, ok := b.(*Lam)
		return ok && equalExpr(x.Dom, y.Dom) && equalExpr(x.Body, y.Body)
	case *Pi:
		y, ok := b.(*Pi)
		return ok && equalExpr(x.Dom, y.Dom) && equalExpr(x.Cod, y.Cod)
	case *App:
		y, ok := b.(*App)
		return ok && equalExpr(x.Fun, y.Fun) && equalExpr(x.Arg, y.Arg)
	case *IndExpr:
		y, ok := b.(*IndExpr)
		return ok && equalInd(x.I, y.I)
	case *IndConstr:
		y, ok := b.(*IndConstr)
		return ok && x.K == y.K && equalInd(x.I, y.I)
	case *IndElim:
		y, ok := b.(*IndElim)
		return ok && equalInd(x.I, y.I)
	default:
		return false
	}
}

func equalInd(a, b *Ind) bool {
	if a == b {
		return true
	}
	if a.Small != b.Small || len(a.Constrs) != len(b.Constrs) || !equalExpr(a.Arity, b.Arity) {
		return false
	}
	for i := range a.Constrs {
		if !equalExpr(a.Constrs[i], b.Constrs[i]) {
			return false
		}
	}
	return true
}
