package kernel

import (
	"fmt"
	"strings"

	"golang.org/x/text/width"
)

// display renders expr using the environment's bound names in place of raw
// FVar indices — the kernel's one user-facing pretty-printer. It never
// parses; it only renders already-built Expr trees for diagnostics (spec
// Non-goals exclude pretty-printing of *source* forms, not of terms).
func (cx *context) display(expr Expr) string {
	if cx == nil {
		return displayWith(nil, expr)
	}
	return displayWith(cx.env, expr)
}

func displayWith(env *Environment, expr Expr) string {
	switch e := expr.(type) {
	case *FVar:
		if env == nil {
			return fmt.Sprintf("fv%d", e.Index)
		}
		return env.NameOf(e.Index)
	case *BVar:
		return fmt.Sprintf("_%d", e.Index)
	case *Sortω:
		return "Sortω" + subscript(e.K)
	case *Lam:
		return fmt.Sprintf("λ_:%s, %s", parenDisplayIfComplex(env, e.Dom), displayWith(env, e.Body))
	case *Pi:
		return fmt.Sprintf("∀_:%s, %s", parenDisplayIfComplex(env, e.Dom), displayWith(env, e.Cod))
	case *App:
		fs := displayWith(env, e.Fun)
		if _, ok := e.Fun.(*Lam); ok {
			fs = "(" + fs + ")"
		}
		as := displayWith(env, e.Arg)
		if _, ok := e.Arg.(*App); ok {
			as = "(" + as + ")"
		}
		return fs + " " + as
	case *IndExpr:
		return "Ind" + displayInd(env, e.I)
	case *IndConstr:
		return fmt.Sprintf("Ind:constr%s%s", subscript(e.K), displayInd(env, e.I))
	case *IndElim:
		return "Ind:elim" + displayInd(env, e.I)
	default:
		return "?"
	}
}

func parenDisplayIfComplex(env *Environment, e Expr) string {
	switch e.(type) {
	case *Pi, *App:
		return "(" + displayWith(env, e) + ")"
	default:
		return displayWith(env, e)
	}
}

func displayInd(env *Environment, i *Ind) string {
	prefix := "(_: "
	if i.Small {
		prefix = "(small, _: "
	}
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteString(displayWith(env, i.Arity))
	for _, c := range i.Constrs {
		b.WriteString(", ")
		b.WriteString(displayWith(env, c))
	}
	b.WriteString(")")
	return b.String()
}

// traceColumn pads a rendered depth counter to four columns (counting the
// label in runes), matching the `{:4}` column alignment the original
// kernel's trace logging used, then appends the rendered expression with
// golang.org/x/text/width's Narrow folding any full-width runes to their
// narrow forms; λ, ∀ and subscript digits are not full-width and pass
// through unchanged. Used by typeOf's per-call trace log (infer.go) to keep
// nested calls visually aligned under cx.depth.
func traceColumn(depth int, rendered string) string {
	label := fmt.Sprintf("%d", depth)
	pad := 4 - len([]rune(label))
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + label + " " + width.Narrow.String(rendered)
}
