package kernel

import "github.com/sunholo/kernelcheck/internal/kernelerrors"

// typeOf infers the type of expr in cx, implementing every expression
// form's typing rule (spec §4.6). It never normalizes expr itself, only
// the intermediate types it produces along the way (via whnf/defEq).
func typeOf(cx *context, expr Expr) (Expr, error) {
	cx.depth++
	defer func() { cx.depth-- }()
	cx.log.WithField("expr", traceColumn(cx.depth, cx.display(expr))).Trace("type_of")

	switch e := expr.(type) {
	case *FVar:
		return cx.fvarType(e.Index)

	case *BVar:
		return cx.bvarType(e.Index)

	case *Sortω:
		if e.K+1 > maxUniverseLevel {
			return nil, kernelerrors.LevelOverflow("Sortω successor")
		}
		return &Sortω{K: e.K + 1}, nil

	case *Lam:
		var bodyTy Expr
		err := bind(cx, e.Dom, func(_ univ) error {
			t, err := typeOf(cx, e.Body)
			if err != nil {
				return err
			}
			bodyTy = t
			return nil
		})
		if err != nil {
			return nil, err
		}
		return pi(e.Dom, bodyTy), nil

	case *Pi:
		var domU, codU univ
		err := bind(cx, e.Dom, func(u univ) error {
			domU = u
			codT, err := typeOf(cx, e.Cod)
			if err != nil {
				return err
			}
			u2, err := expectUniv(cx, codT)
			if err != nil {
				return err
			}
			codU = u2
			return nil
		})
		if err != nil {
			return nil, err
		}
		return combineUniv(domU, codU)

	case *App:
		fnTy, err := typeOf(cx, e.Fun)
		if err != nil {
			return nil, err
		}
		p, ok := whnf(fnTy).(*Pi)
		if !ok {
			return nil, kernelerrors.NonFunctionApplication(cx.display(e.Fun), cx.display(fnTy))
		}
		argTy, err := typeOf(cx, e.Arg)
		if err != nil {
			return nil, err
		}
		if !defEq(cx, p.Dom, argTy) {
			return nil, kernelerrors.TypeMismatch(cx.display(p.Dom), cx.display(argTy))
		}
		return substExpr(p.Cod, e.Arg), nil

	case *IndExpr:
		if err := indCheck(cx, e.I); err != nil {
			return nil, err
		}
		return e.I.Arity, nil

	case *IndConstr:
		if err := indCheck(cx, e.I); err != nil {
			return nil, err
		}
		if e.K < 0 || e.K >= len(e.I.Constrs) {
			return nil, kernelerrors.IndexOutOfRange("constructor", e.K, len(e.I.Constrs))
		}
		return substWith(e.I.Constrs[e.K], func() Expr { return &IndExpr{I: e.I} }), nil

	case *IndElim:
		if err := indCheck(cx, e.I); err != nil {
			return nil, err
		}
		return recursorType(e.I), nil

	default:
		return nil, kernelerrors.InvalidArity(cx.display(expr))
	}
}

// combineUniv implements Π-formation's universe rule (spec §4.6): a Π whose
// domain and codomain are both predicative Sorts lands in
// Sort(imax(domLevel, codLevel)) — imax so that a Π into an always-Z
// codomain (a proof of a proposition for every input) is itself Sort Z,
// preserving impredicativity of propositions. If either side is the
// super-universe Sortω, the whole Π is Sortω at the larger index, since
// Sortω sits cumulatively above every predicative Sort.
//
// cod.level was inferred with the Π's own binder still pushed, so it may
// mention that binder as BVar{Index: 0}; it must be lowered back out of
// that scope before it can appear in the Π's own (binder-free) type. If it
// genuinely depends on the binder, it cannot be lowered, and the universe
// escapes to Sortω 0 — mirroring the original's `r.lower(0, 1)` /
// `Err(()) => Expr::Sortω(0)`.
func combineUniv(dom, cod univ) (Expr, error) {
	if dom.isSortω || cod.isSortω {
		k := dom.omega
		if cod.isSortω && cod.omega > k {
			k = cod.omega
		}
		return &Sortω{K: k}, nil
	}
	codLevel, err := lowerExpr(cod.level, 0, 1)
	if err != nil {
		return &Sortω{K: 0}, nil
	}
	return app(sort, app(imax, dom.level, codLevel)), nil
}
