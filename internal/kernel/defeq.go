package kernel

// defEq decides definitional equality of lhs and rhs (spec §4.5): weak-head
// normalize both sides, then compare structurally, falling back to the
// level engine when either side is a level expression, and to
// proof-irrelevance/UIP when both sides inhabit the same proposition.
func defEq(cx *context, lhs, rhs Expr) bool {
	l := whnf(lhs)
	r := whnf(rhs)

	if structEq(cx, l, r) {
		return true
	}

	if eq, ok := levelDefEq(cx, l, r); ok {
		return eq
	}

	return uipEq(cx, l, r)
}

// structEq compares two already-whnf'd expressions structurally, recursing
// into sub-expressions via defEq (so nested applications still get WHNF'd
// and the level/UIP fallbacks still apply at every sub-term).
func structEq(cx *context, l, r Expr) bool {
	switch a := l.(type) {
	case *FVar:
		b, ok := r.(*FVar)
		return ok && a.Index == b.Index
	case *BVar:
		b, ok := r.(*BVar)
		return ok && a.Index == b.Index
	case *Sortω:
		b, ok := r.(*Sortω)
		return ok && a.K == b.K
	case *Lam:
		b, ok := r.(*Lam)
		return ok && defEq(cx, a.Dom, b.Dom) && bindDefEq(cx, a.Dom, a.Body, b.Body)
	case *Pi:
		b, ok := r.(*Pi)
		return ok && defEq(cx, a.Dom, b.Dom) && bindDefEq(cx, a.Dom, a.Cod, b.Cod)
	case *App:
		b, ok := r.(*App)
		return ok && defEq(cx, a.Fun, b.Fun) && defEq(cx, a.Arg, b.Arg)
	case *IndExpr:
		b, ok := r.(*IndExpr)
		return ok && indDefEq(cx, a.I, b.I)
	case *IndConstr:
		b, ok := r.(*IndConstr)
		return ok && a.K == b.K && indDefEq(cx, a.I, b.I)
	case *IndElim:
		b, ok := r.(*IndElim)
		return ok && indDefEq(cx, a.I, b.I)
	default:
		return false
	}
}

// bindDefEq compares two sub-expressions one binder deeper than the current
// context, pushing domTy (the binder both sides share, already checked
// def-eq by the caller) so that bvar lookups and nested typeOf calls inside
// l/r see the correct stack depth.
func bindDefEq(cx *context, domTy, l, r Expr) bool {
	eq := false
	err := bind(cx, domTy, func(univ) error {
		eq = defEq(cx, l, r)
		return nil
	})
	return err == nil && eq
}

// indDefEq compares two inductive descriptors for definitional equality.
// Constructors are compared under a binder for the inductive's own arity,
// matching the implicit self-reference binder every constructor is already
// typed against (bvar lookups inside a.Constrs/b.Constrs expect it on the
// stack).
func indDefEq(cx *context, a, b *Ind) bool {
	if a.Small != b.Small || len(a.Constrs) != len(b.Constrs) {
		return false
	}
	if !defEq(cx, a.Arity, b.Arity) {
		return false
	}
	ok := true
	err := bind(cx, a.Arity, func(univ) error {
		for i := range a.Constrs {
			if !defEq(cx, a.Constrs[i], b.Constrs[i]) {
				ok = false
				break
			}
		}
		return nil
	})
	return err == nil && ok
}

// notProof reports whether e is itself recognizably a level expression (Z or
// S _) rather than a proof term, letting uipEq bail out before wasting a
// typeOf call on something that was never going to type as a proposition.
func notProof(e Expr) bool {
	if f, ok := e.(*FVar); ok && f.Index == idxZ {
		return true
	}
	return isAppOf(e, idxS)
}

// uipEq implements proof irrelevance with uniqueness of identity proofs
// (spec §4.5 step 4, §6): two terms l, r are equal regardless of their own
// structure whenever they inhabit the same proposition — that is, their
// (cached) types are themselves def-eq, and that shared type's own type is
// Sort Z (the type lives in the impredicative universe of propositions).
func uipEq(cx *context, l, r Expr) bool {
	if cx == nil || notProof(l) || notProof(r) {
		return false
	}
	lt, ok := cx.cachedTypeOf(l)
	if !ok {
		return false
	}
	propSort, ok := cx.cachedTypeOf(lt)
	if !ok {
		return false
	}
	lv, ok := asLevel(whnf(propSort))
	if !ok {
		return false
	}
	if !defEq(cx, lv, zero) {
		return false
	}
	rt, ok := cx.cachedTypeOf(r)
	if !ok {
		return false
	}
	return defEq(cx, lt, rt)
}
