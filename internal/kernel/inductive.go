package kernel

import "github.com/sunholo/kernelcheck/internal/kernelerrors"

// indCheck validates an inductive descriptor's well-formedness (spec §4.7):
// its arity ends in a Sort whose level doesn't depend on the indices, every
// constructor is typed at that same sort, small-elimination inductives are
// restricted to Sort Z, multi-constructor inductives are rejected unless
// the base sort is always-nonzero or the inductive is small (and so
// always-zero), and singleton elimination is enforced for every
// single-constructor inductive that is neither small nor at an
// always-nonzero sort.
func indCheck(cx *context, ind *Ind) error {
	baseLevel, err := arityLevel(cx, ind.Arity, 0)
	if err != nil {
		return err
	}
	lk := levelKind(baseLevel)
	if ind.Small && lk != levelAlwaysZero {
		return kernelerrors.SmallElimNonProposition()
	}
	if len(ind.Constrs) > maxUniverseLevel {
		return kernelerrors.TooManyConstructors(len(ind.Constrs))
	}
	baseUniv := raiseExpr(app(sort, baseLevel), 0, 1)

	return bind(cx, ind.Arity, func(_ univ) error {
		for _, c := range ind.Constrs {
			ctorUniv, err := typeOf(cx, c)
			if err != nil {
				return err
			}
			if !defEq(cx, baseUniv, ctorUniv) {
				return kernelerrors.ConstructorSortMismatch(cx.display(baseUniv), cx.display(ctorUniv))
			}
			resultantType, maxD, err := constr(cx, c, 0)
			if err != nil {
				return err
			}
			switch {
			case lk == levelAlwaysZero && ind.Small:
				// Small elimination on an always-Z sort: no further restriction.
			case lk == levelAlwaysNonzero:
				// Genuinely predicative: any number of constructors is fine.
			case len(ind.Constrs) > 1:
				return kernelerrors.MultiConstructorForbidden()
			default:
				ctorLevel, ok := asLevel(ctorUniv)
				if !ok {
					return kernelerrors.NotASort(cx.display(ctorUniv))
				}
				singletonLevel, err := singleton(cx, resultantType, c, 0, maxD, ctorLevel)
				if err != nil {
					return err
				}
				if !defEq(cx, baseLevel, singletonLevel) {
					return kernelerrors.SingletonElimViolation()
				}
			}
		}
		return nil
	})
}

// arityLevel walks a telescope ending in Sort level, checking that level
// does not depend on any of the telescope's own parameters (the indices),
// and returns that level (spec §4.7, §9: "universe level cannot depend on
// indices").
func arityLevel(cx *context, a Expr, d int) (Expr, error) {
	if lvl, ok := asLevel(a); ok {
		lowered, err := lowerExpr(lvl, 0, d)
		if err != nil {
			return nil, kernelerrors.ArityDependsOnIndices()
		}
		return lowered, nil
	}
	if p, ok := a.(*Pi); ok {
		var result Expr
		err := bind(cx, p.Dom, func(_ univ) error {
			r, err := arityLevel(cx, p.Cod, d+1)
			if err != nil {
				return err
			}
			result = r
			return nil
		})
		return result, err
	}
	return nil, kernelerrors.InvalidArity(cx.display(a))
}

// constr walks a raw constructor type (self-reference still as BVar(d) at
// the point it was bound) and checks it has the shape required by spec
// §4.8: a telescope of parameters, each either non-recursive, or recursive
// in strictly-positive position, ending in the self-reference applied to
// indices. It returns that resultant tail expression and the telescope's
// total depth.
func constr(cx *context, c Expr, d int) (Expr, int, error) {
	if v, ok := c.(*BVar); ok && v.Index == d {
		return c, d, nil
	}
	if x, ok := c.(*App); ok {
		if hasFreeIndex(x.Arg, d) {
			return nil, 0, kernelerrors.InvalidConstructorShape(cx.display(c))
		}
		// Recurse purely to validate the rest of the spine; the resultant
		// type for this node is the full application itself (self-reference
		// applied to indices), not whatever the inner spine bottoms out at.
		if _, _, err := constr(cx, x.Fun, d); err != nil {
			return nil, 0, err
		}
		return c, d, nil
	}
	if x, ok := c.(*Pi); ok {
		if hasFreeIndex(x.Dom, d) {
			if hasFreeIndex(x.Cod, 0) {
				return nil, 0, kernelerrors.DependedOnParamMentionsSelf()
			}
			if err := strictPositive(cx, x.Dom, d); err != nil {
				return nil, 0, err
			}
		}
		return constr(cx, x.Cod, d+1)
	}
	return nil, 0, kernelerrors.InvalidConstructorShape(cx.display(c))
}

// strictPositive checks that a recursive constructor parameter's type
// mentions the self-reference only in strictly-positive position: exactly
// the self-ref applied to indices, or a non-recursive-domain Π ending in
// such (spec §4.8).
func strictPositive(cx *context, e Expr, depth int) error {
	if v, ok := e.(*BVar); ok && v.Index == depth {
		return nil
	}
	if x, ok := e.(*App); ok {
		if hasFreeIndex(x.Arg, depth) {
			return kernelerrors.NotStrictPositive(cx.display(e))
		}
		return strictPositive(cx, x.Fun, depth)
	}
	if x, ok := e.(*Pi); ok {
		if hasFreeIndex(x.Dom, depth) {
			return kernelerrors.NotStrictPositive(cx.display(e))
		}
		return strictPositive(cx, x.Cod, depth+1)
	}
	return kernelerrors.NotStrictPositive(cx.display(e))
}

// singleton enforces singleton elimination (spec §4.7): for a
// single-constructor inductive that is neither small nor at an
// always-nonzero sort, every parameter of that constructor
// that is NOT itself referenced among the resultant type's own indices
// must have an always-zero level, accumulated via max into the returned
// level and compared against the inductive's own base level by the caller.
func singleton(cx *context, res, c Expr, d, maxD int, level Expr) (Expr, error) {
	p, ok := c.(*Pi)
	if !ok {
		return level, nil
	}
	var result Expr
	err := bind(cx, p.Dom, func(lUniv univ) error {
		acc := res
		referenced := false
		for {
			a, ok := acc.(*App)
			if !ok {
				break
			}
			if bv, ok := a.Arg.(*BVar); ok && bv.Index == maxD-1-d {
				referenced = true
				break
			}
			acc = a.Fun
		}
		newLevel := level
		if !referenced {
			if lUniv.isSortω {
				return kernelerrors.NotASort(cx.display(p.Dom))
			}
			lLevel, err := lowerExpr(lUniv.level, 0, d)
			if err != nil {
				return kernelerrors.ArityDependsOnIndices()
			}
			newLevel = app(maxOp, lLevel, newLevel)
		}
		r, err := singleton(cx, res, p.Cod, d+1, maxD, newLevel)
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	return result, err
}
