package kernel

// telescopeMapExpr rebuilds e's Π telescope unchanged down to its tail, then
// replaces the tail with f's result. d counts how many Π layers have been
// crossed by the time f runs.
func telescopeMapExpr(e Expr, d int, f func(tail Expr, d int) Expr) Expr {
	if p, ok := e.(*Pi); ok {
		return &Pi{Dom: p.Dom, Cod: telescopeMapExpr(p.Cod, d+1, f)}
	}
	return f(e, d)
}

// bvarsRange returns [BVar(hi-1), ..., BVar(lo)] (descending, half-open
// [lo,hi)), the de Bruijn argument list produced by reversing a `lo..hi`
// range — the shape the original recursor-synthesis algorithm builds
// whenever it reapplies a telescope's own parameters to themselves.
func bvarsRange(lo, hi int) []Expr {
	if hi <= lo {
		return nil
	}
	args := make([]Expr, hi-lo)
	for idx, v := 0, hi-1; v >= lo; v, idx = v-1, idx+1 {
		args[idx] = &BVar{Index: v}
	}
	return args
}

// recursorType synthesizes the type of Ind:elim(ind) (spec §4.9): a
// telescope of [universe parameter unless small] [motive] [minor premise
// per constructor] [indices] [major premise], concluding with the motive
// applied to the indices and the major premise.
func recursorType(ind *Ind) Expr {
	numConstrs := len(ind.Constrs)
	univParams := 1
	if ind.Small {
		univParams = 0
	}

	t := raiseExpr(ind.Arity, 0, univParams+1+numConstrs)
	t = telescopeMapExpr(t, 0, func(tail Expr, d int) Expr {
		indRaised := raiseExpr(&IndExpr{I: ind}, 0, univParams+1+numConstrs+d)
		majorPremise := app(indRaised, bvarsRange(0, d)...)
		out := app(&BVar{Index: 1 + d + numConstrs}, bvarsRange(0, d+1)...)
		return pi(majorPremise, out)
	})

	for k := numConstrs - 1; k >= 0; k-- {
		c := ind.Constrs[k]
		minorPremise := substWith(c, func() Expr { return &IndExpr{I: ind} })
		minorPremise = raiseExpr(minorPremise, 0, univParams+1+k)
		minorPremise = telescopeMapExpr(minorPremise, 0, func(_ Expr, maxD int) Expr {
			constrExpr := &IndConstr{K: k, I: ind}
			return minorPremiseRecs(c, constrExpr, univParams, k, maxD, 0, 0)
		})
		t = pi(minorPremise, t)
	}

	motiveType := raiseExpr(ind.Arity, 0, univParams)
	motiveType = telescopeMapExpr(motiveType, 0, func(_ Expr, d int) Expr {
		indRaised := raiseExpr(&IndExpr{I: ind}, 0, univParams+d)
		v := app(indRaised, bvarsRange(0, d)...)
		var rhs Expr
		if ind.Small {
			rhs = zero
		} else {
			rhs = &BVar{Index: 1 + d}
		}
		return pi(v, app(sort, rhs))
	})
	t = pi(motiveType, t)
	if !ind.Small {
		t = pi(level, t)
	}
	return t
}

// minorPremiseRecs builds the type of the minor premise for constructor c
// (the raw constructor expression, self-reference still present as a
// BVar), decorating every strictly-positive recursive parameter with an
// extra trailing parameter: a proof that the motive holds of the recursive
// sub-term (spec §4.9 step 3, the recursor's "inductive hypothesis"
// arguments). u is 1 unless the inductive is small, i is the constructor's
// own index, maxD is its total parameter count, d is the current depth
// within c's own telescope, and rec counts how many recursive-call
// parameters have been inserted so far.
func minorPremiseRecs(c, constrExpr Expr, u, i, maxD, d, rec int) Expr {
	switch x := c.(type) {
	case *BVar, *App:
		cc := raiseExpr(c, d+1, u)
		cc = raiseExpr(cc, d, i)
		cc = raiseExpr(cc, 0, rec)
		constrRaised := raiseExpr(constrExpr, 0, u+1+i+d+rec)
		inner := app(constrRaised, bvarsRange(rec, rec+d)...)
		return app(cc, inner)
	case *Pi:
		if hasFreeIndex(x.Dom, d) {
			l := raiseExpr(x.Dom, d+1, u)
			l = raiseExpr(l, d, i)
			l = raiseExpr(l, 0, rec+maxD-d)
			l = telescopeMapExpr(l, 0, func(tail Expr, args int) Expr {
				a := app(&BVar{Index: args + rec + maxD - 1 - d}, bvarsRange(0, args)...)
				return app(tail, a)
			})
			rest := minorPremiseRecs(x.Cod, constrExpr, u, i, maxD, d+1, rec+1)
			return pi(l, rest)
		}
		return minorPremiseRecs(x.Cod, constrExpr, u, i, maxD, d+1, rec)
	default:
		return c
	}
}

// minorPremiseRecArgs walks the declared constructor type c alongside the
// in-progress ι-reduction value res (the selected minor premise already
// applied to the constructor's actual arguments), and for every
// strictly-positive recursive parameter appends one more trailing
// argument: a recursive call of the whole recursor (base, the
// partially-applied Ind:elim) on the corresponding sub-term (spec §4.3,
// §4.9 step 3 realized at the value level).
func minorPremiseRecArgs(base, c Expr, maxD, d, rec int, res Expr) Expr {
	x, ok := c.(*Pi)
	if !ok {
		return res
	}
	if !hasFreeIndex(x.Dom, d) {
		return minorPremiseRecArgs(base, x.Cod, maxD, d+1, rec, res)
	}

	l := x.Dom
	acc := res
	var relevantArg Expr
	target := rec + maxD - 1 - d
	for idx := 0; idx < rec+maxD; idx++ {
		a, ok := acc.(*App)
		if !ok {
			break
		}
		it := a.Arg
		acc = a.Fun
		switch {
		case idx == target:
			relevantArg = it
		case idx > target:
			shiftBy := rec + maxD - 1 - idx
			l = substWith(l, func() Expr { return raiseExpr(it, 0, shiftBy) })
		}
	}

	l = substExpr(l, base)
	// The recursive call is a term, so the parameter's Π telescope becomes a
	// λ telescope around the call on the applied sub-term.
	var lamMap func(e Expr, args int) Expr
	lamMap = func(e Expr, args int) Expr {
		if p, ok := e.(*Pi); ok {
			return &Lam{Dom: p.Dom, Body: lamMap(p.Cod, args+1)}
		}
		arg := raiseExpr(relevantArg, 0, args)
		arg = app(arg, bvarsRange(0, args)...)
		return app(e, arg)
	}
	l = lamMap(l, 0)

	newRes := app(res, l)
	return minorPremiseRecArgs(base, x.Cod, maxD, d+1, rec+1, newRes)
}
