package kernel

import "github.com/sunholo/kernelcheck/internal/kernelerrors"

// hasFreeIndex reports whether expr contains a free occurrence of de Bruijn
// index n, after traversing under binders (each Π/Λ shifts the target by 1).
//
// Constructor bodies stored in an Ind descriptor carry one implicit extra
// binder standing for the inductive's own self-reference (spec §9,
// "constructor bodies as open terms whose outermost free index denotes the
// inductive itself"), so traversal into Ind.Constrs shifts n by one more
// than traversal into Ind.Arity.
func hasFreeIndex(expr Expr, n int) bool {
	switch e := expr.(type) {
	case *FVar, *Sortω:
		return false
	case *BVar:
		return e.Index == n
	case *Lam:
		return hasFreeIndex(e.Dom, n) || hasFreeIndex(e.Body, n+1)
	case *Pi:
		return hasFreeIndex(e.Dom, n) || hasFreeIndex(e.Cod, n+1)
	case *App:
		return hasFreeIndex(e.Fun, n) || hasFreeIndex(e.Arg, n)
	case *IndExpr:
		return indHasFreeIndex(e.I, n)
	case *IndConstr:
		return indHasFreeIndex(e.I, n)
	case *IndElim:
		return indHasFreeIndex(e.I, n)
	default:
		return false
	}
}

func indHasFreeIndex(i *Ind, n int) bool {
	if hasFreeIndex(i.Arity, n) {
		return true
	}
	for _, c := range i.Constrs {
		if hasFreeIndex(c, n+1) {
			return true
		}
	}
	return false
}

// raiseExpr increments every BVar with index >= depth by `by`, descending
// under binders with depth+1.
func raiseExpr(expr Expr, depth, by int) Expr {
	if by == 0 {
		return expr
	}
	switch e := expr.(type) {
	case *FVar, *Sortω:
		return expr
	case *BVar:
		if e.Index >= depth {
			return &BVar{Index: e.Index + by}
		}
		return e
	case *Lam:
		return &Lam{Dom: raiseExpr(e.Dom, depth, by), Body: raiseExpr(e.Body, depth+1, by)}
	case *Pi:
		return &Pi{Dom: raiseExpr(e.Dom, depth, by), Cod: raiseExpr(e.Cod, depth+1, by)}
	case *App:
		return &App{Fun: raiseExpr(e.Fun, depth, by), Arg: raiseExpr(e.Arg, depth, by)}
	case *IndExpr:
		return &IndExpr{I: raiseInd(e.I, depth, by)}
	case *IndConstr:
		return &IndConstr{K: e.K, I: raiseInd(e.I, depth, by)}
	case *IndElim:
		return &IndElim{I: raiseInd(e.I, depth, by)}
	default:
		return expr
	}
}

func raiseInd(i *Ind, depth, by int) *Ind {
	constrs := make([]Expr, len(i.Constrs))
	for idx, c := range i.Constrs {
		constrs[idx] = raiseExpr(c, depth+1, by)
	}
	return &Ind{Arity: raiseExpr(i.Arity, depth, by), Constrs: constrs, Small: i.Small}
}

// lowerExpr is the inverse of raiseExpr; it fails if any BVar with
// depth <= index < depth+by occurs, since that variable cannot be removed.
func lowerExpr(expr Expr, depth, by int) (Expr, error) {
	if by == 0 {
		return expr, nil
	}
	switch e := expr.(type) {
	case *FVar, *Sortω:
		return expr, nil
	case *BVar:
		switch {
		case e.Index >= depth && e.Index < depth+by:
			return nil, kernelerrors.IndexOutOfRange("BVar", e.Index, depth)
		case e.Index >= depth+by:
			return &BVar{Index: e.Index - by}, nil
		default:
			return e, nil
		}
	case *Lam:
		dom, err := lowerExpr(e.Dom, depth, by)
		if err != nil {
			return nil, err
		}
		body, err := lowerExpr(e.Body, depth+1, by)
		if err != nil {
			return nil, err
		}
		return &Lam{Dom: dom, Body: body}, nil
	case *Pi:
		dom, err := lowerExpr(e.Dom, depth, by)
		if err != nil {
			return nil, err
		}
		cod, err := lowerExpr(e.Cod, depth+1, by)
		if err != nil {
			return nil, err
		}
		return &Pi{Dom: dom, Cod: cod}, nil
	case *App:
		fn, err := lowerExpr(e.Fun, depth, by)
		if err != nil {
			return nil, err
		}
		arg, err := lowerExpr(e.Arg, depth, by)
		if err != nil {
			return nil, err
		}
		return &App{Fun: fn, Arg: arg}, nil
	case *IndExpr:
		i, err := lowerInd(e.I, depth, by)
		if err != nil {
			return nil, err
		}
		return &IndExpr{I: i}, nil
	case *IndConstr:
		i, err := lowerInd(e.I, depth, by)
		if err != nil {
			return nil, err
		}
		return &IndConstr{K: e.K, I: i}, nil
	case *IndElim:
		i, err := lowerInd(e.I, depth, by)
		if err != nil {
			return nil, err
		}
		return &IndElim{I: i}, nil
	default:
		return expr, nil
	}
}

func lowerInd(i *Ind, depth, by int) (*Ind, error) {
	arity, err := lowerExpr(i.Arity, depth, by)
	if err != nil {
		return nil, err
	}
	constrs := make([]Expr, len(i.Constrs))
	for idx, c := range i.Constrs {
		lc, err := lowerExpr(c, depth+1, by)
		if err != nil {
			return nil, err
		}
		constrs[idx] = lc
	}
	return &Ind{Arity: arity, Constrs: constrs, Small: i.Small}, nil
}

// substGeneric replaces, at the given depth, every BVar whose index equals
// depth with a fresh value produced by f (raised to re-target the binding
// context it is substituted into), renumbers BVars above depth down by one,
// and leaves BVars below depth untouched.
func substGeneric(expr Expr, depth int, f func() Expr) Expr {
	switch e := expr.(type) {
	case *FVar, *Sortω:
		return expr
	case *BVar:
		switch {
		case e.Index == depth:
			return raiseExpr(f(), 0, depth)
		case e.Index > depth:
			return &BVar{Index: e.Index - 1}
		default:
			return e
		}
	case *Lam:
		return &Lam{Dom: substGeneric(e.Dom, depth, f), Body: substGeneric(e.Body, depth+1, f)}
	case *Pi:
		return &Pi{Dom: substGeneric(e.Dom, depth, f), Cod: substGeneric(e.Cod, depth+1, f)}
	case *App:
		return &App{Fun: substGeneric(e.Fun, depth, f), Arg: substGeneric(e.Arg, depth, f)}
	case *IndExpr:
		return &IndExpr{I: substInd(e.I, depth, f)}
	case *IndConstr:
		return &IndConstr{K: e.K, I: substInd(e.I, depth, f)}
	case *IndElim:
		return &IndElim{I: substInd(e.I, depth, f)}
	default:
		return expr
	}
}

func substInd(i *Ind, depth int, f func() Expr) *Ind {
	constrs := make([]Expr, len(i.Constrs))
	for idx, c := range i.Constrs {
		constrs[idx] = substGeneric(c, depth+1, f)
	}
	return &Ind{Arity: substGeneric(i.Arity, depth, f), Constrs: constrs, Small: i.Small}
}

// substExpr replaces the outermost free index 0 of expr with new.
func substExpr(expr Expr, new Expr) Expr {
	return substGeneric(expr, 0, func() Expr { return new })
}

// substWith is like substExpr but calls f to produce a fresh replacement at
// every substitution site — used when substituting a back-reference to an
// inductive with the corresponding descriptor expression, which must be
// rebuilt fresh each time to avoid aliasing raised copies.
func substWith(expr Expr, f func() Expr) Expr {
	return substGeneric(expr, 0, f)
}
