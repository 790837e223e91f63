package kernel

// whnfCont describes what kind of reducible head an expression's weak-head
// form still is, for the enclosing App node to act on. A bare expression
// can be "still waiting for d more arguments before an IndElim can fire"
// (contInd) or "a λ ready to β-reduce against the next argument" (contLam);
// anything else is already in normal form as far as this algorithm goes.
type whnfCont struct {
	kind     contKind
	lamBody  Expr
	depth    int
	indices  int
	nConstrs int
}

type contKind int

const (
	contNone contKind = iota
	contLam
	contInd
)

// whnf reduces e to weak-head normal form via β- and ι-reduction. It does
// not reduce inside Π domains, λ bodies, or constructor argument positions
// unless driven by a recursor firing (spec §4.3).
func whnf(e Expr) Expr {
	head, _ := whnfHead(e)
	return head
}

func whnfHead(e Expr) (Expr, whnfCont) {
	switch x := e.(type) {
	case *App:
		fHead, fCont := whnfHead(x.Fun)
		switch fCont.kind {
		case contLam:
			return whnfHead(substExpr(fCont.lamBody, x.Arg))
		case contInd:
			if fCont.depth == 0 {
				argHead := whnf(x.Arg)
				if reduced, ok := iotaReduce(fHead, fCont, argHead); ok {
					return whnfHead(reduced)
				}
				return &App{Fun: fHead, Arg: argHead}, whnfCont{}
			}
			return &App{Fun: fHead, Arg: x.Arg}, whnfCont{
				kind: contInd, depth: fCont.depth - 1, indices: fCont.indices, nConstrs: fCont.nConstrs,
			}
		default:
			return &App{Fun: fHead, Arg: x.Arg}, whnfCont{}
		}
	case *Lam:
		return e, whnfCont{kind: contLam, lamBody: x.Body}
	case *IndElim:
		indices := countTelescopeLen(x.I.Arity)
		depth := len(x.I.Constrs) + indices
		if !x.I.Small {
			depth++
		}
		depth++ // motive is always present
		return e, whnfCont{kind: contInd, depth: depth, indices: indices, nConstrs: len(x.I.Constrs)}
	default:
		return e, whnfCont{}
	}
}

// countTelescopeLen counts the Π layers in a telescope before its tail.
func countTelescopeLen(e Expr) int {
	n := 0
	for {
		p, ok := e.(*Pi)
		if !ok {
			return n
		}
		n++
		e = p.Cod
	}
}

// peelFun strips `times` outermost App layers off e's function spine,
// returning what remains.
func peelFun(e Expr, times int) Expr {
	for i := 0; i < times; i++ {
		a, ok := e.(*App)
		if !ok {
			return e
		}
		e = a.Fun
	}
	return e
}

// peelConstrSpine recognizes e as App*(IndConstr(k, I), args...) and
// returns k, I, and args in left-to-right application order.
func peelConstrSpine(e Expr) (k int, ind *Ind, args []Expr, ok bool) {
	var rev []Expr
	cur := e
	for {
		switch x := cur.(type) {
		case *App:
			rev = append(rev, x.Arg)
			cur = x.Fun
		case *IndConstr:
			args = make([]Expr, len(rev))
			for i, a := range rev {
				args[len(rev)-1-i] = a
			}
			return x.K, x.I, args, true
		default:
			return 0, nil, nil, false
		}
	}
}

// iotaReduce fires the ι-rule: fHead is the recursor applied to exactly the
// arguments preceding the major premise (universe?, motive, minor premises,
// indices); argHead is the (already whnf'd) major premise. If argHead is
// constructor-headed, the reduct is the matching minor premise applied to
// the constructor's arguments, with recursive calls inserted for every
// strictly-positive recursive argument (spec §4.3, §4.9).
func iotaReduce(fHead Expr, cont whnfCont, argHead Expr) (Expr, bool) {
	k, ind, args, ok := peelConstrSpine(argHead)
	if !ok {
		return nil, false
	}
	minorsApplied := peelFun(fHead, cont.indices)
	node := peelFun(minorsApplied, cont.nConstrs-1-k)
	minorApp, ok := node.(*App)
	if !ok {
		return nil, false
	}
	minorValue := minorApp.Arg

	res := app(minorValue, args...)
	constrType := ind.Constrs[k]
	_, maxD, _ := constr(nil, constrType, 0)
	return minorPremiseRecArgs(minorsApplied, constrType, maxD, 0, 0, res), true
}
