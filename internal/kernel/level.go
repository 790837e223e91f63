package kernel

import "github.com/sunholo/kernelcheck/internal/kernelerrors"

// maxUniverseLevel bounds any accumulated numeric level offset. Exceeding it
// anywhere in the level engine is treated as overflow (spec §4.4).
const maxUniverseLevel = 1<<16 - 1

// maxLevelAtoms bounds the number of distinct atomic level sub-expressions
// the engine will track per def_eq call. Beyond this the engine gives up and
// reports the levels unequal rather than evaluate an exponential case split
// (spec §4.4 step 1).
const maxLevelAtoms = 16

type levelKindT int

const (
	levelAlwaysZero levelKindT = iota
	levelSometimesZero
	levelAlwaysNonzero
)

// levelKind classifies a level expression without a full case-split: Z is
// always zero, any S _ is always nonzero, max takes the larger of its two
// operands' kinds, and imax inherits its right operand's kind (imax ℓ Z is
// always Z regardless of ℓ, and otherwise behaves like its right operand).
// Anything else (an atom, or an unrecognized shape) is conservatively
// "sometimes zero".
func levelKind(e Expr) levelKindT {
	e = whnf(e)
	if f, ok := e.(*FVar); ok && f.Index == idxZ {
		return levelAlwaysZero
	}
	if isAppOf(e, idxS) {
		return levelAlwaysNonzero
	}
	if a, ok := e.(*App); ok {
		if isAppOf(a.Fun, idxMax) {
			k1 := levelKind(a.Fun.(*App).Arg)
			k2 := levelKind(a.Arg)
			if k1 > k2 {
				return k1
			}
			return k2
		}
		if isAppOf(a.Fun, idxIMax) {
			return levelKind(a.Arg)
		}
	}
	return levelSometimesZero
}

// isAppOf reports whether e is App(FVar(idx), _).
func isAppOf(e Expr, idx int) bool {
	a, ok := e.(*App)
	if !ok {
		return false
	}
	f, ok := a.Fun.(*FVar)
	return ok && f.Index == idx
}

// isLevelExpr reports whether e is recognizably a level-sorted expression:
// Z, S _, max _ _, or imax _ _.
func isLevelExpr(e Expr) bool {
	if f, ok := e.(*FVar); ok && f.Index == idxZ {
		return true
	}
	if isAppOf(e, idxS) {
		return true
	}
	if a, ok := e.(*App); ok {
		if isAppOf(a.Fun, idxMax) || isAppOf(a.Fun, idxIMax) {
			return true
		}
	}
	return false
}

type levelTermKind int

const (
	ltVar levelTermKind = iota
	ltZero
	ltSucc
	ltMax
	ltIMax
)

// levelTerm is the algebraic reading of a level expression, with every
// non-level-constructor sub-expression abstracted to a numbered atom.
type levelTerm struct {
	kind levelTermKind
	v    int
	a, b *levelTerm
}

// levelCollector converts level expressions into levelTerms, deduplicating
// atoms against each other via full definitional equality (so two
// syntactically different but def-eq atoms collapse to one variable).
type levelCollector struct {
	cx    *context
	atoms []Expr
}

func (vc *levelCollector) term(e Expr) (*levelTerm, bool) {
	e = whnf(e)
	if f, ok := e.(*FVar); ok && f.Index == idxZ {
		return &levelTerm{kind: ltZero}, true
	}
	if isAppOf(e, idxS) {
		inner, ok := vc.term(e.(*App).Arg)
		if !ok {
			return nil, false
		}
		return &levelTerm{kind: ltSucc, a: inner}, true
	}
	if a, ok := e.(*App); ok && isAppOf(a.Fun, idxMax) {
		left, ok := vc.term(a.Fun.(*App).Arg)
		if !ok {
			return nil, false
		}
		right, ok := vc.term(a.Arg)
		if !ok {
			return nil, false
		}
		return &levelTerm{kind: ltMax, a: left, b: right}, true
	}
	if a, ok := e.(*App); ok && isAppOf(a.Fun, idxIMax) {
		left, ok := vc.term(a.Fun.(*App).Arg)
		if !ok {
			return nil, false
		}
		right, ok := vc.term(a.Arg)
		if !ok {
			return nil, false
		}
		return &levelTerm{kind: ltIMax, a: left, b: right}, true
	}
	for i, ex := range vc.atoms {
		if defEq(vc.cx, ex, e) {
			return &levelTerm{kind: ltVar, v: i}, true
		}
	}
	if len(vc.atoms) == maxLevelAtoms {
		return nil, false
	}
	vc.atoms = append(vc.atoms, e)
	return &levelTerm{kind: ltVar, v: len(vc.atoms) - 1}, true
}

// levelSummand is one disjunct of a normalized level: base + (the largest,
// over every atom in imaxAdds that turns out nonzero in a given
// assignment, of that atom's own accumulated add) — or, if any imaxAdds
// atom is assigned zero, the summand collapses to the adds accumulated from
// the chain's last entry up to and including that atom's own entry (spec
// §4.4's imax short-circuit).
type levelSummand struct {
	base     int
	imaxAdds []levelImaxAdd
}

type levelImaxAdd struct {
	atom, add int
}

type levelNormalized []levelSummand

// maxNormalize appends t's disjunctive-normal-form summands to *n.
func maxNormalize(n *levelNormalized, t *levelTerm) error {
	switch t.kind {
	case ltVar:
		*n = append(*n, levelSummand{imaxAdds: []levelImaxAdd{{atom: t.v, add: 0}}})
	case ltZero:
		*n = append(*n, levelSummand{})
	case ltSucc:
		oldLen := len(*n)
		if err := maxNormalize(n, t.a); err != nil {
			return err
		}
		for i := oldLen; i < len(*n); i++ {
			s := &(*n)[i]
			if len(s.imaxAdds) > 0 {
				last := &s.imaxAdds[len(s.imaxAdds)-1]
				if last.add+1 > maxUniverseLevel {
					return kernelerrors.LevelOverflow("successor accumulation")
				}
				last.add++
			} else {
				if s.base+1 > maxUniverseLevel {
					return kernelerrors.LevelOverflow("successor accumulation")
				}
				s.base++
			}
		}
	case ltMax:
		if err := maxNormalize(n, t.a); err != nil {
			return err
		}
		if err := maxNormalize(n, t.b); err != nil {
			return err
		}
	case ltIMax:
		return imaxNormalize(n, t.a, t.b)
	}
	return nil
}

// imaxNormalize implements imax's defining equations at the normalized-form
// level: imax ℓ Z = Z; imax ℓ (S k) = max ℓ (S k); imax ℓ (max a b) =
// max (imax ℓ a) (imax ℓ b); imax ℓ (imax a b) = max (imax ℓ b) (imax a b);
// and imax ℓ x for atomic x defers to x's own value, recording ℓ's
// contribution as a short-circuiting imax-add (spec §4.4, §9 Open Question).
func imaxNormalize(n *levelNormalized, a, b *levelTerm) error {
	switch b.kind {
	case ltVar:
		oldLen := len(*n)
		if err := maxNormalize(n, a); err != nil {
			return err
		}
		for i := oldLen; i < len(*n); i++ {
			(*n)[i].imaxAdds = append((*n)[i].imaxAdds, levelImaxAdd{atom: b.v, add: 0})
		}
	case ltZero:
		*n = append(*n, levelSummand{})
	case ltSucc:
		if err := maxNormalize(n, a); err != nil {
			return err
		}
		return maxNormalize(n, b)
	case ltMax:
		if err := imaxNormalize(n, a, b.a); err != nil {
			return err
		}
		return imaxNormalize(n, a, b.b)
	case ltIMax:
		if err := imaxNormalize(n, a, b.b); err != nil {
			return err
		}
		return imaxNormalize(n, b.a, b.b)
	}
	return nil
}

// applyNormalized evaluates a normalized level under a 0/1 assignment of its
// atoms (bit i of states = whether atom i is nonzero). A summand whose
// imax-chain hits a zero-assigned atom collapses to the adds accumulated,
// walking from the chain's last entry, up to and including that atom's own
// entry; otherwise it evaluates to base plus the largest accumulated add
// across the chain.
func applyNormalized(n levelNormalized, numVars int, states uint32) (result int, offsets []int, ok bool) {
	offsets = make([]int, numVars)
	k := 0
	for _, summand := range n {
		total := 1
		value := 0
		shortCircuit := false
		for idx := len(summand.imaxAdds) - 1; idx >= 0; idx-- {
			add := summand.imaxAdds[idx]
			total += add.add
			if total > maxUniverseLevel {
				return 0, nil, false
			}
			if states&(1<<uint(add.atom)) == 0 {
				value = total - 1
				shortCircuit = true
				break
			}
			if total > offsets[add.atom] {
				offsets[add.atom] = total
			}
		}
		if !shortCircuit {
			value = total - 1 + summand.base
			if value > maxUniverseLevel {
				return 0, nil, false
			}
		}
		if value > k {
			k = value
		}
	}
	for _, o := range offsets {
		if o > k {
			k = o
		}
	}
	return k, offsets, true
}

// levelDefEq is the level-engine fallback for definitional equality
// (spec §4.5 step 3): when at least one side is recognizably a level
// expression, the two sides are compared by exhaustively case-splitting
// every distinct atom (capped at maxLevelAtoms) and checking the levels
// evaluate equal under every assignment. ok reports whether the fallback
// applies at all; eq is only meaningful when ok is true.
func levelDefEq(cx *context, lhs, rhs Expr) (eq, ok bool) {
	if !isLevelExpr(lhs) && !isLevelExpr(rhs) {
		return false, false
	}
	vc := &levelCollector{cx: cx}
	lhsTerm, okL := vc.term(lhs)
	if !okL {
		return false, true
	}
	rhsTerm, okR := vc.term(rhs)
	if !okR {
		return false, true
	}
	var l, r levelNormalized
	if err := maxNormalize(&l, lhsTerm); err != nil {
		return false, true
	}
	if err := maxNormalize(&r, rhsTerm); err != nil {
		return false, true
	}
	numVars := len(vc.atoms)
	total := uint32(1) << uint(numVars)
	for s := uint32(0); s < total; s++ {
		lv, loff, lok := applyNormalized(l, numVars, s)
		rv, roff, rok := applyNormalized(r, numVars, s)
		if !lok || !rok || lv != rv || !intsEqual(loff, roff) {
			return false, true
		}
	}
	return true, true
}

// intsEqual reports whether two equal-length offset slices hold the same
// values (apply's result is the pair (k, offsets): both sides of the
// comparison, not just the scalar, must agree).
func intsEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
