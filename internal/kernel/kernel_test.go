package kernel

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunholo/kernelcheck/internal/kernelerrors"
)

func newTestEnv() *Environment {
	return New([6]string{"Level", "Z", "S", "max", "imax", "Sort"})
}

// fv is a shorthand for a fresh FVar referencing the i-th environment entry.
func fv(i int) *FVar { return &FVar{Index: i} }

func TestBuiltinTypes(t *testing.T) {
	env := newTestEnv()
	ty, err := env.TypeOf(level)
	require.NoError(t, err)
	assert.True(t, equalExpr(ty, app(sort, app(succ, zero))))

	ty, err = env.TypeOf(zero)
	require.NoError(t, err)
	assert.True(t, equalExpr(ty, level))

	ty, err = env.TypeOf(succ)
	require.NoError(t, err)
	assert.True(t, equalExpr(ty, pi(level, level)))
}

// TestIdentityFunction checks the identity function's inferred type
// (spec §8.4 scenario 1): for a fresh atomic level ℓ and a fresh type A :
// Sort ℓ, λ x:A, x has type Π x:A, A.
func TestIdentityFunction(t *testing.T) {
	env := newTestEnv()
	lIdx := env.Add("l", level)
	aIdx := env.Add("A", app(sort, fv(lIdx)))

	id := &Lam{Dom: fv(aIdx), Body: &BVar{Index: 0}}
	ty, err := env.TypeOf(id)
	require.NoError(t, err)
	assert.True(t, equalExpr(ty, pi(fv(aIdx), fv(aIdx))))
}

func natEnv(t *testing.T) (*Environment, *Ind, int) {
	t.Helper()
	env := newTestEnv()
	// Nat : Sort (S Z), constructors zero : Nat, succ : Nat -> Nat.
	nat := &Ind{
		Arity: app(sort, app(succ, zero)),
		Constrs: []Expr{
			&BVar{Index: 0},
			pi(&BVar{Index: 0}, &BVar{Index: 1}),
		},
		Small: false,
	}
	natIdx := env.Add("Nat", nat.Arity)
	_ = natIdx
	return env, nat, natIdx
}

func TestNatRecursorType(t *testing.T) {
	env, nat, _ := natEnv(t)
	elim := &IndElim{I: nat}
	ty, err := env.TypeOf(elim)
	require.NoError(t, err)
	// The recursor type must itself be well-formed (infer its own sort
	// without error), and its outermost parameter must be Level (since Nat
	// isn't small, the recursor is universe-polymorphic).
	p, ok := ty.(*Pi)
	require.True(t, ok, "recursor type must start with a Π")
	assert.True(t, equalExpr(p.Dom, level))
}

// TestNatIotaReduction exercises spec §8.4 scenario 3: Ind:elim(Nat) applied
// through [ℓ, P, pz, ps] and then the constructor `succ zero` reduces to
// `ps zero (Ind:elim(Nat) ℓ P pz ps zero)`.
func TestNatIotaReduction(t *testing.T) {
	_, nat, _ := natEnv(t)
	zeroC := &IndConstr{K: 0, I: nat}
	succC := &IndConstr{K: 1, I: nat}

	lArg := &FVar{Index: 100}  // a stand-in universe level atom
	pArg := &FVar{Index: 101}  // the motive
	pzArg := &FVar{Index: 102} // zero case
	psArg := &FVar{Index: 103} // succ case

	elim := app(&IndElim{I: nat}, lArg, pArg, pzArg, psArg, app(succC, zeroC))
	reduced := whnf(elim)

	expected := app(psArg, zeroC, app(&IndElim{I: nat}, lArg, pArg, pzArg, psArg, zeroC))
	if diff := cmp.Diff(expected, reduced); diff != "" {
		t.Errorf("iota-reduced term mismatch (-want +got):\n%s", diff)
	}
}

func TestNatZeroIotaReduction(t *testing.T) {
	_, nat, _ := natEnv(t)
	zeroC := &IndConstr{K: 0, I: nat}

	lArg := &FVar{Index: 100}
	pArg := &FVar{Index: 101}
	pzArg := &FVar{Index: 102}
	psArg := &FVar{Index: 103}

	elim := app(&IndElim{I: nat}, lArg, pArg, pzArg, psArg, zeroC)
	reduced := whnf(elim)
	assert.True(t, equalExpr(reduced, pzArg), "got %s", reduced)
}

// TestProofIrrelevance checks spec §8.4 scenario 4: a small (proof-
// irrelevant) True with a single trivial constructor, where any two proofs
// of True are definitionally equal regardless of their own structure — even
// an opaque free-variable "proof" compared against the literal constructor.
func TestProofIrrelevance(t *testing.T) {
	env := newTestEnv()
	trueInd := &Ind{
		Arity:   app(sort, zero),
		Constrs: []Expr{&BVar{Index: 0}},
		Small:   true,
	}
	opaqueIdx := env.Add("opaqueProof", &IndExpr{I: trueInd})
	cx := newContext(env)
	p1 := &IndConstr{K: 0, I: trueInd}
	p2 := fv(opaqueIdx)
	assert.True(t, defEq(cx, p1, p2))
}

// TestProofIrrelevanceDoesNotEquatePropositions checks that the UIP
// fallback does NOT collapse two distinct propositions into each other —
// only two proofs of the SAME proposition are equated.
func TestProofIrrelevanceDoesNotEquatePropositions(t *testing.T) {
	env := newTestEnv()
	trueInd := &Ind{
		Arity:   app(sort, zero),
		Constrs: []Expr{&BVar{Index: 0}},
		Small:   true,
	}
	falseInd := &Ind{
		Arity:   app(sort, zero),
		Constrs: []Expr{},
		Small:   true,
	}
	cx := newContext(env)
	assert.False(t, defEq(cx, &IndExpr{I: trueInd}, &IndExpr{I: falseInd}))
}

// TestBadStrictPositivityRejected exercises spec §8.4 scenario 5: an
// inductive whose constructor takes the inductive-to-be-defined as a
// function argument (negative occurrence) must be rejected.
func TestBadStrictPositivityRejected(t *testing.T) {
	env := newTestEnv()
	bad := &Ind{
		Arity: app(sort, app(succ, zero)),
		Constrs: []Expr{
			// bad : (Bad -> Bad) -> Bad — Bad occurs in a negative position.
			pi(pi(&BVar{Index: 0}, &BVar{Index: 1}), &BVar{Index: 1}),
		},
		Small: false,
	}
	_, err := env.TypeOf(&IndExpr{I: bad})
	require.Error(t, err)
	rep, ok := kernelerrors.AsReport(err)
	require.True(t, ok)
	assert.Equal(t, kernelerrors.KER009, rep.Code)
}
