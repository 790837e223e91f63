package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRaiseLowerRoundTrip(t *testing.T) {
	// Π _:BVar(0), BVar(1) — a Pi whose codomain references something bound
	// two levels up from inside it.
	e := pi(&BVar{Index: 0}, &BVar{Index: 1})
	raised := raiseExpr(e, 0, 3)
	assert.True(t, equalExpr(raised, pi(&BVar{Index: 3}, &BVar{Index: 4})))

	lowered, err := lowerExpr(raised, 0, 3)
	require.NoError(t, err)
	assert.True(t, equalExpr(lowered, e))
}

func TestLowerRejectsCapturedIndex(t *testing.T) {
	_, err := lowerExpr(&BVar{Index: 0}, 0, 1)
	require.Error(t, err)
}

func TestRaiseByZeroIsNoop(t *testing.T) {
	e := pi(&BVar{Index: 0}, &App{Fun: &BVar{Index: 1}, Arg: &FVar{Index: 2}})
	assert.Same(t, e, raiseExpr(e, 0, 0))
}

func TestSubstExprReplacesIndexZero(t *testing.T) {
	// (λ _:A, BVar(0)) applied conceptually to FVar(7): substituting
	// BVar(0) inside the body directly should yield FVar(7).
	body := &BVar{Index: 0}
	got := substExpr(body, &FVar{Index: 7})
	assert.True(t, equalExpr(got, &FVar{Index: 7}))
}

func TestSubstExprShiftsHigherIndices(t *testing.T) {
	// A bare reference to index 1 (one binder further out than the
	// substitution target) must shift down to index 0 once that target
	// binder disappears.
	assert.True(t, equalExpr(substExpr(&BVar{Index: 1}, &FVar{Index: 9}), &BVar{Index: 0}))

	// The same shift, one Π layer deeper: Cod's BVar(2) (index 1 from
	// outside the Pi, shifted by +1 for the Pi's own binder) becomes
	// BVar(1) once the substitution target's binder is gone.
	body := pi(&FVar{Index: 100}, &BVar{Index: 2})
	got := substExpr(body, &FVar{Index: 9})
	want := pi(&FVar{Index: 100}, &BVar{Index: 1})
	assert.True(t, equalExpr(got, want), "got %s want %s", got, want)
}

func TestHasFreeIndexUnderBinders(t *testing.T) {
	// Dom's BVar(0) mentions outer index 0 directly; Cod's BVar(1), one
	// binder deeper, also mentions outer index 0 (1 = 0 shifted by the
	// Pi's own binder) rather than outer index 1.
	e := pi(&BVar{Index: 0}, &BVar{Index: 1})
	assert.True(t, hasFreeIndex(e, 0))
	assert.False(t, hasFreeIndex(e, 1))
}

func TestIndConstrsCarryImplicitBinder(t *testing.T) {
	// BVar(0) inside a constructor body denotes the inductive's own
	// self-reference, occupying slot 0 — so a constructor referencing an
	// outer context variable at index n (as seen from Arity's own frame)
	// must spell it BVar(n+1). indHasFreeIndex must look for n+1 in
	// Constrs even though it looks for plain n in Arity.
	ind := &Ind{
		Arity:   app(sort, zero), // does not mention any outer index
		Constrs: []Expr{&BVar{Index: 1}},
		Small:   true,
	}
	assert.True(t, indHasFreeIndex(ind, 0))
	assert.False(t, indHasFreeIndex(ind, 1))
}
