package kernel

import "testing"

// TestDefEqSelfOverAtomCap checks that defEq(e, e) still holds (spec §4.5
// universal reflexivity invariant) for a level expression with more than
// maxLevelAtoms distinct atoms, by comparing a structurally identical tree
// against itself. levelDefEq alone bails out once the atom cap is exceeded
// (TestLevelAtomCapRejects), but defEq must try structEq first and only
// fall back to the level engine when the plain AST match fails — the
// self-comparison never needs the level engine at all.
func TestDefEqSelfOverAtomCap(t *testing.T) {
	env := newTestEnv()
	var atoms []Expr
	for i := 0; i < maxLevelAtoms+1; i++ {
		idx := env.Add("a", level)
		atoms = append(atoms, fv(idx))
	}
	cx := newContext(env)
	e := atoms[0]
	for _, a := range atoms[1:] {
		e = app(maxOp, e, a)
	}
	if !defEq(cx, e, e) {
		t.Fatal("expected an over-cap level expression to be def-eq to itself via structural comparison")
	}
}

// TestIndDefEqSelf checks that a multi-constructor inductive (Nat) is
// def-eq to itself: constructor comparison must proceed under a binder for
// the shared arity, matching the implicit self-reference every constructor
// is typed against, without errors leaking out and spuriously failing the
// comparison.
func TestIndDefEqSelf(t *testing.T) {
	env, nat, _ := natEnv(t)
	cx := newContext(env)
	if !indDefEq(cx, nat, nat) {
		t.Fatal("expected Nat def-eq itself")
	}
}

// TestIndDefEqDistinctArities checks that Nat and a small one-constructor
// Unit, whose arities also differ, are reported distinct. indDefEq rejects
// this pair on the small flag and constructor count, before it compares
// arities or constructors.
func TestIndDefEqDistinctArities(t *testing.T) {
	env, nat, _ := natEnv(t)
	cx := newContext(env)
	unit := &Ind{
		Arity:   app(sort, zero),
		Constrs: []Expr{&BVar{Index: 0}},
		Small:   true,
	}
	if indDefEq(cx, nat, unit) {
		t.Fatal("expected Nat and Unit to be distinct")
	}
}
