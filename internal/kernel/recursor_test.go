package kernel

import "testing"

// TestMinorPremiseRecArgsDependentHigherOrder exercises a constructor with
// two parameters where the second is a higher-order recursive argument whose
// own domain depends on the first parameter (e.g. `node : (n : A) -> (f : n
// -> Wrap) -> Wrap`). This is the scenario that distinguishes peels occurring
// before the target slot (discarded) from peels occurring after it
// (substituted into the recursive parameter's domain): with only one
// parameter in play the two orderings are indistinguishable, so a Nat-shaped
// constructor can't catch a swap between them.
func TestMinorPremiseRecArgsDependentHigherOrder(t *testing.T) {
	base := &FVar{Index: 999}

	nonRecType := &FVar{Index: 200}
	// recDom = Π _:BVar(0), BVar(2) — a function out of the first
	// parameter's type, landing back in the inductive itself.
	recDom := pi(&BVar{Index: 0}, &BVar{Index: 2})
	selfRef := &BVar{Index: 2}
	c := pi(nonRecType, pi(recDom, selfRef))

	minorValue := &FVar{Index: 300}
	arg0 := &FVar{Index: 301}
	arg1 := &FVar{Index: 302}
	res := app(app(minorValue, arg0), arg1)

	got := minorPremiseRecArgs(base, c, 2, 0, 0, res)

	// The recursive parameter's domain, instantiated with arg0 (the actual
	// first-parameter value) and wrapped into a function composing with the
	// recursive call on base, then applied as a trailing argument.
	inductionStep := &Lam{
		Dom:  arg0,
		Body: app(base, app(arg1, &BVar{Index: 0})),
	}
	want := app(res, inductionStep)

	if !equalExpr(got, want) {
		t.Fatalf("got %s want %s", got, want)
	}
}
