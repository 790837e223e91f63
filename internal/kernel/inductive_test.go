package kernel

import "testing"

// TestConstrKeepsIndexedResultantType checks that constr's App case returns
// the full self-reference-applied-to-indices expression as the resultant
// type, not just the bare self-reference once the application spine has
// been validated. An indexed family's resultant type must retain its index
// arguments for later singleton-elimination checking to see them.
func TestConstrKeepsIndexedResultantType(t *testing.T) {
	env := newTestEnv()
	cx := newContext(env)

	idxVal := &FVar{Index: 42}
	tail := app(&BVar{Index: 0}, idxVal)

	res, maxD, err := constr(cx, tail, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if maxD != 0 {
		t.Fatalf("expected maxD 0, got %d", maxD)
	}
	if !equalExpr(res, tail) {
		t.Fatalf("expected resultant type %s, got %s", tail, res)
	}
}
