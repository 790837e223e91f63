package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBvarTypeRaisesByDepth checks that looking up a bound variable's type
// re-targets any de Bruijn indices inside it to the CURRENT binder stack
// depth, not the (shallower) depth at which the type was originally pushed.
// A second binder whose own declared type is "BVar(0)" (referencing the
// first binder) must, once looked up from one level deeper, read back as
// BVar(1) — still correctly pointing at the first binder, now one slot
// further away.
func TestBvarTypeRaisesByDepth(t *testing.T) {
	env := newTestEnv()
	cx := newContext(env)

	outer := &FVar{Index: 50}
	err := cx.withBinder(outer, func() error {
		return cx.withBinder(&BVar{Index: 0}, func() error {
			ty, err := cx.bvarType(0)
			require.NoError(t, err)
			assert.True(t, equalExpr(ty, &BVar{Index: 1}), "got %s", ty)

			outerTy, err := cx.bvarType(1)
			require.NoError(t, err)
			assert.True(t, equalExpr(outerTy, outer), "got %s", outerTy)
			return nil
		})
	})
	require.NoError(t, err)
}
