package kernelerrors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsReportRoundTrip(t *testing.T) {
	err := TypeMismatch("Nat", "Bool")

	rep, ok := AsReport(err)
	require.True(t, ok)
	assert.Equal(t, KER001, rep.Code)
	assert.Equal(t, phase, rep.Phase)
	assert.Equal(t, "Nat", rep.Data["expected"])
}

func TestAsReportMiss(t *testing.T) {
	_, ok := AsReport(assertionError{})
	assert.False(t, ok)
}

type assertionError struct{}

func (assertionError) Error() string { return "not a report" }

func TestToJSONDeterministic(t *testing.T) {
	rep := &Report{Schema: "kernel.error/v1", Code: KER005, Phase: phase, Message: "too many constructors"}
	j, err := rep.ToJSON(true)
	require.NoError(t, err)
	assert.Contains(t, j, `"code":"KER005"`)
}

func TestEveryBuilderCarriesItsCode(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code string
	}{
		{"mismatch", TypeMismatch("A", "B"), KER001},
		{"not-a-sort", NotASort("x"), KER001},
		{"non-function", NonFunctionApplication("f", "Nat"), KER002},
		{"invalid-arity", InvalidArity("Nat"), KER003},
		{"arity-depends", ArityDependsOnIndices(), KER004},
		{"too-many-ctors", TooManyConstructors(70000), KER005},
		{"ctor-sort", ConstructorSortMismatch("Sort 0", "Sort 1"), KER006},
		{"small-elim", SmallElimNonProposition(), KER007},
		{"multi-ctor", MultiConstructorForbidden(), KER008},
		{"not-pos", NotStrictPositive("Bad"), KER009},
		{"singleton", SingletonElimViolation(), KER010},
		{"ctor-shape", InvalidConstructorShape("x"), KER011},
		{"ctor-shape-self", DependedOnParamMentionsSelf(), KER011},
		{"overflow", LevelOverflow("Sortω successor"), KER012},
		{"truncate", TruncateBelowBuiltins(6), KER013},
		{"oob", IndexOutOfRange("FVar", 99, 6), KER014},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rep, ok := AsReport(tc.err)
			require.True(t, ok)
			assert.Equal(t, tc.code, rep.Code)
		})
	}
}
