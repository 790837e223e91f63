package fixtures

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunholo/kernelcheck/testutil"
)

// goldenCheck and goldenScenario are the shape compared against
// testdata/scenario-summary/all.golden.json: just names and outcomes, not
// the full CheckResult (whose Detail strings are diagnostic prose, not a
// stable contract worth golden-pinning).
type goldenCheck struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
}

type goldenScenario struct {
	Name   string        `json:"name"`
	Checks []goldenCheck `json:"checks"`
}

func TestScenarios(t *testing.T) {
	scenarios, err := LoadDir("testdata/scenarios")
	require.NoError(t, err)
	require.NotEmpty(t, scenarios, "expected at least one scenario file")

	for _, s := range scenarios {
		s := s
		t.Run(s.Name, func(t *testing.T) {
			res := Run(s)
			require.True(t, res.SetupOK, "scenario setup failed: %s", res.Detail)
			for _, c := range res.Checks {
				assert.True(t, c.Passed, "check %q failed: %s", c.Name, c.Detail)
			}
		})
	}
}

// TestScenarioCheckCounts guards against a scenario silently losing a check
// (e.g. a YAML indentation slip dropping an entry from the checks list).
func TestScenarioCheckCounts(t *testing.T) {
	want := map[string]int{
		"identity-polymorphic-function": 1,
		"nat-constructors-and-recursor":  3,
		"nat-iota-reduction-type":        1,
		"true-proof-irrelevance":         1,
		"bad-strict-positivity-rejected": 1,
		"universe-inequality":            3,
		"boundary-behaviors":             2,
	}

	scenarios, err := LoadDir("testdata/scenarios")
	require.NoError(t, err)

	got := make(map[string]int, len(scenarios))
	for _, s := range scenarios {
		got[s.Name] = len(s.Checks)
	}
	assert.Equal(t, want, got)
}

// TestScenarioSummaryGolden pins the full scenario/check name shape against
// a golden file, guarding the corpus as a whole against a scenario being
// silently renamed, reordered, or dropped from the loaded set — complementary
// to TestScenarioCheckCounts, which only guards per-scenario check counts.
func TestScenarioSummaryGolden(t *testing.T) {
	scenarios, err := LoadDir("testdata/scenarios")
	require.NoError(t, err)

	summary := make([]goldenScenario, 0, len(scenarios))
	for _, s := range scenarios {
		res := Run(s)
		require.True(t, res.SetupOK, "scenario setup failed: %s", res.Detail)

		gs := goldenScenario{Name: res.Name}
		for _, c := range res.Checks {
			gs.Checks = append(gs.Checks, goldenCheck{Name: c.Name, Passed: c.Passed})
		}
		summary = append(summary, gs)
	}

	testutil.CompareWithGolden(t, "scenario-summary", "all", summary)
}

func TestLoadDirRejectsMissingDir(t *testing.T) {
	_, err := LoadDir("testdata/does-not-exist")
	assert.Error(t, err)
}

func TestLoadRejectsMissingFile(t *testing.T) {
	_, err := Load("testdata/scenarios/does-not-exist.yaml")
	assert.Error(t, err)
}
