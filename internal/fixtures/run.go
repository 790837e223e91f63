package fixtures

import (
	"fmt"
	"sort"

	"github.com/sunholo/kernelcheck/internal/kernel"
	"github.com/sunholo/kernelcheck/internal/kernelerrors"
)

// builtinNames seeds every scenario environment identically; scenario YAML
// refers to them by these names via {kind: ref, name: ...}.
var builtinNames = [kernel.NumBuiltins]string{"Level", "Z", "S", "max", "imax", "Sort"}

// CheckResult is the outcome of running one Check.
type CheckResult struct {
	Name   string
	Passed bool
	Detail string
}

// ScenarioResult is the outcome of running one Scenario.
type ScenarioResult struct {
	Name    string
	Checks  []CheckResult
	SetupOK bool
	Detail  string
}

// Passed reports whether every check in the scenario passed.
func (r ScenarioResult) Passed() bool {
	if !r.SetupOK {
		return false
	}
	for _, c := range r.Checks {
		if !c.Passed {
			return false
		}
	}
	return true
}

// Run builds a fresh environment from s's Defs and Inds, then runs every
// Check against it in order.
func Run(s *Scenario) ScenarioResult {
	res := ScenarioResult{Name: s.Name}

	env := kernel.New(builtinNames)
	r := newResolver()
	for i, name := range builtinNames {
		r.names[name] = i
	}

	for _, ind := range sortedIndNames(s.Inds) {
		built, err := r.buildInd(s.Inds[ind])
		if err != nil {
			res.Detail = fmt.Sprintf("inductive %q: %v", ind, err)
			return res
		}
		r.inds[ind] = built
	}

	for _, d := range s.Defs {
		ty, err := r.build(d.Type)
		if err != nil {
			res.Detail = fmt.Sprintf("def %q: %v", d.Name, err)
			return res
		}
		if _, err := env.TypeOf(ty); err != nil {
			res.Detail = fmt.Sprintf("def %q: type %s does not itself typecheck: %v", d.Name, ty, err)
			return res
		}
		r.names[d.Name] = env.Add(d.Name, ty)
	}
	res.SetupOK = true

	for _, c := range s.Checks {
		res.Checks = append(res.Checks, runCheck(env, r, c))
	}
	return res
}

// RunDir loads every scenario in dir and runs it.
func RunDir(dir string) ([]ScenarioResult, error) {
	scenarios, err := LoadDir(dir)
	if err != nil {
		return nil, err
	}
	results := make([]ScenarioResult, len(scenarios))
	for i, s := range scenarios {
		results[i] = Run(s)
	}
	return results, nil
}

func runCheck(env *kernel.Environment, r *resolver, c Check) CheckResult {
	name := c.Name
	if name == "" {
		name = "check"
	}

	expr, err := r.build(c.Expr)
	if err != nil {
		return CheckResult{Name: name, Detail: fmt.Sprintf("build expr: %v", err)}
	}

	ty, typeErr := env.TypeOf(expr)

	if c.ExpectError {
		if typeErr == nil {
			return CheckResult{Name: name, Detail: fmt.Sprintf("expected error, got type %s", ty)}
		}
		if c.ExpectCode != "" {
			rep, ok := kernelerrors.AsReport(typeErr)
			if !ok {
				return CheckResult{Name: name, Detail: fmt.Sprintf("error is not a kernelerrors.Report: %v", typeErr)}
			}
			if rep.Code != c.ExpectCode {
				return CheckResult{Name: name, Detail: fmt.Sprintf("expected code %s, got %s (%s)", c.ExpectCode, rep.Code, rep.Message)}
			}
		}
		return CheckResult{Name: name, Passed: true}
	}

	if typeErr != nil {
		return CheckResult{Name: name, Detail: fmt.Sprintf("unexpected error: %v", typeErr)}
	}

	if c.ExpectType != nil {
		expectTy, err := r.build(c.ExpectType)
		if err != nil {
			return CheckResult{Name: name, Detail: fmt.Sprintf("build expect_type: %v", err)}
		}
		eq, err := typesEqual(env, ty, expectTy)
		if err != nil {
			return CheckResult{Name: name, Detail: fmt.Sprintf("equality probe errored: %v", err)}
		}
		if c.Negate {
			if eq {
				return CheckResult{Name: name, Detail: fmt.Sprintf("expected %s and %s to NOT be equal, but they are", ty, expectTy)}
			}
		} else if !eq {
			return CheckResult{Name: name, Detail: fmt.Sprintf("inferred type %s is not equal to expected %s", ty, expectTy)}
		}
	}

	return CheckResult{Name: name, Passed: true}
}

// typesEqual reports whether a and b are definitionally equal, probed
// entirely through the public Environment surface: a throwaway identity
// function of type (a -> a) is applied to a fresh variable declared at type
// b, and the application only typechecks if the kernel's own def-eq check
// (invoked internally by App's typing rule) accepts a and b as equal. This
// is the same "external collaborator" boundary any other caller of the
// kernel is held to — fixtures has no other way to observe equality.
func typesEqual(env *kernel.Environment, a, b kernel.Expr) (bool, error) {
	prevLen := env.Len()
	probeIdx := env.Add("__eq_probe", b)
	defer func() {
		_ = env.Truncate(prevLen)
	}()

	idFn := &kernel.Lam{Dom: a, Body: &kernel.BVar{Index: 0}}
	probe := &kernel.App{Fun: idFn, Arg: &kernel.FVar{Index: probeIdx}}

	_, err := env.TypeOf(probe)
	if err == nil {
		return true, nil
	}
	if rep, ok := kernelerrors.AsReport(err); ok && rep.Code == kernelerrors.KER001 {
		return false, nil
	}
	return false, err
}

func sortedIndNames(m map[string]IndNode) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
