// Package fixtures loads YAML scenario files describing end-to-end kernel
// checks and runs them against a freshly built kernel.Environment. It
// speaks to the kernel only through its public surface (New, Add, Truncate,
// TypeOf, and the read-only Len) — the same boundary any other external
// collaborator is held to.
package fixtures

import (
	"fmt"

	"github.com/sunholo/kernelcheck/internal/kernel"
)

// Node is the YAML expression-builder vocabulary. Only the fields relevant
// to Kind are populated; build reports an error if a required field is
// missing for the given Kind. This is a literal term builder, not an
// elaborator: there is no desugaring or implicit-argument inference, only a
// one-time resolution of names to environment indices.
type Node struct {
	Kind string `yaml:"kind"`

	// "ref": a name bound either by a builtin, a scenario def, or the
	// implicit Level/Z/S/max/imax/Sort names every environment starts with.
	Name string `yaml:"name,omitempty"`

	// "bvar": relative de Bruijn index.
	Index int `yaml:"index,omitempty"`

	// "sortw": the Sortω level. "indconstr": the constructor index.
	K int `yaml:"k,omitempty"`

	// "indexpr"/"indconstr"/"indelim": name of an Ind declared in the
	// scenario's Inds map.
	Ind string `yaml:"ind,omitempty"`

	Dom  *Node   `yaml:"dom,omitempty"`
	Cod  *Node   `yaml:"cod,omitempty"`
	Body *Node   `yaml:"body,omitempty"`
	Fun  *Node   `yaml:"fun,omitempty"`
	Arg  *Node   `yaml:"arg,omitempty"`
	Args []*Node `yaml:"args,omitempty"`
}

// IndNode is the YAML encoding of a kernel.Ind: an arity telescope, an
// ordered constructor list (each an open term whose outermost free index
// denotes the inductive itself, exactly as kernel.Ind.Constrs expects), and
// the small-elimination flag.
type IndNode struct {
	Arity   *Node   `yaml:"arity"`
	Constrs []*Node `yaml:"constrs"`
	Small   bool    `yaml:"small"`
}

// resolver resolves Node names against an environment built up so far and
// builds kernel.Expr trees from Nodes.
type resolver struct {
	names map[string]int
	inds  map[string]*kernel.Ind
}

func newResolver() *resolver {
	return &resolver{names: make(map[string]int), inds: make(map[string]*kernel.Ind)}
}

func (r *resolver) build(n *Node) (kernel.Expr, error) {
	if n == nil {
		return nil, fmt.Errorf("nil node")
	}
	switch n.Kind {
	case "ref":
		idx, ok := r.names[n.Name]
		if !ok {
			return nil, fmt.Errorf("undefined name %q", n.Name)
		}
		return &kernel.FVar{Index: idx}, nil

	case "bvar":
		return &kernel.BVar{Index: n.Index}, nil

	case "sortw":
		return &kernel.Sortω{K: n.K}, nil

	case "lam":
		dom, err := r.build(n.Dom)
		if err != nil {
			return nil, err
		}
		body, err := r.build(n.Body)
		if err != nil {
			return nil, err
		}
		return &kernel.Lam{Dom: dom, Body: body}, nil

	case "pi":
		dom, err := r.build(n.Dom)
		if err != nil {
			return nil, err
		}
		cod, err := r.build(n.Cod)
		if err != nil {
			return nil, err
		}
		return &kernel.Pi{Dom: dom, Cod: cod}, nil

	case "app":
		fn, err := r.build(n.Fun)
		if err != nil {
			return nil, err
		}
		args := n.Args
		if n.Arg != nil {
			args = append([]*Node{n.Arg}, args...)
		}
		if len(args) == 0 {
			return nil, fmt.Errorf("app node needs at least one of arg/args")
		}
		result := fn
		for _, a := range args {
			built, err := r.build(a)
			if err != nil {
				return nil, err
			}
			result = &kernel.App{Fun: result, Arg: built}
		}
		return result, nil

	case "indexpr":
		ind, err := r.resolveInd(n.Ind)
		if err != nil {
			return nil, err
		}
		return &kernel.IndExpr{I: ind}, nil

	case "indconstr":
		ind, err := r.resolveInd(n.Ind)
		if err != nil {
			return nil, err
		}
		return &kernel.IndConstr{K: n.K, I: ind}, nil

	case "indelim":
		ind, err := r.resolveInd(n.Ind)
		if err != nil {
			return nil, err
		}
		return &kernel.IndElim{I: ind}, nil

	default:
		return nil, fmt.Errorf("unknown node kind %q", n.Kind)
	}
}

func (r *resolver) resolveInd(name string) (*kernel.Ind, error) {
	ind, ok := r.inds[name]
	if !ok {
		return nil, fmt.Errorf("undefined inductive %q", name)
	}
	return ind, nil
}

// buildInd builds the kernel.Ind a given IndNode describes. Its arity and
// constructor nodes are built against r as-is (they are responsible for
// their own BVar self-references, matching kernel.Ind's own convention).
func (r *resolver) buildInd(n IndNode) (*kernel.Ind, error) {
	arity, err := r.build(n.Arity)
	if err != nil {
		return nil, fmt.Errorf("arity: %w", err)
	}
	constrs := make([]kernel.Expr, len(n.Constrs))
	for i, c := range n.Constrs {
		built, err := r.build(c)
		if err != nil {
			return nil, fmt.Errorf("constr %d: %w", i, err)
		}
		constrs[i] = built
	}
	return &kernel.Ind{Arity: arity, Constrs: constrs, Small: n.Small}, nil
}
