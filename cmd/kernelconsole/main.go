// Command kernelconsole is an interactive line-editing console over the
// kernel's Environment. It never parses surface syntax: every expression a
// user can add or inspect comes from a small fixed catalog of canned type
// declarations, referenced by name. The console only ever calls
// Environment's public operations (New, Add, Truncate, TypeOf, and the
// read-only Names).
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"

	"github.com/sunholo/kernelcheck/internal/kernel"
	"github.com/sunholo/kernelcheck/internal/kernelerrors"
)

var (
	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
	dim   = color.New(color.Faint).SprintFunc()
)

const (
	idxLevel = 0
	idxZ     = 1
	idxS     = 2
	idxMax   = 3
	idxIMax  = 4
	idxSort  = 5
)

var builtinNames = [kernel.NumBuiltins]string{"Level", "Z", "S", "max", "imax", "Sort"}

// catalogEntry is one canned type a user can declare a variable against.
type catalogEntry struct {
	Desc string
	Type kernel.Expr
}

func main() {
	console := newConsole()
	console.run(os.Stdout)
}

type console struct {
	env     *kernel.Environment
	bound   map[string]int
	catalog map[string]catalogEntry
	inds    map[string]*kernel.Ind
}

func newConsole() *console {
	env := kernel.New(builtinNames)

	bound := make(map[string]int, kernel.NumBuiltins)
	for i, name := range builtinNames {
		bound[name] = i
	}

	nat := &kernel.Ind{
		Arity: app(fv(idxSort), app(fv(idxS), fv(idxZ))),
		Constrs: []kernel.Expr{
			&kernel.BVar{Index: 0},
			&kernel.Pi{Dom: &kernel.BVar{Index: 0}, Cod: &kernel.BVar{Index: 1}},
		},
		Small: false,
	}
	truth := &kernel.Ind{
		Arity:   app(fv(idxSort), fv(idxZ)),
		Constrs: []kernel.Expr{&kernel.BVar{Index: 0}},
		Small:   true,
	}

	sortZ := app(fv(idxSort), fv(idxZ))

	catalog := map[string]catalogEntry{
		"level":    {Desc: "a variable of type Level", Type: fv(idxLevel)},
		"prop":     {Desc: "a variable of type Sort Z (a proposition)", Type: sortZ},
		"nat":      {Desc: "a variable of type Nat", Type: &kernel.IndExpr{I: nat}},
		"nat-fn":   {Desc: "a variable of type Nat -> Nat", Type: &kernel.Pi{Dom: &kernel.IndExpr{I: nat}, Cod: &kernel.IndExpr{I: nat}}},
		"true":     {Desc: "a variable of type True", Type: &kernel.IndExpr{I: truth}},
		"true-fn":  {Desc: "a variable of type True -> Sort Z", Type: &kernel.Pi{Dom: &kernel.IndExpr{I: truth}, Cod: sortZ}},
	}

	inds := map[string]*kernel.Ind{"nat": nat, "true": truth}

	return &console{env: env, bound: bound, catalog: catalog, inds: inds}
}

func app(f, a kernel.Expr) kernel.Expr { return &kernel.App{Fun: f, Arg: a} }
func fv(i int) kernel.Expr             { return &kernel.FVar{Index: i} }

func (c *console) run(out io.Writer) {
	line := liner.NewLiner()
	defer line.Close()

	historyFile := filepath.Join(os.TempDir(), ".kernelconsole_history")
	if f, err := os.Open(historyFile); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}

	line.SetCompleter(func(input string) (c []string) {
		for _, cmd := range []string{":help", ":catalog", ":names", ":add", ":type", ":apply", ":construct", ":eliminate", ":truncate", ":quit"} {
			if strings.HasPrefix(cmd, input) {
				c = append(c, cmd)
			}
		}
		return
	})

	fmt.Fprintf(out, "%s\n", bold("kernelcheck console"))
	fmt.Fprintln(out, dim("Type :help for commands, :quit to exit"))
	fmt.Fprintln(out)

	for {
		input, err := line.Prompt("kernel> ")
		if err == io.EOF {
			fmt.Fprintln(out, green("Goodbye!"))
			break
		}
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", red("Error"), err)
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		if input == ":quit" || input == ":q" {
			fmt.Fprintln(out, green("Goodbye!"))
			break
		}

		c.dispatch(input, out)
	}

	if f, err := os.Create(historyFile); err == nil {
		_, _ = line.WriteHistory(f)
		f.Close()
	}
}

func (c *console) dispatch(input string, out io.Writer) {
	fields := strings.Fields(input)
	cmd := fields[0]
	args := fields[1:]

	switch cmd {
	case ":help":
		c.printHelp(out)

	case ":catalog":
		keys := make([]string, 0, len(c.catalog))
		for k := range c.catalog {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(out, "  %s  %s\n", cyan(k), c.catalog[k].Desc)
		}

	case ":names":
		for i, name := range c.env.Names() {
			fmt.Fprintf(out, "  %d  %s\n", i, name)
		}

	case ":add":
		if len(args) != 2 {
			fmt.Fprintln(out, "usage: :add <catalog-key> <name>")
			return
		}
		entry, ok := c.catalog[args[0]]
		if !ok {
			fmt.Fprintf(out, "%s: no such catalog entry %q\n", red("Error"), args[0])
			return
		}
		name := args[1]
		if _, err := c.env.TypeOf(entry.Type); err != nil {
			fmt.Fprintf(out, "%s: declared type does not itself typecheck: %s\n", red("Error"), formatErr(err))
			return
		}
		idx := c.env.Add(name, entry.Type)
		c.bound[name] = idx
		fmt.Fprintf(out, "%s %s : %s  (index %d)\n", green("added"), name, entry.Type, idx)

	case ":type":
		if len(args) != 1 {
			fmt.Fprintln(out, "usage: :type <name>")
			return
		}
		idx, ok := c.bound[args[0]]
		if !ok {
			fmt.Fprintf(out, "%s: unbound name %q\n", red("Error"), args[0])
			return
		}
		ty, err := c.env.TypeOf(&kernel.FVar{Index: idx})
		if err != nil {
			fmt.Fprintf(out, "%s: %s\n", red("Error"), formatErr(err))
			return
		}
		fmt.Fprintf(out, "%s : %s\n", args[0], ty)

	case ":apply":
		if len(args) != 2 {
			fmt.Fprintln(out, "usage: :apply <fn-name> <arg-name>")
			return
		}
		fnIdx, ok := c.bound[args[0]]
		if !ok {
			fmt.Fprintf(out, "%s: unbound name %q\n", red("Error"), args[0])
			return
		}
		argIdx, ok := c.bound[args[1]]
		if !ok {
			fmt.Fprintf(out, "%s: unbound name %q\n", red("Error"), args[1])
			return
		}
		probe := &kernel.App{Fun: &kernel.FVar{Index: fnIdx}, Arg: &kernel.FVar{Index: argIdx}}
		ty, err := c.env.TypeOf(probe)
		if err != nil {
			fmt.Fprintf(out, "%s: %s\n", red("Error"), formatErr(err))
			return
		}
		fmt.Fprintf(out, "%s %s : %s\n", args[0], args[1], ty)

	case ":construct":
		if len(args) != 3 {
			fmt.Fprintln(out, "usage: :construct <ind> <k> <name>")
			return
		}
		ind, ok := c.inds[args[0]]
		if !ok {
			fmt.Fprintf(out, "%s: no such inductive %q (try \"nat\" or \"true\")\n", red("Error"), args[0])
			return
		}
		var k int
		if _, err := fmt.Sscanf(args[1], "%d", &k); err != nil {
			fmt.Fprintf(out, "%s: not a number: %q\n", red("Error"), args[1])
			return
		}
		expr := &kernel.IndConstr{K: k, I: ind}
		ty, err := c.env.TypeOf(expr)
		if err != nil {
			fmt.Fprintf(out, "%s: %s\n", red("Error"), formatErr(err))
			return
		}
		idx := c.env.Add(args[2], ty)
		c.bound[args[2]] = idx
		fmt.Fprintf(out, "%s %s : %s  (index %d)\n", green("added"), args[2], ty, idx)

	case ":eliminate":
		if len(args) != 2 {
			fmt.Fprintln(out, "usage: :eliminate <ind> <name>")
			return
		}
		ind, ok := c.inds[args[0]]
		if !ok {
			fmt.Fprintf(out, "%s: no such inductive %q (try \"nat\" or \"true\")\n", red("Error"), args[0])
			return
		}
		expr := &kernel.IndElim{I: ind}
		ty, err := c.env.TypeOf(expr)
		if err != nil {
			fmt.Fprintf(out, "%s: %s\n", red("Error"), formatErr(err))
			return
		}
		idx := c.env.Add(args[1], ty)
		c.bound[args[1]] = idx
		fmt.Fprintf(out, "%s %s : %s  (index %d)\n", green("added"), args[1], ty, idx)

	case ":truncate":
		if len(args) != 1 {
			fmt.Fprintln(out, "usage: :truncate <length>")
			return
		}
		var n int
		if _, err := fmt.Sscanf(args[0], "%d", &n); err != nil {
			fmt.Fprintf(out, "%s: not a number: %q\n", red("Error"), args[0])
			return
		}
		if err := c.env.Truncate(n); err != nil {
			fmt.Fprintf(out, "%s: %s\n", red("Error"), formatErr(err))
			return
		}
		for name, idx := range c.bound {
			if idx >= n {
				delete(c.bound, name)
			}
		}
		fmt.Fprintf(out, "%s truncated to %d\n", green("ok"), n)

	default:
		fmt.Fprintf(out, "unknown command %q; try :help\n", cmd)
	}
}

func (c *console) printHelp(out io.Writer) {
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintf(out, "  %-28s list canned declarations\n", ":catalog")
	fmt.Fprintf(out, "  %-28s list bound names with their indices\n", ":names")
	fmt.Fprintf(out, "  %-28s declare a name of a catalog entry's type\n", ":add <key> <name>")
	fmt.Fprintf(out, "  %-28s show the type of a bound name\n", ":type <name>")
	fmt.Fprintf(out, "  %-28s typecheck applying one bound name to another\n", ":apply <fn> <arg>")
	fmt.Fprintf(out, "  %-28s bind a name to inductive <ind>'s k-th constructor's type\n", ":construct <ind> <k> <name>")
	fmt.Fprintf(out, "  %-28s bind a name to inductive <ind>'s recursor type\n", ":eliminate <ind> <name>")
	fmt.Fprintf(out, "  %-28s truncate the environment to a length\n", ":truncate <n>")
	fmt.Fprintf(out, "  %-28s exit\n", ":quit")
}

func formatErr(err error) string {
	if rep, ok := kernelerrors.AsReport(err); ok {
		return fmt.Sprintf("%s: %s", rep.Code, rep.Message)
	}
	return err.Error()
}
