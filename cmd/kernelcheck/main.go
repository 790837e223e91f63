// Command kernelcheck runs scenario files through the kernel and reports
// pass/fail per scenario and per check.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"github.com/sunholo/kernelcheck/internal/fixtures"
)

// Version is set by ldflags during build.
var Version = "dev"

var (
	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
)

func main() {
	var (
		dirFlag     = flag.String("dir", "internal/fixtures/testdata/scenarios", "directory of scenario YAML files")
		verboseFlag = flag.Bool("verbose", false, "log scenario loading/running at debug level")
		noColorFlag = flag.Bool("no-color", false, "disable colored output")
		versionFlag = flag.Bool("version", false, "print version information")
	)
	flag.Parse()

	if *versionFlag {
		fmt.Printf("kernelcheck %s\n", bold(Version))
		return
	}

	if *noColorFlag {
		color.NoColor = true
	}

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if *verboseFlag {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}

	log.WithField("dir", *dirFlag).Debug("loading scenarios")
	scenarios, err := fixtures.LoadDir(*dirFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
		os.Exit(1)
	}

	failures := 0
	for _, s := range scenarios {
		log.WithField("scenario", s.Name).Debug("running scenario")
		res := fixtures.Run(s)

		if !res.SetupOK {
			failures++
			fmt.Printf("%s %s: %s\n", red("FAIL"), bold(res.Name), res.Detail)
			continue
		}

		scenarioFailed := false
		for _, c := range res.Checks {
			if c.Passed {
				fmt.Printf("  %s %s / %s\n", green("PASS"), cyan(res.Name), c.Name)
			} else {
				scenarioFailed = true
				fmt.Printf("  %s %s / %s: %s\n", red("FAIL"), cyan(res.Name), c.Name, c.Detail)
			}
		}
		if scenarioFailed {
			failures++
		}
	}

	fmt.Println()
	if failures > 0 {
		fmt.Printf("%s %d scenario(s) failed\n", red("✗"), failures)
		os.Exit(1)
	}
	fmt.Printf("%s all %d scenarios passed\n", green("✓"), len(scenarios))
}
