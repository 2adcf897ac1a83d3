package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/vakoc/buildstamp/internal/cli"
)

const (
	cmdName = "buildstamp"

	shortDesc = "The buildstamp Command Line Interface (CLI)."
	longDesc  = `The buildstamp Command Line Interface (CLI).

Buildstamp exposes the build identity of compiled Go artifacts. It reports
the version metadata embedded in binaries and release archives, and verifies
shipped artifacts against a build policy, so release pipelines and
diagnostics tooling can confirm exactly which build they are looking at.
`
)

func main() {
	cmd := cli.NewRootCmd(cmdName, shortDesc, longDesc)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, strings.TrimLeft(err.Error(), "\n"))
		os.Exit(1)
	}
}
