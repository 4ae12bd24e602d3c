package main

import (
	"fmt"
	"os"

	"prepull/cmd/subcmd"
	"prepull/impl/config"
	"prepull/impl/globals"
)

// populated by the linker at build time
var (
	buildVer string = "unreleased"
	buildDtm string = "unknown"
)

func main() {
	cmd, err := getCfg()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := globals.ConfigureLogging(config.GetLogLevel(), config.GetLogFile()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	switch cmd {
	case "pull":
		summary, err := subcmd.Pull()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if !summary.Succeeded {
			os.Exit(1)
		}
	case "resolve":
		if err := subcmd.Resolve(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	case "version":
		subcmd.Version(buildVer, buildDtm)
	case "":
		// no sub-command - the parser already displayed help
	}
}
