package subcmd

import "fmt"

// Version shows the version number
func Version(buildVer string, buildDtm string) {
	fmt.Printf("prepull version: %s build date: %s\n", buildVer, buildDtm)
}
