// Command fmenu edits note attributes from the link context menu.
package main

import (
	"os"

	"github.com/aidanlsb/fieldmenu/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
