// @MX:ANCHOR: [AUTO] main is the entry point of the cfbuilder binary; it exits 1 on error.
// @MX:REASON: [AUTO] the only executable entry point; delegates to the cli package
package main

import (
	"os"

	"github.com/modu-ai/cfbuilder/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
