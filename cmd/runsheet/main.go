// Command runsheet syncs Weights & Biases experiment runs to a Google
// Sheets spreadsheet on a fixed schedule.
package main

import (
	"fmt"
	"os"

	"github.com/ng-youn/runsheet/internal/adapters/driving/cli"
)

// version is overridden at build time via
// -ldflags "-X main.version=v1.2.3".
var version = "dev"

func main() {
	cli.SetVersion(version)
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
