// tsbundle - Time-Series Archive Conversion Tool
//
// tsbundle is a batch tool that downloads time-series classification
// archives and re-encodes their member files into NumPy array bundles.
package main

import (
	"os"

	"github.com/tsbundle/tsbundle/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
