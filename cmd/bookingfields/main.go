// Command bookingfields reconciles booking form fields with the system field
// catalog and manages a local store of event types.
package main

import (
	"os"

	"github.com/mesh-intelligence/bookingfields/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
