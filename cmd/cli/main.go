// apacheaccess - Apache HTTP Server Access Log Parser
//
// apacheaccess reads Apache access logs in Common or Combined Log Format and
// prints every entry as JSON, keyed by its position in the log.
package main

import (
	"os"

	"github.com/ccollicutt/apacheaccess/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
