// demoapp serves a single static greeting page.
// GET / on 0.0.0.0:5000 unless configured otherwise.
package main

import (
	"os"

	"github.com/corey/demoapp/cmd/demoapp/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
