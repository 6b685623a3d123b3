// Command labelctl generates label sequences, encodes printer commands and
// talks to network printers without the API server.
package main

import (
	"os"

	"labelprint/cmd/labelctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
