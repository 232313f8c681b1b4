// Command mailpreview serves the EJS email editor and renders, watches and
// sends templates from the command line.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
