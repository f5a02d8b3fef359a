// Package main provides the appealctl command line front end for the
// appeal service: account management, the interactive submission wizard
// and complaint review.
package main

import (
	"fmt"
	"os"

	"appealapp/cmd/appealctl/commands"
)

func main() {
	root := commands.Root()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
