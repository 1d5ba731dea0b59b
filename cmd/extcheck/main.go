// Package main is the entry point for the extcheck CLI.
package main

import (
	"os"

	"github.com/leeguoo/extcheck/cmd/extcheck/commands"
	"github.com/leeguoo/extcheck/internal/errors"
)

func main() {
	err := commands.Execute()
	if err != nil {
		commands.PrintError(os.Stderr, err)
	}
	os.Exit(errors.Code(err))
}
