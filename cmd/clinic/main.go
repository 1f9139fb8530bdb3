//go:build !test

// Code coverage for main is ignored; the commands are tested in commands_test.go.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
