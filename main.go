// Package main is the entry point for the pinlock CLI.
package main

import "github.com/ajxudir/pinlock/cmd"

func main() {
	cmd.Execute()
}
