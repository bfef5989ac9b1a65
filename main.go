// Package main is the entry point for the inventory API.
// It hands control to the cobra command tree; with no arguments it serves HTTP.
package main

import (
	"context"
	"log"
	"os"

	"inventory/src/app/cli"
)

func main() {
	if err := cli.NewRootCommand().ExecuteContext(context.Background()); err != nil {
		log.Printf("fatal error: %v\n", err)
		os.Exit(1)
	}
}
