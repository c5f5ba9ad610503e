// Package main provides the entrypoint for accessibility-app.
package main

import (
	"os"

	"github.com/sootra/accessibility-app/cmd"
)

func main() {
	if err := cmd.New().Execute(); err != nil {
		os.Exit(1)
	}
}
