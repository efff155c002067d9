// Package main provides the vesselx binary, which checks registration
// manifests and previews what applying them to a container would do.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

const (
	Version = "0.1.0"
	appName = "vesselx"

	// manifestEnv names the manifest used when none is given on the command line.
	manifestEnv = "VESSELX_MANIFEST"
)

func main() {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
