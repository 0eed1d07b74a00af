// Command council sends one query to several LLM providers at once and
// prints each answer as it arrives. `council serve` runs the reference
// proxy the providers are reached through.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
