// Command kvd runs the key-value store's dispatcher loop over stdin or a
// TCP listener, backed by an on-disk engine.
//
// Grounded on shake-karrot-lightkafka/cmd/broker/main.go for the
// signal-driven shutdown shape; the cobra command tree itself is new,
// since no example repo in the pack used cobra — github.com/spf13/cobra
// is adopted directly from the ecosystem for this boundary.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
