package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

func main() {
	root := &cobra.Command{
		Use:   "saltmine",
		Short: "Parallel vanity address search engine",
		Long: `saltmine brute-forces candidates in parallel until a derived address
matches a chosen prefix/suffix pattern.

The salt command mines a CREATE2 salt so a deterministic deployment
lands on a vanity address; keygen mines a fresh keypair whose public
address matches the pattern.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newSaltCmd(), newKeygenCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
