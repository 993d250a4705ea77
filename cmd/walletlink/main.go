// Package main is the entry point for the walletlink service and CLI.
package main

import (
	"os"

	"github.com/AlexZinkM/wallet-link/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
