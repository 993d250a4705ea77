// Package cli implements the walletlink command-line interface.
package cli

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/AlexZinkM/wallet-link/internal/config"
)

// NewRootCmd builds the command tree. Every subcommand loads .env and the
// environment before it runs.
func NewRootCmd() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:   "walletlink",
		Short: "Link Solana wallets to chat users",
		Long: `walletlink validates seed phrases and private keys, derives their Solana
address and keeps one linked wallet per chat user.

Example:
  walletlink serve
  walletlink derive --show-keypair
  walletlink users
  walletlink broadcast Maintenance tonight`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if envFile != "" {
				if err := godotenv.Load(envFile); err != nil {
					return err
				}
			} else {
				_ = godotenv.Load()
			}
			return config.Init()
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", "", "load environment from this file instead of .env")

	root.AddCommand(
		newServeCmd(),
		newDeriveCmd(),
		newUsersCmd(),
		newUnlinkCmd(),
		newResealCmd(),
		newSendCmd(),
		newBroadcastCmd(),
	)
	return root
}

// Execute runs the root command.
func Execute() error {
	err := NewRootCmd().Execute()
	if err != nil {
		slog.Error("command failed", "error", err)
	}
	return err
}

func newLogger() *slog.Logger {
	return config.NewLogger(os.Stderr, config.Get().LogLevel)
}
