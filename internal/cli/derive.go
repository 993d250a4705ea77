package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/AlexZinkM/wallet-link/internal/config"
	"github.com/AlexZinkM/wallet-link/solana"
)

func newDeriveCmd() *cobra.Command {
	var showKeypair bool

	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Print the address of a seed phrase or private key",
		Long: `Reads a seed phrase or base58 private key without echo and prints the
Solana address it controls. Nothing is stored.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			secret, err := readSecretInput(cmd.InOrStdin(), "Enter seed phrase or private key: ")
			if err != nil {
				return err
			}

			identity, err := solana.ParseSecret(secret)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Address: %s\n", identity.Address())
			fmt.Fprintf(w, "Source:  %s\n", identity.Source)
			if showKeypair {
				keypair, err := solana.ExpandedKey(identity)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "Keypair: %s\n", keypair)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&showKeypair, "show-keypair", false, "also print the 64-byte base58 keypair")
	return cmd
}

// readSecretInput reads without echo from a terminal, or one line from any other reader.
func readSecretInput(in io.Reader, prompt string) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		raw, err := config.ReadSecret(prompt)
		if err != nil {
			return "", err
		}
		defer clear(raw)
		return string(raw), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
