package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AlexZinkM/wallet-link/internal/config"
	"github.com/AlexZinkM/wallet-link/internal/model"
	"github.com/AlexZinkM/wallet-link/internal/store"
	"github.com/AlexZinkM/wallet-link/solana"
)

func newResealCmd() *cobra.Command {
	var fromSealed, toPlain bool

	cmd := &cobra.Command{
		Use:   "reseal",
		Short: "Re-encrypt every stored secret under a new passphrase",
		Long: `Opens every record, checks that its secret still derives the stored
address and writes it back sealed with a new passphrase, or in clear with
--to-plain. CreatedAt of rewritten records is reset.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg := config.Get()

			var readOpts []store.Option
			if fromSealed {
				oldSealer, err := promptSealer("Enter current store passphrase: ")
				if err != nil {
					return err
				}
				defer oldSealer.Close()
				readOpts = append(readOpts, store.WithSealer(oldSealer))
			}

			var writeOpts []store.Option
			if !toPlain {
				newSealer, err := promptSealer("Enter new store passphrase: ")
				if err != nil {
					return err
				}
				defer newSealer.Close()
				writeOpts = append(writeOpts, store.WithSealer(newSealer))
			}

			src, closeSrc, err := openStore(ctx, cfg, readOpts...)
			if err != nil {
				return err
			}
			list, err := src.List(ctx)
			if err != nil {
				closeSrc()
				return err
			}

			type pending struct {
				userID   int64
				identity model.WalletIdentity
				kind     model.ImportKind
			}
			var todo []pending
			for _, r := range list {
				rec, err := src.Reveal(ctx, r.UserID)
				if err != nil {
					closeSrc()
					return fmt.Errorf("user %d: %w", r.UserID, err)
				}
				identity, err := solana.ParseSecret(rec.Secret())
				if err != nil {
					closeSrc()
					return fmt.Errorf("user %d: stored secret no longer parses: %w", r.UserID, err)
				}
				if identity.Address() != rec.PublicKey {
					closeSrc()
					return fmt.Errorf("user %d: stored secret derives %s, record says %s", r.UserID, identity.Address(), rec.PublicKey)
				}
				todo = append(todo, pending{userID: r.UserID, identity: identity, kind: rec.ImportKind})
			}
			if err := closeSrc(); err != nil {
				return err
			}

			dst, closeDst, err := openStore(ctx, cfg, writeOpts...)
			if err != nil {
				return err
			}
			defer closeDst()

			for _, p := range todo {
				if _, err := dst.Save(ctx, p.userID, p.identity, p.kind); err != nil {
					return fmt.Errorf("user %d: %w", p.userID, err)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Resealed %d wallet(s).\n", len(todo))
			return nil
		},
	}
	cmd.Flags().BoolVar(&fromSealed, "from-sealed", false, "records are currently sealed; prompt for the current passphrase")
	cmd.Flags().BoolVar(&toPlain, "to-plain", false, "write secrets in clear instead of prompting for a new passphrase")
	return cmd
}
