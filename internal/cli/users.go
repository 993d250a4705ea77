package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/AlexZinkM/wallet-link/internal/config"
	"github.com/AlexZinkM/wallet-link/internal/model"
)

func newUsersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List users with a linked wallet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			records, closeStore, err := openStore(cmd.Context(), config.Get())
			if err != nil {
				return err
			}
			defer closeStore()

			list, err := records.List(cmd.Context())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintln(w, "No linked wallets.")
				return nil
			}

			tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "USER\tADDRESS\tIMPORT\tLINKED")
			for _, rec := range list {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", rec.UserID, rec.PublicKey, rec.ImportKind.Title(), rec.CreatedAt.Format(time.DateTime))
			}
			return tw.Flush()
		},
	}
}

func newUnlinkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unlink <user-id>",
		Short: "Delete a user's linked wallet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || userID <= 0 {
				return fmt.Errorf("invalid user id %q", args[0])
			}

			records, closeStore, err := openStore(cmd.Context(), config.Get())
			if err != nil {
				return err
			}
			defer closeStore()

			removed, err := records.Delete(cmd.Context(), userID)
			if err != nil {
				return err
			}
			if !removed {
				return fmt.Errorf("user %d: %w", userID, model.ErrWalletNotFound)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Unlinked wallet of user %d.\n", userID)
			return nil
		},
	}
}
