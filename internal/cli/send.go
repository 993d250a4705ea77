package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AlexZinkM/wallet-link/internal/client"
	"github.com/AlexZinkM/wallet-link/internal/config"
)

func newSendCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "send <user-id> <message>",
		Short:   "Send a message from the owner to one user",
		Example: `  walletlink send 123456789 Hello from the bot owner!`,
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || userID <= 0 {
				return fmt.Errorf("invalid user id %q", args[0])
			}

			bot, err := ownerBot(config.Get())
			if err != nil {
				return err
			}

			message := strings.Join(args[1:], " ")
			if err := bot.SendMessage(cmd.Context(), userID, client.OwnerMessageText(message)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Message sent to user %d.\n", userID)
			return nil
		},
	}
}

func newBroadcastCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "broadcast <message>",
		Short: "Send a message to every user with a linked wallet",
		Long: `Sends a message to every user with a linked wallet except the owner
(OWNER_TELEGRAM_ID) and reports how many messages were sent and how many failed.`,
		Example: `  walletlink broadcast Important update: maintenance tonight`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.Get()

			bot, err := ownerBot(cfg)
			if err != nil {
				return err
			}

			records, closeStore, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			list, err := records.List(ctx)
			if err != nil {
				return err
			}
			ids := make([]int64, 0, len(list))
			for _, rec := range list {
				ids = append(ids, rec.UserID)
			}

			res := bot.Broadcast(ctx, ids, client.BroadcastText(strings.Join(args, " ")))
			fmt.Fprintf(cmd.OutOrStdout(), "Broadcast complete!\nSent to: %d users\nFailed: %d users\n", res.Sent, res.Failed)
			return nil
		},
	}
}

// ownerBot returns a Bot API client acting for the owner.
func ownerBot(cfg *config.Config) (*client.TelegramNotifier, error) {
	if cfg.BotToken == "" {
		return nil, errors.New("TELEGRAM_BOT_TOKEN must be set to send messages")
	}
	return client.NewTelegramNotifier(cfg.TelegramURL, cfg.BotToken, cfg.OwnerID, newLogger()), nil
}
