package client

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/AlexZinkM/wallet-link/internal/common"
	"github.com/AlexZinkM/wallet-link/internal/metrics"
	"github.com/AlexZinkM/wallet-link/internal/model"
)

const (
	telegramAPI = "https://api.telegram.org"
)

// TelegramNotifier sends owner alerts and owner messages through the Telegram Bot API
type TelegramNotifier struct {
	bot     *tgbotapi.BotAPI
	token   string
	ownerID int64
	logger  *slog.Logger
}

// NewTelegramNotifier creates a notifier that alerts ownerID. An empty baseURL uses the public API.
// No request is made until the first message is sent.
func NewTelegramNotifier(baseURL, token string, ownerID int64, logger *slog.Logger) *TelegramNotifier {
	if baseURL == "" {
		baseURL = telegramAPI
	}
	if logger == nil {
		logger = slog.Default()
	}

	bot := &tgbotapi.BotAPI{
		Token: token,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
		Buffer: 100,
	}
	bot.SetAPIEndpoint(strings.TrimRight(baseURL, "/") + "/bot%s/%s")

	return &TelegramNotifier{
		bot:     bot,
		token:   token,
		ownerID: ownerID,
		logger:  logger,
	}
}

// SendMessage posts an HTML message to chatID
func (n *TelegramNotifier) SendMessage(ctx context.Context, chatID int64, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := n.bot.Send(msg); err != nil {
		// transport errors carry the request URL, which holds the bot token
		return fmt.Errorf("failed to send message: %w", redactToken(err, n.token))
	}
	return nil
}

// BroadcastResult counts the outcome of a broadcast.
type BroadcastResult struct {
	Sent   int
	Failed int
}

// Broadcast sends text to every chat in chatIDs except the owner's.
// Failures are logged and counted, and the broadcast goes on.
func (n *TelegramNotifier) Broadcast(ctx context.Context, chatIDs []int64, text string) BroadcastResult {
	var res BroadcastResult
	for _, id := range chatIDs {
		if id == n.ownerID {
			continue
		}
		if err := n.SendMessage(ctx, id, text); err != nil {
			res.Failed++
			n.logger.Error("failed to send broadcast", "user_id", id, "error", err)
			continue
		}
		res.Sent++
	}
	return res
}

// NotifyNewUser alerts the owner that a user linked a wallet for the first time.
// Failures are logged, never returned.
func (n *TelegramNotifier) NotifyNewUser(ctx context.Context, alert model.NewUserAlert) {
	if n.ownerID == 0 {
		return
	}

	if err := n.SendMessage(ctx, n.ownerID, NewUserAlertText(alert)); err != nil {
		metrics.NotificationsSent.WithLabelValues("failed").Inc()
		n.logger.Error("failed to notify owner about new user", "user_id", alert.UserID, "error", err)
		return
	}
	metrics.NotificationsSent.WithLabelValues("sent").Inc()
	n.logger.Info("sent new user alert to owner", "user_id", alert.UserID)
}

// NewUserAlertText renders the owner alert as Telegram HTML.
func NewUserAlertText(alert model.NewUserAlert) string {
	user := fmt.Sprintf("ID: %d", alert.UserID)
	if alert.Username != "" {
		user = "@" + html.EscapeString(alert.Username)
	}

	var b strings.Builder
	b.WriteString("<b>New User Alert!</b>\n\n")
	fmt.Fprintf(&b, "<b>User:</b> %s\n", user)
	fmt.Fprintf(&b, "<b>Telegram ID:</b> <code>%d</code>\n", alert.UserID)
	fmt.Fprintf(&b, "<b>Wallet:</b> <code>%s</code>\n", common.ShortAddress(alert.PublicKey, 6))
	fmt.Fprintf(&b, "<b>Import Method:</b> %s\n", alert.ImportKind.Title())
	fmt.Fprintf(&b, "<b>Time:</b> %s\n\n", alert.LinkedAt.Format(time.DateTime))
	fmt.Fprintf(&b, "<b>Solscan:</b> %s", common.SolscanAccountURL(alert.PublicKey))
	return b.String()
}

// OwnerMessageText renders a direct message from the owner.
func OwnerMessageText(message string) string {
	return "<b>Message from Bot Owner:</b>\n\n" + html.EscapeString(message)
}

// BroadcastText renders a broadcast message.
func BroadcastText(message string) string {
	return "<b>Broadcast Message:</b>\n\n" + html.EscapeString(message)
}

func redactToken(err error, token string) error {
	if token == "" {
		return err
	}
	return fmt.Errorf("%s", strings.ReplaceAll(err.Error(), token, "<redacted>"))
}

// LogNotifier writes owner alerts to the log instead of sending them.
type LogNotifier struct {
	Logger *slog.Logger
}

// NotifyNewUser logs the alert.
func (n LogNotifier) NotifyNewUser(_ context.Context, alert model.NewUserAlert) {
	logger := n.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("new user linked a wallet",
		"user_id", alert.UserID,
		"username", alert.Username,
		"address", alert.PublicKey,
		"kind", alert.ImportKind,
	)
}
