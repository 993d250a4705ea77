package solana

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/AlexZinkM/wallet-link/internal/metrics"
	"github.com/AlexZinkM/wallet-link/internal/model"
)

// Menu actions understood by Linker.Action.
const (
	ActionImportSeed    = "import_seed"
	ActionImportPrivate = "import_private"
	ActionBuyTokens     = "buy_tokens"
	ActionSellTokens    = "sell_tokens"
	ActionTokens        = "tokens"
)

// ErrNoDashboard is returned by Wallet when the Linker has no Dashboard.
var ErrNoDashboard = errors.New("wallet dashboard is not configured")

// Sessions is the per-user pending interaction registry.
type Sessions interface {
	Begin(userID int64, awaiting model.Await) model.ImportSession
	Peek(userID int64) (model.ImportSession, bool)
	Consume(userID int64) (model.ImportSession, bool)
}

// RecordStore persists one wallet record per user. Save overwrites and
// reports whether the user had no record before.
type RecordStore interface {
	Get(ctx context.Context, userID int64) (model.WalletRecord, error)
	Save(ctx context.Context, userID int64, identity model.WalletIdentity, kind model.ImportKind) (isNewUser bool, err error)
	Delete(ctx context.Context, userID int64) (bool, error)
	Reveal(ctx context.Context, userID int64) (model.WalletRecord, error)
	List(ctx context.Context) ([]model.WalletRecord, error)
}

// Notifier receives new-user alerts. Implementations log their own failures.
type Notifier interface {
	NotifyNewUser(ctx context.Context, alert model.NewUserAlert)
}

// Linker drives the conversational wallet import: menu actions open a
// session, the next message of the same user is routed by what the session
// awaits.
type Linker struct {
	sessions  Sessions
	records   RecordStore
	notifier  Notifier
	dashboard *Dashboard
	logger    *slog.Logger
	now       func() time.Time
	locks     userLocks
}

// NewLinker creates a Linker. notifier may be nil.
func NewLinker(sessions Sessions, records RecordStore, notifier Notifier, dashboard *Dashboard, logger *slog.Logger) *Linker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Linker{
		sessions:  sessions,
		records:   records,
		notifier:  notifier,
		dashboard: dashboard,
		logger:    logger,
		now:       time.Now,
		locks:     userLocks{locks: make(map[int64]*userLock)},
	}
}

// Action handles a menu button press.
func (l *Linker) Action(ctx context.Context, userID int64, action string) (model.Reply, error) {
	unlock := l.locks.lock(userID)
	defer unlock()

	switch action {
	case ActionImportSeed:
		l.begin(userID, model.ImportSecret{Kind: model.ImportKindSeed})
		return model.Reply{Status: model.ReplyPrompt, Text: "Please enter your 12 or 24-word seed phrase:"}, nil

	case ActionImportPrivate:
		l.begin(userID, model.ImportSecret{Kind: model.ImportKindPrivate})
		return model.Reply{Status: model.ReplyPrompt, Text: "Please enter your Solana private key (base58):"}, nil

	case ActionBuyTokens, ActionSellTokens, ActionTokens:
		rec, err := l.records.Get(ctx, userID)
		if errors.Is(err, model.ErrWalletNotFound) {
			return noWalletReply(), nil
		}
		if err != nil {
			return l.storeFailed("get", userID, err)
		}
		return l.tokenAction(ctx, userID, action, rec)

	default:
		return model.Reply{
			Status: model.ReplyUnsupported,
			Text:   fmt.Sprintf("'%s' is not implemented yet. Coming soon!", action),
		}, nil
	}
}

func (l *Linker) tokenAction(ctx context.Context, userID int64, action string, rec model.WalletRecord) (model.Reply, error) {
	switch action {
	case ActionBuyTokens:
		l.begin(userID, model.AwaitTokenAddress{Side: model.TradeBuy})
		return model.Reply{Status: model.ReplyPrompt, Text: "Please enter the token mint address you want to buy:"}, nil

	case ActionSellTokens:
		var has bool
		if l.dashboard != nil {
			var err error
			has, err = l.dashboard.HasTokens(ctx, rec.PublicKey)
			if err != nil {
				l.logger.Warn("token holdings lookup failed", "user_id", userID, "error", err)
			}
		}
		if !has {
			return model.Reply{
				Status: model.ReplyInfo,
				Text:   "You haven't bought any tokens yet. Use the Buy option to purchase tokens first.",
			}, nil
		}
		l.begin(userID, model.AwaitTokenAddress{Side: model.TradeSell})
		return model.Reply{Status: model.ReplyPrompt, Text: "Please enter the token mint address you want to sell:"}, nil

	default:
		l.begin(userID, model.AwaitTokenSymbol{})
		return model.Reply{Status: model.ReplyPrompt, Text: "Enter a token symbol or mint address to look up:"}, nil
	}
}

// HandleMessage routes free text typed by a user. Without a pending session
// the message is ignored. The returned error, when set, is the typed
// validation, derivation or store error behind a non-success reply.
func (l *Linker) HandleMessage(ctx context.Context, userID int64, username, text string) (model.Reply, error) {
	unlock := l.locks.lock(userID)
	defer unlock()

	text = strings.TrimSpace(text)

	sess, ok := l.sessions.Peek(userID)
	if !ok {
		return model.Reply{Status: model.ReplyIgnored}, nil
	}

	switch aw := sess.Awaiting.(type) {
	case model.ImportSecret:
		return l.importSecret(ctx, userID, username, aw.Kind, text)
	case model.AwaitTokenAddress:
		return l.captureTokenAddress(userID, aw, text)
	case model.AwaitTokenSymbol:
		return l.captureTokenSymbol(userID, aw, text)
	default:
		return model.Reply{}, fmt.Errorf("unhandled session await %T", aw)
	}
}

// importSecret keeps the session on every failure so the user can retry;
// it is consumed only after the record is saved.
func (l *Linker) importSecret(ctx context.Context, userID int64, username string, kind model.ImportKind, text string) (model.Reply, error) {
	identity, err := ParseSecret(text)
	if err != nil {
		metrics.ImportAttempts.WithLabelValues(string(kind), "invalid").Inc()
		return model.Reply{
			Status: model.ReplyInvalid,
			Text:   invalidSecretText(err),
			Code:   ErrorCode(err),
		}, err
	}

	isNew, err := l.records.Save(ctx, userID, identity, kind)
	if err != nil {
		metrics.ImportAttempts.WithLabelValues(string(kind), "store_error").Inc()
		return l.storeFailed("save", userID, err)
	}

	l.sessions.Consume(userID)
	metrics.ImportAttempts.WithLabelValues(string(kind), "linked").Inc()
	l.logger.Info("wallet linked",
		"user_id", userID,
		"kind", kind,
		"source", identity.Source,
		"address", identity.Address(),
		"new_user", isNew,
	)

	if isNew && l.notifier != nil {
		l.notifier.NotifyNewUser(ctx, model.NewUserAlert{
			UserID:     userID,
			Username:   username,
			PublicKey:  identity.Address(),
			ImportKind: kind,
			LinkedAt:   l.now(),
		})
	}

	reply := model.Reply{
		Status:    model.ReplyLinked,
		Text:      "Wallet linked from seed phrase!",
		PublicKey: identity.Address(),
		NewUser:   isNew,
	}
	if identity.Source == model.FromPrivateKey {
		reply.Text = "Wallet linked from private key!"
	}

	if l.dashboard != nil {
		dash, err := l.dashboard.Build(ctx, identity.Address())
		if err != nil {
			l.logger.Warn("dashboard build failed", "user_id", userID, "error", err)
		}
		reply.Dashboard = dash
	}
	return reply, nil
}

// captureTokenAddress consumes the session before validating, so an invalid
// address ends the flow.
func (l *Linker) captureTokenAddress(userID int64, aw model.AwaitTokenAddress, text string) (model.Reply, error) {
	l.sessions.Consume(userID)

	if verr := ValidateMintAddress(text); verr != nil {
		metrics.TokenInputs.WithLabelValues(aw.Name(), "invalid").Inc()
		return model.Reply{
			Status: model.ReplyInvalid,
			Text:   "Please enter a valid Solana token mint address.",
			Code:   ErrorCode(verr),
		}, verr
	}

	metrics.TokenInputs.WithLabelValues(aw.Name(), "accepted").Inc()
	verb := "Buy"
	if aw.Side == model.TradeSell {
		verb = "Sell"
	}
	return model.Reply{
		Status: model.ReplyToken,
		Text:   fmt.Sprintf("%s Token\n\nToken Address: %s\n\nTrading functionality is currently in development.", verb, text),
	}, nil
}

// captureTokenSymbol keeps the session when the input is too short.
func (l *Linker) captureTokenSymbol(userID int64, aw model.AwaitTokenSymbol, text string) (model.Reply, error) {
	symbol := strings.ToUpper(text)
	if utf8.RuneCountInString(symbol) < 2 {
		metrics.TokenInputs.WithLabelValues(aw.Name(), "invalid").Inc()
		verr := &ValidationError{Check: CheckInput, Reason: ErrLength, Detail: "want at least 2 characters"}
		return model.Reply{
			Status: model.ReplyInvalid,
			Text:   "Please enter a valid token symbol or address.",
			Code:   ErrorCode(verr),
		}, verr
	}

	l.sessions.Consume(userID)
	metrics.TokenInputs.WithLabelValues(aw.Name(), "accepted").Inc()
	return model.Reply{
		Status: model.ReplyToken,
		Text:   fmt.Sprintf("Token Information: %s\n\nNetwork: Solana\nStatus: Searching...", symbol),
	}, nil
}

// Wallet returns the dashboard of userID's linked wallet.
func (l *Linker) Wallet(ctx context.Context, userID int64) (*model.DashboardResponse, error) {
	if l.dashboard == nil {
		return nil, ErrNoDashboard
	}
	rec, err := l.records.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return l.dashboard.Build(ctx, rec.PublicKey)
}

// Record returns userID's record without secret material.
func (l *Linker) Record(ctx context.Context, userID int64) (model.WalletRecord, error) {
	return l.records.Get(ctx, userID)
}

// Reveal returns userID's record with its secret material in clear.
func (l *Linker) Reveal(ctx context.Context, userID int64) (model.WalletRecord, error) {
	return l.records.Reveal(ctx, userID)
}

// Unlink deletes userID's wallet record and reports whether one existed.
func (l *Linker) Unlink(ctx context.Context, userID int64) (bool, error) {
	removed, err := l.records.Delete(ctx, userID)
	if err != nil {
		metrics.StoreErrors.WithLabelValues("delete").Inc()
		return false, &StoreError{Op: "delete", UserID: userID, Err: err}
	}
	if removed {
		l.logger.Info("wallet unlinked", "user_id", userID)
	}
	return removed, nil
}

func (l *Linker) begin(userID int64, awaiting model.Await) {
	l.sessions.Begin(userID, awaiting)
	metrics.SessionsStarted.WithLabelValues(awaiting.Name()).Inc()
}

func (l *Linker) storeFailed(op string, userID int64, err error) (model.Reply, error) {
	metrics.StoreErrors.WithLabelValues(op).Inc()
	l.logger.Error("record store failed", "op", op, "user_id", userID, "error", err)
	serr := &StoreError{Op: op, UserID: userID, Err: err}
	text := "Failed to save wallet. Please try again."
	if op != "save" {
		text = "Failed to load wallet. Please try again."
	}
	return model.Reply{
		Status: model.ReplyRetry,
		Text:   text,
		Code:   ErrorCode(serr),
	}, serr
}

func noWalletReply() model.Reply {
	return model.Reply{
		Status: model.ReplyNoWallet,
		Text:   "No wallet linked. Import a seed phrase or a private key first.",
	}
}

func invalidSecretText(err error) string {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return "Please provide a valid Solana private key or seed phrase (" + verr.Error() + ")"
	}
	return err.Error()
}

// userLocks serializes the handling of events per user.
type userLocks struct {
	mu    sync.Mutex
	locks map[int64]*userLock
}

type userLock struct {
	sync.Mutex
	refs int
}

func (u *userLocks) lock(userID int64) func() {
	u.mu.Lock()
	ul, ok := u.locks[userID]
	if !ok {
		ul = &userLock{}
		u.locks[userID] = ul
	}
	ul.refs++
	u.mu.Unlock()

	ul.Lock()
	return func() {
		ul.Unlock()
		u.mu.Lock()
		ul.refs--
		if ul.refs == 0 {
			delete(u.locks, userID)
		}
		u.mu.Unlock()
	}
}
