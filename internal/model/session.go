package model

import "time"

// TradeSide is the direction of a token trade request.
type TradeSide string

const (
	TradeBuy  TradeSide = "buy"
	TradeSell TradeSide = "sell"
)

// Await is what a pending session expects as the user's next message.
// The set of implementations is closed: ImportSecret, AwaitTokenAddress, AwaitTokenSymbol.
type Await interface {
	Name() string
	await()
}

// ImportSecret waits for a seed phrase or a private key.
type ImportSecret struct {
	Kind ImportKind
}

func (a ImportSecret) Name() string { return "import_" + string(a.Kind) }
func (ImportSecret) await()         {}

// AwaitTokenAddress waits for a token mint address to buy or sell.
type AwaitTokenAddress struct {
	Side TradeSide
}

func (a AwaitTokenAddress) Name() string { return string(a.Side) + "_token_address" }
func (AwaitTokenAddress) await()         {}

// AwaitTokenSymbol waits for a token symbol or address to look up.
type AwaitTokenSymbol struct{}

func (AwaitTokenSymbol) Name() string { return "token_info" }
func (AwaitTokenSymbol) await()       {}

// ImportSession is the pending interaction of one user. Sessions are replaced, never patched.
type ImportSession struct {
	UserID    int64
	Awaiting  Await
	CreatedAt time.Time
}
