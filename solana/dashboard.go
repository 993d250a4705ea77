package solana

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/AlexZinkM/wallet-link/internal/common"
	"github.com/AlexZinkM/wallet-link/internal/model"

	"github.com/gagliardetto/solana-go"
)

// ChainReader reads on-chain state of an address.
type ChainReader interface {
	GetBalance(ctx context.Context, owner solana.PublicKey) (uint64, error)
	CountTokenHoldings(ctx context.Context, owner solana.PublicKey) (int, error)
}

// MarketReader fetches the SOL/USD market snapshot.
type MarketReader interface {
	GetSOLMarket(ctx context.Context) (*model.MarketData, error)
}

// Dashboard assembles the wallet view of a linked address.
type Dashboard struct {
	chain  ChainReader
	market MarketReader
	logger *slog.Logger
}

// NewDashboard creates a Dashboard.
func NewDashboard(chain ChainReader, market MarketReader, logger *slog.Logger) *Dashboard {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dashboard{chain: chain, market: market, logger: logger}
}

// Build returns balance and market data for address. Lookup failures degrade
// the view (zero balance, no market block) instead of failing it.
func (d *Dashboard) Build(ctx context.Context, address string) (*model.DashboardResponse, error) {
	owner, err := solana.PublicKeyFromBase58(address)
	if err != nil {
		return nil, fmt.Errorf("invalid address: %w", err)
	}

	resp := &model.DashboardResponse{
		Address:      address,
		ShortAddress: common.ShortAddress(address, 4),
		SolscanURL:   common.SolscanAccountURL(address),
	}

	lamports, err := d.chain.GetBalance(ctx, owner)
	if err != nil {
		d.logger.Warn("balance lookup failed", "address", address, "error", err)
		lamports = 0
	} else {
		resp.BalanceAvailable = true
	}
	resp.Lamports = lamports
	resp.SOL = common.LamportsToSOL(lamports)

	price := 0.0
	market, err := d.market.GetSOLMarket(ctx)
	if err != nil {
		d.logger.Warn("market data lookup failed", "error", err)
	} else {
		resp.Market = market
		price = market.Price
	}
	resp.USDValue = common.LamportsToUSD(lamports, price)

	return resp, nil
}

// Market returns the current SOL market snapshot.
func (d *Dashboard) Market(ctx context.Context) (*model.MarketData, error) {
	return d.market.GetSOLMarket(ctx)
}

// HasTokens reports whether address holds any SPL token with a non-zero balance.
func (d *Dashboard) HasTokens(ctx context.Context, address string) (bool, error) {
	owner, err := solana.PublicKeyFromBase58(address)
	if err != nil {
		return false, fmt.Errorf("invalid address: %w", err)
	}
	n, err := d.chain.CountTokenHoldings(ctx, owner)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// MarketSummary renders m as the short market text shown in chat.
func MarketSummary(m *model.MarketData) string {
	if m == nil {
		return "SOL Market Data\n\nPrice data currently unavailable"
	}

	sign, direction := "+", "up"
	if m.Change24h < 0 {
		sign, direction = "", "down"
	}
	return fmt.Sprintf(
		"SOL Market Data\n\nPrice: $%.2f\n24h Change: %s%.2f%%\nMarket Cap: %s\n24h Volume: %s\n\nSOL is %s %.1f%% in the last 24 hours",
		m.Price, sign, m.Change24h,
		common.FormatCompactUSD(m.MarketCap),
		common.FormatCompactUSD(m.Volume24h),
		direction, math.Abs(m.Change24h),
	)
}
