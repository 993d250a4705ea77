package model

// MarketData is the SOL/USD market snapshot.
type MarketData struct {
	Price     float64 `json:"price"`
	Change24h float64 `json:"change24h"`
	MarketCap float64 `json:"marketCap"`
	Volume24h float64 `json:"volume24h"`
}

// DashboardResponse represents response for GET /wallet/{userID}
type DashboardResponse struct {
	Address          string      `json:"address"`
	ShortAddress     string      `json:"shortAddress"`
	SOL              string      `json:"sol"`
	Lamports         uint64      `json:"lamports"`
	BalanceAvailable bool        `json:"balanceAvailable"`
	USDValue         string      `json:"usdValue"`
	Market           *MarketData `json:"market,omitempty"`
	SolscanURL       string      `json:"solscanUrl"`
}
