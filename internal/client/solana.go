package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// SolanaClient is a client for working with Solana RPC
type SolanaClient struct {
	rpcClient *rpc.Client
	rpcURL    string
}

// NewSolanaClient creates a new Solana client for rpcURL.
func NewSolanaClient(rpcURL string) *SolanaClient {
	return &SolanaClient{
		rpcClient: rpc.New(rpcURL),
		rpcURL:    rpcURL,
	}
}

// GetBalance gets SOL balance of owner in lamports
func (c *SolanaClient) GetBalance(ctx context.Context, owner solana.PublicKey) (uint64, error) {
	balance, err := c.rpcClient.GetBalance(ctx, owner, rpc.CommitmentConfirmed)
	if err != nil {
		return 0, fmt.Errorf("failed to get SOL balance: %w", err)
	}
	return balance.Value, nil
}

// parsedTokenAccount is the jsonParsed data of an SPL token account
type parsedTokenAccount struct {
	Parsed struct {
		Info struct {
			Mint        string `json:"mint,omitempty"`
			Owner       string `json:"owner,omitempty"`
			TokenAmount struct {
				Amount         string `json:"amount,omitempty"`
				Decimals       int    `json:"decimals,omitempty"`
				UiAmountString string `json:"uiAmountString,omitempty"`
			} `json:"tokenAmount,omitempty"`
		} `json:"info,omitempty"`
		Type string `json:"type,omitempty"`
	} `json:"parsed,omitempty"`
}

// CountTokenHoldings counts SPL token accounts of owner with a non-zero balance
func (c *SolanaClient) CountTokenHoldings(ctx context.Context, owner solana.PublicKey) (int, error) {
	programID := solana.TokenProgramID
	result, err := c.rpcClient.GetTokenAccountsByOwner(
		ctx,
		owner,
		&rpc.GetTokenAccountsConfig{ProgramId: &programID},
		&rpc.GetTokenAccountsOpts{
			Commitment: rpc.CommitmentConfirmed,
			Encoding:   solana.EncodingJSONParsed,
		},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to get token accounts: %w", err)
	}

	count := 0
	for _, acc := range result.Value {
		if acc == nil || acc.Account.Data == nil {
			continue
		}

		var parsed parsedTokenAccount
		if err := json.Unmarshal(acc.Account.Data.GetRawJSON(), &parsed); err != nil {
			return 0, fmt.Errorf("failed to parse token account %s: %w", acc.Pubkey, err)
		}

		amount, err := strconv.ParseUint(parsed.Parsed.Info.TokenAmount.Amount, 10, 64)
		if err != nil {
			continue
		}
		if amount > 0 {
			count++
		}
	}
	return count, nil
}
