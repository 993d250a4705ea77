package cli

import (
	"context"
	"fmt"

	"github.com/AlexZinkM/wallet-link/internal/config"
	"github.com/AlexZinkM/wallet-link/internal/crypto"
	"github.com/AlexZinkM/wallet-link/internal/store"
	"github.com/AlexZinkM/wallet-link/solana"
)

// openStore opens the configured record store. close must be called when done.
func openStore(ctx context.Context, cfg *config.Config, opts ...store.Option) (solana.RecordStore, func() error, error) {
	switch cfg.StoreBackend {
	case config.BackendRedis:
		rs, err := store.NewRedisStore(ctx, cfg.RedisURL, opts...)
		if err != nil {
			return nil, nil, err
		}
		return rs, rs.Close, nil
	default:
		fs, err := store.OpenFile(cfg.StoreFilePath, opts...)
		if err != nil {
			return nil, nil, err
		}
		return fs, func() error { return nil }, nil
	}
}

// promptSealer asks for a passphrase and returns a sealer for it.
func promptSealer(prompt string) (*crypto.PassphraseSealer, error) {
	pass, err := config.ReadSecret(prompt)
	if err != nil {
		return nil, err
	}
	defer clear(pass)
	return crypto.NewPassphraseSealer(pass)
}

// storeSealer returns the sealer for STORE_SEAL, prompting once for the passphrase.
func storeSealer(cfg *config.Config) (*crypto.PassphraseSealer, error) {
	if !cfg.StoreSeal {
		return nil, nil
	}
	if err := config.PromptForPassphrase(); err != nil {
		return nil, fmt.Errorf("failed to read store passphrase: %w", err)
	}
	pass, err := config.GetStorePassphrase()
	if err != nil {
		return nil, err
	}
	defer clear(pass)
	return crypto.NewPassphraseSealer(pass)
}
