package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/AlexZinkM/wallet-link/internal/api"
	"github.com/AlexZinkM/wallet-link/internal/client"
	"github.com/AlexZinkM/wallet-link/internal/config"
	"github.com/AlexZinkM/wallet-link/internal/metrics"
	"github.com/AlexZinkM/wallet-link/internal/session"
	"github.com/AlexZinkM/wallet-link/internal/store"
	"github.com/AlexZinkM/wallet-link/solana"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := config.Get()
	logger := newLogger()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var opts []store.Option
	sealer, err := storeSealer(cfg)
	if err != nil {
		return err
	}
	if sealer != nil {
		defer sealer.Close()
		opts = append(opts, store.WithSealer(sealer))
	}

	records, closeStore, err := openStore(ctx, cfg, opts...)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", cfg.StoreBackend, err)
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Warn("failed to close store", "error", err)
		}
	}()

	ttl := config.GetSessionTTL()
	sessions := session.NewStore(session.WithTTL(ttl))
	metrics.RegisterActiveSessions(sessions.Len)
	if ttl > 0 {
		interval := max(ttl/4, time.Second)
		go sessions.RunSweeper(ctx, interval, func(removed int) {
			logger.Debug("expired import sessions swept", "count", removed)
		})
	}

	var notifier solana.Notifier = client.LogNotifier{Logger: logger}
	if cfg.OwnerID != 0 {
		notifier = client.NewTelegramNotifier(cfg.TelegramURL, cfg.BotToken, cfg.OwnerID, logger)
	}

	dashboard := solana.NewDashboard(
		client.NewSolanaClient(config.GetSolanaRPCURL()),
		client.NewCoinGeckoClient(cfg.CoinGeckoURL),
		logger,
	)
	linker := solana.NewLinker(sessions, records, notifier, dashboard, logger)

	router, err := api.SetupRouter(linker, dashboard, logger)
	if err != nil {
		return err
	}

	port := config.GetPort()
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "port", port, "store", cfg.StoreBackend, "sealed", sealer != nil)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
