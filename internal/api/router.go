package api

import (
	"errors"
	"log/slog"
	"net/http"

	_ "github.com/AlexZinkM/wallet-link/docs"
	"github.com/AlexZinkM/wallet-link/internal/handler"
	"github.com/AlexZinkM/wallet-link/solana"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// SetupRouter sets up router with handlers
func SetupRouter(linker *solana.Linker, dashboard *solana.Dashboard, logger *slog.Logger) (http.Handler, error) {
	if linker == nil || dashboard == nil {
		return nil, errors.New("linker and dashboard are required")
	}

	walletHandler := handler.NewWalletHandler(linker, dashboard, logger)
	chatHandler := handler.NewChatHandler(linker, logger)

	mux := http.NewServeMux()

	// Swagger UI
	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Prometheus
	mux.Handle("GET /metrics", promhttp.Handler())

	// Wallet endpoints
	mux.HandleFunc("POST /wallet/classify", walletHandler.Classify)
	mux.HandleFunc("POST /wallet/derive", walletHandler.Derive)
	mux.HandleFunc("GET /wallet/{userID}", walletHandler.Get)
	mux.HandleFunc("DELETE /wallet/{userID}", walletHandler.Delete)
	mux.HandleFunc("GET /wallet/{userID}/qr", walletHandler.QR)
	mux.HandleFunc("GET /wallet/{userID}/secret", walletHandler.Secret)
	mux.HandleFunc("GET /market", walletHandler.Market)

	// Chat endpoints
	mux.HandleFunc("POST /chat/action", chatHandler.Action)
	mux.HandleFunc("POST /chat/message", chatHandler.Message)

	return mux, nil
}
