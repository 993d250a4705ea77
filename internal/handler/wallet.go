package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/AlexZinkM/wallet-link/internal/model"
	"github.com/AlexZinkM/wallet-link/solana"
)

// WalletHandler serves wallet identity endpoints
type WalletHandler struct {
	linker    *solana.Linker
	dashboard *solana.Dashboard
	logger    *slog.Logger
}

// NewWalletHandler creates a new WalletHandler
func NewWalletHandler(linker *solana.Linker, dashboard *solana.Dashboard, logger *slog.Logger) *WalletHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WalletHandler{linker: linker, dashboard: dashboard, logger: logger}
}

// Classify handles POST /wallet/classify
// @Summary      Classify input
// @Description  Tells whether text is an address, a private key, a mnemonic or invalid
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.ClassifyRequest  true  "Text to classify"
// @Success      200      {object}  model.ClassifyResponse
// @Failure      400      {object}  model.ErrorResponse
// @Router       /wallet/classify [post]
func (h *WalletHandler) Classify(w http.ResponseWriter, r *http.Request) {
	var req model.ClassifyRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	out := solana.Classify(req.Text)
	resp := model.ClassifyResponse{
		Kind:      out.Kind.String(),
		ByteLen:   len(out.Bytes),
		WordCount: len(out.Words),
	}
	if out.Err != nil {
		resp.Reason = out.Err.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

// Derive handles POST /wallet/derive
// @Summary      Derive public key
// @Description  Derives the Solana public key of a seed phrase or private key. Nothing is stored.
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.DeriveRequest  true  "Secret and optional source (seed_phrase or private_key)"
// @Success      200      {object}  model.DeriveResponse
// @Failure      400      {object}  model.ErrorResponse
// @Router       /wallet/derive [post]
func (h *WalletHandler) Derive(w http.ResponseWriter, r *http.Request) {
	var req model.DeriveRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var (
		identity model.WalletIdentity
		err      error
	)
	switch req.Source {
	case model.FromMnemonic:
		identity, err = solana.DeriveFromMnemonic(req.Text)
	case model.FromPrivateKey:
		identity, err = solana.DeriveFromPrivateKey(req.Text)
	case "":
		identity, err = solana.ParseSecret(req.Text)
	default:
		writeError(w, http.StatusBadRequest, fmt.Errorf("unknown source %q", req.Source))
		return
	}
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	writeJSON(w, http.StatusOK, model.DeriveResponse{
		PublicKey: identity.Address(),
		Source:    identity.Source,
	})
}

// Get handles GET /wallet/{userID}
// @Summary      Wallet dashboard
// @Description  Address, SOL balance and SOL market data of a user's linked wallet
// @Tags         wallet
// @Produce      json
// @Param        userID  path      int  true  "Telegram user id"
// @Success      200     {object}  model.DashboardResponse
// @Failure      404     {object}  model.ErrorResponse
// @Router       /wallet/{userID} [get]
func (h *WalletHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUserID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	dash, err := h.linker.Wallet(r.Context(), userID)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, dash)
}

// QR handles GET /wallet/{userID}/qr
// @Summary      Wallet address QR code
// @Tags         wallet
// @Produce      png
// @Param        userID  path  int  true  "Telegram user id"
// @Param        size    query int  false "Image size in pixels"
// @Success      200
// @Failure      404  {object}  model.ErrorResponse
// @Router       /wallet/{userID}/qr [get]
func (h *WalletHandler) QR(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUserID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	size := 0
	if s := r.URL.Query().Get("size"); s != "" {
		size, err = strconv.Atoi(s)
		if err != nil || size < 0 || size > 2048 {
			writeError(w, http.StatusBadRequest, errors.New("size must be between 0 and 2048"))
			return
		}
	}

	rec, err := h.linker.Record(r.Context(), userID)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	png, err := solana.AddressQR(rec.PublicKey, size)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil {
		h.logger.Warn("failed to write qr code", "user_id", userID, "error", err)
	}
}

// Secret handles GET /wallet/{userID}/secret
// @Summary      Reveal stored secret
// @Description  Returns the seed phrase or private key a user imported
// @Tags         wallet
// @Produce      json
// @Param        userID  path      int  true  "Telegram user id"
// @Success      200     {object}  model.SecretResponse
// @Failure      404     {object}  model.ErrorResponse
// @Router       /wallet/{userID}/secret [get]
func (h *WalletHandler) Secret(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUserID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	rec, err := h.linker.Reveal(r.Context(), userID)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	h.logger.Warn("wallet secret revealed", "user_id", userID)

	writeJSON(w, http.StatusOK, model.SecretResponse{
		ImportKind: rec.ImportKind,
		Secret:     rec.Secret(),
	})
}

// Delete handles DELETE /wallet/{userID}
// @Summary      Unlink wallet
// @Tags         wallet
// @Param        userID  path  int  true  "Telegram user id"
// @Success      204
// @Failure      404  {object}  model.ErrorResponse
// @Router       /wallet/{userID} [delete]
func (h *WalletHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUserID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	removed, err := h.linker.Unlink(r.Context(), userID)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	if !removed {
		writeError(w, http.StatusNotFound, model.ErrWalletNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Market handles GET /market
// @Summary      SOL market data
// @Description  SOL price, 24h change, market cap and 24h volume in USD
// @Tags         market
// @Produce      json
// @Success      200  {object}  model.MarketData
// @Failure      502  {object}  model.ErrorResponse
// @Router       /market [get]
func (h *WalletHandler) Market(w http.ResponseWriter, r *http.Request) {
	m, err := h.dashboard.Market(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}
