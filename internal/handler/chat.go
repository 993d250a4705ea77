package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/AlexZinkM/wallet-link/internal/model"
	"github.com/AlexZinkM/wallet-link/solana"
)

// ChatHandler relays bot updates to the Linker
type ChatHandler struct {
	linker *solana.Linker
	logger *slog.Logger
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(linker *solana.Linker, logger *slog.Logger) *ChatHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ChatHandler{linker: linker, logger: logger}
}

// Action handles POST /chat/action
// @Summary      Menu button press
// @Description  Starts an import or token session, or answers directly
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        request  body      model.ActionRequest  true  "User and action"
// @Success      200      {object}  model.Reply
// @Failure      400      {object}  model.ErrorResponse
// @Router       /chat/action [post]
func (h *ChatHandler) Action(w http.ResponseWriter, r *http.Request) {
	var req model.ActionRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.UserID <= 0 {
		writeError(w, http.StatusBadRequest, errors.New("userId must be a positive integer"))
		return
	}

	reply, err := h.linker.Action(r.Context(), req.UserID, req.Action)
	if err != nil {
		h.logger.Debug("action rejected", "user_id", req.UserID, "action", req.Action, "error", err)
	}
	writeJSON(w, http.StatusOK, reply)
}

// Message handles POST /chat/message
// @Summary      Free text message
// @Description  Routes a message to the user's pending session; ignored without one
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        request  body      model.MessageRequest  true  "User and text"
// @Success      200      {object}  model.Reply
// @Failure      400      {object}  model.ErrorResponse
// @Router       /chat/message [post]
func (h *ChatHandler) Message(w http.ResponseWriter, r *http.Request) {
	var req model.MessageRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.UserID <= 0 {
		writeError(w, http.StatusBadRequest, errors.New("userId must be a positive integer"))
		return
	}

	reply, err := h.linker.HandleMessage(r.Context(), req.UserID, req.Username, req.Text)
	if err != nil {
		// never log req.Text, it may be a secret
		h.logger.Debug("message rejected", "user_id", req.UserID, "status", reply.Status, "code", solana.ErrorCode(err))
	}
	writeJSON(w, http.StatusOK, reply)
}
