package deadlock

import (
	"context"
	"net/http"

	"github.com/vasanth32/order-patterns/internal/httpx"
	"github.com/vasanth32/order-patterns/internal/obs"
)

type Handler struct {
	svc *Service
}

func NewRouter(svc *Service) http.Handler {
	h := &Handler{svc: svc}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/transfer/forward", h.forward)
	mux.HandleFunc("POST /api/transfer/reverse", h.reverse)
	mux.HandleFunc("GET /api/accounts", h.accounts)
	mux.HandleFunc("GET /healthz", httpx.Health)
	return httpx.Wrap(mux)
}

type transferRequest struct {
	Amount int64 `json:"amount"`
}

func (h *Handler) forward(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, h.svc.TransferForward)
}

func (h *Handler) reverse(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, h.svc.TransferReverse)
}

func (h *Handler) run(w http.ResponseWriter, r *http.Request, transfer func(context.Context, int64) (Balances, error)) {
	var req transferRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if req.Amount <= 0 {
		httpx.WriteError(w, http.StatusBadRequest, "validation_error", "amount must be positive")
		return
	}

	balances, err := transfer(r.Context(), req.Amount)
	if err != nil {
		writeTransferError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, balances)
}

func (h *Handler) accounts(w http.ResponseWriter, r *http.Request) {
	balances, err := h.svc.Balances(r.Context())
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, balances)
}

func writeTransferError(w http.ResponseWriter, err error) {
	switch Classify(err) {
	case OutcomeDeadlock:
		obs.Logger.Warn("transfer aborted as deadlock victim", "error", err)
		httpx.WriteError(w, http.StatusConflict, string(OutcomeDeadlock),
			"transaction chosen as deadlock victim; retry the request")
	case OutcomeLockTimeout:
		httpx.WriteError(w, http.StatusConflict, string(OutcomeLockTimeout), err.Error())
	default:
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "")
	}
}
