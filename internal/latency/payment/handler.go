package payment

import (
	"errors"
	"net/http"

	"github.com/vasanth32/order-patterns/internal/httpx"
)

type Handler struct {
	store *MemoryStore
}

// NewRouter returns the payment API with gzip compression applied to
// response bodies larger than minSize.
func NewRouter(store *MemoryStore, minSize int) http.Handler {
	h := &Handler{store: store}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/payments", h.create)
	mux.HandleFunc("GET /api/payments", h.list)
	mux.HandleFunc("GET /api/payments/{id}", h.get)
	mux.HandleFunc("PUT /api/payments/{id}", h.update)
	mux.HandleFunc("DELETE /api/payments/{id}", h.delete)
	mux.HandleFunc("GET /healthz", httpx.Health)
	return httpx.Wrap(WithGzip(minSize, mux))
}

type createPaymentRequest struct {
	OrderID string  `json:"order_id"`
	Amount  float64 `json:"amount"`
	Method  string  `json:"method"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createPaymentRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	p, err := NewPayment(req.OrderID, req.Amount, req.Method)
	if err != nil {
		if errors.Is(err, ErrInvalidPayment) {
			httpx.WriteError(w, http.StatusBadRequest, "validation_error", err.Error())
			return
		}
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}
	h.store.Put(p)
	httpx.WriteJSON(w, http.StatusCreated, p)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, h.store.List())
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	p, ok := h.store.Get(r.PathValue("id"))
	if !ok {
		httpx.WriteError(w, http.StatusNotFound, "not_found", "")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req createPaymentRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	p, ok := h.store.Get(r.PathValue("id"))
	if !ok {
		httpx.WriteError(w, http.StatusNotFound, "not_found", "")
		return
	}
	if err := p.Update(req.OrderID, req.Amount, req.Method); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	h.store.Put(p)
	httpx.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if !h.store.Delete(r.PathValue("id")) {
		httpx.WriteError(w, http.StatusNotFound, "not_found", "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
