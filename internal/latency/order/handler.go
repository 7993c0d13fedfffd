package order

import (
	"net/http"
	"time"

	"github.com/vasanth32/order-patterns/internal/httpx"
)

type Handler struct {
	store     *MemoryStore
	slowSleep time.Duration
}

// NewRouter wires the CRUD routes behind the response-time middleware.
func NewRouter(store *MemoryStore, threshold, slowSleep time.Duration) http.Handler {
	h := &Handler{store: store, slowSleep: slowSleep}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/orders", h.create)
	mux.HandleFunc("GET /api/orders", h.list)
	mux.HandleFunc("GET /api/orders/{id}", h.get)
	mux.HandleFunc("PUT /api/orders/{id}", h.update)
	mux.HandleFunc("DELETE /api/orders/{id}", h.delete)
	mux.HandleFunc("POST /api/orders/slow", h.slow)
	mux.HandleFunc("GET /healthz", httpx.Health)
	return httpx.Wrap(WithResponseTime(threshold, mux))
}

type orderRequest struct {
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	o, err := NewOrder(req.ProductName, req.Quantity, req.Price)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	h.store.Put(o)
	httpx.WriteJSON(w, http.StatusCreated, o)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, h.store.List())
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	o, ok := h.store.Get(r.PathValue("id"))
	if !ok {
		httpx.WriteError(w, http.StatusNotFound, "not_found", "")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, o)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	o, ok := h.store.Get(r.PathValue("id"))
	if !ok {
		httpx.WriteError(w, http.StatusNotFound, "not_found", "")
		return
	}
	if err := o.Update(req.ProductName, req.Quantity, req.Price); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	h.store.Put(o)
	httpx.WriteJSON(w, http.StatusOK, o)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if !h.store.Delete(r.PathValue("id")) {
		httpx.WriteError(w, http.StatusNotFound, "not_found", "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// slow manufactures a slow request so the middleware has something to
// flag.
func (h *Handler) slow(w http.ResponseWriter, r *http.Request) {
	select {
	case <-time.After(h.slowSleep):
	case <-r.Context().Done():
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "done", "slept": h.slowSleep.String()})
}
