package optimistic

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/vasanth32/order-patterns/internal/httpx"
)

type Handler struct {
	svc *Service
}

func NewRouter(svc *Service) http.Handler {
	h := &Handler{svc: svc}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/orders", h.create)
	mux.HandleFunc("GET /api/orders/{id}", h.get)
	mux.HandleFunc("PUT /api/orders/{id}", h.update)
	mux.HandleFunc("POST /api/orders/{id}/race", h.race)
	mux.HandleFunc("GET /healthz", httpx.Health)
	return httpx.Wrap(mux)
}

type orderRequest struct {
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

type orderResponse struct {
	ID          string    `json:"id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	Price       float64   `json:"price"`
	Version     int64     `json:"version"`
	CreatedAt   time.Time `json:"created_at"`
}

func toResponse(o Order) orderResponse {
	return orderResponse{
		ID:          o.ID,
		ProductName: o.ProductName,
		Quantity:    o.Quantity,
		Price:       o.Price,
		Version:     o.Version,
		CreatedAt:   o.CreatedAt,
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	order, err := h.svc.Create(r.Context(), req.ProductName, req.Quantity, req.Price)
	if err != nil {
		writeError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toResponse(order))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	order, err := h.svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toResponse(order))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	order, err := h.svc.Apply(r.Context(), r.PathValue("id"), Update{
		ProductName: req.ProductName,
		Quantity:    req.Quantity,
		Price:       req.Price,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toResponse(order))
}

type raceOutcome struct {
	Quantity int    `json:"quantity"`
	Version  int64  `json:"version,omitempty"`
	Error    string `json:"error,omitempty"`
}

// race fires two conflicting updates at the same order so the retry
// path is observable from a single request.
func (h *Handler) race(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	base, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	outcomes := make([]raceOutcome, 2)
	var wg sync.WaitGroup
	for i, quantity := range []int{base.Quantity + 1, base.Quantity + 2} {
		wg.Add(1)
		go func(slot, q int) {
			defer wg.Done()
			order, err := h.svc.Apply(r.Context(), id, Update{
				ProductName: base.ProductName,
				Quantity:    q,
				Price:       base.Price,
			})
			if err != nil {
				outcomes[slot] = raceOutcome{Quantity: q, Error: err.Error()}
				return
			}
			outcomes[slot] = raceOutcome{Quantity: q, Version: order.Version}
		}(i, quantity)
	}
	wg.Wait()

	httpx.WriteJSON(w, http.StatusOK, map[string]any{"outcomes": outcomes})
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidOrder):
		httpx.WriteError(w, http.StatusBadRequest, "validation_error", err.Error())
	case errors.Is(err, ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not_found", "")
	case errors.Is(err, ErrConflict):
		httpx.WriteError(w, http.StatusConflict, "conflict", err.Error())
	default:
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "")
	}
}
