package di

import (
	"errors"
	"net/http"
	"time"

	"github.com/vasanth32/order-patterns/internal/httpx"
)

type Handler struct {
	svc       *OrderService
	singleton *Singleton
}

func NewRouter(svc *OrderService, singleton *Singleton) http.Handler {
	h := &Handler{svc: svc, singleton: singleton}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/orders", h.create)
	mux.HandleFunc("GET /api/orders", h.list)
	mux.HandleFunc("GET /api/orders/{id}", h.get)
	mux.HandleFunc("PUT /api/orders/{id}", h.update)
	mux.HandleFunc("GET /api/orders/{id}/total", h.total)
	mux.HandleFunc("DELETE /api/orders/{id}", h.delete)
	mux.HandleFunc("GET /api/lifetimes", h.lifetimes)
	mux.HandleFunc("GET /healthz", httpx.Health)
	return httpx.Wrap(WithRequestScope(mux))
}

type createOrderRequest struct {
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Discount    string  `json:"discount,omitempty"`
	Payment     string  `json:"payment"`
}

type orderResponse struct {
	ID          string    `json:"id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	Price       float64   `json:"price"`
	Discount    string    `json:"discount"`
	ChargeRef   string    `json:"charge_ref"`
	CreatedAt   time.Time `json:"created_at"`
}

func toResponse(o Order) orderResponse {
	return orderResponse{
		ID:          o.ID,
		ProductName: o.ProductName,
		Quantity:    o.Quantity,
		Price:       o.Price,
		Discount:    o.Discount,
		ChargeRef:   o.ChargeRef,
		CreatedAt:   o.CreatedAt,
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	order, err := h.svc.Create(r.Context(), req.ProductName, req.Quantity, req.Price, req.Discount, req.Payment)
	if err != nil {
		writeError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toResponse(order))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toResponse(o))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	order, err := h.svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toResponse(order))
}

type updateOrderRequest struct {
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req updateOrderRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	order, err := h.svc.Update(r.Context(), r.PathValue("id"), req.ProductName, req.Quantity, req.Price)
	if err != nil {
		writeError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toResponse(order))
}

func (h *Handler) total(w http.ResponseWriter, r *http.Request) {
	total, err := h.svc.Total(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]float64{"total": total})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// lifetimes exposes the three values so repeated calls show which ones
// change: singleton id is stable, scoped id changes per request,
// transient ids differ even within one response.
func (h *Handler) lifetimes(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"singleton_id":    h.singleton.InstanceID,
		"singleton_calls": h.singleton.Touch(),
		"scoped_id":       ScopeIDFromContext(r.Context()),
		"transient_a":     NewTransient(),
		"transient_b":     NewTransient(),
	})
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidOrder), errors.Is(err, ErrUnknownStrategy):
		httpx.WriteError(w, http.StatusBadRequest, "validation_error", err.Error())
	case errors.Is(err, ErrPaymentDeclined):
		httpx.WriteError(w, http.StatusPaymentRequired, "payment_declined", err.Error())
	case errors.Is(err, ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not_found", "")
	default:
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "")
	}
}
