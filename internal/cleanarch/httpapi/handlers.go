// Package httpapi adapts the Order use cases to HTTP/JSON.
package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/vasanth32/order-patterns/internal/cleanarch/app"
	"github.com/vasanth32/order-patterns/internal/cleanarch/domain"
	"github.com/vasanth32/order-patterns/internal/httpx"
)

type Handler struct {
	svc *app.OrderService
}

func NewHandler(svc *app.OrderService) *Handler {
	return &Handler{svc: svc}
}

// NewRouter registers the order routes and returns the wrapped handler.
func NewRouter(svc *app.OrderService) http.Handler {
	h := NewHandler(svc)
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/orders", h.Create)
	mux.HandleFunc("GET /api/orders", h.List)
	mux.HandleFunc("GET /api/orders/{id}", h.Get)
	mux.HandleFunc("PUT /api/orders/{id}", h.Update)
	mux.HandleFunc("DELETE /api/orders/{id}", h.Delete)
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
	Total       float64   `json:"total"`
	CreatedAt   time.Time `json:"created_at"`
}

func toResponse(o domain.Order) orderResponse {
	return orderResponse{
		ID:          o.ID,
		ProductName: o.ProductName,
		Quantity:    o.Quantity,
		Price:       o.Price,
		Total:       o.Total(),
		CreatedAt:   o.CreatedAt,
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	order, err := h.svc.Create(r.Context(), req.ProductName, req.Quantity, req.Price)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toResponse(order))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toResponse(o))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	order, err := h.svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toResponse(order))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	order, err := h.svc.Update(r.Context(), r.PathValue("id"), req.ProductName, req.Quantity, req.Price)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toResponse(order))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidOrder):
		httpx.WriteError(w, http.StatusBadRequest, "validation_error", err.Error())
	case errors.Is(err, app.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not_found", "")
	default:
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "")
	}
}
