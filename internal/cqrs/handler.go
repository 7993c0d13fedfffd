package cqrs

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/vasanth32/order-patterns/internal/httpx"
)

// Handler routes writes to the command handler and reads to the query
// handler; the two sides share nothing but the table.
type Handler struct {
	commands *CommandHandler
	queries  *QueryHandler
}

func NewRouter(commands *CommandHandler, queries *QueryHandler) http.Handler {
	h := &Handler{commands: commands, queries: queries}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/orders", h.create)
	mux.HandleFunc("PUT /api/orders/{id}", h.update)
	mux.HandleFunc("POST /api/orders/{id}/cancel", h.cancel)
	mux.HandleFunc("GET /api/orders", h.list)
	mux.HandleFunc("GET /api/orders/{id}", h.get)
	mux.HandleFunc("GET /healthz", httpx.Health)
	return httpx.Wrap(mux)
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
	id, err := h.commands.HandleCreate(r.Context(), CreateOrder{
		ProductName: req.ProductName,
		Quantity:    req.Quantity,
		Price:       req.Price,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	err := h.commands.HandleUpdate(r.Context(), UpdateOrder{
		OrderID:     r.PathValue("id"),
		ProductName: req.ProductName,
		Quantity:    req.Quantity,
		Price:       req.Price,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) cancel(w http.ResponseWriter, r *http.Request) {
	if err := h.commands.HandleCancel(r.Context(), CancelOrder{OrderID: r.PathValue("id")}); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	summary, err := h.queries.GetOrder(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, summary)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := ListOrders{Status: r.URL.Query().Get("status")}
	q.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	q.Offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))

	summaries, err := h.queries.ListOrders(r.Context(), q)
	if err != nil {
		writeError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, summaries)
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidOrder):
		httpx.WriteError(w, http.StatusBadRequest, "validation_error", err.Error())
	case errors.Is(err, ErrOrderCancelled):
		httpx.WriteError(w, http.StatusConflict, "order_cancelled", "")
	case errors.Is(err, ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not_found", "")
	default:
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "")
	}
}
