package product

import (
	"errors"
	"net/http"

	"github.com/vasanth32/order-patterns/internal/httpx"
	"github.com/vasanth32/order-patterns/internal/obs"
)

// Handler serves product CRUD with cache-aside reads. Cache failures
// degrade to store reads and are only logged.
type Handler struct {
	store *MemoryStore
	cache Cache
}

func NewRouter(store *MemoryStore, cache Cache) http.Handler {
	h := &Handler{store: store, cache: cache}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/products", h.create)
	mux.HandleFunc("GET /api/products", h.list)
	mux.HandleFunc("GET /api/products/{id}", h.get)
	mux.HandleFunc("PUT /api/products/{id}", h.update)
	mux.HandleFunc("DELETE /api/products/{id}", h.delete)
	mux.HandleFunc("GET /healthz", httpx.Health)
	return httpx.Wrap(mux)
}

type productRequest struct {
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stock_quantity"`
	Category      string  `json:"category"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	p, err := NewProduct(req.Name, req.Price, req.StockQuantity, req.Category)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	h.store.Put(p)
	httpx.WriteJSON(w, http.StatusCreated, p)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if p, err := h.cache.Get(r.Context(), id); err == nil {
		w.Header().Set("X-Cache", "HIT")
		httpx.WriteJSON(w, http.StatusOK, p)
		return
	} else if !errors.Is(err, ErrCacheMiss) {
		obs.Logger.Warn("cache read failed", "product_id", id, "error", err)
	}

	p, ok := h.store.Get(id)
	if !ok {
		httpx.WriteError(w, http.StatusNotFound, "not_found", "")
		return
	}
	if err := h.cache.Set(r.Context(), p); err != nil {
		obs.Logger.Warn("cache write failed", "product_id", id, "error", err)
	}
	w.Header().Set("X-Cache", "MISS")
	httpx.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, h.store.List())
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req productRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	existing, ok := h.store.Get(id)
	if !ok {
		httpx.WriteError(w, http.StatusNotFound, "not_found", "")
		return
	}
	updated := Product{
		ID:            existing.ID,
		Name:          req.Name,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		Category:      req.Category,
	}
	if err := updated.validate(); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	h.store.Put(updated)
	if err := h.cache.Invalidate(r.Context(), id); err != nil {
		obs.Logger.Warn("cache invalidation failed", "product_id", id, "error", err)
	}
	httpx.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !h.store.Delete(id) {
		httpx.WriteError(w, http.StatusNotFound, "not_found", "")
		return
	}
	if err := h.cache.Invalidate(r.Context(), id); err != nil {
		obs.Logger.Warn("cache invalidation failed", "product_id", id, "error", err)
	}
	w.WriteHeader(http.StatusNoContent)
}
