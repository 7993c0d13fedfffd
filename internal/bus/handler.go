package bus

import (
	"errors"
	"net/http"

	"github.com/vasanth32/order-patterns/internal/httpx"
	"github.com/vasanth32/order-patterns/internal/obs"
)

type Handler struct {
	publisher *Publisher
	queue     Queue
	stats     *Stats
}

func NewRouter(publisher *Publisher, queue Queue, stats *Stats) http.Handler {
	h := &Handler{publisher: publisher, queue: queue, stats: stats}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/orders", h.placeOrder)
	mux.HandleFunc("GET /api/stats", h.getStats)
	mux.HandleFunc("GET /healthz", httpx.Health)
	return httpx.Wrap(mux)
}

type placeOrderRequest struct {
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	ev, err := NewOrderPlaced(req.ProductName, req.Quantity, req.Price)
	if err != nil {
		if errors.Is(err, ErrInvalidOrder) {
			httpx.WriteError(w, http.StatusBadRequest, "validation_error", err.Error())
			return
		}
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}
	if err := h.publisher.Publish(r.Context(), ev); err != nil {
		obs.Logger.Error("publish failed", "error", err)
		httpx.WriteError(w, http.StatusServiceUnavailable, "publish_failed", err.Error())
		return
	}
	httpx.WriteJSON(w, http.StatusAccepted, map[string]string{
		"event_id": ev.EventID,
		"order_id": ev.OrderID,
	})
}

type statsResponse struct {
	Published  int64 `json:"published"`
	Processed  int64 `json:"processed"`
	Failed     int64 `json:"failed"`
	QueueDepth int64 `json:"queue_depth"`
}

func (h *Handler) getStats(w http.ResponseWriter, r *http.Request) {
	depth, err := h.queue.Len(r.Context())
	if err != nil {
		obs.Logger.Warn("queue depth unavailable", "error", err)
		depth = -1
	}
	httpx.WriteJSON(w, http.StatusOK, statsResponse{
		Published:  h.stats.Published(),
		Processed:  h.stats.Processed(),
		Failed:     h.stats.Failed(),
		QueueDepth: depth,
	})
}
