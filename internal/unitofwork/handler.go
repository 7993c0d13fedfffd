package unitofwork

import (
	"errors"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vasanth32/order-patterns/internal/httpx"
)

type Handler struct {
	svc *Service
}

func NewRouter(svc *Service) http.Handler {
	h := &Handler{svc: svc}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/orders", h.placeOrder)
	mux.HandleFunc("GET /api/orders/{id}", h.getOrder)
	mux.HandleFunc("GET /healthz", httpx.Health)
	return httpx.Wrap(mux)
}

type placeOrderRequest struct {
	ProductName   string          `json:"product_name"`
	Quantity      int             `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
	PaymentAmount decimal.Decimal `json:"payment_amount"`
	PaymentMethod string          `json:"payment_method"`
}

type orderPaymentResponse struct {
	Order struct {
		ID          string          `json:"id"`
		ProductName string          `json:"product_name"`
		Quantity    int             `json:"quantity"`
		Price       decimal.Decimal `json:"price"`
		CreatedAt   time.Time       `json:"created_at"`
	} `json:"order"`
	Payment struct {
		ID     string          `json:"id"`
		Amount decimal.Decimal `json:"amount"`
		Method string          `json:"method"`
	} `json:"payment"`
}

func toResponse(op OrderWithPayment) orderPaymentResponse {
	var resp orderPaymentResponse
	resp.Order.ID = op.Order.ID
	resp.Order.ProductName = op.Order.ProductName
	resp.Order.Quantity = op.Order.Quantity
	resp.Order.Price = op.Order.Price
	resp.Order.CreatedAt = op.Order.CreatedAt
	resp.Payment.ID = op.Payment.ID
	resp.Payment.Amount = op.Payment.Amount
	resp.Payment.Method = op.Payment.Method
	return resp
}

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	op, err := h.svc.PlaceOrder(r.Context(), req.ProductName, req.Quantity, req.Price, req.PaymentAmount, req.PaymentMethod)
	if err != nil {
		writeError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toResponse(op))
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	op, err := h.svc.GetOrder(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toResponse(op))
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidOrder), errors.Is(err, ErrInvalidPayment):
		httpx.WriteError(w, http.StatusBadRequest, "validation_error", err.Error())
	case errors.Is(err, ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not_found", "")
	default:
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "")
	}
}
