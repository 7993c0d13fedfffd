package payment

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func postPayment(t *testing.T, h http.Handler, orderID string, amount float64) Payment {
	t.Helper()
	body := fmt.Sprintf(`{"order_id":%q,"amount":%v,"method":"card"}`, orderID, amount)
	req := httptest.NewRequest(http.MethodPost, "/api/payments", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var p Payment
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatalf("decode created payment: %v", err)
	}
	return p
}

func TestCreateAndGetPayment(t *testing.T) {
	h := NewRouter(NewMemoryStore(), 1<<20)

	p := postPayment(t, h, "ord-1", 42.5)

	req := httptest.NewRequest(http.MethodGet, "/api/payments/"+p.ID, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("get: status = %d", rec.Code)
	}
	var got Payment
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.OrderID != "ord-1" || got.Amount != 42.5 {
		t.Fatalf("unexpected payment: %+v", got)
	}
}

func TestCreatePaymentValidation(t *testing.T) {
	h := NewRouter(NewMemoryStore(), 1<<20)

	cases := []string{
		`{"order_id":"","amount":10,"method":"card"}`,
		`{"order_id":"ord-1","amount":0,"method":"card"}`,
		`{"order_id":"ord-1","amount":-5,"method":"card"}`,
		`{"order_id":"ord-1","amount":10,"method":""}`,
	}
	for _, body := range cases {
		req := httptest.NewRequest(http.MethodPost, "/api/payments", strings.NewReader(body))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", body, rec.Code)
		}
	}
}

func TestUpdatePayment(t *testing.T) {
	h := NewRouter(NewMemoryStore(), 1<<20)
	p := postPayment(t, h, "ord-1", 10)

	body := `{"order_id":"ord-2","amount":25,"method":"cash"}`
	req := httptest.NewRequest(http.MethodPut, "/api/payments/"+p.ID, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("update: status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var got Payment
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.ID != p.ID || got.OrderID != "ord-2" || got.Amount != 25 {
		t.Fatalf("unexpected payment: %+v", got)
	}

	bad := `{"order_id":"ord-2","amount":0,"method":"cash"}`
	req = httptest.NewRequest(http.MethodPut, "/api/payments/"+p.ID, strings.NewReader(bad))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid update: status = %d, want 400", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPut, "/api/payments/missing", strings.NewReader(body))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing update: status = %d, want 404", rec.Code)
	}
}

func TestDeletePayment(t *testing.T) {
	// minSize 1 so the middleware is in the path for the empty 204 body.
	h := NewRouter(NewMemoryStore(), 1)
	p := postPayment(t, h, "ord-1", 10)

	req := httptest.NewRequest(http.MethodDelete, "/api/payments/"+p.ID, nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete: status = %d, want 204", rec.Code)
	}
	if got := rec.Header().Get("Content-Encoding"); got != "" {
		t.Fatalf("Content-Encoding = %q, want empty on empty body", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/payments/"+p.ID, nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete: status = %d, want 404", rec.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/payments/"+p.ID, nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("double delete: status = %d, want 404", rec.Code)
	}
}

func TestGetPaymentNotFound(t *testing.T) {
	h := NewRouter(NewMemoryStore(), 1<<20)

	req := httptest.NewRequest(http.MethodGet, "/api/payments/missing", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestListGzipsLargeResponse(t *testing.T) {
	h := NewRouter(NewMemoryStore(), 256)

	for i := 0; i < 50; i++ {
		postPayment(t, h, fmt.Sprintf("ord-%d", i), float64(i+1))
	}

	req := httptest.NewRequest(http.MethodGet, "/api/payments", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Encoding"); got != "gzip" {
		t.Fatalf("Content-Encoding = %q, want gzip", got)
	}
	gz, err := gzip.NewReader(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("gzip reader: %v", err)
	}
	plain, err := io.ReadAll(gz)
	if err != nil {
		t.Fatalf("decompress: %v", err)
	}
	var payments []Payment
	if err := json.Unmarshal(plain, &payments); err != nil {
		t.Fatalf("decode decompressed body: %v", err)
	}
	if len(payments) != 50 {
		t.Fatalf("len = %d, want 50", len(payments))
	}
}

func TestSmallResponseNotCompressed(t *testing.T) {
	h := NewRouter(NewMemoryStore(), 1<<20)
	p := postPayment(t, h, "ord-1", 10)

	req := httptest.NewRequest(http.MethodGet, "/api/payments/"+p.ID, nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("Content-Encoding"); got != "" {
		t.Fatalf("Content-Encoding = %q, want empty", got)
	}
	var got Payment
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

func TestClientWithoutGzipGetsPlainBody(t *testing.T) {
	h := NewRouter(NewMemoryStore(), 1)
	postPayment(t, h, "ord-1", 10)

	req := httptest.NewRequest(http.MethodGet, "/api/payments", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("Content-Encoding"); got != "" {
		t.Fatalf("Content-Encoding = %q, want empty", got)
	}
	var payments []Payment
	if err := json.Unmarshal(rec.Body.Bytes(), &payments); err != nil {
		t.Fatalf("decode: %v", err)
	}
}
