package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/RosarioAnthonyWaya/preyesbaskets/internal/config"
	"github.com/RosarioAnthonyWaya/preyesbaskets/internal/domain"
	"github.com/RosarioAnthonyWaya/preyesbaskets/internal/repository"
)

func TestHandleGetOrder(t *testing.T) {
	gin.SetMode(gin.TestMode)
	orders := newFakeOrderRepo()
	repos := &repository.Repositories{Order: orders}

	archived := &domain.OrderRecord{
		ID:        uuid.New(),
		SessionID: "cs_test_abc",
		Currency:  "gbp",
		Total:     101,
	}
	orders.orders[archived.ID] = archived

	router := gin.New()
	router.GET("/v1/orders/:id", HandleGetOrder(repos, zap.NewNop()))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/orders/"+archived.ID.String(), nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/orders/"+uuid.NewString(), nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown order, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/orders/not-a-uuid", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed id, got %d", w.Code)
	}
}

func TestHandleVerifySession(t *testing.T) {
	gin.SetMode(gin.TestMode)

	stripeSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/checkout/sessions/cs_test_abc" {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error": {"message": "No such checkout session"}}`))
			return
		}
		w.Write([]byte(`{"id": "cs_test_abc", "status": "complete", "payment_status": "paid", "amount_total": 10100, "currency": "gbp"}`))
	}))
	defer stripeSrv.Close()

	cfg := &config.Config{Stripe: config.StripeConfig{
		SecretKey:  "sk_test_123",
		APIBaseURL: stripeSrv.URL,
	}}

	router := gin.New()
	router.GET("/v1/checkout/sessions/:id", HandleVerifySession(cfg, zap.NewNop()))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/checkout/sessions/cs_test_abc", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if body := w.Body.String(); !strings.Contains(body, `"payment_status":"paid"`) {
		t.Errorf("expected paid status in body, got %s", body)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/checkout/sessions/cs_unknown", nil))
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502 for provider failure, got %d", w.Code)
	}
}
