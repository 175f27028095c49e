package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/RosarioAnthonyWaya/preyesbaskets/internal/cart"
	"github.com/RosarioAnthonyWaya/preyesbaskets/internal/catalog"
	"github.com/RosarioAnthonyWaya/preyesbaskets/internal/domain"
	"github.com/RosarioAnthonyWaya/preyesbaskets/internal/repository"
)

func newCartRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cat, err := catalog.Parse([]byte(handlerCatalog))
	if err != nil {
		t.Fatalf("failed to parse catalog: %v", err)
	}
	repos := &repository.Repositories{Cart: cart.NewMemoryStore()}
	logger := zap.NewNop()

	router := gin.New()
	router.GET("/v1/cart/:key", HandleGetCart(repos, logger))
	router.DELETE("/v1/cart/:key", HandleClearCart(repos, logger))
	router.POST("/v1/cart/:key/items", HandleAddCartItem(cat, repos, logger))
	router.PATCH("/v1/cart/:key/items", HandleUpdateCartItem(repos, logger))
	router.DELETE("/v1/cart/:key/items", HandleRemoveCartItem(repos, logger))
	return router
}

func doJSON(router *gin.Engine, method, path string, payload interface{}) *httptest.ResponseRecorder {
	var body *bytes.Reader
	if payload != nil {
		data, _ := json.Marshal(payload)
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeCart(t *testing.T, w *httptest.ResponseRecorder) CartResponse {
	t.Helper()
	var resp CartResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode cart response: %v", err)
	}
	return resp
}

func TestCartEndpoints_AddPricesFromCatalog(t *testing.T) {
	router := newCartRouter(t)

	w := doJSON(router, http.MethodPost, "/v1/cart/k1/items", AddItemRequest{
		ID:       "box-a",
		Quantity: 1,
		Options:  domain.SelectedOptions{"package": {"deluxe"}},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	resp := decodeCart(t, w)
	if len(resp.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(resp.Lines))
	}
	if resp.Lines[0].UnitPrice != 89 {
		t.Errorf("expected catalog-resolved price 89, got %v", resp.Lines[0].UnitPrice)
	}
	if resp.Lines[0].Name != "Signature Gift Box" {
		t.Errorf("expected catalog name, got %q", resp.Lines[0].Name)
	}
	if resp.Subtotal != 89 {
		t.Errorf("expected subtotal 89, got %v", resp.Subtotal)
	}
}

func TestCartEndpoints_AddMergesEqualSelections(t *testing.T) {
	router := newCartRouter(t)

	item := AddItemRequest{ID: "box-a", Quantity: 1, Options: domain.SelectedOptions{"package": {"classic"}}}
	doJSON(router, http.MethodPost, "/v1/cart/k1/items", item)
	item.Quantity = 2
	w := doJSON(router, http.MethodPost, "/v1/cart/k1/items", item)

	resp := decodeCart(t, w)
	if len(resp.Lines) != 1 {
		t.Fatalf("expected merged single line, got %d", len(resp.Lines))
	}
	if resp.Lines[0].Quantity != 3 {
		t.Errorf("expected quantity 3, got %d", resp.Lines[0].Quantity)
	}
}

func TestCartEndpoints_AddMissingSelection(t *testing.T) {
	router := newCartRouter(t)

	w := doJSON(router, http.MethodPost, "/v1/cart/k1/items", AddItemRequest{ID: "box-a", Quantity: 1})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", w.Code, w.Body.String())
	}

	var resp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["option_group"] != "package" {
		t.Errorf("expected offending option group, got %v", resp["option_group"])
	}
}

func TestCartEndpoints_AddUnknownProduct(t *testing.T) {
	router := newCartRouter(t)

	w := doJSON(router, http.MethodPost, "/v1/cart/k1/items", AddItemRequest{ID: "vanished", Quantity: 1})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCartEndpoints_UpdateAndRemove(t *testing.T) {
	router := newCartRouter(t)

	doJSON(router, http.MethodPost, "/v1/cart/k1/items", AddItemRequest{ID: "holiday-cheer", Quantity: 2})

	// Exact quantity set
	w := doJSON(router, http.MethodPatch, "/v1/cart/k1/items", UpdateItemRequest{ID: "holiday-cheer", Quantity: 5})
	resp := decodeCart(t, w)
	if resp.TotalQuantity != 5 {
		t.Errorf("expected quantity 5, got %d", resp.TotalQuantity)
	}

	// Zero removes the line
	w = doJSON(router, http.MethodPatch, "/v1/cart/k1/items", UpdateItemRequest{ID: "holiday-cheer", Quantity: 0})
	resp = decodeCart(t, w)
	if len(resp.Lines) != 0 {
		t.Errorf("expected empty cart after zero quantity, got %d lines", len(resp.Lines))
	}

	// Removing an absent line is a no-op
	w = doJSON(router, http.MethodDelete, "/v1/cart/k1/items", RemoveItemRequest{ID: "holiday-cheer"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestCartEndpoints_GetMissingCartIsEmpty(t *testing.T) {
	router := newCartRouter(t)

	w := doJSON(router, http.MethodGet, "/v1/cart/never-seen", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	resp := decodeCart(t, w)
	if len(resp.Lines) != 0 || resp.Subtotal != 0 {
		t.Errorf("expected empty cart, got %+v", resp)
	}
}

func TestCartEndpoints_Clear(t *testing.T) {
	router := newCartRouter(t)

	doJSON(router, http.MethodPost, "/v1/cart/k1/items", AddItemRequest{ID: "holiday-cheer", Quantity: 2})
	w := doJSON(router, http.MethodDelete, "/v1/cart/k1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	w = doJSON(router, http.MethodGet, "/v1/cart/k1", nil)
	resp := decodeCart(t, w)
	if len(resp.Lines) != 0 {
		t.Errorf("expected cleared cart, got %d lines", len(resp.Lines))
	}
}

func TestCartEndpoints_CartsAreIsolatedByKey(t *testing.T) {
	router := newCartRouter(t)

	doJSON(router, http.MethodPost, "/v1/cart/alice/items", AddItemRequest{ID: "holiday-cheer", Quantity: 1})
	w := doJSON(router, http.MethodGet, "/v1/cart/bob", nil)
	resp := decodeCart(t, w)
	if len(resp.Lines) != 0 {
		t.Errorf("expected bob's cart to be empty, got %d lines", len(resp.Lines))
	}
}
