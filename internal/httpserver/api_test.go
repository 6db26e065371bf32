package httpserver_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lemongrove/internal/app"
	"lemongrove/internal/config"
	"lemongrove/internal/httpserver"
	"lemongrove/internal/snapshot"
)

type apiClient struct {
	t       *testing.T
	handler http.Handler
	token   string
}

func newAPI(t *testing.T) *apiClient {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := config.Config{ShippingFee: decimal.NewFromInt(1000), ChangeTTL: time.Minute}
	svcs := app.New(snapshot.NewMemory(), cfg, nil)
	srv, err := httpserver.New(":0", nil, snapshot.NewMemory(), svcs.HTTPDeps(), []string{"http://localhost:3000"})
	require.NoError(t, err)
	return &apiClient{t: t, handler: srv.Handler()}
}

func (a *apiClient) do(method, path string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch v := body.(type) {
		case string:
			buf.WriteString(v)
		default:
			require.NoError(a.t, json.NewEncoder(&buf).Encode(v))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set(httpserver.SessionHeader, a.token)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func (a *apiClient) startSession() {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/api/sessions", nil)
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	var out struct {
		Token     string `json:"token"`
		SessionID string `json:"sessionId"`
	}
	require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.NotEmpty(a.t, out.Token)
	a.token = out.Token
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

var checkoutBody = map[string]any{
	"name":          "Ayesha Khan",
	"email":         "ayesha@example.com",
	"phone":         "0300-1234567",
	"address":       "12 Canal Road, Lahore",
	"paymentMethod": "cod",
	"discountCode":  "LEMON10",
}

func TestHealthAndReady(t *testing.T) {
	api := newAPI(t)
	assert.Equal(t, http.StatusOK, api.do(http.MethodGet, "/healthz", nil).Code)
	assert.Equal(t, http.StatusOK, api.do(http.MethodGet, "/readyz", nil).Code)
}

func TestProducts(t *testing.T) {
	api := newAPI(t)

	rec := api.do(http.MethodGet, "/api/products?q=gifts", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 2, decode(t, rec)["count"])

	rec = api.do(http.MethodGet, "/api/products/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Organic Lemons (1 kg)", body["name"])
	assert.EqualValues(t, 998, body["price"])

	assert.Equal(t, http.StatusNotFound, api.do(http.MethodGet, "/api/products/99", nil).Code)
	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodGet, "/api/products/abc", nil).Code)
}

func TestDiscounts(t *testing.T) {
	api := newAPI(t)
	rec := api.do(http.MethodGet, "/api/discounts/fresh20", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 20, decode(t, rec)["percent"])

	rec = api.do(http.MethodGet, "/api/discounts/BOGUS", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decode(t, rec)
	assert.EqualValues(t, 404, body["statusCode"])
}

func TestSessionRequired(t *testing.T) {
	api := newAPI(t)
	rec := api.do(http.MethodGet, "/api/cart", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	api.token = "forged"
	rec = api.do(http.MethodGet, "/api/cart", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCartFlowAndCheckout(t *testing.T) {
	api := newAPI(t)
	api.startSession()

	rec := api.do(http.MethodPost, "/api/checkout", checkoutBody)
	require.Equal(t, http.StatusBadRequest, rec.Code, "empty cart must be refused")

	for i := 0; i < 2; i++ {
		rec = api.do(http.MethodPost, "/api/cart/items", map[string]any{"productId": 1})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}
	cart := decode(t, rec)
	assert.EqualValues(t, 1996, cart["subtotal"])
	assert.EqualValues(t, 2, cart["itemCount"])

	rec = api.do(http.MethodPatch, "/api/cart/items/1", map[string]any{"delta": 100})
	assert.Equal(t, http.StatusConflict, rec.Code)
	rec = api.do(http.MethodPatch, "/api/cart/items/1", map[string]any{"delta": 0})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(http.MethodPost, "/api/checkout", checkoutBody)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	res := decode(t, rec)
	order := res["order"].(map[string]any)
	assert.EqualValues(t, 2796.4, order["total"])
	assert.EqualValues(t, 199.6, order["discount"])
	assert.Equal(t, "pending", order["status"].(map[string]any)["payment"])
	id := order["id"].(string)

	rec = api.do(http.MethodGet, "/api/cart", nil)
	assert.EqualValues(t, 0, decode(t, rec)["subtotal"])

	rec = api.do(http.MethodGet, "/api/products/1", nil)
	assert.EqualValues(t, 13, decode(t, rec)["stock"])

	api.token = ""
	rec = api.do(http.MethodGet, "/api/orders/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestCheckout_RejectsUnknownFields(t *testing.T) {
	api := newAPI(t)
	api.startSession()
	require.Equal(t, http.StatusOK, api.do(http.MethodPost, "/api/cart/items", map[string]any{"productId": 1}).Code)

	rec := api.do(http.MethodPost, "/api/checkout", `{"name":"x","coupon":"LEMON10"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckout_ValidationErrorsListed(t *testing.T) {
	api := newAPI(t)
	api.startSession()
	require.Equal(t, http.StatusOK, api.do(http.MethodPost, "/api/cart/items", map[string]any{"productId": 1}).Code)

	rec := api.do(http.MethodPost, "/api/checkout", map[string]any{"name": "Ayesha", "paymentMethod": "visa"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.Len(t, body["errors"], 4)
}

func TestIdentityAndMyOrders(t *testing.T) {
	api := newAPI(t)
	api.startSession()

	assert.Equal(t, http.StatusNotFound, api.do(http.MethodGet, "/api/me", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, api.do(http.MethodGet, "/api/me/orders", nil).Code)

	rec := api.do(http.MethodPost, "/api/me/login", map[string]any{"email": "zara@lemongrove.pk", "password": "x"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "zara", decode(t, rec)["name"])

	require.Equal(t, http.StatusOK, api.do(http.MethodPost, "/api/cart/items", map[string]any{"productId": 2}).Code)
	require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/api/checkout", checkoutBody).Code)

	rec = api.do(http.MethodGet, "/api/me/orders", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, decode(t, rec)["count"])

	assert.Equal(t, http.StatusNoContent, api.do(http.MethodPost, "/api/me/logout", nil).Code)
	assert.Equal(t, http.StatusNotFound, api.do(http.MethodGet, "/api/me", nil).Code)
}

func TestWishlist(t *testing.T) {
	api := newAPI(t)
	api.startSession()

	rec := api.do(http.MethodPost, "/api/wishlist/3/toggle", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode(t, rec)["wishlisted"])

	rec = api.do(http.MethodGet, "/api/wishlist", nil)
	assert.Equal(t, []any{float64(3)}, decode(t, rec)["productIds"])
}

func TestAdminFlow(t *testing.T) {
	api := newAPI(t)
	api.startSession()
	require.Equal(t, http.StatusOK, api.do(http.MethodPost, "/api/cart/items", map[string]any{"productId": 1}).Code)
	rec := api.do(http.MethodPost, "/api/checkout", checkoutBody)
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decode(t, rec)["order"].(map[string]any)["id"].(string)

	rec = api.do(http.MethodPatch, "/api/admin/orders/"+id+"/status", map[string]any{"field": "delivery", "value": "delivered"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	status := decode(t, rec)["status"].(map[string]any)
	assert.Equal(t, "delivered", status["delivery"])
	assert.Equal(t, "pending", status["processing"])

	rec = api.do(http.MethodPatch, "/api/admin/orders/"+id+"/status", map[string]any{"field": "delivery", "value": "lost"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = api.do(http.MethodPatch, "/api/admin/orders/ORD-000000-0/status", map[string]any{"field": "delivery", "value": "shipped"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(http.MethodGet, "/api/admin/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decode(t, rec)
	assert.EqualValues(t, 1, stats["orders"])
	assert.EqualValues(t, 9, stats["products"])

	rec = api.do(http.MethodPost, "/api/admin/products/4/rename", map[string]any{"name": "Citrus Crate"})
	require.Equal(t, http.StatusAccepted, rec.Code)
	token := decode(t, rec)["token"].(string)
	rec = api.do(http.MethodGet, "/api/products/4", nil)
	assert.Equal(t, "Lemon Gift Crate", decode(t, rec)["name"])

	require.Equal(t, http.StatusOK, api.do(http.MethodPost, "/api/admin/changes/"+token+"/confirm", nil).Code)
	rec = api.do(http.MethodGet, "/api/products/4", nil)
	assert.Equal(t, "Citrus Crate", decode(t, rec)["name"])

	rec = api.do(http.MethodPost, "/api/admin/products/4/delete", nil)
	require.Equal(t, http.StatusAccepted, rec.Code)
	token = decode(t, rec)["token"].(string)
	rec = api.do(http.MethodPost, "/api/admin/changes/"+token+"/cancel", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decode(t, rec)["applied"])
	assert.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/products/4", nil).Code)
}
