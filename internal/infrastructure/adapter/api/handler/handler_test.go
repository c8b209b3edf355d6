package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/peer-market/internal/domain/entity"
	"github.com/amirhossein-jamali/peer-market/internal/domain/usecase/catalog"
	"github.com/amirhossein-jamali/peer-market/internal/domain/usecase/market"
	"github.com/amirhossein-jamali/peer-market/internal/domain/usecase/registry"
	"github.com/amirhossein-jamali/peer-market/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/peer-market/internal/infrastructure/adapter/api/routes"
	"github.com/amirhossein-jamali/peer-market/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/peer-market/internal/infrastructure/adapter/metrics"
	"github.com/amirhossein-jamali/peer-market/internal/infrastructure/adapter/store/memory"
	timeprovider "github.com/amirhossein-jamali/peer-market/internal/infrastructure/adapter/time"
)

type testServer struct {
	router *gin.Engine
	store  *memory.Store
}

func marketUsers() []entity.User {
	return []entity.User{
		{
			Username:     "alice",
			Name:         "Alice",
			Balance:      100_00,
			Transactions: []entity.Transaction{},
			Items: []entity.Item{{
				ID:         1,
				Price:      30_00,
				Attributes: map[string]json.RawMessage{"name": json.RawMessage(`"Lamp"`)},
			}},
		},
		{
			Username:     "bob",
			Name:         "Bob",
			Balance:      20_00,
			Transactions: []entity.Transaction{},
			Items:        []entity.Item{},
		},
		{
			Username:     "carol",
			Name:         "Carol",
			Balance:      500_00,
			Transactions: []entity.Transaction{},
			Items:        []entity.Item{},
		},
	}
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.NewNoopLogger()
	clock := timeprovider.NewRealTimeProvider()
	prom := metrics.NewPrometheus(false)
	store := memory.NewStore(marketUsers()...)

	reg := registry.NewRegistry(store, log)
	cat := catalog.NewCatalog(reg, log)
	svc := market.NewMarketService(store, reg, clock, log, prom)
	t.Cleanup(svc.Shutdown)
	validator := market.NewRequestValidator()

	router := gin.New()
	routes.SetupMiddlewares(router, log, clock, prom)
	routes.SetupRoutes(router, routes.Handlers{
		User:    handler.NewUserHandler(reg, cat, svc, validator, log),
		Market:  handler.NewMarketHandler(svc, validator, log),
		Health:  handler.NewHealthHandler(reg, log),
		Metrics: prom.Handler(),
	})

	return &testServer{router: router, store: store}
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) get(path string) *httptest.ResponseRecorder {
	return s.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (s *testServer) postJSON(path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return s.do(req)
}

func (s *testServer) postForm(path string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return s.do(req)
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) float64 {
	t.Helper()
	code, ok := decode(t, rec)["code"].(float64)
	require.True(t, ok, rec.Body.String())
	return code
}

func TestHealthHandler(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.get("/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, handler.ServiceName, decode(t, rec)["service"])

	rec = srv.get("/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode(t, rec)["status"])
}

func TestMetricsRoute(t *testing.T) {
	srv := newTestServer(t)
	srv.get("/healthz")

	rec := srv.get("/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "peer_market_http_requests_total")
}

func TestUserHandler_GetUserPage(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.get("/user/bob")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	user := body["user"].(map[string]any)
	assert.Equal(t, "bob", user["user_name"])
	assert.Equal(t, 20.0, user["balance"])

	others := body["usersItems"].([]any)
	require.Len(t, others, 2)
	assert.Equal(t, "alice", others[0].(map[string]any)["user_name"])
	assert.Equal(t, "carol", others[1].(map[string]any)["user_name"])

	items := others[0].(map[string]any)["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "Lamp", items[0].(map[string]any)["name"])
}

func TestUserHandler_GetUserPage_UnknownUser(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.get("/user/nobody")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 4040.0, errorCode(t, rec))
}

func TestUserHandler_ListUserItems(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.get("/user/alice/items")
	require.Equal(t, http.StatusOK, rec.Code)
	items := decode(t, rec)["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, 1.0, items[0].(map[string]any)["id"])
	assert.Equal(t, 30.0, items[0].(map[string]any)["price"])

	rec = srv.get("/user/nobody/items")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUserHandler_Login(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.postForm("/login", url.Values{"user_name": {"alice"}})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice", decode(t, rec)["user_name"])

	rec = srv.postForm("/login", url.Values{"user_name": {"ghost"}})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = srv.postForm("/login", url.Values{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 4003.0, errorCode(t, rec))
}

func TestUserHandler_Register(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   float64
		wantBal    float64
	}{
		{
			name:       "numeric balance",
			body:       `{"name":"Dave","user_name":"dave","balance":25.5}`,
			wantStatus: http.StatusCreated,
			wantBal:    25.5,
		},
		{
			name:       "string balance",
			body:       `{"name":"Dave","user_name":"dave","balance":"0"}`,
			wantStatus: http.StatusCreated,
			wantBal:    0,
		},
		{
			name:       "default balance",
			body:       `{"name":"Dave","user_name":"dave"}`,
			wantStatus: http.StatusCreated,
			wantBal:    100,
		},
		{
			name:       "duplicate username",
			body:       `{"name":"Other Alice","user_name":"alice"}`,
			wantStatus: http.StatusConflict,
			wantCode:   4090,
		},
		{
			name:       "negative balance",
			body:       `{"name":"Dave","user_name":"dave","balance":-1}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   4002,
		},
		{
			name:       "too many decimals",
			body:       `{"name":"Dave","user_name":"dave","balance":"1.234"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   4002,
		},
		{
			name:       "blank name",
			body:       `{"name":"   ","user_name":"dave"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   4003,
		},
		{
			name:       "missing username",
			body:       `{"name":"Dave"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   4003,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t)

			rec := srv.postJSON("/register", tt.body)
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())

			if tt.wantStatus != http.StatusCreated {
				assert.Equal(t, tt.wantCode, errorCode(t, rec))
				return
			}

			body := decode(t, rec)
			assert.Equal(t, "dave", body["user_name"])
			assert.Equal(t, tt.wantBal, body["balance"])
			assert.Empty(t, body["items"])
		})
	}
}

func TestUserHandler_Register_Form(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.postForm("/register", url.Values{
		"name":      {"Erin"},
		"user_name": {"erin"},
		"balance":   {"12.50"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, 12.5, decode(t, rec)["balance"])

	rec = srv.get("/user/erin")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMarketHandler_Buy(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.postForm("/buy", url.Values{"user_name": {"carol"}, "id": {"1"}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	txn := body["transaction"].(map[string]any)
	assert.Equal(t, "alice", txn["seller"])
	assert.Equal(t, "carol", txn["buyer"])
	assert.Equal(t, 30.0, txn["price"])
	assert.Equal(t, 1.0, txn["itemId"])

	users, err := srv.store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entity.Money(130_00), users[0].Balance)
	assert.Empty(t, users[0].Items)
	assert.Equal(t, entity.Money(470_00), users[2].Balance)
	require.Len(t, users[2].Items, 1)
	require.Len(t, users[2].Transactions, 1)
}

func TestMarketHandler_Buy_JSON(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.postJSON("/buy", `{"user_name":"carol","id":1}`)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestMarketHandler_Buy_Rejected(t *testing.T) {
	tests := []struct {
		name       string
		buyer      string
		id         string
		wantStatus int
		wantCode   float64
	}{
		{name: "insufficient funds", buyer: "bob", id: "1", wantStatus: http.StatusPaymentRequired, wantCode: 4001},
		{name: "self purchase", buyer: "alice", id: "1", wantStatus: http.StatusConflict, wantCode: 4091},
		{name: "unknown buyer", buyer: "ghost", id: "1", wantStatus: http.StatusNotFound, wantCode: 4041},
		{name: "unknown item", buyer: "carol", id: "99", wantStatus: http.StatusNotFound, wantCode: 4042},
		{name: "non numeric id", buyer: "carol", id: "abc", wantStatus: http.StatusBadRequest, wantCode: 4003},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t)

			rec := srv.postForm("/buy", url.Values{"user_name": {tt.buyer}, "id": {tt.id}})
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			assert.Equal(t, tt.wantCode, errorCode(t, rec))

			users, err := srv.store.Load(context.Background())
			require.NoError(t, err)
			assert.Equal(t, marketUsers(), users)
		})
	}
}

func TestMarketHandler_Buy_SellerBalanceLimit(t *testing.T) {
	srv := newTestServer(t)

	users := marketUsers()
	users[0].Balance = entity.MaxAmount
	require.NoError(t, srv.store.Save(context.Background(), users))

	rec := srv.postForm("/buy", url.Values{"user_name": {"carol"}, "id": {"1"}})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
	assert.Equal(t, 4092.0, errorCode(t, rec))

	stored, err := srv.store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, users, stored)
}

func TestMarketHandler_ListItem(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.postJSON("/user/bob/items", `{"price":"12.50","attributes":{"name":"Chair","tags":["wood"]}}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	body := decode(t, rec)
	assert.Equal(t, 2.0, body["id"])
	assert.Equal(t, 12.5, body["price"])
	assert.Equal(t, "Chair", body["name"])
	assert.Equal(t, []any{"wood"}, body["tags"])

	rec = srv.postForm("/user/bob/items", url.Values{"price": {"4"}, "name": {"Mug"}})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body = decode(t, rec)
	assert.Equal(t, 3.0, body["id"])
	assert.Equal(t, "Mug", body["name"])

	rec = srv.get("/user/bob/items")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["items"], 2)
}

func TestMarketHandler_ListItem_Rejected(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.postJSON("/user/ghost/items", `{"price":5}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 4040.0, errorCode(t, rec))

	rec = srv.postJSON("/user/bob/items", `{"price":"-5"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 4002.0, errorCode(t, rec))

	rec = srv.postJSON("/user/bob/items", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRequestIDIsEchoed(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "req-123")
	rec := srv.do(req)
	assert.Equal(t, "req-123", rec.Header().Get("X-Request-ID"))

	rec = srv.get("/healthz")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
