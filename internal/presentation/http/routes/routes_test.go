package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bots-hq/truegrow-kashmir-connect/internal/application/service"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/config"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/entity"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/infrastructure/cache"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/infrastructure/database"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/infrastructure/events"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/infrastructure/metrics"
	infraRepo "github.com/bots-hq/truegrow-kashmir-connect/internal/infrastructure/repository"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/presentation/http/handler"
	"github.com/bots-hq/truegrow-kashmir-connect/pkg/invoice"
	"github.com/bots-hq/truegrow-kashmir-connect/pkg/logging"
	"github.com/bots-hq/truegrow-kashmir-connect/pkg/printer"
	"github.com/bots-hq/truegrow-kashmir-connect/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
}

type testServer struct {
	router  *gin.Engine
	db      *gorm.DB
	metrics *metrics.Metrics
	printer *printer.Recorder
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.NewSQLiteDB(":memory:", nil)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	cfg := &config.Config{
		App:       config.AppConfig{Name: "truegrow-test"},
		RateLimit: config.RateLimitConfig{RequestsPerSecond: 1000, Burst: 1000},
	}
	m := metrics.New()
	jwt := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	rec := &printer.Recorder{}

	userRepo := infraRepo.NewUserRepository(db)
	saleRepo := infraRepo.NewSaleRepository(db)
	stockRepo := infraRepo.NewStockRepository(db)

	notifier := service.NewSaleNotifier(cache.NopCache{}, events.NopPublisher{}, m)
	saleService := service.NewSaleService(saleRepo, notifier)
	analyticsService := service.NewAnalyticsService(saleRepo, cache.NopCache{}, m, time.UTC)

	h := &Handlers{
		Auth:      handler.NewAuthHandler(service.NewAuthService(userRepo, jwt)),
		Billing:   handler.NewBillingHandler(service.NewBillingService(saleRepo, userRepo, notifier)),
		Sale:      handler.NewSaleHandler(saleService, service.NewInvoiceService(saleService, userRepo, invoice.New(invoice.WithCompression(false)), m), time.UTC),
		Analytics: handler.NewAnalyticsHandler(analyticsService, service.NewExportService(analyticsService)),
		Customer:  handler.NewCustomerHandler(service.NewCustomerService(saleRepo, userRepo), service.NewPaymentService(saleRepo)),
		Stock:     handler.NewStockHandler(service.NewStockService(stockRepo)),
		Note:      handler.NewNoteHandler(service.NewNoteService(infraRepo.NewNoteRepository(db))),
		Dashboard: handler.NewDashboardHandler(service.NewDashboardService(saleRepo, stockRepo, time.UTC)),
		Feed:      handler.NewFeedHandler(service.NewFeedService(infraRepo.NewPostRepository(db), userRepo)),
		Printer:   handler.NewPrinterHandler(service.NewPrinterService(rec, saleService, userRepo, m, "network", 32)),
	}

	router := Setup(h, &Deps{
		JWTManager:      jwt,
		Cfg:             cfg,
		IdempotencyRepo: infraRepo.NewIdempotencyRepository(db),
		Metrics:         m,
		Logger:          logging.New(io.Discard, logging.Options{Level: "error"}),
	})
	return &testServer{router: router, db: db, metrics: m, printer: rec}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

type account struct {
	token        string
	customerCode string
	redirect     string
}

func (s *testServer) signUp(t *testing.T, role, name, email string) account {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"full_name":     name,
		"email":         email,
		"password":      "kashmir-2024",
		"role":          role,
		"business_name": name + " Traders",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    email,
		"password": "kashmir-2024",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var data struct {
		AccessToken string `json:"access_token"`
		RedirectTo  string `json:"redirect_to"`
		User        struct {
			CustomerID string `json:"customer_id"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &data))
	return account{token: data.AccessToken, customerCode: data.User.CustomerID, redirect: data.RedirectTo}
}

func ureaSale(customerCode string) map[string]any {
	return map[string]any{
		"customer_id": strings.ToLower(customerCode),
		"items": []map[string]any{
			{"name": "Urea", "quantity": 2, "unit": "KGs", "price": "100", "category": "Fertilizer"},
		},
	}
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/health", "", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "truegrow-test")

	w = s.do(t, http.MethodGet, "/metrics", "", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "truegrow_http_requests_total")
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/v1/sales", "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/sales", "not-a-jwt", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginRedirectsByRole(t *testing.T) {
	s := newTestServer(t)
	owner := s.signUp(t, "shop_owner", "Bilal Wani", "bilal@agro.in")
	customer := s.signUp(t, "customer", "Ghulam Nabi", "ghulam@example.in")

	assert.Equal(t, "/dashboard/shop-owner", owner.redirect)
	assert.Equal(t, "/dashboard/customer", customer.redirect)
	assert.Regexp(t, `^CU\d{6}$`, customer.customerCode)
}

func TestRoleGateRedirects(t *testing.T) {
	s := newTestServer(t)
	owner := s.signUp(t, "shop_owner", "Bilal Wani", "bilal@agro.in")
	customer := s.signUp(t, "customer", "Ghulam Nabi", "ghulam@example.in")

	w := s.do(t, http.MethodGet, "/api/v1/sales", customer.token, nil, nil)
	require.Equal(t, http.StatusForbidden, w.Code)
	var hint struct {
		Redirect string `json:"redirect"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &hint))
	assert.Equal(t, "/dashboard/customer", hint.Redirect)

	w = s.do(t, http.MethodGet, "/api/v1/dashboard/customer", owner.token, nil, nil)
	require.Equal(t, http.StatusForbidden, w.Code)
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &hint))
	assert.Equal(t, "/dashboard/shop-owner", hint.Redirect)
}

func TestSubmitSale(t *testing.T) {
	s := newTestServer(t)
	owner := s.signUp(t, "shop_owner", "Bilal Wani", "bilal@agro.in")
	customer := s.signUp(t, "customer", "Ghulam Nabi", "ghulam@example.in")

	t.Run("requires idempotency key", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/v1/sales", owner.token, ureaSale(customer.customerCode), nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	key := map[string]string{"Idempotency-Key": "form-1"}
	w := s.do(t, http.MethodPost, "/api/v1/sales", owner.token, ureaSale(customer.customerCode), key)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var sale entity.Sale
	env := decode(t, w)
	require.NoError(t, json.Unmarshal(env.Data, &sale))
	assert.InDelta(t, 200, sale.Subtotal, 1e-9)
	assert.InDelta(t, 36, sale.TaxAmount, 1e-9)
	assert.InDelta(t, 236, sale.TotalAmount, 1e-9)
	assert.Equal(t, customer.customerCode, sale.CustomerID)
	assert.Contains(t, env.Message, sale.InvoiceNumber)

	t.Run("retry replays", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/v1/sales", owner.token, ureaSale(customer.customerCode), key)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "true", w.Header().Get("X-Idempotency-Replayed"))

		var n int64
		require.NoError(t, s.db.Model(&entity.Sale{}).Count(&n).Error)
		assert.EqualValues(t, 1, n)
	})

	t.Run("key reuse with another form", func(t *testing.T) {
		other := ureaSale(customer.customerCode)
		other["items"] = []map[string]any{{"name": "DAP", "quantity": 1, "price": 1350}}
		w := s.do(t, http.MethodPost, "/api/v1/sales", owner.token, other, key)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("unknown customer", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/v1/sales", owner.token, ureaSale("CU000000"), map[string]string{"Idempotency-Key": "form-2"})
		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Customer ID CU000000 not found", decode(t, w).Message)
	})

	t.Run("blank item name", func(t *testing.T) {
		form := map[string]any{
			"customer_id": customer.customerCode,
			"items":       []map[string]any{{"name": " ", "quantity": 1, "price": 10}},
		}
		w := s.do(t, http.MethodPost, "/api/v1/sales", owner.token, form, map[string]string{"Idempotency-Key": "form-3"})
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		env := decode(t, w)
		require.NotEmpty(t, env.Errors)
		assert.Equal(t, "items[0].name", env.Errors[0].Field)
	})

	t.Run("customer dashboard sees the sale", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/v1/dashboard/customer", customer.token, nil, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var overview struct {
			TotalPurchases float64 `json:"total_purchases"`
			PendingDues    float64 `json:"pending_dues"`
		}
		require.NoError(t, json.Unmarshal(decode(t, w).Data, &overview))
		assert.InDelta(t, 236, overview.TotalPurchases, 1e-9)
		assert.InDelta(t, 236, overview.PendingDues, 1e-9)
	})

	t.Run("invoice download", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/v1/sales/"+sale.ID.String()+"/invoice", owner.token, nil, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), "Invoice-"+sale.InvoiceNumber+".pdf")
		assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
		assert.Contains(t, w.Body.String(), "236.00")
	})

	t.Run("print receipt", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/v1/sales/"+sale.ID.String()+"/print", owner.token, nil, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Len(t, s.printer.Jobs(), 1)
	})

	t.Run("other shop cannot see it", func(t *testing.T) {
		rival := s.signUp(t, "shop_owner", "Imtiyaz Mir", "imtiyaz@seeds.in")
		w := s.do(t, http.MethodGet, "/api/v1/sales/"+sale.ID.String(), rival.token, nil, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestSaleLifecycle(t *testing.T) {
	s := newTestServer(t)
	owner := s.signUp(t, "shop_owner", "Bilal Wani", "bilal@agro.in")
	customer := s.signUp(t, "customer", "Ghulam Nabi", "ghulam@example.in")

	w := s.do(t, http.MethodPost, "/api/v1/sales", owner.token, ureaSale(customer.customerCode), map[string]string{"Idempotency-Key": "k1"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var sale entity.Sale
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &sale))
	base := "/api/v1/sales/" + sale.ID.String()

	w = s.do(t, http.MethodPut, base+"/payment-status", owner.token, map[string]string{"payment_status": "paid"}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodPut, base+"/payment-status", owner.token, map[string]string{"payment_status": "refunded"}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = s.do(t, http.MethodPut, base+"/rating", owner.token, map[string]any{"rating": 6}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = s.do(t, http.MethodPut, base+"/rating", owner.token, map[string]any{"rating": 4, "comment": "  "}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var rated entity.Sale
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &rated))
	require.NotNil(t, rated.CustomerRating)
	assert.Equal(t, 4, *rated.CustomerRating)
	assert.Nil(t, rated.RatingComment)

	w = s.do(t, http.MethodPut, base, owner.token, map[string]any{
		"items": []map[string]any{{"name": "Urea", "quantity": "3", "unit": "KGs", "price": 100}},
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var edited entity.Sale
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &edited))
	assert.InDelta(t, 354, edited.TotalAmount, 1e-9)

	w = s.do(t, http.MethodGet, "/api/v1/sales?status=paid&search="+strings.ToLower(sale.InvoiceNumber[:8]), owner.token, nil, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var page struct {
		Items []entity.Sale `json:"items"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &page))
	assert.Len(t, page.Items, 1)

	w = s.do(t, http.MethodGet, "/api/v1/sales/not-a-uuid", owner.token, nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReportingRoutes(t *testing.T) {
	s := newTestServer(t)
	owner := s.signUp(t, "shop_owner", "Bilal Wani", "bilal@agro.in")
	customer := s.signUp(t, "customer", "Ghulam Nabi", "ghulam@example.in")

	w := s.do(t, http.MethodPost, "/api/v1/sales", owner.token, ureaSale(customer.customerCode), map[string]string{"Idempotency-Key": "k1"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/v1/analytics", owner.token, nil, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var report struct {
		Daily   []json.RawMessage `json:"daily"`
		Summary struct {
			TotalRevenue float64 `json:"total_revenue"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &report))
	assert.Len(t, report.Daily, 7)

	w = s.do(t, http.MethodGet, "/api/v1/analytics/export", owner.token, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "spreadsheetml")

	w = s.do(t, http.MethodGet, "/api/v1/customers", owner.token, nil, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/v1/customers/"+customer.customerCode, owner.token, nil, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/v1/payments?status=pending", owner.token, nil, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/v1/dashboard/shop-owner", owner.token, nil, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestInventoryAndFeedRoutes(t *testing.T) {
	s := newTestServer(t)
	owner := s.signUp(t, "shop_owner", "Bilal Wani", "bilal@agro.in")
	customer := s.signUp(t, "customer", "Ghulam Nabi", "ghulam@example.in")

	w := s.do(t, http.MethodPost, "/api/v1/stock", owner.token, map[string]any{
		"name": "DAP", "category": "Fertilizer", "unit": "Bags", "current_stock": 2, "min_stock": 10, "price": 1350,
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/v1/stock/low-stock", owner.token, nil, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "DAP")

	w = s.do(t, http.MethodPost, "/api/v1/notes", owner.token, map[string]any{"title": "Order more DAP", "tags": []string{"Stock"}}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/v1/notes?search=dap", owner.token, nil, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Order more DAP")

	w = s.do(t, http.MethodPost, "/api/v1/feed", customer.token, map[string]any{"content": "Which spray for apple scab?", "tags": []string{"orchard"}}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var post entity.Post
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &post))

	w = s.do(t, http.MethodPost, "/api/v1/feed/"+post.ID.String()+"/like", owner.token, nil, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/v1/feed?tag=orchard", owner.token, nil, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "apple scab")

	w = s.do(t, http.MethodGet, "/api/v1/stock", customer.token, nil, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
