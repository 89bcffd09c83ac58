package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bots-hq/truegrow-kashmir-connect/internal/application/analytics"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/entity"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/enum"
	domainRepo "github.com/bots-hq/truegrow-kashmir-connect/internal/domain/repository"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/infrastructure/cache"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/infrastructure/database"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/infrastructure/events"
	infraRepo "github.com/bots-hq/truegrow-kashmir-connect/internal/infrastructure/repository"
	"github.com/bots-hq/truegrow-kashmir-connect/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	db        *gorm.DB
	sales     domainRepo.SaleRepository
	users     domainRepo.UserRepository
	stock     domainRepo.StockRepository
	cache     *memoryCache
	publisher *recordingPublisher
	notifier  *SaleNotifier
	owner     *entity.User
	customer  *entity.User
	ctx       context.Context
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.NewSQLiteDB(":memory:", nil)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	env := &testEnv{
		db:        db,
		sales:     infraRepo.NewSaleRepository(db),
		users:     infraRepo.NewUserRepository(db),
		stock:     infraRepo.NewStockRepository(db),
		cache:     newMemoryCache(),
		publisher: &recordingPublisher{},
	}
	env.notifier = NewSaleNotifier(env.cache, env.publisher, nil)

	business := "Wani Agro Store"
	env.owner = env.createUser(t, enum.UserRoleShopOwner, "Bilal Wani", &business)
	env.customer = env.createUser(t, enum.UserRoleCustomer, "Ghulam Nabi", nil)
	env.ctx = infraRepo.WithShopOwner(context.Background(), env.owner.ID)
	return env
}

func (e *testEnv) createUser(t *testing.T, role enum.UserRole, name string, business *string) *entity.User {
	t.Helper()
	u := &entity.User{
		Role:         role,
		FullName:     name,
		Email:        uuid.NewString() + "@example.in",
		Phone:        "+91 94190 00000",
		BusinessName: business,
	}
	require.NoError(t, e.users.Create(context.Background(), u))
	return u
}

func (e *testEnv) billing() *BillingService {
	return NewBillingService(e.sales, e.users, e.notifier)
}

func (e *testEnv) submitUrea(t *testing.T) *entity.Sale {
	t.Helper()
	sale, err := e.billing().SubmitSale(e.ctx, &SaleInput{
		CustomerID: e.customer.CustomerCode,
		Items:      []LineInput{{Name: "Urea", Quantity: "2", Unit: "KGs", Price: "100", Category: "Fertilizer"}},
	})
	require.NoError(t, err)
	return sale
}

func (e *testEnv) countSales(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(&entity.Sale{}).Count(&n).Error)
	return n
}

// requireAppError asserts err is an AppError with the given status
func requireAppError(t *testing.T, err error, code int) *apperror.AppError {
	t.Helper()
	require.Error(t, err)
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	require.Equal(t, code, appErr.Code, appErr.Message)
	return appErr
}

type memoryCache struct {
	mu          sync.Mutex
	reports     map[uuid.UUID]*analytics.Report
	generations map[uuid.UUID]int64
	deletes     int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{
		reports:     make(map[uuid.UUID]*analytics.Report),
		generations: make(map[uuid.UUID]int64),
	}
}

func (c *memoryCache) Generation(_ context.Context, ownerID uuid.UUID) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generations[ownerID], nil
}

func (c *memoryCache) Get(_ context.Context, ownerID uuid.UUID) (*analytics.Report, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.reports[ownerID]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return r, nil
}

func (c *memoryCache) Set(_ context.Context, ownerID uuid.UUID, generation int64, report *analytics.Report) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generations[ownerID] != generation {
		return cache.ErrStaleReport
	}
	c.reports[ownerID] = report
	return nil
}

func (c *memoryCache) Delete(_ context.Context, ownerID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.reports, ownerID)
	c.generations[ownerID]++
	c.deletes++
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.SaleEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event events.SaleEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

// failingSaleRepo fails writes while delegating reads
type failingSaleRepo struct {
	domainRepo.SaleRepository
}

func (failingSaleRepo) Create(context.Context, *entity.Sale) error {
	return errors.New("connection reset by peer")
}

// countingSaleRepo counts full-history fetches
type countingSaleRepo struct {
	domainRepo.SaleRepository
	mu    sync.Mutex
	calls int
}

func (r *countingSaleRepo) ListAll(ctx context.Context, since *time.Time) ([]entity.Sale, error) {
	r.mu.Lock()
	r.calls++
	r.mu.Unlock()
	return r.SaleRepository.ListAll(ctx, since)
}

// interleavingSaleRepo runs afterList once, right after the first full-history
// fetch returns, to simulate a sale committed while a report is being built
type interleavingSaleRepo struct {
	domainRepo.SaleRepository
	once      sync.Once
	afterList func()
}

func (r *interleavingSaleRepo) ListAll(ctx context.Context, since *time.Time) ([]entity.Sale, error) {
	sales, err := r.SaleRepository.ListAll(ctx, since)
	r.once.Do(r.afterList)
	return sales, err
}

func (r *countingSaleRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}
