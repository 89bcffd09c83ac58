package service

import (
	"context"
	"time"

	"github.com/bots-hq/truegrow-kashmir-connect/internal/application/analytics"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/repository"
	"github.com/bots-hq/truegrow-kashmir-connect/pkg/utils"
)

// DashboardService provides the per-role dashboard figures
type DashboardService struct {
	saleRepo  repository.SaleRepository
	stockRepo repository.StockRepository
	loc       *time.Location
	now       func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	saleRepo repository.SaleRepository,
	stockRepo repository.StockRepository,
	loc *time.Location,
) *DashboardService {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardService{
		saleRepo:  saleRepo,
		stockRepo: stockRepo,
		loc:       loc,
		now:       time.Now,
	}
}

// ShopOwnerDashboard returns the cards of the shop owner in ctx
func (s *DashboardService) ShopOwnerDashboard(ctx context.Context) (*analytics.ShopOwnerOverview, error) {
	sales, err := s.saleRepo.ListAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	lowStock, err := s.stockRepo.CountLowStock(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.BuildShopOwnerOverview(sales, int(lowStock)), nil
}

// CustomerDashboard returns the cards of a customer across every shop that
// has billed their code
func (s *DashboardService) CustomerDashboard(ctx context.Context, customerCode string) (*analytics.CustomerOverview, error) {
	code := utils.NormalizeCustomerCode(customerCode)
	if code == "" {
		return nil, fieldError("customer_id", "customer_id is required")
	}
	sales, err := s.saleRepo.ListByCustomer(ctx, code)
	if err != nil {
		return nil, err
	}
	return analytics.BuildCustomerOverview(sales, s.now().In(s.loc)), nil
}
