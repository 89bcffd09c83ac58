package service

import (
	"context"

	"github.com/bots-hq/truegrow-kashmir-connect/internal/application/analytics"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/repository"
	"github.com/bots-hq/truegrow-kashmir-connect/pkg/apperror"
	"github.com/bots-hq/truegrow-kashmir-connect/pkg/utils"
)

// CustomerService reports on the customers a shop owner has billed
type CustomerService struct {
	saleRepo repository.SaleRepository
	userRepo repository.UserRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(saleRepo repository.SaleRepository, userRepo repository.UserRepository) *CustomerService {
	return &CustomerService{saleRepo: saleRepo, userRepo: userRepo}
}

// ListCustomers summarises every customer code the shop owner has billed,
// biggest spender first
func (s *CustomerService) ListCustomers(ctx context.Context) ([]analytics.CustomerSummary, error) {
	sales, err := s.saleRepo.ListAll(ctx, nil)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var codes []string
	for _, sale := range sales {
		if _, ok := seen[sale.CustomerID]; ok {
			continue
		}
		seen[sale.CustomerID] = struct{}{}
		codes = append(codes, sale.CustomerID)
	}

	profiles, err := s.userRepo.GetByCustomerCodes(ctx, codes)
	if err != nil {
		return nil, err
	}
	return analytics.CustomerSummaries(sales, profiles), nil
}

// GetCustomerDetails returns the profile and the shop owner's sales for one
// customer code
func (s *CustomerService) GetCustomerDetails(ctx context.Context, code string) (*analytics.CustomerDetails, error) {
	code = utils.NormalizeCustomerCode(code)
	if code == "" {
		return nil, fieldError("customer_id", "customer_id is required")
	}

	profile, err := s.userRepo.GetByCustomerCode(ctx, code)
	if err != nil {
		return nil, err
	}
	sales, err := s.saleRepo.ListForCustomer(ctx, code)
	if err != nil {
		return nil, err
	}
	if profile == nil && len(sales) == 0 {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return analytics.BuildCustomerDetails(profile, sales), nil
}
