package service

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/billing"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/entity"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/enum"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/repository"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/infrastructure/events"
	infraRepo "github.com/bots-hq/truegrow-kashmir-connect/internal/infrastructure/repository"
	"github.com/bots-hq/truegrow-kashmir-connect/pkg/apperror"
	"github.com/bots-hq/truegrow-kashmir-connect/pkg/utils"
)

// BillingService turns billing form input into stored sales
type BillingService struct {
	saleRepo repository.SaleRepository
	userRepo repository.UserRepository
	notifier *SaleNotifier
	now      func() time.Time
}

// NewBillingService creates a new billing service
func NewBillingService(
	saleRepo repository.SaleRepository,
	userRepo repository.UserRepository,
	notifier *SaleNotifier,
) *BillingService {
	return &BillingService{
		saleRepo: saleRepo,
		userRepo: userRepo,
		notifier: notifier,
		now:      time.Now,
	}
}

// SaleInput is the billing form as submitted
type SaleInput struct {
	CustomerID string
	Items      []LineInput
}

// Quote is a priced billing form that has not been saved
type Quote struct {
	Items []entity.LineItem `json:"items"`
	billing.Totals
	TaxLabel string `json:"tax_label"`
}

// Preview prices the form without saving anything
func (s *BillingService) Preview(_ context.Context, input *SaleInput) (*Quote, error) {
	items, err := buildLines(input.Items)
	if err != nil {
		return nil, err
	}
	return &Quote{
		Items:    items,
		Totals:   billing.CalculateTotals(items),
		TaxLabel: billing.TaxLabel,
	}, nil
}

// SubmitSale validates the form, resolves the customer code and stores the
// sale under the shop owner in ctx. Nothing is written when validation or the
// customer lookup fails.
func (s *BillingService) SubmitSale(ctx context.Context, input *SaleInput) (*entity.Sale, error) {
	if _, ok := infraRepo.GetShopOwnerID(ctx); !ok {
		return nil, apperror.NewBadRequestError("Shop owner context required")
	}

	code := utils.NormalizeCustomerCode(input.CustomerID)
	if len(input.Items) == 0 {
		return nil, validateSale(code, nil)
	}
	items, err := buildLines(input.Items)
	if err != nil {
		return nil, err
	}
	if err := validateSale(code, items); err != nil {
		return nil, err
	}

	customer, err := s.userRepo.GetByCustomerCode(ctx, code)
	if err != nil {
		slog.ErrorContext(ctx, "customer lookup failed", "customer_id", code, "error", err)
		return nil, apperror.NewAppError(http.StatusInternalServerError, "Failed to look up customer")
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer ID " + code)
	}

	sale := &entity.Sale{
		CustomerID:    customer.CustomerCode,
		Items:         items,
		PaymentStatus: enum.PaymentStatusPending,
		SaleDate:      s.now(),
	}
	billing.ApplyTotals(sale)

	if err := s.saleRepo.Create(ctx, sale); err != nil {
		slog.ErrorContext(ctx, "sale insert failed", "customer_id", code, "error", err)
		return nil, apperror.NewAppError(http.StatusInternalServerError, "Failed to save sale record")
	}

	s.notifier.Notify(ctx, events.TypeSaleCreated, sale)
	return sale, nil
}
