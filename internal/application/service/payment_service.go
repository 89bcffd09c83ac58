package service

import (
	"context"
	"strings"

	"github.com/bots-hq/truegrow-kashmir-connect/internal/application/analytics"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/enum"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/repository"
)

// PaymentService backs the payment tracking screen
type PaymentService struct {
	saleRepo repository.SaleRepository
}

// NewPaymentService creates a new payment service
func NewPaymentService(saleRepo repository.SaleRepository) *PaymentService {
	return &PaymentService{saleRepo: saleRepo}
}

// Summary filters the shop owner's sales and totals the result
func (s *PaymentService) Summary(ctx context.Context, filter analytics.PaymentFilter) (*analytics.PaymentSummary, error) {
	status := strings.ToLower(strings.TrimSpace(filter.Status))
	if status != "" && status != analytics.StatusAll && !enum.PaymentStatus(status).IsValid() {
		return nil, fieldError("status", "status must be one of: all, pending, paid, overdue")
	}

	sales, err := s.saleRepo.ListAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	return analytics.SummarizePayments(sales, filter), nil
}
