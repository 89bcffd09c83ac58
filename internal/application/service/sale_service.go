package service

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/bots-hq/truegrow-kashmir-connect/internal/application/analytics"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/billing"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/entity"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/enum"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/repository"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/infrastructure/events"
	"github.com/bots-hq/truegrow-kashmir-connect/pkg/apperror"
	"github.com/bots-hq/truegrow-kashmir-connect/pkg/pagination"
	"github.com/google/uuid"
)

// SaleService reads and amends stored sales
type SaleService struct {
	saleRepo repository.SaleRepository
	notifier *SaleNotifier
}

// NewSaleService creates a new sale service
func NewSaleService(saleRepo repository.SaleRepository, notifier *SaleNotifier) *SaleService {
	return &SaleService{saleRepo: saleRepo, notifier: notifier}
}

// ListSales lists the shop owner's sales page by page
func (s *SaleService) ListSales(ctx context.Context, params *repository.SaleFilterParams) (*pagination.PaginatedResult[entity.Sale], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	sales, total, err := s.saleRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(sales, pag), nil
}

// ListSalesWithCursor lists the shop owner's sales newest first using keyset
// pagination on the sale date
func (s *SaleService) ListSalesWithCursor(ctx context.Context, params *repository.SaleCursorFilterParams) (*pagination.CursorPaginatedResult[entity.Sale], error) {
	if params.Cursor == nil {
		params.Cursor = pagination.DefaultCursorParams()
	}
	params.Cursor.Validate()
	if _, err := params.Cursor.DecodeCursor(); err != nil {
		return nil, apperror.NewBadRequestError("Invalid cursor")
	}

	sales, err := s.saleRepo.ListWithCursor(ctx, params)
	if err != nil {
		return nil, err
	}

	pag, items := pagination.NewCursorPagination(sales, params.Cursor, func(sale entity.Sale) (string, time.Time) {
		return sale.ID.String(), sale.SaleDate
	})
	return pagination.NewCursorPaginatedResult(items, pag), nil
}

// RecentSales returns the latest sales for the dashboard widget
func (s *SaleService) RecentSales(ctx context.Context) ([]entity.Sale, error) {
	return s.saleRepo.Recent(ctx, analytics.RecentLimit)
}

// GetSale retrieves one of the shop owner's sales
func (s *SaleService) GetSale(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// SaleEditInput carries a full edit of a stored sale. Nil fields are left as they are.
type SaleEditInput struct {
	Items         []LineInput
	PaymentStatus *string
}

// UpdateSale applies an edit through an edit session so the stored totals are
// always re-derived from the edited items
func (s *SaleService) UpdateSale(ctx context.Context, id uuid.UUID, input *SaleEditInput) (*entity.Sale, error) {
	sale, err := s.GetSale(ctx, id)
	if err != nil {
		return nil, err
	}

	session := billing.BeginEdit(sale)
	defer session.Discard()

	if input.Items != nil {
		if len(input.Items) == 0 {
			return nil, validateSale(sale.CustomerID, nil)
		}
		items, err := buildLines(input.Items)
		if err != nil {
			return nil, err
		}
		if err := validateSale(sale.CustomerID, items); err != nil {
			return nil, err
		}
		if err := session.ReplaceItems(items); err != nil {
			return nil, err
		}
	}
	if input.PaymentStatus != nil {
		status, err := parseStatus(*input.PaymentStatus)
		if err != nil {
			return nil, err
		}
		if err := session.SetPaymentStatus(status); err != nil {
			return nil, err
		}
	}

	edited, err := session.Commit()
	if err != nil {
		return nil, err
	}
	if err := s.saleRepo.Update(ctx, edited); err != nil {
		slog.ErrorContext(ctx, "sale update failed", "sale_id", id, "error", err)
		return nil, apperror.NewAppError(http.StatusInternalServerError, "Failed to update sale record")
	}

	s.notifier.Notify(ctx, events.TypeSaleUpdated, edited)
	return edited, nil
}

// UpdatePaymentStatus marks a sale paid, pending or overdue
func (s *SaleService) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, raw string) (*entity.Sale, error) {
	status, err := parseStatus(raw)
	if err != nil {
		return nil, err
	}
	sale, err := s.GetSale(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.saleRepo.UpdatePaymentStatus(ctx, id, status); err != nil {
		slog.ErrorContext(ctx, "payment status update failed", "sale_id", id, "error", err)
		return nil, apperror.NewAppError(http.StatusInternalServerError, "Failed to update payment status")
	}
	sale.PaymentStatus = status

	s.notifier.Notify(ctx, events.TypeSalePaymentStatusChanged, sale)
	return sale, nil
}

// RateCustomer records the shop owner's 1 to 5 rating of the customer on a
// sale. A blank comment is stored as null.
func (s *SaleService) RateCustomer(ctx context.Context, id uuid.UUID, rating int, comment string) (*entity.Sale, error) {
	if rating < 1 || rating > 5 {
		return nil, fieldError("rating", "rating must be between 1 and 5")
	}
	sale, err := s.GetSale(ctx, id)
	if err != nil {
		return nil, err
	}

	var stored *string
	if trimmed := strings.TrimSpace(comment); trimmed != "" {
		stored = &trimmed
	}
	if err := s.saleRepo.UpdateRating(ctx, id, rating, stored); err != nil {
		slog.ErrorContext(ctx, "rating update failed", "sale_id", id, "error", err)
		return nil, apperror.NewAppError(http.StatusInternalServerError, "Failed to save rating")
	}
	sale.CustomerRating = &rating
	sale.RatingComment = stored

	s.notifier.Notify(ctx, events.TypeSaleRated, sale)
	return sale, nil
}

func parseStatus(raw string) (enum.PaymentStatus, error) {
	status, ok := enum.ParsePaymentStatus(raw)
	if !ok {
		return "", fieldError("payment_status", "payment_status must be one of: pending, paid, overdue")
	}
	return status, nil
}
