package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/billing"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/entity"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/repository"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/infrastructure/metrics"
	"github.com/bots-hq/truegrow-kashmir-connect/pkg/money"
	"github.com/bots-hq/truegrow-kashmir-connect/pkg/printer"
	"github.com/google/uuid"
)

// PrinterService handles receipt formatting and thermal printing.
type PrinterService struct {
	printer     printer.Printer
	sales       *SaleService
	userRepo    repository.UserRepository
	metrics     *metrics.Metrics
	printerType string
	width       int
}

// NewPrinterService creates a new printer service.
func NewPrinterService(
	p printer.Printer,
	sales *SaleService,
	userRepo repository.UserRepository,
	m *metrics.Metrics,
	printerType string,
	width int,
) *PrinterService {
	return &PrinterService{
		printer:     p,
		sales:       sales,
		userRepo:    userRepo,
		metrics:     m,
		printerType: printerType,
		width:       width,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
	Width      int    `json:"width"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus(ctx context.Context) *PrinterStatus {
	configured := s.printerType != "none" && s.printerType != ""
	return &PrinterStatus{
		Configured: configured,
		Connected:  configured && s.printer.Ping(ctx) == nil,
		Type:       s.printerType,
		Width:      s.width,
	}
}

// PrintSaleReceipt prints a sale as a thermal receipt. The receipt is
// returned even when printing fails so the client can show it.
func (s *PrinterService) PrintSaleReceipt(ctx context.Context, saleID uuid.UUID) (*entity.Receipt, error) {
	sale, err := s.sales.GetSale(ctx, saleID)
	if err != nil {
		return nil, err
	}
	owner, customer, err := saleParties(ctx, s.userRepo, sale)
	if err != nil {
		return nil, err
	}

	receipt := SaleReceipt(sale, owner, customer)
	if err := s.printer.Print(ctx, FormatReceipt(receipt, s.width)); err != nil {
		slog.ErrorContext(ctx, "printer error", "sale_id", saleID, "error", err)
		return receipt, fmt.Errorf("failed to print receipt: %w", err)
	}
	s.metrics.InvoiceRendered("escpos")
	return receipt, nil
}

// SaleReceipt projects a sale onto a printable receipt
func SaleReceipt(sale *entity.Sale, owner, customer *entity.User) *entity.Receipt {
	doc := InvoiceDocument(sale, owner, customer)
	receipt := &entity.Receipt{
		Header: entity.ReceiptHeader{
			BusinessName: doc.BusinessName,
			Address:      doc.BusinessAddress,
			Phone:        doc.BusinessPhone,
		},
		InvoiceNumber: sale.InvoiceNumber,
		Date:          sale.SaleDate.Format("2006-01-02 15:04"),
		CustomerID:    sale.CustomerID,
		CustomerName:  doc.CustomerName,
		PaymentStatus: string(sale.PaymentStatus),
		Subtotal:      sale.Subtotal,
		TaxLabel:      billing.TaxLabel,
		TaxAmount:     sale.TaxAmount,
		Total:         sale.TotalAmount,
	}
	for _, line := range doc.Lines {
		receipt.Items = append(receipt.Items, entity.ReceiptItem{
			Name:      line.Description,
			Quantity:  line.Quantity,
			Unit:      line.Unit,
			UnitPrice: line.UnitPrice,
			Total:     line.Amount,
		})
	}
	return receipt
}

// FormatReceipt converts a Receipt into ESC/POS bytes for paper width characters wide.
func FormatReceipt(r *entity.Receipt, width int) []byte {
	doc := printer.NewDocument(width)

	// Header
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.BusinessName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if r.Header.Address != "" {
		doc.Text(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.Text(r.Header.Phone)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	doc.KeyValue("Invoice:", r.InvoiceNumber).
		KeyValue("Date:", r.Date).
		KeyValue("Customer:", r.CustomerID)
	if r.CustomerName != "" {
		doc.KeyValue("Name:", r.CustomerName)
	}
	doc.KeyValue("Status:", r.PaymentStatus)

	doc.Separator('-')

	for _, item := range r.Items {
		doc.ItemLine(item.Name, item.Quantity, item.Unit, money.Format(item.UnitPrice), money.Format(item.Total))
	}

	doc.Separator('-')

	doc.KeyValue("Subtotal:", money.Format(r.Subtotal)).
		KeyValue(r.TaxLabel+":", money.Format(r.TaxAmount)).
		SetBold(true).
		KeyValue("TOTAL:", money.Format(r.Total)).
		SetBold(false)

	doc.Separator('-')

	doc.SetAlign(printer.AlignCenter).
		Text("Thank you for your business!").
		SetAlign(printer.AlignLeft)

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}
