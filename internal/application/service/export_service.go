package service

import (
	"context"
	"fmt"

	"github.com/bots-hq/truegrow-kashmir-connect/internal/application/analytics"
	"github.com/bots-hq/truegrow-kashmir-connect/pkg/money"
	"github.com/xuri/excelize/v2"
)

// Sheet names of the analytics workbook
const (
	SheetDaily      = "Daily Sales"
	SheetCategories = "Categories"
	SheetProducts   = "Products"
	SheetSummary    = "Summary"
)

// ExportService writes analytics reports as XLSX workbooks
type ExportService struct {
	analytics *AnalyticsService
}

// NewExportService creates a new export service
func NewExportService(analyticsService *AnalyticsService) *ExportService {
	return &ExportService{analytics: analyticsService}
}

// ExportReport builds the shop owner's current report as a workbook and
// returns its bytes and a download filename
func (s *ExportService) ExportReport(ctx context.Context) ([]byte, string, error) {
	report, err := s.analytics.Report(ctx)
	if err != nil {
		return nil, "", err
	}
	data, err := ReportWorkbook(report)
	if err != nil {
		return nil, "", err
	}
	return data, fmt.Sprintf("analytics-%s.xlsx", report.Day), nil
}

// ReportWorkbook renders report into an XLSX file with one sheet per series
func ReportWorkbook(report *analytics.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	if err := f.SetSheetName("Sheet1", SheetDaily); err != nil {
		return nil, err
	}
	for _, name := range []string{SheetCategories, SheetProducts, SheetSummary} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, err
		}
	}

	writeRow := func(sheet string, row int, values ...interface{}) error {
		for i, v := range values {
			cell, err := excelize.CoordinatesToCellName(i+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
		return nil
	}
	writeHeaders := func(sheet string, headers ...interface{}) error {
		if err := writeRow(sheet, 1, headers...); err != nil {
			return err
		}
		last, err := excelize.CoordinatesToCellName(len(headers), 1)
		if err != nil {
			return err
		}
		return f.SetCellStyle(sheet, "A1", last, headerStyle)
	}

	if err := writeHeaders(SheetDaily, "Date", "Day", "Sales", "Customers"); err != nil {
		return nil, err
	}
	for i, p := range report.Daily {
		if err := writeRow(SheetDaily, i+2, p.Date, p.Label, money.Round2(p.Sales), p.Customers); err != nil {
			return nil, err
		}
	}

	if err := writeHeaders(SheetCategories, "Category", "Revenue", "Colour"); err != nil {
		return nil, err
	}
	for i, c := range report.Categories {
		if err := writeRow(SheetCategories, i+2, c.Name, money.Round2(c.Value), c.Color); err != nil {
			return nil, err
		}
	}

	if err := writeHeaders(SheetProducts, "Product", "Quantity", "Revenue", "Average Price", "Weighted Average Price", "Sales"); err != nil {
		return nil, err
	}
	for i, p := range report.Products {
		if err := writeRow(SheetProducts, i+2, p.Name, p.TotalQuantity, money.Round2(p.TotalRevenue),
			money.Round2(p.AveragePrice), money.Round2(p.WeightedAveragePrice), p.SaleCount); err != nil {
			return nil, err
		}
	}

	if err := writeHeaders(SheetSummary, "Metric", "Value"); err != nil {
		return nil, err
	}
	summary := [][2]interface{}{
		{"Total Revenue", money.Round2(report.Summary.TotalRevenue)},
		{"Total Orders", report.Summary.TotalOrders},
		{"Unique Customers", report.Summary.UniqueCustomers},
		{"Average Order Value", money.Round2(report.Summary.AverageOrderValue)},
		{"Unique Products", report.Summary.UniqueProducts},
		{"Total Items Sold", report.Summary.TotalItemsSold},
		{"Report Day", report.Day},
	}
	for i, row := range summary {
		if err := writeRow(SheetSummary, i+2, row[0], row[1]); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
