package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"frispy/internal/analytics"
	"frispy/internal/domain"
	"frispy/internal/repository"
)

// Window names accepted by the report endpoints.
const (
	WindowAll     = "all"
	WindowDaily   = "daily"
	WindowWeekly  = "weekly"
	WindowMonthly = "monthly"
)

// MaxChartDays bounds SalesByDay requests.
const MaxChartDays = 366

// ReportService loads fresh snapshots and hands them to the analytics engine.
// Nothing is cached between calls.
type ReportService struct {
	sales     repository.SaleRepository
	inventory repository.InventoryRepository
	clock     Clock
	loc       *time.Location
}

func NewReportService(sales repository.SaleRepository, inventory repository.InventoryRepository, clock Clock, loc *time.Location) *ReportService {
	if loc == nil {
		loc = time.Local
	}
	return &ReportService{sales: sales, inventory: inventory, clock: clock, loc: loc}
}

func (s *ReportService) now() time.Time {
	return s.clock().In(s.loc)
}

func windowFor(name string) (analytics.Window, error) {
	switch name {
	case WindowDaily:
		return analytics.IsToday, nil
	case WindowWeekly:
		return analytics.IsThisWeek, nil
	case WindowMonthly:
		return analytics.IsThisMonth, nil
	}
	return nil, ErrInvalidInput
}

func (s *ReportService) Dashboard(ctx context.Context) (analytics.Dashboard, error) {
	sales, err := s.sales.List(ctx)
	if err != nil {
		return analytics.Dashboard{}, err
	}
	inv, err := s.inventory.List(ctx, repository.InventoryFilter{})
	if err != nil {
		return analytics.Dashboard{}, err
	}
	return analytics.BuildDashboard(sales, inv, s.now()), nil
}

// Summary totals one of the daily, weekly or monthly windows.
func (s *ReportService) Summary(ctx context.Context, window string) (analytics.Summary, error) {
	in, err := windowFor(window)
	if err != nil {
		return analytics.Summary{}, err
	}
	sales, err := s.sales.List(ctx)
	if err != nil {
		return analytics.Summary{}, err
	}
	return analytics.SummarizeWindow(sales, s.now(), in), nil
}

// BestSellers ranks items over all sales or over one window.
func (s *ReportService) BestSellers(ctx context.Context, limit int, window string) ([]analytics.BestSeller, error) {
	sales, err := s.sales.List(ctx)
	if err != nil {
		return nil, err
	}
	if window != "" && window != WindowAll {
		in, err := windowFor(window)
		if err != nil {
			return nil, err
		}
		sales = analytics.SummarizeWindow(sales, s.now(), in).Sales
	}
	return analytics.BestSellers(sales, limit), nil
}

func (s *ReportService) SalesByDay(ctx context.Context, days int) ([]analytics.DayBucket, error) {
	if days <= 0 || days > MaxChartDays {
		return nil, ErrInvalidInput
	}
	sales, err := s.sales.List(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.SalesByDay(sales, days, s.now()), nil
}

func (s *ReportService) PeakHours(ctx context.Context) ([]analytics.HourBucket, error) {
	sales, err := s.sales.List(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.PeakHours(sales, s.loc), nil
}

func (s *ReportService) LowStock(ctx context.Context) ([]domain.InventoryItem, error) {
	inv, err := s.inventory.List(ctx, repository.InventoryFilter{})
	if err != nil {
		return nil, err
	}
	return analytics.LowStockItems(inv), nil
}

// ExportXLSX writes the dashboard as a workbook with one sheet per aggregate.
func (s *ReportService) ExportXLSX(ctx context.Context, w io.Writer) error {
	d, err := s.Dashboard(ctx)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	summary := [][]any{
		{"Today", d.Daily.Count, d.Daily.Total},
		{"Last 7 days", d.Weekly.Count, d.Weekly.Total},
		{"This month", d.Monthly.Count, d.Monthly.Total},
	}
	if err := writeSheet(f, "Summary", []string{"Window", "Sales", "Total"}, summary); err != nil {
		return err
	}

	best := make([][]any, 0, len(d.BestSellers))
	for i, b := range d.BestSellers {
		best = append(best, []any{i + 1, b.Name, b.Quantity, b.Revenue})
	}
	if err := writeSheet(f, "Best Sellers", []string{"Rank", "Item", "Quantity", "Revenue"}, best); err != nil {
		return err
	}

	days := make([][]any, 0, len(d.MonthlyChart))
	for _, b := range d.MonthlyChart {
		days = append(days, []any{b.Date, b.Count, b.Total})
	}
	if err := writeSheet(f, "Daily Sales", []string{"Date", "Sales", "Total"}, days); err != nil {
		return err
	}

	hours := make([][]any, 0, len(d.PeakHours))
	for _, h := range d.PeakHours {
		hours = append(hours, []any{fmt.Sprintf("%02d:00", h.Hour), h.Count, h.Total})
	}
	if err := writeSheet(f, "Peak Hours", []string{"Hour", "Sales", "Total"}, hours); err != nil {
		return err
	}

	low := make([][]any, 0, len(d.LowStock))
	for _, it := range d.LowStock {
		low = append(low, []any{it.Name, it.Quantity, it.MinQuantity, it.Unit, string(it.Status()), it.Supplier})
	}
	if err := writeSheet(f, "Low Stock", []string{"Item", "Quantity", "Min", "Unit", "Status", "Supplier"}, low); err != nil {
		return err
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}
	f.SetActiveSheet(0)
	return f.Write(w)
}

func writeSheet(f *excelize.File, name string, headers []string, rows [][]any) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("sheet %s: %w", name, err)
	}
	header := make([]any, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(name, "A1", last, bold); err != nil {
		return err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		r := row
		if err := f.SetSheetRow(name, cell, &r); err != nil {
			return err
		}
	}
	return nil
}
