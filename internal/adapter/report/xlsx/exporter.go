// Package xlsx renders shift history as an Excel workbook.
package xlsx

import (
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/iho/gotill/internal/domain"
)

const (
	sheetShifts = "Shifts"
	sheetTotals = "Totals"

	// ContentType is the MIME type of the produced workbook.
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var shiftHeaders = []string{
	"Session", "Point of Sale", "Shift", "State", "Opened At", "Opened By", "Closed At", "Closed By",
	"Opening Float", "Cash Sales", "Card Sales", "Online Sales", "Cash Expenses",
	"Expected Cash", "Counted Cash", "Discrepancy", "Discrepancy %", "Classification", "Operations",
}

var totalHeaders = []string{"Session", "Kind", "Count", "Amount", "Cash Delta"}

// Exporter writes shift reports as XLSX.
type Exporter struct {
	loc *time.Location
}

// NewExporter creates an Exporter that renders timestamps in loc. A nil
// loc means UTC.
func NewExporter(loc *time.Location) *Exporter {
	if loc == nil {
		loc = time.UTC
	}
	return &Exporter{loc: loc}
}

// FileName returns the attachment name for a point of sale export.
func (e *Exporter) FileName(pointOfSaleID string, now time.Time) string {
	return fmt.Sprintf("shifts_%s_%s.xlsx", pointOfSaleID, now.In(e.loc).Format("20060102"))
}

// Write renders reports into w. One row per session on the Shifts sheet and
// one row per session and operation kind on the Totals sheet.
func (e *Exporter) Write(w io.Writer, reports []*domain.ShiftReport) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetShifts); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(sheetTotals); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	for sheet, headers := range map[string][]string{sheetShifts: shiftHeaders, sheetTotals: totalHeaders} {
		if err := writeRow(f, sheet, 1, toAny(headers)); err != nil {
			return err
		}
		last, _ := excelize.CoordinatesToCellName(len(headers), 1)
		if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
			return fmt.Errorf("style header: %w", err)
		}
	}

	totalsRow := 2
	for i, r := range reports {
		s := r.Session
		row := []any{
			s.ID,
			s.PointOfSaleID,
			s.ShiftLabel,
			string(s.State),
			s.OpenedAt.In(e.loc).Format(time.DateTime),
			s.OpenedBy,
			e.formatTime(s.ClosedAt),
			s.ClosedBy,
			money(s.OpeningFloat),
			money(s.CumulativeCashSales),
			money(s.CumulativeCardSales),
			money(s.CumulativeOnlineSales),
			money(s.CumulativeCashExpenses),
			money(s.ExpectedCash),
			moneyPtr(s.CountedCash),
			moneyPtr(s.Discrepancy),
			moneyPtr(r.DiscrepancyPct),
			string(r.Classification),
			r.OperationCount,
		}
		if err := writeRow(f, sheetShifts, i+2, row); err != nil {
			return err
		}

		for _, t := range r.Totals {
			if err := writeRow(f, sheetTotals, totalsRow, []any{
				s.ID, string(t.Kind), t.Count, money(t.Amount), money(t.CashDelta),
			}); err != nil {
				return err
			}
			totalsRow++
		}
	}

	for sheet, headers := range map[string][]string{sheetShifts: shiftHeaders, sheetTotals: totalHeaders} {
		last, _ := excelize.CoordinatesToCellName(len(headers), 1)
		_ = f.AutoFilter(sheet, "A1:"+last, []excelize.AutoFilterOptions{})
		_ = f.SetPanes(sheet, &excelize.Panes{Freeze: true, Split: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func (e *Exporter) formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.In(e.loc).Format(time.DateTime)
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// money converts an amount for a numeric cell. Cent amounts fit a float64
// exactly enough for display.
func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func moneyPtr(d *decimal.Decimal) any {
	if d == nil {
		return ""
	}
	return money(*d)
}
