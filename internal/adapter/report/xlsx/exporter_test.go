package xlsx

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/iho/gotill/internal/domain"
)

func closedReport() *domain.ShiftReport {
	opened := time.Date(2026, time.March, 2, 8, 0, 0, 0, time.UTC)
	closed := opened.Add(8 * time.Hour)
	counted := decimal.RequireFromString("83.50")
	discrepancy := decimal.RequireFromString("3.50")
	pct := decimal.RequireFromString("4.38")
	return &domain.ShiftReport{
		Session: &domain.TillSession{
			ID:                     "s-1",
			PointOfSaleID:          "POS-1",
			ShiftLabel:             "morning",
			State:                  domain.SessionStateClosed,
			OpeningFloat:           decimal.NewFromInt(100),
			CumulativeCashSales:    decimal.Zero,
			CumulativeCardSales:    decimal.Zero,
			CumulativeOnlineSales:  decimal.Zero,
			CumulativeCashExpenses: decimal.NewFromInt(20),
			ExpectedCash:           decimal.NewFromInt(80),
			CountedCash:            &counted,
			Discrepancy:            &discrepancy,
			OpenedBy:               "cash-1",
			ClosedBy:               "cash-1",
			OpenedAt:               opened,
			ClosedAt:               &closed,
		},
		Totals: []domain.KindTotal{
			{Kind: domain.OperationKindOpen, Count: 1, Amount: decimal.NewFromInt(100), CashDelta: decimal.NewFromInt(100)},
			{Kind: domain.OperationKindWithdrawal, Count: 1, Amount: decimal.NewFromInt(20), CashDelta: decimal.NewFromInt(-20)},
			{Kind: domain.OperationKindClose, Count: 1, Amount: decimal.Zero, CashDelta: decimal.Zero},
		},
		OperationCount: 3,
		DiscrepancyPct: &pct,
		Classification: domain.DiscrepancyWarning,
	}
}

func TestExporterWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewExporter(nil).Write(&buf, []*domain.ShiftReport{closedReport()}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{sheetShifts, sheetTotals}, f.GetSheetList())

	rows, err := f.GetRows(sheetShifts)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, shiftHeaders, rows[0])
	assert.Equal(t, "s-1", rows[1][0])
	assert.Equal(t, "CLOSED", rows[1][3])
	assert.Equal(t, "2026-03-02 08:00:00", rows[1][4])
	assert.Equal(t, "2026-03-02 16:00:00", rows[1][6])
	assert.Equal(t, "83.5", rows[1][14])
	assert.Equal(t, "3.5", rows[1][15])
	assert.Equal(t, "WARNING", rows[1][17])

	totals, err := f.GetRows(sheetTotals)
	require.NoError(t, err)
	require.Len(t, totals, 4)
	assert.Equal(t, []string{"s-1", "WITHDRAWAL", "1", "20", "-20"}, totals[2])
}

func TestExporterWriteEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewExporter(time.UTC).Write(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetShifts)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestExporterFileName(t *testing.T) {
	now := time.Date(2026, time.March, 2, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "shifts_POS-1_20260302.xlsx", NewExporter(nil).FileName("POS-1", now))

	tokyo := time.FixedZone("JST", 9*60*60)
	assert.Equal(t, "shifts_POS-1_20260303.xlsx", NewExporter(tokyo).FileName("POS-1", now))
}
