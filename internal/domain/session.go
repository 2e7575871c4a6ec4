package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// SessionState is the lifecycle state of a till session.
type SessionState string

const (
	SessionStateOpen   SessionState = "OPEN"
	SessionStateClosed SessionState = "CLOSED"
)

// IsValid reports whether s is a known state.
func (s SessionState) IsValid() bool {
	return s == SessionStateOpen || s == SessionStateClosed
}

// TillSession is the authoritative snapshot of one till shift.
//
// ExpectedCash always equals the sum of the signed cash deltas of the
// session's operations, the OPEN entry included. Version increases by one
// with every applied operation and equals the sequence of the last one.
type TillSession struct {
	ID            string
	PointOfSaleID string
	CompanyID     string
	ShiftLabel    string
	State         SessionState

	OpeningFloat           decimal.Decimal
	CumulativeCashSales    decimal.Decimal
	CumulativeCardSales    decimal.Decimal
	CumulativeOnlineSales  decimal.Decimal
	CumulativeCashExpenses decimal.Decimal
	ExpectedCash           decimal.Decimal
	CountedCash            *decimal.Decimal
	Discrepancy            *decimal.Decimal

	OpenedBy  string
	ClosedBy  string
	OpenedAt  time.Time
	ClosedAt  *time.Time
	UpdatedAt time.Time
	Version   int64
}

// IsOpen reports whether the session still accepts operations.
func (s *TillSession) IsOpen() bool {
	return s.State == SessionStateOpen
}

// EnsureOpen returns ErrInvalidStateTransition for a closed session.
func (s *TillSession) EnsureOpen() error {
	if !s.IsOpen() {
		return fmt.Errorf("%w: session %s is %s", ErrInvalidStateTransition, s.ID, s.State)
	}
	return nil
}

// Clone returns a deep copy so callers can mutate a candidate snapshot
// without touching the one they read.
func (s *TillSession) Clone() *TillSession {
	if s == nil {
		return nil
	}
	c := *s
	if s.CountedCash != nil {
		v := *s.CountedCash
		c.CountedCash = &v
	}
	if s.Discrepancy != nil {
		v := *s.Discrepancy
		c.Discrepancy = &v
	}
	if s.ClosedAt != nil {
		v := *s.ClosedAt
		c.ClosedAt = &v
	}
	return &c
}

// ApplySales refreshes the cumulative sales counters. Counters never
// decrease, so a lower reading keeps the stored value. The returned
// slice names the channels whose reading was lower.
func (s *TillSession) ApplySales(t SalesTotals) []string {
	var regressed []string
	s.CumulativeCashSales, regressed = raise(s.CumulativeCashSales, t.Cash, "cash", regressed)
	s.CumulativeCardSales, regressed = raise(s.CumulativeCardSales, t.Card, "card", regressed)
	s.CumulativeOnlineSales, regressed = raise(s.CumulativeOnlineSales, t.Online, "online", regressed)
	return regressed
}

func raise(current, next decimal.Decimal, channel string, regressed []string) (decimal.Decimal, []string) {
	if next.LessThan(current) {
		return current, append(regressed, channel)
	}
	return next, regressed
}

// SalesTotals are the cumulative sales of a point of sale per payment channel.
type SalesTotals struct {
	Cash   decimal.Decimal
	Card   decimal.Decimal
	Online decimal.Decimal
}

// SessionFilter narrows session history listings.
type SessionFilter struct {
	PointOfSaleID string
	CompanyID     string
	State         SessionState
	From          *time.Time
	To            *time.Time
	Limit         int
	Offset        int
}
