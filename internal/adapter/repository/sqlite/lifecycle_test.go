package sqlite

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/iho/gotill/internal/domain"
	"github.com/iho/gotill/internal/usecase"
	"github.com/iho/gotill/internal/usecase/mocks"
)

type roleGate struct{}

func (roleGate) HasCapability(_ context.Context, actor domain.Actor, c domain.Capability) (bool, error) {
	return actor.Role.Capabilities().Has(c), nil
}

var (
	manager = domain.Actor{ID: "mgr-1", Role: domain.RoleManager}
	cashier = domain.Actor{ID: "cash-1", Role: domain.RoleCashier}
)

// counts8350 is a drawer count totalling 83.50.
func counts8350() domain.DenominationCount {
	return domain.DenominationCount{
		{Value: decimal.RequireFromString("50"), Quantity: 1},
		{Value: decimal.RequireFromString("20"), Quantity: 1},
		{Value: decimal.RequireFromString("10"), Quantity: 1},
		{Value: decimal.RequireFromString("2"), Quantity: 1},
		{Value: decimal.RequireFromString("1"), Quantity: 1},
		{Value: decimal.RequireFromString("0.50"), Quantity: 1},
	}
}

type TillLifecycleSuite struct {
	suite.Suite
	store   *Store
	session *usecase.SessionUseCase
	ledger  *usecase.LedgerUseCase
	ctx     context.Context
}

func TestTillLifecycleSuite(t *testing.T) {
	suite.Run(t, new(TillLifecycleSuite))
}

func (s *TillLifecycleSuite) SetupTest() {
	store, err := Open(filepath.Join(s.T().TempDir(), "till.db"))
	s.Require().NoError(err)
	s.store = store
	s.ctx = context.Background()
	s.session = usecase.NewSessionUseCase(
		store.TxManager(),
		store.Sessions(),
		store.Operations(),
		roleGate{},
		mocks.NewMockIDGenerator(),
		usecase.WithOutbox(store.Outbox()),
		usecase.WithAudit(store.Audit()),
		usecase.WithRetrier(usecase.NewConflictRetrier(3)),
	)
	s.ledger = usecase.NewLedgerUseCase(store.Sessions(), store.Operations(), store.Ledger(), roleGate{}, nil, zerolog.Nop())
}

func (s *TillLifecycleSuite) TearDownTest() {
	s.Require().NoError(s.store.Close())
}

func (s *TillLifecycleSuite) open(float string) *domain.TillSession {
	session, err := s.session.Open(s.ctx, usecase.OpenSessionInput{
		PointOfSaleID: "POS-1",
		CompanyID:     "ACME",
		ShiftLabel:    "morning",
		OpeningFloat:  decimal.RequireFromString(float),
		Actor:         cashier,
	})
	s.Require().NoError(err)
	return session
}

func (s *TillLifecycleSuite) withdraw(id string, amount int64, actor domain.Actor) (*domain.TillSession, error) {
	return s.session.Withdraw(s.ctx, usecase.CashMovementInput{SessionID: id, Amount: decimal.NewFromInt(amount), Actor: actor})
}

func (s *TillLifecycleSuite) assertMoney(want string, got decimal.Decimal) {
	s.T().Helper()
	s.True(decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got.StringFixed(2))
}

func (s *TillLifecycleSuite) TestOpenSetsExpectedAndCountedToFloat() {
	session := s.open("100.00")

	s.Equal(domain.SessionStateOpen, session.State)
	s.assertMoney("100.00", session.ExpectedCash)
	s.Require().NotNil(session.CountedCash)
	s.assertMoney("100.00", *session.CountedCash)
	s.Require().NotNil(session.Discrepancy)
	s.True(session.Discrepancy.IsZero())
}

func (s *TillLifecycleSuite) TestManagerWithdrawalLowersExpectedCash() {
	session := s.open("100.00")

	after, err := s.withdraw(session.ID, 20, manager)
	s.Require().NoError(err)
	s.assertMoney("80.00", after.ExpectedCash)
	s.assertMoney("20.00", after.CumulativeCashExpenses)

	stored, err := s.store.Sessions().GetByID(s.ctx, session.ID)
	s.Require().NoError(err)
	s.assertMoney("80.00", stored.ExpectedCash)
	s.Equal(int64(2), stored.Version)
}

func (s *TillLifecycleSuite) TestWithdrawalWithoutCapabilityLeavesSessionUntouched() {
	session := s.open("100.00")

	_, err := s.withdraw(session.ID, 20, cashier)
	s.ErrorIs(err, domain.ErrPermissionDenied)

	stored, err := s.store.Sessions().GetByID(s.ctx, session.ID)
	s.Require().NoError(err)
	s.assertMoney("100.00", stored.ExpectedCash)
	s.Equal(int64(1), stored.Version)
}

func (s *TillLifecycleSuite) TestRecountRecordsDiscrepancyAndRepeats() {
	session := s.open("100.00")
	_, err := s.withdraw(session.ID, 20, manager)
	s.Require().NoError(err)

	after, err := s.session.Recount(s.ctx, usecase.CountInput{SessionID: session.ID, Counts: counts8350(), Actor: cashier})
	s.Require().NoError(err)
	s.Equal(domain.SessionStateOpen, after.State)
	s.assertMoney("83.50", *after.CountedCash)
	s.assertMoney("3.50", *after.Discrepancy)

	again, err := s.session.Recount(s.ctx, usecase.CountInput{SessionID: session.ID, Counts: counts8350(), Actor: cashier})
	s.Require().NoError(err)
	s.assertMoney("83.50", *again.CountedCash)
	s.assertMoney("3.50", *again.Discrepancy)
	s.assertMoney("80.00", again.ExpectedCash)
}

func (s *TillLifecycleSuite) TestCloseSealsSessionAndFreesPointOfSale() {
	session := s.open("100.00")
	_, err := s.withdraw(session.ID, 20, manager)
	s.Require().NoError(err)

	closed, err := s.session.Close(s.ctx, usecase.CountInput{SessionID: session.ID, Counts: counts8350(), Actor: cashier})
	s.Require().NoError(err)
	s.Equal(domain.SessionStateClosed, closed.State)
	s.Equal(cashier.ID, closed.ClosedBy)
	s.NotNil(closed.ClosedAt)
	s.assertMoney("3.50", *closed.Discrepancy)

	_, err = s.withdraw(session.ID, 5, manager)
	s.ErrorIs(err, domain.ErrInvalidStateTransition)
	_, err = s.session.Recount(s.ctx, usecase.CountInput{SessionID: session.ID, Counts: counts8350(), Actor: cashier})
	s.ErrorIs(err, domain.ErrInvalidStateTransition)
	_, err = s.session.Close(s.ctx, usecase.CountInput{SessionID: session.ID, Counts: counts8350(), Actor: cashier})
	s.ErrorIs(err, domain.ErrInvalidStateTransition)

	_, err = s.store.Sessions().GetOpenByPointOfSale(s.ctx, "POS-1")
	s.ErrorIs(err, domain.ErrSessionNotFound)

	reopened := s.open("50.00")
	s.NotEqual(session.ID, reopened.ID)
}

func (s *TillLifecycleSuite) TestNegativeFloatCreatesNothing() {
	_, err := s.session.Open(s.ctx, usecase.OpenSessionInput{
		PointOfSaleID: "POS-1",
		CompanyID:     "ACME",
		OpeningFloat:  decimal.RequireFromString("-1.00"),
		Actor:         cashier,
	})
	s.ErrorIs(err, domain.ErrInvalidAmount)

	sessions, err := s.store.Sessions().List(s.ctx, domain.SessionFilter{Limit: 10})
	s.Require().NoError(err)
	s.Empty(sessions)
}

func (s *TillLifecycleSuite) TestConcurrentOpenHasOneWinner() {
	const callers = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
		already int
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.session.Open(s.ctx, usecase.OpenSessionInput{
				PointOfSaleID: "POS-9",
				CompanyID:     "ACME",
				OpeningFloat:  decimal.NewFromInt(100),
				Actor:         cashier,
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				success++
			case domain.ErrorCode(err) == "already_open":
				already++
			}
		}()
	}
	wg.Wait()

	s.Equal(1, success)
	s.Equal(callers-1, already)
}

func (s *TillLifecycleSuite) TestConcurrentWithdrawalsAllApply() {
	session := s.open("100.00")

	var wg sync.WaitGroup
	errs := make(chan error, 5)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.withdraw(session.ID, 10, manager)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	applied := 0
	for err := range errs {
		if err == nil {
			applied++
		} else {
			s.ErrorIs(err, domain.ErrConcurrentModification)
		}
	}

	stored, err := s.store.Sessions().GetByID(s.ctx, session.ID)
	s.Require().NoError(err)
	s.Equal(int64(1+applied), stored.Version)
	s.assertMoney(decimal.NewFromInt(100-int64(10*applied)).String(), stored.ExpectedCash)

	_, err = s.ledger.VerifySession(s.ctx, session.ID)
	s.NoError(err)
}

func (s *TillLifecycleSuite) TestIdempotencyKeyAppliesOnce() {
	session := s.open("100.00")
	input := usecase.CashMovementInput{
		SessionID:      session.ID,
		Amount:         decimal.NewFromInt(15),
		Actor:          manager,
		IdempotencyKey: "withdraw-1",
	}

	first, err := s.session.Withdraw(s.ctx, input)
	s.Require().NoError(err)
	second, err := s.session.Withdraw(s.ctx, input)
	s.Require().NoError(err)

	s.Equal(first.Version, second.Version)
	s.assertMoney("85.00", second.ExpectedCash)

	ops, err := s.store.Operations().ListBySession(s.ctx, session.ID)
	s.Require().NoError(err)
	s.Len(ops, 2)
}

func (s *TillLifecycleSuite) TestOutboxAndAuditWrittenPerCommand() {
	session := s.open("100.00")
	_, err := s.session.Refund(s.ctx, usecase.RefundInput{
		SessionID:     session.ID,
		Amount:        decimal.NewFromInt(4),
		PaymentMethod: "card",
		Actor:         cashier,
	})
	s.Require().NoError(err)

	events, err := s.store.Outbox().GetUnpublished(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(events, 2)
	s.Equal(domain.EventTypeTillOpened, events[0].EventType)
	s.Equal(domain.EventTypeTillRefund, events[1].EventType)

	var audits int
	s.Require().NoError(s.store.db.QueryRow(
		`SELECT COUNT(*) FROM audit_logs WHERE resource_id = ?`, session.ID).Scan(&audits))
	s.Equal(2, audits)
}

func (s *TillLifecycleSuite) TestLedgerConsistencyScan() {
	session := s.open("100.00")
	_, err := s.withdraw(session.ID, 30, manager)
	s.Require().NoError(err)

	ids, err := s.ledger.CheckConsistency(s.ctx)
	s.Require().NoError(err)
	s.Empty(ids)

	_, err = s.store.db.Exec(`UPDATE till_sessions SET expected_cash = '75' WHERE id = ?`, session.ID)
	s.Require().NoError(err)

	ids, err = s.ledger.CheckConsistency(s.ctx)
	s.ErrorIs(err, domain.ErrLedgerInconsistency)
	s.Equal([]string{session.ID}, ids)
}
