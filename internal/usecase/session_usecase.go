package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/iho/gotill/internal/domain"
	"github.com/iho/gotill/internal/infrastructure/metrics"
)

const tracerName = "github.com/iho/gotill/internal/usecase"

// SessionUseCase owns the till session lifecycle. Every command commits its
// ledger entry and the new snapshot in one transaction, or nothing.
type SessionUseCase struct {
	txManager     TransactionManager
	sessionRepo   SessionRepository
	operationRepo OperationRepository
	gate          PermissionGate
	idGen         IDGenerator

	outboxRepo OutboxRepository
	auditRepo  AuditRepository
	sales      SalesAggregator
	cache      Cache
	cacheTTL   time.Duration
	retrier    Retrier
	policy     domain.DiscrepancyPolicy
	metrics    *metrics.Metrics
	logger     zerolog.Logger
	tracer     trace.Tracer
	now        func() time.Time
}

// SessionOption configures optional collaborators of SessionUseCase.
type SessionOption func(*SessionUseCase)

// WithOutbox emits an outbox event per applied operation.
func WithOutbox(repo OutboxRepository) SessionOption {
	return func(uc *SessionUseCase) { uc.outboxRepo = repo }
}

// WithAudit writes an audit entry per applied operation.
func WithAudit(repo AuditRepository) SessionOption {
	return func(uc *SessionUseCase) { uc.auditRepo = repo }
}

// WithSalesAggregator refreshes cumulative sales at open, recount and close.
func WithSalesAggregator(sales SalesAggregator) SessionOption {
	return func(uc *SessionUseCase) { uc.sales = sales }
}

// WithSessionCache serves GetSession from cache, refreshed on every commit.
func WithSessionCache(cache Cache, ttl time.Duration) SessionOption {
	return func(uc *SessionUseCase) {
		uc.cache = cache
		uc.cacheTTL = ttl
	}
}

// WithRetrier replaces the default single conflict retry.
func WithRetrier(r Retrier) SessionOption {
	return func(uc *SessionUseCase) { uc.retrier = r }
}

// WithDiscrepancyPolicy sets the thresholds used to label close metrics.
func WithDiscrepancyPolicy(p domain.DiscrepancyPolicy) SessionOption {
	return func(uc *SessionUseCase) { uc.policy = p }
}

// WithMetrics records command metrics.
func WithMetrics(m *metrics.Metrics) SessionOption {
	return func(uc *SessionUseCase) { uc.metrics = m }
}

// WithLogger sets the command logger.
func WithLogger(logger zerolog.Logger) SessionOption {
	return func(uc *SessionUseCase) { uc.logger = logger }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) SessionOption {
	return func(uc *SessionUseCase) { uc.now = now }
}

// NewSessionUseCase creates a new SessionUseCase.
func NewSessionUseCase(
	txManager TransactionManager,
	sessionRepo SessionRepository,
	operationRepo OperationRepository,
	gate PermissionGate,
	idGen IDGenerator,
	opts ...SessionOption,
) *SessionUseCase {
	uc := &SessionUseCase{
		txManager:     txManager,
		sessionRepo:   sessionRepo,
		operationRepo: operationRepo,
		gate:          gate,
		idGen:         idGen,
		cacheTTL:      DefaultSessionCacheTTL,
		retrier:       NewConflictRetrier(1),
		policy:        domain.DefaultDiscrepancyPolicy(),
		logger:        zerolog.Nop(),
		tracer:        otel.Tracer(tracerName),
		now:           func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// OpenSessionInput represents input for opening a till.
type OpenSessionInput struct {
	PointOfSaleID  string
	CompanyID      string
	ShiftLabel     string
	OpeningFloat   decimal.Decimal
	Actor          domain.Actor
	IdempotencyKey string
}

// CashMovementInput represents input for a withdrawal or in-house consumption.
type CashMovementInput struct {
	SessionID      string
	Amount         decimal.Decimal
	Note           string
	Actor          domain.Actor
	IdempotencyKey string
}

// RefundInput represents input for a refund.
type RefundInput struct {
	SessionID      string
	Amount         decimal.Decimal
	PaymentMethod  string
	OrderRef       string
	Note           string
	Actor          domain.Actor
	IdempotencyKey string
}

// CountInput represents input for a recount or close.
type CountInput struct {
	SessionID      string
	Counts         domain.DenominationCount
	Note           string
	Actor          domain.Actor
	IdempotencyKey string
}

// Open starts a new shift on a point of sale.
func (uc *SessionUseCase) Open(ctx context.Context, input OpenSessionInput) (*domain.TillSession, error) {
	ctx, span := uc.tracer.Start(ctx, "SessionUseCase.Open",
		trace.WithAttributes(attribute.String("till.point_of_sale_id", input.PointOfSaleID)))
	defer span.End()
	start := time.Now()

	session, err := uc.open(ctx, input)
	uc.finish(span, "open", "", start, session, err)
	if err != nil {
		return nil, err
	}
	if uc.metrics != nil {
		uc.metrics.SessionsOpen.Inc()
	}
	return session, nil
}

func (uc *SessionUseCase) open(ctx context.Context, input OpenSessionInput) (*domain.TillSession, error) {
	if err := validateOpen(input); err != nil {
		return nil, err
	}

	existing, err := uc.sessionRepo.GetOpenByPointOfSale(ctx, input.PointOfSaleID)
	switch {
	case err == nil:
		if replay := uc.replayOpen(ctx, existing, input.IdempotencyKey); replay != nil {
			return replay, nil
		}
		return nil, fmt.Errorf("%w: %s has session %s", domain.ErrAlreadyOpen, input.PointOfSaleID, existing.ID)
	case !errors.Is(err, domain.ErrSessionNotFound):
		return nil, err
	}

	sales := uc.currentSales(ctx, input.PointOfSaleID, nil)
	session, op := domain.NewSession(
		input.PointOfSaleID,
		input.CompanyID,
		input.ShiftLabel,
		input.OpeningFloat,
		input.Actor.ID,
		sales,
		uc.now(),
	)
	session.ID = uc.idGen.Generate()
	op.ID = uc.idGen.Generate()
	op.SessionID = session.ID
	op.IdempotencyKey = input.IdempotencyKey

	if err := uc.persist(ctx, nil, session, op, input.Actor); err != nil {
		return nil, err
	}
	return session, nil
}

// replayOpen returns the already open session when it was opened with the
// same idempotency key.
func (uc *SessionUseCase) replayOpen(ctx context.Context, existing *domain.TillSession, key string) *domain.TillSession {
	if key == "" {
		return nil
	}
	op, err := uc.operationRepo.GetByIdempotencyKey(ctx, existing.ID, key)
	if err != nil || op.Kind != domain.OperationKindOpen {
		return nil
	}
	return existing
}

// Withdraw removes cash from the drawer.
func (uc *SessionUseCase) Withdraw(ctx context.Context, input CashMovementInput) (*domain.TillSession, error) {
	return uc.cashMovement(ctx, "withdrawal", domain.OperationKindWithdrawal, input)
}

// InHouseConsumption writes off staff consumption against the drawer.
func (uc *SessionUseCase) InHouseConsumption(ctx context.Context, input CashMovementInput) (*domain.TillSession, error) {
	return uc.cashMovement(ctx, "in_house_consumption", domain.OperationKindInHouseConsumption, input)
}

func (uc *SessionUseCase) cashMovement(ctx context.Context, command string, kind domain.OperationKind, input CashMovementInput) (*domain.TillSession, error) {
	ctx, span := uc.startCommand(ctx, command, input.SessionID)
	defer span.End()
	start := time.Now()

	err := validateMovement(input.SessionID, input.Amount, input.Note, input.IdempotencyKey, input.Actor)
	var session *domain.TillSession
	if err == nil {
		session, err = uc.execute(ctx, mutation{
			command:        command,
			sessionID:      input.SessionID,
			actor:          input.Actor,
			capability:     domain.CapabilityWithdraw,
			idempotencyKey: input.IdempotencyKey,
			apply: func(_ context.Context, s *domain.TillSession, _ time.Time) (*domain.Operation, error) {
				op, err := domain.ApplyCashMovement(s, kind, input.Amount, "")
				if err != nil {
					return nil, err
				}
				op.Note = input.Note
				return op, nil
			},
		})
	}
	uc.finish(span, command, input.SessionID, start, session, err)
	if err != nil {
		return nil, err
	}
	if uc.metrics != nil {
		uc.metrics.CashMovementAmount.WithLabelValues(string(kind)).Observe(input.Amount.InexactFloat64())
	}
	return session, nil
}

// Refund records a refund. Only cash refunds touch expected cash.
func (uc *SessionUseCase) Refund(ctx context.Context, input RefundInput) (*domain.TillSession, error) {
	ctx, span := uc.startCommand(ctx, "refund", input.SessionID)
	defer span.End()
	start := time.Now()

	method, err := validateRefund(input)
	var session *domain.TillSession
	if err == nil {
		session, err = uc.execute(ctx, mutation{
			command:        "refund",
			sessionID:      input.SessionID,
			actor:          input.Actor,
			idempotencyKey: input.IdempotencyKey,
			apply: func(_ context.Context, s *domain.TillSession, _ time.Time) (*domain.Operation, error) {
				op, err := domain.ApplyCashMovement(s, domain.OperationKindRefund, input.Amount, method)
				if err != nil {
					return nil, err
				}
				op.OrderRef = input.OrderRef
				op.Note = input.Note
				return op, nil
			},
		})
	}
	uc.finish(span, "refund", input.SessionID, start, session, err)
	if err != nil {
		return nil, err
	}
	if uc.metrics != nil {
		uc.metrics.CashMovementAmount.WithLabelValues(string(domain.OperationKindRefund)).Observe(input.Amount.InexactFloat64())
	}
	return session, nil
}

// Recount records a physical count without closing the session.
func (uc *SessionUseCase) Recount(ctx context.Context, input CountInput) (*domain.TillSession, error) {
	return uc.count(ctx, "recount", false, input)
}

// Close records the final count and seals the session.
func (uc *SessionUseCase) Close(ctx context.Context, input CountInput) (*domain.TillSession, error) {
	session, err := uc.count(ctx, "close", true, input)
	if err != nil {
		return nil, err
	}
	if uc.metrics != nil {
		uc.metrics.SessionsOpen.Dec()
		if session.Discrepancy != nil {
			_, class := uc.policy.Classify(session.ExpectedCash, *session.Discrepancy)
			uc.metrics.CloseDiscrepancy.WithLabelValues(string(class)).Observe(session.Discrepancy.Abs().InexactFloat64())
		}
	}
	return session, nil
}

func (uc *SessionUseCase) count(ctx context.Context, command string, closing bool, input CountInput) (*domain.TillSession, error) {
	ctx, span := uc.startCommand(ctx, command, input.SessionID)
	defer span.End()
	start := time.Now()

	counted, err := validateCount(input)
	capability := domain.CapabilityRecount
	if closing {
		capability = domain.CapabilityClose
	}

	var session *domain.TillSession
	if err == nil {
		session, err = uc.execute(ctx, mutation{
			command:        command,
			sessionID:      input.SessionID,
			actor:          input.Actor,
			capability:     capability,
			idempotencyKey: input.IdempotencyKey,
			apply: func(ctx context.Context, s *domain.TillSession, now time.Time) (*domain.Operation, error) {
				if closing {
					if err := uc.verifyLedger(ctx, s); err != nil {
						return nil, err
					}
				}
				uc.currentSales(ctx, s.PointOfSaleID, s)
				op, err := domain.ApplyCount(s, counted, closing, input.Actor.ID, now)
				if err != nil {
					return nil, err
				}
				op.Note = input.Note
				return op, nil
			},
		})
	}
	uc.finish(span, command, input.SessionID, start, session, err)
	if err != nil {
		return nil, err
	}
	return session, nil
}

// GetSession returns the latest committed snapshot of a session.
func (uc *SessionUseCase) GetSession(ctx context.Context, id string) (*domain.TillSession, error) {
	if session, ok := uc.cachedSession(ctx, id); ok {
		return session, nil
	}

	session, err := uc.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.storeSession(ctx, session); err != nil {
		uc.logger.Debug().Err(err).Str("session_id", id).Msg("session cache write failed")
	}
	return session, nil
}

// GetOpenSession returns the open session of a point of sale.
func (uc *SessionUseCase) GetOpenSession(ctx context.Context, pointOfSaleID string) (*domain.TillSession, error) {
	return uc.sessionRepo.GetOpenByPointOfSale(ctx, pointOfSaleID)
}

// mutation describes one state-changing command against an open session.
type mutation struct {
	command        string
	sessionID      string
	actor          domain.Actor
	capability     domain.Capability
	idempotencyKey string
	// apply mutates the candidate snapshot and returns the entry to append.
	apply func(ctx context.Context, s *domain.TillSession, now time.Time) (*domain.Operation, error)
}

func (uc *SessionUseCase) execute(ctx context.Context, m mutation) (*domain.TillSession, error) {
	if err := authorize(ctx, uc.gate, m.actor, m.capability); err != nil {
		return nil, err
	}

	if m.idempotencyKey != "" {
		if _, err := uc.operationRepo.GetByIdempotencyKey(ctx, m.sessionID, m.idempotencyKey); err == nil {
			return uc.replayed(ctx, m)
		} else if !errors.Is(err, domain.ErrOperationNotFound) {
			return nil, err
		}
	}

	var (
		result  *domain.TillSession
		attempt int
	)
	err := uc.retrier.Retry(ctx, func() error {
		attempt++
		if attempt > 1 && uc.metrics != nil {
			uc.metrics.TillConflictRetries.Inc()
		}
		session, err := uc.applyOnce(ctx, m)
		if err != nil {
			return err
		}
		result = session
		return nil
	})

	switch {
	case err == nil:
		return result, nil
	case errors.Is(err, domain.ErrDuplicateOperation):
		return uc.replayed(ctx, m)
	case errors.Is(err, domain.ErrStaleSnapshot):
		return nil, fmt.Errorf("%w: session %s after %d attempts", domain.ErrConcurrentModification, m.sessionID, attempt)
	default:
		return nil, err
	}
}

// replayed answers a command whose idempotency key was already applied with
// the current snapshot instead of applying it twice.
func (uc *SessionUseCase) replayed(ctx context.Context, m mutation) (*domain.TillSession, error) {
	uc.logger.Info().
		Str("command", m.command).
		Str("session_id", m.sessionID).
		Str("idempotency_key", m.idempotencyKey).
		Msg("command already applied, returning current snapshot")
	return uc.sessionRepo.GetByID(ctx, m.sessionID)
}

func (uc *SessionUseCase) applyOnce(ctx context.Context, m mutation) (*domain.TillSession, error) {
	current, err := uc.sessionRepo.GetByID(ctx, m.sessionID)
	if err != nil {
		return nil, err
	}
	if err := current.EnsureOpen(); err != nil {
		return nil, err
	}

	next := current.Clone()
	now := uc.now()
	op, err := m.apply(ctx, next, now)
	if err != nil {
		return nil, err
	}

	next.Version = current.Version + 1
	next.UpdatedAt = now

	op.ID = uc.idGen.Generate()
	op.SessionID = current.ID
	op.PointOfSaleID = current.PointOfSaleID
	op.Sequence = next.Version
	op.Actor = m.actor.ID
	op.IdempotencyKey = m.idempotencyKey
	op.CreatedAt = now

	if err := uc.persist(ctx, current, next, op, m.actor); err != nil {
		return nil, err
	}
	return next, nil
}

// persist commits op and the next snapshot atomically. A nil before means
// the session is new.
func (uc *SessionUseCase) persist(ctx context.Context, before, next *domain.TillSession, op *domain.Operation, actor domain.Actor) error {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	if before == nil {
		if err := uc.sessionRepo.Create(txCtx, tx, next); err != nil {
			return err
		}
		if err := uc.operationRepo.Create(txCtx, tx, op); err != nil {
			return err
		}
	} else {
		if err := uc.operationRepo.Create(txCtx, tx, op); err != nil {
			return err
		}
		if err := uc.sessionRepo.Update(txCtx, tx, next, before.Version); err != nil {
			return err
		}
	}

	if uc.outboxRepo != nil {
		event := &domain.OutboxEvent{
			ID:            uc.idGen.Generate(),
			AggregateID:   next.ID,
			AggregateType: domain.AggregateTypeTillSession,
			EventType:     domain.EventTypeFor(op.Kind),
			Payload:       domain.NewTillOperationEvent(next, op).Map(),
			CreatedAt:     op.CreatedAt,
		}
		if err := uc.outboxRepo.Create(txCtx, tx, event); err != nil {
			return err
		}
	}

	if uc.auditRepo != nil {
		meta := domain.RequestMetaFromContext(ctx)
		auditLog := &domain.AuditLog{
			ID:           uc.idGen.Generate(),
			UserID:       actor.ID,
			Action:       string(domain.AuditActionFor(op.Kind)),
			ResourceType: domain.AggregateTypeTillSession,
			ResourceID:   next.ID,
			IPAddress:    meta.IPAddress,
			UserAgent:    meta.UserAgent,
			RequestID:    meta.RequestID,
			AfterState:   domain.MarshalState(next),
			Status:       string(domain.AuditStatusSuccess),
			CreatedAt:    op.CreatedAt,
		}
		if before != nil {
			auditLog.BeforeState = domain.MarshalState(before)
		}
		if err := uc.auditRepo.CreateTx(txCtx, tx, auditLog); err != nil {
			return err
		}
	}

	if err := tx.Commit(txCtx); err != nil {
		return err
	}

	if uc.metrics != nil && uc.auditRepo != nil {
		uc.metrics.AuditLogsCreated.WithLabelValues(string(domain.AuditActionFor(op.Kind)), string(domain.AuditStatusSuccess)).Inc()
	}
	uc.refreshSession(ctx, next)
	return nil
}

func (uc *SessionUseCase) verifyLedger(ctx context.Context, s *domain.TillSession) error {
	ops, err := uc.operationRepo.ListBySession(ctx, s.ID)
	if err != nil {
		return err
	}
	if _, err := domain.VerifyLedger(s, ops); err != nil {
		if errors.Is(err, domain.ErrLedgerInconsistency) {
			uc.logger.Error().Err(err).
				Str("session_id", s.ID).
				Str("point_of_sale_id", s.PointOfSaleID).
				Msg("ledger inconsistency detected, manual reconciliation required")
			if uc.metrics != nil {
				uc.metrics.LedgerInconsistencies.Inc()
			}
		}
		return err
	}
	return nil
}

// currentSales reads the sales counters for a point of sale. When s is
// given the counters are applied to it. A failing aggregator leaves s
// untouched since the counters never decrease.
func (uc *SessionUseCase) currentSales(ctx context.Context, pointOfSaleID string, s *domain.TillSession) domain.SalesTotals {
	totals := domain.SalesTotals{Cash: decimal.Zero, Card: decimal.Zero, Online: decimal.Zero}
	if uc.sales == nil {
		return totals
	}
	t, err := uc.sales.CumulativeSales(ctx, pointOfSaleID)
	if err != nil {
		uc.logger.Warn().Err(err).Str("point_of_sale_id", pointOfSaleID).Msg("sales aggregator unavailable, keeping previous totals")
		return totals
	}
	if s != nil {
		if regressed := s.ApplySales(t); len(regressed) > 0 {
			uc.logger.Warn().
				Str("session_id", s.ID).
				Strs("channels", regressed).
				Msg("sales aggregator reported lower cumulative sales, keeping stored values")
		}
	}
	return t
}

func (uc *SessionUseCase) startCommand(ctx context.Context, command, sessionID string) (context.Context, trace.Span) {
	return uc.tracer.Start(ctx, "SessionUseCase."+command,
		trace.WithAttributes(attribute.String("till.session_id", sessionID)))
}

// finish records the outcome of a command on its span, metrics and log.
func (uc *SessionUseCase) finish(span trace.Span, command, sessionID string, start time.Time, session *domain.TillSession, err error) {
	if uc.metrics != nil {
		uc.metrics.TillCommandDuration.WithLabelValues(command).Observe(time.Since(start).Seconds())
	}

	if err != nil {
		code := domain.ErrorCode(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, code)
		if uc.metrics != nil {
			uc.metrics.TillCommandErrors.WithLabelValues(command, code).Inc()
		}

		event := uc.logger.Warn()
		if code == "ledger_inconsistency" || code == "transient_storage" || code == "internal" {
			event = uc.logger.Error()
		}
		event.Err(err).
			Str("command", command).
			Str("session_id", sessionID).
			Str("error_type", code).
			Msg("till command rejected")
		return
	}

	if uc.metrics != nil {
		uc.metrics.TillCommands.WithLabelValues(command).Inc()
	}
	span.SetAttributes(attribute.Int64("till.version", session.Version))
	uc.logger.Info().
		Str("command", command).
		Str("session_id", session.ID).
		Str("point_of_sale_id", session.PointOfSaleID).
		Str("state", string(session.State)).
		Str("expected_cash", session.ExpectedCash.StringFixed(2)).
		Int64("version", session.Version).
		Msg("till command applied")
}

func (uc *SessionUseCase) cachedSession(ctx context.Context, id string) (*domain.TillSession, bool) {
	if uc.cache == nil {
		return nil, false
	}
	data, err := uc.cache.Get(ctx, sessionCachePrefix+id)
	if err != nil || len(data) == 0 {
		return nil, false
	}
	var session domain.TillSession
	if err := json.Unmarshal(data, &session); err != nil {
		uc.logger.Warn().Err(err).Str("session_id", id).Msg("discarding unreadable cached session")
		return nil, false
	}
	return &session, true
}

// storeSession caches a snapshot unless the cache already holds a newer
// version of the same session.
func (uc *SessionUseCase) storeSession(ctx context.Context, session *domain.TillSession) error {
	if uc.cache == nil {
		return nil
	}
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	written, err := uc.cache.SetVersioned(ctx, sessionCachePrefix+session.ID, data, session.Version, uc.cacheTTL)
	if err != nil {
		return err
	}
	if !written {
		uc.logger.Debug().
			Str("session_id", session.ID).
			Int64("version", session.Version).
			Msg("newer session snapshot already cached")
	}
	return nil
}

// refreshSession writes a committed snapshot through to the cache and falls
// back to dropping the entry when the write fails.
func (uc *SessionUseCase) refreshSession(ctx context.Context, session *domain.TillSession) {
	if uc.cache == nil {
		return
	}
	err := uc.storeSession(ctx, session)
	if err == nil {
		return
	}
	uc.logger.Debug().Err(err).Str("session_id", session.ID).Msg("session cache write failed")
	if err := uc.cache.Delete(ctx, sessionCachePrefix+session.ID); err != nil {
		uc.logger.Warn().Err(err).Str("session_id", session.ID).Msg("session cache invalidation failed")
	}
}

func validateOpen(input OpenSessionInput) error {
	if err := input.Actor.Validate(); err != nil {
		return err
	}
	if err := domain.ValidateRequired("pointOfSaleId", input.PointOfSaleID); err != nil {
		return err
	}
	if err := domain.ValidateRequired("companyId", input.CompanyID); err != nil {
		return err
	}
	if err := domain.ValidateOptional("shiftLabel", input.ShiftLabel); err != nil {
		return err
	}
	if err := domain.ValidateIdempotencyKey(input.IdempotencyKey); err != nil {
		return err
	}
	if err := domain.ValidateOpeningFloat(input.OpeningFloat); err != nil {
		return domain.NewFieldError("openingFloat", err)
	}
	return nil
}

func validateMovement(sessionID string, amount decimal.Decimal, note, idempotencyKey string, actor domain.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if err := domain.ValidateRequired("sessionId", sessionID); err != nil {
		return err
	}
	if err := domain.ValidateIdempotencyKey(idempotencyKey); err != nil {
		return err
	}
	if err := domain.ValidateAmount(amount); err != nil {
		return domain.NewFieldError("amount", err)
	}
	return domain.ValidateNote("note", note)
}

func validateRefund(input RefundInput) (domain.PaymentMethod, error) {
	if err := validateMovement(input.SessionID, input.Amount, input.Note, input.IdempotencyKey, input.Actor); err != nil {
		return "", err
	}
	if err := domain.ValidateOptional("orderRef", input.OrderRef); err != nil {
		return "", err
	}
	method, err := domain.ParsePaymentMethod(input.PaymentMethod)
	if err != nil {
		return "", domain.NewFieldError("paymentMethod", err)
	}
	return method, nil
}

func validateCount(input CountInput) (decimal.Decimal, error) {
	if err := input.Actor.Validate(); err != nil {
		return decimal.Zero, err
	}
	if err := domain.ValidateRequired("sessionId", input.SessionID); err != nil {
		return decimal.Zero, err
	}
	if err := domain.ValidateIdempotencyKey(input.IdempotencyKey); err != nil {
		return decimal.Zero, err
	}
	if err := domain.ValidateNote("note", input.Note); err != nil {
		return decimal.Zero, err
	}
	total, err := input.Counts.Total()
	if err != nil {
		return decimal.Zero, domain.NewFieldError("denominations", err)
	}
	return total, nil
}
