package domain

import "time"

// Event types
const (
	EventTypeTillOpened             = "till.opened"
	EventTypeTillWithdrawal         = "till.withdrawal"
	EventTypeTillInHouseConsumption = "till.in_house_consumption"
	EventTypeTillRefund             = "till.refund"
	EventTypeTillRecounted          = "till.recounted"
	EventTypeTillClosed             = "till.closed"
)

// AggregateTypeTillSession is the aggregate every till event belongs to.
const AggregateTypeTillSession = "till_session"

// EventTypeFor maps an operation kind to its outbox event type.
func EventTypeFor(kind OperationKind) string {
	switch kind {
	case OperationKindOpen:
		return EventTypeTillOpened
	case OperationKindWithdrawal:
		return EventTypeTillWithdrawal
	case OperationKindInHouseConsumption:
		return EventTypeTillInHouseConsumption
	case OperationKindRefund:
		return EventTypeTillRefund
	case OperationKindRecount:
		return EventTypeTillRecounted
	default:
		return EventTypeTillClosed
	}
}

// OutboxEvent represents an event to be published
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// TillOperationEvent is the payload of every till event.
type TillOperationEvent struct {
	SessionID       string `json:"session_id"`
	PointOfSaleID   string `json:"point_of_sale_id"`
	OperationID     string `json:"operation_id"`
	Sequence        int64  `json:"sequence"`
	Kind            string `json:"kind"`
	Amount          string `json:"amount"`
	SignedCashDelta string `json:"signed_cash_delta"`
	PaymentMethod   string `json:"payment_method,omitempty"`
	ExpectedCash    string `json:"expected_cash"`
	CountedCash     string `json:"counted_cash,omitempty"`
	Discrepancy     string `json:"discrepancy,omitempty"`
	State           string `json:"state"`
	Actor           string `json:"actor"`
	EventAt         string `json:"event_at"`
}

// NewTillOperationEvent builds the event payload for op applied to s.
func NewTillOperationEvent(s *TillSession, op *Operation) TillOperationEvent {
	e := TillOperationEvent{
		SessionID:       s.ID,
		PointOfSaleID:   s.PointOfSaleID,
		OperationID:     op.ID,
		Sequence:        op.Sequence,
		Kind:            string(op.Kind),
		Amount:          op.Amount.StringFixed(2),
		SignedCashDelta: op.SignedCashDelta.StringFixed(2),
		PaymentMethod:   string(op.PaymentMethod),
		ExpectedCash:    s.ExpectedCash.StringFixed(2),
		State:           string(s.State),
		Actor:           op.Actor,
		EventAt:         op.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
	if s.CountedCash != nil {
		e.CountedCash = s.CountedCash.StringFixed(2)
	}
	if s.Discrepancy != nil {
		e.Discrepancy = s.Discrepancy.StringFixed(2)
	}
	return e
}

// Map converts the payload for OutboxEvent.Payload.
func (e TillOperationEvent) Map() map[string]any {
	return map[string]any(MarshalState(e))
}
