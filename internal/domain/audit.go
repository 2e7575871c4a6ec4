package domain

import (
	"encoding/json"
	"time"
)

// AuditLog represents an audit trail entry for compliance and debugging
type AuditLog struct {
	ID           string
	UserID       string // Who performed the action
	Action       string // What action (till.open, till.close, etc.)
	ResourceType string // Always till_session for now
	ResourceID   string // Session ID
	IPAddress    string
	UserAgent    string
	RequestID    string
	BeforeState  JSON
	AfterState   JSON
	Status       string
	ErrorMessage string
	CreatedAt    time.Time
}

// JSON is a type alias for JSON data
type JSON map[string]any

// AuditAction represents different types of auditable actions
type AuditAction string

const (
	AuditActionTillOpen               AuditAction = "till.open"
	AuditActionTillWithdrawal         AuditAction = "till.withdrawal"
	AuditActionTillInHouseConsumption AuditAction = "till.in_house_consumption"
	AuditActionTillRefund             AuditAction = "till.refund"
	AuditActionTillRecount            AuditAction = "till.recount"
	AuditActionTillClose              AuditAction = "till.close"
)

// AuditActionFor maps an operation kind to its audit action.
func AuditActionFor(kind OperationKind) AuditAction {
	switch kind {
	case OperationKindOpen:
		return AuditActionTillOpen
	case OperationKindWithdrawal:
		return AuditActionTillWithdrawal
	case OperationKindInHouseConsumption:
		return AuditActionTillInHouseConsumption
	case OperationKindRefund:
		return AuditActionTillRefund
	case OperationKindRecount:
		return AuditActionTillRecount
	default:
		return AuditActionTillClose
	}
}

// AuditStatus represents the status of an audited action
type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusFailure AuditStatus = "failure"
)

// MarshalState converts a domain object to JSON for audit logging
func MarshalState(v any) JSON {
	if v == nil {
		return nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return JSON{"error": "failed to marshal state"}
	}

	var result JSON
	if err := json.Unmarshal(data, &result); err != nil {
		return JSON{"error": "failed to unmarshal state"}
	}

	return result
}
