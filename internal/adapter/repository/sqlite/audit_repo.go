package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/iho/gotill/internal/domain"
	"github.com/iho/gotill/internal/usecase"
)

// AuditRepository implements usecase.AuditRepository.
type AuditRepository struct {
	db *sql.DB
}

// CreateTx inserts an audit log entry inside tx.
func (r *AuditRepository) CreateTx(ctx context.Context, tx usecase.Transaction, log *domain.AuditLog) error {
	sqlTx, err := sqlTx(tx)
	if err != nil {
		return err
	}

	if log.ID == "" {
		log.ID = uuid.New().String()
	}

	before, err := marshalState(log.BeforeState)
	if err != nil {
		return err
	}
	after, err := marshalState(log.AfterState)
	if err != nil {
		return err
	}

	_, err = sqlTx.ExecContext(ctx,
		`INSERT INTO audit_logs (
		   id, user_id, action, resource_type, resource_id, ip_address, user_agent,
		   request_id, before_state, after_state, status, error_message, created_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		log.ID,
		log.UserID,
		log.Action,
		log.ResourceType,
		log.ResourceID,
		log.IPAddress,
		log.UserAgent,
		log.RequestID,
		before,
		after,
		log.Status,
		log.ErrorMessage,
		toMillis(log.CreatedAt),
	)
	return mapError(err, nil)
}

func marshalState(state domain.JSON) (sql.NullString, error) {
	if state == nil {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(state)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}
