package audit

import (
	"context"
	"strings"
	"time"

	"github.com/tsaci/backend/internal/domain/shared"
)

// Action names what a recorded event did to its entity
type Action string

const (
	ActionCreate   Action = "CREATE"
	ActionUpdate   Action = "UPDATE"
	ActionDelete   Action = "DELETE"
	ActionLogin    Action = "LOGIN"
	ActionApprove  Action = "APPROVE"
	ActionReject   Action = "REJECT"
	ActionComplete Action = "COMPLETE"
	ActionCancel   Action = "CANCEL"
	ActionAdjust   Action = "ADJUST"
)

// Log is one entry in the audit trail: who did what to which entity.
// UserID is nullable because unauthenticated events (login, registration)
// are recorded too. Writing an entry must never fail the operation it
// describes; callers log and continue on error.
type Log struct {
	shared.BaseEntity
	UserID     *int64 `gorm:"index" json:"user_id,omitempty"`
	Action     Action `gorm:"size:20;not null;index" json:"action"`
	EntityType string `gorm:"size:50;not null;index" json:"entity_type"`
	EntityID   *int64 `gorm:"index" json:"entity_id,omitempty"`
	Details    string `gorm:"type:text" json:"details,omitempty"`
	IPAddress  string `gorm:"size:45" json:"ip_address,omitempty"`
}

// TableName returns the table name for GORM
func (Log) TableName() string {
	return "audit_logs"
}

// NewLog creates an audit trail entry
func NewLog(userID *int64, action Action, entityType string, entityID *int64, details, ipAddress string) (*Log, error) {
	entityType = strings.TrimSpace(entityType)
	if action == "" {
		return nil, shared.NewDomainError("INVALID_ACTION", "Audit action is required")
	}
	if entityType == "" {
		return nil, shared.NewDomainError("INVALID_ENTITY_TYPE", "Audit entity type is required")
	}

	return &Log{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
		IPAddress:  ipAddress,
	}, nil
}

// Entry is an audit log joined with the acting user for list views
type Entry struct {
	Log
	UserName  string `gorm:"column:user_name" json:"user_name,omitempty"`
	UserEmail string `gorm:"column:user_email" json:"user_email,omitempty"`
}

// Stats summarizes the audit trail over a period
type Stats struct {
	TotalEvents int64 `gorm:"column:total_events" json:"total_events"`
	UniqueUsers int64 `gorm:"column:unique_users" json:"unique_users"`
	Creates     int64 `gorm:"column:creates" json:"creates"`
	Updates     int64 `gorm:"column:updates" json:"updates"`
	Deletes     int64 `gorm:"column:deletes" json:"deletes"`
	Logins      int64 `gorm:"column:logins" json:"logins"`
}

// Filter narrows an audit trail query. Zero values mean "any".
type Filter struct {
	UserID     *int64
	EntityType string
	Action     Action
	From       time.Time
	To         time.Time
	Limit      int
}

// LogRepository defines the persistence interface for the audit trail
type LogRepository interface {
	Save(ctx context.Context, log *Log) error
	FindAll(ctx context.Context, filter Filter) ([]Entry, error)
	GetStats(ctx context.Context, from, to time.Time) (*Stats, error)
}
