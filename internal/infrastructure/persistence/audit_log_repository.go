package persistence

import (
	"context"
	"time"

	"github.com/tsaci/backend/internal/domain/audit"
	"gorm.io/gorm"
)

// defaultAuditLimit caps unbounded audit queries
const defaultAuditLimit = 100

// GormAuditLogRepository implements LogRepository using GORM
type GormAuditLogRepository struct {
	db *gorm.DB
}

// NewGormAuditLogRepository creates a new GormAuditLogRepository
func NewGormAuditLogRepository(db *gorm.DB) *GormAuditLogRepository {
	return &GormAuditLogRepository{db: db}
}

// Save appends one entry to the audit trail
func (r *GormAuditLogRepository) Save(ctx context.Context, log *audit.Log) error {
	return r.db.WithContext(ctx).Create(log).Error
}

// FindAll finds audit entries matching the filter, newest first, joined with
// the acting user's name and email
func (r *GormAuditLogRepository) FindAll(ctx context.Context, filter audit.Filter) ([]audit.Entry, error) {
	query := r.db.WithContext(ctx).Table("audit_logs").
		Select("audit_logs.*, users.name AS user_name, users.email AS user_email").
		Joins("LEFT JOIN users ON users.id = audit_logs.user_id")

	if filter.UserID != nil {
		query = query.Where("audit_logs.user_id = ?", *filter.UserID)
	}
	if filter.EntityType != "" {
		query = query.Where("audit_logs.entity_type = ?", filter.EntityType)
	}
	if filter.Action != "" {
		query = query.Where("audit_logs.action = ?", filter.Action)
	}
	if !filter.From.IsZero() {
		query = query.Where("audit_logs.created_at >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		query = query.Where("audit_logs.created_at <= ?", filter.To)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultAuditLimit
	}

	var entries []audit.Entry
	err := query.Order("audit_logs.created_at DESC, audit_logs.id DESC").
		Limit(limit).
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// GetStats aggregates the trail over a period; zero bounds mean all time
func (r *GormAuditLogRepository) GetStats(ctx context.Context, from, to time.Time) (*audit.Stats, error) {
	query := r.db.WithContext(ctx).Model(&audit.Log{}).
		Select(`COUNT(*) AS total_events,
			COUNT(DISTINCT user_id) AS unique_users,
			COUNT(CASE WHEN action = 'CREATE' THEN 1 END) AS creates,
			COUNT(CASE WHEN action = 'UPDATE' THEN 1 END) AS updates,
			COUNT(CASE WHEN action = 'DELETE' THEN 1 END) AS deletes,
			COUNT(CASE WHEN action = 'LOGIN' THEN 1 END) AS logins`)

	if !from.IsZero() {
		query = query.Where("created_at >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("created_at <= ?", to)
	}

	var stats audit.Stats
	if err := query.Scan(&stats).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}
