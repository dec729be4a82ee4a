package audit

import (
	"context"
	"time"

	"github.com/tsaci/backend/internal/domain/audit"
	"go.uber.org/zap"
)

// RecordInput describes one event for the audit trail
type RecordInput struct {
	UserID     *int64
	Action     audit.Action
	EntityType string
	EntityID   *int64
	Details    string
	IPAddress  string
}

// Service records and queries the audit trail
type Service struct {
	logRepo audit.LogRepository
	logger  *zap.Logger
}

// NewService creates a new audit service
func NewService(logRepo audit.LogRepository, logger *zap.Logger) *Service {
	return &Service{logRepo: logRepo, logger: logger}
}

// Record appends an entry to the trail. A failed write is logged and
// swallowed: the audit trail never fails the operation it describes.
func (s *Service) Record(ctx context.Context, input RecordInput) {
	entry, err := audit.NewLog(input.UserID, input.Action, input.EntityType, input.EntityID, input.Details, input.IPAddress)
	if err != nil {
		s.logger.Warn("Dropped malformed audit entry", zap.Error(err))
		return
	}
	if err := s.logRepo.Save(ctx, entry); err != nil {
		s.logger.Error("Failed to write audit entry",
			zap.String("action", string(input.Action)),
			zap.String("entity_type", input.EntityType),
			zap.Error(err))
	}
}

// List returns audit entries matching the filter, newest first
func (s *Service) List(ctx context.Context, filter audit.Filter) ([]audit.Entry, error) {
	return s.logRepo.FindAll(ctx, filter)
}

// Stats summarizes the trail over a period; zero bounds mean all time
func (s *Service) Stats(ctx context.Context, from, to time.Time) (*audit.Stats, error) {
	return s.logRepo.GetStats(ctx, from, to)
}
