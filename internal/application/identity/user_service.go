package identity

import (
	"context"

	"github.com/tsaci/backend/internal/domain/identity"
	"github.com/tsaci/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// UserService handles user management operations
type UserService struct {
	userRepo identity.UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new user management service
func NewUserService(userRepo identity.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{userRepo: userRepo, logger: logger}
}

// List returns a page of users
func (s *UserService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[UserInfo], error) {
	users, err := s.userRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.userRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	infos := make([]UserInfo, 0, len(users))
	for i := range users {
		infos = append(infos, NewUserInfo(&users[i]))
	}

	page := shared.NewPaginated(infos, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Get returns one user by ID
func (s *UserService) Get(ctx context.Context, id int64) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	info := NewUserInfo(user)
	return &info, nil
}

// Update changes a user's name, email or role
func (s *UserService) Update(ctx context.Context, id int64, input UpdateUserInput) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		if err := user.SetName(input.Name); err != nil {
			return nil, err
		}
	}
	if input.Email != "" && input.Email != user.Email {
		exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
		if err != nil {
			return nil, shared.ErrStorageFailure
		}
		if exists {
			return nil, shared.NewDomainError("EMAIL_TAKEN", "An account with this email already exists")
		}
		if err := user.SetEmail(input.Email); err != nil {
			return nil, err
		}
	}
	if input.Role != "" {
		if err := user.SetRole(identity.Role(input.Role)); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to update user", zap.Int64("user_id", id), zap.Error(err))
		return nil, shared.ErrStorageFailure
	}

	info := NewUserInfo(user)
	return &info, nil
}

// Delete removes a user account
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("User deleted", zap.Int64("user_id", id))
	return nil
}
