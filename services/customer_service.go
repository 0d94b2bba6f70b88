package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	apperrors "github.com/yashrajoria/atelier-backend/common/errors"
	"github.com/yashrajoria/atelier-backend/models"
	"github.com/yashrajoria/atelier-backend/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CustomerService is the admin view of customer accounts.
type CustomerService interface {
	ListCustomers(ctx context.Context) ([]models.User, error)
	GetCounts(ctx context.Context) (*models.CustomerCounts, error)
	GetCustomer(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateCustomer(ctx context.Context, id uuid.UUID, req *models.UpdateCustomerRequest) (*models.User, error)
	SetStatus(ctx context.Context, id uuid.UUID, active bool) (*models.User, error)
}

type customerServiceImpl struct {
	users  repository.UserRepository
	logger *zap.Logger
}

func NewCustomerService(users repository.UserRepository, logger *zap.Logger) CustomerService {
	return &customerServiceImpl{users: users, logger: logger}
}

func (s *customerServiceImpl) ListCustomers(ctx context.Context) ([]models.User, error) {
	users, err := s.users.FindByRole(ctx, models.RoleCustomer)
	if err != nil {
		return nil, apperrors.FromDB(err, "Customer not found")
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

func (s *customerServiceImpl) GetCounts(ctx context.Context) (*models.CustomerCounts, error) {
	total, err := s.users.CountByRole(ctx, models.RoleCustomer, nil)
	if err != nil {
		return nil, apperrors.FromDB(err, "Customer not found")
	}
	activeFlag := true
	active, err := s.users.CountByRole(ctx, models.RoleCustomer, &activeFlag)
	if err != nil {
		return nil, apperrors.FromDB(err, "Customer not found")
	}
	return &models.CustomerCounts{Total: total, Active: active, Inactive: total - active}, nil
}

func (s *customerServiceImpl) GetCustomer(ctx context.Context, id uuid.UUID) (*models.User, error) {
	notFound := fmt.Sprintf("Customer not found with ID: %s", id)
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.FromDB(err, notFound)
	}
	if user.Role != models.RoleCustomer {
		return nil, apperrors.NotFound(notFound)
	}
	return user, nil
}

// UpdateCustomer applies a partial profile update. Changing the username or
// email to one held by another account is a conflict.
func (s *customerServiceImpl) UpdateCustomer(ctx context.Context, id uuid.UUID, req *models.UpdateCustomerRequest) (*models.User, error) {
	user, err := s.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Username != nil && strings.TrimSpace(*req.Username) != user.Username {
		taken, err := s.users.ExistsByUsername(ctx, strings.TrimSpace(*req.Username))
		if err != nil {
			return nil, apperrors.FromDB(err, "Customer not found")
		}
		if taken {
			return nil, apperrors.Conflict("Username already exists")
		}
	}
	if req.Email != nil && !strings.EqualFold(strings.TrimSpace(*req.Email), user.Email) {
		taken, err := s.users.ExistsByEmail(ctx, strings.TrimSpace(*req.Email))
		if err != nil {
			return nil, apperrors.FromDB(err, "Customer not found")
		}
		if taken {
			return nil, apperrors.Conflict("Email already exists")
		}
	}

	req.Apply(user)
	user.Username = strings.TrimSpace(user.Username)
	user.Email = strings.TrimSpace(user.Email)
	return s.save(ctx, user)
}

func (s *customerServiceImpl) SetStatus(ctx context.Context, id uuid.UUID, active bool) (*models.User, error) {
	user, err := s.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	user.IsActive = active
	return s.save(ctx, user)
}

func (s *customerServiceImpl) save(ctx context.Context, user *models.User) (*models.User, error) {
	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflict("Username or email already exists")
		}
		s.logger.Error("Failed to update customer", zap.String("customer_id", user.ID.String()), zap.Error(err))
		return nil, apperrors.Internal("Failed to update customer", err)
	}
	return user, nil
}
