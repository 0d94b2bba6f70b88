package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/yashrajoria/atelier-backend/common/auth"
	apperrors "github.com/yashrajoria/atelier-backend/common/errors"
	"github.com/yashrajoria/atelier-backend/models"
	aws_pkg "github.com/yashrajoria/atelier-backend/pkg/aws"
	"github.com/yashrajoria/atelier-backend/repository"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const AccessTokenTTL = 24 * time.Hour

type ITokenService interface {
	Issue(subject, role, tokenType string, ttl time.Duration) (string, time.Time, error)
	ParseAndValidateToken(tokenStr, expectedType string) (jwt.MapClaims, error)
}

// AuthService handles storefront customer login and registration.
type AuthService interface {
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
	Register(ctx context.Context, req *models.RegisterRequest) (*models.LoginResponse, error)
}

type authServiceImpl struct {
	users      repository.UserRepository
	tokens     ITokenService
	activities ActivityService
	events     *EventPublisher
	metrics    Metrics
	logger     *zap.Logger
	now        func() time.Time
}

func NewAuthService(
	users repository.UserRepository,
	tokens ITokenService,
	activities ActivityService,
	events *EventPublisher,
	metrics Metrics,
	logger *zap.Logger,
) AuthService {
	return &authServiceImpl{
		users:      users,
		tokens:     tokens,
		activities: activities,
		events:     events,
		metrics:    metrics,
		logger:     logger,
		now:        time.Now,
	}
}

// Login checks the password of an active user. Unknown users, inactive users
// and wrong passwords all fail the same way.
func (s *authServiceImpl) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.users.FindByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.FromDB(err, "User not found")
	}
	if !user.IsActive {
		return nil, apperrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := s.users.TouchLastLogin(ctx, user.ID, s.now()); err != nil {
		s.logger.Warn("Failed to record last login", zap.String("user_id", user.ID.String()), zap.Error(err))
	}

	token, _, err := s.tokens.Issue(user.ID.String(), string(user.Role), auth.TypeAccess, AccessTokenTTL)
	if err != nil {
		s.logger.Error("Failed to issue access token", zap.Error(err))
		return nil, apperrors.Internal("Failed to issue token", err)
	}

	s.logger.Info("User logged in", zap.String("user_id", user.ID.String()))
	return &models.LoginResponse{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		UserType: user.Role,
		Message:  "Login successful",
		Token:    token,
	}, nil
}

// Register creates an active customer whose full name starts out as the
// username.
func (s *authServiceImpl) Register(ctx context.Context, req *models.RegisterRequest) (*models.LoginResponse, error) {
	if req.Password != req.ConfirmPassword {
		return nil, apperrors.Validation("Passwords do not match")
	}
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)

	taken, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, apperrors.FromDB(err, "User not found")
	}
	if taken {
		return nil, apperrors.Conflict("Username already exists")
	}
	taken, err = s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.FromDB(err, "User not found")
	}
	if taken {
		return nil, apperrors.Conflict("Email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal("Failed to hash password", err)
	}

	user := &models.User{
		Role:     models.RoleCustomer,
		Username: username,
		Email:    email,
		Password: string(hash),
		FullName: username,
		IsActive: true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflict("Username or email already exists")
		}
		s.logger.Error("Failed to create user", zap.String("username", username), zap.Error(err))
		return nil, apperrors.Internal("Failed to create user", err)
	}

	s.logger.Info("Customer registered", zap.String("user_id", user.ID.String()))

	if err := s.activities.LogCustomerSignup(ctx, user); err != nil {
		s.logger.Warn("Failed to log signup activity", zap.String("user_id", user.ID.String()), zap.Error(err))
	}
	s.events.Publish(ctx, EventCustomerSignedUp, models.CustomerSignedUpEvent{
		EventType: EventCustomerSignedUp,
		UserID:    user.ID.String(),
		Username:  user.Username,
		Email:     user.Email,
		Timestamp: s.now(),
	})
	recordCount(s.metrics, s.logger, aws_pkg.MetricSignups)

	return &models.LoginResponse{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		UserType: user.Role,
		Message:  "Registration successful",
	}, nil
}
