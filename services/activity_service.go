package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/yashrajoria/atelier-backend/common/errors"
	"github.com/yashrajoria/atelier-backend/models"
	"github.com/yashrajoria/atelier-backend/repository"
	"go.uber.org/zap"
)

// ActivityService records business events for the admin feed.
type ActivityService interface {
	LogActivity(ctx context.Context, activityType, title, description string, user *models.User) (*models.Activity, error)
	LogEvent(ctx context.Context, event models.ActivityEvent) (*models.Activity, error)
	LogCustomerSignup(ctx context.Context, user *models.User) error
	LogOrderPlaced(ctx context.Context, order *models.Order) error
	LogOrderCompleted(ctx context.Context, order *models.Order) error
	GetAll(ctx context.Context) ([]models.ActivityResponse, error)
	GetNotifications(ctx context.Context) (*models.NotificationsResponse, error)
	UnreadCount(ctx context.Context) (int64, error)
	MarkAsRead(ctx context.Context, id uuid.UUID) error
	MarkAllAsRead(ctx context.Context) error
}

type activityServiceImpl struct {
	repo   repository.ActivityRepository
	logger *zap.Logger
	now    func() time.Time
}

func NewActivityService(repo repository.ActivityRepository, logger *zap.Logger) ActivityService {
	return &activityServiceImpl{repo: repo, logger: logger, now: time.Now}
}

func (s *activityServiceImpl) LogActivity(ctx context.Context, activityType, title, description string, user *models.User) (*models.Activity, error) {
	activity := &models.Activity{
		Type:        activityType,
		Title:       title,
		Description: description,
	}
	if user != nil {
		id := user.ID
		activity.UserID = &id
		activity.UserName = user.FullName
		activity.UserEmail = user.Email
	}
	return s.save(ctx, activity)
}

// LogEvent records an activity delivered by another system.
func (s *activityServiceImpl) LogEvent(ctx context.Context, event models.ActivityEvent) (*models.Activity, error) {
	if event.EventType == "" || event.Title == "" {
		return nil, apperrors.Validation("activity event requires event_type and title")
	}
	return s.save(ctx, &models.Activity{
		Type:        event.EventType,
		Title:       event.Title,
		Description: event.Description,
		UserID:      event.UserID,
		UserName:    event.UserName,
		UserEmail:   event.UserEmail,
	})
}

func (s *activityServiceImpl) LogCustomerSignup(ctx context.Context, user *models.User) error {
	_, err := s.LogActivity(ctx, models.ActivitySignup, "New Customer Signup",
		"A new customer has registered on the platform", user)
	return err
}

func (s *activityServiceImpl) LogOrderPlaced(ctx context.Context, order *models.Order) error {
	_, err := s.save(ctx, &models.Activity{
		Type:        models.ActivityOrderPlaced,
		Title:       "New Order Placed",
		Description: fmt.Sprintf("Order #%s has been placed", order.OrderNumber),
		UserID:      order.CustomerID,
		UserName:    order.CustomerName,
		UserEmail:   order.CustomerEmail,
	})
	return err
}

func (s *activityServiceImpl) LogOrderCompleted(ctx context.Context, order *models.Order) error {
	_, err := s.save(ctx, &models.Activity{
		Type:        models.ActivityOrderCompleted,
		Title:       "Order Completed",
		Description: fmt.Sprintf("Order #%s is now %s", order.OrderNumber, order.Status),
		UserID:      order.CustomerID,
		UserName:    order.CustomerName,
		UserEmail:   order.CustomerEmail,
	})
	return err
}

func (s *activityServiceImpl) save(ctx context.Context, activity *models.Activity) (*models.Activity, error) {
	if err := s.repo.Create(ctx, activity); err != nil {
		s.logger.Error("Failed to save activity", zap.String("type", activity.Type), zap.Error(err))
		return nil, apperrors.FromDB(err, "Activity not found")
	}
	return activity, nil
}

func (s *activityServiceImpl) GetAll(ctx context.Context) ([]models.ActivityResponse, error) {
	activities, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.FromDB(err, "Activity not found")
	}
	return s.toResponses(activities), nil
}

// GetNotifications returns the unread activities with their count.
func (s *activityServiceImpl) GetNotifications(ctx context.Context) (*models.NotificationsResponse, error) {
	unread, err := s.repo.FindUnread(ctx)
	if err != nil {
		return nil, apperrors.FromDB(err, "Activity not found")
	}
	count, err := s.repo.CountUnread(ctx)
	if err != nil {
		return nil, apperrors.FromDB(err, "Activity not found")
	}
	return &models.NotificationsResponse{Notifications: s.toResponses(unread), UnreadCount: count}, nil
}

func (s *activityServiceImpl) UnreadCount(ctx context.Context) (int64, error) {
	count, err := s.repo.CountUnread(ctx)
	if err != nil {
		return 0, apperrors.FromDB(err, "Activity not found")
	}
	return count, nil
}

func (s *activityServiceImpl) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.MarkAsRead(ctx, id); err != nil {
		return apperrors.FromDB(err, "Activity not found")
	}
	return nil
}

func (s *activityServiceImpl) MarkAllAsRead(ctx context.Context) error {
	n, err := s.repo.MarkAllAsRead(ctx)
	if err != nil {
		return apperrors.FromDB(err, "Activity not found")
	}
	s.logger.Info("Marked notifications as read", zap.Int64("count", n))
	return nil
}

func (s *activityServiceImpl) toResponses(activities []models.Activity) []models.ActivityResponse {
	now := s.now()
	out := make([]models.ActivityResponse, 0, len(activities))
	for _, a := range activities {
		out = append(out, models.ActivityResponse{Activity: a, TimeAgo: TimeAgo(a.CreatedAt, now)})
	}
	return out
}

// TimeAgo renders the age of t relative to now for display.
func TimeAgo(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "Just now"
	case d < time.Hour:
		return plural(int64(d/time.Minute), "minute")
	case d < 24*time.Hour:
		return plural(int64(d/time.Hour), "hour")
	}
	days := int64(d / (24 * time.Hour))
	if days < 30 {
		return plural(days, "day")
	}
	return plural(days/30, "month")
}

func plural(n int64, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
