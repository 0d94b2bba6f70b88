package consumer

import (
	"context"
	"encoding/json"
	"net/http"

	apperrors "github.com/yashrajoria/atelier-backend/common/errors"
	"github.com/yashrajoria/atelier-backend/models"
	"github.com/yashrajoria/atelier-backend/services"
	"go.uber.org/zap"
)

// snsEnvelope unwraps the SNS → SQS message wrapper
type snsEnvelope struct {
	Message string `json:"Message"`
}

// ActivityConsumer turns events published by other systems into activity
// feed entries.
type ActivityConsumer struct {
	activities services.ActivityService
	logger     *zap.Logger
}

func NewActivityConsumer(activities services.ActivityService, logger *zap.Logger) *ActivityConsumer {
	return &ActivityConsumer{activities: activities, logger: logger}
}

// Handle processes one queue message. Malformed and invalid messages are
// dropped; a storage failure returns an error so the queue redelivers it.
func (c *ActivityConsumer) Handle(ctx context.Context, body string) error {
	payload := []byte(body)

	var envelope snsEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		c.logger.Error("failed to unmarshal SNS envelope", zap.Error(err))
		return nil
	}
	// raw SQS sends carry the event directly
	if envelope.Message != "" {
		payload = []byte(envelope.Message)
	}

	var event models.ActivityEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		c.logger.Error("failed to unmarshal activity event", zap.Error(err))
		return nil
	}

	activity, err := c.activities.LogEvent(ctx, event)
	if err != nil {
		if apperrors.As(err).Code == http.StatusBadRequest {
			c.logger.Warn("dropping invalid activity event", zap.String("event_type", event.EventType), zap.Error(err))
			return nil
		}
		c.logger.Error("failed to record activity event", zap.String("event_type", event.EventType), zap.Error(err))
		return err
	}

	c.logger.Info("activity event recorded",
		zap.String("event_type", event.EventType),
		zap.String("activity_id", activity.ID.String()),
	)
	return nil
}
