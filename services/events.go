package services

import (
	"context"
	"encoding/json"
	"time"

	aws_pkg "github.com/yashrajoria/atelier-backend/pkg/aws"
	"go.uber.org/zap"
)

const (
	EventOrderPlaced      = "order_placed"
	EventCustomerSignedUp = "customer_signed_up"
)

// TypedPublisher is implemented by publishers that can tag a message with its
// event type.
type TypedPublisher interface {
	PublishWithType(ctx context.Context, topicArn, eventType string, message []byte) error
}

// Metrics is the subset of the CloudWatch client used by services.
type Metrics interface {
	IsEnabled() bool
	RecordCount(ctx context.Context, metricName string, dimensions map[string]string) error
	RecordValue(ctx context.Context, metricName string, value float64, dimensions map[string]string) error
}

// EventPublisher publishes domain events to a single SNS topic. A nil
// publisher or an empty topic disables publishing.
type EventPublisher struct {
	sns      aws_pkg.SNSPublisher
	topicArn string
	logger   *zap.Logger
}

func NewEventPublisher(sns aws_pkg.SNSPublisher, topicArn string, logger *zap.Logger) *EventPublisher {
	return &EventPublisher{sns: sns, topicArn: topicArn, logger: logger}
}

// Publish marshals event and sends it. Failures are logged, never returned:
// the state change that produced the event has already been committed.
func (p *EventPublisher) Publish(ctx context.Context, eventType string, event interface{}) {
	if p == nil || p.sns == nil || p.topicArn == "" {
		return
	}
	b, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("Failed to marshal SNS event", zap.String("event_type", eventType), zap.Error(err))
		return
	}
	if typed, ok := p.sns.(TypedPublisher); ok {
		err = typed.PublishWithType(ctx, p.topicArn, eventType, b)
	} else {
		err = p.sns.Publish(ctx, p.topicArn, b)
	}
	if err != nil {
		p.logger.Error("Failed to publish SNS event", zap.String("event_type", eventType), zap.Error(err))
		return
	}
	p.logger.Info("Published SNS event", zap.String("event_type", eventType), zap.String("topic", p.topicArn))
}

// recordCount sends a count metric in the background.
func recordCount(metrics Metrics, logger *zap.Logger, name string) {
	recordMetric(metrics, logger, name, func(ctx context.Context) error {
		return metrics.RecordCount(ctx, name, nil)
	})
}

func recordValue(metrics Metrics, logger *zap.Logger, name string, value float64) {
	recordMetric(metrics, logger, name, func(ctx context.Context) error {
		return metrics.RecordValue(ctx, name, value, nil)
	})
}

func recordMetric(metrics Metrics, logger *zap.Logger, name string, put func(ctx context.Context) error) {
	if metrics == nil || !metrics.IsEnabled() {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := put(ctx); err != nil {
			logger.Warn("Failed to record metric", zap.String("metric", name), zap.Error(err))
		}
	}()
}
