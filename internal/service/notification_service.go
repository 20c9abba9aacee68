package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/aquaflow/ticketing/internal/config"
	"github.com/aquaflow/ticketing/internal/events"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventBatchIssued, n.handleBatchIssued)
	n.dispatcher.Subscribe(events.EventTicketScanned, n.handleTicketScanned)
}

func (n *NotificationService) handleBatchIssued(ctx context.Context, event events.Event) error {
	n.logger.Info("BatchIssued",
		zap.String("actor", event.ActorName),
		zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleTicketScanned(ctx context.Context, event events.Event) error {
	n.logger.Info("TicketScanned",
		zap.String("actor", event.ActorName),
		zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if n.cfg.WebhookURL == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("event_type", string(event.Type)))
}
