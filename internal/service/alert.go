package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shenikar/guardian/internal/models"
	"github.com/shenikar/guardian/internal/session"
	"github.com/shenikar/guardian/internal/webhook"
	"github.com/sirupsen/logrus"
)

// alertNotifier ставит срабатывание SOS в очередь вебхуков. Рассылка SMS/звонков не делается.
type alertNotifier struct {
	contacts  ContactService
	publisher webhook.WebhookPublisher
	logger    *logrus.Logger
	now       func() time.Time
}

func NewAlertNotifier(contacts ContactService, publisher webhook.WebhookPublisher, logger *logrus.Logger) session.AlertNotifier {
	return &alertNotifier{
		contacts:  contacts,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

func (n *alertNotifier) NotifyAlert(ctx context.Context, alert models.Alert) error {
	log := n.logger.WithFields(logrus.Fields{
		"service": "alert",
		"method":  "NotifyAlert",
		"user_id": alert.UserID,
	})

	event := webhook.AlertEvent{
		UserID:      alert.UserID,
		Status:      models.StatusAlert,
		TriggeredAt: alert.TriggeredAt,
		Location:    alert.Location,
		Timestamp:   n.now(),
	}

	primary, err := n.contacts.PrimaryContact(ctx, models.Identity{UserID: alert.UserID})
	if err != nil {
		// тревога важнее контакта: отправляем без него
		log.WithError(err).Warn("Failed to read primary contact for alert")
	}
	event.PrimaryContact = primary

	if err := n.publisher.Publish(ctx, event); err != nil {
		log.WithError(err).Error("Failed to publish alert webhook")
		return fmt.Errorf("service: could not publish alert: %w", err)
	}
	log.Info("Alert webhook queued")
	return nil
}
