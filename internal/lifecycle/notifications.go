// internal/lifecycle/notifications.go
package lifecycle

import (
	"github.com/vaibhavProductCode/loan-progress-hub/internal/common/errors"
	"github.com/vaibhavProductCode/loan-progress-hub/internal/common/metrics"
	"github.com/vaibhavProductCode/loan-progress-hub/internal/models"
)

// appendNotification prepends a lifecycle event to the log. Callers hold
// the mutex and leave ID, Timestamp and Read zeroed.
func (e *Engine) appendNotification(n models.Notification) {
	n.ID = e.newNotificationID()
	n.Timestamp = e.now()
	n.Read = false

	e.notifications = append([]models.Notification{n}, e.notifications...)
	metrics.NotificationsEmitted.WithLabelValues(string(n.Type)).Inc()

	if e.sink != nil {
		go e.sink(n)
	}
}

// Notifications returns a copy of the log, most recent first.
func (e *Engine) Notifications() []models.Notification {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]models.Notification, len(e.notifications))
	copy(out, e.notifications)
	return out
}

// MarkNotificationRead flips exactly one notification's read flag.
// Unknown ids fail with a not-found error.
func (e *Engine) MarkNotificationRead(notificationID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.notifications {
		if e.notifications[i].ID == notificationID {
			e.notifications[i].Read = true
			e.persistLocked()
			return nil
		}
	}
	return errors.NewNotificationNotFoundError(notificationID)
}

// UnreadCount recounts the unread notifications on every call.
func (e *Engine) UnreadCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	count := 0
	for i := range e.notifications {
		if !e.notifications[i].Read {
			count++
		}
	}
	return count
}
