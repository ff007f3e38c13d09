// internal/models/notification.go
package models

import "time"

// NotificationType classifies a lifecycle event for the notification log.
type NotificationType string

const (
	NotificationStateChange    NotificationType = "state-change"
	NotificationActionRequired NotificationType = "action-required"
	NotificationETADelay       NotificationType = "eta-delay"
	NotificationDisbursement   NotificationType = "disbursement"
	NotificationInfo           NotificationType = "info"
)

// Notification is an immutable record of a lifecycle event. Only the
// Read flag is ever mutated after creation.
type Notification struct {
	ID            string           `json:"id"`
	Type          NotificationType `json:"type"`
	Title         string           `json:"title"`
	Message       string           `json:"message"`
	Timestamp     time.Time        `json:"timestamp"`
	Read          bool             `json:"read"`
	ApplicationID string           `json:"applicationId,omitempty"`
}
