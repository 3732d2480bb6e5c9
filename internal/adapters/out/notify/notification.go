// Package notify delivers order status notifications to clients.
//
// Delivery is asynchronous and best effort: AsyncDispatcher queues the
// notification and returns immediately, workers hand it to a Sender, and a
// notification that cannot be queued or sent is logged and dropped.
package notify

import (
	"fmt"
	"time"

	"visadesk/internal/core/ports"

	"github.com/google/uuid"
)

// Notification is the message sent to the applicant of an order.
type Notification struct {
	ID          uuid.UUID `json:"id"`
	OrderID     int64     `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	OldStatus   string    `json:"old_status"`
	NewStatus   string    `json:"new_status"`
	Recipient   string    `json:"recipient"`
	Name        string    `json:"name"`
	Subject     string    `json:"subject"`
	ChangedAt   time.Time `json:"changed_at"`
}

// NewNotification builds the notification for a status change. It reports
// false when the order has no applicant to notify.
func NewNotification(change ports.StatusChange, now time.Time) (Notification, bool) {
	if change.Order == nil {
		return Notification{}, false
	}
	applicant := change.Order.Applicant()
	if applicant == nil {
		return Notification{}, false
	}

	return Notification{
		ID:          uuid.New(),
		OrderID:     change.Order.ID().Int64(),
		OrderNumber: change.Order.Number(),
		OldStatus:   change.OldStatus.String(),
		NewStatus:   change.NewStatus.String(),
		Recipient:   applicant.Email(),
		Name:        applicant.FullName(),
		Subject:     fmt.Sprintf("Order %s is now %s", change.Order.Number(), change.NewStatus),
		ChangedAt:   now,
	}, true
}
