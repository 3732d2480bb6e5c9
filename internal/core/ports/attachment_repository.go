package ports

import (
	"context"

	"visadesk/internal/core/domain/model/attachment"
	"visadesk/internal/core/domain/model/kernel"
)

// AttachmentRepository stores the services attached to orders.
type AttachmentRepository interface {
	// ReplaceAll deletes every attachment of the order and inserts the given
	// ones in a single transaction. An empty slice detaches everything.
	ReplaceAll(ctx context.Context, orderID kernel.ID, attachments []attachment.Attachment) error
}
