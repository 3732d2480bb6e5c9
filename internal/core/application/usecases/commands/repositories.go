// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"visadesk/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler asks only for the repositories it touches.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// AuditRepoFactory provides access to the audit sink within a transaction.
	AuditRepoFactory interface {
		AuditRepository() ports.AuditRepository
	}

	// AttachmentRepoFactory provides access to order attachments within a transaction.
	AttachmentRepoFactory interface {
		AttachmentRepository() ports.AttachmentRepository
	}

	// CatalogueRepoFactory provides read access to tariff prices within a transaction.
	CatalogueRepoFactory interface {
		CatalogueRepository() ports.CatalogueRepository
	}

	// OrderUoW manages transactions for operations on the order aggregate.
	// Every such operation leaves an audit entry in the same transaction.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   err = uow.OrderRepository().Update(ctx, o)
	//   err = uow.AuditRepository().Append(ctx, entry)
	//
	//   err = uow.Commit(ctx)
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		AuditRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// OrderServicesUoW manages transactions that replace an order's attached services.
	OrderServicesUoW interface {
		TxManager
		OrderRepoFactory
		AttachmentRepoFactory
		CatalogueRepoFactory
	}

	// OrderServicesUoWFactory creates new order services unit of work instances.
	OrderServicesUoWFactory interface {
		Create() OrderServicesUoW
	}
)
