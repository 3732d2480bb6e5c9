package commands

import (
	"errors"

	"visadesk/internal/core/domain/model/kernel"
	"visadesk/internal/pkg/guard"
)

var ErrArchiveOrderCommandIsNotConstructed = errors.New(
	"ArchiveOrderCommand must be created via NewArchiveOrderCommand constructor",
)

// ArchiveOrderCommand represents the logical deletion of an order.
type ArchiveOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.ID
	actorID kernel.ID

	guard guard.ConstructorGuard
}

func NewArchiveOrderCommand(orderID, actorID kernel.ID) (ArchiveOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), actorID.Validate()); err != nil {
		return ArchiveOrderCommand{}, err
	}

	return ArchiveOrderCommand{
		orderID: orderID,
		actorID: actorID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ArchiveOrderCommand) Validate() error {
	return c.guard.Validate(ErrArchiveOrderCommandIsNotConstructed)
}

func (c ArchiveOrderCommand) OrderID() kernel.ID {
	return c.orderID
}

func (c ArchiveOrderCommand) ActorID() kernel.ID {
	return c.actorID
}
