// Package order provides the Order aggregate root of the visa-document
// service: its lifecycle status, its dimension tags, the applicant it is
// filed for and its human-readable number.
//
// An Order is created by staff on behalf of a client. It is persisted first
// and numbered afterwards, because the number embeds the store-assigned id:
//
//	o, _ := order.NewOrder(details, nil, applicant, now) // status defaults to Draft
//	_ = repo.Add(ctx, o)                                 // repo calls o.AssignIdentity
//	o.Number()                                           // "2026-0042"
//
// Status changes go through a TransitionPolicy. The default policy accepts
// every valid status, so any status may be set on update; Workflow is an
// opt-in policy encoding Draft → New → InProgress → Completed with Canceled
// reachable from every non-canceled state.
//
// Orders are never deleted; Archive stamps archived_at instead.
package order
