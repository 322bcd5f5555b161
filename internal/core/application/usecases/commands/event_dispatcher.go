package commands

import (
	"context"
	"errors"
	"log/slog"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// EventDispatcher hands an order's domain events to the publisher and observer.
// It runs after commit; a failed publish is logged and never undoes the commit.
type EventDispatcher struct {
	publisher ports.EventPublisher
	observer  ports.ExecutionObserver
	logger    *slog.Logger
}

func NewEventDispatcher(
	publisher ports.EventPublisher,
	observer ports.ExecutionObserver,
	logger *slog.Logger,
) EventDispatcher {
	return EventDispatcher{
		publisher: publisher,
		observer:  observer,
		logger:    logger.With("component", "event_dispatcher"),
	}
}

func (d EventDispatcher) dispatch(ctx context.Context, o *order.Order) {
	events := o.DomainEvents()
	o.ClearDomainEvents()
	if len(events) == 0 {
		return
	}

	for _, e := range events {
		if changed, ok := e.(order.StatusChangedEvent); ok {
			d.observer.OrderStatusChanged(changed.From, changed.To)
		}
	}

	if err := d.publisher.Publish(ctx, events...); err != nil {
		d.logger.ErrorContext(ctx, "failed to publish domain events",
			"order_id", o.ID().String(),
			"events", len(events),
			"error", err,
		)
	}
}

func (d EventDispatcher) rejected(err error) {
	if reason, ok := rejectionReason(err); ok {
		d.observer.ExecutionRejected(reason)
	}
}

// rejectionReason labels the business refusals of the execution recorder.
func rejectionReason(err error) (string, bool) {
	switch {
	case errors.Is(err, order.ErrOrderIsCancelled):
		return "cancelled", true
	case errors.Is(err, order.ErrEntitlementExhausted):
		return "exhausted", true
	case errors.Is(err, errs.ErrNotEntitled):
		return "not_entitled", true
	case errors.Is(err, errs.ErrObjectNotFound):
		return "not_found", true
	case errs.IsValidation(err):
		return "invalid", true
	default:
		return "", false
	}
}
