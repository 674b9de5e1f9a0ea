package queue

import (
	"context"
)

type Broker interface {
	Publish(ctx context.Context, queueName string, message []byte) error
	Subscribe(ctx context.Context, queueName string, handler MessageHandler) error
	// IsClosed reports whether the underlying connection is gone.
	IsClosed() bool
	Close() error
}

type MessageHandler func(ctx context.Context, message []byte) error

const (
	// order lifecycle events, consumed by the device-notify worker
	QueueOrderEvents = "order-events"
	// fire-and-forget messages for the per-table display bridge
	QueueDeviceNotify = "device-notify"
	// kitchen/waiter alerts raised by the coordinator
	QueueStaffAlerts = "staff-alerts"

	QueueOrderEventsDLQ  = "order-events-dlq"
	QueueDeviceNotifyDLQ = "device-notify-dlq"
	QueueStaffAlertsDLQ  = "staff-alerts-dlq"
)
