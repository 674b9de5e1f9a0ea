package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Shreyas-k-p/SCANV2-sub000/internal/domain"
	"github.com/Shreyas-k-p/SCANV2-sub000/internal/queue"
	"go.uber.org/zap"
)

// DeviceNotifyWorker consumes order lifecycle events and translates them
// into display messages for the per-table device bridge. The bridge is a
// one-way sink: messages are published fire-and-forget and never
// acknowledged.
type DeviceNotifyWorker struct {
	broker queue.Broker
	logger *zap.SugaredLogger
	ctx    context.Context
	cancel context.CancelFunc
}

func NewDeviceNotifyWorker(broker queue.Broker, logger *zap.SugaredLogger) *DeviceNotifyWorker {
	ctx, cancel := context.WithCancel(context.Background())

	return &DeviceNotifyWorker{
		broker: broker,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

func (w *DeviceNotifyWorker) Start() error {
	w.logger.Info("starting device notify worker")

	return w.broker.Subscribe(w.ctx, queue.QueueOrderEvents, w.handleMessage)
}

func (w *DeviceNotifyWorker) Stop() {
	w.logger.Info("stopping device notify worker")
	w.cancel()
}

func (w *DeviceNotifyWorker) handleMessage(ctx context.Context, message []byte) error {
	var event domain.OrderStatusEvent
	if err := json.Unmarshal(message, &event); err != nil {
		w.logger.Errorw("failed to unmarshal order event", "error", err)
		return fmt.Errorf("failed to unmarshal order event: %w", err)
	}

	deviceType, ok := deviceTypeFor(event)
	if !ok {
		// not every lifecycle event has a display representation
		return nil
	}

	msg := domain.DeviceMessage{
		Type:      deviceType,
		TableID:   event.TableNumber,
		OrderID:   event.OrderID,
		Total:     event.TotalAmount,
		Timestamp: time.Now(),
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal device message: %w", err)
	}

	if err := w.broker.Publish(ctx, queue.QueueDeviceNotify, body); err != nil {
		w.logger.Errorw("failed to publish device message", "order_id", event.OrderID, "error", err)
		return err
	}

	w.logger.Infow("device message published", "order_id", event.OrderID, "table_id", msg.TableID, "type", msg.Type)

	return nil
}

func deviceTypeFor(event domain.OrderStatusEvent) (string, bool) {
	if event.EventType == domain.EventOrderPlaced {
		return domain.DeviceOrderPlaced, true
	}
	if event.EventType != domain.EventOrderStatusChanged {
		return "", false
	}

	switch event.NewStatus {
	case domain.OrderPreparing:
		return domain.DevicePreparing, true
	case domain.OrderReady:
		return domain.DeviceOrderReady, true
	case domain.OrderServed:
		return domain.DeviceOrderServed, true
	case domain.OrderCompleted:
		return domain.DeviceThankYou, true
	}

	return "", false
}
