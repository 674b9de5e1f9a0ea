package worker

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/Shreyas-k-p/SCANV2-sub000/internal/domain"
	"github.com/Shreyas-k-p/SCANV2-sub000/internal/queue"
	"go.uber.org/zap"
)

type captureBroker struct {
	mu        sync.Mutex
	published map[string][][]byte
}

func newCaptureBroker() *captureBroker {
	return &captureBroker{published: make(map[string][][]byte)}
}

func (b *captureBroker) Publish(ctx context.Context, queueName string, message []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published[queueName] = append(b.published[queueName], message)
	return nil
}

func (b *captureBroker) Subscribe(ctx context.Context, queueName string, handler queue.MessageHandler) error {
	return nil
}

func (b *captureBroker) IsClosed() bool { return false }

func (b *captureBroker) Close() error { return nil }

func (b *captureBroker) deviceMessages(t *testing.T) []domain.DeviceMessage {
	t.Helper()
	b.mu.Lock()
	defer b.mu.Unlock()
	msgs := make([]domain.DeviceMessage, 0, len(b.published[queue.QueueDeviceNotify]))
	for _, body := range b.published[queue.QueueDeviceNotify] {
		var msg domain.DeviceMessage
		if err := json.Unmarshal(body, &msg); err != nil {
			t.Fatalf("invalid device message: %v", err)
		}
		msgs = append(msgs, msg)
	}
	return msgs
}

func eventPayload(t *testing.T, event domain.OrderStatusEvent) []byte {
	t.Helper()
	body, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("marshaling event: %v", err)
	}
	return body
}

func TestHandleMessageTranslatesLifecycle(t *testing.T) {
	broker := newCaptureBroker()
	w := NewDeviceNotifyWorker(broker, zap.NewNop().Sugar())

	cases := []struct {
		event domain.OrderStatusEvent
		want  string
	}{
		{domain.OrderStatusEvent{EventType: domain.EventOrderPlaced, OrderID: "ORD-1", TableNumber: "T1", TotalAmount: 480}, domain.DeviceOrderPlaced},
		{domain.OrderStatusEvent{EventType: domain.EventOrderStatusChanged, OrderID: "ORD-1", TableNumber: "T1", NewStatus: domain.OrderPreparing}, domain.DevicePreparing},
		{domain.OrderStatusEvent{EventType: domain.EventOrderStatusChanged, OrderID: "ORD-1", TableNumber: "T1", NewStatus: domain.OrderReady}, domain.DeviceOrderReady},
		{domain.OrderStatusEvent{EventType: domain.EventOrderStatusChanged, OrderID: "ORD-1", TableNumber: "T1", NewStatus: domain.OrderServed}, domain.DeviceOrderServed},
		{domain.OrderStatusEvent{EventType: domain.EventOrderStatusChanged, OrderID: "ORD-1", TableNumber: "T1", NewStatus: domain.OrderCompleted}, domain.DeviceThankYou},
	}

	for _, tc := range cases {
		if err := w.handleMessage(context.Background(), eventPayload(t, tc.event)); err != nil {
			t.Fatalf("handleMessage(%s/%s) error = %v", tc.event.EventType, tc.event.NewStatus, err)
		}
	}

	msgs := broker.deviceMessages(t)
	if len(msgs) != len(cases) {
		t.Fatalf("published %d device messages, want %d", len(msgs), len(cases))
	}
	for i, tc := range cases {
		if msgs[i].Type != tc.want {
			t.Errorf("message %d type = %q, want %q", i, msgs[i].Type, tc.want)
		}
		if msgs[i].TableID != "T1" {
			t.Errorf("message %d table id = %q, want T1", i, msgs[i].TableID)
		}
	}

	if msgs[0].Total != 480 {
		t.Errorf("placement message total = %v, want 480", msgs[0].Total)
	}
}

func TestHandleMessageSkipsNonDisplayEvents(t *testing.T) {
	broker := newCaptureBroker()
	w := NewDeviceNotifyWorker(broker, zap.NewNop().Sugar())

	events := []domain.OrderStatusEvent{
		{EventType: domain.EventOrderRemoved, OrderID: "ORD-1", TableNumber: "T1"},
		{EventType: domain.EventOrderStatusChanged, OrderID: "ORD-1", TableNumber: "T1", NewStatus: domain.OrderCancelled},
	}
	for _, event := range events {
		if err := w.handleMessage(context.Background(), eventPayload(t, event)); err != nil {
			t.Fatalf("handleMessage() error = %v", err)
		}
	}

	if msgs := broker.deviceMessages(t); len(msgs) != 0 {
		t.Errorf("published %d device messages, want 0", len(msgs))
	}
}

func TestHandleMessageRejectsMalformedPayload(t *testing.T) {
	broker := newCaptureBroker()
	w := NewDeviceNotifyWorker(broker, zap.NewNop().Sugar())

	if err := w.handleMessage(context.Background(), []byte("not json")); err == nil {
		t.Error("handleMessage() of malformed payload succeeded, want error")
	}
}
