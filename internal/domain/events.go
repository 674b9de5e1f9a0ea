package domain

import "time"

// OrderStatusEvent is published on every order placement, transition and
// removal. The device-notify worker consumes it to drive table displays.
type OrderStatusEvent struct {
	EventType   string      `json:"event_type"`
	OrderID     string      `json:"order_id"`
	TableNumber string      `json:"table_number"`
	OldStatus   OrderStatus `json:"old_status,omitempty"`
	NewStatus   OrderStatus `json:"new_status,omitempty"`
	TotalAmount float64     `json:"total_amount,omitempty"`
	ChangedBy   string      `json:"changed_by,omitempty"`
	Timestamp   time.Time   `json:"timestamp"`
}

const (
	EventOrderPlaced        = "order.placed"
	EventOrderStatusChanged = "order.status_changed"
	EventOrderRemoved       = "order.removed"
)

// DeviceMessage is the fire-and-forget payload for the per-table display
// bridge. Delivery is best-effort and never acknowledged.
type DeviceMessage struct {
	Type      string    `json:"type"`
	TableID   string    `json:"table_id"`
	OrderID   string    `json:"order_id,omitempty"`
	Total     float64   `json:"total,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

const (
	DeviceOrderPlaced    = "ORDER_PLACED"
	DevicePreparing      = "PREPARING"
	DeviceOrderReady     = "ORDER_READY"
	DeviceOrderServed    = "ORDER_SERVED"
	DevicePaymentRequest = "PAYMENT_REQUEST"
	DeviceThankYou       = "THANK_YOU"
)

// StaffAlert is raised by the coordinator when its order mirror diffing
// classifies a change as staff-relevant.
type StaffAlert struct {
	Kind        string    `json:"kind"`
	OrderID     string    `json:"order_id"`
	TableNumber string    `json:"table_number"`
	Timestamp   time.Time `json:"timestamp"`
}

const (
	AlertNewOrder   = "new_order"   // kitchen-facing
	AlertOrderReady = "order_ready" // waiter-facing
)
