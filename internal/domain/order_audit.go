package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatusAudit keeps one record per committed status transition so a
// manager can reconstruct the lifecycle of any order.
type OrderStatusAudit struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderID   string             `bson:"order_id" json:"order_id"`
	EventType string             `bson:"event_type" json:"event_type"`
	OldStatus OrderStatus        `bson:"old_status" json:"old_status"`
	NewStatus OrderStatus        `bson:"new_status" json:"new_status"`
	ChangedBy string             `bson:"changed_by,omitempty" json:"changed_by,omitempty"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
}
