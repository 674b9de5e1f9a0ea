package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPreparing OrderStatus = "preparing"
	OrderReady     OrderStatus = "ready"
	OrderServed    OrderStatus = "served"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

// statusFlow is the exhaustive transition table for the order lifecycle.
// completed and cancelled are terminal.
var statusFlow = map[OrderStatus][]OrderStatus{
	OrderPending:   {OrderPreparing, OrderCancelled},
	OrderPreparing: {OrderReady, OrderCancelled},
	OrderReady:     {OrderServed, OrderCancelled},
	OrderServed:    {OrderCompleted, OrderCancelled},
	OrderCompleted: {},
	OrderCancelled: {},
}

func (s OrderStatus) Valid() bool {
	_, ok := statusFlow[s]
	return ok
}

// CanTransitionTo reports whether s -> next is a legal lifecycle step.
// A same-status "transition" is not part of the table; callers treat it
// as an idempotent no-op before consulting this.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range statusFlow[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s OrderStatus) Terminal() bool {
	return len(statusFlow[s]) == 0
}

type Order struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	OrderID        string             `bson:"order_id" json:"order_id"`
	TableNumber    string             `bson:"table_number" json:"table_number"`
	CustomerName   string             `bson:"customer_name,omitempty" json:"customer_name,omitempty"`
	CustomerMobile string             `bson:"customer_mobile,omitempty" json:"customer_mobile,omitempty"`
	Items          []OrderItem        `bson:"items" json:"items"`
	TotalAmount    float64            `bson:"total_amount" json:"total_amount"`
	Status         OrderStatus        `bson:"status" json:"status"`
	AssignedWaiter string             `bson:"assigned_waiter,omitempty" json:"assigned_waiter,omitempty"`
	Notes          string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updated_at"`
}

type OrderItem struct {
	Name     string  `bson:"name" json:"name"`
	Price    float64 `bson:"price" json:"price"`
	Quantity int     `bson:"quantity" json:"quantity"`
	Notes    string  `bson:"notes,omitempty" json:"notes,omitempty"`
}

// NewOrderID generates the customer-facing correlation id. It is distinct
// from the storage _id because the customer's device keeps it without any
// server-side session binding.
func NewOrderID() string {
	suffix := strings.Split(uuid.NewString(), "-")[0]
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), suffix)
}

// ComputeTotal is the server-trusted total; any client-supplied value is ignored.
func ComputeTotal(items []OrderItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}
