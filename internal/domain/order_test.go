package domain

import (
	"strings"
	"testing"
)

func TestCanTransitionTo(t *testing.T) {
	allowed := map[OrderStatus][]OrderStatus{
		OrderPending:   {OrderPreparing, OrderCancelled},
		OrderPreparing: {OrderReady, OrderCancelled},
		OrderReady:     {OrderServed, OrderCancelled},
		OrderServed:    {OrderCompleted, OrderCancelled},
		OrderCompleted: {},
		OrderCancelled: {},
	}

	all := []OrderStatus{OrderPending, OrderPreparing, OrderReady, OrderServed, OrderCompleted, OrderCancelled}

	for from, successors := range allowed {
		allowedSet := make(map[OrderStatus]bool)
		for _, to := range successors {
			allowedSet[to] = true
		}
		for _, to := range all {
			got := from.CanTransitionTo(to)
			if got != allowedSet[to] {
				t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", from, to, got, allowedSet[to])
			}
		}
	}
}

func TestTerminalStates(t *testing.T) {
	for _, s := range []OrderStatus{OrderCompleted, OrderCancelled} {
		if !s.Terminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
	for _, s := range []OrderStatus{OrderPending, OrderPreparing, OrderReady, OrderServed} {
		if s.Terminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
}

func TestStatusValid(t *testing.T) {
	if OrderStatus("cooking").Valid() {
		t.Error("unknown status should not be valid")
	}
	if !OrderPending.Valid() {
		t.Error("pending should be valid")
	}
}

func TestComputeTotal(t *testing.T) {
	items := []OrderItem{
		{Name: "Dosa", Price: 120, Quantity: 2},
		{Name: "Chai", Price: 30, Quantity: 3},
	}

	if got := ComputeTotal(items); got != 330 {
		t.Errorf("ComputeTotal() = %v, want 330", got)
	}

	if got := ComputeTotal(nil); got != 0 {
		t.Errorf("ComputeTotal(nil) = %v, want 0", got)
	}
}

func TestNewOrderID(t *testing.T) {
	id := NewOrderID()
	if !strings.HasPrefix(id, "ORD-") {
		t.Errorf("NewOrderID() = %q, want ORD- prefix", id)
	}

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewOrderID()
		if seen[id] {
			t.Fatalf("NewOrderID() produced duplicate %q", id)
		}
		seen[id] = true
	}
}

func TestInvalidTransitionErrorNamesBothStates(t *testing.T) {
	err := &InvalidTransitionError{From: OrderPreparing, To: OrderServed}
	msg := err.Error()
	if !strings.Contains(msg, string(OrderPreparing)) || !strings.Contains(msg, string(OrderServed)) {
		t.Errorf("error %q must name both states", msg)
	}
}
