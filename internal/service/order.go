package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Shreyas-k-p/SCANV2-sub000/internal/domain"
	"github.com/Shreyas-k-p/SCANV2-sub000/internal/queue"
	"github.com/Shreyas-k-p/SCANV2-sub000/internal/repo"
	"go.uber.org/zap"
)

type OrderService struct {
	orderRepo repo.OrderRepository
	tableRepo repo.TableRepository
	auditRepo repo.OrderAuditRepository
	broker    queue.Broker
	logger    *zap.SugaredLogger
}

func NewOrderService(
	orderRepo repo.OrderRepository,
	tableRepo repo.TableRepository,
	auditRepo repo.OrderAuditRepository,
	broker queue.Broker,
	logger *zap.SugaredLogger,
) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		tableRepo: tableRepo,
		auditRepo: auditRepo,
		broker:    broker,
		logger:    logger,
	}
}

type PlaceOrderInput struct {
	TableNumber    string
	Items          []domain.OrderItem
	CustomerName   string
	CustomerMobile string
	Notes          string
}

// Place validates the placement request, recomputes the total server-side
// and persists the order with status forced to pending. Any client-supplied
// total or status is ignored.
func (s *OrderService) Place(ctx context.Context, input PlaceOrderInput) (*domain.Order, error) {
	if input.TableNumber == "" {
		return nil, fmt.Errorf("%w: table number is required", domain.ErrInvalidOrder)
	}
	if len(input.Items) == 0 {
		return nil, fmt.Errorf("%w: at least one item is required", domain.ErrInvalidOrder)
	}
	for _, item := range input.Items {
		if item.Name == "" {
			return nil, fmt.Errorf("%w: item name is required", domain.ErrInvalidOrder)
		}
		if item.Price < 0 {
			return nil, fmt.Errorf("%w: invalid price for item %s", domain.ErrInvalidOrder, item.Name)
		}
		if item.Quantity < 1 {
			return nil, fmt.Errorf("%w: invalid quantity for item %s", domain.ErrInvalidOrder, item.Name)
		}
	}

	// a billed table accepts no new orders until it is cleared
	table, err := s.tableRepo.GetByNumber(ctx, input.TableNumber)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("failed to check table: %w", err)
	}
	if table != nil && table.Status == domain.TableBilled {
		return nil, domain.ErrTableBilled
	}

	order := &domain.Order{
		OrderID:        domain.NewOrderID(),
		TableNumber:    input.TableNumber,
		CustomerName:   input.CustomerName,
		CustomerMobile: input.CustomerMobile,
		Items:          input.Items,
		TotalAmount:    domain.ComputeTotal(input.Items),
		Status:         domain.OrderPending,
		Notes:          input.Notes,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	s.publishEvent(ctx, domain.OrderStatusEvent{
		EventType:   domain.EventOrderPlaced,
		OrderID:     order.OrderID,
		TableNumber: order.TableNumber,
		NewStatus:   order.Status,
		TotalAmount: order.TotalAmount,
		Timestamp:   time.Now(),
	})

	s.logger.Infow("order placed", "order_id", order.OrderID, "table_number", order.TableNumber, "total_amount", order.TotalAmount)

	return order, nil
}

// UpdateStatus moves the order through the lifecycle. A same-status call is
// an idempotent no-op; an illegal step fails with InvalidTransitionError
// naming both states and leaves storage untouched. The commit itself is a
// conditional write keyed on the status the validation saw.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID string, newStatus domain.OrderStatus, changedBy string) (*domain.Order, error) {
	if !newStatus.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidOrder, newStatus)
	}

	order, err := s.orderRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.Status == newStatus {
		return order, nil
	}

	if !order.Status.CanTransitionTo(newStatus) {
		return nil, &domain.InvalidTransitionError{From: order.Status, To: newStatus}
	}

	if err := s.orderRepo.UpdateStatusFrom(ctx, orderID, order.Status, newStatus); err != nil {
		return nil, err
	}

	oldStatus := order.Status
	order.Status = newStatus
	order.UpdatedAt = time.Now()

	audit := &domain.OrderStatusAudit{
		OrderID:   orderID,
		EventType: domain.EventOrderStatusChanged,
		OldStatus: oldStatus,
		NewStatus: newStatus,
		ChangedBy: changedBy,
		Timestamp: order.UpdatedAt,
	}
	if err := s.auditRepo.Create(ctx, audit); err != nil {
		s.logger.Errorw("failed to create audit record", "order_id", orderID, "error", err)
	}

	s.publishEvent(ctx, domain.OrderStatusEvent{
		EventType:   domain.EventOrderStatusChanged,
		OrderID:     orderID,
		TableNumber: order.TableNumber,
		OldStatus:   oldStatus,
		NewStatus:   newStatus,
		TotalAmount: order.TotalAmount,
		ChangedBy:   changedBy,
		Timestamp:   order.UpdatedAt,
	})

	s.logger.Infow("order status updated", "order_id", orderID, "old_status", oldStatus, "new_status", newStatus)

	return order, nil
}

// Remove hard-deletes the order record regardless of status. Irreversible;
// the confirmation step lives at the caller boundary.
func (s *OrderService) Remove(ctx context.Context, orderID string) error {
	order, err := s.orderRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		return err
	}

	if err := s.orderRepo.Delete(ctx, orderID); err != nil {
		return err
	}

	s.publishEvent(ctx, domain.OrderStatusEvent{
		EventType:   domain.EventOrderRemoved,
		OrderID:     orderID,
		TableNumber: order.TableNumber,
		OldStatus:   order.Status,
		Timestamp:   time.Now(),
	})

	s.logger.Infow("order record removed", "order_id", orderID, "table_number", order.TableNumber)

	return nil
}

func (s *OrderService) AssignWaiter(ctx context.Context, orderID, staffID string) error {
	if err := s.orderRepo.AssignWaiter(ctx, orderID, staffID); err != nil {
		return err
	}

	s.logger.Infow("waiter assigned", "order_id", orderID, "staff_id", staffID)

	return nil
}

func (s *OrderService) Get(ctx context.Context, orderID string) (*domain.Order, error) {
	return s.orderRepo.GetByOrderID(ctx, orderID)
}

func (s *OrderService) List(ctx context.Context, filter repo.OrderFilter) ([]domain.Order, error) {
	return s.orderRepo.List(ctx, filter)
}

func (s *OrderService) GetAudit(ctx context.Context, orderID string, limit int) ([]domain.OrderStatusAudit, error) {
	audits, err := s.auditRepo.GetByOrderID(ctx, orderID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get order audit: %w", err)
	}

	return audits, nil
}

// publishEvent is best-effort: a broker outage must not fail the mutation
// the event describes.
func (s *OrderService) publishEvent(ctx context.Context, event domain.OrderStatusEvent) {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		s.logger.Errorw("failed to marshal order event", "order_id", event.OrderID, "error", err)
		return
	}

	if err := s.broker.Publish(ctx, queue.QueueOrderEvents, eventBytes); err != nil {
		s.logger.Errorw("failed to publish order event", "order_id", event.OrderID, "event_type", event.EventType, "error", err)
	}
}
