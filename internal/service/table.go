package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Shreyas-k-p/SCANV2-sub000/internal/domain"
	"github.com/Shreyas-k-p/SCANV2-sub000/internal/queue"
	"github.com/Shreyas-k-p/SCANV2-sub000/internal/repo"
	"go.uber.org/zap"
)

type TableService struct {
	tableRepo repo.TableRepository
	orderRepo repo.OrderRepository
	broker    queue.Broker
	logger    *zap.SugaredLogger
}

func NewTableService(
	tableRepo repo.TableRepository,
	orderRepo repo.OrderRepository,
	broker queue.Broker,
	logger *zap.SugaredLogger,
) *TableService {
	return &TableService{
		tableRepo: tableRepo,
		orderRepo: orderRepo,
		broker:    broker,
		logger:    logger,
	}
}

func (s *TableService) Create(ctx context.Context, number string, capacity int, qrCode string) (*domain.Table, error) {
	if number == "" {
		return nil, fmt.Errorf("%w: table number is required", domain.ErrInvalidOrder)
	}

	table := &domain.Table{
		Number:   number,
		Capacity: capacity,
		Status:   domain.TableAvailable,
		QRCode:   qrCode,
	}

	if err := s.tableRepo.Create(ctx, table); err != nil {
		return nil, err
	}

	s.logger.Infow("table created", "table_number", number, "capacity", capacity)

	return table, nil
}

// SetStatus mutates the table lifecycle. Billing a table pushes a
// PAYMENT_REQUEST to its display with the outstanding amount; clearing a
// billed table pushes THANK_YOU.
func (s *TableService) SetStatus(ctx context.Context, number string, status domain.TableStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown table status %q", domain.ErrInvalidOrder, status)
	}

	table, err := s.tableRepo.GetByNumber(ctx, number)
	if err != nil {
		return err
	}

	// same-status call is a no-op; a repeat billing must not push a
	// second payment request to the display
	if table.Status == status {
		return nil
	}

	if err := s.tableRepo.UpdateStatus(ctx, number, status); err != nil {
		return err
	}

	switch {
	case status == domain.TableBilled:
		total, err := s.outstandingTotal(ctx, number)
		if err != nil {
			s.logger.Errorw("failed to compute outstanding total", "table_number", number, "error", err)
		}
		s.publishDevice(ctx, domain.DeviceMessage{
			Type:      domain.DevicePaymentRequest,
			TableID:   number,
			Total:     total,
			Timestamp: time.Now(),
		})
	case table.Status == domain.TableBilled && status == domain.TableAvailable:
		s.publishDevice(ctx, domain.DeviceMessage{
			Type:      domain.DeviceThankYou,
			TableID:   number,
			Timestamp: time.Now(),
		})
	}

	s.logger.Infow("table status updated", "table_number", number, "old_status", table.Status, "new_status", status)

	return nil
}

func (s *TableService) Get(ctx context.Context, number string) (*domain.Table, error) {
	return s.tableRepo.GetByNumber(ctx, number)
}

func (s *TableService) List(ctx context.Context) ([]domain.Table, error) {
	return s.tableRepo.List(ctx)
}

func (s *TableService) Delete(ctx context.Context, number string) error {
	if err := s.tableRepo.Delete(ctx, number); err != nil {
		return err
	}

	s.logger.Infow("table deleted", "table_number", number)

	return nil
}

// outstandingTotal sums the open orders for the table; terminal orders do
// not owe anything.
func (s *TableService) outstandingTotal(ctx context.Context, number string) (float64, error) {
	orders, err := s.orderRepo.List(ctx, repo.OrderFilter{TableNumber: number})
	if err != nil {
		return 0, err
	}

	var total float64
	for _, order := range orders {
		if order.Status == domain.OrderCompleted || order.Status == domain.OrderCancelled {
			continue
		}
		total += order.TotalAmount
	}

	return total, nil
}

// publishDevice is fire-and-forget: the display bridge never acknowledges.
func (s *TableService) publishDevice(ctx context.Context, msg domain.DeviceMessage) {
	body, err := json.Marshal(msg)
	if err != nil {
		s.logger.Errorw("failed to marshal device message", "table_number", msg.TableID, "error", err)
		return
	}

	if err := s.broker.Publish(ctx, queue.QueueDeviceNotify, body); err != nil {
		s.logger.Errorw("failed to publish device message", "table_number", msg.TableID, "type", msg.Type, "error", err)
	}
}
