package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/Shreyas-k-p/SCANV2-sub000/internal/domain"
	"github.com/Shreyas-k-p/SCANV2-sub000/internal/queue"
	"github.com/Shreyas-k-p/SCANV2-sub000/internal/repo"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*domain.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*domain.Order)}
}

func (f *fakeOrderRepo) Create(ctx context.Context, order *domain.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	copied := *order
	f.orders[order.OrderID] = &copied
	return nil
}

func (f *fakeOrderRepo) GetByOrderID(ctx context.Context, orderID string) (*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[orderID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *order
	return &copied, nil
}

func (f *fakeOrderRepo) List(ctx context.Context, filter repo.OrderFilter) ([]domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	orders := make([]domain.Order, 0)
	for _, order := range f.orders {
		if filter.TableNumber != "" && order.TableNumber != filter.TableNumber {
			continue
		}
		if filter.Status != "" && order.Status != filter.Status {
			continue
		}
		orders = append(orders, *order)
	}
	return orders, nil
}

func (f *fakeOrderRepo) UpdateStatusFrom(ctx context.Context, orderID string, from, to domain.OrderStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[orderID]
	if !ok {
		return domain.ErrNotFound
	}
	if order.Status != from {
		if order.Status == to {
			return nil
		}
		return &domain.InvalidTransitionError{From: order.Status, To: to}
	}
	order.Status = to
	order.UpdatedAt = time.Now()
	return nil
}

func (f *fakeOrderRepo) AssignWaiter(ctx context.Context, orderID, staffID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[orderID]
	if !ok {
		return domain.ErrNotFound
	}
	order.AssignedWaiter = staffID
	return nil
}

func (f *fakeOrderRepo) Delete(ctx context.Context, orderID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.orders[orderID]; !ok {
		return domain.ErrNotFound
	}
	delete(f.orders, orderID)
	return nil
}

type fakeTableRepo struct {
	mu     sync.Mutex
	tables map[string]*domain.Table
}

func newFakeTableRepo() *fakeTableRepo {
	return &fakeTableRepo{tables: make(map[string]*domain.Table)}
}

func (f *fakeTableRepo) Create(ctx context.Context, table *domain.Table) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *table
	f.tables[table.Number] = &copied
	return nil
}

func (f *fakeTableRepo) GetByNumber(ctx context.Context, number string) (*domain.Table, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	table, ok := f.tables[number]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *table
	return &copied, nil
}

func (f *fakeTableRepo) List(ctx context.Context) ([]domain.Table, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	tables := make([]domain.Table, 0)
	for _, table := range f.tables {
		tables = append(tables, *table)
	}
	return tables, nil
}

func (f *fakeTableRepo) UpdateStatus(ctx context.Context, number string, status domain.TableStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	table, ok := f.tables[number]
	if !ok {
		return domain.ErrNotFound
	}
	table.Status = status
	return nil
}

func (f *fakeTableRepo) Delete(ctx context.Context, number string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tables[number]; !ok {
		return domain.ErrNotFound
	}
	delete(f.tables, number)
	return nil
}

type fakeAuditRepo struct {
	mu      sync.Mutex
	records []domain.OrderStatusAudit
}

func (f *fakeAuditRepo) Create(ctx context.Context, audit *domain.OrderStatusAudit) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, *audit)
	return nil
}

func (f *fakeAuditRepo) GetByOrderID(ctx context.Context, orderID string, limit int) ([]domain.OrderStatusAudit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	records := make([]domain.OrderStatusAudit, 0)
	for _, record := range f.records {
		if record.OrderID == orderID {
			records = append(records, record)
		}
	}
	return records, nil
}

type publishedMessage struct {
	Queue string
	Body  []byte
}

type fakeBroker struct {
	mu        sync.Mutex
	published []publishedMessage
	failWith  error
}

func (f *fakeBroker) Publish(ctx context.Context, queueName string, message []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	f.published = append(f.published, publishedMessage{Queue: queueName, Body: message})
	return nil
}

func (f *fakeBroker) Subscribe(ctx context.Context, queueName string, handler queue.MessageHandler) error {
	return nil
}

func (f *fakeBroker) IsClosed() bool { return false }

func (f *fakeBroker) Close() error { return nil }

func (f *fakeBroker) messages(queueName string) []publishedMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	msgs := make([]publishedMessage, 0)
	for _, msg := range f.published {
		if msg.Queue == queueName {
			msgs = append(msgs, msg)
		}
	}
	return msgs
}

type fakeMenuRepo struct {
	mu    sync.Mutex
	items map[string]*domain.MenuItem
}

func newFakeMenuRepo() *fakeMenuRepo {
	return &fakeMenuRepo{items: make(map[string]*domain.MenuItem)}
}

func (f *fakeMenuRepo) Create(ctx context.Context, item *domain.MenuItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if item.ID.IsZero() {
		item.ID = primitive.NewObjectID()
	}
	copied := *item
	f.items[item.ID.Hex()] = &copied
	return nil
}

func (f *fakeMenuRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.MenuItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[id.Hex()]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *item
	return &copied, nil
}

func (f *fakeMenuRepo) List(ctx context.Context) ([]domain.MenuItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	items := make([]domain.MenuItem, 0, len(f.items))
	for _, item := range f.items {
		items = append(items, *item)
	}
	return items, nil
}

func (f *fakeMenuRepo) Update(ctx context.Context, item *domain.MenuItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[item.ID.Hex()]; !ok {
		return domain.ErrNotFound
	}
	copied := *item
	f.items[item.ID.Hex()] = &copied
	return nil
}

func (f *fakeMenuRepo) SetAvailability(ctx context.Context, id primitive.ObjectID, available bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[id.Hex()]
	if !ok {
		return domain.ErrNotFound
	}
	item.Available = available
	return nil
}

func (f *fakeMenuRepo) Count(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.items)), nil
}

func (f *fakeMenuRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[id.Hex()]; !ok {
		return domain.ErrNotFound
	}
	delete(f.items, id.Hex())
	return nil
}

type fakeStaffRepo struct {
	mu       sync.Mutex
	profiles map[string]*domain.StaffProfile // keyed by role+staff_id
}

func newFakeStaffRepo() *fakeStaffRepo {
	return &fakeStaffRepo{profiles: make(map[string]*domain.StaffProfile)}
}

func staffKey(role domain.StaffRole, staffID string) string {
	return string(role) + "/" + strings.ToUpper(staffID)
}

func (f *fakeStaffRepo) Create(ctx context.Context, profile *domain.StaffProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *profile
	f.profiles[staffKey(profile.Role, profile.StaffID)] = &copied
	return nil
}

func (f *fakeStaffRepo) GetByRoleAndID(ctx context.Context, role domain.StaffRole, staffID string) (*domain.StaffProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	profile, ok := f.profiles[staffKey(role, staffID)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *profile
	return &copied, nil
}

func (f *fakeStaffRepo) List(ctx context.Context) ([]domain.StaffProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	profiles := make([]domain.StaffProfile, 0)
	for _, profile := range f.profiles {
		profiles = append(profiles, *profile)
	}
	return profiles, nil
}

func (f *fakeStaffRepo) CountByRole(ctx context.Context, role domain.StaffRole) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, profile := range f.profiles {
		if profile.Role == role {
			count++
		}
	}
	return count, nil
}

func (f *fakeStaffRepo) Delete(ctx context.Context, staffID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for key, profile := range f.profiles {
		if profile.StaffID == staffID {
			delete(f.profiles, key)
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*domain.Session)}
}

func (f *fakeSessionRepo) Create(ctx context.Context, session *domain.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *session
	f.sessions[session.Token] = &copied
	return nil
}

func (f *fakeSessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	session, ok := f.sessions[token]
	if !ok {
		return nil, domain.ErrNoSession
	}
	copied := *session
	return &copied, nil
}

func (f *fakeSessionRepo) Delete(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, token)
	return nil
}

type fakeLockRepo struct {
	mu        sync.Mutex
	holder    string
	token     string
	expiresAt time.Time
}

func (f *fakeLockRepo) Acquire(ctx context.Context, staffID, token string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now()
	if f.holder != "" && f.holder != staffID && now.Before(f.expiresAt) {
		return domain.ErrManagerActive
	}
	f.holder = staffID
	f.token = token
	f.expiresAt = now.Add(ttl)
	return nil
}

func (f *fakeLockRepo) Release(ctx context.Context, staffID, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.holder == staffID && f.token == token {
		f.holder = ""
		f.token = ""
	}
	return nil
}

func (f *fakeLockRepo) Holder(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.holder != "" && time.Now().After(f.expiresAt) {
		return "", nil
	}
	return f.holder, nil
}
