package coordinator

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Shreyas-k-p/SCANV2-sub000/internal/domain"
	"github.com/Shreyas-k-p/SCANV2-sub000/internal/queue"
	"github.com/Shreyas-k-p/SCANV2-sub000/internal/repo"
	"github.com/Shreyas-k-p/SCANV2-sub000/internal/store/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type listOrderRepo struct {
	orders []domain.Order
}

func (r *listOrderRepo) Create(ctx context.Context, order *domain.Order) error { return nil }
func (r *listOrderRepo) GetByOrderID(ctx context.Context, orderID string) (*domain.Order, error) {
	return nil, domain.ErrNotFound
}
func (r *listOrderRepo) List(ctx context.Context, filter repo.OrderFilter) ([]domain.Order, error) {
	return r.orders, nil
}
func (r *listOrderRepo) UpdateStatusFrom(ctx context.Context, orderID string, from, to domain.OrderStatus) error {
	return nil
}
func (r *listOrderRepo) AssignWaiter(ctx context.Context, orderID, staffID string) error { return nil }
func (r *listOrderRepo) Delete(ctx context.Context, orderID string) error                { return nil }

type listMenuRepo struct {
	items   []domain.MenuItem
	failAll error
}

func (r *listMenuRepo) Create(ctx context.Context, item *domain.MenuItem) error { return r.failAll }
func (r *listMenuRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.MenuItem, error) {
	return nil, domain.ErrNotFound
}
func (r *listMenuRepo) List(ctx context.Context) ([]domain.MenuItem, error) {
	return r.items, nil
}
func (r *listMenuRepo) Update(ctx context.Context, item *domain.MenuItem) error { return r.failAll }
func (r *listMenuRepo) SetAvailability(ctx context.Context, id primitive.ObjectID, available bool) error {
	return r.failAll
}
func (r *listMenuRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.items)), nil
}

func (r *listMenuRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	return r.failAll
}

type listTableRepo struct {
	tables []domain.Table
}

func (r *listTableRepo) Create(ctx context.Context, table *domain.Table) error { return nil }
func (r *listTableRepo) GetByNumber(ctx context.Context, number string) (*domain.Table, error) {
	return nil, domain.ErrNotFound
}
func (r *listTableRepo) List(ctx context.Context) ([]domain.Table, error) { return r.tables, nil }
func (r *listTableRepo) UpdateStatus(ctx context.Context, number string, status domain.TableStatus) error {
	return nil
}
func (r *listTableRepo) Delete(ctx context.Context, number string) error { return nil }

type fakeFeed struct {
	mu       sync.Mutex
	channels map[string]chan repo.Change
}

func newFakeFeed() *fakeFeed {
	return &fakeFeed{channels: make(map[string]chan repo.Change)}
}

func (f *fakeFeed) source(collection string) chan repo.Change {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch, ok := f.channels[collection]
	if !ok {
		ch = make(chan repo.Change, 8)
		f.channels[collection] = ch
	}
	return ch
}

// Watch forwards pushed changes and closes the stream when ctx ends,
// matching the store feed's contract.
func (f *fakeFeed) Watch(ctx context.Context, collection string) (<-chan repo.Change, error) {
	src := f.source(collection)
	out := make(chan repo.Change)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case change := <-src:
				select {
				case out <- change:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

func (f *fakeFeed) push(t *testing.T, collection string, change repo.Change) {
	t.Helper()
	f.source(collection) <- change
}

type alertBroker struct {
	alerts chan domain.StaffAlert
}

func newAlertBroker() *alertBroker {
	return &alertBroker{alerts: make(chan domain.StaffAlert, 8)}
}

func (b *alertBroker) Publish(ctx context.Context, queueName string, message []byte) error {
	if queueName != queue.QueueStaffAlerts {
		return nil
	}
	var alert domain.StaffAlert
	if err := json.Unmarshal(message, &alert); err != nil {
		return err
	}
	b.alerts <- alert
	return nil
}

func (b *alertBroker) Subscribe(ctx context.Context, queueName string, handler queue.MessageHandler) error {
	return nil
}

func (b *alertBroker) IsClosed() bool { return false }

func (b *alertBroker) Close() error { return nil }

func (b *alertBroker) waitAlert(t *testing.T) domain.StaffAlert {
	t.Helper()
	select {
	case alert := <-b.alerts:
		return alert
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for staff alert")
		return domain.StaffAlert{}
	}
}

func (b *alertBroker) expectNone(t *testing.T) {
	t.Helper()
	select {
	case alert := <-b.alerts:
		t.Fatalf("unexpected alert %s for order %s", alert.Kind, alert.OrderID)
	case <-time.After(100 * time.Millisecond):
	}
}

func orderDoc(t *testing.T, order domain.Order) bson.Raw {
	t.Helper()
	doc, err := bson.Marshal(order)
	if err != nil {
		t.Fatalf("marshaling order: %v", err)
	}
	return doc
}

func startCoordinator(t *testing.T, orders []domain.Order, menuRepo *listMenuRepo) (*Coordinator, *fakeFeed, *alertBroker) {
	t.Helper()
	if menuRepo == nil {
		menuRepo = &listMenuRepo{}
	}
	feed := newFakeFeed()
	broker := newAlertBroker()
	coord := New(&listOrderRepo{orders: orders}, menuRepo, &listTableRepo{}, feed, broker, zap.NewNop().Sugar())
	if err := coord.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	t.Cleanup(coord.Stop)
	return coord, feed, broker
}

func TestHydrationRaisesNoAlerts(t *testing.T) {
	existing := domain.Order{
		ID:          primitive.NewObjectID(),
		OrderID:     "ORD-1",
		TableNumber: "T1",
		Status:      domain.OrderPending,
	}
	coord, _, broker := startCoordinator(t, []domain.Order{existing}, nil)

	// a pending order present at startup is not news
	broker.expectNone(t)

	if got := len(coord.Orders()); got != 1 {
		t.Errorf("mirror holds %d orders, want 1", got)
	}
}

func TestNewPendingOrderAlertsKitchen(t *testing.T) {
	_, feed, broker := startCoordinator(t, nil, nil)

	order := domain.Order{
		ID:          primitive.NewObjectID(),
		OrderID:     "ORD-2",
		TableNumber: "T3",
		Status:      domain.OrderPending,
	}
	feed.push(t, mongo.CollectionOrders, repo.Change{
		Op:  repo.OpInsert,
		Key: order.ID.Hex(),
		Doc: orderDoc(t, order),
	})

	alert := broker.waitAlert(t)
	if alert.Kind != domain.AlertNewOrder {
		t.Errorf("alert kind = %q, want %q", alert.Kind, domain.AlertNewOrder)
	}
	if alert.OrderID != "ORD-2" || alert.TableNumber != "T3" {
		t.Errorf("alert = %s/%s, want ORD-2/T3", alert.OrderID, alert.TableNumber)
	}
}

func TestReadyTransitionAlertsWaiter(t *testing.T) {
	existing := domain.Order{
		ID:          primitive.NewObjectID(),
		OrderID:     "ORD-3",
		TableNumber: "T2",
		Status:      domain.OrderPreparing,
	}
	_, feed, broker := startCoordinator(t, []domain.Order{existing}, nil)

	updated := existing
	updated.Status = domain.OrderReady
	feed.push(t, mongo.CollectionOrders, repo.Change{
		Op:  repo.OpUpdate,
		Key: existing.ID.Hex(),
		Doc: orderDoc(t, updated),
	})

	alert := broker.waitAlert(t)
	if alert.Kind != domain.AlertOrderReady {
		t.Errorf("alert kind = %q, want %q", alert.Kind, domain.AlertOrderReady)
	}
	if alert.OrderID != "ORD-3" {
		t.Errorf("alert order id = %q, want ORD-3", alert.OrderID)
	}

	// a duplicate ready notification must not alert twice
	feed.push(t, mongo.CollectionOrders, repo.Change{
		Op:  repo.OpUpdate,
		Key: existing.ID.Hex(),
		Doc: orderDoc(t, updated),
	})
	broker.expectNone(t)
}

func TestUnrelatedTransitionsRaiseNothing(t *testing.T) {
	existing := domain.Order{
		ID:          primitive.NewObjectID(),
		OrderID:     "ORD-4",
		TableNumber: "T1",
		Status:      domain.OrderReady,
	}
	_, feed, broker := startCoordinator(t, []domain.Order{existing}, nil)

	for _, status := range []domain.OrderStatus{domain.OrderServed, domain.OrderCompleted} {
		updated := existing
		updated.Status = status
		feed.push(t, mongo.CollectionOrders, repo.Change{
			Op:  repo.OpUpdate,
			Key: existing.ID.Hex(),
			Doc: orderDoc(t, updated),
		})
	}
	broker.expectNone(t)
}

func TestDeleteChangeDropsFromMirror(t *testing.T) {
	existing := domain.Order{
		ID:          primitive.NewObjectID(),
		OrderID:     "ORD-5",
		TableNumber: "T1",
		Status:      domain.OrderCompleted,
	}
	coord, feed, broker := startCoordinator(t, []domain.Order{existing}, nil)

	feed.push(t, mongo.CollectionOrders, repo.Change{
		Op:  repo.OpDelete,
		Key: existing.ID.Hex(),
	})
	broker.expectNone(t)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(coord.Orders()) == 0 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Errorf("mirror still holds %d orders after delete", len(coord.Orders()))
}

func TestDiffOrders(t *testing.T) {
	pending := domain.Order{OrderID: "ORD-A", TableNumber: "T1", Status: domain.OrderPending}
	preparing := domain.Order{OrderID: "ORD-B", TableNumber: "T2", Status: domain.OrderPreparing}

	t.Run("new pending order", func(t *testing.T) {
		alerts := DiffOrders([]domain.Order{preparing}, []domain.Order{preparing, pending})
		if len(alerts) != 1 {
			t.Fatalf("got %d alerts, want 1", len(alerts))
		}
		if alerts[0].Kind != domain.AlertNewOrder || alerts[0].OrderID != "ORD-A" {
			t.Errorf("alert = %s/%s, want new_order/ORD-A", alerts[0].Kind, alerts[0].OrderID)
		}
	})

	t.Run("ready transition", func(t *testing.T) {
		ready := preparing
		ready.Status = domain.OrderReady
		alerts := DiffOrders([]domain.Order{preparing}, []domain.Order{ready})
		if len(alerts) != 1 {
			t.Fatalf("got %d alerts, want 1", len(alerts))
		}
		if alerts[0].Kind != domain.AlertOrderReady || alerts[0].OrderID != "ORD-B" {
			t.Errorf("alert = %s/%s, want order_ready/ORD-B", alerts[0].Kind, alerts[0].OrderID)
		}
	})

	t.Run("reordered list is not a change", func(t *testing.T) {
		prev := []domain.Order{pending, preparing}
		next := []domain.Order{preparing, pending}
		if alerts := DiffOrders(prev, next); len(alerts) != 0 {
			t.Errorf("reordering produced %d alerts, want 0", len(alerts))
		}
	})

	t.Run("identical lists", func(t *testing.T) {
		orders := []domain.Order{pending, preparing}
		if alerts := DiffOrders(orders, orders); len(alerts) != 0 {
			t.Errorf("identical lists produced %d alerts, want 0", len(alerts))
		}
	})

	t.Run("new non-pending order", func(t *testing.T) {
		served := domain.Order{OrderID: "ORD-C", Status: domain.OrderServed}
		if alerts := DiffOrders(nil, []domain.Order{served}); len(alerts) != 0 {
			t.Errorf("new served order produced %d alerts, want 0", len(alerts))
		}
	})
}

func TestOptimisticUpdateRevertsOnFailure(t *testing.T) {
	item := domain.MenuItem{
		ID:        primitive.NewObjectID(),
		Name:      "Masala Dosa",
		Price:     120,
		Available: true,
	}
	menuRepo := &listMenuRepo{
		items:   []domain.MenuItem{item},
		failAll: errors.New("write concern error"),
	}
	coord, _, _ := startCoordinator(t, nil, menuRepo)

	changed := item
	changed.Price = 150
	coord.UpdateMenuItem(changed)

	select {
	case err := <-coord.Errors():
		if err == nil {
			t.Fatal("Errors() delivered nil")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for rollback error")
	}

	items := coord.MenuItems()
	if len(items) != 1 {
		t.Fatalf("mirror holds %d items, want 1", len(items))
	}
	if items[0].Price != 120 {
		t.Errorf("price after rollback = %v, want original 120", items[0].Price)
	}
}

func TestOptimisticUpdateAppliesImmediately(t *testing.T) {
	item := domain.MenuItem{
		ID:        primitive.NewObjectID(),
		Name:      "Masala Chai",
		Price:     30,
		Available: true,
	}
	menuRepo := &listMenuRepo{items: []domain.MenuItem{item}}
	coord, _, _ := startCoordinator(t, nil, menuRepo)

	coord.SetMenuItemAvailability(item, false)

	// the mirror reflects the change before persistence settles
	items := coord.MenuItems()
	if len(items) != 1 {
		t.Fatalf("mirror holds %d items, want 1", len(items))
	}
	if items[0].Available {
		t.Error("availability toggle not applied to mirror")
	}
}

func TestOptimisticDeleteRevertsOnFailure(t *testing.T) {
	item := domain.MenuItem{
		ID:   primitive.NewObjectID(),
		Name: "Gulab Jamun",
	}
	menuRepo := &listMenuRepo{
		items:   []domain.MenuItem{item},
		failAll: errors.New("write concern error"),
	}
	coord, _, _ := startCoordinator(t, nil, menuRepo)

	coord.DeleteMenuItem(item)

	select {
	case <-coord.Errors():
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for rollback error")
	}

	if got := len(coord.MenuItems()); got != 1 {
		t.Errorf("mirror holds %d items after rollback, want 1", got)
	}
}
