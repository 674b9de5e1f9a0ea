// Package coordinator keeps in-memory mirrors of the orders, menu and
// tables collections, fed by the store's change feed. It diffs order
// changes into kitchen/waiter alerts and applies menu mutations
// optimistically, reverting the mirror when persistence fails.
package coordinator

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/Shreyas-k-p/SCANV2-sub000/internal/domain"
	"github.com/Shreyas-k-p/SCANV2-sub000/internal/queue"
	"github.com/Shreyas-k-p/SCANV2-sub000/internal/repo"
	"github.com/Shreyas-k-p/SCANV2-sub000/internal/store/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

type Coordinator struct {
	orderRepo repo.OrderRepository
	menuRepo  repo.MenuRepository
	tableRepo repo.TableRepository
	feed      repo.ChangeFeed
	broker    queue.Broker
	logger    *zap.SugaredLogger

	mu       sync.RWMutex
	orders   map[string]domain.Order  // keyed by storage id
	menu     map[string]domain.MenuItem
	tables   map[string]domain.Table
	hydrated bool

	errs chan error

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(
	orderRepo repo.OrderRepository,
	menuRepo repo.MenuRepository,
	tableRepo repo.TableRepository,
	feed repo.ChangeFeed,
	broker queue.Broker,
	logger *zap.SugaredLogger,
) *Coordinator {
	ctx, cancel := context.WithCancel(context.Background())

	return &Coordinator{
		orderRepo: orderRepo,
		menuRepo:  menuRepo,
		tableRepo: tableRepo,
		feed:      feed,
		broker:    broker,
		logger:    logger,
		orders:    make(map[string]domain.Order),
		menu:      make(map[string]domain.MenuItem),
		tables:    make(map[string]domain.Table),
		errs:      make(chan error, 16),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Start hydrates the mirrors and begins consuming change notifications.
// The initial hydration never raises alerts: orders that already exist at
// startup are not news.
func (c *Coordinator) Start() error {
	c.logger.Info("starting state coordinator")

	if err := c.hydrate(c.ctx); err != nil {
		return err
	}

	for _, collection := range []string{mongo.CollectionOrders, mongo.CollectionMenu, mongo.CollectionTables} {
		collection := collection
		c.wg.Add(1)
		go func() {
			defer c.wg.Done()
			c.watchLoop(collection)
		}()
	}

	return nil
}

func (c *Coordinator) Stop() {
	c.logger.Info("stopping state coordinator")
	c.cancel()
	c.wg.Wait()
}

// Errors exposes persistence failures of optimistic mutations so the UI
// boundary can surface them after the mirror has already been reverted.
func (c *Coordinator) Errors() <-chan error {
	return c.errs
}

func (c *Coordinator) hydrate(ctx context.Context) error {
	orders, err := c.orderRepo.List(ctx, repo.OrderFilter{})
	if err != nil {
		return err
	}
	items, err := c.menuRepo.List(ctx)
	if err != nil {
		return err
	}
	tables, err := c.tableRepo.List(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.setOrdersLocked(orders, false)
	c.menu = make(map[string]domain.MenuItem, len(items))
	for _, item := range items {
		c.menu[item.ID.Hex()] = item
	}
	c.tables = make(map[string]domain.Table, len(tables))
	for _, table := range tables {
		c.tables[table.ID.Hex()] = table
	}
	c.hydrated = true

	return nil
}

func (c *Coordinator) watchLoop(collection string) {
	for {
		changes, err := c.feed.Watch(c.ctx, collection)
		if err != nil {
			c.logger.Errorw("failed to open change feed", "collection", collection, "error", err)
		} else {
			for change := range changes {
				c.apply(collection, change)
			}
		}

		select {
		case <-c.ctx.Done():
			return
		case <-time.After(2 * time.Second):
		}

		// the stream dropped; refresh the mirror wholesale so nothing
		// that changed while disconnected is lost, then resubscribe
		if err := c.refresh(collection); err != nil {
			c.logger.Errorw("failed to refresh mirror", "collection", collection, "error", err)
		}
	}
}

func (c *Coordinator) refresh(collection string) error {
	switch collection {
	case mongo.CollectionOrders:
		orders, err := c.orderRepo.List(c.ctx, repo.OrderFilter{})
		if err != nil {
			return err
		}
		c.SetOrders(orders)
	case mongo.CollectionMenu:
		items, err := c.menuRepo.List(c.ctx)
		if err != nil {
			return err
		}
		c.mu.Lock()
		c.menu = make(map[string]domain.MenuItem, len(items))
		for _, item := range items {
			c.menu[item.ID.Hex()] = item
		}
		c.mu.Unlock()
	case mongo.CollectionTables:
		tables, err := c.tableRepo.List(c.ctx)
		if err != nil {
			return err
		}
		c.mu.Lock()
		c.tables = make(map[string]domain.Table, len(tables))
		for _, table := range tables {
			c.tables[table.ID.Hex()] = table
		}
		c.mu.Unlock()
	}
	return nil
}

func (c *Coordinator) apply(collection string, change repo.Change) {
	switch collection {
	case mongo.CollectionOrders:
		c.applyOrderChange(change)
	case mongo.CollectionMenu:
		c.applyMenuChange(change)
	case mongo.CollectionTables:
		c.applyTableChange(change)
	}
}

// applyOrderChange merges one changed row into the order mirror and
// classifies it. An order appearing with status pending is a new order
// (kitchen alert); one moving from any other status to ready is a ready
// transition (waiter alert). Classification is by identifier, never by
// position.
func (c *Coordinator) applyOrderChange(change repo.Change) {
	if change.Op == repo.OpDelete {
		c.mu.Lock()
		delete(c.orders, change.Key)
		c.mu.Unlock()
		return
	}

	var order domain.Order
	if err := bson.Unmarshal(change.Doc, &order); err != nil {
		c.logger.Errorw("failed to decode order change", "error", err)
		return
	}

	c.mu.Lock()
	prev, existed := c.orders[change.Key]
	c.orders[change.Key] = order
	hydrated := c.hydrated
	c.mu.Unlock()

	if !hydrated {
		return
	}

	switch {
	case !existed && order.Status == domain.OrderPending:
		c.raiseAlert(domain.StaffAlert{
			Kind:        domain.AlertNewOrder,
			OrderID:     order.OrderID,
			TableNumber: order.TableNumber,
			Timestamp:   time.Now(),
		})
	case existed && prev.Status != domain.OrderReady && order.Status == domain.OrderReady:
		c.raiseAlert(domain.StaffAlert{
			Kind:        domain.AlertOrderReady,
			OrderID:     order.OrderID,
			TableNumber: order.TableNumber,
			Timestamp:   time.Now(),
		})
	}
}

func (c *Coordinator) applyMenuChange(change repo.Change) {
	if change.Op == repo.OpDelete {
		c.mu.Lock()
		delete(c.menu, change.Key)
		c.mu.Unlock()
		return
	}

	var item domain.MenuItem
	if err := bson.Unmarshal(change.Doc, &item); err != nil {
		c.logger.Errorw("failed to decode menu change", "error", err)
		return
	}

	c.mu.Lock()
	c.menu[change.Key] = item
	c.mu.Unlock()
}

func (c *Coordinator) applyTableChange(change repo.Change) {
	if change.Op == repo.OpDelete {
		c.mu.Lock()
		delete(c.tables, change.Key)
		c.mu.Unlock()
		return
	}

	var table domain.Table
	if err := bson.Unmarshal(change.Doc, &table); err != nil {
		c.logger.Errorw("failed to decode table change", "error", err)
		return
	}

	c.mu.Lock()
	c.tables[change.Key] = table
	c.mu.Unlock()
}

// SetOrders replaces the order mirror wholesale, diffing the previous
// mirror against next. Before the first hydration no alerts fire.
func (c *Coordinator) SetOrders(next []domain.Order) {
	c.mu.Lock()
	alerts := c.setOrdersLocked(next, c.hydrated)
	c.mu.Unlock()

	for _, alert := range alerts {
		c.raiseAlert(alert)
	}
}

func (c *Coordinator) setOrdersLocked(next []domain.Order, raiseAlerts bool) []domain.StaffAlert {
	var alerts []domain.StaffAlert
	if raiseAlerts {
		prev := make([]domain.Order, 0, len(c.orders))
		for _, order := range c.orders {
			prev = append(prev, order)
		}
		alerts = DiffOrders(prev, next)
	}

	c.orders = make(map[string]domain.Order, len(next))
	for _, order := range next {
		c.orders[order.ID.Hex()] = order
	}

	return alerts
}

// DiffOrders classifies the delta between two order lists by identifier:
// an order present in next but not prev with status pending is a new
// order; an order whose status was not ready and now is, is a ready
// transition.
func DiffOrders(prev, next []domain.Order) []domain.StaffAlert {
	prevByID := make(map[string]domain.Order, len(prev))
	for _, order := range prev {
		prevByID[order.OrderID] = order
	}

	var alerts []domain.StaffAlert
	for _, order := range next {
		old, existed := prevByID[order.OrderID]
		switch {
		case !existed && order.Status == domain.OrderPending:
			alerts = append(alerts, domain.StaffAlert{
				Kind:        domain.AlertNewOrder,
				OrderID:     order.OrderID,
				TableNumber: order.TableNumber,
				Timestamp:   time.Now(),
			})
		case existed && old.Status != domain.OrderReady && order.Status == domain.OrderReady:
			alerts = append(alerts, domain.StaffAlert{
				Kind:        domain.AlertOrderReady,
				OrderID:     order.OrderID,
				TableNumber: order.TableNumber,
				Timestamp:   time.Now(),
			})
		}
	}

	return alerts
}

func (c *Coordinator) raiseAlert(alert domain.StaffAlert) {
	c.logger.Infow("staff alert", "kind", alert.Kind, "order_id", alert.OrderID, "table_number", alert.TableNumber)

	body, err := json.Marshal(alert)
	if err != nil {
		c.logger.Errorw("failed to marshal staff alert", "order_id", alert.OrderID, "error", err)
		return
	}

	if err := c.broker.Publish(c.ctx, queue.QueueStaffAlerts, body); err != nil {
		c.logger.Errorw("failed to publish staff alert", "order_id", alert.OrderID, "error", err)
	}
}

func (c *Coordinator) Orders() []domain.Order {
	c.mu.RLock()
	defer c.mu.RUnlock()

	orders := make([]domain.Order, 0, len(c.orders))
	for _, order := range c.orders {
		orders = append(orders, order)
	}
	return orders
}

func (c *Coordinator) MenuItems() []domain.MenuItem {
	c.mu.RLock()
	defer c.mu.RUnlock()

	items := make([]domain.MenuItem, 0, len(c.menu))
	for _, item := range c.menu {
		items = append(items, item)
	}
	return items
}

func (c *Coordinator) Tables() []domain.Table {
	c.mu.RLock()
	defer c.mu.RUnlock()

	tables := make([]domain.Table, 0, len(c.tables))
	for _, table := range c.tables {
		tables = append(tables, table)
	}
	return tables
}
