package coordinator

import (
	"context"
	"fmt"
	"time"

	"github.com/Shreyas-k-p/SCANV2-sub000/internal/domain"
)

// Menu mutations are applied to the mirror first so dependents observe the
// change immediately, then persisted asynchronously. On failure the mirror
// reverts to the prior value and the error is surfaced through Errors().

const persistTimeout = 10 * time.Second

func (c *Coordinator) UpdateMenuItem(item domain.MenuItem) {
	key := item.ID.Hex()

	c.mu.Lock()
	prev, existed := c.menu[key]
	c.menu[key] = item
	c.mu.Unlock()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		ctx, cancel := context.WithTimeout(c.ctx, persistTimeout)
		defer cancel()

		if err := c.menuRepo.Update(ctx, &item); err != nil {
			c.revertMenu(key, prev, existed)
			c.reportError(fmt.Errorf("failed to persist menu item update: %w", err))
		}
	}()
}

func (c *Coordinator) SetMenuItemAvailability(item domain.MenuItem, available bool) {
	key := item.ID.Hex()

	c.mu.Lock()
	prev, existed := c.menu[key]
	updated := item
	updated.Available = available
	c.menu[key] = updated
	c.mu.Unlock()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		ctx, cancel := context.WithTimeout(c.ctx, persistTimeout)
		defer cancel()

		if err := c.menuRepo.SetAvailability(ctx, item.ID, available); err != nil {
			c.revertMenu(key, prev, existed)
			c.reportError(fmt.Errorf("failed to persist availability toggle: %w", err))
		}
	}()
}

func (c *Coordinator) DeleteMenuItem(item domain.MenuItem) {
	key := item.ID.Hex()

	c.mu.Lock()
	prev, existed := c.menu[key]
	delete(c.menu, key)
	c.mu.Unlock()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		ctx, cancel := context.WithTimeout(c.ctx, persistTimeout)
		defer cancel()

		if err := c.menuRepo.Delete(ctx, item.ID); err != nil {
			c.revertMenu(key, prev, existed)
			c.reportError(fmt.Errorf("failed to persist menu item delete: %w", err))
		}
	}()
}

func (c *Coordinator) revertMenu(key string, prev domain.MenuItem, existed bool) {
	c.mu.Lock()
	if existed {
		c.menu[key] = prev
	} else {
		delete(c.menu, key)
	}
	c.mu.Unlock()
}

func (c *Coordinator) reportError(err error) {
	c.logger.Errorw("optimistic mutation rolled back", "error", err)

	select {
	case c.errs <- err:
	default:
		// a slow consumer must not block the rollback path
	}
}
