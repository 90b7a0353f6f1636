package session

import (
	"context"

	"github.com/angelmondragon/brewcart/internal/cart"
	"github.com/angelmondragon/brewcart/internal/orders"
	"github.com/angelmondragon/brewcart/internal/preferences"
	"github.com/angelmondragon/brewcart/internal/pricing"
	"github.com/angelmondragon/brewcart/pkg/enums"
	pkgerrors "github.com/angelmondragon/brewcart/pkg/errors"
)

// Product returns the product page for idx. Viewing does not persist the
// default preference.
func (m *Manager) Product(ctx context.Context, sid string, idx int) (ProductView, error) {
	var view ProductView
	err := m.withSession(ctx, sid, func(ctx context.Context, s *sessionState) error {
		if _, err := m.product(idx); err != nil {
			return err
		}
		rec := m.preference(ctx, sid, s, idx)
		view = m.productView(idx, rec, true)
		return nil
	})
	return view, err
}

// SelectSize stores a new size for the product.
func (m *Manager) SelectSize(ctx context.Context, sid string, idx, sizeID int) (ProductView, error) {
	return m.updatePreference(ctx, sid, idx, commandSelectSize, func(rec preferences.Record) (preferences.Record, error) {
		if err := m.requireOption(enums.OptionKindSize, sizeID); err != nil {
			return rec, err
		}
		return rec.WithSize(sizeID), nil
	})
}

// SelectMilk stores a new milk for the product.
func (m *Manager) SelectMilk(ctx context.Context, sid string, idx, milkID int) (ProductView, error) {
	return m.updatePreference(ctx, sid, idx, commandSelectMilk, func(rec preferences.Record) (preferences.Record, error) {
		if err := m.requireOption(enums.OptionKindMilk, milkID); err != nil {
			return rec, err
		}
		return rec.WithMilk(milkID), nil
	})
}

// ToggleExtra adds or removes an extra on the product's preference.
func (m *Manager) ToggleExtra(ctx context.Context, sid string, idx, extraID int) (ProductView, error) {
	return m.updatePreference(ctx, sid, idx, commandToggleExtra, func(rec preferences.Record) (preferences.Record, error) {
		if err := m.requireOption(enums.OptionKindExtra, extraID); err != nil {
			return rec, err
		}
		return rec.ToggleExtra(extraID), nil
	})
}

// StepQty moves the preferred quantity by delta within [1, 99].
func (m *Manager) StepQty(ctx context.Context, sid string, idx, delta int) (ProductView, error) {
	return m.updatePreference(ctx, sid, idx, commandStepQty, func(rec preferences.Record) (preferences.Record, error) {
		return rec.StepQty(delta), nil
	})
}

func (m *Manager) updatePreference(ctx context.Context, sid string, idx int, command string, fn func(preferences.Record) (preferences.Record, error)) (ProductView, error) {
	var view ProductView
	err := m.withSession(ctx, sid, func(ctx context.Context, s *sessionState) error {
		if _, err := m.product(idx); err != nil {
			return err
		}
		book := m.loadPrefs(ctx, sid, s)
		current, ok := book.Get(idx)
		if !ok {
			current = preferences.Default()
		}
		next, err := fn(preferences.Normalize(current, m.app.Catalog))
		if err != nil {
			return err
		}
		persisted := m.savePrefs(ctx, sid, s, book.With(idx, next))
		m.app.Metrics.IncMutation(command)
		view = m.productView(idx, next, persisted)
		return nil
	})
	return view, err
}

func (m *Manager) preference(ctx context.Context, sid string, s *sessionState, idx int) preferences.Record {
	rec, ok := m.loadPrefs(ctx, sid, s).Get(idx)
	if !ok {
		rec = preferences.Default()
	}
	return preferences.Normalize(rec, m.app.Catalog)
}

func (m *Manager) productView(idx int, rec preferences.Record, persisted bool) ProductView {
	product, _ := m.app.Catalog.Product(idx)
	return ProductView{
		Index:      idx,
		Product:    product,
		Preference: rec,
		Options:    m.app.Catalog.DisplayName(rec.Selection()),
		UnitPrice:  pricing.UnitPriceFor(m.app.Catalog, product, rec.Size),
		Persisted:  persisted,
	}
}

// AddSavedSelection adds the product with its stored preference, the way the
// product page's add-to-cart button does.
func (m *Manager) AddSavedSelection(ctx context.Context, sid string, idx int) (StateView, error) {
	var view StateView
	err := m.withSession(ctx, sid, func(ctx context.Context, s *sessionState) error {
		if _, err := m.product(idx); err != nil {
			return err
		}
		rec := m.preference(ctx, sid, s, idx)
		var err error
		view, err = m.mutateCart(ctx, sid, s, commandAddSaved, func(c cart.Cart) (cart.Cart, error) {
			line, err := cart.NewLine(m.app.Catalog, idx, rec)
			if err != nil {
				return c, err
			}
			return cart.AddOrMerge(c, line), nil
		})
		return err
	})
	return view, err
}

// AddToCart adds an explicit selection. Every id must exist in the catalog.
func (m *Manager) AddToCart(ctx context.Context, sid string, sel Selection) (StateView, error) {
	var view StateView
	err := m.withSession(ctx, sid, func(ctx context.Context, s *sessionState) error {
		if _, err := m.product(sel.ProductIndex); err != nil {
			return err
		}
		if err := m.requireOption(enums.OptionKindSize, sel.Size); err != nil {
			return err
		}
		if err := m.requireOption(enums.OptionKindMilk, sel.Milk); err != nil {
			return err
		}
		rec := preferences.Record{Size: sel.Size, Milk: sel.Milk, Qty: sel.Qty}
		for _, id := range sel.Extras {
			if err := m.requireOption(enums.OptionKindExtra, id); err != nil {
				return err
			}
			if !rec.HasExtra(id) {
				rec.Extras = append(rec.Extras, id)
			}
		}

		var err error
		view, err = m.mutateCart(ctx, sid, s, commandAddToCart, func(c cart.Cart) (cart.Cart, error) {
			line, err := cart.NewLine(m.app.Catalog, sel.ProductIndex, rec)
			if err != nil {
				return c, err
			}
			return cart.AddOrMerge(c, line), nil
		})
		return err
	})
	return view, err
}

// AdjustQty moves a cart line's quantity by delta within [1, 99].
func (m *Manager) AdjustQty(ctx context.Context, sid, key string, delta int) (StateView, error) {
	var view StateView
	err := m.withSession(ctx, sid, func(ctx context.Context, s *sessionState) error {
		var err error
		view, err = m.mutateCart(ctx, sid, s, commandAdjustQty, func(c cart.Cart) (cart.Cart, error) {
			next, err := cart.AdjustQty(c, key, delta)
			return next, lineNotFound(err, key)
		})
		return err
	})
	return view, err
}

// Remove drops a cart line. Removing the last line clears the active order.
func (m *Manager) Remove(ctx context.Context, sid, key string) (StateView, error) {
	var view StateView
	err := m.withSession(ctx, sid, func(ctx context.Context, s *sessionState) error {
		var err error
		view, err = m.mutateCart(ctx, sid, s, commandRemove, func(c cart.Cart) (cart.Cart, error) {
			next, err := cart.Remove(c, key)
			return next, lineNotFound(err, key)
		})
		return err
	})
	return view, err
}

// Checkout syncs the active order from a non-empty cart.
func (m *Manager) Checkout(ctx context.Context, sid string) (StateView, error) {
	var view StateView
	err := m.withSession(ctx, sid, func(ctx context.Context, s *sessionState) error {
		var err error
		view, err = m.mutateCart(ctx, sid, s, commandCheckout, func(c cart.Cart) (cart.Cart, error) {
			if c.IsEmpty() {
				return c, pkgerrors.New(pkgerrors.CodeStateConflict, "cart is empty")
			}
			return c, nil
		})
		return err
	})
	return view, err
}

// ClearAll empties the cart and removes the active order.
func (m *Manager) ClearAll(ctx context.Context, sid string) (StateView, error) {
	var view StateView
	err := m.withSession(ctx, sid, func(ctx context.Context, s *sessionState) error {
		var err error
		view, err = m.mutateCart(ctx, sid, s, commandClearAll, func(cart.Cart) (cart.Cart, error) {
			return cart.Cart{Items: []cart.Line{}}, nil
		})
		return err
	})
	return view, err
}

// mutateCart applies fn to the current cart, persists it, then re-syncs the
// active order from the result and persists that too.
func (m *Manager) mutateCart(ctx context.Context, sid string, s *sessionState, command string, fn func(cart.Cart) (cart.Cart, error)) (StateView, error) {
	next, err := fn(m.loadCart(ctx, sid, s))
	if err != nil {
		return StateView{}, err
	}
	persisted := m.saveCart(ctx, sid, s, next)

	current := m.loadOrder(ctx, sid, s)
	active := orders.Reconcile(current.Active, next, m.app.Now(), m.app.NewID)
	if !m.saveOrder(ctx, sid, s, orders.Record{Active: active}) {
		persisted = false
	}

	m.app.Metrics.IncMutation(command)
	ctx = m.app.Logger.WithFields(ctx, map[string]any{"command": command, "lines": len(next.Items)})
	m.app.Logger.Debug(ctx, "cart updated")

	return StateView{Cart: next, Totals: next.Totals(), Order: active, Persisted: persisted}, nil
}

// Cart returns the current cart and its active order.
func (m *Manager) Cart(ctx context.Context, sid string) (StateView, error) {
	var view StateView
	err := m.withSession(ctx, sid, func(ctx context.Context, s *sessionState) error {
		c := m.loadCart(ctx, sid, s)
		view = StateView{
			Cart:      c,
			Totals:    c.Totals(),
			Order:     m.loadOrder(ctx, sid, s).Active,
			Persisted: s.cart == nil && s.order == nil,
		}
		return nil
	})
	return view, err
}

// ActiveOrder returns the session's order, or nil when there is none.
func (m *Manager) ActiveOrder(ctx context.Context, sid string) (*orders.Order, error) {
	var active *orders.Order
	err := m.withSession(ctx, sid, func(ctx context.Context, s *sessionState) error {
		active = m.loadOrder(ctx, sid, s).Active
		return nil
	})
	return active, err
}

// Stages returns the active order with its items projected onto the stage board.
func (m *Manager) Stages(ctx context.Context, sid string) (OrderView, error) {
	active, err := m.ActiveOrder(ctx, sid)
	if err != nil {
		return OrderView{}, err
	}
	return OrderView{Order: active, Board: orders.Project(active)}, nil
}
