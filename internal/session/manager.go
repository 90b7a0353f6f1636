package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/angelmondragon/brewcart/internal/cart"
	"github.com/angelmondragon/brewcart/internal/catalog"
	"github.com/angelmondragon/brewcart/internal/orders"
	"github.com/angelmondragon/brewcart/internal/preferences"
	"github.com/angelmondragon/brewcart/internal/storage"
	"github.com/angelmondragon/brewcart/pkg/enums"
	pkgerrors "github.com/angelmondragon/brewcart/pkg/errors"
)

const (
	commandSelectSize  = "select_size"
	commandSelectMilk  = "select_milk"
	commandToggleExtra = "toggle_extra"
	commandStepQty     = "step_qty"
	commandAddToCart   = "add_to_cart"
	commandAddSaved    = "add_saved_selection"
	commandAdjustQty   = "adjust_qty"
	commandRemove      = "remove_line"
	commandCheckout    = "checkout"
	commandClearAll    = "clear_all"
)

const maxSessionIDLength = 128

// sessionState serializes commands for one session and holds values whose
// last write failed. A non-nil overlay field wins over the store.
type sessionState struct {
	mu    sync.Mutex
	refs  int
	cart  *cart.Cart
	prefs preferences.Book
	order *orders.Record
}

func (s *sessionState) dirty() bool {
	return s.cart != nil || s.prefs != nil || s.order != nil
}

// Manager runs session commands. Each command reads the persisted state,
// applies one change and writes the result in full while holding the
// session's lock.
type Manager struct {
	app      App
	mu       sync.Mutex
	sessions map[string]*sessionState
}

// NewManager validates the application state and returns a manager.
func NewManager(app App) (*Manager, error) {
	if err := app.validate(); err != nil {
		return nil, err
	}
	return &Manager{app: app.withDefaults(), sessions: make(map[string]*sessionState)}, nil
}

// Catalog exposes the read-only catalog.
func (m *Manager) Catalog() *catalog.Catalog {
	return m.app.Catalog
}

func (m *Manager) acquire(sid string) *sessionState {
	m.mu.Lock()
	s, ok := m.sessions[sid]
	if !ok {
		s = &sessionState{}
		m.sessions[sid] = s
	}
	s.refs++
	m.mu.Unlock()

	s.mu.Lock()
	return s
}

// release drops idle sessions that have nothing left to flush. The manager
// lock is taken while the session lock is still held so the dirty check and
// the delete see the same state.
func (m *Manager) release(sid string, s *sessionState) {
	m.mu.Lock()
	s.refs--
	if s.refs == 0 && !s.dirty() {
		delete(m.sessions, sid)
	}
	m.mu.Unlock()
	s.mu.Unlock()
}

func (m *Manager) withSession(ctx context.Context, sid string, fn func(context.Context, *sessionState) error) error {
	sid = strings.TrimSpace(sid)
	if sid == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	if len(sid) > maxSessionIDLength {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("session id exceeds %d characters", maxSessionIDLength))
	}
	s := m.acquire(sid)
	defer m.release(sid, s)
	return fn(m.app.Logger.WithSessionID(ctx, sid), s)
}

// state access

func (m *Manager) loadCart(ctx context.Context, sid string, s *sessionState) cart.Cart {
	if s.cart != nil {
		return *s.cart
	}
	return storage.Load(ctx, m.app.Gateway, sid, storage.NamespaceCart, cart.Cart{})
}

func (m *Manager) loadPrefs(ctx context.Context, sid string, s *sessionState) preferences.Book {
	if s.prefs != nil {
		return s.prefs
	}
	return storage.Load(ctx, m.app.Gateway, sid, storage.NamespacePreferences, preferences.Book{})
}

func (m *Manager) loadOrder(ctx context.Context, sid string, s *sessionState) orders.Record {
	if s.order != nil {
		return *s.order
	}
	return storage.Load(ctx, m.app.Gateway, sid, storage.NamespaceOrders, orders.Record{})
}

func (m *Manager) saveCart(ctx context.Context, sid string, s *sessionState, c cart.Cart) bool {
	if err := storage.Save(ctx, m.app.Gateway, sid, storage.NamespaceCart, c); err != nil {
		m.persistFailed(ctx, storage.NamespaceCart, err)
		s.cart = &c
		return false
	}
	s.cart = nil
	return true
}

func (m *Manager) savePrefs(ctx context.Context, sid string, s *sessionState, book preferences.Book) bool {
	if err := storage.Save(ctx, m.app.Gateway, sid, storage.NamespacePreferences, book); err != nil {
		m.persistFailed(ctx, storage.NamespacePreferences, err)
		s.prefs = book
		return false
	}
	s.prefs = nil
	return true
}

func (m *Manager) saveOrder(ctx context.Context, sid string, s *sessionState, rec orders.Record) bool {
	if err := storage.Save(ctx, m.app.Gateway, sid, storage.NamespaceOrders, rec); err != nil {
		m.persistFailed(ctx, storage.NamespaceOrders, err)
		s.order = &rec
		return false
	}
	s.order = nil
	return true
}

func (m *Manager) persistFailed(ctx context.Context, namespace string, err error) {
	ctx = m.app.Logger.WithField(ctx, "namespace", namespace)
	m.app.Logger.Error(ctx, "failed to persist session state", err)
}

// validation helpers

func (m *Manager) product(idx int) (catalog.Product, error) {
	p, ok := m.app.Catalog.Product(idx)
	if !ok {
		return catalog.Product{}, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product %d not found", idx))
	}
	return p, nil
}

func (m *Manager) requireOption(kind enums.OptionKind, id int) error {
	if _, ok := m.app.Catalog.Resolve(kind, id); !ok {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown %s id %d", kind, id)).
			WithDetails(map[string]any{"kind": kind.String(), "id": id})
	}
	return nil
}

func lineNotFound(err error, key string) error {
	if errors.Is(err, cart.ErrLineNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, fmt.Sprintf("cart line %q not found", key))
	}
	return err
}
