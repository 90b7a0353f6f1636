package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	pkgerrors "github.com/angelmondragon/brewcart/pkg/errors"
	"github.com/angelmondragon/brewcart/pkg/logger"
	"github.com/angelmondragon/brewcart/pkg/metrics"
)

const (
	reasonReadError   = "read_error"
	reasonDecodeError = "decode_error"
)

// Gateway reads and writes JSON-shaped state through a Store.
type Gateway struct {
	store   Store
	logg    *logger.Logger
	metrics *metrics.StateMetrics
}

// NewGateway wires a store with logging and metrics.
func NewGateway(store Store, logg *logger.Logger, m *metrics.StateMetrics) (*Gateway, error) {
	if store == nil {
		return nil, fmt.Errorf("state store required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Gateway{store: store, logg: logg, metrics: m}, nil
}

// Ping checks the backing store.
func (g *Gateway) Ping(ctx context.Context) error {
	return g.store.Ping(ctx)
}

// Load decodes the namespace into a T. A missing, unreadable or corrupted
// value yields fallback; Load itself never fails.
func Load[T any](ctx context.Context, g *Gateway, scope, namespace string, fallback T) T {
	payload, ok, err := g.store.Read(ctx, scope, namespace)
	if err != nil {
		g.fallback(ctx, namespace, reasonReadError, err)
		return fallback
	}
	if !ok || len(bytes.TrimSpace(payload)) == 0 {
		return fallback
	}

	var value T
	if err := json.Unmarshal(payload, &value); err != nil {
		g.fallback(ctx, namespace, reasonDecodeError, err)
		return fallback
	}
	return value
}

// Save encodes value and writes it in full. Failures are counted and returned
// as dependency errors; callers keep their in-memory state.
func Save[T any](ctx context.Context, g *Gateway, scope, namespace string, value T) error {
	payload, err := json.Marshal(value)
	if err != nil {
		g.metrics.IncPersistError(namespace)
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, fmt.Sprintf("encode %s", namespace))
	}
	if err := g.store.Write(ctx, scope, namespace, payload); err != nil {
		g.metrics.IncPersistError(namespace)
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("write %s", namespace))
	}
	return nil
}

func (g *Gateway) fallback(ctx context.Context, namespace, reason string, err error) {
	g.metrics.IncLoadFallback(namespace, reason)
	ctx = g.logg.WithFields(ctx, map[string]any{
		"namespace": namespace,
		"reason":    reason,
		"error":     err.Error(),
	})
	g.logg.Warn(ctx, "state load fell back to default")
}
