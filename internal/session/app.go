package session

import (
	"fmt"
	"time"

	"github.com/angelmondragon/brewcart/internal/catalog"
	"github.com/angelmondragon/brewcart/internal/orders"
	"github.com/angelmondragon/brewcart/internal/storage"
	"github.com/angelmondragon/brewcart/pkg/logger"
	"github.com/angelmondragon/brewcart/pkg/metrics"
)

// App is the application state shared by every session. It is built once,
// after the catalog has loaded, and never reassigned.
type App struct {
	Catalog *catalog.Catalog
	Gateway *storage.Gateway
	Logger  *logger.Logger
	Metrics *metrics.StateMetrics
	Now     func() time.Time
	NewID   func() orders.ID
}

func (a App) validate() error {
	if a.Catalog == nil {
		return fmt.Errorf("catalog required")
	}
	if a.Gateway == nil {
		return fmt.Errorf("state gateway required")
	}
	if a.Logger == nil {
		return fmt.Errorf("logger required")
	}
	return nil
}

func (a App) withDefaults() App {
	if a.Now == nil {
		a.Now = time.Now
	}
	if a.NewID == nil {
		a.NewID = orders.NewID
	}
	return a
}
