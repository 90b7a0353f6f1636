package storage

import "context"

// Namespaces shared by every backend. The names match the keys the storefront
// widget used in browser storage.
const (
	NamespaceCart        = "coffee_cart_v1"
	NamespacePreferences = "coffee_prefs_v1"
	NamespaceOrders      = "coffee_orders_v1"
)

// Store is a durable key-value backend scoped per session. Namespaces are
// independent keys, so a write to one never touches another.
type Store interface {
	// Read returns the stored payload. The boolean is false when nothing is
	// stored for the scope and namespace.
	Read(ctx context.Context, scope, namespace string) ([]byte, bool, error)
	Write(ctx context.Context, scope, namespace string, payload []byte) error
	Ping(ctx context.Context) error
}
