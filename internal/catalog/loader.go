package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/multierr"

	pkgerrors "github.com/angelmondragon/brewcart/pkg/errors"
	"github.com/angelmondragon/brewcart/pkg/metrics"
)

const (
	CategoriesFile = "categories.json"
	ProductsFile   = "products.json"
	OptionsFile    = "options.json"

	defaultTimeout        = 10 * time.Second
	responseBodyReadLimit = 1024
	maxResourceBytes      = 4 << 20
)

// Loader fetches the three catalog resources from a base URL or a directory.
type Loader struct {
	httpClient *http.Client
	metrics    *metrics.StateMetrics
}

// LoaderOption configures optional loader behavior.
type LoaderOption func(*Loader)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(l *Loader) {
		if client != nil {
			l.httpClient = client
		}
	}
}

// WithMetrics records load durations on the provided metrics.
func WithMetrics(m *metrics.StateMetrics) LoaderOption {
	return func(l *Loader) {
		l.metrics = m
	}
}

// NewLoader builds a loader with a timeout-bound HTTP client.
func NewLoader(timeout time.Duration, opts ...LoaderOption) *Loader {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	loader := &Loader{httpClient: &http.Client{Timeout: timeout}}
	for _, opt := range opts {
		if opt != nil {
			opt(loader)
		}
	}
	return loader
}

// Load fetches categories, products and options concurrently. It succeeds only
// when all three resources load and decode; otherwise every failure is
// reported in the returned error and no catalog is produced.
func (l *Loader) Load(ctx context.Context, source string) (cat *Catalog, err error) {
	started := time.Now()
	defer func() {
		l.metrics.ObserveCatalogLoad(time.Since(started), err)
	}()

	source = strings.TrimSpace(source)
	if source == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog source is required")
	}

	var (
		categories []Category
		products   []Product
		options    Options
	)
	targets := []struct {
		file string
		dst  any
	}{
		{CategoriesFile, &categories},
		{ProductsFile, &products},
		{OptionsFile, &options},
	}

	errs := make([]error, len(targets))
	var wg sync.WaitGroup
	for i, target := range targets {
		wg.Add(1)
		go func(i int, file string, dst any) {
			defer wg.Done()
			errs[i] = l.fetch(ctx, source, file, dst)
		}(i, target.file, target.dst)
	}
	wg.Wait()

	if combined := multierr.Combine(errs...); combined != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, combined, "load catalog")
	}

	cat, err = New(categories, products, options)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid catalog")
	}
	return cat, nil
}

func (l *Loader) fetch(ctx context.Context, source, file string, dst any) error {
	body, err := l.open(ctx, source, file)
	if err != nil {
		return err
	}
	defer func() { _ = body.Close() }()

	if err := json.NewDecoder(io.LimitReader(body, maxResourceBytes)).Decode(dst); err != nil {
		return fmt.Errorf("decode %s: %w", file, err)
	}
	return nil
}

func (l *Loader) open(ctx context.Context, source, file string) (io.ReadCloser, error) {
	if !isRemote(source) {
		f, err := os.Open(filepath.Join(source, file))
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", file, err)
		}
		return f, nil
	}

	url := strings.TrimRight(source, "/") + "/" + file
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", file, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", file, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
		_ = resp.Body.Close()
		return nil, fmt.Errorf("fetch %s: status %d: %s", file, resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	return resp.Body, nil
}

func isRemote(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
