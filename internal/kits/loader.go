package kits

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/RouterHaus/routerhaus/pkg/models"
)

// Loader fetches the raw kit catalog from an ordered list of candidate
// sources and derives every record. Sources starting with http:// or
// https:// are fetched over the network; anything else is read from disk.
type Loader struct {
	sources []string
	client  *http.Client
	logger  *zap.Logger
	metrics *Metrics
}

// NewLoader creates a loader over the candidate sources, tried in order.
func NewLoader(sources []string, logger *zap.Logger, metrics *Metrics) *Loader {
	return &Loader{
		sources: sources,
		client:  &http.Client{Timeout: 10 * time.Second},
		logger:  logger,
		metrics: metrics,
	}
}

// Load returns the derived catalog from the first source that yields a
// JSON array. There is no partial success: a source that fails to fetch,
// parse, or decode as an array is skipped whole, and when every source
// fails the load fails.
func (l *Loader) Load(ctx context.Context) ([]models.Kit, error) {
	var errs []error
	for _, src := range l.sources {
		catalog, err := l.loadOne(ctx, src)
		if err != nil {
			l.logger.Warn("catalog source failed",
				zap.String("source", src),
				zap.Error(err),
			)
			errs = append(errs, fmt.Errorf("%s: %w", src, err))
			continue
		}
		l.logger.Info("catalog loaded",
			zap.String("source", src),
			zap.Int("kits", len(catalog)),
		)
		return catalog, nil
	}

	if l.metrics != nil {
		l.metrics.LoadFailures.Inc()
	}
	return nil, fmt.Errorf("load kit catalog: %w", errors.Join(errs...))
}

func (l *Loader) loadOne(ctx context.Context, src string) ([]models.Kit, error) {
	data, err := l.read(ctx, src)
	if err != nil {
		return nil, err
	}

	// The payload must be a JSON array; its elements may be anything, and
	// non-object elements simply derive as empty records.
	var elements []any
	if err := json.Unmarshal(data, &elements); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	catalog := make([]models.Kit, 0, len(elements))
	for i, el := range elements {
		raw, _ := el.(map[string]any)
		catalog = append(catalog, Derive(Raw(raw), i))
	}
	return catalog, nil
}

func (l *Loader) read(ctx context.Context, src string) ([]byte, error) {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Cache-Control", "no-store")

		resp, err := l.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status %s", resp.Status)
		}
		return io.ReadAll(resp.Body)
	}
	return os.ReadFile(src)
}
