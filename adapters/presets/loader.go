package presets

import (
	"context"
	"fmt"
	"net/http"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const cacheKey = "presets"

// Source reports where a preset list came from
type Source string

const (
	SourceRemote  Source = "remote"
	SourceCache   Source = "cache"
	SourceBuiltIn Source = "built-in"
)

// Loader fetches the shared preset sheet and falls back to the built-in list
type Loader struct {
	url     string
	client  *http.Client
	cache   *gocache.Cache
	timeout time.Duration
	logger  *zap.Logger
}

// LoaderConfig configures a Loader
type LoaderConfig struct {
	// URL of the CSV sheet; empty serves built-ins only
	URL string

	// TTL is how long a fetched list is reused
	TTL time.Duration

	// Timeout bounds one fetch
	Timeout time.Duration

	// Client overrides the HTTP client
	Client *http.Client

	Logger *zap.Logger
}

// NewLoader creates a loader
func NewLoader(cfg LoaderConfig) *Loader {
	if cfg.TTL <= 0 {
		cfg.TTL = time.Hour
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.Client == nil {
		cfg.Client = &http.Client{}
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Loader{
		url:     cfg.URL,
		client:  cfg.Client,
		cache:   gocache.New(cfg.TTL, 2*cfg.TTL),
		timeout: cfg.Timeout,
		logger:  cfg.Logger,
	}
}

// Load returns the preset list. It never fails: any fetch or parse problem
// yields the built-in list, which is not cached so the next call retries.
func (l *Loader) Load(ctx context.Context) ([]Preset, Source) {
	if cached, ok := l.cache.Get(cacheKey); ok {
		return cached.([]Preset), SourceCache
	}
	if l.url == "" {
		return BuiltIn(), SourceBuiltIn
	}

	list, err := l.fetch(ctx)
	if err != nil {
		l.logger.Warn("using built-in presets", zap.String("url", l.url), zap.Error(err))
		return BuiltIn(), SourceBuiltIn
	}
	l.cache.SetDefault(cacheKey, list)
	l.logger.Debug("fetched presets", zap.Int("count", len(list)))
	return list, SourceRemote
}

// Invalidate drops the cached list
func (l *Loader) Invalidate() {
	l.cache.Delete(cacheKey)
}

func (l *Loader) fetch(ctx context.Context) ([]Preset, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch presets: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("preset sheet returned status %d", resp.StatusCode)
	}

	list, err := ParseCSV(resp.Body)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("preset sheet has no forms")
	}
	return list, nil
}
