package videoapi

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/Keyon00/MoonTV/config"
	"github.com/Keyon00/MoonTV/models"
)

// Upstream path templates shared by every Apple CMS style provider.
const (
	searchPath     = "?ac=videolist&wd="
	searchPagePath = "?ac=videolist&wd={query}&pg={page}"
	detailPath     = "?ac=videolist&ids="
)

// Service aggregates search and detail lookups across the configured
// upstream video API sources. No state is shared between calls; every call
// constructs and consumes its own data.
type Service struct {
	sources       []config.SourceConfig
	byKey         map[string]config.SourceConfig
	fetcher       *Fetcher
	maxPages      int
	searchTimeout time.Duration
	detailTimeout time.Duration
}

// NewService builds a service from settings. Disabled sources are skipped.
// A nil client falls back to a default one.
func NewService(settings config.Settings, client *http.Client) *Service {
	svc := &Service{
		byKey:         make(map[string]config.SourceConfig),
		fetcher:       NewFetcher(client),
		maxPages:      settings.Search.MaxPages,
		searchTimeout: time.Duration(settings.Search.TimeoutSeconds) * time.Second,
		detailTimeout: time.Duration(settings.Search.DetailTimeoutSeconds) * time.Second,
	}
	if svc.maxPages <= 0 {
		svc.maxPages = 5
	}
	if svc.searchTimeout <= 0 {
		svc.searchTimeout = 8 * time.Second
	}
	if svc.detailTimeout <= 0 {
		svc.detailTimeout = 10 * time.Second
	}
	for _, src := range settings.Sources {
		if !src.Enabled {
			continue
		}
		if _, dup := svc.byKey[src.Key]; dup {
			log.Printf("[videoapi] duplicate source key %q ignored", src.Key)
			continue
		}
		svc.sources = append(svc.sources, src)
		svc.byKey[src.Key] = src
	}
	return svc
}

// Sources returns the enabled sources in configured order.
func (s *Service) Sources() []config.SourceConfig {
	out := make([]config.SourceConfig, len(s.sources))
	copy(out, s.sources)
	return out
}

// Source looks up an enabled source by key.
func (s *Service) Source(key string) (config.SourceConfig, bool) {
	src, ok := s.byKey[key]
	return src, ok
}

// SearchAll fans the query out to every enabled source concurrently and
// concatenates the results in configured source order. Like the per-source
// search, it never fails outward.
func (s *Service) SearchAll(ctx context.Context, query string) []models.SearchResult {
	if len(s.sources) == 0 {
		return nil
	}
	slots := make([][]models.SearchResult, len(s.sources))
	var wg conc.WaitGroup
	for i, src := range s.sources {
		i, src := i, src
		wg.Go(func() {
			slots[i] = s.Search(ctx, src, query)
		})
	}
	wg.Wait()

	var results []models.SearchResult
	for _, slot := range slots {
		results = append(results, slot...)
	}
	return results
}
