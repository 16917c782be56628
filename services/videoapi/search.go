package videoapi

import (
	"context"
	"log"
	"net/url"
	"strconv"
	"strings"

	"github.com/sourcegraph/conc"

	"github.com/Keyon00/MoonTV/config"
	"github.com/Keyon00/MoonTV/models"
)

// Search runs a paginated query against one source. It never fails
// outward: every failure (network, timeout, bad status, malformed payload)
// is logged with the offending URL and degrades to an empty slice.
//
// Page 1 is fetched once; its envelope supplies both the results and the
// reported page count. Pages 2..min(pagecount, maxPages) are fetched
// concurrently and concatenated in ascending page order. A slow or failed
// page never cancels its siblings; the caller waits for the slowest.
func (s *Service) Search(ctx context.Context, source config.SourceConfig, query string) []models.SearchResult {
	firstPage, pageCount := s.searchFirstPage(ctx, source, query)
	if len(firstPage) == 0 {
		return nil
	}

	pages := pageCount
	if pages > s.maxPages {
		pages = s.maxPages
	}
	if pages <= 1 {
		return firstPage
	}

	extra := make([][]models.SearchResult, pages-1)
	var wg conc.WaitGroup
	for page := 2; page <= pages; page++ {
		page := page
		wg.Go(func() {
			extra[page-2] = s.searchPage(ctx, source, query, page)
		})
	}
	wg.Wait()

	results := firstPage
	for _, pageResults := range extra {
		results = append(results, pageResults...)
	}
	return results
}

// searchFirstPage fetches page 1 and returns its normalized results along
// with the page count the envelope reports (missing or invalid counts as 1).
func (s *Service) searchFirstPage(ctx context.Context, source config.SourceConfig, query string) ([]models.SearchResult, int) {
	searchURL := source.API + searchPath + url.QueryEscape(query)

	var resp apiResponse
	if err := s.fetcher.GetJSON(ctx, searchURL, s.searchTimeout, &resp); err != nil {
		log.Printf("[videoapi] %s search failed: %v", source.Key, err)
		return nil, 0
	}
	if resp.List == nil {
		log.Printf("[videoapi] %s search returned no list (%s)", source.Key, searchURL)
		return nil, 0
	}

	results := make([]models.SearchResult, 0, len(resp.List))
	for _, item := range resp.List {
		results = append(results, normalizeItem(item, source))
	}

	pageCount := resp.PageCount.Int()
	if pageCount < 1 {
		pageCount = 1
	}
	return results, pageCount
}

// searchPage fetches one additional result page; failures contribute an
// empty slice without aborting the other pages.
func (s *Service) searchPage(ctx context.Context, source config.SourceConfig, query string, page int) []models.SearchResult {
	path := strings.Replace(searchPagePath, "{query}", url.QueryEscape(query), 1)
	path = strings.Replace(path, "{page}", strconv.Itoa(page), 1)
	pageURL := source.API + path

	var resp apiResponse
	if err := s.fetcher.GetJSON(ctx, pageURL, s.searchTimeout, &resp); err != nil {
		log.Printf("[videoapi] %s search page %d failed: %v", source.Key, page, err)
		return nil
	}
	if resp.List == nil {
		log.Printf("[videoapi] %s search page %d returned no list (%s)", source.Key, page, pageURL)
		return nil
	}

	results := make([]models.SearchResult, 0, len(resp.List))
	for _, item := range resp.List {
		results = append(results, normalizeItem(item, source))
	}
	return results
}
