package videoapi

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/Keyon00/MoonTV/config"
	"github.com/Keyon00/MoonTV/models"
	"github.com/Keyon00/MoonTV/utils"
)

// Detail-page field patterns. Like the play-link patterns these are
// behavioral contracts pinned by tests.
var (
	reDetailTitle = regexp.MustCompile(`<h1[^>]*>([^<]+)</h1>`)
	reDetailDesc  = regexp.MustCompile(`(?s)<div[^>]*class=["']sketch["'][^>]*>(.*?)</div>`)
	reDetailCover = regexp.MustCompile(`(https?://[^"'\s]+?\.jpg)`)
	reDetailYear  = regexp.MustCompile(`>(\d{4})<`)
)

// Detail resolves one content id against a source. Unlike Search it fails
// outward: a non-2xx response surfaces as *RequestFailedError, a payload
// without a usable list as *InvalidPayloadError, and fetch-level network or
// timeout errors propagate unwrapped.
//
// A source carrying an HTML detail base has no structured detail endpoint;
// its detail pages are scraped instead.
func (s *Service) Detail(ctx context.Context, source config.SourceConfig, id string) (models.SearchResult, error) {
	if strings.TrimSpace(source.Detail) != "" {
		return s.detailFromScrape(ctx, source, id)
	}
	return s.detailFromAPI(ctx, source, id)
}

func (s *Service) detailFromAPI(ctx context.Context, source config.SourceConfig, id string) (models.SearchResult, error) {
	detailURL := source.API + detailPath + url.QueryEscape(id)

	var resp apiResponse
	if err := s.fetcher.GetJSON(ctx, detailURL, s.detailTimeout, &resp); err != nil {
		var fe *FetchError
		if errors.As(err, &fe) && fe.Kind == KindBadStatus {
			return models.SearchResult{}, &RequestFailedError{Status: fe.Status, URL: detailURL}
		}
		return models.SearchResult{}, err
	}
	if len(resp.List) == 0 {
		return models.SearchResult{}, &InvalidPayloadError{Reason: "missing or empty list"}
	}

	item := resp.List[0]
	episodes := ExtractStructuredEpisodes(item.VodPlayURL)
	if len(episodes) == 0 {
		episodes = ScanContentEpisodes(item.VodContent)
	}

	result := normalizeItem(item, source)
	result.ID = id
	result.Episodes = episodes
	return result, nil
}

func (s *Service) detailFromScrape(ctx context.Context, source config.SourceConfig, id string) (models.SearchResult, error) {
	pageURL := fmt.Sprintf("%s/index.php/vod/detail/id/%s.html",
		strings.TrimRight(source.Detail, "/"), url.PathEscape(id))

	body, err := s.fetcher.Get(ctx, pageURL, s.detailTimeout, "text/html,application/xhtml+xml")
	if err != nil {
		var fe *FetchError
		if errors.As(err, &fe) && fe.Kind == KindBadStatus {
			return models.SearchResult{}, &RequestFailedError{Status: fe.Status, URL: pageURL}
		}
		return models.SearchResult{}, err
	}
	page := string(body)

	title := ""
	if m := reDetailTitle.FindStringSubmatch(page); m != nil {
		title = strings.TrimSpace(m[1])
	}
	desc := ""
	if m := reDetailDesc.FindStringSubmatch(page); m != nil {
		desc = utils.CleanHTMLTags(m[1])
	}
	cover := ""
	if m := reDetailCover.FindString(page); m != "" {
		cover = m
	}
	year := "unknown"
	if m := reDetailYear.FindStringSubmatch(page); m != nil {
		year = m[1]
	}

	return models.SearchResult{
		ID:         id,
		Title:      title,
		Poster:     cover,
		Episodes:   ExtractScrapeEpisodes(source.Key, page),
		Source:     source.Key,
		SourceName: source.Name,
		Class:      "",
		Year:       year,
		Desc:       desc,
		TypeName:   "",
		DoubanID:   0,
	}, nil
}
