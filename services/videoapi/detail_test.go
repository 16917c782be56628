package videoapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/Keyon00/MoonTV/config"
)

var scrapeSource = config.SourceConfig{
	Key:     "ffzy",
	Name:    "非凡影视",
	API:     "http://ffzy.test/api.php/provide/vod",
	Detail:  "http://ffzy.test",
	Enabled: true,
}

func TestDetail_JSONBranch(t *testing.T) {
	client := &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		if got := req.URL.Query().Get("ids"); got != "42" {
			t.Errorf("ids param = %q, want 42", got)
		}
		return textResponse(200, `{"code":1,"list":[{
			"vod_id": 42,
			"vod_name": "Some  Show",
			"vod_pic": "https://img.test/42.jpg",
			"vod_year": "2019年",
			"vod_content": "<p>desc</p>",
			"vod_play_url": "第01集$https://cdn.test/42/1.m3u8#第02集$https://cdn.test/42/2.m3u8$$$第01集$https://mirror.test/1.m3u8",
			"type_name": "电视剧"
		}]}`), nil
	})}

	svc := NewService(testSettings(testSource), client)
	got, err := svc.Detail(context.Background(), testSource, "42")
	if err != nil {
		t.Fatalf("Detail failed: %v", err)
	}

	if got.ID != "42" || got.Title != "Some Show" || got.Year != "2019" {
		t.Fatalf("unexpected result: %+v", got)
	}
	if len(got.Episodes) != 2 || got.Episodes[0] != "https://cdn.test/42/1.m3u8" || got.Episodes[1] != "https://cdn.test/42/2.m3u8" {
		t.Fatalf("unexpected episodes: %v", got.Episodes)
	}
	if got.Desc != "desc" {
		t.Fatalf("Desc = %q", got.Desc)
	}
}

func TestDetail_JSONBranchContentScanFallback(t *testing.T) {
	client := &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return textResponse(200, `{"code":1,"list":[{
			"vod_id": 7,
			"vod_name": "Fallback",
			"vod_play_url": "第01集$magnet:?xt=whatever",
			"vod_content": "watch at $https://cdn.test/7/full.m3u8 now"
		}]}`), nil
	})}

	svc := NewService(testSettings(testSource), client)
	got, err := svc.Detail(context.Background(), testSource, "7")
	if err != nil {
		t.Fatalf("Detail failed: %v", err)
	}
	if len(got.Episodes) != 1 || got.Episodes[0] != "https://cdn.test/7/full.m3u8" {
		t.Fatalf("expected content-scan fallback, got %v", got.Episodes)
	}
}

func TestDetail_JSONBranchBadStatus(t *testing.T) {
	client := &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return textResponse(503, "unavailable"), nil
	})}

	svc := NewService(testSettings(testSource), client)
	_, err := svc.Detail(context.Background(), testSource, "42")

	var reqErr *RequestFailedError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected RequestFailedError, got %v", err)
	}
	if reqErr.Status != 503 {
		t.Fatalf("Status = %d, want 503", reqErr.Status)
	}
}

func TestDetail_JSONBranchEmptyList(t *testing.T) {
	client := &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return textResponse(200, `{"code":1,"list":[]}`), nil
	})}

	svc := NewService(testSettings(testSource), client)
	_, err := svc.Detail(context.Background(), testSource, "42")

	var payloadErr *InvalidPayloadError
	if !errors.As(err, &payloadErr) {
		t.Fatalf("expected InvalidPayloadError, got %v", err)
	}
}

func TestDetail_TimeoutPropagatesAsFetchError(t *testing.T) {
	client := &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return nil, fmt.Errorf("dial: %w", context.DeadlineExceeded)
	})}

	svc := NewService(testSettings(testSource), client)
	_, err := svc.Detail(context.Background(), testSource, "42")

	if !IsTimeout(err) {
		t.Fatalf("expected timeout fetch error, got %v", err)
	}
	var reqErr *RequestFailedError
	if errors.As(err, &reqErr) {
		t.Fatalf("timeout must not be wrapped as RequestFailedError")
	}
}

const scrapePage = `<html><head><title>页面</title></head><body>
<h1 class="title"> 非凡剧集 </h1>
<img src="https://img.ffzy.test/cover/99.jpg" />
<span>年份：</span><span>2021</span><
<div class="sketch">An <b>HTML</b> description.</div>
<script>
var playlist = "$https://vip.ffzy-play.com/20240215/5341_0f3dc1a2/index.m3u8#$https://vip.ffzy-play.com/20240215/5342_1a2b3c4d/index.m3u8";
var other = "$https://unrelated.example/clip.m3u8";
</script>
</body></html>`

func TestDetail_ScrapeBranch(t *testing.T) {
	var requested string
	client := &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		requested = req.URL.String()
		return textResponse(200, scrapePage), nil
	})}

	svc := NewService(testSettings(scrapeSource), client)
	got, err := svc.Detail(context.Background(), scrapeSource, "99")
	if err != nil {
		t.Fatalf("Detail failed: %v", err)
	}

	if requested != "http://ffzy.test/index.php/vod/detail/id/99.html" {
		t.Fatalf("unexpected detail URL: %s", requested)
	}
	if got.Title != "非凡剧集" {
		t.Errorf("Title = %q", got.Title)
	}
	if got.Poster != "https://img.ffzy.test/cover/99.jpg" {
		t.Errorf("Poster = %q", got.Poster)
	}
	if got.Desc != "An HTML description." {
		t.Errorf("Desc = %q", got.Desc)
	}
	// Strict ffzy pattern only; the unrelated generic link is excluded.
	if len(got.Episodes) != 2 ||
		got.Episodes[0] != "https://vip.ffzy-play.com/20240215/5341_0f3dc1a2/index.m3u8" ||
		got.Episodes[1] != "https://vip.ffzy-play.com/20240215/5342_1a2b3c4d/index.m3u8" {
		t.Errorf("Episodes = %v", got.Episodes)
	}
	if got.Class != "" || got.TypeName != "" || got.DoubanID != 0 {
		t.Errorf("scrape branch must zero class/type/douban: %+v", got)
	}
	if got.Source != "ffzy" || got.SourceName != "非凡影视" {
		t.Errorf("source fields = %q / %q", got.Source, got.SourceName)
	}
}

func TestDetail_ScrapeBranchYear(t *testing.T) {
	client := &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return textResponse(200, scrapePage), nil
	})}
	svc := NewService(testSettings(scrapeSource), client)
	got, err := svc.Detail(context.Background(), scrapeSource, "99")
	if err != nil {
		t.Fatalf("Detail failed: %v", err)
	}
	if got.Year != "2021" {
		t.Errorf("Year = %q, want 2021", got.Year)
	}
}

func TestDetail_ScrapeBranchMissingFields(t *testing.T) {
	client := &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return textResponse(200, `<html><body>nothing useful</body></html>`), nil
	})}

	svc := NewService(testSettings(scrapeSource), client)
	got, err := svc.Detail(context.Background(), scrapeSource, "7")
	if err != nil {
		t.Fatalf("Detail failed: %v", err)
	}
	if got.Title != "" || got.Poster != "" || got.Desc != "" {
		t.Errorf("expected empty fields, got %+v", got)
	}
	if got.Year != "unknown" {
		t.Errorf("Year = %q, want unknown", got.Year)
	}
	if len(got.Episodes) != 0 {
		t.Errorf("Episodes = %v, want none", got.Episodes)
	}
}

func TestDetail_ScrapeBranchBadStatus(t *testing.T) {
	client := &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return textResponse(404, "not found"), nil
	})}

	svc := NewService(testSettings(scrapeSource), client)
	_, err := svc.Detail(context.Background(), scrapeSource, "7")

	var reqErr *RequestFailedError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected RequestFailedError, got %v", err)
	}
	if reqErr.Status != 404 {
		t.Fatalf("Status = %d, want 404", reqErr.Status)
	}
}
