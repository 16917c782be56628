package videoapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

// ErrorKind classifies an upstream request failure.
type ErrorKind int

const (
	// KindNetwork covers transport-level failures (DNS, refused, reset).
	KindNetwork ErrorKind = iota
	// KindTimeout means the per-request deadline expired.
	KindTimeout
	// KindBadStatus means the upstream answered with a non-2xx status.
	KindBadStatus
	// KindMalformed means the body could not be decoded as expected.
	KindMalformed
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindTimeout:
		return "timeout"
	case KindBadStatus:
		return "bad status"
	case KindMalformed:
		return "malformed payload"
	default:
		return "unknown"
	}
}

// FetchError tags an upstream request failure with its cause kind and the
// offending URL, replacing ad-hoc error-string inspection at call sites.
type FetchError struct {
	Kind   ErrorKind
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case KindBadStatus:
		return fmt.Sprintf("fetch %s: status %d", e.URL, e.Status)
	default:
		return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Kind, e.Err)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// IsTimeout reports whether err is a fetch deadline expiry.
func IsTimeout(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.Kind == KindTimeout
}

// RequestFailedError is surfaced by detail lookups when the upstream
// answers with a non-2xx status.
type RequestFailedError struct {
	Status int
	URL    string
}

func (e *RequestFailedError) Error() string {
	return fmt.Sprintf("detail request failed with status %d (%s)", e.Status, e.URL)
}

// InvalidPayloadError is surfaced by detail lookups when the parsed body
// lacks a non-empty list.
type InvalidPayloadError struct {
	Reason string
}

func (e *InvalidPayloadError) Error() string {
	return "invalid detail payload: " + e.Reason
}

// Fetcher performs GET requests with a bounded per-call timeout. The
// timeout aborts only its own request; concurrent siblings keep running.
type Fetcher struct {
	client *http.Client
}

// NewFetcher constructs a fetcher around the given client. A nil client
// falls back to a default one; per-call deadlines come from Get.
func NewFetcher(client *http.Client) *Fetcher {
	if client == nil {
		client = &http.Client{}
	}
	return &Fetcher{client: client}
}

// Get fetches the URL and returns the body. Every failure comes back as a
// *FetchError carrying its kind.
func (f *Fetcher) Get(ctx context.Context, rawURL string, timeout time.Duration, accept string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &FetchError{Kind: KindNetwork, URL: rawURL, Err: err}
	}
	req.Header.Set("User-Agent", browserUserAgent)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{Kind: classifyTransportError(err), URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		preview, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, &FetchError{
			Kind:   KindBadStatus,
			URL:    rawURL,
			Status: resp.StatusCode,
			Err:    errors.New(strings.TrimSpace(string(preview))),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Kind: classifyTransportError(err), URL: rawURL, Err: err}
	}
	return body, nil
}

// GetJSON fetches the URL and decodes the body into v. Decode failures come
// back as KindMalformed.
func (f *Fetcher) GetJSON(ctx context.Context, rawURL string, timeout time.Duration, v any) error {
	body, err := f.Get(ctx, rawURL, timeout, "application/json")
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return &FetchError{Kind: KindMalformed, URL: rawURL, Err: err}
	}
	return nil
}

func classifyTransportError(err error) ErrorKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	return KindNetwork
}
