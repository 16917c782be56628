package videoapi

import (
	"regexp"
	"strings"
)

// Play-url layout used by the upstream APIs: play-source groups separated
// by "$$$", episodes within a group by "#", and each episode written as
// label$url. The regex families below are behavioral contracts; the tests
// pin their exact semantics.
const (
	playGroupSeparator = "$$$"
	episodeSeparator   = "#"
	episodeLabelSep    = "$"

	// ffzySourceKey marks the provider whose detail pages need the stricter
	// CDN pattern below before falling back to the general one.
	ffzySourceKey = "ffzy"
)

var (
	// reEpisodeURL matches a dollar-prefixed m3u8 link inside a play list.
	reEpisodeURL = regexp.MustCompile(`\$(https?://[^"'\s]+?\.m3u8)`)

	// reFfzyEpisodeURL pins the ffzy CDN layout: an eight-digit date segment
	// then a numeric_hash directory ending in index.m3u8.
	reFfzyEpisodeURL = regexp.MustCompile(`\$(https?://[^"'\s]+?/\d{8}/\d+_[0-9a-f]+/index\.m3u8)`)
)

// ExtractEpisodes implements delimited-list extraction for search-result
// items and structured detail play lists: the group with the most matches
// wins (ties keep the first group) and the dollar prefix is stripped.
func ExtractEpisodes(playURL string) []string {
	if playURL == "" {
		return nil
	}
	var best []string
	for _, group := range strings.Split(playURL, playGroupSeparator) {
		matches := matchEpisodeURLs(reEpisodeURL, group)
		if len(matches) > len(best) {
			best = matches
		}
	}
	return dedupeURLs(best)
}

// ExtractStructuredEpisodes implements structured-episode extraction for
// JSON detail payloads: only the first play-source group is used, episodes
// are split on "#" and each label$url entry keeps its URL when it is an
// absolute http(s) link.
func ExtractStructuredEpisodes(playURL string) []string {
	if playURL == "" {
		return nil
	}
	firstGroup := strings.Split(playURL, playGroupSeparator)[0]
	var urls []string
	for _, entry := range strings.Split(firstGroup, episodeSeparator) {
		parts := strings.Split(entry, episodeLabelSep)
		if len(parts) < 2 {
			continue
		}
		link := strings.TrimSpace(parts[1])
		if strings.HasPrefix(link, "http://") || strings.HasPrefix(link, "https://") {
			urls = append(urls, link)
		}
	}
	return dedupeURLs(urls)
}

// ScanContentEpisodes is the fallback when structured extraction yields
// nothing: scan the raw content field for dollar-prefixed m3u8 links.
func ScanContentEpisodes(content string) []string {
	if content == "" {
		return nil
	}
	return dedupeURLs(matchEpisodeURLs(reEpisodeURL, content))
}

// ExtractScrapeEpisodes extracts play links from a scraped HTML detail
// page. The ffzy provider gets its stricter pattern first; zero strict
// matches (or any other source key) fall back to the general pattern over
// the full body.
func ExtractScrapeEpisodes(sourceKey, body string) []string {
	if body == "" {
		return nil
	}
	if sourceKey == ffzySourceKey {
		if matches := matchEpisodeURLs(reFfzyEpisodeURL, body); len(matches) > 0 {
			return dedupeURLs(matches)
		}
	}
	return dedupeURLs(matchEpisodeURLs(reEpisodeURL, body))
}

func matchEpisodeURLs(re *regexp.Regexp, s string) []string {
	raw := re.FindAllStringSubmatch(s, -1)
	if len(raw) == 0 {
		return nil
	}
	urls := make([]string, 0, len(raw))
	for _, m := range raw {
		urls = append(urls, m[1])
	}
	return urls
}

// dedupeURLs trims any parenthesized presentation suffix, then removes
// exact duplicates preserving first-seen order.
func dedupeURLs(urls []string) []string {
	if len(urls) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(urls))
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if idx := strings.Index(u, "("); idx >= 0 {
			u = u[:idx]
		}
		u = strings.TrimSpace(u)
		if u == "" {
			continue
		}
		if _, dup := seen[u]; dup {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}
