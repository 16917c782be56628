package filter

import (
	"strings"

	"github.com/Keyon00/MoonTV/models"
)

// blockedCategoryTerms lists category fragments that mark adult content on
// the upstream providers. A result whose class or type name contains any of
// them is dropped from aggregate search output.
var blockedCategoryTerms = []string{
	"伦理片",
	"伦理",
	"福利",
	"里番动漫",
	"门事件",
	"萝莉少女",
	"制服诱惑",
	"国产传媒",
	"cosplay",
	"黑丝诱惑",
	"无码",
	"日本无码",
	"有码",
	"日本有码",
	"swag",
	"网红主播",
	"色情片",
	"同性片",
	"福利视频",
	"福利片",
}

// Options controls category filtering of aggregate search results.
type Options struct {
	// Disabled bypasses the blocklist entirely.
	Disabled bool
}

// Results removes blocklisted categories from the input, preserving order.
func Results(in []models.SearchResult, opts Options) []models.SearchResult {
	if opts.Disabled || len(in) == 0 {
		return in
	}
	out := make([]models.SearchResult, 0, len(in))
	for _, res := range in {
		if Blocked(res.TypeName) || Blocked(res.Class) {
			continue
		}
		out = append(out, res)
	}
	return out
}

// Blocked reports whether a category string matches the blocklist.
func Blocked(category string) bool {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" {
		return false
	}
	for _, term := range blockedCategoryTerms {
		if strings.Contains(category, term) {
			return true
		}
	}
	return false
}
