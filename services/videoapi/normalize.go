package videoapi

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/Keyon00/MoonTV/config"
	"github.com/Keyon00/MoonTV/models"
	"github.com/Keyon00/MoonTV/utils"
)

var reYear = regexp.MustCompile(`\d{4}`)

// apiResponse is the search/detail envelope the upstream APIs return.
type apiResponse struct {
	Code      int         `json:"code"`
	List      []apiItem   `json:"list"`
	PageCount looseString `json:"pagecount"`
	Page      looseString `json:"page"`
	Total     looseString `json:"total"`
}

// apiItem is one raw result. Providers are inconsistent about quoting
// numeric fields, hence looseString.
type apiItem struct {
	VodID       looseString `json:"vod_id"`
	VodName     string      `json:"vod_name"`
	VodPic      string      `json:"vod_pic"`
	VodClass    string      `json:"vod_class"`
	VodYear     looseString `json:"vod_year"`
	VodContent  string      `json:"vod_content"`
	VodPlayURL  string      `json:"vod_play_url"`
	TypeName    string      `json:"type_name"`
	VodDoubanID looseString `json:"vod_douban_id"`
}

// looseString unmarshals both string and numeric JSON values.
type looseString string

func (ls *looseString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*ls = ""
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*ls = looseString(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err == nil {
		*ls = looseString(num.String())
		return nil
	}
	*ls = ""
	return nil
}

func (ls looseString) String() string {
	return string(ls)
}

func (ls looseString) Int() int {
	val, err := strconv.Atoi(strings.TrimSpace(string(ls)))
	if err != nil {
		return 0
	}
	return val
}

// normalizeItem converts one raw API item into the canonical record.
func normalizeItem(item apiItem, source config.SourceConfig) models.SearchResult {
	return models.SearchResult{
		ID:         item.VodID.String(),
		Title:      utils.CollapseWhitespace(item.VodName),
		Poster:     strings.TrimSpace(item.VodPic),
		Episodes:   ExtractEpisodes(item.VodPlayURL),
		Source:     source.Key,
		SourceName: source.Name,
		Class:      item.VodClass,
		Year:       extractYear(item.VodYear.String()),
		Desc:       utils.CleanHTMLTags(item.VodContent),
		TypeName:   item.TypeName,
		DoubanID:   item.VodDoubanID.Int(),
	}
}

// extractYear pulls the first 4-digit run out of the raw year field,
// falling back to "unknown" ("2011年" -> "2011").
func extractYear(raw string) string {
	if match := reYear.FindString(raw); match != "" {
		return match
	}
	return "unknown"
}
