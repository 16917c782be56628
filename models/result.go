package models

// SearchResult is the canonical record produced for every raw API item or
// scraped detail page. Values are constructed once and never mutated.
type SearchResult struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Poster     string   `json:"poster"`
	Episodes   []string `json:"episodes"`
	Source     string   `json:"source"`
	SourceName string   `json:"source_name"`
	Class      string   `json:"class,omitempty"`
	Year       string   `json:"year"`
	Desc       string   `json:"desc"`
	TypeName   string   `json:"type_name,omitempty"`
	DoubanID   int      `json:"douban_id,omitempty"`
}
