package types

// WikiSearchResult is one hit from a full-text or geographic encyclopedia
// search. Coordinates are only present for geographic hits.
type WikiSearchResult struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Extract     string   `json:"extract,omitempty"`
	URL         string   `json:"url,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	PageID      int64    `json:"pageId,omitempty"`
}

type WikiPageSummary struct {
	Title        string   `json:"title"`
	Extract      string   `json:"extract"`
	Description  string   `json:"description,omitempty"`
	URL          string   `json:"url"`
	ThumbnailURL string   `json:"thumbnailUrl,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	PageID       int64    `json:"pageId,omitempty"`
	// Lang is the language the summary was actually served in; callers use it
	// to surface "content shown in fallback language".
	Lang string `json:"lang,omitempty"`
}
