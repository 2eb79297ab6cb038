package types

import "time"

// PlaceDTO is the flat boundary projection of a domain Place. Field names
// match the public API contract.
type PlaceDTO struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	Category       string    `json:"category"`
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	Address        string    `json:"address,omitempty"`
	Source         string    `json:"source,omitempty"`
	URL            string    `json:"url,omitempty"`
	ImageURL       string    `json:"imageUrl,omitempty"`
	WikipediaTitle string    `json:"wikipediaTitle,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type ResolvePlaceResult struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type SearchPlacesRequest struct {
	Query     string
	Latitude  *float64
	Longitude *float64
	Address   string
	City      string
	Country   string
	Lang      string
}

type NearbyPlacesRequest struct {
	Latitude  float64
	Longitude float64
	RadiusKm  float64
	Category  string
	Lang      string
}

// SearchCategories is the closed set the category-search path accepts; it is
// independent of the domain category enum (Google's taxonomy, not ours).
var SearchCategories = []string{"restaurant", "lodging", "tourist_attraction", "bar"}

type SearchByCategoryRequest struct {
	Query     string
	Latitude  *float64
	Longitude *float64
	Category  string
	Lang      string
}

type SearchPlacesByCategoryRequest struct {
	Query      string
	Latitude   *float64
	Longitude  *float64
	Categories []string
	Lang       string
}

// PlacesByCategoryResult is the fixed-shape aggregation result: every
// category key is always present, defaulting to an empty list.
type PlacesByCategoryResult struct {
	Restaurant        []PlaceDTO `json:"restaurant"`
	Lodging           []PlaceDTO `json:"lodging"`
	TouristAttraction []PlaceDTO `json:"tourist_attraction"`
	Bar               []PlaceDTO `json:"bar"`
}

func NewPlacesByCategoryResult() *PlacesByCategoryResult {
	return &PlacesByCategoryResult{
		Restaurant:        []PlaceDTO{},
		Lodging:           []PlaceDTO{},
		TouristAttraction: []PlaceDTO{},
		Bar:               []PlaceDTO{},
	}
}

// Set assigns a category's result list. Unknown categories are ignored; the
// aggregation filters to the closed set before fan-out.
func (r *PlacesByCategoryResult) Set(category string, places []PlaceDTO) {
	if places == nil {
		places = []PlaceDTO{}
	}
	switch category {
	case "restaurant":
		r.Restaurant = places
	case "lodging":
		r.Lodging = places
	case "tourist_attraction":
		r.TouristAttraction = places
	case "bar":
		r.Bar = places
	}
}
