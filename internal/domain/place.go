package domain

import (
	"strings"
	"time"
)

type PlaceSource string

const (
	SourceWikipedia PlaceSource = "wikipedia"
	SourceGoogle    PlaceSource = "google"
)

// PlaceParams is the flat input for Place construction; value objects are
// built (and validated) inside the constructors.
type PlaceParams struct {
	ID             string
	Name           string
	Description    string
	Category       string
	Latitude       float64
	Longitude      float64
	Address        string
	Source         PlaceSource
	URL            string
	ImageURL       string
	WikipediaTitle string
}

// Place is an entity hydrated from an external provider. Its id is
// provider-qualified and only unique within one provider's namespace.
type Place struct {
	id             string
	name           string
	description    string
	category       PlaceCategory
	coordinates    LatLong
	address        *Address
	source         PlaceSource
	url            string
	imageURL       string
	wikipediaTitle string
	createdAt      time.Time
}

// NewPlace builds a fresh Place and stamps createdAt with the current time.
func NewPlace(p PlaceParams) (*Place, error) {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return nil, NewDomainError("place name cannot be empty")
	}
	p.Name = name
	p.Description = strings.TrimSpace(p.Description)
	return buildPlace(p, time.Now())
}

// ReconstitutePlace rehydrates a Place mapped from a provider response,
// keeping the supplied createdAt.
func ReconstitutePlace(p PlaceParams, createdAt time.Time) (*Place, error) {
	return buildPlace(p, createdAt)
}

func buildPlace(p PlaceParams, createdAt time.Time) (*Place, error) {
	coordinates, err := NewLatLong(p.Latitude, p.Longitude)
	if err != nil {
		return nil, err
	}

	var address *Address
	if strings.TrimSpace(p.Address) != "" {
		a, err := AddressFromString(p.Address)
		if err != nil {
			return nil, err
		}
		address = &a
	}

	return &Place{
		id:             p.ID,
		name:           p.Name,
		description:    p.Description,
		category:       NewPlaceCategory(p.Category),
		coordinates:    coordinates,
		address:        address,
		source:         p.Source,
		url:            p.URL,
		imageURL:       p.ImageURL,
		wikipediaTitle: p.WikipediaTitle,
		createdAt:      createdAt,
	}, nil
}

func (p *Place) ID() string              { return p.id }
func (p *Place) Name() string            { return p.name }
func (p *Place) Description() string     { return p.description }
func (p *Place) Category() PlaceCategory { return p.category }
func (p *Place) Coordinates() LatLong    { return p.coordinates }
func (p *Place) Source() PlaceSource     { return p.source }
func (p *Place) URL() string             { return p.url }
func (p *Place) ImageURL() string        { return p.imageURL }
func (p *Place) WikipediaTitle() string  { return p.wikipediaTitle }
func (p *Place) CreatedAt() time.Time    { return p.createdAt }

func (p *Place) Address() (Address, bool) {
	if p.address == nil {
		return Address{}, false
	}
	return *p.address, true
}
