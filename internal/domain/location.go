package domain

import (
	"fmt"
	"strings"
)

const (
	DefaultRadiusKm = 10
	MaxRadiusKm     = 100
)

type locationKind int

const (
	locationCoordinates locationKind = iota + 1
	locationAddress
)

// Location biases a search without requiring a resolved place. It is a tagged
// union: either a coordinate pair with a radius, or a loose address hint.
// Coordinate reads are checked (comma-ok) so an address-based Location can
// never leak a silent zero latitude.
type Location struct {
	kind     locationKind
	coords   LatLong
	radiusKm float64
	address  string
	city     string
	country  string
}

// LocationFromCoordinates builds a coordinate-based Location. A zero radiusKm
// means "use the default"; otherwise the radius must be in (0, MaxRadiusKm].
func LocationFromCoordinates(latitude, longitude, radiusKm float64) (Location, error) {
	coords, err := NewLatLong(latitude, longitude)
	if err != nil {
		return Location{}, err
	}
	if radiusKm == 0 {
		radiusKm = DefaultRadiusKm
	}
	if radiusKm < 0 || radiusKm > MaxRadiusKm {
		return Location{}, NewDomainError(fmt.Sprintf("radius must be between 1 and %d km", MaxRadiusKm))
	}
	return Location{kind: locationCoordinates, coords: coords, radiusKm: radiusKm}, nil
}

// LocationFromAddress builds an address-based Location. At least one of the
// three hints must be non-blank.
func LocationFromAddress(address, city, country string) (Location, error) {
	address = strings.TrimSpace(address)
	city = strings.TrimSpace(city)
	country = strings.TrimSpace(country)
	if address == "" && city == "" && country == "" {
		return Location{}, NewDomainError("at least one of address, city or country must be provided")
	}
	return Location{kind: locationAddress, address: address, city: city, country: country}, nil
}

func (l Location) IsCoordinateBased() bool {
	return l.kind == locationCoordinates
}

// Coordinates returns the coordinate pair and radius for a coordinate-based
// Location. The second return is false for address-based Locations.
func (l Location) Coordinates() (LatLong, bool) {
	if l.kind != locationCoordinates {
		return LatLong{}, false
	}
	return l.coords, true
}

func (l Location) RadiusKm() (float64, bool) {
	if l.kind != locationCoordinates {
		return 0, false
	}
	return l.radiusKm, true
}

// AddressParts returns the address hints for an address-based Location. The
// last return is false for coordinate-based Locations.
func (l Location) AddressParts() (address, city, country string, ok bool) {
	if l.kind != locationAddress {
		return "", "", "", false
	}
	return l.address, l.city, l.country, true
}
