package domain

// LatLong is an immutable pair of WGS84 coordinates. Construct it through
// NewLatLong; out-of-range values never produce a LatLong.
type LatLong struct {
	latitude  float64
	longitude float64
}

func NewLatLong(latitude, longitude float64) (LatLong, error) {
	if latitude < -90 || latitude > 90 {
		return LatLong{}, NewDomainError("latitude must be between -90 and 90")
	}
	if longitude < -180 || longitude > 180 {
		return LatLong{}, NewDomainError("longitude must be between -180 and 180")
	}
	return LatLong{latitude: latitude, longitude: longitude}, nil
}

func (l LatLong) Latitude() float64 {
	return l.latitude
}

func (l LatLong) Longitude() float64 {
	return l.longitude
}
