package domain

import "strings"

// AddressParams carries the optional parts of a postal address. Country is
// the only required field.
type AddressParams struct {
	Street     string
	City       string
	Region     string
	PostalCode string
	Country    string
}

type Address struct {
	street     string
	city       string
	region     string
	postalCode string
	country    string
}

func NewAddress(p AddressParams) (Address, error) {
	country := strings.TrimSpace(p.Country)
	if country == "" {
		return Address{}, NewDomainError("country is required")
	}
	return Address{
		street:     strings.TrimSpace(p.Street),
		city:       strings.TrimSpace(p.City),
		region:     strings.TrimSpace(p.Region),
		postalCode: strings.TrimSpace(p.PostalCode),
		country:    country,
	}, nil
}

// AddressFromString builds a minimal address whose only field is the raw
// string, used when a provider hands back a single formatted line.
func AddressFromString(fullAddress string) (Address, error) {
	trimmed := strings.TrimSpace(fullAddress)
	if trimmed == "" {
		return Address{}, NewDomainError("address string cannot be empty")
	}
	return Address{country: trimmed}, nil
}

func (a Address) Street() string     { return a.street }
func (a Address) City() string       { return a.city }
func (a Address) Region() string     { return a.region }
func (a Address) PostalCode() string { return a.postalCode }
func (a Address) Country() string    { return a.country }

// Value renders the present fields as a comma-joined line, in the fixed
// street, city, region, postal code, country order.
func (a Address) Value() string {
	parts := make([]string, 0, 5)
	for _, p := range []string{a.street, a.city, a.region, a.postalCode, a.country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
