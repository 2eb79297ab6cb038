package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddress(t *testing.T) {
	t.Run("CountryIsRequired", func(t *testing.T) {
		_, err := NewAddress(AddressParams{Street: "Av. Paulista", City: "São Paulo"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "country")

		_, err = NewAddress(AddressParams{Country: "   "})
		assert.Error(t, err)
	})

	t.Run("FieldsAreTrimmed", func(t *testing.T) {
		addr, err := NewAddress(AddressParams{
			Street:  "  Av. Paulista, 1578  ",
			City:    " São Paulo ",
			Country: " Brazil ",
		})
		require.NoError(t, err)
		assert.Equal(t, "Av. Paulista, 1578", addr.Street())
		assert.Equal(t, "São Paulo", addr.City())
		assert.Equal(t, "Brazil", addr.Country())
	})

	t.Run("ValueJoinsPresentPartsInOrder", func(t *testing.T) {
		addr, err := NewAddress(AddressParams{
			Street:     "Av. Paulista, 1578",
			City:       "São Paulo",
			Region:     "SP",
			PostalCode: "01310-200",
			Country:    "Brazil",
		})
		require.NoError(t, err)
		assert.Equal(t, "Av. Paulista, 1578, São Paulo, SP, 01310-200, Brazil", addr.Value())
	})

	t.Run("ValueSkipsMissingParts", func(t *testing.T) {
		addr, err := NewAddress(AddressParams{City: "Lisboa", Country: "Portugal"})
		require.NoError(t, err)
		assert.Equal(t, "Lisboa, Portugal", addr.Value())
	})
}

func TestAddressFromString(t *testing.T) {
	t.Run("KeepsRawLine", func(t *testing.T) {
		addr, err := AddressFromString("Praça do Comércio, Lisboa, Portugal")
		require.NoError(t, err)
		assert.Equal(t, "Praça do Comércio, Lisboa, Portugal", addr.Value())
	})

	t.Run("RejectsBlank", func(t *testing.T) {
		_, err := AddressFromString("   ")
		assert.Error(t, err)
	})
}
