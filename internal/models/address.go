package models

import (
	"fmt"
	"strings"
)

// Address is an immutable delivery address. All fields except Complement are
// required; Country defaults to "Brasil" when left blank.
type Address struct {
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zip_code"`
	Country      string `json:"country"`
}

// NewAddress validates and builds an Address, trimming every field.
func NewAddress(street, number, complement, neighborhood, city, state, zipCode, country string) (Address, error) {
	country = strings.TrimSpace(country)
	if country == "" {
		country = "Brasil"
	}

	addr := Address{
		Street:       strings.TrimSpace(street),
		Number:       strings.TrimSpace(number),
		Complement:   strings.TrimSpace(complement),
		Neighborhood: strings.TrimSpace(neighborhood),
		City:         strings.TrimSpace(city),
		State:        strings.TrimSpace(state),
		ZipCode:      strings.TrimSpace(zipCode),
		Country:      country,
	}

	required := []struct {
		name  string
		value string
	}{
		{"street", addr.Street},
		{"number", addr.Number},
		{"neighborhood", addr.Neighborhood},
		{"city", addr.City},
		{"state", addr.State},
		{"zip code", addr.ZipCode},
	}
	for _, field := range required {
		if field.value == "" {
			return Address{}, NewValidationError("%s cannot be empty", field.name)
		}
	}

	return addr, nil
}

// FullAddress renders the address as a single human-readable line.
func (a Address) FullAddress() string {
	var sb strings.Builder
	sb.WriteString(a.Street)
	sb.WriteString(", ")
	sb.WriteString(a.Number)
	if a.Complement != "" {
		sb.WriteString(" - ")
		sb.WriteString(a.Complement)
	}
	fmt.Fprintf(&sb, ", %s, %s - %s, %s, %s", a.Neighborhood, a.City, a.State, a.ZipCode, a.Country)
	return sb.String()
}
