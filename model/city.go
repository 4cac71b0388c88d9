package model

import (
	"fmt"
	"sort"
	"strings"

	"github.com/biter777/countries"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// Country is the ISO code every listing city belongs to.
const Country = "IN"

// cityStates is the fixed lookup the reviewer picks a city from; the state
// is never entered by hand.
var cityStates = map[string]string{
	"Delhi":         "Delhi",
	"New Delhi":     "Delhi",
	"Noida":         "Uttar Pradesh",
	"Greater Noida": "Uttar Pradesh",
	"Ghaziabad":     "Uttar Pradesh",
	"Gurugram":      "Haryana",
	"Faridabad":     "Haryana",
	"Sonipat":       "Haryana",
	"Mumbai":        "Maharashtra",
	"Pune":          "Maharashtra",
	"Bengaluru":     "Karnataka",
	"Chennai":       "Tamil Nadu",
	"Hyderabad":     "Telangana",
	"Kolkata":       "West Bengal",
	"Jaipur":        "Rajasthan",
	"Chandigarh":    "Chandigarh",
	"Dehradun":      "Uttarakhand",
	"Manipal":       "Karnataka",
	"Vellore":       "Tamil Nadu",
	"Kota":          "Rajasthan",
}

type City struct {
	ID      string `json:"id" gorm:"type:uuid;primarykey"`
	Slug    string `json:"slug" gorm:"unique"`
	Name    string `json:"name"`
	Country string `json:"country"`
	State   string `json:"state"`
}

type CityOption struct {
	Name  string `json:"name"`
	State string `json:"state"`
}

// StateForCity looks the state up in the fixed table.
func StateForCity(name string) (string, bool) {
	state, ok := cityStates[name]
	return state, ok
}

// CityOptions returns the lookup table sorted by city name.
func CityOptions() []CityOption {
	options := make([]CityOption, 0, len(cityStates))
	for name, state := range cityStates {
		options = append(options, CityOption{Name: name, State: state})
	}
	sort.Slice(options, func(i, j int) bool { return options[i].Name < options[j].Name })
	return options
}

// IsKnownState reports whether state is a subdivision of the listing country.
func IsKnownState(state string) bool {
	for _, s := range countries.India.Subdivisions() {
		if s.String() == state {
			return true
		}
	}
	return false
}

// CheckCityTable fails when a city in the lookup maps to a state that is
// not a subdivision of the listing country.
func CheckCityTable() error {
	return checkCityStates(cityStates)
}

func checkCityStates(table map[string]string) error {
	unknown := []string{}
	for city, state := range table {
		if !IsKnownState(state) {
			unknown = append(unknown, fmt.Sprintf("%s (%s)", city, state))
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("unknown state for cities: %s", strings.Join(unknown, ", "))
	}
	return nil
}

func (base *City) BeforeCreate(tx *gorm.DB) (err error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return err
	}

	base.Slug = CitySlug(base.Country, base.State, base.Name)

	base.ID = id.String()
	return
}

func CitySlug(country, state, name string) string {
	return slug.Make(country) + ":" + slug.Make(state) + ":" + slug.Make(name)
}
