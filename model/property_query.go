package model

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

const (
	SortLastListed   = "last-listed"
	SortProximity    = "proximity"
	SortPriceLowHigh = "price-low-high"
	SortPriceHighLow = "price-high-low"
)

type PropertyQueryParams struct {
	Kind string `query:"kind"`
	Q    string `query:"q"`
	Sort string `query:"sort"`
}

func IsValidSort(s string) bool {
	switch s {
	case "", SortLastListed, SortProximity, SortPriceLowHigh, SortPriceHighLow:
		return true
	}
	return false
}

// FilterProperties keeps listings of the given kind (any when empty) whose
// title contains q, case-insensitively.
func FilterProperties(properties []Property, kind Kind, q string) []Property {
	q = strings.ToLower(strings.TrimSpace(q))
	filtered := []Property{}
	for _, p := range properties {
		if kind != "" && p.Kind != kind {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(p.Title), q) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

// SortProperties orders listings in place. Listings without a usable
// distance or price always go last.
func SortProperties(properties []Property, by string) {
	switch by {
	case SortProximity:
		minutes := make(map[string]int, len(properties))
		for _, p := range properties {
			minutes[p.ID] = WalkingMinutes(p.WalkingTimeToGate)
		}
		sort.SliceStable(properties, func(i, j int) bool {
			return lessMissingLast(minutes[properties[i].ID], minutes[properties[j].ID], -1, true)
		})
	case SortPriceLowHigh, SortPriceHighLow:
		prices := make(map[string]int, len(properties))
		for _, p := range properties {
			prices[p.ID] = PropertyPrice(p)
		}
		asc := by == SortPriceLowHigh
		sort.SliceStable(properties, func(i, j int) bool {
			return lessMissingLast(prices[properties[i].ID], prices[properties[j].ID], 0, asc)
		})
	default:
		sort.SliceStable(properties, func(i, j int) bool {
			return properties[i].CreatedAt.After(properties[j].CreatedAt)
		})
	}
}

func lessMissingLast(a, b, missing int, asc bool) bool {
	if a == missing {
		return false
	}
	if b == missing {
		return true
	}
	if asc {
		return a < b
	}
	return a > b
}

// PropertyPrice is the sortable price of a listing, 0 when none is offered.
func PropertyPrice(p Property) int {
	d, err := p.DecodeDetails()
	if err != nil {
		return 0
	}
	return d.Price()
}

var minutesPattern = regexp.MustCompile(`\d+`)

// WalkingMinutes reads the leading number out of free text such as
// "7 mins"; -1 when there is none.
func WalkingMinutes(s string) int {
	m := minutesPattern.FindString(s)
	if m == "" {
		return -1
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return -1
	}
	return n
}
