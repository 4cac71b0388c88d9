package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func pgListing(id string, single, double int) Property {
	details, _ := EncodeDetails(PGDetails{RoomPricingSingle: single, RoomPricingDouble: double})
	return Property{ID: id, Kind: KindPG, Title: "PG " + id, Details: details}
}

func flatListing(id string, rent int) Property {
	details, _ := EncodeDetails(FlatDetails{MonthlyRent: rent, FlatSize: "1BHK"})
	return Property{ID: id, Kind: KindFlat, Title: "Flat " + id, Details: details}
}

func ids(properties []Property) []string {
	out := []string{}
	for _, p := range properties {
		out = append(out, p.ID)
	}
	return out
}

func TestSortByPriceLowHigh(t *testing.T) {
	properties := []Property{
		pgListing("a", 0, 5000),
		pgListing("b", 8000, 0),
		pgListing("c", 0, 0),
	}

	SortProperties(properties, SortPriceLowHigh)
	assert.Equal(t, []string{"a", "b", "c"}, ids(properties))
}

func TestSortByPriceHighLowKeepsUnpricedLast(t *testing.T) {
	properties := []Property{
		pgListing("free", 0, 0),
		flatListing("flat", 15000),
		pgListing("pg", 9000, 7000),
		flatListing("unpriced-flat", 0),
	}

	SortProperties(properties, SortPriceHighLow)
	assert.Equal(t, []string{"flat", "pg", "free", "unpriced-flat"}, ids(properties))
}

func TestSortByProximity(t *testing.T) {
	properties := []Property{
		{ID: "unknown", WalkingTimeToGate: "ask the owner"},
		{ID: "far", WalkingTimeToGate: "25 mins"},
		{ID: "empty"},
		{ID: "near", WalkingTimeToGate: "about 4 min walk"},
		{ID: "zero", WalkingTimeToGate: "0 mins, opposite the gate"},
	}

	SortProperties(properties, SortProximity)
	assert.Equal(t, []string{"zero", "near", "far", "unknown", "empty"}, ids(properties))
}

func TestSortByLastListed(t *testing.T) {
	now := time.Now()
	properties := []Property{
		{ID: "old", CreatedAt: now.Add(-48 * time.Hour)},
		{ID: "new", CreatedAt: now},
		{ID: "mid", CreatedAt: now.Add(-time.Hour)},
	}

	SortProperties(properties, SortLastListed)
	assert.Equal(t, []string{"new", "mid", "old"}, ids(properties))

	SortProperties(properties, "")
	assert.Equal(t, []string{"new", "mid", "old"}, ids(properties))
}

func TestFilterProperties(t *testing.T) {
	properties := []Property{
		pgListing("sunrise", 8000, 0),
		flatListing("north-campus", 20000),
		pgListing("north-star", 7000, 0),
	}

	assert.Equal(t, []string{"sunrise", "north-star"}, ids(FilterProperties(properties, KindPG, "")))
	assert.Equal(t, []string{"north-campus", "north-star"}, ids(FilterProperties(properties, "", "  NORTH ")))
	assert.Equal(t, []string{"north-star"}, ids(FilterProperties(properties, KindPG, "north")))
	assert.Empty(t, FilterProperties(properties, KindFlat, "sunrise"))
	assert.Len(t, FilterProperties(properties, "", ""), 3)
}

func TestWalkingMinutes(t *testing.T) {
	assert.Equal(t, 7, WalkingMinutes("7 mins"))
	assert.Equal(t, 12, WalkingMinutes("approx 12-15 min"))
	assert.Equal(t, -1, WalkingMinutes("close by"))
	assert.Equal(t, -1, WalkingMinutes(""))
}

func TestIsValidSort(t *testing.T) {
	for _, s := range []string{"", SortLastListed, SortProximity, SortPriceLowHigh, SortPriceHighLow} {
		assert.True(t, IsValidSort(s), s)
	}
	assert.False(t, IsValidSort("cheapest"))
}
