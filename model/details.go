package model

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
)

// Details is the kind-specific part of a submission or listing. Exactly one
// variant is stored per record, selected by its Kind.
type Details interface {
	Kind() Kind
	// Price is the figure used for price sorting; 0 means no price offered.
	Price() int
}

type PGDetails struct {
	RoomPricingSingle int    `json:"room_pricing_single"`
	RoomPricingDouble int    `json:"room_pricing_double"`
	MessPolicy        string `json:"mess_policy"`
}

type FlatDetails struct {
	MonthlyRent       int    `json:"monthly_rent"`
	CurrentFlatmates  int    `json:"current_flatmates"`
	RequiredFlatmates int    `json:"required_flatmates"`
	Brokerage         bool   `json:"brokerage"`
	FlatSize          string `json:"flat_size"`
}

func (PGDetails) Kind() Kind { return KindPG }

// Price prefers double sharing when both are offered.
func (d PGDetails) Price() int {
	if d.RoomPricingDouble > 0 {
		return d.RoomPricingDouble
	}
	return d.RoomPricingSingle
}

func (FlatDetails) Kind() Kind { return KindFlat }

func (d FlatDetails) Price() int { return d.MonthlyRent }

func EncodeDetails(d Details) (datatypes.JSON, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

func DecodeDetails(kind Kind, raw datatypes.JSON) (Details, error) {
	switch kind {
	case KindPG:
		d := PGDetails{}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, fmt.Errorf("decode PG details: %w", err)
		}
		return d, nil
	case KindFlat:
		d := FlatDetails{}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, fmt.Errorf("decode Flat details: %w", err)
		}
		return d, nil
	}
	return nil, fmt.Errorf("unknown kind %q", kind)
}
