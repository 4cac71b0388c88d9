package model

type Kind string

const (
	KindPG   Kind = "PG"
	KindFlat Kind = "Flat"
)

func (k Kind) IsValid() bool {
	return k == KindPG || k == KindFlat
}

// Vocabulary is the closed tag set a submission of a given kind may pick from.
type Vocabulary struct {
	Facilities []string `json:"facilities"`
	Amenities  []string `json:"amenities"`
}

var vocabularies = map[Kind]Vocabulary{
	KindPG: {
		Facilities: []string{
			"free-wifi",
			"meals-included",
			"housekeeping",
			"laundry",
			"power-backup",
			"cctv",
			"biometric-entry",
			"warden",
		},
		Amenities: []string{
			"geyser",
			"ro-water",
			"air-conditioner",
			"air-cooler",
			"refrigerator",
			"study-table",
			"wardrobe",
			"attached-washroom",
		},
	},
	KindFlat: {
		Facilities: []string{
			"free-wifi",
			"power-backup",
			"lift",
			"parking",
			"security-guard",
			"cctv",
			"maid-service",
		},
		Amenities: []string{
			"geyser",
			"ro-water",
			"air-conditioner",
			"refrigerator",
			"washing-machine",
			"modular-kitchen",
			"sofa",
			"bed",
			"balcony",
		},
	},
}

func VocabularyFor(k Kind) (Vocabulary, bool) {
	v, ok := vocabularies[k]
	return v, ok
}

// UnknownTags returns the tags that are not part of list, in input order.
func UnknownTags(tags, list []string) []string {
	unknown := []string{}
	for _, t := range tags {
		if !containsString(list, t) {
			unknown = append(unknown, t)
		}
	}
	return unknown
}
