package model

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type SubmissionStatus string

const (
	SubmissionPending  SubmissionStatus = "pending"
	SubmissionApproved SubmissionStatus = "approved"
	SubmissionRejected SubmissionStatus = "rejected"
)

const (
	MaxImages = 6
	MaxVideos = 1
)

// Submission is a listing request waiting for moderation. Status starts
// pending and moves once, to approved or rejected.
type Submission struct {
	ID                 string           `json:"id" gorm:"type:uuid;primarykey"`
	UserID             string           `json:"user_id" gorm:"type:uuid;index"`
	Kind               Kind             `json:"kind"`
	Status             SubmissionStatus `json:"status" gorm:"index"`
	PropertyName       string           `json:"property_name"`
	Description        string           `json:"description"`
	ContactNumber      string           `json:"contact_number"`
	DepositPolicy      string           `json:"deposit_policy"`
	Details            datatypes.JSON   `json:"details"`
	SelectedFacilities []string         `json:"selected_facilities" gorm:"serializer:json"`
	SelectedAmenities  []string         `json:"selected_amenities" gorm:"serializer:json"`
	Images             []string         `json:"images" gorm:"serializer:json"`
	Video              string           `json:"video,omitempty"`
	Address            string           `json:"address"`
	Latitude           *float64         `json:"latitude,omitempty"`
	Longitude          *float64         `json:"longitude,omitempty"`
	DataSignature      string           `json:"data_signature"`
	SubmittedAt        time.Time        `json:"submitted_at" gorm:"index"`
	ReviewedAt         *time.Time       `json:"reviewed_at,omitempty"`
	RejectionReason    string           `json:"rejection_reason,omitempty"`
}

func (Submission) TableName() string {
	return "property_submissions"
}

func (base *Submission) BeforeCreate(tx *gorm.DB) (err error) {
	if base.ID != "" {
		return
	}

	id, err := uuid.NewRandom()
	if err != nil {
		return err
	}

	base.ID = id.String()
	return
}

func (s Submission) CanPublish() bool {
	return s.Status == SubmissionPending
}

// RejectableStatuses allows overwriting the reason of an already rejected
// submission.
var RejectableStatuses = []SubmissionStatus{SubmissionPending, SubmissionRejected}

func (s Submission) CanReject() bool {
	for _, st := range RejectableStatuses {
		if s.Status == st {
			return true
		}
	}
	return false
}

func (s Submission) DecodeDetails() (Details, error) {
	return DecodeDetails(s.Kind, s.Details)
}

// Tags is the union of facilities and amenities, facilities first.
func (s Submission) Tags() []string {
	tags := make([]string, 0, len(s.SelectedFacilities)+len(s.SelectedAmenities))
	tags = append(tags, s.SelectedFacilities...)
	for _, a := range s.SelectedAmenities {
		if !containsString(tags, a) {
			tags = append(tags, a)
		}
	}
	return tags
}

// ListingContent is the user-entered part of a submission. It is signed when
// the submission is written and must verify unchanged on the published listing.
type ListingContent struct {
	Kind          Kind            `json:"kind"`
	PropertyName  string          `json:"property_name"`
	Description   string          `json:"description"`
	ContactNumber string          `json:"contact_number"`
	DepositPolicy string          `json:"deposit_policy"`
	Details       json.RawMessage `json:"details"`
	Facilities    []string        `json:"facilities"`
	Amenities     []string        `json:"amenities"`
	Images        []string        `json:"images"`
	Video         string          `json:"video"`
	Address       string          `json:"address"`
	Latitude      *float64        `json:"latitude"`
	Longitude     *float64        `json:"longitude"`
}

// Canonical re-encodes the details through their typed variant so that the
// output does not depend on how the database stored the JSON column.
func (c ListingContent) Canonical() (string, error) {
	d, err := DecodeDetails(c.Kind, datatypes.JSON(c.Details))
	if err != nil {
		return "", err
	}
	details, err := json.Marshal(d)
	if err != nil {
		return "", err
	}
	c.Details = details

	b, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (s Submission) Content() ListingContent {
	return ListingContent{
		Kind:          s.Kind,
		PropertyName:  s.PropertyName,
		Description:   s.Description,
		ContactNumber: s.ContactNumber,
		DepositPolicy: s.DepositPolicy,
		Details:       json.RawMessage(s.Details),
		Facilities:    s.SelectedFacilities,
		Amenities:     s.SelectedAmenities,
		Images:        s.Images,
		Video:         s.Video,
		Address:       s.Address,
		Latitude:      s.Latitude,
		Longitude:     s.Longitude,
	}
}

// SubmitProperty is the completed multi-step form. Numeric fields are
// pointers so that "missing" and "0 (not offered)" stay distinguishable.
type SubmitProperty struct {
	Kind              Kind     `json:"kind" validate:"required"`
	PropertyName      string   `json:"property_name" validate:"required,max=120"`
	Description       string   `json:"description" validate:"required,max=4000"`
	ContactNumber     string   `json:"contact_number" validate:"required,contact"`
	DepositPolicy     string   `json:"deposit_policy" validate:"required,max=500"`
	MessPolicy        string   `json:"mess_policy" validate:"max=500"`
	RoomPricingSingle *int     `json:"room_pricing_single"`
	RoomPricingDouble *int     `json:"room_pricing_double"`
	MonthlyRent       *int     `json:"monthly_rent"`
	CurrentFlatmates  *int     `json:"current_flatmates"`
	RequiredFlatmates *int     `json:"required_flatmates"`
	Brokerage         bool     `json:"brokerage"`
	FlatSize          string   `json:"flat_size" validate:"max=40"`
	Facilities        []string `json:"facilities" validate:"min=1"`
	Amenities         []string `json:"amenities" validate:"min=1"`
	Address           string   `json:"address" validate:"required,max=500"`
	Latitude          *float64 `json:"latitude" validate:"omitempty,min=-90,max=90"`
	Longitude         *float64 `json:"longitude" validate:"omitempty,min=-180,max=180"`
}

func (s *SubmitProperty) Strip() {
	s.PropertyName = strings.TrimSpace(s.PropertyName)
	s.Description = strings.TrimSpace(s.Description)
	s.ContactNumber = StripPhone(s.ContactNumber)
	s.DepositPolicy = strings.TrimSpace(s.DepositPolicy)
	s.MessPolicy = strings.TrimSpace(s.MessPolicy)
	s.FlatSize = strings.TrimSpace(s.FlatSize)
	s.Address = strings.TrimSpace(s.Address)
}

// CheckKind covers the rules that depend on the kind: pricing presence,
// tag vocabulary and the coordinate pair.
func (s SubmitProperty) CheckKind() FieldErrors {
	problems := FieldErrors{}

	vocab, ok := VocabularyFor(s.Kind)
	if !ok {
		problems.Add("kind", "must be PG or Flat")
		return problems
	}

	switch s.Kind {
	case KindPG:
		requireAmount(problems, "room_pricing_single", s.RoomPricingSingle)
		requireAmount(problems, "room_pricing_double", s.RoomPricingDouble)
	case KindFlat:
		requireAmount(problems, "monthly_rent", s.MonthlyRent)
		requireAmount(problems, "current_flatmates", s.CurrentFlatmates)
		requireAmount(problems, "required_flatmates", s.RequiredFlatmates)
		if s.FlatSize == "" {
			problems.Add("flat_size", "is required")
		}
	}

	if len(s.Facilities) == 0 {
		problems.Add("facilities", "select at least one facility")
	} else if unknown := UnknownTags(s.Facilities, vocab.Facilities); len(unknown) > 0 {
		problems.Add("facilities", "unknown facility: "+strings.Join(unknown, ", "))
	}

	if len(s.Amenities) == 0 {
		problems.Add("amenities", "select at least one amenity")
	} else if unknown := UnknownTags(s.Amenities, vocab.Amenities); len(unknown) > 0 {
		problems.Add("amenities", "unknown amenity: "+strings.Join(unknown, ", "))
	}

	if (s.Latitude == nil) != (s.Longitude == nil) {
		problems.Add("latitude", "latitude and longitude go together")
	}

	return problems
}

func requireAmount(problems FieldErrors, field string, v *int) {
	if v == nil {
		problems.Add(field, "is required")
		return
	}
	if *v < 0 {
		problems.Add(field, "must not be negative")
	}
}

// CheckMedia validates the attachment counts of a submission form.
func CheckMedia(images, videos int) FieldErrors {
	problems := FieldErrors{}
	if images == 0 {
		problems.Add("images", "add at least one image")
	} else if images > MaxImages {
		problems.Add("images", "no more than 6 images")
	}
	if videos > MaxVideos {
		problems.Add("video", "only one video is allowed")
	}
	return problems
}

func (s SubmitProperty) Details() Details {
	switch s.Kind {
	case KindFlat:
		return FlatDetails{
			MonthlyRent:       derefInt(s.MonthlyRent),
			CurrentFlatmates:  derefInt(s.CurrentFlatmates),
			RequiredFlatmates: derefInt(s.RequiredFlatmates),
			Brokerage:         s.Brokerage,
			FlatSize:          s.FlatSize,
		}
	default:
		return PGDetails{
			RoomPricingSingle: derefInt(s.RoomPricingSingle),
			RoomPricingDouble: derefInt(s.RoomPricingDouble),
			MessPolicy:        s.MessPolicy,
		}
	}
}

// ToSubmission builds the pending record for the uploaded media references.
func (s SubmitProperty) ToSubmission(userID string, images []string, video string, now time.Time) (Submission, error) {
	details, err := EncodeDetails(s.Details())
	if err != nil {
		return Submission{}, err
	}

	return Submission{
		UserID:             userID,
		Kind:               s.Kind,
		Status:             SubmissionPending,
		PropertyName:       s.PropertyName,
		Description:        s.Description,
		ContactNumber:      s.ContactNumber,
		DepositPolicy:      s.DepositPolicy,
		Details:            details,
		SelectedFacilities: s.Facilities,
		SelectedAmenities:  s.Amenities,
		Images:             images,
		Video:              video,
		Address:            s.Address,
		Latitude:           s.Latitude,
		Longitude:          s.Longitude,
		SubmittedAt:        now,
	}, nil
}

func derefInt(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

// StatusCounts is the per-status tally shown on the review dashboard.
type StatusCounts struct {
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

func CountByStatus(submissions []Submission) StatusCounts {
	counts := StatusCounts{}
	for _, s := range submissions {
		switch s.Status {
		case SubmissionPending:
			counts.Pending++
		case SubmissionApproved:
			counts.Approved++
		case SubmissionRejected:
			counts.Rejected++
		}
	}
	return counts
}

func PendingOnly(submissions []Submission) []Submission {
	pending := []Submission{}
	for _, s := range submissions {
		if s.Status == SubmissionPending {
			pending = append(pending, s)
		}
	}
	return pending
}
