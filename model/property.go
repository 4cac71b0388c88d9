package model

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PropertyStatus string

const (
	PropertyAvailable      PropertyStatus = "available"
	PropertyNotAvailable   PropertyStatus = "not-available"
	PropertyContactOwner   PropertyStatus = "contact-owner"
	PropertyPendingDetails PropertyStatus = "pending_details"
)

// PublicPropertyStatuses are the statuses the public browsing pages show.
var PublicPropertyStatuses = []PropertyStatus{
	PropertyAvailable,
	PropertyNotAvailable,
	PropertyContactOwner,
}

func (s PropertyStatus) IsPublic() bool {
	for _, p := range PublicPropertyStatuses {
		if p == s {
			return true
		}
	}
	return false
}

type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
	VerificationFailed   VerificationStatus = "failed"
)

func (v VerificationStatus) IsValid() bool {
	return v == VerificationPending || v == VerificationVerified || v == VerificationFailed
}

const MaxFeaturedTags = 3

// Property is a live (or draft) listing derived from exactly one submission.
// User-entered fields are copied from the submission unchanged; the rest is
// filled in by the reviewer at publish time.
type Property struct {
	ID                  string             `json:"id" gorm:"type:uuid;primarykey"`
	SubmissionID        string             `json:"submission_id" gorm:"type:uuid;uniqueIndex"`
	UserID              string             `json:"user_id" gorm:"type:uuid;index"`
	Kind                Kind               `json:"kind"`
	Title               string             `json:"title"`
	Description         string             `json:"description"`
	ContactNumber       string             `json:"contact_number"`
	DepositPolicy       string             `json:"deposit_policy"`
	Details             datatypes.JSON     `json:"details"`
	Facilities          []string           `json:"facilities" gorm:"serializer:json"`
	Amenities           []string           `json:"amenities" gorm:"serializer:json"`
	Images              []string           `json:"images" gorm:"serializer:json"`
	Video               string             `json:"video,omitempty"`
	Address             string             `json:"address"`
	Latitude            *float64           `json:"latitude,omitempty"`
	Longitude           *float64           `json:"longitude,omitempty"`
	CityID              string             `json:"-" gorm:"index"`
	City                string             `json:"city"`
	State               string             `json:"state"`
	WalkingTimeToGate   string             `json:"walking_time_to_gate"`
	WalkingTimeToMarket string             `json:"walking_time_to_market"`
	ShowCampusDistance  bool               `json:"show_campus_distance"`
	FloorNumber         *int               `json:"floor_number,omitempty"`
	VerificationStatus  VerificationStatus `json:"verification_status"`
	FeaturedTags        []string           `json:"featured_tags" gorm:"serializer:json"`
	Status              PropertyStatus     `json:"status" gorm:"index"`
	DataSignature       string             `json:"data_signature"`
	CreatedAt           time.Time          `json:"created_at" gorm:"index"`
	UpdatedAt           time.Time          `json:"updated_at"`
}

func (Property) TableName() string {
	return "properties"
}

func (base *Property) BeforeCreate(tx *gorm.DB) (err error) {
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

// Listing as seen by the public pages
type PublicProperty struct {
	ID                  string             `json:"id"`
	Kind                Kind               `json:"kind"`
	Title               string             `json:"title"`
	Description         string             `json:"description"`
	ContactNumber       string             `json:"contact_number"`
	DepositPolicy       string             `json:"deposit_policy"`
	Details             datatypes.JSON     `json:"details"`
	Facilities          []string           `json:"facilities"`
	Amenities           []string           `json:"amenities"`
	Images              []string           `json:"images"`
	Video               string             `json:"video,omitempty"`
	Address             string             `json:"address"`
	Latitude            *float64           `json:"latitude,omitempty"`
	Longitude           *float64           `json:"longitude,omitempty"`
	City                string             `json:"city"`
	State               string             `json:"state"`
	WalkingTimeToGate   string             `json:"walking_time_to_gate,omitempty"`
	WalkingTimeToMarket string             `json:"walking_time_to_market,omitempty"`
	FloorNumber         *int               `json:"floor_number,omitempty"`
	VerificationStatus  VerificationStatus `json:"verification_status"`
	FeaturedTags        []string           `json:"featured_tags"`
	Status              PropertyStatus     `json:"status"`
	CreatedAt           time.Time          `json:"created_at"`
}

// ToPublicFormat hides the campus distance unless the reviewer enabled it.
func (p Property) ToPublicFormat() any {
	pp := PublicProperty{
		ID:                  p.ID,
		Kind:                p.Kind,
		Title:               p.Title,
		Description:         p.Description,
		ContactNumber:       p.ContactNumber,
		DepositPolicy:       p.DepositPolicy,
		Details:             p.Details,
		Facilities:          p.Facilities,
		Amenities:           p.Amenities,
		Images:              p.Images,
		Video:               p.Video,
		Address:             p.Address,
		Latitude:            p.Latitude,
		Longitude:           p.Longitude,
		City:                p.City,
		State:               p.State,
		WalkingTimeToMarket: p.WalkingTimeToMarket,
		FloorNumber:         p.FloorNumber,
		VerificationStatus:  p.VerificationStatus,
		FeaturedTags:        p.FeaturedTags,
		Status:              p.Status,
		CreatedAt:           p.CreatedAt,
	}

	if p.ShowCampusDistance {
		pp.WalkingTimeToGate = p.WalkingTimeToGate
	}

	return pp
}

func (p Property) DecodeDetails() (Details, error) {
	return DecodeDetails(p.Kind, p.Details)
}

func (p Property) Content() ListingContent {
	return ListingContent{
		Kind:          p.Kind,
		PropertyName:  p.Title,
		Description:   p.Description,
		ContactNumber: p.ContactNumber,
		DepositPolicy: p.DepositPolicy,
		Details:       json.RawMessage(p.Details),
		Facilities:    p.Facilities,
		Amenities:     p.Amenities,
		Images:        p.Images,
		Video:         p.Video,
		Address:       p.Address,
		Latitude:      p.Latitude,
		Longitude:     p.Longitude,
	}
}

// ContactLink is a WhatsApp deep link with a pre-filled enquiry for the owner.
func (p Property) ContactLink() string {
	text := fmt.Sprintf("Hi, I found %s on campusnest and would like to know more about it. Is it still available?", p.Title)
	escaped := strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
	return "https://wa.me/91" + p.ContactNumber + "?text=" + escaped
}
