package model

import (
	"strings"
)

// ReviewInput holds the reviewer-only fields entered on the dashboard.
type ReviewInput struct {
	City                string             `json:"city" validate:"max=80"`
	VerificationStatus  VerificationStatus `json:"verification_status"`
	WalkingTimeToGate   string             `json:"walking_time_to_gate" validate:"max=40"`
	WalkingTimeToMarket string             `json:"walking_time_to_market" validate:"max=40"`
	ShowCampusDistance  bool               `json:"show_campus_distance"`
	FloorNumber         *int               `json:"floor_number" validate:"omitempty,min=0,max=200"`
	FeaturedTags        []string           `json:"featured_tags"`
}

type RejectInput struct {
	Reason string `json:"reason" validate:"max=1000"`
}

type ReviewQueueResponse struct {
	Counts  StatusCounts `json:"counts"`
	Pending []Submission `json:"pending"`
}

func (r *ReviewInput) Strip() {
	r.City = strings.TrimSpace(r.City)
	r.WalkingTimeToGate = strings.TrimSpace(r.WalkingTimeToGate)
	r.WalkingTimeToMarket = strings.TrimSpace(r.WalkingTimeToMarket)
}

// Check validates the reviewer fields against the submission. Publishing
// requires city and verification status; a draft only needs whatever was
// filled in to be valid.
func (r ReviewInput) Check(sub Submission, publishNow bool) FieldErrors {
	problems := FieldErrors{}

	if r.City == "" {
		if publishNow {
			problems.Add("city", "is required to publish")
		}
	} else if _, ok := StateForCity(r.City); !ok {
		problems.Add("city", "is not in the city list")
	}

	if r.VerificationStatus == "" {
		if publishNow {
			problems.Add("verification_status", "is required to publish")
		}
	} else if !r.VerificationStatus.IsValid() {
		problems.Add("verification_status", "must be pending, verified or failed")
	}

	if len(r.FeaturedTags) > MaxFeaturedTags {
		problems.Add("featured_tags", "pick at most 3")
	} else if dup := firstDuplicate(r.FeaturedTags); dup != "" {
		problems.Add("featured_tags", dup+" is picked twice")
	} else if unknown := UnknownTags(r.FeaturedTags, sub.Tags()); len(unknown) > 0 {
		problems.Add("featured_tags", "not selected on the submission: "+strings.Join(unknown, ", "))
	}

	return problems
}

func firstDuplicate(tags []string) string {
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		if seen[t] {
			return t
		}
		seen[t] = true
	}
	return ""
}

// NewPropertyFromSubmission maps a submission plus the reviewer fields onto a
// listing. Every user-entered field is copied as is.
func NewPropertyFromSubmission(sub Submission, r ReviewInput, status PropertyStatus) Property {
	p := Property{
		SubmissionID:        sub.ID,
		UserID:              sub.UserID,
		Kind:                sub.Kind,
		Title:               sub.PropertyName,
		Description:         sub.Description,
		ContactNumber:       sub.ContactNumber,
		DepositPolicy:       sub.DepositPolicy,
		Details:             sub.Details,
		Facilities:          sub.SelectedFacilities,
		Amenities:           sub.SelectedAmenities,
		Images:              sub.Images,
		Video:               sub.Video,
		Address:             sub.Address,
		Latitude:            sub.Latitude,
		Longitude:           sub.Longitude,
		City:                r.City,
		WalkingTimeToGate:   r.WalkingTimeToGate,
		WalkingTimeToMarket: r.WalkingTimeToMarket,
		ShowCampusDistance:  r.ShowCampusDistance,
		VerificationStatus:  r.VerificationStatus,
		FeaturedTags:        r.FeaturedTags,
		Status:              status,
		DataSignature:       sub.DataSignature,
	}

	if state, ok := StateForCity(r.City); ok {
		p.State = state
	}

	if p.VerificationStatus == "" {
		p.VerificationStatus = VerificationPending
	}

	if p.FeaturedTags == nil {
		p.FeaturedTags = []string{}
	}

	// Floors only make sense for flats.
	if sub.Kind == KindFlat {
		p.FloorNumber = r.FloorNumber
	}

	return p
}
