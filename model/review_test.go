package model

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingSubmission(t *testing.T, s SubmitProperty) Submission {
	sub, err := s.ToSubmission("user-1", []string{"https://cdn.example/1.jpg"}, "", time.Now())
	require.NoError(t, err)
	sub.ID = "sub-1"
	sub.DataSignature = "sig"
	return sub
}

func TestReviewInputCheck(t *testing.T) {
	sub := pendingSubmission(t, validPG())

	problems := ReviewInput{}.Check(sub, true)
	assert.Contains(t, problems, "city")
	assert.Contains(t, problems, "verification_status")

	assert.True(t, ReviewInput{}.Check(sub, false).Empty())

	problems = ReviewInput{City: "Atlantis", VerificationStatus: "maybe"}.Check(sub, false)
	assert.Contains(t, problems, "city")
	assert.Contains(t, problems, "verification_status")

	ok := ReviewInput{City: "Delhi", VerificationStatus: VerificationVerified, FeaturedTags: []string{"geyser", "free-wifi"}}
	assert.True(t, ok.Check(sub, true).Empty())
}

func TestReviewInputFeaturedTags(t *testing.T) {
	sub := pendingSubmission(t, validPG())
	sub.SelectedFacilities = []string{"free-wifi", "laundry", "cctv"}
	sub.SelectedAmenities = []string{"geyser"}

	r := ReviewInput{FeaturedTags: []string{"free-wifi", "laundry", "cctv", "geyser"}}
	assert.Contains(t, r.Check(sub, false), "featured_tags")

	r = ReviewInput{FeaturedTags: []string{"lift"}}
	assert.Contains(t, r.Check(sub, false)["featured_tags"], "lift")

	r = ReviewInput{FeaturedTags: []string{"geyser", "geyser"}}
	assert.Equal(t, "geyser is picked twice", r.Check(sub, false)["featured_tags"])

	r = ReviewInput{FeaturedTags: []string{"geyser", "cctv", "free-wifi"}}
	assert.True(t, r.Check(sub, false).Empty())
}

func TestNewPropertyFromSubmissionCopiesUserContent(t *testing.T) {
	sub := pendingSubmission(t, validPG())
	r := ReviewInput{
		City:               "Gurugram",
		VerificationStatus: VerificationVerified,
		WalkingTimeToGate:  "10 mins",
		FloorNumber:        intPtr(3),
	}

	p := NewPropertyFromSubmission(sub, r, PropertyAvailable)

	assert.Equal(t, sub.ID, p.SubmissionID)
	assert.Equal(t, sub.PropertyName, p.Title)
	assert.Equal(t, sub.Description, p.Description)
	assert.Equal(t, sub.ContactNumber, p.ContactNumber)
	assert.Equal(t, sub.SelectedFacilities, p.Facilities)
	assert.Equal(t, sub.SelectedAmenities, p.Amenities)
	assert.Equal(t, sub.Images, p.Images)
	assert.JSONEq(t, string(sub.Details), string(p.Details))
	assert.Equal(t, sub.DataSignature, p.DataSignature)

	assert.Equal(t, "Gurugram", p.City)
	assert.Equal(t, "Haryana", p.State)
	assert.Equal(t, PropertyAvailable, p.Status)
	assert.Equal(t, []string{}, p.FeaturedTags)
	assert.Nil(t, p.FloorNumber, "PG listings have no floor number")

	subContent, err := sub.Content().Canonical()
	require.NoError(t, err)
	propContent, err := p.Content().Canonical()
	require.NoError(t, err)
	assert.Equal(t, subContent, propContent)
}

func TestNewPropertyFromSubmissionFlatDraft(t *testing.T) {
	sub := pendingSubmission(t, validFlat())

	p := NewPropertyFromSubmission(sub, ReviewInput{FloorNumber: intPtr(2)}, PropertyPendingDetails)
	require.NotNil(t, p.FloorNumber)
	assert.Equal(t, 2, *p.FloorNumber)
	assert.Equal(t, VerificationPending, p.VerificationStatus)
	assert.Empty(t, p.State)
	assert.False(t, p.Status.IsPublic())
}

func TestContactLink(t *testing.T) {
	p := Property{Title: "Green Nest PG & Rooms", ContactNumber: "9876543210"}
	link := p.ContactLink()

	require.True(t, strings.HasPrefix(link, "https://wa.me/919876543210?text="))
	assert.NotContains(t, link, "+")

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Contains(t, u.Query().Get("text"), "Green Nest PG & Rooms")
}

func TestToPublicFormatHidesCampusDistance(t *testing.T) {
	p := Property{ID: "p1", WalkingTimeToGate: "5 mins", WalkingTimeToMarket: "2 mins"}

	hidden := p.ToPublicFormat().(PublicProperty)
	assert.Empty(t, hidden.WalkingTimeToGate)
	assert.Equal(t, "2 mins", hidden.WalkingTimeToMarket)

	p.ShowCampusDistance = true
	assert.Equal(t, "5 mins", p.ToPublicFormat().(PublicProperty).WalkingTimeToGate)
}
