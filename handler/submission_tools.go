package handler

import (
	"fmt"
	"mime/multipart"
	"strconv"
	"strings"

	"campusnest/model"
)

type formReader struct {
	form     *multipart.Form
	problems model.FieldErrors
}

func (r formReader) value(name string) string {
	if v := r.form.Value[name]; len(v) > 0 {
		return strings.TrimSpace(v[0])
	}
	return ""
}

// values returns every non-empty value sent for a repeated field.
func (r formReader) values(name string) []string {
	out := []string{}
	for _, v := range r.form.Value[name] {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func (r formReader) intValue(name string) *int {
	raw := r.value(name)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		r.problems.Add(name, "must be a whole number")
		return nil
	}
	return &n
}

func (r formReader) floatValue(name string) *float64 {
	raw := r.value(name)
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		r.problems.Add(name, "must be a number")
		return nil
	}
	return &f
}

func (r formReader) boolValue(name string) bool {
	switch strings.ToLower(r.value(name)) {
	case "true", "on", "yes", "1":
		return true
	}
	return false
}

// submitPropertyFromForm reads the multipart listing form. Parse problems
// (e.g. a price that is not a number) come back per field.
func submitPropertyFromForm(form *multipart.Form) (model.SubmitProperty, model.FieldErrors) {
	r := formReader{form: form, problems: model.FieldErrors{}}

	s := model.SubmitProperty{
		Kind:              model.Kind(r.value("kind")),
		PropertyName:      r.value("property_name"),
		Description:       r.value("description"),
		ContactNumber:     r.value("contact_number"),
		DepositPolicy:     r.value("deposit_policy"),
		MessPolicy:        r.value("mess_policy"),
		RoomPricingSingle: r.intValue("room_pricing_single"),
		RoomPricingDouble: r.intValue("room_pricing_double"),
		MonthlyRent:       r.intValue("monthly_rent"),
		CurrentFlatmates:  r.intValue("current_flatmates"),
		RequiredFlatmates: r.intValue("required_flatmates"),
		Brokerage:         r.boolValue("brokerage"),
		FlatSize:          r.value("flat_size"),
		Facilities:        r.values("facilities"),
		Amenities:         r.values("amenities"),
		Address:           r.value("address"),
		Latitude:          r.floatValue("latitude"),
		Longitude:         r.floatValue("longitude"),
	}

	return s, r.problems
}

// checkMediaFiles validates sizes and types of the attached media. The
// second return is set when the video is over the size limit.
func (h *Handler) checkMediaFiles(images, videos []*multipart.FileHeader) (model.FieldErrors, bool) {
	problems := model.CheckMedia(len(images), len(videos))

	for i, img := range images {
		if !strings.HasPrefix(img.Header.Get("Content-Type"), "image/") {
			problems.Add("images", fmt.Sprintf("file %d is not an image", i+1))
		}
		if h.Limits.MaxImageBytes > 0 && img.Size > h.Limits.MaxImageBytes {
			problems.Add("images", fmt.Sprintf("file %d is larger than %s", i+1, megabytes(h.Limits.MaxImageBytes)))
		}
	}

	videoTooLarge := false
	for _, v := range videos {
		if !strings.HasPrefix(v.Header.Get("Content-Type"), "video/") {
			problems.Add("video", "file is not a video")
		}
		if h.Limits.MaxVideoBytes > 0 && v.Size > h.Limits.MaxVideoBytes {
			videoTooLarge = true
		}
	}

	return problems, videoTooLarge
}

func megabytes(n int64) string {
	return fmt.Sprintf("%d MB", n/(1024*1024))
}
