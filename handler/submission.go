package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/gorm"

	"campusnest/model"
)

const (
	imageFolder = "submissions/images"
	videoFolder = "submissions/videos"
)

// CreateSubmission validates the listing form, uploads its media and writes
// a pending submission. Nothing is uploaded unless the whole form is valid,
// and uploaded media is removed again if the record cannot be written.
func (h *Handler) CreateSubmission(c echo.Context) error {
	reqUser := currentUser(c)
	if reqUser.ID == "" {
		return &echo.HTTPError{Code: http.StatusUnauthorized, Message: "Please sign in to list a property."}
	}

	form, err := c.MultipartForm()
	if err != nil {
		return &echo.HTTPError{Code: http.StatusBadRequest, Message: "Failed to parse multipart form."}
	}

	images := form.File["images"]
	videos := form.File["video"]

	mediaProblems, videoTooLarge := h.checkMediaFiles(images, videos)
	if videoTooLarge {
		return &echo.HTTPError{
			Code:    http.StatusRequestEntityTooLarge,
			Message: "The video is larger than " + megabytes(h.Limits.MaxVideoBytes) + ". Please upload a shorter clip.",
		}
	}

	s, problems := submitPropertyFromForm(form)
	s.Strip()
	problems.Merge(fieldErrors(c, &s))
	problems.Merge(s.CheckKind())
	problems.Merge(mediaProblems)
	if !problems.Empty() {
		return validationError(problems)
	}

	ctx := c.Request().Context()

	uploadedImages, err := h.uploadFiles(ctx, reqUser.ID, imageFolder, images)
	if err != nil {
		log.Errorf("Failed to upload submission images: %v", err)
		return submissionFailed(err)
	}

	uploadedVideos, err := h.uploadFiles(ctx, reqUser.ID, videoFolder, videos)
	if err != nil {
		log.Errorf("Failed to upload submission video: %v", err)
		h.discardFiles(ctx, uploadedImages)
		return submissionFailed(err)
	}

	uploaded := append(uploadedImages, uploadedVideos...)

	video := ""
	if len(uploadedVideos) > 0 {
		video = uploadedVideos[0].URL
	}

	sub, err := h.newSignedSubmission(s, reqUser.ID, model.FileURLs(uploadedImages), video)
	if err != nil {
		log.Errorf("Failed to build submission: %v", err)
		h.discardFiles(ctx, uploaded)
		return submissionFailed(err)
	}

	err = h.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&sub).Error; err != nil {
			return err
		}
		return attachFiles(tx, uploaded, sub.ID)
	})
	if err != nil {
		log.Errorf("Failed to save submission: %v", err)
		h.discardFiles(ctx, uploaded)
		return submissionFailed(err)
	}

	log.Infof("Submission %s created by %s", sub.ID, reqUser.ID)
	return c.JSON(http.StatusCreated, CreatedResponse{ID: sub.ID, Status: string(sub.Status)})
}

func (h *Handler) newSignedSubmission(s model.SubmitProperty, userID string, images []string, video string) (model.Submission, error) {
	sub, err := s.ToSubmission(userID, images, video, time.Now().UTC())
	if err != nil {
		return model.Submission{}, err
	}

	content, err := sub.Content().Canonical()
	if err != nil {
		return model.Submission{}, err
	}

	sub.DataSignature, err = h.Signer.Sign(content)
	if err != nil {
		return model.Submission{}, err
	}

	return sub, nil
}

func submissionFailed(cause error) *echo.HTTPError {
	he := &echo.HTTPError{Code: http.StatusInternalServerError, Message: "Submission failed. Please try again."}
	return he.SetInternal(cause)
}

// FetchSubmission backs the confirmation page shown after submitting.
func (h *Handler) FetchSubmission(c echo.Context) error {
	sub, err := h.submissionForOwnerOrAdmin(c, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, sub)
}

func (h *Handler) FetchMySubmissions(c echo.Context) error {
	reqUser := currentUser(c)

	submissions := []model.Submission{}
	err := h.DB.Where("user_id = ?", reqUser.ID).Order("submitted_at desc").Find(&submissions).Error
	if err != nil {
		log.Errorf("Failed to fetch submissions of %s: %v", reqUser.ID, err)
		return &echo.HTTPError{Code: http.StatusInternalServerError, Message: "Failed to fetch submissions."}
	}

	return c.JSON(http.StatusOK, ListResponse{Total: int64(len(submissions)), Items: submissions})
}
