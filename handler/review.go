package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/gorm"

	"campusnest/model"
)

// FetchReviewQueue returns per-status counts and the pending submissions,
// newest first. It has no side effects and is refetched after each action.
func (h *Handler) FetchReviewQueue(c echo.Context) error {
	submissions := []model.Submission{}
	err := h.DB.Order("submitted_at desc").Find(&submissions).Error
	if err != nil {
		log.Errorf("Failed to fetch submissions: %v", err)
		return &echo.HTTPError{Code: http.StatusInternalServerError, Message: "Failed to fetch submissions."}
	}

	return c.JSON(http.StatusOK, model.ReviewQueueResponse{
		Counts:  model.CountByStatus(submissions),
		Pending: model.PendingOnly(submissions),
	})
}

// PublishSubmission makes the listing live right away.
func (h *Handler) PublishSubmission(c echo.Context) error {
	return h.publish(c, model.PropertyAvailable)
}

// SaveSubmissionDraft stores the listing with whatever reviewer fields are
// filled in so far; it stays hidden from the public pages.
func (h *Handler) SaveSubmissionDraft(c echo.Context) error {
	return h.publish(c, model.PropertyPendingDetails)
}

func (h *Handler) publish(c echo.Context, status model.PropertyStatus) error {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		return &echo.HTTPError{Code: http.StatusNotFound, Message: "Submission not found."}
	}

	input := model.ReviewInput{}
	if err := c.Bind(&input); err != nil {
		return err
	}
	input.Strip()

	publishNow := status == model.PropertyAvailable
	problems := fieldErrors(c, &input)

	property := model.Property{}
	err := h.DB.WithContext(c.Request().Context()).Transaction(func(tx *gorm.DB) error {
		sub := model.Submission{}
		if err := tx.First(&sub, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &echo.HTTPError{Code: http.StatusNotFound, Message: "Submission not found."}
			}
			return err
		}

		if !sub.CanPublish() {
			return &echo.HTTPError{Code: http.StatusConflict, Message: "This submission has already been reviewed."}
		}

		problems.Merge(input.Check(sub, publishNow))
		if !problems.Empty() {
			return validationError(problems)
		}

		property = model.NewPropertyFromSubmission(sub, input, status)

		if err := h.verifyContent(property); err != nil {
			log.Errorf("Submission %s failed signature check: %v", sub.ID, err)
			return &echo.HTTPError{Code: http.StatusUnprocessableEntity, Message: "This submission's content could not be verified."}
		}

		if input.City != "" {
			city, err := GetAndCreateIfNotFoundCity(tx, input.City)
			if err != nil {
				return err
			}
			property.CityID = city.ID
		}

		if err := tx.Create(&property).Error; err != nil {
			return err
		}

		now := time.Now().UTC()
		r := tx.Model(&model.Submission{}).
			Where("id = ? AND status = ?", sub.ID, model.SubmissionPending).
			Updates(map[string]interface{}{"status": model.SubmissionApproved, "reviewed_at": now})
		if r.Error != nil {
			return r.Error
		}
		// Another reviewer got there first.
		if r.RowsAffected == 0 {
			return &echo.HTTPError{Code: http.StatusConflict, Message: "This submission has already been reviewed."}
		}

		return nil
	})
	if err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return he
		}
		log.Errorf("Failed to publish submission %s: %v", id, err)
		he = &echo.HTTPError{Code: http.StatusInternalServerError, Message: "Failed to publish. Please try again."}
		return he.SetInternal(err)
	}

	log.Infof("Submission %s published as %s (%s)", id, property.ID, property.Status)
	return c.JSON(http.StatusCreated, property)
}

// verifyContent checks that the listing carries the user's content exactly
// as it was signed on submission.
func (h *Handler) verifyContent(p model.Property) error {
	content, err := p.Content().Canonical()
	if err != nil {
		return err
	}
	return h.Signer.Verify(content, p.DataSignature)
}

// RejectSubmission needs a reason. Rejecting twice overwrites the reason;
// approved submissions cannot be rejected.
func (h *Handler) RejectSubmission(c echo.Context) error {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		return &echo.HTTPError{Code: http.StatusNotFound, Message: "Submission not found."}
	}

	input := model.RejectInput{}
	if err := c.Bind(&input); err != nil {
		return err
	}
	input.Reason = strings.TrimSpace(input.Reason)

	problems := fieldErrors(c, &input)
	if input.Reason == "" {
		problems.Add("reason", "is required")
	}
	if !problems.Empty() {
		return validationError(problems)
	}

	now := time.Now().UTC()
	r := h.DB.Model(&model.Submission{}).
		Where("id = ? AND status IN ?", id, model.RejectableStatuses).
		Updates(map[string]interface{}{
			"status":           model.SubmissionRejected,
			"rejection_reason": input.Reason,
			"reviewed_at":      now,
		})
	if r.Error != nil {
		log.Errorf("Failed to reject submission %s: %v", id, r.Error)
		return rejectFailed(r.Error)
	}

	if r.RowsAffected == 0 {
		var count int64
		if err := h.DB.Model(&model.Submission{}).Where("id = ?", id).Count(&count).Error; err != nil {
			log.Errorf("Failed to look up submission %s: %v", id, err)
			return rejectFailed(err)
		}
		if count == 0 {
			return &echo.HTTPError{Code: http.StatusNotFound, Message: "Submission not found."}
		}
		return &echo.HTTPError{Code: http.StatusConflict, Message: "Approved submissions cannot be rejected."}
	}

	log.Infof("Submission %s rejected", id)
	return c.JSON(http.StatusOK, UpdateResponse{Updated: r.RowsAffected})
}

func rejectFailed(cause error) *echo.HTTPError {
	he := &echo.HTTPError{Code: http.StatusInternalServerError, Message: "Failed to reject. Please try again."}
	return he.SetInternal(cause)
}
