package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/gorm"

	"campusnest/model"
)

func (h *Handler) submissionForOwnerOrAdmin(c echo.Context, id string) (*model.Submission, error) {
	reqUser := currentUser(c)

	if _, err := uuid.Parse(id); err != nil {
		return nil, &echo.HTTPError{Code: http.StatusNotFound, Message: "Submission not found."}
	}

	sub := &model.Submission{}
	err := h.DB.First(sub, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &echo.HTTPError{Code: http.StatusNotFound, Message: "Submission not found."}
		}
		log.Errorf("Failed to fetch submission %s: %v", id, err)
		return nil, &echo.HTTPError{Code: http.StatusInternalServerError, Message: "Failed to fetch submission."}
	}

	if !reqUser.IsAdmin && reqUser.ID != sub.UserID {
		return nil, &echo.HTTPError{Code: http.StatusForbidden, Message: "You do not have permission to view this submission."}
	}

	return sub, nil
}
