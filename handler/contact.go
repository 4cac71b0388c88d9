package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"campusnest/model"
)

func (h *Handler) CreateContactSubmission(c echo.Context) error {
	cs := model.ContactSubmission{}
	if err := c.Bind(&cs); err != nil {
		return err
	}

	cs.Name = strings.TrimSpace(cs.Name)
	cs.Email = model.StripEmail(cs.Email)
	cs.Phone = model.StripPhone(cs.Phone)
	cs.Message = strings.TrimSpace(cs.Message)

	if problems := fieldErrors(c, &cs); !problems.Empty() {
		return validationError(problems)
	}

	if err := h.DB.Create(&cs).Error; err != nil {
		log.Errorf("Failed to save contact submission: %v", err)
		return &echo.HTTPError{Code: http.StatusInternalServerError, Message: "Failed to send your message. Please try again."}
	}

	return c.JSON(http.StatusCreated, CreatedResponse{ID: cs.ID})
}

func (h *Handler) FetchContactSubmissions(c echo.Context) error {
	items := []model.ContactSubmission{}
	if err := h.DB.Order("created_at desc").Find(&items).Error; err != nil {
		log.Errorf("Failed to fetch contact submissions: %v", err)
		return &echo.HTTPError{Code: http.StatusInternalServerError, Message: "Failed to fetch contact submissions."}
	}

	return c.JSON(http.StatusOK, ListResponse{Total: int64(len(items)), Items: items})
}

func (h *Handler) CreateFlatmateQuery(c echo.Context) error {
	q := model.FlatmateQuery{}
	if err := c.Bind(&q); err != nil {
		return err
	}

	q.Name = strings.TrimSpace(q.Name)
	q.Phone = model.StripPhone(q.Phone)
	q.PreferredArea = strings.TrimSpace(q.PreferredArea)
	q.Message = strings.TrimSpace(q.Message)

	if problems := fieldErrors(c, &q); !problems.Empty() {
		return validationError(problems)
	}

	if err := h.DB.Create(&q).Error; err != nil {
		log.Errorf("Failed to save flatmate query: %v", err)
		return &echo.HTTPError{Code: http.StatusInternalServerError, Message: "Failed to send your query. Please try again."}
	}

	return c.JSON(http.StatusCreated, CreatedResponse{ID: q.ID})
}

func (h *Handler) FetchFlatmateQueries(c echo.Context) error {
	items := []model.FlatmateQuery{}
	if err := h.DB.Order("created_at desc").Find(&items).Error; err != nil {
		log.Errorf("Failed to fetch flatmate queries: %v", err)
		return &echo.HTTPError{Code: http.StatusInternalServerError, Message: "Failed to fetch flatmate queries."}
	}

	return c.JSON(http.StatusOK, ListResponse{Total: int64(len(items)), Items: items})
}
